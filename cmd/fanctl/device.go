package main

import (
	"context"

	"github.com/mklimuk/fanctl/adapter"
	"github.com/mklimuk/fanctl/cmd/fanctl/console"
	"github.com/mklimuk/fanctl/commander"
)

// attach opens the HID transport and brings the controller up in software
// mode. The caller owns the returned device and must Detach it.
func attach(ctx context.Context) (*commander.Device, error) {
	console.Trace = console.IsVerbose(ctx)
	transport, err := adapter.Open()
	if err != nil {
		return nil, err
	}
	dev := commander.NewDevice(transport)
	if err := dev.Attach(ctx); err != nil {
		_ = transport.Close()
		return nil, err
	}
	return dev, nil
}
