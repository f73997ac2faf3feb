// Package adapter provides user-space HID transports for supported
// controllers, built on karalabe/hid.
package adapter

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/karalabe/hid"

	fanctl "github.com/mklimuk/fanctl"
	"github.com/mklimuk/fanctl/commander"
)

const VendorID = 0x1b1c
const ProductID = 0x0c2a

// CommanderXT is a HID report transport for the Corsair Commander Core XT.
// A dedicated goroutine reads inbound reports and pushes every one of them to
// the handler registered with Notify.
type CommanderXT struct {
	dev *hid.Device

	mu      sync.Mutex
	handler func(report []byte)

	done chan struct{}
}

// Open enumerates the controller by vendor/product id, opens the first match
// and starts the delivery goroutine.
func Open() (*CommanderXT, error) {
	devs := hid.Enumerate(VendorID, ProductID)
	if len(devs) == 0 {
		return nil, fanctl.ErrDeviceNotFound
	}
	dev, err := devs[0].Open()
	if err != nil {
		return nil, fmt.Errorf("error opening device: %w", err)
	}
	t := &CommanderXT{
		dev:  dev,
		done: make(chan struct{}),
	}
	go t.readLoop()
	return t, nil
}

// Notify registers the handler receiving inbound reports. Reports arriving
// before a handler is registered are dropped.
func (t *CommanderXT) Notify(handler func(report []byte)) {
	t.mu.Lock()
	t.handler = handler
	t.mu.Unlock()
}

// Send writes one full outbound report to the controller.
func (t *CommanderXT) Send(report []byte) error {
	n, err := t.dev.Write(report)
	if err != nil {
		return fmt.Errorf("could not write report: %w", err)
	}
	if n != len(report) {
		return fmt.Errorf("short write: %d of %d", n, len(report))
	}
	return nil
}

func (t *CommanderXT) readLoop() {
	buf := make([]byte, commander.InReportSize)
	for {
		n, err := t.dev.Read(buf)
		if err != nil {
			select {
			case <-t.done:
			default:
				slog.Debug("report read failed", "error", err)
			}
			return
		}
		t.mu.Lock()
		handler := t.handler
		t.mu.Unlock()
		if handler == nil {
			continue
		}
		report := make([]byte, n)
		copy(report, buf[:n])
		handler(report)
	}
}

// Close stops the delivery goroutine and releases the HID handle.
func (t *CommanderXT) Close() error {
	close(t.done)
	return t.dev.Close()
}
