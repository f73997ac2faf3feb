package commander

import (
	"errors"
	"fmt"
	"log/slog"
)

var (
	ErrTimedOut          = errors.New("timed out waiting for controller response")
	ErrMalformedResponse = errors.New("malformed controller response")
	ErrUnsupported       = errors.New("operation not supported by the controller")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNoData            = errors.New("no data for channel")
	ErrDeviceIO          = errors.New("controller i/o error")
)

// statusErr maps the status byte of an inbound report to the error taxonomy.
func statusErr(status byte) error {
	switch status {
	case 0x00:
		return nil
	case 0x01: // invalid command
		return ErrUnsupported
	case 0x10: // invalid arguments
		return ErrInvalidArgument
	case 0x11: // requested temps of disconnected sensors
		return ErrNoData
	case 0x12: // requested pwm of not pwm-controlled channels
		return ErrNoData
	default:
		slog.Debug("unknown controller response status", "status", fmt.Sprintf("%#02x", status))
		return fmt.Errorf("%w: unknown status %#02x", ErrDeviceIO, status)
	}
}
