package fanctl

import "fmt"

var ErrDeviceNotFound = fmt.Errorf("device not found")

// Transport exchanges fixed-size HID reports with a controller. Outbound
// reports go through Send; inbound reports are pushed asynchronously to the
// handler registered with Notify, from a delivery goroutine owned by the
// transport. The transport never interprets report contents.
type Transport interface {
	Send(report []byte) error
	Notify(handler func(report []byte))
	Close() error
}
