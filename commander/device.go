// Package commander drives a Corsair Commander Core XT fan controller over a
// HID report transport. It builds the controller's proprietary command
// reports, pairs them with asynchronously delivered responses and exposes
// typed channel operations on top of the endpoint session protocol.
//
// Typical usage:
//
//	dev := commander.NewDevice(transport)
//	if err := dev.Attach(ctx); err != nil { ... }
//	defer dev.Detach(ctx)
//	rpm, err := dev.FanRPM(ctx, 0)
package commander

import (
	"context"
	"fmt"
	"log/slog"
	"math/bits"
	"sync"

	fanctl "github.com/mklimuk/fanctl"
)

// TargetNone marks a fan rpm target that was never set or cannot be read back.
const TargetNone = -1

// FirmwareVersion is the controller firmware revision, parsed once at attach.
type FirmwareVersion struct {
	Major uint8
	Minor uint8
	Patch uint16
}

func (v FirmwareVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// ChannelSet records which channels of a kind are physically connected. It is
// populated once at attach and read-only afterwards; hot-plugged hardware is
// not re-discovered.
type ChannelSet uint32

func (s *ChannelSet) set(channel int) {
	*s |= 1 << channel
}

func (s ChannelSet) Has(channel int) bool {
	return s&(1<<channel) != 0
}

func (s ChannelSet) Count() int {
	return bits.OnesCount32(uint32(s))
}

// Device owns one attached controller: the command and response buffers, the
// single-slot pending signal shared with the transport's delivery goroutine,
// and the channel tables populated at attach. All logical operations are
// serialized by a device-wide mutex held for their full multi-exchange
// duration, so a write session can never interleave with a read session.
type Device struct {
	transport fanctl.Transport
	log       *slog.Logger

	mu sync.Mutex

	// signalMu is shared with the delivery goroutine and guards the pending
	// signal and the received-size bookkeeping.
	signalMu sync.Mutex
	pending  chan struct{}

	cmdBuf   [OutReportSize]byte
	respBuf  [InReportSize]byte
	recvSize int

	// dataBuf keeps the result of a multi-step session; the shared response
	// buffer is overwritten by the trailing close.
	dataBuf      [InReportSize]byte
	dataRecvSize int

	fans  ChannelSet
	temps ChannelSet

	labels  [NumFans]string
	targets [NumFans]int

	firmware   FirmwareVersion
	firmwareOK bool
	bootloader [2]byte
}

type Option func(*Device)

func WithLogger(log *slog.Logger) Option {
	return func(d *Device) {
		d.log = log
	}
}

// NewDevice wires a device to its transport. The device registers itself as
// the transport's report handler; call Attach before any channel operation.
func NewDevice(transport fanctl.Transport, opts ...Option) *Device {
	d := &Device{
		transport: transport,
		log:       slog.Default(),
	}
	for i := range d.targets {
		d.targets[i] = TargetNone
	}
	for _, opt := range opts {
		opt(d)
	}
	transport.Notify(d.handleReport)
	return d
}

// Attach switches the controller into host-driven (software) mode, discovers
// connected channels and reads the firmware version. Connection state only
// updates when the controller is powered on, so discovery runs once here.
func (d *Device) Attach(ctx context.Context) error {
	if err := d.SetSoftwareMode(ctx); err != nil {
		return fmt.Errorf("switch to software mode: %w", err)
	}
	if err := d.discoverFans(ctx); err != nil {
		return fmt.Errorf("fan discovery: %w", err)
	}
	if err := d.discoverTemps(ctx); err != nil {
		d.log.Debug("temperature discovery unavailable", "error", err)
	}
	if err := d.readFirmware(ctx); err != nil {
		d.log.Warn("failed to read firmware version", "error", err)
	}
	return nil
}

// Detach returns the controller to its autonomous hardware mode and releases
// the transport. The mode switch is best effort: a failure is logged and never
// blocks teardown. No protocol call is valid on the device afterwards.
func (d *Device) Detach(ctx context.Context) error {
	if err := d.SetHardwareMode(ctx); err != nil {
		d.log.Warn("failed to switch controller back to hardware mode", "error", err)
	}
	return d.transport.Close()
}

// Close releases the transport without touching the controller mode. Use it
// when the controller should stay in software mode after the process exits.
func (d *Device) Close() error {
	return d.transport.Close()
}

// SetSoftwareMode puts the controller under host control. Required before the
// controller accepts any endpoint command.
func (d *Device) SetSoftwareMode(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	prepareCmd(d.cmdBuf[:], cmdSoftwareMode)
	return d.sendAndWait(ctx)
}

// SetHardwareMode returns the controller to its autonomous fan curves.
func (d *Device) SetHardwareMode(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	prepareCmd(d.cmdBuf[:], cmdHardwareMode)
	return d.sendAndWait(ctx)
}

func (d *Device) readFirmware(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	prepareCmd(d.cmdBuf[:], cmdGetFirmware)
	if err := d.sendAndWait(ctx); err != nil {
		return err
	}
	d.firmware = response{d.respBuf[:]}.firmware()
	d.firmwareOK = true
	return nil
}

// Firmware returns the firmware version read at attach; ok is false when the
// read failed.
func (d *Device) Firmware() (v FirmwareVersion, ok bool) {
	return d.firmware, d.firmwareOK
}

// Bootloader returns the bootloader version. No command for reading it is
// known yet, so it is never available.
func (d *Device) Bootloader() (string, bool) {
	return fmt.Sprintf("%d.%d", d.bootloader[0], d.bootloader[1]), false
}

// discoverFans reads the fan discovery endpoint, marks connected channels and
// assigns their labels. A channel is connected iff its state byte is 0x07.
func (d *Device) discoverFans(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.readEndpoint(ctx, EndpointFans); err != nil {
		return err
	}
	data := response{d.dataBuf[:]}
	for channel := 0; channel < min(data.channelCount(), NumFans); channel++ {
		state, ok := data.stateAt(channel)
		if !ok || state != fanStateConnected {
			continue
		}
		d.fans.set(channel)
		d.targets[channel] = TargetNone
		d.labels[channel] = fmt.Sprintf("fan%d", channel+1)
	}
	return nil
}

// discoverTemps issues the temperature discovery read, but the
// connection-state layout of that endpoint is not understood yet: no channel
// is ever marked connected and the call always reports unsupported.
func (d *Device) discoverTemps(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.readEndpoint(ctx, EndpointTemps); err != nil {
		return err
	}
	return ErrUnsupported
}

// ConnectedFans reports the fan channels found connected at attach.
func (d *Device) ConnectedFans() ChannelSet {
	return d.fans
}

// ConnectedTemps reports the temperature channels found connected at attach.
func (d *Device) ConnectedTemps() ChannelSet {
	return d.temps
}

// FanLabel returns the label assigned to a fan channel at discovery time.
func (d *Device) FanLabel(channel int) (string, error) {
	if channel < 0 || channel >= NumFans {
		return "", fmt.Errorf("%w: invalid fan channel %d", ErrInvalidArgument, channel)
	}
	return d.labels[channel], nil
}

// FanRPM returns the current speed of a fan channel. Negative speeds are
// reported by the controller and returned as-is.
func (d *Device) FanRPM(ctx context.Context, channel int) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.readEndpoint(ctx, EndpointFanState); err != nil {
		return 0, err
	}
	data := response{d.dataBuf[:]}
	if channel < 0 || channel >= min(data.channelCount(), NumFans) {
		return 0, fmt.Errorf("%w: invalid fan channel %d", ErrInvalidArgument, channel)
	}
	rpm, ok := data.rpmAt(channel)
	if !ok {
		return 0, fmt.Errorf("%w: rpm of channel %d out of bounds", ErrMalformedResponse, channel)
	}
	return int(rpm), nil
}

// FanPWM returns the duty cycle of a fan channel on the 0-255 scale. The
// channel id echoed by the controller must match the requested channel; a
// mismatch is surfaced as a protocol error, never silently corrected.
func (d *Device) FanPWM(ctx context.Context, channel int) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.readEndpoint(ctx, EndpointFanPWM); err != nil {
		return 0, err
	}
	data := response{d.dataBuf[:]}
	if channel < 0 || channel >= min(data.channelCount(), NumFans) {
		return 0, fmt.Errorf("%w: invalid fan channel %d", ErrInvalidArgument, channel)
	}
	id, raw, ok := data.pwmAt(channel)
	if !ok {
		return 0, fmt.Errorf("%w: pwm of channel %d out of bounds", ErrMalformedResponse, channel)
	}
	if int(id) != channel {
		return 0, fmt.Errorf("%w: fan id %d in response for channel %d", ErrMalformedResponse, id, channel)
	}
	return pwmFromDevice(int(raw)), nil
}

// SetFanPWM sets the duty cycle of a fan channel; value is on the 0-255 scale
// and converted to the controller's 0-100 scale. A successful write
// invalidates any previously recorded rpm target for the channel.
func (d *Device) SetFanPWM(ctx context.Context, channel, value int) error {
	if channel < 0 || channel >= NumFans {
		return fmt.Errorf("%w: invalid fan channel %d", ErrInvalidArgument, channel)
	}
	if value < 0 || value > 255 {
		return fmt.Errorf("%w: pwm %d out of range [0,255]", ErrInvalidArgument, value)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	raw := pwmToDevice(value)
	// {count, id, mode, value, 0x00}
	speed := []byte{1, byte(channel), 0, byte(raw), 0x00}
	if err := d.writeEndpoint(ctx, EndpointFanPWM, dataTypeSetSpeed, speed); err != nil {
		return err
	}
	d.targets[channel] = TargetNone
	d.log.Debug("fan pwm set", "channel", channel, "pwm", raw)
	return nil
}

// FanTarget returns the last recorded rpm target of a fan channel, or
// ErrNoData when none was recorded. Targets cannot be read back from the
// controller; this is local bookkeeping only.
func (d *Device) FanTarget(channel int) (int, error) {
	if channel < 0 || channel >= NumFans {
		return 0, fmt.Errorf("%w: invalid fan channel %d", ErrInvalidArgument, channel)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.targets[channel] < 0 {
		return 0, ErrNoData
	}
	return d.targets[channel], nil
}

// SetFanTarget records the desired rpm target of a fan channel for later
// read-back. No command for making the controller chase an rpm target is
// known, so the value never reaches the hardware and the call reports
// ErrUnsupported.
func (d *Device) SetFanTarget(channel, rpm int) error {
	if channel < 0 || channel >= NumFans {
		return fmt.Errorf("%w: invalid fan channel %d", ErrInvalidArgument, channel)
	}
	rpm = min(max(rpm, 0), 0xFFFF)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.targets[channel] = rpm
	return ErrUnsupported
}

// DumpEndpoint runs a read session against an arbitrary endpoint and returns
// a copy of the raw data buffer. Intended for debugging clients.
func (d *Device) DumpEndpoint(ctx context.Context, endpoint Endpoint) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.readEndpoint(ctx, endpoint); err != nil {
		return nil, err
	}
	out := make([]byte, d.dataRecvSize)
	copy(out, d.dataBuf[:])
	return out, nil
}
