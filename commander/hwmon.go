package commander

import (
	"context"

	"github.com/mklimuk/fanctl/hwmon"
)

// Visibility implements hwmon.Chip. Fan and PWM attributes are exposed only
// for channels found connected at attach.
func (d *Device) Visibility(t hwmon.SensorType, attr hwmon.Attribute, channel int) hwmon.Mode {
	switch t {
	case hwmon.Temp:
		if channel < 0 || channel >= NumTempSensors || !d.temps.Has(channel) {
			return hwmon.Hidden
		}
		switch attr {
		case hwmon.Input, hwmon.Label:
			return hwmon.ReadOnly
		}
	case hwmon.Fan:
		if channel < 0 || channel >= NumFans || !d.fans.Has(channel) {
			return hwmon.Hidden
		}
		switch attr {
		case hwmon.Input, hwmon.Label:
			return hwmon.ReadOnly
		case hwmon.Target:
			return hwmon.ReadWrite
		}
	case hwmon.PWM:
		if channel < 0 || channel >= NumFans || !d.fans.Has(channel) {
			return hwmon.Hidden
		}
		if attr == hwmon.Input {
			return hwmon.ReadWrite
		}
	case hwmon.In:
		if channel < 0 || channel >= NumVoltageSensors {
			return hwmon.Hidden
		}
		if attr == hwmon.Input {
			return hwmon.ReadOnly
		}
	}
	return hwmon.Hidden
}

// Read implements hwmon.Chip. Temperature and voltage inputs are not
// implemented for this controller and report ErrNotSupported.
func (d *Device) Read(ctx context.Context, t hwmon.SensorType, attr hwmon.Attribute, channel int) (int, error) {
	switch t {
	case hwmon.Fan:
		switch attr {
		case hwmon.Input:
			return d.FanRPM(ctx, channel)
		case hwmon.Target:
			return d.FanTarget(channel)
		}
	case hwmon.PWM:
		if attr == hwmon.Input {
			return d.FanPWM(ctx, channel)
		}
	}
	return 0, hwmon.ErrNotSupported
}

// ReadString implements hwmon.Chip.
func (d *Device) ReadString(t hwmon.SensorType, attr hwmon.Attribute, channel int) (string, error) {
	if t == hwmon.Fan && attr == hwmon.Label {
		return d.FanLabel(channel)
	}
	return "", hwmon.ErrNotSupported
}

// Write implements hwmon.Chip.
func (d *Device) Write(ctx context.Context, t hwmon.SensorType, attr hwmon.Attribute, channel int, value int) error {
	switch t {
	case hwmon.Fan:
		if attr == hwmon.Target {
			return d.SetFanTarget(channel, value)
		}
	case hwmon.PWM:
		if attr == hwmon.Input {
			return d.SetFanPWM(ctx, channel, value)
		}
	}
	return hwmon.ErrNotSupported
}
