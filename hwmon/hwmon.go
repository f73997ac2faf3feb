// Package hwmon defines the narrow interface through which a host
// sensor-monitoring framework consumes a hardware monitoring chip: per
// (sensor type, attribute, channel) visibility, reads and writes. The
// framework itself lives outside this module; chips are published to it
// through a Registry.
package hwmon

import (
	"context"
	"errors"
)

var ErrNotSupported = errors.New("attribute not supported")

type SensorType int

const (
	Temp SensorType = iota
	Fan
	PWM
	In
)

type Attribute int

const (
	Input Attribute = iota
	Label
	Target
)

// Mode is the access mode of one (type, attribute, channel) triple.
type Mode int

const (
	Hidden Mode = iota
	ReadOnly
	ReadWrite
)

// Chip is implemented by device drivers exposing monitoring channels.
type Chip interface {
	Visibility(t SensorType, attr Attribute, channel int) Mode
	Read(ctx context.Context, t SensorType, attr Attribute, channel int) (int, error)
	ReadString(t SensorType, attr Attribute, channel int) (string, error)
	Write(ctx context.Context, t SensorType, attr Attribute, channel int, value int) error
}
