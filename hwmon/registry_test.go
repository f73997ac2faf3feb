package hwmon

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChip struct{}

func (stubChip) Visibility(t SensorType, attr Attribute, channel int) Mode { return Hidden }
func (stubChip) Read(ctx context.Context, t SensorType, attr Attribute, channel int) (int, error) {
	return 0, ErrNotSupported
}
func (stubChip) ReadString(t SensorType, attr Attribute, channel int) (string, error) {
	return "", ErrNotSupported
}
func (stubChip) Write(ctx context.Context, t SensorType, attr Attribute, channel int, value int) error {
	return ErrNotSupported
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Register("commander", stubChip{}))
	err := reg.Register("commander", stubChip{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")

	chip, ok := reg.Lookup("commander")
	assert.True(t, ok)
	assert.NotNil(t, chip)

	_, ok = reg.Lookup("missing")
	assert.False(t, ok)

	require.NoError(t, reg.Register("acpi", stubChip{}))
	assert.Equal(t, []string{"acpi", "commander"}, reg.Names())

	reg.Unregister("commander")
	_, ok = reg.Lookup("commander")
	assert.False(t, ok)
	assert.Equal(t, []string{"acpi"}, reg.Names())
}
