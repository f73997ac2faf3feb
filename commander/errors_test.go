package commander

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusErr(t *testing.T) {
	tests := []struct {
		status   byte
		expected error
	}{
		{0x00, nil},
		{0x01, ErrUnsupported},
		{0x10, ErrInvalidArgument},
		{0x11, ErrNoData},
		{0x12, ErrNoData},
		{0x7f, ErrDeviceIO},
		{0xff, ErrDeviceIO},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%#02x", test.status), func(t *testing.T) {
			err := statusErr(test.status)
			if test.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, test.expected)
		})
	}
}

func TestStatusErr_UnknownStatusPreserved(t *testing.T) {
	err := statusErr(0x7f)
	assert.ErrorIs(t, err, ErrDeviceIO)
	assert.Contains(t, err.Error(), "0x7f")
}
