package commander

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func dirtyBuf() []byte {
	buf := make([]byte, OutReportSize)
	for i := range buf {
		buf[i] = 0xAA
	}
	return buf
}

func TestPrepareCmd(t *testing.T) {
	buf := dirtyBuf()
	n := prepareCmd(buf, cmdGetFirmware)

	assert.Equal(t, 4, n)
	assert.Equal(t, byte(0x00), buf[0])
	assert.Equal(t, byte(0x08), buf[1])
	assert.Equal(t, byte(0x02), buf[2])
	assert.Equal(t, byte(0x13), buf[3])
	// the rest of the report must be zeroed
	for i := n; i < len(buf); i++ {
		if buf[i] != 0x00 {
			t.Fatalf("byte %d not zeroed: %#02x", i, buf[i])
		}
	}
}

func TestPrepareEndpointCmd(t *testing.T) {
	tests := []struct {
		name     string
		opcode   []byte
		expected []byte
	}{
		{"open", cmdOpenEndpoint, []byte{0x00, 0x08, 0x0d, 0x01, 0x1a}},
		{"close", cmdCloseEndpoint, []byte{0x00, 0x08, 0x05, 0x01, 0x01, 0x1a}},
		{"read", cmdRead, []byte{0x00, 0x08, 0x08, 0x01, 0x1a}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			buf := dirtyBuf()
			n := prepareEndpointCmd(buf, test.opcode, EndpointFans)
			assert.Equal(t, len(test.expected), n)
			assert.Equal(t, test.expected, buf[:n])
		})
	}
}

func TestPrepareWriteCmd(t *testing.T) {
	buf := dirtyBuf()
	speed := []byte{1, 2, 0, 100, 0x00}
	n := prepareWriteCmd(buf, dataTypeSetSpeed, speed)

	expected := []byte{
		0x00, 0x08, // report header
		0x06, 0x01, // write opcode
		0x07, 0x00, 0x00, 0x00, // write header, length covers type and payload
		0x07, 0x00, // set speed data type
		1, 2, 0, 100, 0x00, // payload
	}
	assert.Equal(t, len(expected), n)
	assert.Equal(t, expected, buf[:n])
}

func TestResponse_Firmware(t *testing.T) {
	buf := make([]byte, InReportSize)
	buf[3] = 4
	buf[4] = 2
	buf[5] = 0x0a
	buf[6] = 0x00

	fw := response{buf}.firmware()
	assert.Equal(t, "4.2.10", fw.String())
}

func TestResponse_RPM(t *testing.T) {
	buf := make([]byte, InReportSize)
	buf[channelCountIndex] = 2
	// channel 0: 1200 rpm
	buf[6] = 0xB0
	buf[7] = 0x04
	// channel 1: -1234 rpm
	buf[8] = 0x2E
	buf[9] = 0xFB

	data := response{buf}
	assert.Equal(t, 2, data.channelCount())

	rpm, ok := data.rpmAt(0)
	assert.True(t, ok)
	assert.Equal(t, int16(1200), rpm)

	rpm, ok = data.rpmAt(1)
	assert.True(t, ok)
	assert.Equal(t, int16(-1234), rpm)
}

func TestResponse_PWM(t *testing.T) {
	buf := make([]byte, InReportSize)
	// channel 1 group: id, reserved, raw, reserved
	buf[10] = 1
	buf[12] = 50

	id, raw, ok := response{buf}.pwmAt(1)
	assert.True(t, ok)
	assert.Equal(t, byte(1), id)
	assert.Equal(t, byte(50), raw)
}

func TestResponse_Bounds(t *testing.T) {
	data := response{make([]byte, InReportSize)}

	_, ok := data.stateAt(-1)
	assert.False(t, ok)
	_, ok = data.stateAt(InReportSize)
	assert.False(t, ok)

	_, ok = data.rpmAt(-1)
	assert.False(t, ok)
	_, ok = data.rpmAt(InReportSize / 2)
	assert.False(t, ok)

	_, _, ok = data.pwmAt(-1)
	assert.False(t, ok)
	_, _, ok = data.pwmAt(InReportSize / 4)
	assert.False(t, ok)
}
