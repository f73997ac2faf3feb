package commander

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendAndWait_Timeout(t *testing.T) {
	ft := &fakeTransport{}
	dev := NewDevice(ft)

	// silent controller
	err := dev.SetSoftwareMode(context.Background())
	assert.ErrorIs(t, err, ErrTimedOut)

	// the device must stay usable after a timeout
	ft.respond = func(cmd []byte) []byte { return inReport(nil) }
	assert.NoError(t, dev.SetSoftwareMode(context.Background()))
}

func TestSendAndWait_ContextCancelled(t *testing.T) {
	ft := &fakeTransport{}
	dev := NewDevice(ft)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := dev.SetSoftwareMode(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSendAndWait_ShortReport(t *testing.T) {
	ft := &fakeTransport{}
	ft.respond = func(cmd []byte) []byte { return make([]byte, 64) }
	dev := NewDevice(ft)

	err := dev.SetSoftwareMode(context.Background())
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestSendAndWait_TransportError(t *testing.T) {
	ft := &fakeTransport{sendErr: errors.New("usb gone")}
	dev := NewDevice(ft)

	err := dev.SetSoftwareMode(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transport send")
	assert.Contains(t, err.Error(), "usb gone")
}

func TestHandleReport_UnsolicitedDropped(t *testing.T) {
	ft := &fakeTransport{}
	ft.respond = func(cmd []byte) []byte { return inReport(nil) }
	dev := NewDevice(ft)

	// nothing pending, the report must be discarded without effect
	dev.handleReport(inReport(map[int]byte{0: 0xff}))

	assert.NoError(t, dev.SetSoftwareMode(context.Background()))
}
