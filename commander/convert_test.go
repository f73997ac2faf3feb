package commander

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPWM_ToDevice(t *testing.T) {
	tests := []struct {
		given    int
		expected int
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{128, 50},
		{254, 100},
		{255, 100},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%d", test.given), func(t *testing.T) {
			assert.Equal(t, test.expected, pwmToDevice(test.given))
		})
	}
}

func TestPWM_FromDevice(t *testing.T) {
	tests := []struct {
		given    int
		expected int
	}{
		{0, 0},
		{1, 3},
		{50, 128},
		{100, 255},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%d", test.given), func(t *testing.T) {
			assert.Equal(t, test.expected, pwmFromDevice(test.given))
		})
	}
}

func TestPWM_RoundTrip(t *testing.T) {
	for v := 0; v <= 255; v++ {
		back := pwmFromDevice(pwmToDevice(v))
		if back < v-1 || back > v+1 {
			t.Errorf("pwm %d round-trips to %d", v, back)
		}
	}
}

func TestPWM_Monotonic(t *testing.T) {
	prev := 0
	for v := 0; v <= 255; v++ {
		dev := pwmToDevice(v)
		if dev < prev {
			t.Fatalf("pwmToDevice not monotonic at %d: %d < %d", v, dev, prev)
		}
		prev = dev
	}
	prev = 0
	for v := 0; v <= 100; v++ {
		raw := pwmFromDevice(v)
		if raw < prev {
			t.Fatalf("pwmFromDevice not monotonic at %d: %d < %d", v, raw, prev)
		}
		prev = raw
	}
}
