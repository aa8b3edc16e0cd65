package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinMaxClamp(t *testing.T) {
	assert.Equal(t, 2, Min(2, 5))
	assert.Equal(t, 5, Max(2, 5))
	assert.Equal(t, 1.5, Clamp(1.5, 1.0, 2.0))
	assert.Equal(t, 1.0, Clamp(0.5, 1.0, 2.0))
	assert.Equal(t, 2.0, Clamp(9.0, 1.0, 2.0))
}

func TestFormatValueFactor(t *testing.T) {
	cases := []struct {
		value float64
		unit  string
		want  string
	}{
		{1.5e9, "Hz", "1.5GHz"},
		{2e12, "Hz", "2THz"},
		{1e6, "Hz", "1MHz"},
		{2500, "Hz", "2.5kHz"},
		{50, "", "50"},
		{0.02, "A", "20mA"},
		{3.3e-6, "F", "3.3uF"},
		{1e-9, "s", "1ns"},
		{2.2e-12, "F", "2.2pF"},
		{0, "Hz", "0Hz"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatValueFactor(c.value, c.unit), "value %g", c.value)
	}
}
