package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTicks(t *testing.T) {
	cases := []struct {
		ticks int64
		want  string
	}{
		{0, "0s"},
		{7, "0s"},   // 700ms rounds down to 0 whole seconds
		{10, "1s"},  // 1s
		{450, "45s"},
		{1230, "2m 3s"},
		{39960, "1h 6m"},
		{1080000, "1d 6h"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatTicks(c.ticks), "ticks=%d", c.ticks)
	}
}

func TestFormatTicksNegativeClampsToZero(t *testing.T) {
	assert.Equal(t, "0s", FormatTicks(-5))
}
