package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"1h30m", time.Hour + 30*time.Minute},
		{"-25m", -25 * time.Minute},
		{"2d-3h5m", 45*time.Hour + 5*time.Minute},
		{"1w-2d+3h", 5*24*time.Hour + 3*time.Hour},
		{"2d2h20m", 50*time.Hour + 20*time.Minute},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "two weeks", "3x", "1h30"} {
		_, err := Parse(in)
		assert.Error(t, err, in)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1w2d3h27m", Format(9*24*time.Hour+3*time.Hour+27*time.Minute))
	assert.Equal(t, "0m", Format(0))
	assert.Equal(t, "-1h5m", Format(-(time.Hour + 5*time.Minute)))
}

func TestFormatRoundTrip(t *testing.T) {
	for _, in := range []string{"2d2h20m", "8h20m", "1w", "45m"} {
		d, err := Parse(in)
		require.NoError(t, err)
		assert.Equal(t, in, Format(d))
	}
}
