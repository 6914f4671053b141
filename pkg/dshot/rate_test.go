package dshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseRate(t *testing.T) {
	testCases := []struct {
		in   string
		want Rate
	}{
		{"150", DShot150},
		{"dshot300", DShot300},
		{"DSHOT600", DShot600},
		{" DShot1200 ", DShot1200},
	}
	for _, tc := range testCases {
		got, err := ParseRate(tc.in)
		require.NoError(t, err)
		require.Equal(t, tc.want, got)
	}

	for _, in := range []string{"", "dshot", "700", "fast"} {
		_, err := ParseRate(in)
		require.Error(t, err, in)
	}
}

func TestRateTiming(t *testing.T) {
	require.Equal(t, 1666*time.Nanosecond, DShot600.BitPeriod())
	require.Equal(t, 26656*time.Nanosecond, DShot600.FrameDuration())
	require.Equal(t, 6666*time.Nanosecond, DShot150.BitPeriod())
	require.Equal(t, "DSHOT300", DShot300.String())
}
