package can

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	ecan "go.einride.tech/can"

	"github.com/BIwashi/dshotdecode/pkg/dshot"
)

func TestTimedFrameCapture(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	f := &TimedFrame{
		Frame: ecan.Frame{
			ID:     0x120,
			Length: 6,
			Data:   ecan.Data{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xAA, 0xBB},
		},
		Timestamp: ts,
	}

	require.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, f.Payload())

	capture := f.Capture(dshot.DShot600.FrameDuration())
	require.Equal(t, ts, capture.Start)
	require.Equal(t, ts.Add(26656*time.Nanosecond), capture.End)

	frame, err := dshot.NewDecoder().DecodeCapture(capture)
	require.NoError(t, err)
	require.Equal(t, dshot.KindDisarmed, frame.Kind)

	capture.Data[0] = 0
	require.Equal(t, byte(0xFF), f.Data[0])
}

func TestTimedFrameShortPayload(t *testing.T) {
	f := &TimedFrame{Frame: ecan.Frame{Length: 5, Data: ecan.Data{1, 2, 3, 4, 5}}}
	_, err := dshot.NewDecoder().DecodeCapture(f.Capture(0))
	require.ErrorIs(t, err, dshot.ErrInputLength)
}
