package dshot

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeAllPreservesOrder(t *testing.T) {
	var observed atomic.Int64
	d := NewDecoder(WithObserver(func(*Frame) { observed.Add(1) }))

	captures := make([]Capture, 0, 500)
	for i := 0; i < 500; i++ {
		data := oversample(makeWord(uint16(i*4%2048), i%2 == 0), 0)
		if i%50 == 49 {
			data = data[:5]
		}
		captures = append(captures, Capture{Data: data, Start: t0, End: t1})
	}

	results, err := d.DecodeAll(context.Background(), captures, 8)
	require.NoError(t, err)
	require.Len(t, results, len(captures))

	for i, res := range results {
		if i%50 == 49 {
			require.Nil(t, res.Frame)
			require.ErrorIs(t, res.Err, ErrInputLength)
			continue
		}
		require.NoError(t, res.Err)
		require.Equal(t, uint16(i*4%2048), res.Frame.Word.Data())
		require.Equal(t, i%2 == 0, res.Frame.TelemetryRequest)
	}
	require.Equal(t, int64(490), observed.Load())
}

func TestDecodeAllEmptyAndSingleWorker(t *testing.T) {
	results, err := NewDecoder().DecodeAll(context.Background(), nil, 4)
	require.NoError(t, err)
	require.Empty(t, results)

	captures := []Capture{{Data: oversample(makeWord(48, false), 0)}}
	results, err = NewDecoder().DecodeAll(context.Background(), captures, 0)
	require.NoError(t, err)
	require.Equal(t, KindThrottle, results[0].Frame.Kind)
}

func TestDecodeAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	captures := []Capture{{Data: make([]byte, CaptureSize)}}
	results, err := NewDecoder().DecodeAll(ctx, captures, 2)
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, results)
}
