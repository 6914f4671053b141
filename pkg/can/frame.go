package can

import (
	"time"

	ecan "go.einride.tech/can"

	"github.com/BIwashi/dshotdecode/pkg/dshot"
)

// TimedFrame wraps einride can.Frame to add capture timestamp information.
// Embedding keeps field access (ID, Length, Data, IsExtended, IsRemote, ...) identical.
type TimedFrame struct {
	ecan.Frame
	// Timestamp is the capture time of the first sample, taken from the pcap packet.
	Timestamp time.Time
}

// Payload returns the used part of the frame data.
func (f *TimedFrame) Payload() []byte {
	n := int(f.Length)
	if n > len(f.Data) {
		n = len(f.Data)
	}
	return f.Data[:n]
}

// Capture converts the frame into a DSHOT capture. The logger records a single timestamp
// per capture, so the end time is derived from the frame duration of the configured rate.
func (f *TimedFrame) Capture(frameDuration time.Duration) dshot.Capture {
	data := make([]byte, len(f.Payload()))
	copy(data, f.Payload())
	return dshot.Capture{
		Data:  data,
		Start: f.Timestamp,
		End:   f.Timestamp.Add(frameDuration),
	}
}
