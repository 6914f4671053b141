package dshot

import (
	"context"
	"log/slog"
	"time"
)

// Capture is one oversampled DSHOT frame as delivered by the bit-level capture.
// Start and End are passed through to the decoded frame unchanged.
type Capture struct {
	Data  []byte
	Start time.Time
	End   time.Time
}

// Observer is notified with every frame the decoder produces.
// Observers may be called from several goroutines at once when decoding in batches.
type Observer func(*Frame)

// Option configures a Decoder.
type Option func(*Decoder)

// WithClassification selects between the disarmed/command/throttle split (true, default)
// and the legacy raw throttle mode, where every frame is a throttle frame carrying the
// full 11-bit data value scaled over 0x7FF.
func WithClassification(enabled bool) Option {
	return func(d *Decoder) {
		d.classify = enabled
	}
}

// WithObserver registers an observer hook.
func WithObserver(o Observer) Option {
	return func(d *Decoder) {
		if o != nil {
			d.observers = append(d.observers, o)
		}
	}
}

// WithLogger logs every decoded frame at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Decoder) {
		d.logger = logger
	}
}

// Decoder turns captures into classified frames. It holds configuration only
// and is safe for concurrent use.
type Decoder struct {
	classify  bool
	observers []Observer
	logger    *slog.Logger
}

// NewDecoder creates a new DSHOT decoder
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{
		classify: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var defaultDecoder = NewDecoder()

// Decode decodes a capture with a classifying decoder and no hooks.
func Decode(data []byte, start, end time.Time) (*Frame, error) {
	return defaultDecoder.Decode(data, start, end)
}

// DecodeCapture decodes a single capture.
func (d *Decoder) DecodeCapture(c Capture) (*Frame, error) {
	return d.Decode(c.Data, c.Start, c.End)
}

// Decode decodes one 6-byte capture. A capture of any other length yields an
// *InputLengthError and no frame. A checksum mismatch is reported in Frame.CRC only.
func (d *Decoder) Decode(data []byte, start, end time.Time) (*Frame, error) {
	if err := checkLength(data); err != nil {
		return nil, err
	}

	word := decimate(data)
	computed := word.Checksum()
	frame := &Frame{
		Start:            start,
		End:              end,
		Word:             word,
		TelemetryRequest: word.TelemetryRequest(),
		CRC: CRCStatus{
			Received: word.CRC(),
			Computed: computed,
			Pass:     computed == word.CRC(),
		},
	}

	data11 := word.Data()
	switch {
	case !d.classify:
		frame.Kind = KindThrottle
		frame.Throttle = data11
		frame.Percent = float64(data11) * 100 / MaxData
	case data11 == 0:
		frame.Kind = KindDisarmed
	case data11 <= MaxCommand:
		frame.Kind = KindCommand
		frame.Command = Command(data11)
	default:
		frame.Kind = KindThrottle
		frame.Throttle = data11 - ThrottleOffset
		frame.Percent = float64(frame.Throttle) * 100 / MaxThrottle
	}

	d.notify(frame)
	return frame, nil
}

func (d *Decoder) notify(frame *Frame) {
	if d.logger != nil && d.logger.Enabled(context.Background(), slog.LevelDebug) {
		d.logger.Debug("dshot_frame",
			"kind", frame.Kind.String(),
			"start", frame.Start,
			"end", frame.End,
			"frame", frame.String(),
		)
	}
	for _, o := range d.observers {
		o(frame)
	}
}
