package output

import (
	"time"

	"github.com/BIwashi/dshotdecode/pkg/dshot"
)

// Record is the flat, per-frame export schema. Fields that do not apply to the frame
// kind are omitted.
type Record struct {
	Source           string    `cbor:"source"`
	Kind             string    `cbor:"kind"`
	Start            time.Time `cbor:"start"`
	End              time.Time `cbor:"end"`
	Command          *uint8    `cbor:"command,omitempty"`
	CommandName      string    `cbor:"command_name,omitempty"`
	Throttle         *uint16   `cbor:"throttle,omitempty"`
	ThrottlePercent  *float64  `cbor:"throttle_percent,omitempty"`
	TelemetryRequest bool      `cbor:"telemetry_request"`
	CRC              uint8     `cbor:"crc"`
	CRCComputed      uint8     `cbor:"crc_computed"`
	CRCOK            bool      `cbor:"crc_ok"`
}

// NewRecord flattens a frame.
func NewRecord(source string, f *dshot.Frame) Record {
	rec := Record{
		Source:           source,
		Kind:             f.Kind.String(),
		Start:            f.Start,
		End:              f.End,
		TelemetryRequest: f.TelemetryRequest,
		CRC:              f.CRC.Received,
		CRCComputed:      f.CRC.Computed,
		CRCOK:            f.CRC.Pass,
	}
	switch f.Kind {
	case dshot.KindCommand:
		code := uint8(f.Command)
		rec.Command = &code
		rec.CommandName = f.Command.String()
	case dshot.KindThrottle:
		throttle, percent := f.Throttle, f.Percent
		rec.Throttle = &throttle
		rec.ThrottlePercent = &percent
	}
	return rec
}
