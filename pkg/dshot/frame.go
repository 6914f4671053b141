package dshot

import (
	"fmt"
	"strconv"
	"time"
)

// Kind classifies the data value of a frame.
type Kind uint8

const (
	// KindDisarmed is a frame with data value 0.
	KindDisarmed Kind = iota
	// KindCommand is a frame with data value 1..47.
	KindCommand
	// KindThrottle is a frame with data value 48..2047.
	KindThrottle
)

func (k Kind) String() string {
	switch k {
	case KindDisarmed:
		return "disarmed"
	case KindCommand:
		return "command"
	case KindThrottle:
		return "throttle"
	default:
		return "unknown"
	}
}

const (
	// MaxCommand is the highest data value interpreted as a command.
	MaxCommand = 47
	// ThrottleOffset is the data value of zero throttle.
	ThrottleOffset = MaxCommand + 1
	// MaxThrottle is the highest throttle value after removing ThrottleOffset.
	MaxThrottle = 1999
	// MaxData is the highest 11-bit data value.
	MaxData = 0x7FF
)

// CRCStatus holds the transmitted and recomputed checksums of a frame.
type CRCStatus struct {
	Received uint8
	Computed uint8
	Pass     bool
}

func (c CRCStatus) String() string {
	verdict := "Fail"
	if c.Pass {
		verdict = "Pass"
	}
	return fmt.Sprintf("%d (%s)", c.Received, verdict)
}

// Frame is a decoded and classified DSHOT frame.
//
// Command is only meaningful for KindCommand; Throttle and Percent only for KindThrottle.
type Frame struct {
	Kind  Kind
	Start time.Time
	End   time.Time
	Word  Word

	Command          Command
	Throttle         uint16
	Percent          float64
	TelemetryRequest bool
	CRC              CRCStatus
}

// PercentString renders the throttle percentage with two fractional digits.
func (f *Frame) PercentString() string {
	return strconv.FormatFloat(f.Percent, 'f', 2, 64)
}

func (f *Frame) String() string {
	telemetry := "No"
	if f.TelemetryRequest {
		telemetry = "Yes"
	}
	switch f.Kind {
	case KindDisarmed:
		return fmt.Sprintf("Disarmed, Tel-Req: %s, Crc: %s", telemetry, f.CRC)
	case KindCommand:
		return fmt.Sprintf("Command: %d (%s), Tel-Req: %s, Crc: %s", f.Command, f.Command, telemetry, f.CRC)
	default:
		return fmt.Sprintf("Throttle: %d (%s%%), Tel-Req: %s, Crc: %s", f.Throttle, f.PercentString(), telemetry, f.CRC)
	}
}
