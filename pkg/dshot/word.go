package dshot

const (
	// CaptureSize is the number of bytes in one oversampled capture.
	CaptureSize = 6
	// SamplesPerBit is the oversampling factor of the upstream capture.
	SamplesPerBit = 3
	// BitsPerFrame is the number of logical bits in a DSHOT frame.
	BitsPerFrame = 16

	captureMask = 1<<(CaptureSize*8) - 1
)

// Word is a decimated 16-bit DSHOT frame: 11 data bits, 1 telemetry request bit and a 4-bit checksum,
// most significant bit first.
type Word uint16

// DataField returns the 12-bit data+telemetry field covered by the checksum.
func (w Word) DataField() uint16 {
	return uint16(w >> 4)
}

// Data returns the 11-bit throttle/command value.
func (w Word) Data() uint16 {
	return w.DataField() >> 1
}

// TelemetryRequest reports whether the telemetry request bit is set.
func (w Word) TelemetryRequest() bool {
	return w.DataField()&1 == 1
}

// CRC returns the checksum as transmitted.
func (w Word) CRC() uint8 {
	return uint8(w & 0xF)
}

// Checksum returns the checksum recomputed from the data field.
func (w Word) Checksum() uint8 {
	return Checksum(w.DataField())
}

// Checksum folds the nibbles of a 12-bit data field (data bits plus telemetry bit) with XOR.
func Checksum(dataField uint16) uint8 {
	return uint8((dataField ^ (dataField >> 4) ^ (dataField >> 8)) & 0xF)
}

// decimate recovers the logical word from a 6-byte duty-cycle capture.
// The caller guarantees len(data) == CaptureSize.
func decimate(data []byte) Word {
	var raw uint64
	for _, b := range data[:CaptureSize] {
		raw = raw<<8 | uint64(b)
	}

	// The capture is recorded with inverted polarity.
	raw ^= captureMask

	// Synthetic start bit aligns the sampling window on the middle sample.
	raw = raw<<1 | 1

	var word Word
	for i := 0; i < BitsPerFrame; i++ {
		word <<= 1
		if raw&2 != 0 {
			word |= 1
		}
		raw >>= SamplesPerBit
	}
	return word
}
