package dshot

// oversample re-encodes a word into the capture layout the decoder expects. The middle
// sample of every window carries the bit; filler supplies the remaining samples.
func oversample(word Word, filler uint64) []byte {
	var dataMask, corrected uint64
	for i := 0; i < BitsPerFrame; i++ {
		pos := uint(SamplesPerBit * i)
		dataMask |= 1 << pos
		if word>>(BitsPerFrame-1-i)&1 == 1 {
			corrected |= 1 << pos
		}
	}
	corrected |= filler &^ dataMask & captureMask

	raw := ^corrected & captureMask
	out := make([]byte, CaptureSize)
	for i := CaptureSize - 1; i >= 0; i-- {
		out[i] = byte(raw)
		raw >>= 8
	}
	return out
}

func makeWord(data uint16, telemetry bool) Word {
	field := data << 1
	if telemetry {
		field |= 1
	}
	return Word(field<<4 | uint16(Checksum(field)))
}
