package dshot

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrInputLength is matched by every InputLengthError.
var ErrInputLength = errors.New("dshot capture length")

// InputLengthError is returned when a capture does not carry exactly CaptureSize bytes.
// No frame is produced for such a capture.
type InputLengthError struct {
	Got int
}

func (e *InputLengthError) Error() string {
	return fmt.Sprintf("dshot capture must be %d bytes, got %d", CaptureSize, e.Got)
}

func (e *InputLengthError) Unwrap() error {
	return ErrInputLength
}

func checkLength(data []byte) error {
	if len(data) != CaptureSize {
		return errors.WithStack(&InputLengthError{Got: len(data)})
	}
	return nil
}
