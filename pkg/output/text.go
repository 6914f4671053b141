package output

import (
	"bufio"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/BIwashi/dshotdecode/pkg/dshot"
)

// TextWriter prints one presentation line per frame:
//
//	<start> <end> <source> DSHOT <frame>
type TextWriter struct {
	mu sync.Mutex
	w  *bufio.Writer
}

func NewTextWriter(out io.Writer) *TextWriter {
	return &TextWriter{w: bufio.NewWriter(out)}
}

func (t *TextWriter) WriteFrame(source string, f *dshot.Frame) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := fmt.Fprintf(t.w, "%s %s %s DSHOT %s\n",
		f.Start.Format(time.RFC3339Nano),
		f.End.Format(time.RFC3339Nano),
		source,
		f,
	)
	return errors.Wrap(err, "write text record")
}

func (t *TextWriter) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return errors.Wrap(t.w.Flush(), "flush text records")
}
