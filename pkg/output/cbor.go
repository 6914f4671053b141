package output

import (
	"bufio"
	"io"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/fxamacker/cbor/v2"

	"github.com/BIwashi/dshotdecode/pkg/dshot"
)

// CBORWriter writes frames as a CBOR sequence (RFC 8742), one Record per item.
type CBORWriter struct {
	mu  sync.Mutex
	w   *bufio.Writer
	enc *cbor.Encoder
}

// NewCBORWriter wraps out; out is not closed by Close.
func NewCBORWriter(out io.Writer) (*CBORWriter, error) {
	em, err := cbor.EncOptions{
		Time:    cbor.TimeRFC3339Nano,
		TimeTag: cbor.EncTagRequired,
	}.EncMode()
	if err != nil {
		return nil, errors.Wrap(err, "create cbor encode mode")
	}
	bw := bufio.NewWriterSize(out, 64*1024)
	return &CBORWriter{
		w:   bw,
		enc: em.NewEncoder(bw),
	}, nil
}

func (c *CBORWriter) WriteFrame(source string, f *dshot.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.enc.Encode(NewRecord(source, f)); err != nil {
		return errors.Wrap(err, "encode cbor record")
	}
	return nil
}

// Close flushes buffered records.
func (c *CBORWriter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return errors.Wrap(c.w.Flush(), "flush cbor records")
}
