package decode

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/BIwashi/dshotdecode/pkg/dshot"
)

const progressEvery = 10000

type pipeline struct {
	reader    frameSource
	decoder   *dshot.Decoder
	writers   []frameWriter
	stats     *dshot.Stats
	rate      dshot.Rate
	workers   int
	batchSize int
	logger    *slog.Logger

	processed int
}

// run reads captures in batches, decodes each batch in parallel and emits the frames
// in capture order.
func (p *pipeline) run(ctx context.Context) error {
	captures := make([]dshot.Capture, 0, p.batchSize)
	sources := make([]string, 0, p.batchSize)

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("decode cancelled: %w", ctx.Err())
		default:
		}

		captures, sources = captures[:0], sources[:0]
		eof := false
		for len(captures) < p.batchSize {
			frame, err := p.reader.ReadNext()
			if err != nil {
				if errors.Is(err, io.EOF) {
					eof = true
					break
				}
				return fmt.Errorf("failed to read frame: %w", err)
			}
			captures = append(captures, frame.Capture(p.rate.FrameDuration()))
			sources = append(sources, formatID(frame.ID, frame.IsExtended))
		}

		if err := p.flush(ctx, captures, sources); err != nil {
			return err
		}
		if eof {
			return nil
		}
	}
}

func (p *pipeline) flush(ctx context.Context, captures []dshot.Capture, sources []string) error {
	if len(captures) == 0 {
		return nil
	}
	results, err := p.decoder.DecodeAll(ctx, captures, p.workers)
	if err != nil {
		return fmt.Errorf("failed to decode batch: %w", err)
	}

	for i, res := range results {
		p.processed++
		if p.processed%progressEvery == 0 {
			p.logger.Info(fmt.Sprintf("Progress: %d captures processed", p.processed))
		}
		if res.Err != nil {
			// Malformed captures are skipped, the rest of the file is still decoded.
			p.stats.ObserveError(res.Err)
			p.logger.Warn("capture_skipped",
				"source", sources[i],
				"start", captures[i].Start,
				"error", res.Err.Error(),
			)
			continue
		}
		for _, w := range p.writers {
			if err := w.WriteFrame(sources[i], res.Frame); err != nil {
				return fmt.Errorf("failed to write frame: %w", err)
			}
		}
	}
	return nil
}

func formatID(id uint32, extended bool) string {
	if extended {
		return fmt.Sprintf("0x%08X", id)
	}
	return fmt.Sprintf("0x%03X", id)
}
