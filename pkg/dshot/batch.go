package dshot

import (
	"context"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
)

// Result pairs a decoded frame with its per-capture error. Exactly one of the two is set.
type Result struct {
	Frame *Frame
	Err   error
}

// DecodeAll decodes captures concurrently with at most workers goroutines and returns the
// results in input order. Length errors are reported per capture; only context
// cancellation aborts the batch.
func (d *Decoder) DecodeAll(ctx context.Context, captures []Capture, workers int) ([]Result, error) {
	results := make([]Result, len(captures))
	if len(captures) == 0 {
		return results, nil
	}
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range captures {
		i := i
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			frame, err := d.DecodeCapture(captures[i])
			results[i] = Result{Frame: frame, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "decode batch")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "decode batch")
	}
	return results, nil
}
