package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// FileOp transforms the label file in into out.
type FileOp func(in, out string) error

// Batch applies op to every file, writing outputs under outDir with the
// input's base name. Files are independent; up to batch.jobs run at once.
func (p *Pipeline) Batch(ctx context.Context, files []string, outDir string, op FileOp) error {
	outs := make(map[string]string, len(files))
	for _, f := range files {
		out := filepath.Join(outDir, filepath.Base(f))
		if prev, dup := outs[out]; dup {
			return fmt.Errorf("%s and %s would both be written to %s", prev, f, out)
		}
		if same(f, out) {
			return fmt.Errorf("%s would overwrite its input", out)
		}
		outs[out] = f
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(p.cfg.Batch.Jobs, 1))
	for _, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := op(f, filepath.Join(outDir, filepath.Base(f))); err != nil {
				return fmt.Errorf("%s: %w", f, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func same(a, b string) bool {
	aa, err := filepath.Abs(a)
	if err != nil {
		return false
	}
	bb, err := filepath.Abs(b)
	if err != nil {
		return false
	}
	return aa == bb
}
