package service

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/yndnr/hashgen-go/internal/core/domain"
	"github.com/yndnr/hashgen-go/internal/telemetry/logger"
)

// Writer defaults.
const (
	DefaultBufferSize = 1 << 20 // 1MB
	DefaultFilePerm   = 0644
)

// MergeProgressFunc is called after each spill file has been appended to
// the output, with the number of bytes it contributed.
type MergeProgressFunc func(chunk int, bytes int64)

// ChunkedWriter persists a sorted pair sequence as one flat record file.
//
// Writing happens in two phases. First every chunk is spilled to its own
// temporary file (path_<index>) by a dedicated worker. Once all spills
// are complete the temporary files are appended to path strictly in index
// order by a single goroutine, each one removed right after it is copied.
type ChunkedWriter struct {
	bufferSize int
	onMerge    MergeProgressFunc
}

// WriterOption configures a ChunkedWriter.
type WriterOption func(*ChunkedWriter)

// WithBufferSize sets the per-file write buffer size.
func WithBufferSize(size int) WriterOption {
	return func(w *ChunkedWriter) {
		if size > 0 {
			w.bufferSize = size
		}
	}
}

// WithMergeProgress registers a callback invoked during the merge phase.
func WithMergeProgress(fn MergeProgressFunc) WriterOption {
	return func(w *ChunkedWriter) {
		w.onMerge = fn
	}
}

// NewChunkedWriter creates a writer.
func NewChunkedWriter(opts ...WriterOption) *ChunkedWriter {
	w := &ChunkedWriter{
		bufferSize: DefaultBufferSize,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// SpillPath returns the temporary file name for chunk i of path.
func SpillPath(path string, i int) string {
	return fmt.Sprintf("%s_%d", path, i)
}

// Write serializes pairs to path using concurrency spill workers.
//
// On failure the run is aborted and any spill or output files written so
// far are left on disk.
func (w *ChunkedWriter) Write(ctx context.Context, path string, pairs []domain.Pair, concurrency int) error {
	if err := checkConcurrency("write", concurrency); err != nil {
		return err
	}

	log := logger.L(ctx).With("stage", "write")
	chunks := Partition(len(pairs), concurrency)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, c := range chunks {
		c := c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			if err := w.spill(SpillPath(path, c.Index), pairs[c.Lo:c.Hi]); err != nil {
				return err
			}
			log.Debug("chunk spilled",
				"chunk", c.Index,
				"records", c.Len(),
				"elapsed", time.Since(start))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return w.merge(ctx, path, len(chunks))
}

// spill writes one chunk to its own file.
func (w *ChunkedWriter) spill(path string, pairs []domain.Pair) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, DefaultFilePerm)
	if err != nil {
		return domain.ErrSpill.WithDetails(path).WithCause(err)
	}

	bw := bufio.NewWriterSize(f, w.bufferSize)
	for _, p := range pairs {
		if _, err := bw.Write(p.Digest); err != nil {
			f.Close()
			return domain.ErrSpill.WithDetails(path).WithCause(err)
		}
		if _, err := bw.Write(p.Token); err != nil {
			f.Close()
			return domain.ErrSpill.WithDetails(path).WithCause(err)
		}
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return domain.ErrSpill.WithDetails(path).WithCause(err)
	}
	if err := f.Close(); err != nil {
		return domain.ErrSpill.WithDetails(path).WithCause(err)
	}
	return nil
}

// merge appends spill files 0..chunks-1 to path, deleting each after copying.
func (w *ChunkedWriter) merge(ctx context.Context, path string, chunks int) error {
	log := logger.L(ctx).With("stage", "merge")
	progress := rate.Sometimes{Interval: time.Second}

	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, DefaultFilePerm)
	if err != nil {
		return domain.ErrMerge.WithDetails(path).WithCause(err)
	}
	bw := bufio.NewWriterSize(out, w.bufferSize)

	var total int64
	for i := 0; i < chunks; i++ {
		n, err := appendFile(bw, SpillPath(path, i))
		if err != nil {
			out.Close()
			return err
		}
		total += n

		if w.onMerge != nil {
			w.onMerge(i, n)
		}
		progress.Do(func() {
			log.Debug("merging chunks", "merged", i+1, "chunks", chunks, "bytes", total)
		})
	}

	if err := bw.Flush(); err != nil {
		out.Close()
		return domain.ErrMerge.WithDetails(path).WithCause(err)
	}
	if err := out.Close(); err != nil {
		return domain.ErrMerge.WithDetails(path).WithCause(err)
	}
	return nil
}

// appendFile copies spill into w and removes it.
func appendFile(w io.Writer, spill string) (int64, error) {
	f, err := os.Open(spill)
	if err != nil {
		return 0, domain.ErrMerge.WithDetails(spill).WithCause(err)
	}
	n, err := io.Copy(w, f)
	if err != nil {
		f.Close()
		return n, domain.ErrMerge.WithDetails(spill).WithCause(err)
	}
	if err := f.Close(); err != nil {
		return n, domain.ErrMerge.WithDetails(spill).WithCause(err)
	}
	if err := os.Remove(spill); err != nil {
		return n, domain.ErrMerge.WithDetails(spill).WithCause(err)
	}
	return n, nil
}
