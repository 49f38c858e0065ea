package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yndnr/hashgen-go/internal/core/domain"
	"github.com/yndnr/hashgen-go/internal/telemetry/logger"
	"github.com/yndnr/hashgen-go/pkg/digest"
)

// Hasher maps tokens to (digest, token) pairs.
type Hasher struct {
	layout domain.Layout
	alg    digest.Algorithm
	sum    digest.Func
}

// NewHasher creates a hasher for the layout's digest size using alg.
func NewHasher(layout domain.Layout, alg digest.Algorithm) (*Hasher, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	sum, err := digest.New(alg, layout.DigestSize)
	if err != nil {
		return nil, err
	}
	return &Hasher{
		layout: layout,
		alg:    alg,
		sum:    sum,
	}, nil
}

// Algorithm returns the configured digest algorithm.
func (h *Hasher) Algorithm() digest.Algorithm {
	return h.alg
}

// Hash computes one pair per token using concurrency workers.
//
// Worker i owns the output slots of its range and a private record arena
// laid out as digest||token, so pairs never alias the input tokens.
// Output order matches input order, although callers must not rely on it.
func (h *Hasher) Hash(ctx context.Context, tokens domain.Tokens, concurrency int) ([]domain.Pair, error) {
	if err := checkConcurrency("hash", concurrency); err != nil {
		return nil, err
	}

	n := tokens.Len()
	pairs := make([]domain.Pair, n)
	log := logger.L(ctx).With("stage", "hash")

	var g errgroup.Group
	g.SetLimit(concurrency)

	for _, r := range Partition(n, concurrency) {
		r := r
		g.Go(func() error {
			start := time.Now()
			h.hashRange(tokens, pairs, r)
			log.Debug("hash worker done",
				"worker", r.Index,
				"records", r.Len(),
				"elapsed", time.Since(start))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pairs, nil
}

func (h *Hasher) hashRange(tokens domain.Tokens, pairs []domain.Pair, r Range) {
	ds := h.layout.DigestSize
	rs := h.layout.RecordSize()
	arena := make([]byte, r.Len()*rs)

	for i := r.Lo; i < r.Hi; i++ {
		off := (i - r.Lo) * rs
		rec := arena[off : off+rs : off+rs]
		tok := tokens.At(i)
		copy(rec[ds:], tok)
		h.sum(rec[:ds], tok)
		pairs[i] = domain.DecodePair(h.layout, rec)
	}
}
