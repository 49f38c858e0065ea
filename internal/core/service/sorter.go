package service

import (
	"context"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yndnr/hashgen-go/internal/core/domain"
	"github.com/yndnr/hashgen-go/internal/telemetry/logger"
)

// Sorter orders pairs by digest with a parallel mergesort.
type Sorter struct{}

// NewSorter creates a sorter.
func NewSorter() *Sorter {
	return &Sorter{}
}

// Sort returns a new slice holding the pairs in non-decreasing digest order.
// The input slice is left untouched. Equal digests may come out in any order.
//
// The pairs are cut into concurrency runs which are sorted in parallel,
// then adjacent runs are merged pairwise, halving the run count each
// round. No round has more than concurrency merges in flight.
func (s *Sorter) Sort(ctx context.Context, pairs []domain.Pair, concurrency int) ([]domain.Pair, error) {
	if err := checkConcurrency("sort", concurrency); err != nil {
		return nil, err
	}

	n := len(pairs)
	src := slices.Clone(pairs)
	if src == nil {
		src = []domain.Pair{}
	}
	if concurrency == 1 || n < 2*concurrency {
		slices.SortFunc(src, domain.ComparePairs)
		return src, nil
	}

	log := logger.L(ctx).With("stage", "sort")
	runs := Partition(n, concurrency)

	var g errgroup.Group
	g.SetLimit(concurrency)
	for _, r := range runs {
		r := r
		g.Go(func() error {
			slices.SortFunc(src[r.Lo:r.Hi], domain.ComparePairs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	bounds := make([]int, 0, len(runs)+1)
	bounds = append(bounds, 0)
	for _, r := range runs {
		bounds = append(bounds, r.Hi)
	}

	dst := make([]domain.Pair, n)
	for round := 0; len(bounds) > 2; round++ {
		start := time.Now()
		next := make([]int, 0, len(bounds)/2+2)
		next = append(next, 0)

		var g errgroup.Group
		g.SetLimit(concurrency)
		for i := 0; i+1 < len(bounds); i += 2 {
			lo := bounds[i]
			if i+2 >= len(bounds) {
				// Odd run out: carry it into the next round unchanged.
				hi := bounds[i+1]
				g.Go(func() error {
					copy(dst[lo:hi], src[lo:hi])
					return nil
				})
				next = append(next, hi)
				continue
			}
			mid, hi := bounds[i+1], bounds[i+2]
			g.Go(func() error {
				mergeRuns(dst[lo:hi], src[lo:mid], src[mid:hi])
				return nil
			})
			next = append(next, hi)
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		log.Debug("merge round done",
			"round", round,
			"runs", len(next)-1,
			"elapsed", time.Since(start))

		src, dst = dst, src
		bounds = next
	}

	return src, nil
}

// mergeRuns merges two sorted runs into dst. len(dst) == len(a)+len(b).
func mergeRuns(dst, a, b []domain.Pair) {
	i, j, k := 0, 0, 0
	for i < len(a) && j < len(b) {
		if domain.ComparePairs(b[j], a[i]) < 0 {
			dst[k] = b[j]
			j++
		} else {
			dst[k] = a[i]
			i++
		}
		k++
	}
	k += copy(dst[k:], a[i:])
	copy(dst[k:], b[j:])
}
