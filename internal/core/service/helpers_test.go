package service

import (
	"context"
	"io"
	"testing"

	"github.com/yndnr/hashgen-go/internal/core/domain"
	"github.com/yndnr/hashgen-go/internal/telemetry/logger"
	"github.com/yndnr/hashgen-go/pkg/digest"
)

// pairKey identifies a pair by value for multiset comparisons.
func pairKey(p domain.Pair) string {
	return string(p.Digest) + "|" + string(p.Token)
}

func multiset(pairs []domain.Pair) map[string]int {
	m := make(map[string]int, len(pairs))
	for _, p := range pairs {
		m[pairKey(p)]++
	}
	return m
}

func isSorted(pairs []domain.Pair) bool {
	for i := 1; i < len(pairs); i++ {
		if domain.ComparePairs(pairs[i-1], pairs[i]) > 0 {
			return false
		}
	}
	return true
}

// hashedPairs generates n seeded tokens and hashes them with one worker.
func hashedPairs(t testing.TB, n int, seed uint32) []domain.Pair {
	t.Helper()
	layout := domain.DefaultLayout()
	tokens := NewGenerator(layout, seed).Generate(n)
	h, err := NewHasher(layout, digest.Blake3)
	if err != nil {
		t.Fatalf("NewHasher() error = %v", err)
	}
	pairs, err := h.Hash(testContext(), tokens, 1)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	return pairs
}

// testContext returns a context carrying a logger that discards output.
func testContext() context.Context {
	l, _ := logger.New(logger.Config{Level: "debug", Format: "json", Output: io.Discard})
	return logger.WithLogger(context.Background(), l)
}
