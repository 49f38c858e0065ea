package benchmark

import (
	"context"
	"fmt"
	"runtime"
	"testing"

	"github.com/yndnr/hashgen-go/internal/core/domain"
	"github.com/yndnr/hashgen-go/internal/core/service"
	"github.com/yndnr/hashgen-go/pkg/digest"
)

// RecordCounts defines the working set sizes for benchmarking.
var RecordCounts = []int{1 << 14, 1 << 16, 1 << 18}

// ThreadCounts defines the worker counts for benchmarking.
var ThreadCounts = []int{1, 2, 4, 8}

// benchSeed keeps every benchmark on the same token stream.
const benchSeed = 42

// newTokens generates n tokens with the default layout.
func newTokens(n int) domain.Tokens {
	return service.NewGenerator(domain.DefaultLayout(), benchSeed).Generate(n)
}

// newPairs generates and hashes n tokens.
func newPairs(b *testing.B, n int) []domain.Pair {
	b.Helper()
	h, err := service.NewHasher(domain.DefaultLayout(), digest.Default)
	if err != nil {
		b.Fatalf("NewHasher failed: %v", err)
	}
	pairs, err := h.Hash(context.Background(), newTokens(n), runtime.NumCPU())
	if err != nil {
		b.Fatalf("Hash failed: %v", err)
	}
	return pairs
}

// setRecordBytes makes b report throughput in record bytes.
func setRecordBytes(b *testing.B, n int) {
	b.SetBytes(int64(n * domain.DefaultLayout().RecordSize()))
}

// reportMemory reports memory usage.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
	b.ReportMetric(float64(m.NumGC), prefix+"_GC")
}

// runWithThreads runs benchFn for every record and thread count.
func runWithThreads(b *testing.B, benchFn func(b *testing.B, records, threads int)) {
	for _, records := range RecordCounts {
		for _, threads := range ThreadCounts {
			b.Run(fmt.Sprintf("records_%d/threads_%d", records, threads), func(b *testing.B) {
				benchFn(b, records, threads)
			})
		}
	}
}
