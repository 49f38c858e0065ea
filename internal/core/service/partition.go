package service

import (
	"fmt"

	"github.com/yndnr/hashgen-go/internal/core/domain"
)

// Range is the half-open index interval [Lo, Hi) assigned to one worker.
type Range struct {
	Index int
	Lo    int
	Hi    int
}

// Len returns the number of elements in the range.
func (r Range) Len() int {
	return r.Hi - r.Lo
}

// Partition splits n elements into k contiguous ranges of n/k elements.
// The final range absorbs the n%k remainder, so concatenating the ranges
// in index order covers [0, n) exactly once. When k > n the leading
// ranges are empty.
func Partition(n, k int) []Range {
	if k <= 0 {
		k = 1
	}
	size := n / k
	ranges := make([]Range, k)
	for i := range ranges {
		ranges[i] = Range{Index: i, Lo: i * size, Hi: (i + 1) * size}
	}
	ranges[k-1].Hi = n
	return ranges
}

func checkConcurrency(stage string, concurrency int) error {
	if concurrency <= 0 {
		return domain.ErrInvalidConcurrency.WithDetails(fmt.Sprintf("%s: %d", stage, concurrency))
	}
	return nil
}
