package service

import (
	"unsafe"

	"github.com/pbnjay/memory"

	"github.com/yndnr/hashgen-go/internal/core/domain"
)

// MemoryAdvisory compares the estimated working set of a run with the
// configured budget and the machine's physical memory. It is reported
// only; no stage limits its allocations by it.
type MemoryAdvisory struct {
	BudgetBytes    uint64 `json:"budget_bytes" yaml:"budget_bytes"`
	EstimatedBytes uint64 `json:"estimated_bytes" yaml:"estimated_bytes"`
	SystemBytes    uint64 `json:"system_bytes" yaml:"system_bytes"`
	ExceedsBudget  bool   `json:"exceeds_budget" yaml:"exceeds_budget"`
	ExceedsSystem  bool   `json:"exceeds_system" yaml:"exceeds_system"`
}

var pairHeaderSize = uint64(unsafe.Sizeof(domain.Pair{}))

// EstimateWorkingSet returns the peak bytes held by the sort stage, which
// is the largest: the hashed pairs with their record arenas, the sorted
// copy and the merge scratch buffer.
func EstimateWorkingSet(records int, layout domain.Layout) uint64 {
	n := uint64(records)
	arenas := n * uint64(layout.RecordSize())
	return arenas + 3*n*pairHeaderSize
}

// NewMemoryAdvisory builds the advisory for a run of records records.
// A zero budget is treated as unset.
func NewMemoryAdvisory(records int, layout domain.Layout, budgetMB int) MemoryAdvisory {
	a := MemoryAdvisory{
		EstimatedBytes: EstimateWorkingSet(records, layout),
		SystemBytes:    memory.TotalMemory(),
	}
	if budgetMB > 0 {
		a.BudgetBytes = uint64(budgetMB) << 20
		a.ExceedsBudget = a.EstimatedBytes > a.BudgetBytes
	}
	if a.SystemBytes > 0 {
		a.ExceedsSystem = a.EstimatedBytes > a.SystemBytes
	}
	return a
}
