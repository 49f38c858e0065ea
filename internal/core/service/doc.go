// Package service implements the stages of the hashgen pipeline.
//
// The pipeline runs four stages with a full barrier between each:
//
//   - Generator: fills an arena with random tokens
//   - Hasher: maps every token to a (digest, token) pair in parallel
//   - Sorter: parallel mergesort of the pairs by digest
//   - ChunkedWriter: spills contiguous chunks to temporary files in
//     parallel, then merges them into the output file in index order
//
// Each stage is given its own worker pool sized by its configured
// concurrency. Workers operate on disjoint index ranges and share no
// mutable state. Any error aborts the run; nothing is retried and
// partially written files are left in place.
package service
