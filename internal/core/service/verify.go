package service

import (
	"bytes"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/yndnr/hashgen-go/internal/core/domain"
	"github.com/yndnr/hashgen-go/pkg/digest"
)

// VerifyResult describes an output file checked by Verify.
type VerifyResult struct {
	Path             string `json:"path" yaml:"path"`
	Bytes            int64  `json:"bytes" yaml:"bytes"`
	Records          int    `json:"records" yaml:"records"`
	Sorted           bool   `json:"sorted" yaml:"sorted"`
	FirstUnsorted    int    `json:"first_unsorted" yaml:"first_unsorted"`
	DigestsChecked   bool   `json:"digests_checked" yaml:"digests_checked"`
	DigestMismatches int    `json:"digest_mismatches" yaml:"digest_mismatches"`
}

// Verify checks that path holds whole records in non-decreasing digest
// order. When sum is non-nil every digest is also recomputed from its token.
//
// The returned error wraps domain.ErrCorruptOutput when the file violates
// the format; the result is still populated in that case.
func Verify(path string, layout domain.Layout, sum digest.Func) (*VerifyResult, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	res := &VerifyResult{
		Path:           path,
		Bytes:          info.Size(),
		Sorted:         true,
		FirstUnsorted:  -1,
		DigestsChecked: sum != nil,
	}

	rs := int64(layout.RecordSize())
	if res.Bytes%rs != 0 {
		return res, domain.ErrCorruptOutput.WithDetails(
			fmt.Sprintf("size %d is not a multiple of record size %d", res.Bytes, rs))
	}
	res.Records = int(res.Bytes / rs)
	if res.Records == 0 {
		return res, nil
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	defer data.Unmap()

	checkRecords(res, data, layout, sum)

	switch {
	case !res.Sorted:
		return res, domain.ErrCorruptOutput.WithDetails(
			fmt.Sprintf("record %d sorts before record %d", res.FirstUnsorted, res.FirstUnsorted-1))
	case res.DigestMismatches > 0:
		return res, domain.ErrCorruptOutput.WithDetails(
			fmt.Sprintf("%d digests do not match their tokens", res.DigestMismatches))
	}
	return res, nil
}

func checkRecords(res *VerifyResult, data []byte, layout domain.Layout, sum digest.Func) {
	rs := layout.RecordSize()
	want := make([]byte, layout.DigestSize)

	var prev []byte
	for i := 0; i < res.Records; i++ {
		p := domain.DecodePair(layout, data[i*rs:(i+1)*rs])
		if prev != nil && res.Sorted && bytes.Compare(prev, p.Digest) > 0 {
			res.Sorted = false
			res.FirstUnsorted = i
		}
		prev = p.Digest

		if sum != nil {
			sum(want, p.Token)
			if !bytes.Equal(want, p.Digest) {
				res.DigestMismatches++
			}
		}
	}
}
