package output

import (
	"io"
	"os"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/mattn/go-isatty"
)

const mergeBarTemplate = `{{ string . "title" }} {{ counters . }} {{ bar . "[" "█" (cycle . "█") "▒" "]" }} {{ percent . }}`

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// MergeProgress shows how many bytes of the spill files have been merged
// into the output. It renders nothing unless the writer is a terminal.
type MergeProgress struct {
	mu  sync.Mutex
	bar *pb.ProgressBar
}

// NewMergeProgress creates a progress bar for a merge of totalBytes bytes.
// When w is not a terminal the returned value is a no-op.
func NewMergeProgress(w io.Writer, totalBytes int64) *MergeProgress {
	if !IsTerminal(w) {
		return &MergeProgress{}
	}
	return newMergeProgress(w, totalBytes)
}

func newMergeProgress(w io.Writer, totalBytes int64) *MergeProgress {
	bar := pb.New64(totalBytes).SetTemplate(pb.ProgressBarTemplate(mergeBarTemplate))
	bar.Set("title", "Merging chunks:")
	bar.Set(pb.Bytes, true)
	bar.SetWriter(w)
	return &MergeProgress{bar: bar}
}

// Observe records that chunk has been appended, adding n bytes. Its
// signature matches service.MergeProgressFunc.
func (p *MergeProgress) Observe(chunk int, n int64) {
	if p.bar == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.bar.IsStarted() {
		p.bar.Start()
	}
	p.bar.Add64(n)
}

// Current returns the bytes merged so far.
func (p *MergeProgress) Current() int64 {
	if p.bar == nil {
		return 0
	}
	return p.bar.Current()
}

// Finish stops the bar.
func (p *MergeProgress) Finish() {
	if p.bar == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar.IsStarted() {
		p.bar.Finish()
	}
}
