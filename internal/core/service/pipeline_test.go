package service

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/yndnr/hashgen-go/internal/core/domain"
	"github.com/yndnr/hashgen-go/pkg/digest"
)

type recordingObserver struct {
	mu     sync.Mutex
	stages []Stage
	counts map[Stage]int
}

func (o *recordingObserver) ObserveStage(stage Stage, _ time.Duration, records int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.counts == nil {
		o.counts = make(map[Stage]int)
	}
	o.stages = append(o.stages, stage)
	o.counts[stage] = records
}

func testPipelineConfig(dir string) PipelineConfig {
	return PipelineConfig{
		OutputPath:     filepath.Join(dir, "plot.bin"),
		FileSizeMB:     1,
		HashThreads:    4,
		SortThreads:    4,
		WriteThreads:   4,
		MemoryBudgetMB: 64,
		Layout:         domain.DefaultLayout(),
		Algorithm:      digest.Blake3,
		Seed:           1234,
	}
}

func TestPipeline_Run_OneMegabyte(t *testing.T) {
	dir := t.TempDir()
	cfg := testPipelineConfig(dir)
	obs := &recordingObserver{}

	p, err := NewPipeline(cfg, WithObserver(obs))
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}
	if p.Records() != 65536 {
		t.Fatalf("Records() = %d, want 65536", p.Records())
	}

	report, err := p.Run(testContext())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.Records != 65536 || report.Bytes != 1048576 {
		t.Errorf("report records/bytes = %d/%d, want 65536/1048576", report.Records, report.Bytes)
	}
	if report.RunID == "" {
		t.Error("report has no run ID")
	}
	if report.TotalTime != report.HashTime+report.SortTime+report.WriteTime {
		t.Error("TotalTime should be the sum of hash, sort and write times")
	}

	info, err := os.Stat(cfg.OutputPath)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Size() != 1048576 {
		t.Errorf("output size = %d, want 1048576", info.Size())
	}

	sum, _ := digest.New(digest.Blake3, 10)
	if _, err := Verify(cfg.OutputPath, cfg.Layout, sum); err != nil {
		t.Errorf("Verify() error = %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected only the output file in %s, found %d entries", dir, len(entries))
	}

	want := []Stage{StageGenerate, StageHash, StageSort, StageWrite}
	if len(obs.stages) != len(want) {
		t.Fatalf("observed stages = %v, want %v", obs.stages, want)
	}
	for i := range want {
		if obs.stages[i] != want[i] {
			t.Errorf("stage %d = %s, want %s", i, obs.stages[i], want[i])
		}
		if obs.counts[want[i]] != 65536 {
			t.Errorf("stage %s records = %d, want 65536", want[i], obs.counts[want[i]])
		}
	}
}

func TestPipeline_DeterministicWithSeed(t *testing.T) {
	var outputs [][]byte
	for _, threads := range []int{1, 8} {
		cfg := testPipelineConfig(t.TempDir())
		cfg.HashThreads, cfg.SortThreads, cfg.WriteThreads = threads, threads, threads

		p, err := NewPipeline(cfg)
		if err != nil {
			t.Fatalf("NewPipeline() error = %v", err)
		}
		if _, err := p.Run(testContext()); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		data, err := os.ReadFile(cfg.OutputPath)
		if err != nil {
			t.Fatal(err)
		}
		outputs = append(outputs, data)
	}

	// Equal digests may be ordered differently, so only compare sizes and
	// the digest column.
	if len(outputs[0]) != len(outputs[1]) {
		t.Fatalf("output sizes differ: %d vs %d", len(outputs[0]), len(outputs[1]))
	}
	for off := 0; off < len(outputs[0]); off += 16 {
		if string(outputs[0][off:off+10]) != string(outputs[1][off:off+10]) {
			t.Fatalf("digest column differs at offset %d", off)
		}
	}
}

func TestNewPipeline_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PipelineConfig)
		want   error
	}{
		{"zero hash threads", func(c *PipelineConfig) { c.HashThreads = 0 }, domain.ErrInvalidConcurrency},
		{"negative write threads", func(c *PipelineConfig) { c.WriteThreads = -1 }, domain.ErrInvalidConcurrency},
		{"unknown algorithm", func(c *PipelineConfig) { c.Algorithm = "crc" }, domain.ErrUnknownAlgorithm},
		{"bad layout", func(c *PipelineConfig) { c.Layout.DigestSize = 0 }, domain.ErrInvalidLayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testPipelineConfig(t.TempDir())
			tt.mutate(&cfg)
			if _, err := NewPipeline(cfg); !errors.Is(err, tt.want) {
				t.Errorf("NewPipeline() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewMemoryAdvisory(t *testing.T) {
	layout := domain.DefaultLayout()

	a := NewMemoryAdvisory(65536, layout, 1)
	if a.BudgetBytes != 1<<20 {
		t.Errorf("BudgetBytes = %d, want %d", a.BudgetBytes, 1<<20)
	}
	if !a.ExceedsBudget {
		t.Error("65536 records should exceed a 1MB budget")
	}

	unset := NewMemoryAdvisory(65536, layout, 0)
	if unset.BudgetBytes != 0 || unset.ExceedsBudget {
		t.Errorf("zero budget should be unset, got %+v", unset)
	}

	if got := EstimateWorkingSet(0, layout); got != 0 {
		t.Errorf("EstimateWorkingSet(0) = %d, want 0", got)
	}
}
