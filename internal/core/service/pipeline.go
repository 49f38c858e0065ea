package service

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/hashgen-go/internal/core/domain"
	"github.com/yndnr/hashgen-go/internal/telemetry/logger"
	"github.com/yndnr/hashgen-go/pkg/digest"
)

// Stage names a pipeline stage.
type Stage string

const (
	StageGenerate Stage = "generate"
	StageHash     Stage = "hash"
	StageSort     Stage = "sort"
	StageWrite    Stage = "write"
)

// StageObserver receives the duration of every completed stage.
type StageObserver interface {
	ObserveStage(stage Stage, elapsed time.Duration, records int)
}

// Observers fans a stage observation out to several observers.
type Observers []StageObserver

func (o Observers) ObserveStage(stage Stage, elapsed time.Duration, records int) {
	for _, obs := range o {
		obs.ObserveStage(stage, elapsed, records)
	}
}

// PipelineConfig holds the parameters of one benchmark run.
type PipelineConfig struct {
	OutputPath     string
	FileSizeMB     int
	HashThreads    int
	SortThreads    int
	WriteThreads   int
	MemoryBudgetMB int
	Layout         domain.Layout
	Algorithm      digest.Algorithm
	Seed           uint32
	BufferSize     int
}

// Report summarizes a completed run.
//
// TotalTime covers hashing, sorting and writing; token generation is
// timed separately and excluded, matching how the benchmark is quoted.
type Report struct {
	RunID          string         `json:"run_id" yaml:"run_id"`
	StartedAt      time.Time      `json:"started_at" yaml:"started_at"`
	OutputPath     string         `json:"output_path" yaml:"output_path" table:"wide"`
	Algorithm      string         `json:"algorithm" yaml:"algorithm"`
	FileSizeMB     int            `json:"file_size_mb" yaml:"file_size_mb"`
	MemoryBudgetMB int            `json:"memory_budget_mb" yaml:"memory_budget_mb" table:"wide"`
	HashThreads    int            `json:"hash_threads" yaml:"hash_threads"`
	SortThreads    int            `json:"sort_threads" yaml:"sort_threads"`
	WriteThreads   int            `json:"write_threads" yaml:"write_threads"`
	NonceSize      int            `json:"nonce_size" yaml:"nonce_size" table:"wide"`
	HashSize       int            `json:"hash_size" yaml:"hash_size" table:"wide"`
	RecordSize     int            `json:"record_size" yaml:"record_size" table:"wide"`
	Records        int            `json:"records" yaml:"records"`
	Bytes          int64          `json:"bytes" yaml:"bytes" table:"wide"`
	GenerateTime   float64        `json:"generate_seconds" yaml:"generate_seconds" table:"wide"`
	HashTime       float64        `json:"hash_seconds" yaml:"hash_seconds"`
	SortTime       float64        `json:"sort_seconds" yaml:"sort_seconds"`
	WriteTime      float64        `json:"write_seconds" yaml:"write_seconds"`
	TotalTime      float64        `json:"total_seconds" yaml:"total_seconds"`
	Memory         MemoryAdvisory `json:"memory" yaml:"memory" table:"-"`
}

// Pipeline runs generate, hash, sort and write with a full barrier
// between each stage.
type Pipeline struct {
	cfg       PipelineConfig
	generator *Generator
	hasher    *Hasher
	sorter    *Sorter
	writer    *ChunkedWriter
	observer  StageObserver
	now       func() time.Time
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithObserver reports stage durations to o.
func WithObserver(o StageObserver) PipelineOption {
	return func(p *Pipeline) {
		p.observer = o
	}
}

// WithWriterOptions passes options through to the ChunkedWriter.
func WithWriterOptions(opts ...WriterOption) PipelineOption {
	return func(p *Pipeline) {
		if p.cfg.BufferSize > 0 {
			opts = append([]WriterOption{WithBufferSize(p.cfg.BufferSize)}, opts...)
		}
		p.writer = NewChunkedWriter(opts...)
	}
}

// NewPipeline validates cfg and wires the four stages.
func NewPipeline(cfg PipelineConfig, opts ...PipelineOption) (*Pipeline, error) {
	for _, c := range []struct {
		stage string
		n     int
	}{
		{"hash", cfg.HashThreads},
		{"sort", cfg.SortThreads},
		{"write", cfg.WriteThreads},
	} {
		if err := checkConcurrency(c.stage, c.n); err != nil {
			return nil, err
		}
	}

	hasher, err := NewHasher(cfg.Layout, cfg.Algorithm)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:       cfg,
		generator: NewGenerator(cfg.Layout, cfg.Seed),
		hasher:    hasher,
		sorter:    NewSorter(),
		writer:    NewChunkedWriter(WithBufferSize(cfg.BufferSize)),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Records returns the number of records a run will produce.
func (p *Pipeline) Records() int {
	return p.cfg.Layout.RecordsFor(int64(p.cfg.FileSizeMB) << 20)
}

// Run executes the pipeline once and returns its report.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	runID := ulid.Make().String()
	ctx = logger.WithRunID(ctx, runID)
	log := logger.L(ctx)

	records := p.Records()
	report := p.newReport(runID, records)

	if report.Memory.ExceedsBudget || report.Memory.ExceedsSystem {
		log.Warn("estimated working set exceeds memory budget, budget is advisory only",
			"estimated_bytes", report.Memory.EstimatedBytes,
			"budget_bytes", report.Memory.BudgetBytes,
			"system_bytes", report.Memory.SystemBytes)
	}

	log.Info("run started",
		"records", records,
		"algorithm", p.hasher.Algorithm(),
		"output", p.cfg.OutputPath)

	pairs, err := p.generateAndHash(ctx, records, report)
	if err != nil {
		return nil, err
	}

	sorted, err := p.sort(ctx, pairs, report)
	if err != nil {
		return nil, err
	}

	start := p.now()
	if err := p.writer.Write(ctx, p.cfg.OutputPath, sorted, p.cfg.WriteThreads); err != nil {
		return nil, err
	}
	report.WriteTime = p.finish(StageWrite, start, records)

	report.Bytes = int64(records) * int64(p.cfg.Layout.RecordSize())
	report.TotalTime = report.HashTime + report.SortTime + report.WriteTime

	log.Info("run finished",
		"records", records,
		"bytes", report.Bytes,
		"total_seconds", report.TotalTime)

	return report, nil
}

// generateAndHash keeps the token arena scoped to the first two stages.
func (p *Pipeline) generateAndHash(ctx context.Context, records int, report *Report) ([]domain.Pair, error) {
	start := p.now()
	tokens := p.generator.Generate(records)
	report.GenerateTime = p.finish(StageGenerate, start, records)

	start = p.now()
	pairs, err := p.hasher.Hash(ctx, tokens, p.cfg.HashThreads)
	if err != nil {
		return nil, err
	}
	report.HashTime = p.finish(StageHash, start, records)
	return pairs, nil
}

func (p *Pipeline) sort(ctx context.Context, pairs []domain.Pair, report *Report) ([]domain.Pair, error) {
	start := p.now()
	sorted, err := p.sorter.Sort(ctx, pairs, p.cfg.SortThreads)
	if err != nil {
		return nil, err
	}
	report.SortTime = p.finish(StageSort, start, len(sorted))
	return sorted, nil
}

func (p *Pipeline) finish(stage Stage, start time.Time, records int) float64 {
	elapsed := p.now().Sub(start)
	if p.observer != nil {
		p.observer.ObserveStage(stage, elapsed, records)
	}
	return elapsed.Seconds()
}

func (p *Pipeline) newReport(runID string, records int) *Report {
	l := p.cfg.Layout
	return &Report{
		RunID:          runID,
		StartedAt:      p.now().UTC(),
		OutputPath:     p.cfg.OutputPath,
		Algorithm:      string(p.hasher.Algorithm()),
		FileSizeMB:     p.cfg.FileSizeMB,
		MemoryBudgetMB: p.cfg.MemoryBudgetMB,
		HashThreads:    p.cfg.HashThreads,
		SortThreads:    p.cfg.SortThreads,
		WriteThreads:   p.cfg.WriteThreads,
		NonceSize:      l.TokenSize,
		HashSize:       l.DigestSize,
		RecordSize:     l.RecordSize(),
		Records:        records,
		Memory:         NewMemoryAdvisory(records, l, p.cfg.MemoryBudgetMB),
	}
}
