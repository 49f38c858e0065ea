package command

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/hashgen-go/internal/cli/output"
	"github.com/yndnr/hashgen-go/internal/config"
	"github.com/yndnr/hashgen-go/internal/core/service"
	"github.com/yndnr/hashgen-go/internal/storage"
	"github.com/yndnr/hashgen-go/internal/telemetry/logger"
	"github.com/yndnr/hashgen-go/internal/telemetry/metric"
)

// RunCommand returns the run command. It is the same as invoking hashgen
// without a subcommand.
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:   "run",
		Usage:  "Run the benchmark",
		Flags:  benchFlags(),
		Action: runBench,
	}
}

// benchFlags returns the benchmark flags. The short names follow the
// classic tool's command line.
func benchFlags() []cli.Flag {
	return append([]cli.Flag{
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "Output file",
		},
		&cli.IntFlag{
			Name:    "size",
			Aliases: []string{"s"},
			Usage:   "Target file size in MB",
		},
		&cli.IntFlag{
			Name:    "hash-threads",
			Aliases: []string{"t"},
			Usage:   "Number of hash threads (default: number of CPUs)",
		},
		&cli.IntFlag{
			Name:    "sort-threads",
			Aliases: []string{"o"},
			Usage:   "Number of sort threads (default: number of CPUs)",
		},
		&cli.IntFlag{
			Name:    "write-threads",
			Aliases: []string{"i"},
			Usage:   "Number of write threads, one chunk each (default: number of CPUs)",
		},
		&cli.IntFlag{
			Name:    "memory",
			Aliases: []string{"m"},
			Usage:   "Memory budget in MB, reported but not enforced",
		},
		&cli.UintFlag{
			Name:  "seed",
			Usage: "Seed for the token generator, 0 for a random stream",
		},
		&cli.IntFlag{
			Name:  "buffer-size",
			Usage: "Write buffer size in bytes per file",
		},
		&cli.StringFlag{
			Name:  "metrics-file",
			Usage: "Write stage timings to this file in Prometheus text format",
		},
	}, recordFlags()...)
}

// recordFlags returns the flags describing the record layout.
func recordFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "algorithm",
			Aliases: []string{"a"},
			Usage:   "Digest algorithm (see 'hashgen algorithms')",
		},
		&cli.IntFlag{
			Name:  "nonce-size",
			Usage: "Token size in bytes",
		},
		&cli.IntFlag{
			Name:  "hash-size",
			Usage: "Digest size in bytes",
		},
	}
}

func runBench(c *cli.Context) error {
	cfg, ctx, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := config.Verify(cfg); err != nil {
		return err
	}

	human := tableFormat(c)
	w := stdout(c)
	if human {
		printConfig(w, cfg)
	}

	report, err := execute(ctx, c, cfg, human)
	if err != nil {
		return err
	}

	if human {
		fmt.Fprintf(w, "Total time: %.4f seconds\n", report.TotalTime)
	} else if err := render(c, report); err != nil {
		return err
	}

	return persist(ctx, cfg, report)
}

func execute(ctx context.Context, c *cli.Context, cfg *config.BenchConfig, human bool) (*service.Report, error) {
	var observers service.Observers
	if human {
		observers = append(observers, &timingPrinter{w: stdout(c)})
	}
	var registry *metric.Registry
	if cfg.MetricsFile != "" {
		registry = metric.NewRegistry()
		observers = append(observers, registry)
	}

	pcfg := cfg.PipelineConfig()
	totalBytes := int64(pcfg.Layout.RecordsFor(int64(pcfg.FileSizeMB)<<20)) * int64(pcfg.Layout.RecordSize())
	progress := output.NewMergeProgress(c.App.ErrWriter, totalBytes)
	defer progress.Finish()

	p, err := service.NewPipeline(pcfg,
		service.WithObserver(observers),
		service.WithWriterOptions(service.WithMergeProgress(progress.Observe)))
	if err != nil {
		return nil, err
	}

	report, err := p.Run(ctx)
	if err != nil {
		return nil, err
	}

	if registry != nil {
		registry.ObserveRun(report)
		if err := registry.WriteTextfile(cfg.MetricsFile); err != nil {
			return nil, err
		}
	}
	return report, nil
}

// persist stores report in the history database when one is configured.
func persist(ctx context.Context, cfg *config.BenchConfig, report *service.Report) error {
	if cfg.HistoryDir == "" {
		return nil
	}

	store, err := storage.OpenBadgerStore(storage.DefaultStoreConfig(cfg.HistoryDir), logger.FromContext(ctx))
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer store.Close()

	if err := store.Save(ctx, report); err != nil {
		return err
	}
	logger.L(ctx).Debug("run report saved", "run_id", report.RunID, "dir", cfg.HistoryDir)
	return nil
}

// printConfig echoes the run parameters in KEY=VALUE form.
func printConfig(w io.Writer, cfg *config.BenchConfig) {
	layout := cfg.Layout()
	fmt.Fprintf(w, "NUM_THREADS_HASH=%d\n", cfg.HashThreads)
	fmt.Fprintf(w, "NUM_THREADS_SORT=%d\n", cfg.SortThreads)
	fmt.Fprintf(w, "NUM_THREADS_WRITE=%d\n", cfg.WriteThreads)
	fmt.Fprintf(w, "FILENAME=%s\n", cfg.OutputPath)
	fmt.Fprintf(w, "MEMORY_SIZE=%dMB\n", cfg.MemoryBudgetMB)
	fmt.Fprintf(w, "FILESIZE=%dMB\n", cfg.FileSizeMB)
	fmt.Fprintf(w, "RECORD_SIZE=%dB\n", layout.RecordSize())
	fmt.Fprintf(w, "HASH_SIZE=%dB\n", layout.DigestSize)
	fmt.Fprintf(w, "NONCE_SIZE=%dB\n", layout.TokenSize)
	fmt.Fprintf(w, "ALGORITHM=%s\n", cfg.Algorithm)
}

// timingPrinter prints each timed stage as soon as it completes.
type timingPrinter struct {
	w io.Writer
}

var stageLabels = map[service.Stage]string{
	service.StageGenerate: "Generate time",
	service.StageHash:     "Hash time",
	service.StageSort:     "Sort time",
	service.StageWrite:    "Write time",
}

func (p *timingPrinter) ObserveStage(stage service.Stage, elapsed time.Duration, _ int) {
	fmt.Fprintf(p.w, "%s: %.4f seconds\n", stageLabels[stage], elapsed.Seconds())
}

