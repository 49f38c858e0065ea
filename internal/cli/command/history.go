package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/hashgen-go/internal/storage"
	"github.com/yndnr/hashgen-go/internal/telemetry/logger"
)

// HistoryCommand returns the history command group.
func HistoryCommand() *cli.Command {
	limit := &cli.IntFlag{
		Name:    "limit",
		Aliases: []string{"n"},
		Usage:   "Show at most this many runs, 0 for all",
		Value:   20,
	}

	return &cli.Command{
		Name:   "history",
		Usage:  "Show past benchmark runs (requires --history-dir)",
		Flags:  []cli.Flag{limit},
		Action: historyList,
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List runs, newest first",
				Flags:  []cli.Flag{limit},
				Action: historyList,
			},
			{
				Name:      "show",
				Usage:     "Show one run",
				ArgsUsage: "RUN_ID",
				Action:    historyShow,
			},
			{
				Name:  "prune",
				Usage: "Delete all but the newest runs",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "keep",
						Usage: "Number of runs to keep",
						Value: 100,
					},
				},
				Action: historyPrune,
			},
		},
	}
}

// withHistory opens the configured history database for the duration of fn.
func withHistory(c *cli.Context, fn func(ctx context.Context, store storage.ReportStore) error) error {
	cfg, ctx, err := loadConfig(c)
	if err != nil {
		return err
	}
	if cfg.HistoryDir == "" {
		return errors.New("history: --history-dir (or history_dir) is not set")
	}

	store, err := storage.OpenBadgerStore(storage.DefaultStoreConfig(cfg.HistoryDir), logger.FromContext(ctx))
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer store.Close()

	return fn(ctx, store)
}

func historyList(c *cli.Context) error {
	return withHistory(c, func(ctx context.Context, store storage.ReportStore) error {
		reports, err := store.List(ctx, c.Int("limit"))
		if err != nil {
			return err
		}
		return render(c, reports)
	})
}

func historyShow(c *cli.Context) error {
	runID := c.Args().First()
	if runID == "" {
		return errors.New("history show: RUN_ID is required")
	}

	return withHistory(c, func(ctx context.Context, store storage.ReportStore) error {
		report, err := store.Get(ctx, runID)
		if err != nil {
			return err
		}
		return render(c, report)
	})
}

func historyPrune(c *cli.Context) error {
	return withHistory(c, func(ctx context.Context, store storage.ReportStore) error {
		deleted, err := store.Prune(ctx, c.Int("keep"))
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "Deleted %d run(s).\n", deleted)
		return nil
	})
}
