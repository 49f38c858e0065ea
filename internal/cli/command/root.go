package command

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/hashgen-go/internal/cli/output"
	"github.com/yndnr/hashgen-go/internal/config"
	"github.com/yndnr/hashgen-go/internal/infra/buildinfo"
	"github.com/yndnr/hashgen-go/internal/telemetry/logger"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "hashgen",
		Usage:   "benchmark generating, hashing, sorting and writing fixed-size records",
		Version: buildinfo.String(),
		Flags:   append(globalFlags(), benchFlags()...),
		Action:  runBench,
		Commands: []*cli.Command{
			RunCommand(),
			VerifyCommand(),
			HistoryCommand(),
			ConfigCommand(),
			AlgorithmsCommand(),
		},
	}
}

// globalFlags returns the flags shared by every command.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML configuration file",
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "Output format: table, json, yaml",
			Value: "table",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
		&cli.StringFlag{
			Name:  "history-dir",
			Usage: "Directory of the run history database",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format: text, json",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Log at debug level",
		},
	}
}

// GlobalFlags holds the presentation flags.
type GlobalFlags struct {
	ConfigFile string
	Format     string
	Wide       bool
	Verbose    bool
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		ConfigFile: c.String("config"),
		Format:     c.String("format"),
		Wide:       c.Bool("wide"),
		Verbose:    c.Bool("verbose"),
	}
}

// binding maps a command-line flag to a configuration key.
type binding struct {
	flag string
	key  string
}

var bindings = []binding{
	{"file", "output_path"},
	{"size", "file_size_mb"},
	{"hash-threads", "hash_threads"},
	{"sort-threads", "sort_threads"},
	{"write-threads", "write_threads"},
	{"memory", "memory_budget_mb"},
	{"algorithm", "algorithm"},
	{"seed", "seed"},
	{"buffer-size", "buffer_size"},
	{"metrics-file", "metrics_file"},
	{"nonce-size", "record.nonce_size"},
	{"hash-size", "record.hash_size"},
	{"history-dir", "history_dir"},
	{"log-level", "log.level"},
	{"log-format", "log.format"},
}

// flagOverrides collects the flags the user set explicitly, so that unset
// flags do not mask values from the environment or the config file.
func flagOverrides(c *cli.Context) map[string]any {
	overrides := make(map[string]any)
	for _, b := range bindings {
		if c.IsSet(b.flag) {
			overrides[b.key] = c.Value(b.flag)
		}
	}
	if c.Bool("verbose") {
		overrides["log.level"] = "debug"
	}
	return overrides
}

// loadConfig builds the effective configuration and installs the logger it
// describes. The returned context carries that logger.
func loadConfig(c *cli.Context) (*config.BenchConfig, context.Context, error) {
	cfg, err := config.Load(c.String("config"), flagOverrides(c))
	if err != nil {
		return nil, nil, err
	}

	l, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: c.App.ErrWriter,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(l)

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	return cfg, logger.WithLogger(ctx, l), nil
}

// render writes data to the app's writer in the selected format.
func render(c *cli.Context, data any) error {
	flags := ParseGlobalFlags(c)
	format, err := output.ParseFormat(flags.Format)
	if err != nil {
		return err
	}
	return output.NewFormatter(format, flags.Wide).Format(c.App.Writer, data)
}

// tableFormat reports whether the user asked for human-readable output.
func tableFormat(c *cli.Context) bool {
	format, err := output.ParseFormat(c.String("format"))
	return err == nil && format == output.FormatTable
}

func stdout(c *cli.Context) io.Writer {
	return c.App.Writer
}
