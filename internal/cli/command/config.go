package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/hashgen-go/internal/cli/output"
	"github.com/yndnr/hashgen-go/internal/config"
	"github.com/yndnr/hashgen-go/pkg/digest"
)

// ConfigCommand returns the config command group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect the effective configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Print the merged configuration (defaults, file, environment, flags)",
				Flags:  benchFlags(),
				Action: configShow,
			},
			{
				Name:   "validate",
				Usage:  "Check the merged configuration without running",
				Flags:  benchFlags(),
				Action: configValidate,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	cfg, _, err := loadConfig(c)
	if err != nil {
		return err
	}

	// A flat table cannot show the nested sections.
	if tableFormat(c) {
		return (&output.YAMLFormatter{}).Format(c.App.Writer, cfg)
	}
	return render(c, cfg)
}

func configValidate(c *cli.Context) error {
	cfg, _, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := config.Verify(cfg); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "Configuration is valid.")
	return nil
}

// AlgorithmsCommand returns the algorithms command.
func AlgorithmsCommand() *cli.Command {
	return &cli.Command{
		Name:   "algorithms",
		Usage:  "List the available digest algorithms",
		Action: algorithmsList,
	}
}

type algorithmRow struct {
	Name       string `json:"name" yaml:"name"`
	OutputSize int    `json:"output_size" yaml:"output_size"`
	Default    bool   `json:"default" yaml:"default"`
}

func algorithmsList(c *cli.Context) error {
	var rows []algorithmRow
	for _, alg := range digest.Algorithms() {
		size, err := digest.OutputSize(alg)
		if err != nil {
			return err
		}
		rows = append(rows, algorithmRow{
			Name:       string(alg),
			OutputSize: size,
			Default:    alg == digest.Default,
		})
	}
	return render(c, rows)
}
