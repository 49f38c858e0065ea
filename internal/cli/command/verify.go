package command

import (
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/hashgen-go/internal/core/service"
	"github.com/yndnr/hashgen-go/internal/telemetry/logger"
	"github.com/yndnr/hashgen-go/pkg/digest"
)

// VerifyCommand returns the verify command.
func VerifyCommand() *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "Check that an output file holds whole records in digest order",
		ArgsUsage: "[FILE]",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:    "digests",
				Aliases: []string{"d"},
				Usage:   "Also recompute every digest from its token",
			},
		}, recordFlags()...),
		Action: verifyAction,
	}
}

func verifyAction(c *cli.Context) error {
	cfg, ctx, err := loadConfig(c)
	if err != nil {
		return err
	}

	path := c.Args().First()
	if path == "" {
		path = cfg.OutputPath
	}
	if path == "" {
		return errors.New("verify: no file given and output_path is not configured")
	}

	layout := cfg.Layout()
	var sum digest.Func
	if c.Bool("digests") {
		sum, err = digest.New(digest.Algorithm(cfg.Algorithm), layout.DigestSize)
		if err != nil {
			return err
		}
	}

	res, verr := service.Verify(path, layout, sum)
	if res == nil {
		return verr
	}
	logger.L(ctx).Debug("verified output",
		"path", path,
		"records", res.Records,
		"sorted", res.Sorted,
		"digest_mismatches", res.DigestMismatches)

	if err := render(c, res); err != nil {
		return err
	}
	return verr
}
