package main

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"
)

func configCommandBuilder(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "print the effective configuration",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "save",
				Usage:       "write the effective configuration, --set overrides included, to the config file",
				HideDefault: true,
			},
		},
		Before: rt.before,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("save") {
				if err := rt.cfg.Save(); err != nil {
					return fmt.Errorf("failed to save config: %w", err)
				}
				fmt.Fprintf(rt.stderr, "Configuration saved to %s\n", rt.cfg.Path())
			}
			_, err := io.WriteString(rt.stdout, rt.cfg.String())
			return err
		},
	}
}
