package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v3"
)

func computeCommandBuilder(rt *runtime) *cli.Command {
	flags := append(newWalkFlags(), newUniqueFlag(), newOutfileFlag())

	return &cli.Command{
		Name:      "compute",
		Usage:     "print the per-file hash list, or the single digest, of a directory",
		ArgsUsage: "<dir>",
		Flags:     flags,
		Before:    rt.before,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireArgs(cmd, 1); err != nil {
				return err
			}
			return rt.compute(ctx, cmd, cmd.Args().Get(0))
		},
	}
}

func (rt *runtime) compute(ctx context.Context, cmd *cli.Command, root string) error {
	dir, err := rt.openDirectory(cmd, root)
	if err != nil {
		return err
	}
	outfile := cmd.String("outfile")

	if cmd.Bool("unique") {
		digest, err := dir.Digest(ctx)
		if err != nil {
			return err
		}
		if outfile != "" {
			return rt.emit(cmd, digest+"\n", false)
		}
		return rt.emit(cmd, fmt.Sprintf("%s digest of %s:\n%s\n", dir.Algorithm().Name, dir.Root, digest), false)
	}

	list, err := dir.HashList(ctx)
	if err != nil {
		return err
	}
	list.SetMinGap(rt.cfg.GetOutputConfig().MinGap)

	if outfile == "" {
		_, err := list.WriteTo(rt.stdout)
		return err
	}

	if err := list.WriteFile(outfile); err != nil {
		return err
	}
	abs, err := filepath.Abs(outfile)
	if err != nil {
		abs = outfile
	}
	fmt.Fprintf(rt.stderr, "Digests written to %s\n", abs)
	return nil
}
