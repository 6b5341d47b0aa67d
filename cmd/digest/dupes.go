package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	dirdigest "github.com/mattkeenan/dirdigest/pkg"
)

func dupesCommandBuilder(rt *runtime) *cli.Command {
	flags := append(newWalkFlags(), newOutfileFlag())

	return &cli.Command{
		Name:      "dupes",
		Usage:     "list files with identical content, from a directory or a hash list file",
		ArgsUsage: "<dir|hashfile>",
		Flags:     flags,
		Before:    rt.before,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireArgs(cmd, 1); err != nil {
				return err
			}
			list, err := rt.listFor(ctx, cmd, cmd.Args().Get(0))
			if err != nil {
				return err
			}
			return rt.emit(cmd, formatDuplicates(list.Duplicates()), false)
		},
	}
}

// listFor hashes target when it is a directory and loads it as a hash list file otherwise
func (rt *runtime) listFor(ctx context.Context, cmd *cli.Command, target string) (*dirdigest.HashList, error) {
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		dir, err := rt.openDirectory(cmd, target)
		if err != nil {
			return nil, err
		}
		return dir.HashList(ctx)
	}
	return loadLabelled(target)
}

func formatDuplicates(groups []dirdigest.DuplicateGroup) string {
	if len(groups) == 0 {
		return "No duplicate files found.\n"
	}

	var b strings.Builder
	for i, group := range groups {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s (%d files)\n", group.Digest, group.Count)
		for _, file := range group.Files {
			fmt.Fprintf(&b, "  %s\n", file)
		}
	}
	return b.String()
}
