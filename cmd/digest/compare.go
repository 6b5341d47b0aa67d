package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	dirdigest "github.com/mattkeenan/dirdigest/pkg"
)

func compareCommandBuilder(rt *runtime) *cli.Command {
	flags := append(newWalkFlags(), newUniqueFlag(), newOutfileFlag())
	flags = append(flags, newReportFlags()...)

	return &cli.Command{
		Name:      "compare",
		Usage:     "hash two directories and report whether they differ",
		ArgsUsage: "<dir1> <dir2>",
		Flags:     flags,
		Before:    rt.before,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireArgs(cmd, 2); err != nil {
				return err
			}
			return rt.compareDirs(ctx, cmd, cmd.Args().Get(0), cmd.Args().Get(1))
		},
	}
}

func compareFilesCommandBuilder(rt *runtime) *cli.Command {
	flags := append([]cli.Flag{newOutfileFlag()}, newReportFlags()...)

	return &cli.Command{
		Name:      "compare-files",
		Usage:     "compare two hash list files written by compute",
		ArgsUsage: "<file1> <file2>",
		Flags:     flags,
		Before:    rt.before,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireArgs(cmd, 2); err != nil {
				return err
			}
			left, err := loadLabelled(cmd.Args().Get(0))
			if err != nil {
				return err
			}
			right, err := loadLabelled(cmd.Args().Get(1))
			if err != nil {
				return err
			}
			return rt.reportLists(cmd, left, right)
		},
	}
}

func verifyCommandBuilder(rt *runtime) *cli.Command {
	flags := append(newWalkFlags(), newOutfileFlag())
	flags = append(flags, newReportFlags()...)

	return &cli.Command{
		Name:      "verify",
		Usage:     "check a directory against a hash list file written by compute",
		ArgsUsage: "<dir> <hashfile>",
		Flags:     flags,
		Before:    rt.before,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireArgs(cmd, 2); err != nil {
				return err
			}
			recorded, err := loadLabelled(cmd.Args().Get(1))
			if err != nil {
				return err
			}
			dir, err := rt.openDirectory(cmd, cmd.Args().Get(0))
			if err != nil {
				return err
			}
			current, err := dir.HashList(ctx)
			if err != nil {
				return err
			}
			return rt.reportLists(cmd, recorded, current)
		},
	}
}

// compareDirs hashes both trees, concurrently, and reports the outcome
func (rt *runtime) compareDirs(ctx context.Context, cmd *cli.Command, root1, root2 string) error {
	dir1, err := rt.openDirectory(cmd, root1)
	if err != nil {
		return err
	}
	dir2, err := rt.openDirectory(cmd, root2)
	if err != nil {
		return err
	}

	if cmd.Bool("unique") {
		var digest1, digest2 string
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			digest1, err = dir1.Digest(gctx)
			return err
		})
		g.Go(func() (err error) {
			digest2, err = dir2.Digest(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return err
		}

		if digest1 == digest2 {
			return rt.emit(cmd, fmt.Sprintf(dirdigest.DigestsIdenticalFormat, digest1), false)
		}
		report := dirdigest.DigestsDifferentHeader +
			fmt.Sprintf("%s: %s\n%s: %s\n", dir1.Root, digest1, dir2.Root, digest2)
		if err := rt.emit(cmd, report, false); err != nil {
			return err
		}
		return errDiffer
	}

	var list1, list2 *dirdigest.HashList
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		list1, err = dir1.HashList(gctx)
		return err
	})
	g.Go(func() (err error) {
		list2, err = dir2.HashList(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	return rt.reportLists(cmd, list1, list2)
}

// reportLists writes the comparison report of left against right, followed by the
// change summary when requested, and returns errDiffer if they are not equal
func (rt *runtime) reportLists(cmd *cli.Command, left, right *dirdigest.HashList) error {
	minGap := rt.cfg.GetOutputConfig().MinGap
	left.SetMinGap(minGap)
	right.SetMinGap(minGap)

	report, err := left.Compare(right)
	if err != nil {
		return err
	}
	identical := report == dirdigest.IdenticalMessage
	if identical {
		report += "\n"
	}

	if cmd.Bool("summary") {
		report += formatSummary(left.Changes(right))
	}

	if err := rt.emit(cmd, report, !identical); err != nil {
		return err
	}
	if !identical {
		return errDiffer
	}
	return nil
}

// formatSummary lists every differing path with its status marker
func formatSummary(result *dirdigest.StatusResult) string {
	if !result.HasChanges() {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%d path(s) changed:\n", result.TotalChanges())
	groups := []struct {
		status dirdigest.FileStatus
		paths  []string
	}{
		{dirdigest.StatusModified, result.Modified},
		{dirdigest.StatusAdded, result.Added},
		{dirdigest.StatusDeleted, result.Deleted},
	}
	for _, group := range groups {
		for _, path := range group.paths {
			fmt.Fprintf(&b, "  %s %s\n", group.status, path)
		}
	}
	return b.String()
}

// loadLabelled reads a hash list file and labels it with its own path
func loadLabelled(filePath string) (*dirdigest.HashList, error) {
	list, err := dirdigest.LoadHashList(filePath)
	if err != nil {
		return nil, err
	}
	list.SetLabel(filePath)
	return list, nil
}
