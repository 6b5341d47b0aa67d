package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/urfave/cli/v3"

	dirdigest "github.com/mattkeenan/dirdigest/pkg"
)

func init() {
	// -v is taken by --verbose
	cli.VersionFlag = &cli.BoolFlag{
		Name:        "version",
		Usage:       "print the version",
		HideDefault: true,
	}
}

// runtime carries what every command needs once the global flags are parsed
type runtime struct {
	cfg    *dirdigest.Config
	stdout io.Writer
	stderr io.Writer
}

// newApp builds the command tree. Output goes to stdout and stderr so tests can
// capture it.
func newApp(stdout, stderr io.Writer) *cli.Command {
	rt := &runtime{
		stdout: stdout,
		stderr: stderr,
	}

	app := &cli.Command{
		Name:                  "digest",
		Usage:                 "fingerprint directory trees and compare them",
		Version:               version,
		Writer:                stdout,
		ErrWriter:             stderr,
		Flags:                 newGlobalFlags(),
		EnableShellCompletion: true,

		// --set debug:scan,hash must reach ApplyOverrides in one piece
		DisableSliceFlagSeparator: true,
	}

	app.Commands = append(app.Commands,
		computeCommandBuilder(rt),
		compareCommandBuilder(rt),
		compareFilesCommandBuilder(rt),
		verifyCommandBuilder(rt),
		dupesCommandBuilder(rt),
		configCommandBuilder(rt),
	)

	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app
}

// before runs ahead of every subcommand action, once global flags given after the
// subcommand name have been parsed too
func (rt *runtime) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	return ctx, rt.setup(cmd)
}

// setup builds the validated configuration from the file and the --set overrides, then
// configures logging
func (rt *runtime) setup(cmd *cli.Command) error {
	cfg, err := dirdigest.LoadConfig(cmd.String("config"))
	if err != nil {
		return err
	}
	if err := cfg.ApplyOverrides(cmd.StringSlice("set")); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", cfg.Path(), err)
	}
	rt.cfg = cfg

	verbose := cfg.GetVerboseConfig()

	level := verbose.Level
	debug := verbose.Debug
	if cmd.Bool("verbose") && level < 1 {
		level = 1
	}
	if cmd.IsSet("debug") {
		debug = cmd.String("debug")
		level = 3
	}

	dirdigest.SetLogOutput(rt.stderr)
	dirdigest.SetVerboseLevel(level)
	dirdigest.SetDebugFlags(debug)
	return nil
}

// scanOptions merges the walk flags of cmd over the configured walk options
func (rt *runtime) scanOptions(cmd *cli.Command) (dirdigest.ScanOptions, error) {
	opts, err := rt.cfg.ScanOptions()
	if err != nil {
		return dirdigest.ScanOptions{}, err
	}

	if cmd.IsSet("include-hidden") {
		opts.IncludeHidden = cmd.Bool("include-hidden")
	}
	if cmd.IsSet("skip-hidden-dirs") {
		opts.SkipHiddenDirs = cmd.Bool("skip-hidden-dirs")
	}
	if cmd.IsSet("algorithm") {
		opts.Algorithm = cmd.String("algorithm")
	}
	if cmd.IsSet("workers") {
		opts.Workers = cmd.Int("workers")
	}
	if cmd.IsSet("ignore-file") {
		matcher, err := dirdigest.LoadIgnoreFile(cmd.String("ignore-file"))
		if err != nil {
			return dirdigest.ScanOptions{}, err
		}
		opts.Ignore = matcher
	}

	return opts, nil
}

// openDirectory validates dir and prepares it for hashing with the merged options
func (rt *runtime) openDirectory(cmd *cli.Command, dir string) (*dirdigest.Directory, error) {
	opts, err := rt.scanOptions(cmd)
	if err != nil {
		return nil, err
	}
	return dirdigest.NewDirectory(dir, opts)
}

// requireArgs fails unless exactly n positional arguments were given
func requireArgs(cmd *cli.Command, n int) error {
	if cmd.NArg() != n {
		return fmt.Errorf("%s: expected %d argument(s), got %d (usage: %s %s)",
			cmd.Name, n, cmd.NArg(), cmd.FullName(), cmd.ArgsUsage)
	}
	return nil
}
