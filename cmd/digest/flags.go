package main

import (
	"github.com/urfave/cli/v3"

	dirdigest "github.com/mattkeenan/dirdigest/pkg"
)

// Flags are built fresh for every command; a flag value must not leak between
// commands or between runs of the app.

func newGlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "configuration file",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("DIGEST_CONFIG"),
			),
			Value: dirdigest.DefaultConfigPath(),
		},
		&cli.StringFlag{
			Name:  "debug",
			Usage: "comma-separated debug scopes (scan, hash, compare); implies full tracing",
		},
		&cli.StringSliceFlag{
			Name:  "set",
			Usage: "override a configuration value for this run, as `key:value`",
		},
		&cli.BoolFlag{
			Name:        "verbose",
			Aliases:     []string{"v"},
			Usage:       "report progress on stderr",
			HideDefault: true,
		},
	}
}

func newWalkFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "algorithm",
			Aliases: []string{"a"},
			Usage:   "hash algorithm (md5, sha1, sha256, sha512, blake3, xxh3)",
			Validator: func(value string) error {
				return dirdigest.ValidateHashAlgorithm(value)
			},
		},
		&cli.StringFlag{
			Name:  "ignore-file",
			Usage: "file of regular expressions; matching paths are left out",
		},
		&cli.BoolFlag{
			Name:        "include-hidden",
			Aliases:     []string{"H"},
			Usage:       "include files whose name starts with a dot",
			HideDefault: true,
		},
		&cli.BoolFlag{
			Name:        "skip-hidden-dirs",
			Usage:       "do not descend into directories whose name starts with a dot",
			HideDefault: true,
		},
		&cli.IntFlag{
			Name:    "workers",
			Aliases: []string{"j"},
			Usage:   "files hashed concurrently within one directory",
			Validator: func(value int) error {
				return dirdigest.ValidateHashWorkers(value)
			},
		},
	}
}

func newUniqueFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "unique",
		Aliases:     []string{"u"},
		Usage:       "one digest for the whole tree instead of one per file",
		HideDefault: true,
	}
}

func newOutfileFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "outfile",
		Aliases: []string{"o"},
		Usage:   "write the result to `PATH` instead of standard output",
	}
}

func newReportFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "color",
			Usage: "colour diff output: auto, always or never",
			Validator: func(value string) error {
				return dirdigest.ValidateColorMode(value)
			},
		},
		&cli.BoolFlag{
			Name:        "summary",
			Aliases:     []string{"s"},
			Usage:       "append added/deleted/modified path lists",
			HideDefault: true,
		},
	}
}
