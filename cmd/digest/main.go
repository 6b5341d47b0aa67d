package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

// Exit codes follow diff(1): differences are not errors
const (
	exitOK      = 0
	exitDiffer  = 1
	exitFailure = 2
)

// errDiffer is returned by a comparison that completed and found differences
var errDiffer = errors.New("differences found")

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	os.Exit(realMain())
}

func realMain() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return run(ctx, newApp(os.Stdout, os.Stderr), os.Args)
}

// run executes app and maps its outcome to an exit code, printing any error to stderr
func run(ctx context.Context, app *cli.Command, args []string) int {
	err := app.Run(ctx, args)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errDiffer):
		return exitDiffer
	default:
		printError(app.ErrWriter, err)
		return exitFailure
	}
}

func printError(w io.Writer, err error) {
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "digest: %v\n", err)
}
