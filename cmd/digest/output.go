package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// diffStyles holds the styles of the unified diff line kinds
type diffStyles struct {
	header  lipgloss.Style
	hunk    lipgloss.Style
	added   lipgloss.Style
	removed lipgloss.Style
}

func newDiffStyles(w io.Writer) diffStyles {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI)

	return diffStyles{
		header:  r.NewStyle().Bold(true),
		hunk:    r.NewStyle().Foreground(lipgloss.Color("6")),
		added:   r.NewStyle().Foreground(lipgloss.Color("2")),
		removed: r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// colorize styles every diff line of report; other lines pass through
func colorize(w io.Writer, report string) string {
	styles := newDiffStyles(w)

	lines := strings.SplitAfter(report, "\n")
	var b strings.Builder
	for _, line := range lines {
		body := strings.TrimSuffix(line, "\n")
		nl := line[len(body):]

		switch {
		case body == "":
			b.WriteString(line)
			continue
		case strings.HasPrefix(body, "+++"), strings.HasPrefix(body, "---"):
			body = styles.header.Render(body)
		case strings.HasPrefix(body, "@@"):
			body = styles.hunk.Render(body)
		case strings.HasPrefix(body, "+"):
			body = styles.added.Render(body)
		case strings.HasPrefix(body, "-"):
			body = styles.removed.Render(body)
		}
		b.WriteString(body)
		b.WriteString(nl)
	}
	return b.String()
}

// useColor decides whether a report for stdout gets styled
func (rt *runtime) useColor(cmd *cli.Command) bool {
	mode := rt.cfg.GetOutputConfig().Color
	if cmd.IsSet("color") {
		mode = cmd.String("color")
	}

	switch strings.ToLower(mode) {
	case "always":
		return true
	case "never":
		return false
	}

	f, ok := rt.stdout.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// emit writes report to --outfile when given, otherwise to stdout. Only stdout output
// is ever coloured.
func (rt *runtime) emit(cmd *cli.Command, report string, styled bool) error {
	if outfile := cmd.String("outfile"); outfile != "" {
		if err := os.WriteFile(outfile, []byte(report), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outfile, err)
		}
		return nil
	}

	if styled && rt.useColor(cmd) {
		report = colorize(rt.stdout, report)
	}
	_, err := io.WriteString(rt.stdout, report)
	return err
}
