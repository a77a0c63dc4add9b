// parity compares the Python and R outputs of the nprobust port and prints a
// diagnostic report of their differences.
//
// Usage:
//
//	parity                      # compare the CSVs in the current directory
//	parity --dir results/       # compare the CSVs under results/
//	parity --format json | jq   # machine-readable report
//
// Output modes:
//
//	plain     the classic fixed-width text report (default)
//	terminal  styled Unicode output
//	json      structured JSON for automation
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/dkoosis/parity/internal/config"
	"github.com/dkoosis/parity/internal/logging"
	"github.com/dkoosis/parity/internal/pager"
	"github.com/dkoosis/parity/internal/version"
	"github.com/dkoosis/parity/pkg/compare"
	"github.com/dkoosis/parity/pkg/mapper"
	"github.com/dkoosis/parity/pkg/pattern"
	"github.com/dkoosis/parity/pkg/render"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("parity", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dirFlag := fs.String("dir", ".", "Directory holding the result CSVs")
	configFlag := fs.String("config", "", "Comparison plan file (default: built-in nprobust plan)")
	formatFlag := fs.String("format", "", "Output format: plain, terminal, json (default plain)")
	themeFlag := fs.String("theme", "", "Theme: default, orca, mono")
	pagerFlag := fs.Bool("pager", false, "Page terminal output")
	versionFlag := fs.Bool("version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "parity: unexpected argument %q\n", fs.Arg(0))
		return 2
	}
	if *versionFlag {
		fmt.Fprintln(stdout, version.String())
		return 0
	}

	log := logging.FromEnv(stderr)
	defer func() { _ = log.Sync() }()

	plan, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(stderr, "parity: %v\n", err)
		return 2
	}
	tty := isTTYWriter(stdout)
	out, err := config.Resolve(config.Flags{Format: *formatFlag, Theme: *themeFlag, Pager: *pagerFlag},
		plan.Output, tty, os.Getenv)
	if err != nil {
		fmt.Fprintf(stderr, "parity: %v\n", err)
		return 2
	}
	log.Debugw("resolved configuration",
		"plan", planSource(plan), "dir", *dirFlag,
		"format", out.Format, "format_source", out.FormatSource,
		"theme", out.Theme, "theme_source", out.ThemeSource)

	patterns, runErr := report(plan.Resolve(*dirFlag), log)

	width, _ := termSize(stdout)
	output := render.ByFormat(out.Format, render.ThemeByName(out.Theme), width).Render(patterns)
	if err := emit(output, out.Pager, stdin, stdout); err != nil {
		fmt.Fprintf(stderr, "parity: %v\n", err)
		return 1
	}

	if runErr != nil {
		fmt.Fprintf(stderr, "parity: %v\n", runErr)
		return 1
	}
	return 0
}

// report runs the plan in order. On a hard failure it returns the patterns
// produced so far together with the error.
func report(plan *config.Plan, log *zap.SugaredLogger) ([]pattern.Pattern, error) {
	cmp := compare.New(plan.Thresholds, log)
	patterns := mapper.Title(plan.Title)

	for _, pair := range plan.Comparisons {
		o, err := cmp.Files(pair)
		if err != nil {
			return patterns, err
		}
		patterns = append(patterns, mapper.FromOutcome(o, plan.Thresholds)...)
	}

	d, err := cmp.Datasets(plan.Dataset)
	if err != nil {
		return patterns, err
	}
	patterns = append(patterns, mapper.FromDataset(d)...)

	return append(patterns, mapper.Footer()...), nil
}

func emit(output string, usePager bool, stdin io.Reader, stdout io.Writer) error {
	if !usePager {
		_, err := fmt.Fprint(stdout, output)
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return pager.Run(ctx, output, stdin, stdout)
}

func planSource(p *config.Plan) string {
	if p.Source == "" {
		return "default"
	}
	return p.Source
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termSize returns the terminal dimensions for w, defaulting to 80x24.
func termSize(w io.Writer) (width, height int) {
	width, height = 80, 24
	if f, ok := w.(*os.File); ok {
		if tw, th, err := term.GetSize(int(f.Fd())); err == nil {
			if tw > 0 {
				width = tw
			}
			if th > 0 {
				height = th
			}
		}
	}
	return width, height
}
