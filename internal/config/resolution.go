package config

import (
	"fmt"
	"slices"
)

// Output formats accepted by --format and the plan file.
const (
	FormatTerminal = "terminal"
	FormatPlain    = "plain"
	FormatJSON     = "json"
)

// Formats lists every accepted format value.
var Formats = []string{FormatPlain, FormatTerminal, FormatJSON}

// Themes lists every accepted theme value.
var Themes = []string{"default", "orca", "mono"}

// Flags holds the output settings given on the command line. Empty means unset.
type Flags struct {
	Format string
	Theme  string
	Pager  bool
}

// Resolved is the final output configuration after applying all priority rules.
type Resolved struct {
	Format string
	Theme  string
	Pager  bool

	// Resolution metadata, for debug logging.
	FormatSource string // "cli", "file", "default"
	ThemeSource  string // "cli", "env", "file", "default"
}

// Resolve settles format and theme. Priority: CLI > env > file > default.
// The default format is plain whether or not stdout is a TTY; styled output
// is opt-in. NO_COLOR forces the mono theme unless --theme was given. The
// pager only runs on a TTY and never for JSON.
func Resolve(flags Flags, file Output, isTTY bool, getenv func(string) string) (*Resolved, error) {
	r := &Resolved{Format: FormatPlain, FormatSource: "default", Theme: "default", ThemeSource: "default"}

	switch {
	case flags.Format != "":
		r.Format, r.FormatSource = flags.Format, "cli"
	case file.Format != "":
		r.Format, r.FormatSource = file.Format, "file"
	}
	if !slices.Contains(Formats, r.Format) {
		return nil, fmt.Errorf("unknown format %q (want one of %v)", r.Format, Formats)
	}

	switch {
	case flags.Theme != "":
		r.Theme, r.ThemeSource = flags.Theme, "cli"
	case getenv != nil && getenv("NO_COLOR") != "":
		r.Theme, r.ThemeSource = "mono", "env"
	case file.Theme != "":
		r.Theme, r.ThemeSource = file.Theme, "file"
	}
	if !slices.Contains(Themes, r.Theme) {
		return nil, fmt.Errorf("unknown theme %q (want one of %v)", r.Theme, Themes)
	}

	r.Pager = flags.Pager && isTTY && r.Format != FormatJSON
	return r, nil
}
