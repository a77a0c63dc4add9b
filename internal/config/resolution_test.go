package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestResolve_PriorityOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		flags           Flags
		file            Output
		tty             bool
		env             map[string]string
		wantFormat      string
		wantTheme       string
		wantThemeSource string
		wantPager       bool
	}{
		{name: "no flags on tty is plain", tty: true, wantFormat: FormatPlain, wantTheme: "default", wantThemeSource: "default"},
		{name: "no flags piped is plain", wantFormat: FormatPlain, wantTheme: "default", wantThemeSource: "default"},
		{name: "terminal is opt-in", flags: Flags{Format: FormatTerminal}, tty: true, wantFormat: FormatTerminal, wantTheme: "default", wantThemeSource: "default"},
		{name: "cli format beats file", flags: Flags{Format: FormatJSON}, file: Output{Format: FormatPlain}, wantFormat: FormatJSON, wantTheme: "default", wantThemeSource: "default"},
		{name: "file format used", file: Output{Format: FormatTerminal}, wantFormat: FormatTerminal, wantTheme: "default", wantThemeSource: "default"},
		{name: "NO_COLOR beats file theme", file: Output{Theme: "orca"}, env: map[string]string{"NO_COLOR": "1"}, wantFormat: FormatPlain, wantTheme: "mono", wantThemeSource: "env"},
		{name: "cli theme beats NO_COLOR", flags: Flags{Theme: "orca"}, env: map[string]string{"NO_COLOR": "1"}, wantFormat: FormatPlain, wantTheme: "orca", wantThemeSource: "cli"},
		{name: "pager on tty", flags: Flags{Pager: true}, tty: true, wantFormat: FormatPlain, wantTheme: "default", wantThemeSource: "default", wantPager: true},
		{name: "pager dropped when piped", flags: Flags{Pager: true, Format: FormatTerminal}, wantFormat: FormatTerminal, wantTheme: "default", wantThemeSource: "default"},
		{name: "pager dropped for json", flags: Flags{Pager: true, Format: FormatJSON}, tty: true, wantFormat: FormatJSON, wantTheme: "default", wantThemeSource: "default"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r, err := Resolve(tc.flags, tc.file, tc.tty, env(tc.env))
			require.NoError(t, err)
			assert.Equal(t, tc.wantFormat, r.Format)
			assert.Equal(t, tc.wantTheme, r.Theme)
			assert.Equal(t, tc.wantThemeSource, r.ThemeSource)
			assert.Equal(t, tc.wantPager, r.Pager)
		})
	}
}

func TestResolve_RejectsUnknownValues(t *testing.T) {
	t.Parallel()

	_, err := Resolve(Flags{Format: "html"}, Output{}, false, nil)
	require.ErrorContains(t, err, `unknown format "html"`)

	_, err = Resolve(Flags{}, Output{Theme: "neon"}, false, nil)
	require.ErrorContains(t, err, `unknown theme "neon"`)
}
