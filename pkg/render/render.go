// Package render provides output renderers for parity report patterns.
package render

import "github.com/dkoosis/parity/pkg/pattern"

// Renderer converts patterns to formatted output.
type Renderer interface {
	Render(patterns []pattern.Pattern) string
}

// Output formats accepted by ByFormat.
const (
	FormatTerminal = "terminal"
	FormatPlain    = "plain"
	FormatJSON     = "json"
)

// ByFormat returns the renderer for a resolved format name. Unknown names
// fall back to plain text.
func ByFormat(format string, theme Theme, width int) Renderer {
	switch format {
	case FormatJSON:
		return NewJSON()
	case FormatTerminal:
		return NewTerminal(theme, width)
	default:
		return NewPlain()
	}
}
