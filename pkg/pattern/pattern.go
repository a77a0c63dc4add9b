// Package pattern defines the semantic building blocks of a parity report.
// Patterns are pure data; renderers decide presentation.
package pattern

// PatternType identifies the kind of report pattern.
type PatternType string

const (
	PatternTypeSection     PatternType = "section"
	PatternTypeNotice      PatternType = "notice"
	PatternTypeGrid        PatternType = "grid"
	PatternTypeSummary     PatternType = "summary"
	PatternTypeVerdict     PatternType = "verdict"
	PatternTypeLeaderboard PatternType = "leaderboard"
)

// Pattern is the interface all report patterns implement.
type Pattern interface {
	Type() PatternType
}
