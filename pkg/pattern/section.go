package pattern

// SectionKind distinguishes the report banner from per-comparison sections.
type SectionKind string

const (
	SectionKindTitle      SectionKind = "title"
	SectionKindComparison SectionKind = "comparison"
	SectionKindData       SectionKind = "data"
	SectionKindFooter     SectionKind = "footer"
)

// Section opens a block of the report under a banner.
type Section struct {
	Title string
	Kind  SectionKind
}

func (s *Section) Type() PatternType { return PatternTypeSection }

// Notice is a short informational message, such as a skipped comparison.
type Notice struct {
	Label string // optional subsection heading
	Lines []string
	Kind  string // "info", "warning"
}

func (n *Notice) Type() PatternType { return PatternTypeNotice }
