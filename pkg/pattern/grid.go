package pattern

// Grid is a rectangular table of preformatted cells.
type Grid struct {
	Label   string
	Columns []string
	Rows    [][]string
}

func (g *Grid) Type() PatternType { return PatternTypeGrid }
