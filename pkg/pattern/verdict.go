package pattern

// Verdict is the classification line that closes a comparison.
type Verdict struct {
	Status  string   // "PASS", "OK", "WARN"
	Message string   // e.g., "Results are very similar (max diff < 0.01)"
	Details []string // continuation lines
}

func (v *Verdict) Type() PatternType { return PatternTypeVerdict }
