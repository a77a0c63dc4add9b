package compare

import (
	"fmt"
	"math"
)

// Thresholds are the fixed tolerances used for differencing and
// classification. The defaults carry no derivation beyond "reasonable";
// they are kept configurable rather than re-derived.
type Thresholds struct {
	// RelativeFloor is the minimum denominator for relative differences.
	RelativeFloor float64 `yaml:"relative_floor" json:"relative_floor"`
	// Pass is the max absolute difference below which results are PASS.
	Pass float64 `yaml:"pass" json:"pass"`
	// OK is the max absolute difference below which results are OK.
	OK float64 `yaml:"ok" json:"ok"`
	// DatasetTolerance is the per-column max difference below which two
	// input datasets count as identical.
	DatasetTolerance float64 `yaml:"dataset_tolerance" json:"dataset_tolerance"`
}

// Defaults.
const (
	DefaultRelativeFloor    = 1e-10
	DefaultPass             = 0.01
	DefaultOK               = 0.1
	DefaultDatasetTolerance = 1e-6
)

// DefaultThresholds returns the stock tolerances.
func DefaultThresholds() Thresholds {
	return Thresholds{
		RelativeFloor:    DefaultRelativeFloor,
		Pass:             DefaultPass,
		OK:               DefaultOK,
		DatasetTolerance: DefaultDatasetTolerance,
	}
}

// Validate rejects thresholds that cannot classify anything sensibly.
func (th Thresholds) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"relative_floor", th.RelativeFloor},
		{"pass", th.Pass},
		{"ok", th.OK},
		{"dataset_tolerance", th.DatasetTolerance},
	} {
		if !(f.v > 0) || math.IsInf(f.v, 0) {
			return fmt.Errorf("threshold %s must be a positive number, got %v", f.name, f.v)
		}
	}
	if th.Pass > th.OK {
		return fmt.Errorf("threshold pass (%v) must not exceed ok (%v)", th.Pass, th.OK)
	}
	return nil
}

// Verdict classifies the match quality of a comparison.
type Verdict string

const (
	VerdictPass Verdict = "PASS"
	VerdictOK   Verdict = "OK"
	VerdictWarn Verdict = "WARN"
)

// Classify maps the maximum absolute difference to a verdict. NaN is WARN.
func Classify(maxAbs float64, th Thresholds) Verdict {
	switch {
	case maxAbs < th.Pass:
		return VerdictPass
	case maxAbs < th.OK:
		return VerdictOK
	default:
		return VerdictWarn
	}
}
