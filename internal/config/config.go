package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dkoosis/parity/pkg/compare"
)

// DefaultTitle heads the report.
const DefaultTitle = "nprobust: Python vs R Comparison Report"

// Plan is the full set of comparisons for one run.
type Plan struct {
	Title       string              `yaml:"title"`
	Comparisons []compare.Pair      `yaml:"comparisons"`
	Dataset     compare.DatasetPair `yaml:"dataset"`
	Thresholds  compare.Thresholds  `yaml:"thresholds"`
	Output      Output              `yaml:"output"`

	// Source is the file the plan was loaded from, empty for defaults.
	Source string `yaml:"-"`
}

// Output holds file-level rendering preferences.
type Output struct {
	Format string `yaml:"format"`
	Theme  string `yaml:"theme"`
}

// DefaultPlan returns the built-in nprobust comparison plan.
func DefaultPlan() *Plan {
	return &Plan{
		Title: DefaultTitle,
		Comparisons: []compare.Pair{
			{Label: "lprobust (h=0.15, p=1, epa)", Python: "python_lprobust_results.csv", R: "r_lprobust_results.csv"},
			{Label: "lpbwselect (MSE-DPI)", Python: "python_lpbwselect_results.csv", R: "r_lpbwselect_results.csv"},
			{Label: "kdrobust (h=0.1, epa)", Python: "python_kdrobust_results.csv", R: "r_kdrobust_results.csv"},
			{Label: "kdbwselect (MSE-DPI)", Python: "python_kdbwselect_results.csv", R: "r_kdbwselect_results.csv"},
		},
		Dataset: compare.DatasetPair{
			Python:  "test_data_python.csv",
			R:       "test_data_r.csv",
			Columns: []string{"x", "y"},
		},
		Thresholds: compare.DefaultThresholds(),
	}
}

// Load returns the plan in path, or DefaultPlan when path is empty. No plan
// file is picked up implicitly, so a bare run always uses the built-in plan.
func Load(path string) (*Plan, error) {
	if path == "" {
		return DefaultPlan(), nil
	}

	// #nosec G304 -- path is the user's --config
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}
	plan, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	plan.Source = path
	return plan, nil
}

// Parse decodes a YAML plan and merges it over DefaultPlan.
func Parse(data []byte) (*Plan, error) {
	var file Plan
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}

	plan := DefaultPlan()
	if file.Title != "" {
		plan.Title = file.Title
	}
	if file.Comparisons != nil {
		plan.Comparisons = file.Comparisons
	}
	if file.Dataset.Python != "" {
		plan.Dataset.Python = file.Dataset.Python
	}
	if file.Dataset.R != "" {
		plan.Dataset.R = file.Dataset.R
	}
	if len(file.Dataset.Columns) > 0 {
		plan.Dataset.Columns = file.Dataset.Columns
	}
	mergeThresholds(&plan.Thresholds, file.Thresholds)
	plan.Output = file.Output

	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return plan, nil
}

func mergeThresholds(dst *compare.Thresholds, src compare.Thresholds) {
	if src.RelativeFloor != 0 {
		dst.RelativeFloor = src.RelativeFloor
	}
	if src.Pass != 0 {
		dst.Pass = src.Pass
	}
	if src.OK != 0 {
		dst.OK = src.OK
	}
	if src.DatasetTolerance != 0 {
		dst.DatasetTolerance = src.DatasetTolerance
	}
}

// ErrInvalidPlan wraps every validation failure.
var ErrInvalidPlan = errors.New("invalid plan")

// Validate checks that every comparison names both files and that the
// thresholds are usable.
func (p *Plan) Validate() error {
	for i, c := range p.Comparisons {
		if c.Python == "" || c.R == "" {
			return fmt.Errorf("%w: comparison %d (%q) needs both python and r files", ErrInvalidPlan, i+1, c.Label)
		}
		if c.Label == "" {
			p.Comparisons[i].Label = filepath.Base(c.Python)
		}
	}
	if err := p.Thresholds.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPlan, err)
	}
	return nil
}

// Resolve returns a copy of p with relative file names joined to dir.
func (p *Plan) Resolve(dir string) *Plan {
	out := *p
	out.Comparisons = make([]compare.Pair, len(p.Comparisons))
	for i, c := range p.Comparisons {
		c.Python = join(dir, c.Python)
		c.R = join(dir, c.R)
		out.Comparisons[i] = c
	}
	out.Dataset.Python = join(dir, p.Dataset.Python)
	out.Dataset.R = join(dir, p.Dataset.R)
	out.Dataset.Columns = append([]string(nil), p.Dataset.Columns...)
	return &out
}

func join(dir, name string) string {
	if dir == "" || dir == "." || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}
