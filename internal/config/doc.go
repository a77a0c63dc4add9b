// Package config loads the comparison plan and resolves output settings.
//
// # Comparison Plan
//
// A plan lists the Python/R result pairs to compare, the input dataset pair,
// and the tolerances. DefaultPlan is the built-in nprobust plan; a YAML file
// may override any part of it:
//
//	title: "nprobust: Python vs R Comparison Report"
//	comparisons:
//	  - label: "lprobust (h=0.15, p=1, epa)"
//	    python: python_lprobust_results.csv
//	    r: r_lprobust_results.csv
//	dataset:
//	  python: test_data_python.csv
//	  r: test_data_r.csv
//	  columns: [x, y]
//	thresholds:
//	  pass: 0.01
//	  ok: 0.1
//	output:
//	  format: plain
//	  theme: orca
//
// Relative file names resolve against the input directory.
//
// # Configuration Precedence
//
// Values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--config, --format, --theme)
//  2. Environment variables (NO_COLOR)
//  3. YAML plan file, read only when --config names one
//  4. Hardcoded defaults
package config
