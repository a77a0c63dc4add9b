package compare

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/parity/pkg/table"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func mustTable(t *testing.T, content string) *table.Table {
	t.Helper()
	tbl, err := table.ReadBytes([]byte(content), "inline.csv")
	require.NoError(t, err)
	return tbl
}

func TestDiff_IdenticalTablesAreZeroAndPass(t *testing.T) {
	t.Parallel()

	a := mustTable(t, "h,Estimate,se\n0.15,1.0,0.2\n0.2,0.0,0.3\n")
	b := mustTable(t, "h,Estimate,se\n0.15,1.0,0.2\n0.2,0.0,0.3\n")

	d, err := Diff(a, b, DefaultThresholds())
	require.NoError(t, err)

	assert.Equal(t, 0.0, d.MaxAbs)
	assert.Equal(t, 0.0, d.MeanAbs)
	assert.Equal(t, 0.0, d.MaxRel)
	assert.Equal(t, 0.0, d.MeanRel)
	assert.Equal(t, VerdictPass, d.Verdict)
}

func TestDiff_ConstantOffsetIsMaxAbs(t *testing.T) {
	t.Parallel()

	const delta = 0.05
	a := mustTable(t, "a,b\n1,10\n2,20\n3,30\n")
	b := &table.Table{Columns: []table.Column{
		{Name: "a", Values: []float64{1 + delta, 2 + delta, 3 + delta}},
		{Name: "b", Values: []float64{10 + delta, 20 + delta, 30 + delta}},
	}}

	d, err := Diff(a, b, DefaultThresholds())
	require.NoError(t, err)

	assert.InDelta(t, delta, d.MaxAbs, 1e-9)
	assert.InDelta(t, delta, d.MeanAbs, 1e-9)
	assert.Equal(t, VerdictOK, d.Verdict)
	require.Len(t, d.PerColumn, 2)
	assert.InDelta(t, delta/(1+delta), d.PerColumn[0].MaxRel, 1e-9)
}

func TestDiff_RelativeDifferenceUsesFloor(t *testing.T) {
	t.Parallel()

	a := mustTable(t, "v\n0.0000001\n")
	b := mustTable(t, "v\n0\n")

	d, err := Diff(a, b, DefaultThresholds())
	require.NoError(t, err)

	assert.False(t, math.IsInf(d.MaxRel, 0))
	assert.False(t, math.IsNaN(d.MaxRel))
	assert.InDelta(t, 1000.0, d.MaxRel, 1e-6)
}

func TestDiff_OnlyCommonColumnsParticipate(t *testing.T) {
	t.Parallel()

	a := mustTable(t, "h,Estimate,py_only\n0.15,1.0,99\n")
	b := mustTable(t, "r_only,h,Estimate\n-5,0.15,1.0\n")

	d, err := Diff(a, b, DefaultThresholds())
	require.NoError(t, err)

	assert.Equal(t, []string{"h", "Estimate"}, d.Columns)
	r, c := d.Absolute.Dims()
	assert.Equal(t, 1, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 0.0, d.MaxAbs)
}

func TestDiff_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		a, b    string
		wantErr error
	}{
		{name: "row mismatch", a: "x\n1\n2\n", b: "x\n1\n", wantErr: ErrRowMismatch},
		{name: "no shared column", a: "x\n1\n", b: "y\n1\n", wantErr: ErrNoCommonColumns},
		{name: "header only", a: "x\n", b: "x\n", wantErr: ErrNoRows},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := Diff(mustTable(t, tc.a), mustTable(t, tc.b), DefaultThresholds())
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestDiff_NaNPropagatesToWarn(t *testing.T) {
	t.Parallel()

	d, err := Diff(mustTable(t, "x\n1\nNA\n"), mustTable(t, "x\n1\n2\n"), DefaultThresholds())
	require.NoError(t, err)

	assert.True(t, math.IsNaN(d.MaxAbs))
	assert.Equal(t, VerdictWarn, d.Verdict)
}

func TestClassify(t *testing.T) {
	t.Parallel()

	th := DefaultThresholds()
	tests := []struct {
		maxAbs float64
		want   Verdict
	}{
		{0, VerdictPass},
		{0.0005, VerdictPass},
		{0.01, VerdictOK},
		{0.0999, VerdictOK},
		{0.1, VerdictWarn},
		{0.2, VerdictWarn},
		{math.NaN(), VerdictWarn},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Classify(tc.maxAbs, th), "maxAbs=%v", tc.maxAbs)
	}

	custom := Thresholds{RelativeFloor: 1e-10, Pass: 1e-4, OK: 1e-3, DatasetTolerance: 1e-6}
	assert.Equal(t, VerdictWarn, Classify(0.0005*3, custom))
}

func TestThresholds_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, DefaultThresholds().Validate())

	bad := DefaultThresholds()
	bad.RelativeFloor = 0
	assert.Error(t, bad.Validate())

	bad = DefaultThresholds()
	bad.Pass = 0.5
	assert.ErrorContains(t, bad.Validate(), "must not exceed ok")

	bad = DefaultThresholds()
	bad.OK = math.NaN()
	assert.Error(t, bad.Validate())
}

func TestFiles_EndToEndScenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		rEstimate  string
		wantMaxAbs float64
		want       Verdict
	}{
		{name: "close estimate passes", rEstimate: "1.000500", wantMaxAbs: 0.0005, want: VerdictPass},
		{name: "far estimate warns", rEstimate: "1.200000", wantMaxAbs: 0.2, want: VerdictWarn},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			pair := Pair{
				Label:  "lprobust (h=0.15, p=1, epa)",
				Python: writeCSV(t, dir, "python_lprobust_results.csv", "h,Estimate\n0.15,1.000000\n"),
				R:      writeCSV(t, dir, "r_lprobust_results.csv", "h,Estimate\n0.15,"+tc.rEstimate+"\n"),
			}

			out, err := CompareFiles(pair, DefaultThresholds())
			require.NoError(t, err)
			require.NotNil(t, out.Difference)

			assert.Empty(t, out.Missing)
			assert.False(t, out.RowMismatch)
			assert.InDelta(t, tc.wantMaxAbs, out.Difference.MaxAbs, 1e-9)
			assert.Equal(t, tc.want, out.Difference.Verdict)
		})
	}
}

func TestFiles_MissingFilesAreSkippedWithoutError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	existing := writeCSV(t, dir, "r.csv", "x\n1\n")
	absent := filepath.Join(dir, "absent.csv")

	out, err := CompareFiles(Pair{Label: "py missing", Python: absent, R: existing}, DefaultThresholds())
	require.NoError(t, err)
	assert.Equal(t, SidePython, out.Missing)
	assert.Nil(t, out.Python)
	assert.Nil(t, out.Difference)

	out, err = CompareFiles(Pair{Label: "r missing", Python: existing, R: absent}, DefaultThresholds())
	require.NoError(t, err)
	assert.Equal(t, SideR, out.Missing)
	assert.Nil(t, out.Python)
	assert.Nil(t, out.Difference)
}

func TestFiles_RowMismatchSkipsDiff(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pair := Pair{
		Label:  "rows",
		Python: writeCSV(t, dir, "py.csv", "x\n1\n2\n3\n"),
		R:      writeCSV(t, dir, "r.csv", "x\n1\n2\n"),
	}

	out, err := CompareFiles(pair, DefaultThresholds())
	require.NoError(t, err)

	assert.True(t, out.RowMismatch)
	assert.Nil(t, out.Difference)
	assert.Equal(t, 3, out.Python.Rows())
	assert.Equal(t, 2, out.R.Rows())
}

func TestFiles_MalformedContentIsAnError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pair := Pair{
		Label:  "bad",
		Python: writeCSV(t, dir, "py.csv", "x\nabc\n"),
		R:      writeCSV(t, dir, "r.csv", "x\n1\n"),
	}

	_, err := CompareFiles(pair, DefaultThresholds())
	require.Error(t, err)
	assert.ErrorIs(t, err, table.ErrNonNumeric)
	assert.Contains(t, err.Error(), "bad")
}

func TestFiles_TextColumnOnOneSideIsNotDiffed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pair := Pair{
		Label:  "lprobust (h=0.15, p=1, epa)",
		Python: writeCSV(t, dir, "py.csv", "h,Estimate\n0.15,1.000000\n"),
		R:      writeCSV(t, dir, "r.csv", "h,Estimate,kernel\n0.15,1.000500,epa\n"),
	}

	out, err := CompareFiles(pair, DefaultThresholds())
	require.NoError(t, err)
	require.NotNil(t, out.Difference)
	assert.Equal(t, []string{"h", "Estimate"}, out.Difference.Columns)
	assert.Equal(t, VerdictPass, out.Difference.Verdict)
}

func TestDiff_IntegerColumnsStayInteger(t *testing.T) {
	t.Parallel()

	d, err := Diff(mustTable(t, "N,h\n10,0.1\n"), mustTable(t, "N,h\n12,0.1\n"), DefaultThresholds())
	require.NoError(t, err)
	assert.True(t, d.PerColumn[0].Integer)
	assert.False(t, d.PerColumn[1].Integer)
}

func TestDatasets(t *testing.T) {
	t.Parallel()

	cols := []string{"x", "y"}

	t.Run("identical", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		data := "x,y\n0.1,1.5\n0.2,2.5\n"
		out, err := CompareDatasets(DatasetPair{
			Python: writeCSV(t, dir, "p.csv", data), R: writeCSV(t, dir, "r.csv", data), Columns: cols,
		}, DefaultThresholds())
		require.NoError(t, err)

		assert.True(t, out.Identical)
		require.Len(t, out.Diffs, 2)
		assert.Equal(t, 0.0, out.Diffs[0].MaxAbs)
	})

	t.Run("differs", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		out, err := CompareDatasets(DatasetPair{
			Python:  writeCSV(t, dir, "p.csv", "x,y\n0.1,1.5\n0.2,2.5\n"),
			R:       writeCSV(t, dir, "r.csv", "\"\",\"x\",\"y\"\n\"1\",0.1,1.5\n\"2\",0.25,2.5\n"),
			Columns: cols,
		}, DefaultThresholds())
		require.NoError(t, err)

		assert.False(t, out.Identical)
		assert.InDelta(t, 0.05, out.Diffs[0].MaxAbs, 1e-12)
		assert.Equal(t, 0.0, out.Diffs[1].MaxAbs)
	})

	t.Run("row mismatch", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		out, err := CompareDatasets(DatasetPair{
			Python:  writeCSV(t, dir, "p.csv", "x,y\n1,2\n"),
			R:       writeCSV(t, dir, "r.csv", "x,y\n1,2\n3,4\n"),
			Columns: cols,
		}, DefaultThresholds())
		require.NoError(t, err)

		assert.True(t, out.RowMismatch)
		assert.Empty(t, out.Diffs)
		assert.False(t, out.Identical)
	})

	t.Run("extra text column is ignored", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		data := "x,y,group\n1,2,a\n3,4,b\n"
		out, err := CompareDatasets(DatasetPair{
			Python: writeCSV(t, dir, "p.csv", data), R: writeCSV(t, dir, "r.csv", data), Columns: cols,
		}, DefaultThresholds())
		require.NoError(t, err)
		assert.True(t, out.Identical)
		assert.Len(t, out.Diffs, 2)
	})

	t.Run("text in a checked column aborts", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		_, err := CompareDatasets(DatasetPair{
			Python:  writeCSV(t, dir, "p.csv", "x,y\n1,a\n"),
			R:       writeCSV(t, dir, "r.csv", "x,y\n1,2\n"),
			Columns: cols,
		}, DefaultThresholds())
		assert.ErrorIs(t, err, table.ErrNonNumeric)
	})

	t.Run("missing column aborts", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		_, err := CompareDatasets(DatasetPair{
			Python:  writeCSV(t, dir, "p.csv", "x\n1\n"),
			R:       writeCSV(t, dir, "r.csv", "x\n1\n"),
			Columns: cols,
		}, DefaultThresholds())
		assert.ErrorIs(t, err, table.ErrMissingColumn)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		out, err := CompareDatasets(DatasetPair{
			Python:  writeCSV(t, dir, "p.csv", "x,y\n1,2\n"),
			R:       filepath.Join(dir, "absent.csv"),
			Columns: cols,
		}, DefaultThresholds())
		require.NoError(t, err)
		assert.True(t, out.Missing)
		assert.Nil(t, out.Python)
	})
}

func TestMaxAbsDiff(t *testing.T) {
	t.Parallel()

	d, err := MaxAbsDiff([]float64{1.0, 2.0, 3.0}, []float64{1.0, 2.1, 3.0})
	require.NoError(t, err)
	assert.InDelta(t, 0.1, d, 1e-15)

	_, err = MaxAbsDiff([]float64{1}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrRowMismatch)
}
