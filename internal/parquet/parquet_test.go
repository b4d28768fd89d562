package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/pubviz/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *schema.Result {
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &schema.Result{
		Weeks: []schema.WeeklyBucket{
			{WeekStart: jan, WeekEnd: jan.AddDate(0, 0, 6), Built: 4, Published: 3},
			{WeekStart: jan.AddDate(0, 0, 7), WeekEnd: jan.AddDate(0, 0, 13)},
		},
		Stats: []schema.BoxStats{
			{Month: jan, Count: 3, Min: 60, Q1: 90, Median: 120, Q3: 300, Max: 400, Mean: 180, Outliers: []float64{7200}},
		},
	}
}

// readRows reads every row of a Parquet file into T.
func readRows[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err, "Should be able to open output file")
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	return rows[:n]
}

func TestWeekRowStructTags(t *testing.T) {
	schema := parquet.SchemaOf(new(WeekRow))
	require.NotNil(t, schema)

	for _, colName := range []string{"week_start", "week_end", "built", "published", "rate_percent"} {
		col, ok := schema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col)
	}
}

func TestMonthRowStructTags(t *testing.T) {
	schema := parquet.SchemaOf(new(MonthRow))
	require.NotNil(t, schema)

	expectedColumns := []string{
		"month",
		"count",
		"min_seconds",
		"q1_seconds",
		"median_seconds",
		"q3_seconds",
		"max_seconds",
		"mean_seconds",
		"outliers",
	}
	for _, colName := range expectedColumns {
		col, ok := schema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col)
	}
}

func TestWriteResult(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "export")
	result := sampleResult()

	require.NoError(t, WriteResult(result, dir))

	weeks := readRows[WeekRow](t, filepath.Join(dir, WeeksFile))
	require.Len(t, weeks, 2)
	assert.Equal(t, int32(4), weeks[0].Built)
	assert.Equal(t, int32(3), weeks[0].Published)
	assert.InDelta(t, 75.0, weeks[0].RatePercent, 1e-9)
	assert.True(t, result.Weeks[0].WeekEnd.Equal(weeks[0].WeekEnd))
	assert.Equal(t, 0.0, weeks[1].RatePercent)

	months := readRows[MonthRow](t, filepath.Join(dir, MonthsFile))
	require.Len(t, months, 1)
	assert.Equal(t, int32(3), months[0].Count)
	assert.InDelta(t, 120.0, months[0].Median, 1e-9)
	assert.Equal(t, int32(1), months[0].Outliers)
	assert.True(t, result.Stats[0].Month.Equal(months[0].Month))
}

func TestWriteResultEmptyStats(t *testing.T) {
	dir := t.TempDir()
	result := sampleResult()
	result.Stats = nil

	require.NoError(t, WriteResult(result, dir))

	info, err := os.Stat(filepath.Join(dir, MonthsFile))
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0))
	assert.Empty(t, readRows[MonthRow](t, filepath.Join(dir, MonthsFile)))
}

func TestWriteResultBadDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	assert.Error(t, WriteResult(sampleResult(), file))
}
