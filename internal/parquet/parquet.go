// Package parquet exports pubviz aggregates to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/huangsam/pubviz/schema"
	"github.com/parquet-go/parquet-go"
)

// File names written by WriteResult.
const (
	WeeksFile  = "weeks.parquet"
	MonthsFile = "months.parquet"
)

// WeekRow is one weekly bucket.
type WeekRow struct {
	// WeekStart is 00:00 UTC of the first day of the week
	WeekStart time.Time `parquet:"week_start,snappy"`

	// WeekEnd is 00:00 UTC of the last day of the week and keys the bucket
	WeekEnd time.Time `parquet:"week_end,snappy"`

	Built     int32 `parquet:"built,snappy"`
	Published int32 `parquet:"published,snappy"`

	// RatePercent is Published/Built*100, zero for weeks without builds
	RatePercent float64 `parquet:"rate_percent,snappy"`
}

// MonthRow is the latency distribution of one commit month, in seconds.
type MonthRow struct {
	Month    time.Time `parquet:"month,snappy"`
	Count    int32     `parquet:"count,snappy"`
	Min      float64   `parquet:"min_seconds,snappy"`
	Q1       float64   `parquet:"q1_seconds,snappy"`
	Median   float64   `parquet:"median_seconds,snappy"`
	Q3       float64   `parquet:"q3_seconds,snappy"`
	Max      float64   `parquet:"max_seconds,snappy"`
	Mean     float64   `parquet:"mean_seconds,snappy"`
	Outliers int32     `parquet:"outliers,snappy"`
}

// WriteResult writes weeks.parquet and months.parquet into dir, creating it if needed.
func WriteResult(result *schema.Result, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := WriteWeeksParquet(ConvertWeeks(result.Weeks), filepath.Join(dir, WeeksFile)); err != nil {
		return err
	}
	return WriteMonthsParquet(ConvertStats(result.Stats), filepath.Join(dir, MonthsFile))
}

// WriteWeeksParquet writes a slice of WeekRow structs to a Parquet file.
func WriteWeeksParquet(data []WeekRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteMonthsParquet writes a slice of MonthRow structs to a Parquet file.
func WriteMonthsParquet(data []MonthRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// writeRows writes rows with a schema derived from the struct tags of T.
func writeRows[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	// Close flushes the footer
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return file.Close()
}

// ConvertWeeks converts weekly buckets to WeekRow for Parquet export.
func ConvertWeeks(weeks []schema.WeeklyBucket) []WeekRow {
	rows := make([]WeekRow, len(weeks))
	for i, w := range weeks {
		rows[i] = WeekRow{
			WeekStart:   w.WeekStart,
			WeekEnd:     w.WeekEnd,
			Built:       int32(w.Built),
			Published:   int32(w.Published),
			RatePercent: w.Rate(),
		}
	}
	return rows
}

// ConvertStats converts box statistics to MonthRow for Parquet export.
func ConvertStats(stats []schema.BoxStats) []MonthRow {
	rows := make([]MonthRow, len(stats))
	for i, s := range stats {
		rows[i] = MonthRow{
			Month:    s.Month,
			Count:    int32(s.Count),
			Min:      s.Min,
			Q1:       s.Q1,
			Median:   s.Median,
			Q3:       s.Q3,
			Max:      s.Max,
			Mean:     s.Mean,
			Outliers: int32(len(s.Outliers)),
		}
	}
	return rows
}
