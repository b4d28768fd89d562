package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/pubviz/internal/contract"
	"github.com/huangsam/pubviz/schema"
	"gopkg.in/yaml.v3"
)

// writeJSONSummary marshals the schema.Result to JSON and writes it.
func writeJSONSummary(w io.Writer, result *schema.Result) error {
	return writeJSON(w, result)
}

// writeYAMLSummary marshals the schema.Result to YAML and writes it.
func writeYAMLSummary(w io.Writer, result *schema.Result) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

// writeCSVSummary writes the weekly section, a blank line, then the monthly section.
func writeCSVSummary(w io.Writer, result *schema.Result, fmtFloat func(float64) string, intFmt string) error {
	weeks := csv.NewWriter(w)
	if err := writeCSVWeeks(weeks, result.Weeks, fmtFloat, intFmt); err != nil {
		return err
	}
	weeks.Flush()
	if err := weeks.Error(); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	months := csv.NewWriter(w)
	if err := writeCSVMonths(months, result.Stats, fmtFloat, intFmt); err != nil {
		return err
	}
	months.Flush()
	return months.Error()
}

// writeCSVWeeks writes one row per weekly bucket.
func writeCSVWeeks(w *csv.Writer, weeks []schema.WeeklyBucket, fmtFloat func(float64) string, intFmt string) error {
	// 1. Write Header Row
	header := []string{
		"week_start",
		"week_end",
		"built",
		"published",
		"rate_percent",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// 2. Write Data Rows
	for _, wk := range weeks {
		row := []string{
			wk.WeekStart.Format(contract.DateTimeFormat),
			wk.WeekEnd.Format(contract.DateTimeFormat),
			fmt.Sprintf(intFmt, wk.Built),
			fmt.Sprintf(intFmt, wk.Published),
			fmtFloat(wk.Rate()),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// writeCSVMonths writes one row per month in seconds.
func writeCSVMonths(w *csv.Writer, stats []schema.BoxStats, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
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
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, s := range stats {
		row := []string{
			s.Month.Format(schema.MonthLabelFormat),
			fmt.Sprintf(intFmt, s.Count),
			fmtFloat(s.Min),
			fmtFloat(s.Q1),
			fmtFloat(s.Median),
			fmtFloat(s.Q3),
			fmtFloat(s.Max),
			fmtFloat(s.Mean),
			fmt.Sprintf(intFmt, len(s.Outliers)),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
