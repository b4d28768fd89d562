package outwriter

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/pubviz/internal/contract"
	"github.com/huangsam/pubviz/internal/parquet"
	"github.com/huangsam/pubviz/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintSummary outputs the aggregates, dispatching based on the output format configured.
// Parquet writes a directory at cfg.OutputFile; every other format goes to
// cfg.OutputFile or stdout.
func PrintSummary(result *schema.Result, cfg *contract.Config, duration time.Duration) error {
	if cfg.Output == schema.ParquetOut {
		if err := parquet.WriteResult(result, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote Parquet summary to %s\n", cfg.OutputFile)
		return nil
	}

	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteSummary(w, result, cfg, duration)
	}, fmt.Sprintf("Wrote %s summary", cfg.Output))
}

// WriteSummary writes the aggregates to w in any stream format.
func WriteSummary(w io.Writer, result *schema.Result, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSONSummary(w, result); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.YAMLOut:
		if err := writeYAMLSummary(w, result); err != nil {
			return fmt.Errorf("error writing YAML output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVSummary(w, result, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.PromOut:
		if err := writePromSummary(w, result); err != nil {
			return fmt.Errorf("error writing Prometheus output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output cannot be streamed; set an output directory")
	default:
		// Default to human-readable tables
		if err := writeSummaryTables(w, result, cfg, fmtFloat, intFmt, duration); err != nil {
			return fmt.Errorf("error writing summary table output: %w", err)
		}
	}
	return nil
}

// writeSummaryTables prints a weekly table, a monthly table and a footer.
func writeSummaryTables(w io.Writer, result *schema.Result, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	if err := writeWeeksTable(w, result.Weeks, cfg, fmtFloat, intFmt); err != nil {
		return err
	}
	if len(result.Stats) == 0 {
		if _, err := fmt.Fprintln(w, "No published commits, no build time distribution."); err != nil {
			return err
		}
	} else if err := writeMonthsTable(w, result.Stats, intFmt); err != nil {
		return err
	}

	if len(result.Anomalies) > 0 {
		if _, err := fmt.Fprintf(w, "Excluded %d published commit(s) with a publish time before the commit date\n", len(result.Anomalies)); err != nil {
			return err
		}
	}
	built, published := 0, 0
	for _, wk := range result.Weeks {
		built += wk.Built
		published += wk.Published
	}
	if _, err := fmt.Fprintf(w, "Showing %d weeks and %d months (built: %d, published: %d)\n", len(result.Weeks), len(result.Stats), built, published); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Summarized %d records from %s in %v\n", result.Records, result.Source, duration); err != nil {
		return err
	}
	return nil
}

// writeWeeksTable prints one row per weekly bucket.
func writeWeeksTable(w io.Writer, weeks []schema.WeeklyBucket, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	table := tablewriter.NewWriter(w)

	// 1. Define Headers
	table.Header([]string{"Week Ending", "Built", "Published", "Rate", "Label"})

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	label := rateLabeler(cfg.UseColors)
	data := make([][]string, 0, len(weeks))
	for _, wk := range weeks {
		data = append(data, []string{
			wk.WeekEnd.Format(schema.WeekLabelFormat),
			fmt.Sprintf(intFmt, wk.Built),
			fmt.Sprintf(intFmt, wk.Published),
			fmtFloat(wk.Rate()) + "%",
			label(wk.Built, wk.Rate()),
		})
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeMonthsTable prints the build time distribution of each month.
func writeMonthsTable(w io.Writer, stats []schema.BoxStats, intFmt string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Month", "Count", "Min", "Q1", "Median", "Q3", "Max", "Outliers"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(stats))
	for _, s := range stats {
		data = append(data, []string{
			s.Month.Format(schema.MonthLabelFormat),
			fmt.Sprintf(intFmt, s.Count),
			schema.FormatDuration(s.Min),
			schema.FormatDuration(s.Q1),
			schema.FormatDuration(s.Median),
			schema.FormatDuration(s.Q3),
			schema.FormatDuration(s.Max),
			fmt.Sprintf(intFmt, len(s.Outliers)),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
