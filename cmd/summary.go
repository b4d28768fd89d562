package cmd

import (
	"github.com/huangsam/pubviz/core"
	"github.com/spf13/cobra"
)

// summaryCmd prints the aggregates behind the chart.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the weekly and monthly aggregates behind the chart.",
	Long: `Aggregate the commit summary and print it instead of drawing.

Weeks show built and published counts with the publication rate.
Months show the publish delay distribution (min, quartiles, max).

Examples:
  # Human-readable tables
  pubviz summary -d ./out

  # Machine-readable exports
  pubviz summary -d ./out --output json --output-file summary-report.json
  pubviz summary -d ./out --output parquet --output-file ./export

  # Prometheus text format for a textfile collector
  pubviz summary -d ./out --output prom --output-file pubviz.prom`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteSummary(rootCtx, cfg)
	},
}
