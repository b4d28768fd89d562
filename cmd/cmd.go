// Package cmd defines the command-line interface for pubviz.
package cmd

import (
	"github.com/huangsam/pubviz/internal/contract"
	"github.com/huangsam/pubviz/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.SetFlagErrorFunc(flagError)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("data-dir", "d", "", "Directory containing the commit summary file (required)")
	rootCmd.PersistentFlags().StringP("data-file", "f", contract.DefaultDataFile, "Name of the commit summary file inside --data-dir")
	rootCmd.PersistentFlags().String("week-end", contract.DefaultWeekEnd, "Weekday that closes each weekly bucket")
	rootCmd.PersistentFlags().Bool("allow-anomalies", false, "Exclude commits published before their commit date instead of failing")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write the chart or report to")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of rootCmd to Viper
	rootCmd.Flags().String("display", string(schema.AutoDisplay), "Chart display: auto or viewer or file or none")
	rootCmd.Flags().String("format", string(schema.PNGFormat), "Chart format: png or svg")
	rootCmd.Flags().String("title", schema.DefaultTitle, "Chart title")
	rootCmd.Flags().Int("width", schema.DefaultImageWidth, "Chart width in pixels")
	rootCmd.Flags().Int("height", schema.DefaultImageHeight, "Chart height in pixels")
	if err := viper.BindPFlags(rootCmd.Flags()); err != nil {
		contract.LogFatal("Error binding chart flags", err)
	}

	// Bind all flags of summaryCmd to Viper
	summaryCmd.Flags().String("output", string(schema.TextOut), "Output format: text or csv or json or yaml or parquet or prom")
	summaryCmd.Flags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	if err := viper.BindPFlags(summaryCmd.Flags()); err != nil {
		contract.LogFatal("Error binding summary flags", err)
	}
}

// flagError turns flag parsing failures into argument errors and shows usage.
func flagError(cmd *cobra.Command, err error) error {
	_ = cmd.Usage()
	return contract.ArgumentError("%v", err)
}
