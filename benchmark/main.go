// Package main provides a performance benchmarking tool for the pubviz CLI.
// It generates synthetic commit summaries of increasing size, runs the summary
// and chart commands against each one several times, treating the first successful
// run as cold and averaging the rest as warm, and writes the timings to CSV.
//
// Prerequisites:
// - pubviz binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where the synthetic summaries are generated
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset  string
	Command  string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir string
	Timeout time.Duration
	Runs    int
	Sizes   map[string]int
	Order   []string
}

// summaryRecord mirrors one entry of the commit summary file.
type summaryRecord struct {
	Commit        string `json:"commit"`
	Date          string `json:"date"`
	Published     bool   `json:"published"`
	PublishedTime string `json:"publishedTime,omitempty"`
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir: os.Args[1],
		Timeout: 2 * time.Minute,
		Runs:    4,
		Sizes: map[string]int{
			"small":  1_000,
			"medium": 20_000,
			"large":  250_000,
		},
		Order: []string{"small", "medium", "large"},
	}

	if _, err := exec.LookPath("pubviz"); err != nil {
		fmt.Printf("Prerequisites check failed: pubviz binary not found in PATH\n")
		os.Exit(1)
	}

	for _, name := range config.Order {
		if err := generateDataset(filepath.Join(config.WorkDir, name), config.Sizes[name]); err != nil {
			fmt.Printf("Failed to generate %s dataset: %v\n", name, err)
			os.Exit(1)
		}
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// generateDataset writes a summary.json with n commits spread over two years.
// Roughly four in five commits are published between one minute and three hours later.
func generateDataset(dir string, n int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	rng := rand.New(rand.NewPCG(42, uint64(n)))
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	span := int64(2 * 365 * 24 * time.Hour)

	records := make([]summaryRecord, n)
	for i := range records {
		date := start.Add(time.Duration(rng.Int64N(span)))
		rec := summaryRecord{
			Commit: fmt.Sprintf("%040x", rng.Uint64()),
			Date:   date.Format(time.RFC3339),
		}
		if rng.IntN(5) > 0 {
			rec.Published = true
			delay := time.Minute + time.Duration(rng.Int64N(int64(3*time.Hour)))
			rec.PublishedTime = date.Add(delay).Format(time.RFC3339)
		}
		records[i] = rec
	}

	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	fmt.Printf("Generated %d commits in %s\n", n, dir)
	return os.WriteFile(filepath.Join(dir, "summary.json"), data, 0o644)
}

// runBenchmarks executes all benchmark commands across the generated datasets
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, %d runs\n", len(config.Order), config.Timeout, config.Runs)

	for _, name := range config.Order {
		dir := filepath.Join(config.WorkDir, name)
		fmt.Printf("Benchmarking %s\n", name)

		results = append(results,
			runBenchmarkSuite(config, name, "summary", []string{"summary", "-d", dir, "--output", "json", "--output-file", os.DevNull}),
			runBenchmarkSuite(config, name, "chart-png", []string{"-d", dir, "--display", "none"}),
			runBenchmarkSuite(config, name, "chart-svg", []string{"-d", dir, "--display", "none", "--format", "svg"}),
		)
	}

	return results
}

// runBenchmarkSuite runs one command several times and reports cold and warm timings
func runBenchmarkSuite(config BenchmarkConfig, dataset, command string, args []string) BenchmarkResult {
	fmt.Printf("Running %s on %s (%d runs)\n", command, dataset, config.Runs)

	coldTime, warmTimes := runBenchmark(config, args)

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}
	warmAvg := "TIMEOUT"
	if len(warmTimes) > 0 {
		var sum float64
		for _, t := range warmTimes {
			sum += t
		}
		warmAvg = fmt.Sprintf("%.3fs", sum/float64(len(warmTimes)))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s\n", coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:  dataset,
		Command:  command,
		ColdTime: coldTimeStr,
		WarmTime: warmAvg,
	}
}

// runBenchmark executes a pubviz command multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, args []string) (coldTime float64, warmTimes []float64) {
	var times []float64
	for range config.Runs {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		start := time.Now()
		output, err := exec.CommandContext(ctx, "pubviz", args...).CombinedOutput()
		elapsed := time.Since(start).Seconds()
		cancel()

		if err != nil {
			fmt.Printf("  run failed: %v\n%s", err, output)
			continue
		}
		times = append(times, elapsed)
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("pubviz_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"dataset", "cmd", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range []string{"summary", "chart-png", "chart-svg"} {
		fmt.Printf("%s:\n", command)
		for _, result := range results {
			if result.Command == command {
				fmt.Printf("  %-8s: Cold: %s, Warm: %s\n", result.Dataset, result.ColdTime, result.WarmTime)
			}
		}
	}
}
