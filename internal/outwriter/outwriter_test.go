package outwriter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/pubviz/internal/contract"
	"github.com/huangsam/pubviz/internal/parquet"
	"github.com/huangsam/pubviz/schema"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleResult() *schema.Result {
	return &schema.Result{
		Source:      "/data/summary.json",
		GeneratedAt: day("2024-02-01"),
		WeekEnd:     "Sunday",
		Records:     7,
		Weeks: []schema.WeeklyBucket{
			{WeekStart: day("2024-01-01"), WeekEnd: day("2024-01-07"), Built: 4, Published: 4},
			{WeekStart: day("2024-01-08"), WeekEnd: day("2024-01-14"), Built: 0, Published: 0},
			{WeekStart: day("2024-01-15"), WeekEnd: day("2024-01-21"), Built: 3, Published: 1},
		},
		Months: []schema.MonthlyDurations{
			{Month: day("2024-01-01"), Durations: []float64{600, 1200, 1800, 9000, 12000}},
		},
		Stats: []schema.BoxStats{
			{
				Month: day("2024-01-01"), Count: 5,
				Min: 600, Q1: 1200, Median: 1800, Q3: 9000, Max: 12000, Mean: 4920,
				Outliers: []float64{},
			},
		},
		Anomalies: []schema.Anomaly{},
	}
}

func testConfig(output schema.OutputMode) *contract.Config {
	return &contract.Config{Output: output, Precision: 1, UseColors: false}
}

func TestWriteSummaryText(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSummary(&buf, sampleResult(), testConfig(schema.TextOut), 1500*time.Millisecond)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "2024-01-07")
	assert.Contains(t, out, "100.0%")
	assert.Contains(t, out, "33.3%")
	assert.Contains(t, out, contract.HealthyValue)
	assert.Contains(t, out, contract.InactiveValue)
	assert.Contains(t, out, contract.StalledValue)
	assert.Contains(t, out, "2024-01")
	assert.Contains(t, out, "30m 0s")
	assert.Contains(t, out, "Showing 3 weeks and 1 months (built: 7, published: 5)")
	assert.Contains(t, out, "Summarized 7 records from /data/summary.json in 1.5s")
	assert.NotContains(t, out, "Excluded")
}

func TestWriteSummaryTextNoStats(t *testing.T) {
	result := sampleResult()
	result.Stats = nil
	result.Anomalies = []schema.Anomaly{{Date: day("2024-01-02"), PublishedTime: day("2024-01-01"), Duration: -86400}}

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, result, testConfig(schema.TextOut), time.Second))
	assert.Contains(t, buf.String(), "No published commits")
	assert.Contains(t, buf.String(), "Excluded 1 published commit(s)")
}

func TestWriteSummaryJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, sampleResult(), testConfig(schema.JSONOut), 0))

	var decoded schema.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 7, decoded.Records)
	require.Len(t, decoded.Weeks, 3)
	assert.Equal(t, 4, decoded.Weeks[0].Published)
	require.Len(t, decoded.Stats, 1)
	assert.Equal(t, 1800.0, decoded.Stats[0].Median)
	assert.True(t, strings.HasPrefix(buf.String(), "{\n  \""))
}

func TestWriteSummaryYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, sampleResult(), testConfig(schema.YAMLOut), 0))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Sunday", decoded["weekEnd"])
	assert.Equal(t, 7, decoded["records"])
	weeks, ok := decoded["weeks"].([]any)
	require.True(t, ok)
	assert.Len(t, weeks, 3)
}

func TestWriteSummaryCSV(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig(schema.CSVOut)
	cfg.Precision = 2
	require.NoError(t, WriteSummary(&buf, sampleResult(), cfg, 0))

	sections := strings.Split(buf.String(), "\n\n")
	require.Len(t, sections, 2)

	weeks := strings.Split(strings.TrimSpace(sections[0]), "\n")
	require.Len(t, weeks, 4)
	assert.Equal(t, "week_start,week_end,built,published,rate_percent", weeks[0])
	assert.Equal(t, "2024-01-01T00:00:00Z,2024-01-07T00:00:00Z,4,4,100.00", weeks[1])
	assert.Equal(t, "2024-01-15T00:00:00Z,2024-01-21T00:00:00Z,3,1,33.33", weeks[3])

	months := strings.Split(strings.TrimSpace(sections[1]), "\n")
	require.Len(t, months, 2)
	assert.Equal(t, "month,count,min_seconds,q1_seconds,median_seconds,q3_seconds,max_seconds,mean_seconds,outliers", months[0])
	assert.Equal(t, "2024-01,5,600.00,1200.00,1800.00,9000.00,12000.00,4920.00,0", months[1])
}

func TestWriteSummaryProm(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, sampleResult(), testConfig(schema.PromOut), 0))

	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(&buf)
	require.NoError(t, err)
	require.Len(t, families, 4)

	built := families[MetricWeeklyBuilt]
	require.NotNil(t, built)
	require.Len(t, built.GetMetric(), 3)
	first := built.GetMetric()[0]
	assert.Equal(t, "week", first.GetLabel()[0].GetName())
	assert.Equal(t, "2024-01-07", first.GetLabel()[0].GetValue())
	assert.Equal(t, 4.0, first.GetGauge().GetValue())

	rate := families[MetricWeeklyRate]
	require.NotNil(t, rate)
	assert.Equal(t, 0.0, rate.GetMetric()[1].GetGauge().GetValue())

	latency := families[MetricMonthlyLatency]
	require.NotNil(t, latency)
	summary := latency.GetMetric()[0].GetSummary()
	assert.Equal(t, uint64(5), summary.GetSampleCount())
	assert.InDelta(t, 24600.0, summary.GetSampleSum(), 1e-9)
	require.Len(t, summary.GetQuantile(), 3)
	assert.Equal(t, 1800.0, summary.GetQuantile()[1].GetValue())
}

func TestBuildMetricFamiliesSkipsEmpty(t *testing.T) {
	result := sampleResult()
	result.Stats = nil

	families := buildMetricFamilies(result)
	require.Len(t, families, 3)
	for _, mf := range families {
		assert.NotEqual(t, MetricMonthlyLatency, mf.GetName())
	}
	assert.Empty(t, buildMetricFamilies(&schema.Result{}))
}

func TestWriteSummaryParquetNeedsDirectory(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSummary(&buf, sampleResult(), testConfig(schema.ParquetOut), 0)
	assert.Error(t, err)
}

func TestPrintSummaryToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.json")
	cfg := testConfig(schema.JSONOut)
	cfg.OutputFile = path

	require.NoError(t, NewOutWriter().WriteSummary(sampleResult(), cfg, 0))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded schema.Result
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "/data/summary.json", decoded.Source)
}

func TestPrintSummaryParquet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "export")
	cfg := testConfig(schema.ParquetOut)
	cfg.OutputFile = dir

	require.NoError(t, PrintSummary(sampleResult(), cfg, 0))
	assert.FileExists(t, filepath.Join(dir, parquet.WeeksFile))
	assert.FileExists(t, filepath.Join(dir, parquet.MonthsFile))
}

func TestCreateFormatters(t *testing.T) {
	fmtFloat, intFmt := createFormatters(2)
	assert.Equal(t, "3.14", fmtFloat(3.14159))
	assert.Equal(t, "%d", intFmt)

	fmtFloat, _ = createFormatters(1)
	assert.Equal(t, "2.0", fmtFloat(2))
}
