package outwriter

import (
	"io"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"

	"github.com/huangsam/pubviz/schema"
)

// Metric names of the Prometheus exposition.
const (
	MetricWeeklyBuilt     = "pubviz_weekly_commits_built"
	MetricWeeklyPublished = "pubviz_weekly_commits_published"
	MetricWeeklyRate      = "pubviz_weekly_publication_rate_percent"
	MetricMonthlyLatency  = "pubviz_monthly_publish_latency_seconds"
)

// writePromSummary writes the aggregates in the Prometheus text exposition format.
func writePromSummary(w io.Writer, result *schema.Result) error {
	for _, mf := range buildMetricFamilies(result) {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// buildMetricFamilies converts the aggregates to metric families.
// Families without samples are left out since the text format cannot carry them.
func buildMetricFamilies(result *schema.Result) []*dto.MetricFamily {
	built := gaugeFamily(MetricWeeklyBuilt, "Commits built in the week ending on the labelled day.")
	published := gaugeFamily(MetricWeeklyPublished, "Commits published in the week ending on the labelled day.")
	rate := gaugeFamily(MetricWeeklyRate, "Share of built commits that were published, in percent.")
	for _, wk := range result.Weeks {
		week := wk.WeekEnd.Format(schema.WeekLabelFormat)
		built.Metric = append(built.Metric, gaugeMetric("week", week, float64(wk.Built)))
		published.Metric = append(published.Metric, gaugeMetric("week", week, float64(wk.Published)))
		rate.Metric = append(rate.Metric, gaugeMetric("week", week, wk.Rate()))
	}

	latency := &dto.MetricFamily{
		Name: proto.String(MetricMonthlyLatency),
		Help: proto.String("Delay between commit and image publication, by commit month."),
		Type: dto.MetricType_SUMMARY.Enum(),
	}
	for _, s := range result.Stats {
		latency.Metric = append(latency.Metric, &dto.Metric{
			Label: []*dto.LabelPair{label("month", s.Month.Format(schema.MonthLabelFormat))},
			Summary: &dto.Summary{
				SampleCount: proto.Uint64(uint64(s.Count)),
				SampleSum:   proto.Float64(s.Mean * float64(s.Count)),
				Quantile: []*dto.Quantile{
					{Quantile: proto.Float64(0.25), Value: proto.Float64(s.Q1)},
					{Quantile: proto.Float64(0.5), Value: proto.Float64(s.Median)},
					{Quantile: proto.Float64(0.75), Value: proto.Float64(s.Q3)},
				},
			},
		})
	}

	var families []*dto.MetricFamily
	for _, mf := range []*dto.MetricFamily{built, published, rate, latency} {
		if len(mf.Metric) > 0 {
			families = append(families, mf)
		}
	}
	return families
}

func gaugeFamily(name, help string) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(name),
		Help: proto.String(help),
		Type: dto.MetricType_GAUGE.Enum(),
	}
}

func gaugeMetric(labelName, labelValue string, v float64) *dto.Metric {
	return &dto.Metric{
		Label: []*dto.LabelPair{label(labelName, labelValue)},
		Gauge: &dto.Gauge{Value: proto.Float64(v)},
	}
}

func label(name, value string) *dto.LabelPair {
	return &dto.LabelPair{Name: proto.String(name), Value: proto.String(value)}
}
