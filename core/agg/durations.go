package agg

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/huangsam/pubviz/internal/contract"
	"github.com/huangsam/pubviz/schema"
)

// maxListedAnomalies caps how many offending commits an anomaly error names.
const maxListedAnomalies = 5

// AggregateDurations groups publish latencies of published commits by commit month.
// A latency is PublishedTime - Date in seconds. Negative latencies are anomalies:
// they abort with contract.ErrDataAnomaly unless allowAnomalies is set, in which case
// they are returned separately and left out of the groups.
// Groups are chronological, sorted ascending inside, and only exist for months
// with at least one valid latency.
func AggregateDurations(records []schema.CommitRecord, allowAnomalies bool) ([]schema.MonthlyDurations, []schema.Anomaly, error) {
	byMonth := make(map[time.Time][]float64)
	var anomalies []schema.Anomaly

	for _, rec := range records {
		if !rec.Published {
			continue
		}
		seconds := rec.PublishedTime.Sub(rec.Date).Seconds()
		if seconds < 0 {
			anomalies = append(anomalies, schema.Anomaly{
				Commit:        rec.Commit,
				Date:          rec.Date,
				PublishedTime: rec.PublishedTime,
				Duration:      seconds,
			})
			continue
		}
		month := schema.MonthStart(rec.Date)
		byMonth[month] = append(byMonth[month], seconds)
	}

	if len(anomalies) > 0 && !allowAnomalies {
		return nil, anomalies, anomalyError(anomalies)
	}

	months := make([]time.Time, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	groups := make([]schema.MonthlyDurations, 0, len(months))
	for _, month := range months {
		durations := byMonth[month]
		sort.Float64s(durations)
		groups = append(groups, schema.MonthlyDurations{Month: month, Durations: durations})
	}
	return groups, anomalies, nil
}

// anomalyError names the offending commits.
func anomalyError(anomalies []schema.Anomaly) error {
	parts := make([]string, 0, maxListedAnomalies+1)
	for i, a := range anomalies {
		if i == maxListedAnomalies {
			parts = append(parts, fmt.Sprintf("and %d more", len(anomalies)-maxListedAnomalies))
			break
		}
		parts = append(parts, DescribeAnomaly(a))
	}
	return contract.DataAnomaly("%d published commit(s) precede their commit date: %s",
		len(anomalies), strings.Join(parts, "; "))
}

// DescribeAnomaly renders one anomaly for error and log messages.
func DescribeAnomaly(a schema.Anomaly) string {
	name := a.Commit
	if name == "" {
		name = a.Date.Format(time.RFC3339)
	}
	return fmt.Sprintf("%s published %s early", name, schema.FormatDuration(-a.Duration))
}
