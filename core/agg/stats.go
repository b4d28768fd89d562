package agg

import (
	"gonum.org/v1/gonum/stat"

	"github.com/huangsam/pubviz/schema"
)

// whiskerReach is how far whiskers extend past the box, in IQRs.
const whiskerReach = 1.5

// ComputeBoxStats summarizes every group for box-and-whisker drawing.
func ComputeBoxStats(groups []schema.MonthlyDurations) []schema.BoxStats {
	stats := make([]schema.BoxStats, 0, len(groups))
	for _, g := range groups {
		if len(g.Durations) == 0 {
			continue
		}
		stats = append(stats, BoxStatsOf(g))
	}
	return stats
}

// BoxStatsOf computes quartiles, whisker ends and outliers of one group.
// Durations must be sorted ascending and non-empty.
func BoxStatsOf(g schema.MonthlyDurations) schema.BoxStats {
	x := g.Durations
	q1 := quantile(x, 0.25)
	q3 := quantile(x, 0.75)
	iqr := q3 - q1
	lowFence := q1 - whiskerReach*iqr
	highFence := q3 + whiskerReach*iqr

	bs := schema.BoxStats{
		Month:    g.Month,
		Count:    len(x),
		Q1:       q1,
		Median:   quantile(x, 0.5),
		Q3:       q3,
		Mean:     stat.Mean(x, nil),
		Outliers: []float64{},
	}

	// whiskers stop at the furthest samples inside the fences
	bs.Min, bs.Max = q1, q3
	for _, v := range x {
		if v < lowFence || v > highFence {
			bs.Outliers = append(bs.Outliers, v)
			continue
		}
		if v < bs.Min {
			bs.Min = v
		}
		if v > bs.Max {
			bs.Max = v
		}
	}
	return bs
}

// quantile returns the p-quantile of sorted x by linear interpolation between
// closest ranks, the definition box plots conventionally use.
func quantile(x []float64, p float64) float64 {
	n := float64(len(x))
	// LinInterp places p at rank p*n; shift it to rank 1+(n-1)p
	return stat.Quantile((1+(n-1)*p)/n, stat.LinInterp, x, nil)
}
