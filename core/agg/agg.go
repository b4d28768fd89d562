// Package agg has aggregation logic for commit build and publish records.
package agg

import (
	"time"

	"github.com/huangsam/pubviz/schema"
)

// week is the bucket width.
const week = 7 * 24 * time.Hour

// AggregateWeekly counts built and published commits per week.
// Weeks end on weekEnd and are keyed by 00:00 UTC of that day. The result is
// chronological and contiguous from the week of the earliest commit to the week
// of the latest one; weeks without commits are present with zero counts.
func AggregateWeekly(records []schema.CommitRecord, weekEnd time.Weekday) []schema.WeeklyBucket {
	if len(records) == 0 {
		return nil
	}

	// 1. Find the span of weeks
	first, last := weekSpan(records, weekEnd)

	// 2. Lay out zero-filled buckets
	n := int(last.Sub(first)/week) + 1
	buckets := make([]schema.WeeklyBucket, n)
	for i := range buckets {
		end := first.AddDate(0, 0, 7*i)
		buckets[i] = schema.WeeklyBucket{
			WeekStart: end.AddDate(0, 0, -6),
			WeekEnd:   end,
		}
	}

	// 3. Count every commit into its week
	for _, rec := range records {
		idx := int(schema.WeekEnding(rec.Date, weekEnd).Sub(first) / week)
		buckets[idx].Built++
		if rec.Published {
			buckets[idx].Published++
		}
	}
	return buckets
}

// weekSpan returns the keys of the earliest and latest weeks seen in records.
func weekSpan(records []schema.CommitRecord, weekEnd time.Weekday) (time.Time, time.Time) {
	first := schema.WeekEnding(records[0].Date, weekEnd)
	last := first
	for _, rec := range records[1:] {
		key := schema.WeekEnding(rec.Date, weekEnd)
		if key.Before(first) {
			first = key
		}
		if key.After(last) {
			last = key
		}
	}
	return first, last
}
