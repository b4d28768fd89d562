// Package schema has configs, models and constants for all parts of pubviz.
package schema

import "time"

// CommitRecord is one entry of the commit summary file.
// Timestamps are normalized to UTC by the loader.
type CommitRecord struct {
	Commit        string    // Commit SHA, optional in the input
	Date          time.Time // Commit date
	Published     bool      // Whether an image was published for the commit
	PublishedTime time.Time // Publication date, zero unless Published
}

// WeeklyBucket holds the built and published counts for one week.
type WeeklyBucket struct {
	WeekStart time.Time `json:"weekStart" yaml:"weekStart"` // 00:00 UTC of the first day of the week
	WeekEnd   time.Time `json:"weekEnd" yaml:"weekEnd"`     // 00:00 UTC of the last day of the week
	Built     int       `json:"built" yaml:"built"`
	Published int       `json:"published" yaml:"published"`
}

// Unpublished returns the number of commits that were built but never published.
func (b WeeklyBucket) Unpublished() int {
	return b.Built - b.Published
}

// Rate returns the publication rate of the week as a percentage.
// Weeks without builds have a rate of zero.
func (b WeeklyBucket) Rate() float64 {
	if b.Built == 0 {
		return 0
	}
	return float64(b.Published) / float64(b.Built) * 100
}

// MonthlyDurations holds the publish latencies of commits made in one month.
type MonthlyDurations struct {
	Month     time.Time `json:"month" yaml:"month"`         // first instant of the commit month, UTC
	Durations []float64 `json:"durations" yaml:"durations"` // seconds, sorted ascending
}

// BoxStats summarizes one MonthlyDurations group for box-and-whisker drawing.
type BoxStats struct {
	Month    time.Time `json:"month" yaml:"month"`
	Count    int       `json:"count" yaml:"count"`
	Min      float64   `json:"min" yaml:"min"` // lower whisker end
	Q1       float64   `json:"q1" yaml:"q1"`
	Median   float64   `json:"median" yaml:"median"`
	Q3       float64   `json:"q3" yaml:"q3"`
	Max      float64   `json:"max" yaml:"max"` // upper whisker end
	Mean     float64   `json:"mean" yaml:"mean"`
	Outliers []float64 `json:"outliers" yaml:"outliers"`
}

// Anomaly is a published commit whose publication precedes its commit date.
type Anomaly struct {
	Commit        string    `json:"commit,omitempty" yaml:"commit,omitempty"`
	Date          time.Time `json:"date" yaml:"date"`
	PublishedTime time.Time `json:"publishedTime" yaml:"publishedTime"`
	Duration      float64   `json:"duration" yaml:"duration"` // seconds, negative
}

// Result is the outcome of one pipeline run.
type Result struct {
	Source      string             `json:"source" yaml:"source"`
	GeneratedAt time.Time          `json:"generatedAt" yaml:"generatedAt"`
	WeekEnd     string             `json:"weekEnd" yaml:"weekEnd"`
	Records     int                `json:"records" yaml:"records"`
	Weeks       []WeeklyBucket     `json:"weeks" yaml:"weeks"`
	Months      []MonthlyDurations `json:"months" yaml:"months"`
	Stats       []BoxStats         `json:"stats" yaml:"stats"`
	Anomalies   []Anomaly          `json:"anomalies" yaml:"anomalies"`
}
