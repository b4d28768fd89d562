// Package core has the pipeline that turns a commit summary into aggregates,
// charts and reports.
package core

import (
	"context"
	"time"

	"github.com/huangsam/pubviz/core/agg"
	"github.com/huangsam/pubviz/internal/contract"
	"github.com/huangsam/pubviz/internal/loader"
	"github.com/huangsam/pubviz/internal/outwriter"
	"github.com/huangsam/pubviz/internal/render"
	"github.com/huangsam/pubviz/schema"
)

// ExecutorFunc defines the function signature for executing different command modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// ExecuteVisualize loads the summary, draws the three-panel chart and hands it to
// the configured display. It serves as the main entry point for the root command.
func ExecuteVisualize(ctx context.Context, cfg *contract.Config) error {
	log := loggerFrom(ctx)
	start := time.Now()

	result, err := Run(ctx, cfg, contract.SystemClock)
	if err != nil {
		return err
	}

	fig := render.BuildFigure(cfg.Title, result.Weeks, result.Stats)
	image, err := render.Draw(fig, cfg.Format, cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	log.Debugf("rendered %s chart of %d bytes in %v", cfg.Format, len(image), time.Since(start))

	if err := render.NewDisplayer(cfg, log).Show(ctx, image, cfg.Format); err != nil {
		log.Error("cannot display chart", err)
		return err
	}
	return nil
}

// ExecuteSummary loads the summary and prints the aggregates in the configured
// output format. It serves as the main entry point for the 'summary' mode.
func ExecuteSummary(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	result, err := Run(ctx, cfg, contract.SystemClock)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteSummary(result, cfg, duration)
}

// Run loads the commit summary and computes every aggregate of one invocation.
// The context is checked between stages; clock only stamps the result.
func Run(ctx context.Context, cfg *contract.Config, clock contract.Clock) (*schema.Result, error) {
	log := loggerFrom(ctx).With("source", cfg.InputPath())

	records, err := loader.Load(cfg.DataDir, cfg.DataFile)
	if err != nil {
		return nil, err
	}
	log.Debugf("loaded %d commit records", len(records))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	weeks := agg.AggregateWeekly(records, cfg.WeekEnd)
	months, anomalies, err := agg.AggregateDurations(records, cfg.AllowAnomalies)
	if err != nil {
		return nil, err
	}
	for _, a := range anomalies {
		log.Warnf("excluded from durations: %s", agg.DescribeAnomaly(a))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stats := agg.ComputeBoxStats(months)
	log.Debugf("aggregated %d weeks and %d months", len(weeks), len(stats))

	return &schema.Result{
		Source:      cfg.InputPath(),
		GeneratedAt: clock.Now().UTC(),
		WeekEnd:     cfg.WeekEnd.String(),
		Records:     len(records),
		Weeks:       weeks,
		Months:      nonNil(months),
		Stats:       nonNil(stats),
		Anomalies:   nonNil(anomalies),
	}, nil
}

// nonNil keeps empty sections as [] in JSON reports.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
