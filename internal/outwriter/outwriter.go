// Package outwriter has output and writer logic for pubviz summaries.
package outwriter

import (
	"time"

	"github.com/huangsam/pubviz/internal/contract"
	"github.com/huangsam/pubviz/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSummary prints the aggregates of one run using the configured output format.
func (ow *OutWriter) WriteSummary(result *schema.Result, cfg *contract.Config, duration time.Duration) error {
	return PrintSummary(result, cfg, duration)
}
