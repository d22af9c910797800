package model

import "context"

// Writer defines a generic interface for persisting aggregated reports.
type Writer interface {
	// Write persists one timestamped report.
	Write(ctx context.Context, report *TimestampedReport) error

	// Close releases any resources held by the writer.
	Close() error
}
