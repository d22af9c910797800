package storage

import (
	"context"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"FlowScope/internal/config"
	"FlowScope/internal/model"
)

func init() {
	RegisterWriter("gob", func(def config.WriterDef) (model.Writer, error) {
		return NewGobWriter(def.Gob)
	})
}

// summaryData is the human-readable sidecar written next to each report.
type summaryData struct {
	Timestamp      string  `json:"timestamp"`
	TotalFlows     int     `json:"total_flows"`
	TotalAnomalies int     `json:"total_anomalies"`
	TotalBytes     uint64  `json:"total_bytes"`
	SrcEntropy     float64 `json:"src_entropy"`
	DstEntropy     float64 `json:"dst_entropy"`
	Models         int     `json:"models"`
}

// GobWriter archives each report to a timestamped directory on disk as
// report.gob plus a summary.json for quick inspection.
type GobWriter struct {
	rootPath string
}

// NewGobWriter creates a gob archive writer rooted at the configured path.
func NewGobWriter(cfg config.GobConfig) (*GobWriter, error) {
	if cfg.RootPath == "" {
		return nil, fmt.Errorf("gob writer requires a root_path")
	}
	if err := os.MkdirAll(cfg.RootPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create report root directory: %w", err)
	}
	return &GobWriter{rootPath: cfg.RootPath}, nil
}

// Write serializes one timestamped report to disk.
func (w *GobWriter) Write(ctx context.Context, report *model.TimestampedReport) error {
	dir := filepath.Join(w.rootPath, report.Timestamp.Format("2006-01-02_15-04-05"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	file, err := os.Create(filepath.Join(dir, "report.gob"))
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()
	if err := gob.NewEncoder(file).Encode(report); err != nil {
		return fmt.Errorf("failed to encode report to gob: %w", err)
	}

	summary := summaryData{
		Timestamp:      report.Timestamp.UTC().Format(time.RFC3339),
		TotalFlows:     report.Report.Summary.TotalFlows,
		TotalAnomalies: report.Report.Summary.TotalAnomalies,
		TotalBytes:     report.Report.Summary.TotalBytes,
		SrcEntropy:     report.Report.SrcEntropy,
		DstEntropy:     report.Report.DstEntropy,
		Models:         len(report.Report.ModelStrength),
	}
	summaryFile, err := os.Create(filepath.Join(dir, "summary.json"))
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer summaryFile.Close()
	enc := json.NewEncoder(summaryFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("failed to encode summary to json: %w", err)
	}

	return nil
}

// Close implements model.Writer; the gob writer holds no resources.
func (w *GobWriter) Close() error {
	return nil
}

// ReadReport loads a report archived by a GobWriter, for offline tooling.
func ReadReport(path string) (*model.TimestampedReport, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report file: %w", err)
	}
	defer file.Close()

	var report model.TimestampedReport
	if err := gob.NewDecoder(file).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode report gob: %w", err)
	}
	return &report, nil
}
