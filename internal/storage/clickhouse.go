package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"FlowScope/internal/config"
	"FlowScope/internal/model"
)

func init() {
	RegisterWriter("clickhouse", func(def config.WriterDef) (model.Writer, error) {
		return NewClickHouseWriter(def.ClickHouse)
	})
}

const createTableStatement = `
CREATE TABLE IF NOT EXISTS flow_reports (
    Timestamp       DateTime,
    TotalFlows      UInt64,
    TotalAnomalies  UInt64,
    AnomalyRatio    Float64,
    TotalBytes      UInt64,
    SrcEntropy      Float64,
    DstEntropy      Float64,
    SeverityCounts  Map(String, UInt64),
    ProtocolCounts  Map(String, UInt64),
    TopSources      String,
    TopDestinations String,
    Extremes        String,
    ModelStrength   String
) ENGINE = MergeTree()
PARTITION BY toYYYYMM(Timestamp)
ORDER BY Timestamp;
`

// ClickHouseWriter implements the model.Writer interface for ClickHouse.
// Histograms map onto native Map columns; the structured ranking and
// extremal fields are stored as JSON strings.
type ClickHouseWriter struct {
	conn driver.Conn
}

// NewClickHouseWriter connects to ClickHouse and ensures the table exists.
func NewClickHouseWriter(cfg config.ClickHouseConfig) (*ClickHouseWriter, error) {
	conn, err := Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to clickhouse: %w", err)
	}
	if err := conn.Exec(context.Background(), createTableStatement); err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	log.Println("Successfully connected to ClickHouse and ensured table exists.")
	return &ClickHouseWriter{conn: conn}, nil
}

// Connect opens a ClickHouse connection and verifies it with a ping.
func Connect(cfg config.ClickHouseConfig) (driver.Conn, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	})
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping clickhouse: %w", err)
	}
	return conn, nil
}

// Write inserts one report row into the flow_reports table.
func (w *ClickHouseWriter) Write(ctx context.Context, report *model.TimestampedReport) error {
	batch, err := w.conn.PrepareBatch(ctx, "INSERT INTO flow_reports")
	if err != nil {
		return fmt.Errorf("failed to prepare batch: %w", err)
	}

	r := report.Report
	err = batch.Append(
		report.Timestamp,
		uint64(r.Summary.TotalFlows),
		uint64(r.Summary.TotalAnomalies),
		r.Summary.AnomalyRatio,
		r.Summary.TotalBytes,
		r.SrcEntropy,
		r.DstEntropy,
		toCountMap(r.SeverityDistribution),
		toCountMap(r.ProtocolDistribution),
		mustJSON(r.TopSources),
		mustJSON(r.TopDestinations),
		mustJSON(r.Extremes),
		mustJSON(r.ModelStrength),
	)
	if err != nil {
		return fmt.Errorf("failed to append report to batch: %w", err)
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send batch: %w", err)
	}

	log.Printf("Wrote report of %d flows to ClickHouse", r.Summary.TotalFlows)
	return nil
}

// Close closes the ClickHouse connection.
func (w *ClickHouseWriter) Close() error {
	return w.conn.Close()
}

func toCountMap(counts map[string]int) map[string]uint64 {
	out := make(map[string]uint64, len(counts))
	for k, v := range counts {
		out[k] = uint64(v)
	}
	return out
}

// mustJSON renders a report fragment for a String column. Report types
// contain nothing json.Marshal can fail on.
func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}
