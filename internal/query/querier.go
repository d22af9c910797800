package query

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"FlowScope/internal/config"
	"FlowScope/internal/storage"
)

// ReportRow is one stored report as returned by the history query.
type ReportRow struct {
	Timestamp      time.Time          `json:"timestamp"`
	TotalFlows     uint64             `json:"total_flows"`
	TotalAnomalies uint64             `json:"total_anomalies"`
	AnomalyRatio   float64            `json:"anomaly_ratio"`
	TotalBytes     uint64             `json:"total_bytes"`
	SrcEntropy     float64            `json:"src_entropy"`
	DstEntropy     float64            `json:"dst_entropy"`
	ModelStrength  map[string]float64 `json:"model_strength"`
}

// Querier defines the interface for querying stored report history.
type Querier interface {
	// RecentReports returns up to limit stored reports, newest first.
	RecentReports(ctx context.Context, limit int) ([]ReportRow, error)
	Close() error
}

// clickhouseQuerier implements the Querier interface for ClickHouse.
type clickhouseQuerier struct {
	conn driver.Conn
}

// NewClickHouseQuerier creates a new querier for ClickHouse.
func NewClickHouseQuerier(cfg config.ClickHouseConfig) (Querier, error) {
	conn, err := storage.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to clickhouse: %w", err)
	}
	return &clickhouseQuerier{conn: conn}, nil
}

const recentReportsQuery = `
SELECT
    Timestamp,
    TotalFlows,
    TotalAnomalies,
    AnomalyRatio,
    TotalBytes,
    SrcEntropy,
    DstEntropy,
    ModelStrength
FROM flow_reports
ORDER BY Timestamp DESC
LIMIT ?
`

// RecentReports fetches the newest stored reports.
func (q *clickhouseQuerier) RecentReports(ctx context.Context, limit int) ([]ReportRow, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := q.conn.Query(ctx, recentReportsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	var reports []ReportRow
	for rows.Next() {
		var row ReportRow
		var strengthJSON string
		if err := rows.Scan(
			&row.Timestamp,
			&row.TotalFlows,
			&row.TotalAnomalies,
			&row.AnomalyRatio,
			&row.TotalBytes,
			&row.SrcEntropy,
			&row.DstEntropy,
			&strengthJSON,
		); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		if err := json.Unmarshal([]byte(strengthJSON), &row.ModelStrength); err != nil {
			row.ModelStrength = nil // tolerate rows written by older versions
		}
		reports = append(reports, row)
	}
	return reports, nil
}

func (q *clickhouseQuerier) Close() error {
	return q.conn.Close()
}
