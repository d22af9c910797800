// Package alerting turns anomalous flows into alerts and keeps a bounded
// history of them for the dashboard.
package alerting

import (
	"fmt"
	"time"

	"FlowScope/internal/model"
)

// FromFlow builds the alert for one anomalous flow. Pattern type and
// severity come from the flow's classification; a flow without a severity
// alerts as MEDIUM.
func FromFlow(f *model.FlowRecord, now time.Time) model.Alert {
	severity := f.Severity
	if severity == "" {
		severity = model.SeverityMedium
	}

	a := model.Alert{
		ID:            fmt.Sprintf("ALERT_%s_%s", now.Format("20060102150405"), f.Src),
		Timestamp:     now.Format(time.RFC3339),
		Severity:      severity,
		PatternType:   f.Reason,
		SourceIP:      f.Src,
		DestinationIP: f.Dst,
		Protocol:      f.Proto,
		ThreatScore:   f.ThreatScore,
		Description:   description(f),
	}
	if f.PktCount != nil {
		a.PacketCount = *f.PktCount
	}
	if f.ByteCount != nil {
		a.ByteCount = *f.ByteCount
	}
	return a
}

// FromFlows builds alerts for every anomalous flow of a batch, in input order.
func FromFlows(flows []model.FlowRecord, now time.Time) []model.Alert {
	var alerts []model.Alert
	for i := range flows {
		if flows[i].IsAnomaly {
			alerts = append(alerts, FromFlow(&flows[i], now))
		}
	}
	return alerts
}

// description renders the human-readable alert text for a flow's pattern.
func description(f *model.FlowRecord) string {
	switch f.Reason {
	case model.ReasonPortScan:
		return fmt.Sprintf("Possible port scan detected from %s scanning %d ports", f.Src, f.UniqueDstPorts)
	case model.ReasonDDoSSuspect:
		rate := 0.0
		if f.PktRate != nil {
			rate = *f.PktRate
		}
		return fmt.Sprintf("Potential DDoS attack detected with %g packets/sec from %s", rate, f.Src)
	case model.ReasonExfiltration:
		bytes := uint64(0)
		if f.ByteCount != nil {
			bytes = *f.ByteCount
		}
		return fmt.Sprintf("Large data transfer detected: %d bytes from %s to %s", bytes, f.Src, f.Dst)
	case model.ReasonAnomaly:
		return fmt.Sprintf("Anomalous behavior detected in flow from %s to %s", f.Src, f.Dst)
	default:
		return "Unknown anomaly detected"
	}
}

// Summarize aggregates a set of alerts into the dashboard summary.
// Recency is judged against the provided clock.
func Summarize(alerts []model.Alert, now time.Time) model.AlertSummary {
	summary := model.AlertSummary{
		Total:      len(alerts),
		BySeverity: make(map[string]int),
		ByType:     make(map[string]int),
	}
	cutoff := now.Add(-time.Hour)
	for _, a := range alerts {
		summary.BySeverity[string(a.Severity)]++
		summary.ByType[a.PatternType]++
		if ts, err := time.Parse(time.RFC3339, a.Timestamp); err == nil && ts.After(cutoff) {
			summary.RecentCount++
		}
	}
	return summary
}
