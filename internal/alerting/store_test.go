package alerting

import (
	"context"
	"fmt"
	"testing"
	"time"

	"FlowScope/internal/model"
)

func u64(v uint64) *uint64 {
	return &v
}

func TestFromFlow(t *testing.T) {
	anchor := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	flow := model.FlowRecord{
		Src:            "10.0.0.9",
		Dst:            "192.168.1.4",
		Proto:          "TCP",
		PktCount:       u64(400),
		ByteCount:      u64(52000),
		UniqueDstPorts: 30,
		Severity:       model.SeverityHigh,
		Reason:         model.ReasonPortScan,
		ThreatScore:    70,
		IsAnomaly:      true,
	}

	alert := FromFlow(&flow, anchor)

	if alert.ID != "ALERT_20260314092653_10.0.0.9" {
		t.Errorf("unexpected alert id: %s", alert.ID)
	}
	if alert.Severity != model.SeverityHigh || alert.PatternType != model.ReasonPortScan {
		t.Errorf("unexpected alert classification: %s/%s", alert.Severity, alert.PatternType)
	}
	if alert.PacketCount != 400 || alert.ByteCount != 52000 || alert.ThreatScore != 70 {
		t.Errorf("unexpected alert volume fields: %+v", alert)
	}
	want := "Possible port scan detected from 10.0.0.9 scanning 30 ports"
	if alert.Description != want {
		t.Errorf("expected description %q, got %q", want, alert.Description)
	}
}

func TestFromFlowDefaultsSeverityToMedium(t *testing.T) {
	flow := model.FlowRecord{Src: "a", Reason: model.ReasonAnomaly, IsAnomaly: true}
	if alert := FromFlow(&flow, time.Now()); alert.Severity != model.SeverityMedium {
		t.Errorf("expected MEDIUM severity default, got %s", alert.Severity)
	}
}

func TestFromFlowsOnlyAnomalous(t *testing.T) {
	flows := []model.FlowRecord{
		{Src: "a", IsAnomaly: true, Reason: model.ReasonAnomaly},
		{Src: "b"},
		{Src: "c", IsAnomaly: true, Reason: model.ReasonDDoSSuspect},
	}

	alerts := FromFlows(flows, time.Now())

	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(alerts))
	}
	if alerts[0].SourceIP != "a" || alerts[1].SourceIP != "c" {
		t.Errorf("alerts out of input order: %s, %s", alerts[0].SourceIP, alerts[1].SourceIP)
	}
}

func TestMemoryStoreCapacityKeepsNewest(t *testing.T) {
	store := NewMemoryStore(3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := store.Add(ctx, model.Alert{ID: fmt.Sprintf("a%d", i)}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	alerts, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(alerts) != 3 {
		t.Fatalf("expected 3 alerts at capacity, got %d", len(alerts))
	}
	if alerts[0].ID != "a4" || alerts[2].ID != "a2" {
		t.Errorf("expected newest-first a4..a2, got %s..%s", alerts[0].ID, alerts[2].ID)
	}
}

func TestMemoryStoreRecentLimit(t *testing.T) {
	store := NewMemoryStore(10)
	ctx := context.Background()
	for i := 0; i < 4; i++ {
		store.Add(ctx, model.Alert{ID: fmt.Sprintf("a%d", i)})
	}

	alerts, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(alerts) != 2 || alerts[0].ID != "a3" {
		t.Errorf("expected 2 newest alerts starting at a3, got %+v", alerts)
	}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	alerts := []model.Alert{
		{Severity: model.SeverityHigh, PatternType: model.ReasonPortScan, Timestamp: now.Add(-10 * time.Minute).Format(time.RFC3339)},
		{Severity: model.SeverityHigh, PatternType: model.ReasonAnomaly, Timestamp: now.Add(-30 * time.Minute).Format(time.RFC3339)},
		{Severity: model.SeverityLow, PatternType: model.ReasonAnomaly, Timestamp: now.Add(-2 * time.Hour).Format(time.RFC3339)},
	}

	summary := Summarize(alerts, now)

	if summary.Total != 3 {
		t.Errorf("expected total 3, got %d", summary.Total)
	}
	if summary.BySeverity["HIGH"] != 2 || summary.BySeverity["LOW"] != 1 {
		t.Errorf("unexpected severity counts: %v", summary.BySeverity)
	}
	if summary.ByType[model.ReasonAnomaly] != 2 {
		t.Errorf("unexpected type counts: %v", summary.ByType)
	}
	if summary.RecentCount != 2 {
		t.Errorf("expected 2 alerts in the last hour, got %d", summary.RecentCount)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil, time.Now())

	if summary.Total != 0 || summary.RecentCount != 0 {
		t.Errorf("expected zero summary, got %+v", summary)
	}
	if summary.BySeverity == nil || summary.ByType == nil {
		t.Error("summary maps must be empty, not nil")
	}
}
