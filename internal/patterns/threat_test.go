package patterns

import (
	"reflect"
	"testing"

	"FlowScope/internal/model"
)

func u64(v uint64) *uint64 {
	return &v
}

func f64(v float64) *float64 {
	return &v
}

func TestThreatScoreComponents(t *testing.T) {
	cases := []struct {
		name string
		flow model.FlowRecord
		want int
	}{
		{"benign", model.FlowRecord{}, 0},
		{"anomaly only", model.FlowRecord{IsAnomaly: true}, 50},
		{"high pkt rate", model.FlowRecord{PktRate: f64(150)}, 15},
		{"high byte rate", model.FlowRecord{ByteRate: f64(20000)}, 15},
		{"port fan-out", model.FlowRecord{UniqueDstPorts: 11}, 20},
		{"everything capped", model.FlowRecord{IsAnomaly: true, PktRate: f64(150), ByteRate: f64(20000), UniqueDstPorts: 11}, 100},
		{"rate at boundary does not trigger", model.FlowRecord{PktRate: f64(100)}, 0},
	}

	for _, tc := range cases {
		if got := ThreatScore(&tc.flow); got != tc.want {
			t.Errorf("%s: expected score %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestSeverityForScoreBands(t *testing.T) {
	cases := map[int]model.Severity{
		0:   model.SeverityLow,
		39:  model.SeverityLow,
		40:  model.SeverityMedium,
		59:  model.SeverityMedium,
		60:  model.SeverityHigh,
		79:  model.SeverityHigh,
		80:  model.SeverityCritical,
		100: model.SeverityCritical,
	}

	for score, want := range cases {
		if got := SeverityForScore(score); got != want {
			t.Errorf("score %d: expected %s, got %s", score, want, got)
		}
	}
}

func TestEnrichDoesNotMutateInput(t *testing.T) {
	flows := []model.FlowRecord{
		{Src: "a", IsAnomaly: true, PktRate: f64(200)},
	}
	before := make([]model.FlowRecord, len(flows))
	copy(before, flows)

	enriched := Enrich(flows)

	if !reflect.DeepEqual(flows, before) {
		t.Error("Enrich mutated its input slice")
	}
	if enriched[0].ThreatScore != 65 {
		t.Errorf("expected threat score 65, got %d", enriched[0].ThreatScore)
	}
	if enriched[0].Severity != model.SeverityHigh {
		t.Errorf("expected HIGH severity, got %s", enriched[0].Severity)
	}
}

func TestEnrichPreservesExplicitSeverityAndReason(t *testing.T) {
	flows := []model.FlowRecord{
		{Src: "a", IsAnomaly: true, Severity: model.SeverityUnknown, Reason: "custom", UniqueDstPorts: 50},
	}

	enriched := Enrich(flows)

	if enriched[0].Severity != model.SeverityUnknown {
		t.Errorf("explicit severity was overwritten: %s", enriched[0].Severity)
	}
	if enriched[0].Reason != "custom" {
		t.Errorf("explicit reason was overwritten: %s", enriched[0].Reason)
	}
}

func TestEnrichReasonPriority(t *testing.T) {
	flows := []model.FlowRecord{
		{IsAnomaly: true, UniqueDstPorts: 11, PktRate: f64(500), ByteCount: u64(1 << 30)},
		{IsAnomaly: true, PktRate: f64(500)},
		{IsAnomaly: true, ByteCount: u64(1 << 30)},
		{IsAnomaly: true},
		{},
	}

	enriched := Enrich(flows)

	want := []string{
		model.ReasonPortScan,
		model.ReasonDDoSSuspect,
		model.ReasonExfiltration,
		model.ReasonAnomaly,
		model.ReasonNormal,
	}
	for i, w := range want {
		if enriched[i].Reason != w {
			t.Errorf("flow %d: expected reason %s, got %s", i, w, enriched[i].Reason)
		}
	}
}

func TestDetectEmptyAndBenignBatches(t *testing.T) {
	for _, flows := range [][]model.FlowRecord{nil, {{Src: "a"}, {Src: "b"}}} {
		report := Detect(flows)
		if len(report.PortScans) != 0 || len(report.DDoSSuspects) != 0 || len(report.Exfiltrations) != 0 {
			t.Errorf("expected empty report, got %+v", report)
		}
		if report.PortScans == nil || report.DDoSSuspects == nil || report.Exfiltrations == nil {
			t.Error("pattern lists must be empty, not nil, for JSON rendering")
		}
	}
}

func TestDetectFindsPatterns(t *testing.T) {
	flows := []model.FlowRecord{
		{Src: "scanner", Dst: "victim", IsAnomaly: true, UniqueDstPorts: 40},
		{Src: "flooder", Dst: "victim", IsAnomaly: true, PktRate: f64(9000), PktCount: u64(90000)},
		{Src: "exfil", Dst: "drop", IsAnomaly: true, ByteCount: u64(1 << 30), Duration: f64(12.5)},
		{Src: "quiet", IsAnomaly: true, PktRate: f64(1), ByteCount: u64(10)},
		{Src: "benign", UniqueDstPorts: 100}, // not anomalous, never reported
	}

	report := Detect(flows)

	if len(report.PortScans) != 1 || report.PortScans[0].Src != "scanner" {
		t.Errorf("unexpected port scans: %+v", report.PortScans)
	}
	if len(report.DDoSSuspects) != 1 || report.DDoSSuspects[0].Src != "flooder" {
		t.Errorf("unexpected ddos suspects: %+v", report.DDoSSuspects)
	}
	if len(report.Exfiltrations) != 1 || report.Exfiltrations[0].Src != "exfil" {
		t.Errorf("unexpected exfiltrations: %+v", report.Exfiltrations)
	}
}
