package analytics

import (
	"testing"

	"FlowScope/internal/model"
)

func TestSummarizeBasicScenario(t *testing.T) {
	flows := []model.FlowRecord{
		{Src: "A", Dst: "X", PktCount: u64(10), ByteCount: u64(1000), Severity: model.SeverityLow},
		{Src: "A", Dst: "Y", PktCount: u64(5), ByteCount: u64(500), Severity: model.SeverityHigh, IsAnomaly: true},
	}

	s := Summarize(flows)

	if s.TotalFlows != 2 {
		t.Errorf("expected 2 total flows, got %d", s.TotalFlows)
	}
	if s.TotalAnomalies != 1 {
		t.Errorf("expected 1 anomaly, got %d", s.TotalAnomalies)
	}
	if s.AnomalyRatio != 50.00 {
		t.Errorf("expected anomaly ratio 50.00, got %v", s.AnomalyRatio)
	}
	if s.TotalBytes != 1500 {
		t.Errorf("expected 1500 total bytes, got %d", s.TotalBytes)
	}
	if s.UniqueSrcIPs != 1 {
		t.Errorf("expected 1 unique source, got %d", s.UniqueSrcIPs)
	}
	if s.UniqueDstIPs != 2 {
		t.Errorf("expected 2 unique destinations, got %d", s.UniqueDstIPs)
	}
}

func TestSummarizeEmptyBatch(t *testing.T) {
	s := Summarize(nil)

	if s.TotalFlows != 0 || s.TotalAnomalies != 0 || s.TotalBytes != 0 {
		t.Errorf("expected zero counts for empty batch, got %+v", s)
	}
	if s.AnomalyRatio != 0 {
		t.Errorf("expected anomaly ratio exactly 0 for empty batch, got %v", s.AnomalyRatio)
	}
	if s.AvgPktRate != 0 || s.AvgDuration != 0 {
		t.Errorf("expected zero means for empty batch, got %+v", s)
	}
}

// Missing rate values are excluded from both numerator and denominator.
func TestSummarizeMeansSkipMissingValues(t *testing.T) {
	flows := []model.FlowRecord{
		{PktRate: f64(10), ByteRate: f64(1000), Duration: f64(1.5)},
		{PktRate: f64(20)},
		{},
	}

	s := Summarize(flows)

	if s.AvgPktRate != 15 {
		t.Errorf("expected pkt rate mean 15 over 2 present values, got %v", s.AvgPktRate)
	}
	if s.AvgByteRate != 1000 {
		t.Errorf("expected byte rate mean 1000 over 1 present value, got %v", s.AvgByteRate)
	}
	if s.AvgDuration != 1.5 {
		t.Errorf("expected duration mean 1.5, got %v", s.AvgDuration)
	}
	if s.AvgPayloadSize != 0 {
		t.Errorf("expected payload mean 0 with no present values, got %v", s.AvgPayloadSize)
	}
}

func TestSummarizeMeanRounding(t *testing.T) {
	flows := []model.FlowRecord{
		{PktRate: f64(1), AvgPayloadSize: f64(1)},
		{PktRate: f64(2), AvgPayloadSize: f64(2)},
		{PktRate: f64(2), AvgPayloadSize: f64(2)},
	}

	s := Summarize(flows)

	// 5/3 = 1.6666... : rates round to 3 digits, payload to 2.
	if s.AvgPktRate != 1.667 {
		t.Errorf("expected pkt rate mean 1.667, got %v", s.AvgPktRate)
	}
	if s.AvgPayloadSize != 1.67 {
		t.Errorf("expected payload mean 1.67, got %v", s.AvgPayloadSize)
	}
}

func TestSummarizeAnomalyRatioRounding(t *testing.T) {
	flows := []model.FlowRecord{
		{IsAnomaly: true},
		{}, {},
	}

	s := Summarize(flows)

	if s.AnomalyRatio != 33.33 {
		t.Errorf("expected anomaly ratio 33.33, got %v", s.AnomalyRatio)
	}
}
