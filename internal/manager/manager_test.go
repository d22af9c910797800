package manager

import (
	"context"
	"sync"
	"testing"

	"FlowScope/internal/alerting"
	"FlowScope/internal/config"
	"FlowScope/internal/model"
)

// mockWriter counts writes and remembers the last report it saw.
type mockWriter struct {
	mu      sync.Mutex
	writes  int
	closed  bool
	lastTot int
}

func (w *mockWriter) Write(ctx context.Context, report *model.TimestampedReport) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.writes++
	w.lastTot = report.Report.Summary.TotalFlows
	return nil
}

func (w *mockWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Manager.NumWorkers = 2
	cfg.Manager.SizeOfBatchChannel = 8
	cfg.Analytics.TopN = 5
	return cfg
}

func u64(v uint64) *uint64 {
	return &v
}

func testBatch() *model.Batch {
	return &model.Batch{
		Flows: []model.FlowRecord{
			{Src: "a", Dst: "x", Proto: "TCP", PktCount: u64(10), ByteCount: u64(1000)},
			{Src: "b", Dst: "x", Proto: "UDP", PktCount: u64(5), ByteCount: u64(500), IsAnomaly: true},
		},
	}
}

func TestProcessProducesFullResult(t *testing.T) {
	writer := &mockWriter{}
	m := New(testConfig(), []model.Writer{writer}, alerting.NewMemoryStore(100), nil)

	result, err := m.Process(context.Background(), testBatch())
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if result.Report.Summary.TotalFlows != 2 {
		t.Errorf("expected report over 2 flows, got %d", result.Report.Summary.TotalFlows)
	}
	if len(result.Alerts) != 1 {
		t.Fatalf("expected 1 alert for 1 anomalous flow, got %d", len(result.Alerts))
	}
	if result.Alerts[0].SourceIP != "b" {
		t.Errorf("expected alert for source b, got %s", result.Alerts[0].SourceIP)
	}
	if result.AlertSummary.Total != 1 {
		t.Errorf("expected alert summary total 1, got %d", result.AlertSummary.Total)
	}
	// Enrichment filled severity and reason on the returned flows.
	if result.Flows[1].Severity == "" || result.Flows[1].Reason == "" {
		t.Errorf("expected enriched anomalous flow, got %+v", result.Flows[1])
	}
	if writer.writes != 1 || writer.lastTot != 2 {
		t.Errorf("expected 1 write of a 2-flow report, got %d/%d", writer.writes, writer.lastTot)
	}
}

func TestManagerProcessesQueuedBatches(t *testing.T) {
	writer := &mockWriter{}
	m := New(testConfig(), []model.Writer{writer}, alerting.NewMemoryStore(100), nil)
	m.Start()

	const n = 10
	for i := 0; i < n; i++ {
		m.Input() <- testBatch()
	}
	m.Stop()

	if writer.writes != n {
		t.Errorf("expected %d writes after drain, got %d", n, writer.writes)
	}
	if !writer.closed {
		t.Error("expected writer to be closed on Stop")
	}
}
