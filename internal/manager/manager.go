// Package manager runs the batch processing pipeline: enrichment, report
// aggregation, pattern detection, alerting, and persistence.
package manager

import (
	"context"
	"log"
	"sync"
	"time"

	"FlowScope/internal/alerting"
	"FlowScope/internal/analytics"
	"FlowScope/internal/config"
	"FlowScope/internal/model"
	"FlowScope/internal/patterns"
)

// Result is the full outcome of processing one batch, in the shape the
// presentation layer consumes.
type Result struct {
	Flows        []model.FlowRecord      `json:"flows"`
	Report       *model.AggregatedReport `json:"report"`
	Patterns     *patterns.Report        `json:"patterns"`
	Alerts       []model.Alert           `json:"alerts"`
	AlertSummary model.AlertSummary      `json:"alert_summary"`
}

// Manager owns the batch channel and worker pool feeding the pipeline.
type Manager struct {
	engine     *analytics.Engine
	store      alerting.Store
	dispatcher *alerting.Dispatcher
	writers    []model.Writer

	batchChannel chan *model.Batch
	numWorkers   int
	workerWg     sync.WaitGroup
}

// New creates a Manager. The notifier may be nil, in which case alerts are
// stored but never sent anywhere.
func New(cfg *config.Config, writers []model.Writer, store alerting.Store, notifier model.Notifier) *Manager {
	var dispatcher *alerting.Dispatcher
	if notifier != nil {
		dispatcher = alerting.NewDispatcher(notifier, model.Severity(cfg.Alerting.NotifyMinSeverity))
	}

	return &Manager{
		engine:       analytics.NewEngine(cfg.Analytics.TopN),
		store:        store,
		dispatcher:   dispatcher,
		writers:      writers,
		batchChannel: make(chan *model.Batch, cfg.Manager.SizeOfBatchChannel),
		numWorkers:   cfg.Manager.NumWorkers,
	}
}

// Start launches the worker pool and, if configured, the notifier dispatch.
func (m *Manager) Start() {
	if m.dispatcher != nil {
		m.dispatcher.Start()
	}
	m.workerWg.Add(m.numWorkers)
	for i := 0; i < m.numWorkers; i++ {
		go m.worker()
	}
	log.Printf("Manager started with %d workers.", m.numWorkers)
}

// Input returns the channel to which batches should be sent for processing.
func (m *Manager) Input() chan<- *model.Batch {
	return m.batchChannel
}

// Process runs the full pipeline for one batch. It is also called directly
// by the API service, which needs the result synchronously.
func (m *Manager) Process(ctx context.Context, batch *model.Batch) (*Result, error) {
	flows := patterns.Enrich(batch.Flows)
	now := time.Now()

	report := m.engine.BuildReport(&model.Batch{Flows: flows, ModelEvals: batch.ModelEvals})
	patternReport := patterns.Detect(flows)

	alerts := alerting.FromFlows(flows, now)
	for _, alert := range alerts {
		if err := m.store.Add(ctx, alert); err != nil {
			log.Printf("Failed to store alert %s: %v", alert.ID, err)
		}
		if m.dispatcher != nil {
			m.dispatcher.Dispatch(alert)
		}
	}

	summary, err := m.store.Summary(ctx)
	if err != nil {
		return nil, err
	}

	// Writer failures are logged, not returned: a broken backend must not
	// take down report delivery.
	stamped := &model.TimestampedReport{Timestamp: now, Report: report}
	for _, w := range m.writers {
		if err := w.Write(ctx, stamped); err != nil {
			log.Printf("Error writing report: %v", err)
		}
	}

	return &Result{
		Flows:        flows,
		Report:       report,
		Patterns:     patternReport,
		Alerts:       alerts,
		AlertSummary: summary,
	}, nil
}

func (m *Manager) worker() {
	defer m.workerWg.Done()
	for batch := range m.batchChannel {
		if _, err := m.Process(context.Background(), batch); err != nil {
			log.Printf("Error processing batch of %d flows: %v", len(batch.Flows), err)
		}
	}
}

// Stop gracefully shuts down the manager: stop accepting batches, drain the
// buffered ones, then flush notifications and close the writers.
func (m *Manager) Stop() {
	log.Println("Manager stopping...")
	close(m.batchChannel)

	log.Println("Waiting for workers to finish...")
	m.workerWg.Wait()

	if m.dispatcher != nil {
		m.dispatcher.Stop()
	}
	for _, w := range m.writers {
		if err := w.Close(); err != nil {
			log.Printf("Error closing writer: %v", err)
		}
	}
	log.Println("Manager stopped.")
}
