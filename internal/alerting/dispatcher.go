package alerting

import (
	"fmt"
	"log"
	"sync"

	"FlowScope/internal/model"
)

// Dispatcher forwards alerts at or above a severity threshold to a notifier.
// Deliveries run on a single goroutine behind a buffered channel so slow
// notifiers never stall batch processing.
type Dispatcher struct {
	notifier    model.Notifier
	minSeverity model.Severity
	ch          chan model.Alert
	wg          sync.WaitGroup
}

// NewDispatcher creates a dispatcher for the given notifier and threshold.
func NewDispatcher(notifier model.Notifier, minSeverity model.Severity) *Dispatcher {
	return &Dispatcher{
		notifier:    notifier,
		minSeverity: minSeverity,
		ch:          make(chan model.Alert, 64),
	}
}

// Start launches the delivery goroutine.
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for alert := range d.ch {
			subject := fmt.Sprintf("[FlowScope] %s alert: %s", alert.Severity, alert.PatternType)
			body := fmt.Sprintf("%s<br>Source: %s<br>Destination: %s<br>Threat score: %d",
				alert.Description, alert.SourceIP, alert.DestinationIP, alert.ThreatScore)
			if err := d.notifier.Send(subject, body); err != nil {
				log.Printf("Failed to send notification for alert %s: %v", alert.ID, err)
			}
		}
	}()
}

// Dispatch queues an alert for delivery if it crosses the threshold.
// Alerts are dropped when the queue is full rather than blocking the caller.
func (d *Dispatcher) Dispatch(alert model.Alert) {
	if alert.Severity.Rank() < d.minSeverity.Rank() {
		return
	}
	select {
	case d.ch <- alert:
	default:
		log.Printf("Notification queue full, dropping alert %s", alert.ID)
	}
}

// Stop drains pending deliveries and waits for the goroutine to exit.
func (d *Dispatcher) Stop() {
	close(d.ch)
	d.wg.Wait()
}
