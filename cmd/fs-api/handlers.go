package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"FlowScope/internal/alerting"
	"FlowScope/internal/config"
	"FlowScope/internal/ingest"
	"FlowScope/internal/manager"
	"FlowScope/internal/model"
	"FlowScope/internal/query"
	"FlowScope/pkg/pcapflow"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flowscope_http_requests_total",
		Help: "HTTP requests served, by path and status code.",
	}, []string{"path", "status"})
	requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "flowscope_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	})
	reportsBuilt = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flowscope_reports_built_total",
		Help: "Aggregated reports assembled.",
	})
	anomaliesObserved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flowscope_anomalies_observed_total",
		Help: "Anomalous flows seen across all processed batches.",
	})
)

// Server holds the dependencies for the API handlers.
type Server struct {
	cfg     *config.Config
	manager *manager.Manager
	store   alerting.Store
	querier query.Querier
}

// statusRecorder captures the response code for the request metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument is the router middleware recording request metrics.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		requestDuration.Observe(time.Since(start).Seconds())
		requestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.status)).Inc()
	})
}

// handleAnalyze accepts a JSON batch envelope and runs the full pipeline.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to read request body: %v", err), http.StatusBadRequest)
		return
	}

	// A non-object body is a caller error, not something the engine defaults.
	var envelope map[string]any
	if err := json.Unmarshal(body, &envelope); err != nil {
		http.Error(w, fmt.Sprintf("request body must be a JSON object: %v", err), http.StatusBadRequest)
		return
	}

	s.process(w, r, ingest.DecodeBatch(envelope))
}

// handleUpload accepts a multipart pcap upload, extracts its flows, and
// runs the same pipeline. Model evaluations may ride along as a form field.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		http.Error(w, fmt.Sprintf("failed to parse multipart form: %v", err), http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "multipart field 'file' is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", "flowscope-upload-*.pcap")
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to stage upload: %v", err), http.StatusInternalServerError)
		return
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		http.Error(w, fmt.Sprintf("failed to stage upload: %v", err), http.StatusInternalServerError)
		return
	}
	tmp.Close()

	flows, err := pcapflow.ExtractFile(tmp.Name())
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to extract flows: %v", err), http.StatusBadRequest)
		return
	}

	batch := &model.Batch{Flows: flows, ModelEvals: make(map[string]model.ModelEvalStats)}
	if raw := r.FormValue("model_evaluations"); raw != "" {
		var evals map[string]any
		if err := json.Unmarshal([]byte(raw), &evals); err != nil {
			http.Error(w, fmt.Sprintf("invalid model_evaluations field: %v", err), http.StatusBadRequest)
			return
		}
		batch = ingest.DecodeBatch(map[string]any{"model_evaluations": evals})
		batch.Flows = flows
	}

	s.process(w, r, batch)
}

// process runs the pipeline and writes the full analysis response.
func (s *Server) process(w http.ResponseWriter, r *http.Request, batch *model.Batch) {
	result, err := s.manager.Process(r.Context(), batch)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to process batch: %v", err), http.StatusInternalServerError)
		return
	}

	reportsBuilt.Inc()
	anomaliesObserved.Add(float64(result.Report.Summary.TotalAnomalies))

	writeJSON(w, http.StatusOK, result)
}

// handleReports serves stored report history from ClickHouse.
func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	if s.querier == nil {
		http.Error(w, "report history requires a ClickHouse backend", http.StatusServiceUnavailable)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	reports, err := s.querier.RecentReports(r.Context(), limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to query reports: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reports": reports})
}

// handleAlerts serves the recent alert history and its summary.
func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 50
	}
	alerts, err := s.store.Recent(r.Context(), limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to read alerts: %v", err), http.StatusInternalServerError)
		return
	}
	summary, err := s.store.Summary(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to summarize alerts: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"alerts": alerts, "summary": summary})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "fs-api"})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "FlowScope API",
		"endpoints": []string{
			"POST /api/v1/analyze",
			"POST /api/v1/upload",
			"GET /api/v1/reports",
			"GET /api/v1/alerts",
			"GET /health",
			"GET /metrics",
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Too late for an error status; the log is all we can do.
		log.Printf("Failed to encode response: %v", err)
	}
}
