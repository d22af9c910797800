package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"FlowScope/internal/alerting"
	"FlowScope/internal/config"
	"FlowScope/internal/manager"
	"FlowScope/internal/model"
	"FlowScope/internal/notification"
	"FlowScope/internal/query"
)

func main() {
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store, err := alerting.NewStore(cfg.Alerting)
	if err != nil {
		log.Fatalf("Failed to create alert store: %v", err)
	}
	defer store.Close()

	// Notifications are optional; without SMTP settings alerts are only stored.
	var notifier model.Notifier
	if cfg.SMTP.Host != "" {
		notifier = notification.NewEmailNotifier(cfg.SMTP)
	}

	// The API runs the pipeline synchronously per request and persists
	// nothing itself; report history is written by fs-engine.
	mgr := manager.New(cfg, nil, store, notifier)
	mgr.Start()

	// Report history needs a ClickHouse backend; without one the endpoint
	// reports unavailable.
	var querier query.Querier
	for _, def := range cfg.Storage.Writers {
		if def.Enabled && def.Type == "clickhouse" {
			querier, err = query.NewClickHouseQuerier(def.ClickHouse)
			if err != nil {
				log.Fatalf("Failed to create querier: %v", err)
			}
			defer querier.Close()
			break
		}
	}

	server := &Server{cfg: cfg, manager: mgr, store: store, querier: querier}

	r := mux.NewRouter()
	r.HandleFunc("/", server.handleIndex).Methods("GET")
	r.HandleFunc("/health", server.handleHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/api/v1/analyze", server.handleAnalyze).Methods("POST")
	r.HandleFunc("/api/v1/upload", server.handleUpload).Methods("POST")
	r.HandleFunc("/api/v1/reports", server.handleReports).Methods("GET")
	r.HandleFunc("/api/v1/alerts", server.handleAlerts).Methods("GET")
	r.Use(server.instrument)

	httpServer := &http.Server{
		Addr:    cfg.API.ListenAddr,
		Handler: r,
	}

	go func() {
		log.Printf("API server starting on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v", httpServer.Addr, err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("API server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	mgr.Stop()
	log.Println("API server exited.")
}
