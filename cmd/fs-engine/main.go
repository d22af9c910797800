package main

import (
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"FlowScope/internal/alerting"
	"FlowScope/internal/config"
	"FlowScope/internal/ingest"
	"FlowScope/internal/manager"
	"FlowScope/internal/model"
	"FlowScope/internal/notification"
	"FlowScope/internal/storage"
)

func main() {
	log.Println("Starting fs-engine...")

	// 1. Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Create the report writers and the alert store
	writers, err := storage.CreateWriters(cfg)
	if err != nil {
		log.Fatalf("Failed to create report writers: %v", err)
	}
	store, err := alerting.NewStore(cfg.Alerting)
	if err != nil {
		log.Fatalf("Failed to create alert store: %v", err)
	}
	defer store.Close()

	var notifier model.Notifier
	if cfg.SMTP.Host != "" {
		notifier = notification.NewEmailNotifier(cfg.SMTP)
	}

	// 3. Start the batch pipeline
	mgr := manager.New(cfg, writers, store, notifier)
	mgr.Start()

	// 4. Subscribe to the batch stream
	sub, err := ingest.NewSubscriber(cfg.NATS)
	if err != nil {
		log.Fatalf("Failed to create subscriber: %v", err)
	}
	if err := sub.Start(func(batch *model.Batch) {
		mgr.Input() <- batch
	}); err != nil {
		log.Fatalf("Subscriber failed to start: %v", err)
	}

	// 5. Expose gRPC health so orchestrators can probe the service
	healthServer := health.NewServer()
	grpcServer := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	lis, err := net.Listen("tcp", cfg.Engine.GRPCListenAddr)
	if err != nil {
		log.Fatalf("Failed to listen on %s: %v", cfg.Engine.GRPCListenAddr, err)
	}
	go func() {
		log.Printf("gRPC health server listening on %s", cfg.Engine.GRPCListenAddr)
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatalf("gRPC server failed: %v", err)
		}
	}()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	// 6. Wait for a shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Shutdown order: stop intake first, then drain the pipeline.
	log.Println("Shutdown signal received, stopping engine...")
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	sub.Close()
	mgr.Stop()
	grpcServer.GracefulStop()
	log.Println("Shutdown complete.")
}
