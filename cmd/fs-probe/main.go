package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"FlowScope/internal/config"
	"FlowScope/internal/ingest"
	"FlowScope/internal/model"
	"FlowScope/pkg/pcapflow"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to the configuration file")
	file := flag.String("file", "", "Capture file to extract and publish")
	dir := flag.String("dir", "", "Directory of *.pcap files to extract and publish")
	flag.Parse()

	if *file == "" && *dir == "" {
		log.Println("Error: one of -file or -dir is required.")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pub, err := ingest.NewPublisher(cfg.NATS)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer pub.Close()

	files := []string{*file}
	if *dir != "" {
		files, err = filepath.Glob(filepath.Join(*dir, "*.pcap"))
		if err != nil || len(files) == 0 {
			log.Fatalf("No capture files found in %s", *dir)
		}
	}

	total := 0
	for _, path := range files {
		flows, err := pcapflow.ExtractFile(path)
		if err != nil {
			log.Printf("Skipping %s: %v", path, err)
			continue
		}
		log.Printf("Extracted %d flows from %s", len(flows), path)

		for start := 0; start < len(flows); start += cfg.Probe.BatchSize {
			end := start + cfg.Probe.BatchSize
			if end > len(flows) {
				end = len(flows)
			}
			batch := &model.Batch{Flows: flows[start:end]}
			if err := pub.Publish(batch); err != nil {
				log.Fatalf("Failed to publish batch: %v", err)
			}
		}
		total += len(flows)
	}

	log.Printf("Published %d flows from %d capture file(s).", total, len(files))
}
