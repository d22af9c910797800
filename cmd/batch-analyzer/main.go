package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"FlowScope/internal/alerting"
	"FlowScope/internal/config"
	"FlowScope/internal/ingest"
	"FlowScope/internal/manager"
	"FlowScope/internal/model"
	"FlowScope/pkg/pcapflow"
)

// batch-analyzer runs the full analysis pipeline over one input file and
// prints the result, without any services running.
func main() {
	pcapMode := flag.Bool("pcap", false, "Treat the input as a capture file instead of a JSON batch")
	topN := flag.Int("top", 5, "Ranking size for top talkers")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: batch-analyzer [-pcap] [-top N] <file>\n")
		os.Exit(1)
	}
	path := flag.Arg(0)

	var batch *model.Batch
	if *pcapMode {
		flows, err := pcapflow.ExtractFile(path)
		if err != nil {
			log.Fatalf("Failed to extract flows: %v", err)
		}
		batch = &model.Batch{Flows: flows, ModelEvals: make(map[string]model.ModelEvalStats)}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("Failed to read batch file: %v", err)
		}
		var envelope map[string]any
		if err := json.Unmarshal(data, &envelope); err != nil {
			log.Fatalf("Batch file must contain a JSON object: %v", err)
		}
		batch = ingest.DecodeBatch(envelope)
	}

	cfg := &config.Config{}
	cfg.Analytics.TopN = *topN
	cfg.Manager.NumWorkers = 1
	cfg.Manager.SizeOfBatchChannel = 1

	mgr := manager.New(cfg, nil, alerting.NewMemoryStore(1000), nil)
	result, err := mgr.Process(context.Background(), batch)
	if err != nil {
		log.Fatalf("Failed to process batch: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
}
