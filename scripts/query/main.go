package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"FlowScope/internal/config"
	"FlowScope/internal/query"
)

// query fetches stored report history, either through the API service or
// straight from ClickHouse.
func main() {
	mode := flag.String("mode", "api", "Query mode: 'api' or 'direct'")
	apiURL := flag.String("url", "http://localhost:8080", "API base URL (api mode)")
	configPath := flag.String("config", "configs/config.yaml", "Path to the configuration file (direct mode)")
	limit := flag.Int("limit", 10, "Maximum number of reports")
	flag.Parse()

	switch *mode {
	case "api":
		queryAPI(*apiURL, *limit)
	case "direct":
		queryDirect(*configPath, *limit)
	default:
		fmt.Fprintf(os.Stderr, "Invalid mode: %s\n", *mode)
		flag.Usage()
		os.Exit(1)
	}
}

func queryAPI(baseURL string, limit int) {
	resp, err := http.Get(fmt.Sprintf("%s/api/v1/reports?limit=%d", baseURL, limit))
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("Failed to read response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("API returned %s: %s", resp.Status, body)
	}
	fmt.Println(string(body))
}

func queryDirect(configPath string, limit int) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var chCfg *config.ClickHouseConfig
	for _, def := range cfg.Storage.Writers {
		if def.Enabled && def.Type == "clickhouse" {
			chCfg = &def.ClickHouse
			break
		}
	}
	if chCfg == nil {
		log.Fatalf("No enabled ClickHouse writer found in config.")
	}

	querier, err := query.NewClickHouseQuerier(*chCfg)
	if err != nil {
		log.Fatalf("Failed to create querier: %v", err)
	}
	defer querier.Close()

	reports, err := querier.RecentReports(context.Background(), limit)
	if err != nil {
		log.Fatalf("Query failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(reports); err != nil {
		log.Fatalf("Failed to encode reports: %v", err)
	}
}
