package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/manualmind/mcp-bridge/internal/config"
	"github.com/manualmind/mcp-bridge/internal/manualmind"
	"github.com/manualmind/mcp-bridge/pkg/types"
)

func main() {
	question := flag.String("question", "", "optionally run one query_manuals round trip")
	maxResults := flag.Int("max-results", types.ResultLimitDefault, "result budget for the test query")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	fmt.Printf("Checking ManualMind backend at %s...\n\n", cfg.BaseURL)

	client, err := manualmind.NewClient(manualmind.ClientConfig{
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		Timeout:     cfg.Timeout,
		MaxAttempts: cfg.MaxRetries,
		QueryPath:   cfg.Endpoints.Query,
		StatusPath:  cfg.Endpoints.Status,
		ProcessPath: cfg.Endpoints.Process,
	})
	if err != nil {
		log.Fatalf("Failed to create backend client: %v", err)
	}
	defer func() { _ = client.Close() }()

	ctx := context.Background()

	// Probe system status
	reply, err := client.Status(ctx)
	if err != nil {
		fmt.Printf("✗ FAILURE: status probe failed: %v\n", err)
		os.Exit(1)
	}
	printReply(reply, types.ToolGetSystemStatus)

	// Optional query round trip
	if *question != "" {
		req := types.QueryRequest{Question: *question, MaxResults: *maxResults}
		if err := req.Validate(); err != nil {
			log.Fatalf("Invalid query: %v", err)
		}

		fmt.Printf("\nRunning test query...\n\n")
		reply, err := client.Query(ctx, req.Question, req.MaxResults)
		if err != nil {
			fmt.Printf("✗ FAILURE: query failed: %v\n", err)
			os.Exit(1)
		}
		printReply(reply, types.ToolQueryManuals)
	}

	fmt.Println("\n✓ SUCCESS: backend is reachable")
}

// printReply prefers the full report layout and falls back to the
// normalized one-line form.
func printReply(reply *manualmind.Reply, tool string) {
	if text, ok := manualmind.RenderRich(reply, tool); ok {
		fmt.Print(text)
		return
	}

	result := manualmind.Normalize(reply, tool)
	if result.IsError {
		fmt.Printf("✗ FAILURE: %s\n", result.Text)
		os.Exit(1)
	}
	fmt.Println(result.Text)
}
