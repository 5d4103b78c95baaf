package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joseph-ayodele/invoice-tracker/internal/common"
	"github.com/joseph-ayodele/invoice-tracker/internal/llm/gemini"
	"github.com/joseph-ayodele/invoice-tracker/internal/services/hscode"
)

func main() {
	item := flag.String("item", "", "item name")
	desc := flag.String("desc", "", "description of goods")
	flag.Parse()

	if err := common.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg := common.LoadConfig()
	cfg.Log.Format = "text"
	logger, flush := common.NewLogger(cfg.Log, os.Stderr)
	defer flush()

	if cfg.LLM.APIKey == "" {
		logger.Error("GOOGLE_API_KEY env var is required")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := gemini.NewClient(gemini.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)

	out, err := hscode.NewService(client, logger).Classify(ctx, *item, *desc)
	if err != nil {
		logger.Error("classification failed", "error", common.PublicMessage(err))
		flush()
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		slog.Error("write output", "error", err)
		os.Exit(1)
	}
}
