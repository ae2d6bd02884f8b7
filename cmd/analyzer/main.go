package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"alfredoptarigan/resume-analyzer/internal/cli"
	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/services"
	"alfredoptarigan/resume-analyzer/internal/session"
)

func main() {
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.BaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	parser, err := services.NewAnalysisParser()
	if err != nil {
		log.Fatalf("❌ Failed to compile analysis schema: %v", err)
	}

	extractionClient := services.NewExtractionClient(cfg.Client.ExtractionURL, &http.Client{})
	log.Printf("✅ Extraction service: %s\n", cfg.Client.ExtractionURL)

	s := session.New(session.Dependencies{
		Extractor: extractionClient,
		Gemini:    geminiService,
		Parser:    parser,
		Prompts:   services.NewPromptBuilder(),
	}, cfg.Client.RequestTimeout)
	log.Printf("🚀 Session %s started\n", s.ID())

	if err := cli.NewREPL(s, os.Stdin, os.Stdout).Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("❌ Terminal session ended with error: %v", err)
	}
	log.Println("👋 Bye")
}
