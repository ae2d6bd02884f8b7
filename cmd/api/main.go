package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/handlers"
	"alfredoptarigan/resume-analyzer/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize services
	extractor := services.NewExtractorService()
	pool := services.NewExtractionPool(
		extractor,
		cfg.Extraction.Concurrency,
		cfg.Extraction.QueueSize,
	)
	log.Println("✅ Services initialized successfully")

	// Start extraction workers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pool.Start(ctx)
	log.Println("✅ Extraction pool started successfully")

	// Initialize Handlers
	uploadHandler := handlers.NewUploadHandler(
		pool,
		cfg.Upload.MaxFileSize,
		cfg.Extraction.Timeout,
	)
	pageHandler := handlers.NewPageHandler(cfg.Server.StaticDir)
	log.Println("✅ Handlers initialized")

	app := handlers.NewApp(handlers.AppConfig{
		BodyLimit:  cfg.BodyLimit(),
		StaticDir:  cfg.Server.StaticDir,
		AccessLogs: cfg.IsDevelopment(),
	}, uploadHandler, pageHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
		cancel()
		pool.Stop()
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📄 Upload endpoint: http://localhost%s/api/upload-resume\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
