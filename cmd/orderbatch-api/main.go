// @title Order Batch API
// @version 1.0
// @description Consolidates marketplace order exports into carrier upload and order-management workbooks.
// @host localhost:8080
// @BasePath /api/v1
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "go-order-pipeline/docs"
	"go-order-pipeline/internal/api"
	"go-order-pipeline/internal/api/handler"
	"go-order-pipeline/internal/config"
	"go-order-pipeline/internal/metrics"
	"go-order-pipeline/internal/store"
	"go-order-pipeline/pkg/router"
	"go-order-pipeline/pkg/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("❌ Failed to open store: %v", err)
	}
	defer db.Close()

	outputs := utils.NewOutputManager(cfg.OutputDir)
	if err := outputs.EnsureOutputDirExists(); err != nil {
		log.Fatalf("❌ %v", err)
	}

	reg := metrics.NewRegistry()
	h := handler.New(db, reg, outputs, handler.Settings{
		MaxUploadBytes: cfg.MaxUploadBytes(),
		RequestTimeout: cfg.RequestTimeout,
		Location:       cfg.Location(),
	})

	r := router.New()
	api.RegisterRoutes(r, h, reg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := r.Start(ctx, cfg.HTTPAddr); err != nil {
		log.Fatalf("❌ Server stopped: %v", err)
	}
	log.Printf("✅ Server stopped")
}
