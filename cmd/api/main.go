// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"creativeops/internal/config"
	"creativeops/internal/db"
	"creativeops/internal/db/migrations"
	"creativeops/internal/routes"
)

// @title CreativeOps API
// @version 1.0
// @description Creative variant matrix generation and DCO rule evaluation.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	if _, err := db.EnsureDatabase(ctx, cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to ensure database exists: %v", err)
	}

	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := migrations.RunMigrations(database.DB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Base image uploads are disabled when S3 is not configured.
	s3Config, err := config.NewS3Config(ctx)
	if err != nil {
		log.Printf("S3 disabled: %v", err)
		s3Config = nil
	} else if !s3Config.Enabled() {
		log.Println("S3_BUCKET_NAME not set, base image uploads disabled")
	}

	svc, err := routes.NewServices(ctx, database.DB, cfg)
	if err != nil {
		log.Fatalf("Failed to initialise services: %v", err)
	}

	router := routes.SetupRoutes(database.DB, cfg, s3Config, svc)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on port %s (%s)", cfg.Port, cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Renders can take up to RENDER_TIMEOUT; let in-flight ones finish.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.RenderTimeout+5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
