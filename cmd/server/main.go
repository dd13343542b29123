package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/lockdrop/lockdrop-server/internal/api"
	"github.com/lockdrop/lockdrop-server/internal/api/handlers"
	"github.com/lockdrop/lockdrop-server/internal/config"
	"github.com/lockdrop/lockdrop-server/internal/repositories"
	"github.com/lockdrop/lockdrop-server/internal/service"
)

// @title LockDrop API
// @version 1.0
// @description Password-protected file sharing: upload files with a password, share the link, recipient downloads a zip.
// @BasePath /
func main() {
	cfg := config.Load()

	db, err := repositories.OpenDatabase(cfg.DBURL)
	if err != nil {
		log.Fatalf("Database setup failed: %v", err)
	}
	log.Println("Successfully connected to database")

	objectStore := repositories.NewObjectStore(cfg.S3)
	transferRepo := repositories.NewTransferRepository(db)

	uploadSvc := service.NewUploadService(transferRepo, objectStore)
	downloadSvc := service.NewDownloadService(transferRepo, objectStore)

	h := handlers.New(uploadSvc, downloadSvc, cfg.S3.Complete())
	router := api.SetupRouter(h, cfg.CorsConfig)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Starting LockDrop server on port: %s", cfg.Port)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on port %s: %v", cfg.Port, err)
	}
}
