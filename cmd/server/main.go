package main

import (
	"fmt"
	"log"

	"sofhub/internal/config"
	"sofhub/internal/extractor"
	"sofhub/internal/handler"
	"sofhub/internal/port"
	"sofhub/internal/repository/postgres"
	"sofhub/internal/router"
	"sofhub/internal/service"
	s3storage "sofhub/internal/storage/s3"
	"sofhub/internal/workspace"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	recordSetRepo := postgres.NewRecordSetRepo(db)

	// Source-document archive is optional; no bucket means no archiving.
	var archive port.ObjectStorage
	if cfg.S3.Bucket != "" {
		archive, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	// Initialize services
	workspaces := workspace.NewManager()
	remote := extractor.NewClient(&cfg.Extractor)
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	extractionSvc := service.NewExtractionService(workspaces, remote, archive, &cfg.S3, &cfg.Upload)
	recordSvc := service.NewRecordService(recordSetRepo, workspaces, archive, &cfg.S3)
	exportSvc := service.NewExportService(workspaces, recordSvc)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	extractionH := handler.NewExtractionHandler(extractionSvc)
	recordH := handler.NewRecordHandler(recordSvc)
	exportH := handler.NewExportHandler(exportSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, authSvc, authH, extractionH, recordH, exportH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
