package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"flyerwatch/internal/assemble"
	"flyerwatch/internal/config"
	"flyerwatch/internal/correct"
	"flyerwatch/internal/handler"
	"flyerwatch/internal/notify/noop"
	"flyerwatch/internal/notify/ses"
	"flyerwatch/internal/notify/telegram"
	"flyerwatch/internal/pdfsplit"
	"flyerwatch/internal/port"
	"flyerwatch/internal/price"
	"flyerwatch/internal/repository/postgres"
	"flyerwatch/internal/router"
	"flyerwatch/internal/service"
	s3storage "flyerwatch/internal/storage/s3"
	"flyerwatch/internal/vocab"
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
	flyerRepo := postgres.NewFlyerRepo(db)
	recordRepo := postgres.NewDetectionRecordRepo(db)
	prefRepo := postgres.NewPreferenceRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Vocabulary and text correction
	trie, err := vocab.LoadFile(cfg.Vocab.Path)
	if err != nil {
		return fmt.Errorf("failed to load vocabulary: %w", err)
	}
	corrector := correct.NewTrieCorrector(trie, correct.Config{
		ShortWordLen:  cfg.Vocab.ShortWordLen,
		ShortWordDist: cfg.Vocab.ShortWordDist,
		LongWordDist:  cfg.Vocab.LongWordDist,
	})
	prices := price.NewTable()
	assembler := assemble.New(corrector, prices)

	sender, err := newSender(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize notification sender: %w", err)
	}

	// Initialize services
	ingestSvc := service.NewIngestService(recordRepo, assembler, prices, cfg.Ingest.Concurrency)
	flyerSvc := service.NewFlyerService(flyerRepo, s3Client, pdfsplit.New(), prices, &cfg.S3)
	recordSvc := service.NewRecordService(recordRepo)
	prefSvc := service.NewPreferenceService(prefRepo, prices)
	validitySvc := service.NewValidityService(flyerRepo, recordRepo, prefRepo, sender)

	// Initialize handlers
	flyerH := handler.NewFlyerHandler(flyerSvc)
	ingestH := handler.NewIngestHandler(ingestSvc)
	recordH := handler.NewRecordHandler(recordSvc)
	prefH := handler.NewPreferenceHandler(prefSvc)
	validityH := handler.NewValidityHandler(validitySvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg.Auth.AdminToken, flyerH, ingestH, recordH, prefH, validityH, healthH)
	if cfg.Auth.AdminToken == "" {
		log.Printf("WARNING: auth.admin_token is empty; any bearer token is rejected except the empty one")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Background validity scanner
	workerDone := make(chan struct{})
	if cfg.Scanner.Enabled {
		worker := service.NewValidityWorker(validitySvc, service.ValidityWorkerConfig{
			Interval: cfg.Scanner.Interval,
		})
		go func() {
			defer close(workerDone)
			worker.Start(ctx)
		}()
	} else {
		close(workerDone)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Printf("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	<-workerDone
	return nil
}

func newSender(cfg *config.Config) (port.NotificationSender, error) {
	switch cfg.Delivery.Provider {
	case "telegram":
		return telegram.NewTelegramSender(&cfg.Delivery.Telegram)
	case "ses":
		return ses.NewSESSender(&cfg.Delivery.Email)
	case "noop", "":
		return noop.NewNoopSender(), nil
	default:
		return nil, fmt.Errorf("unknown delivery provider %q", cfg.Delivery.Provider)
	}
}
