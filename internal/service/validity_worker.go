package service

import (
	"context"
	"log"
	"time"
)

// ValidityWorkerConfig holds settings for the validity scan worker.
type ValidityWorkerConfig struct {
	Interval time.Duration
}

// ValidityWorker periodically re-evaluates flyer validity so notifications
// go out without a manual scan trigger.
type ValidityWorker struct {
	service ValidityService
	cfg     ValidityWorkerConfig
}

// NewValidityWorker creates a new ValidityWorker.
func NewValidityWorker(service ValidityService, cfg ValidityWorkerConfig) *ValidityWorker {
	return &ValidityWorker{service: service, cfg: cfg}
}

// Start runs the scan loop until ctx is canceled. One scan runs immediately
// on startup so a restarted service catches up right away.
func (w *ValidityWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	log.Printf("validityWorker: started (interval=%s)", w.cfg.Interval)

	w.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Printf("validityWorker: shutdown complete")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *ValidityWorker) runOnce(ctx context.Context) {
	scanCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	summary, err := w.service.RunScan(scanCtx, time.Now().UTC())
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Printf("validityWorker: scan error: %v", err)
		return
	}
	if summary.Changed > 0 {
		log.Printf("validityWorker: scanned=%d changed=%d batches=%d delivered=%d errors=%d",
			summary.Scanned, summary.Changed, summary.Batches, summary.Delivered, summary.DeliveryErrors)
	}
}
