package service

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"flyerwatch/internal/assemble"
	"flyerwatch/internal/domain"
	"flyerwatch/internal/port"
	"flyerwatch/internal/price"
)

// IngestInput is the DTO for one detection ingest run: the OCR'd regions of
// every page image of a single flyer.
type IngestInput struct {
	FlyerID    uuid.UUID
	ShopName   string
	Detections []domain.RawDetection
}

// IngestSummary reports what one ingest run produced.
type IngestSummary struct {
	Images  int `json:"images"`
	Records int `json:"records"`
	Failed  int `json:"failed"`
}

// IngestService turns raw detections into persisted detection records.
type IngestService interface {
	ProcessDetections(ctx context.Context, input IngestInput) (*IngestSummary, error)
}

type ingestService struct {
	records     port.DetectionRecordRepository
	assembler   *assemble.Assembler
	prices      *price.Table
	concurrency int
}

// NewIngestService creates a new IngestService implementation.
func NewIngestService(
	records port.DetectionRecordRepository,
	assembler *assemble.Assembler,
	prices *price.Table,
	concurrency int,
) IngestService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ingestService{
		records:     records,
		assembler:   assembler,
		prices:      prices,
		concurrency: concurrency,
	}
}

// ProcessDetections groups detections by image and assembles records in
// parallel across images; the stages are pure so only the upsert touches
// shared state. A failed image is logged and counted, never fatal to the
// batch.
func (s *ingestService) ProcessDetections(ctx context.Context, input IngestInput) (*IngestSummary, error) {
	if _, err := s.prices.Rule(input.ShopName); err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}

	byImage := make(map[string][]domain.RawDetection)
	var order []string
	for _, det := range input.Detections {
		if _, seen := byImage[det.ImageID]; !seen {
			order = append(order, det.ImageID)
		}
		byImage[det.ImageID] = append(byImage[det.ImageID], det)
	}

	var failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, imageID := range order {
		g.Go(func() error {
			rec := s.assembler.Build(input.FlyerID, input.ShopName, imageID, byImage[imageID])
			if err := s.records.Upsert(gctx, &rec); err != nil {
				log.Printf("ingest: image %s: %v", imageID, err)
				failed.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}

	nFailed := int(failed.Load())
	return &IngestSummary{
		Images:  len(order),
		Records: len(order) - nFailed,
		Failed:  nFailed,
	}, nil
}
