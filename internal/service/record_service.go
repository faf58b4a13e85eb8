package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"flyerwatch/internal/domain"
	"flyerwatch/internal/export"
	"flyerwatch/internal/port"
)

// RecordService exposes read access to detection records plus report
// generation.
type RecordService interface {
	GetByImageID(ctx context.Context, imageID string) (*domain.DetectionRecord, error)
	ListByFlyer(ctx context.Context, flyerID uuid.UUID) ([]domain.DetectionRecord, error)
	List(ctx context.Context, offset, limit int) ([]domain.DetectionRecord, int, error)
	ExportXLSX(ctx context.Context, flyerID uuid.UUID) ([]byte, error)
}

type recordService struct {
	records port.DetectionRecordRepository
}

// NewRecordService creates a new RecordService implementation.
func NewRecordService(records port.DetectionRecordRepository) RecordService {
	return &recordService{records: records}
}

func (s *recordService) GetByImageID(ctx context.Context, imageID string) (*domain.DetectionRecord, error) {
	return s.records.GetByImageID(ctx, imageID)
}

func (s *recordService) ListByFlyer(ctx context.Context, flyerID uuid.UUID) ([]domain.DetectionRecord, error) {
	return s.records.ListByFlyer(ctx, flyerID)
}

func (s *recordService) List(ctx context.Context, offset, limit int) ([]domain.DetectionRecord, int, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.records.List(ctx, offset, limit)
}

// ExportXLSX renders all records of one flyer as a spreadsheet.
func (s *recordService) ExportXLSX(ctx context.Context, flyerID uuid.UUID) ([]byte, error) {
	records, err := s.records.ListByFlyer(ctx, flyerID)
	if err != nil {
		return nil, fmt.Errorf("record export: %w", err)
	}
	return export.RecordsXLSX(records)
}
