package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"flyerwatch/internal/config"
	"flyerwatch/internal/domain"
	"flyerwatch/internal/port"
	"flyerwatch/internal/price"
)

var pdfMagic = []byte("%PDF")

// FlyerUploadInput is the DTO for a flyer PDF upload.
type FlyerUploadInput struct {
	File      multipart.File
	Header    *multipart.FileHeader
	ShopName  string
	ValidFrom time.Time
	ValidTo   time.Time
}

// FlyerService manages flyer lifecycle: upload, page splitting and lookup.
type FlyerService interface {
	Upload(ctx context.Context, input FlyerUploadInput) (*domain.Flyer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Flyer, error)
	List(ctx context.Context, offset, limit int) ([]domain.Flyer, int, error)
	GetPageURL(ctx context.Context, id uuid.UUID, page int) (string, error)
}

type flyerService struct {
	flyers     port.FlyerRepository
	storage    port.ObjectStorage
	splitter   port.PageSplitter
	prices     *price.Table
	cfg        *config.S3Config
	pagePrefix string
}

// NewFlyerService creates a new FlyerService implementation.
func NewFlyerService(
	flyers port.FlyerRepository,
	storage port.ObjectStorage,
	splitter port.PageSplitter,
	prices *price.Table,
	cfg *config.S3Config,
) FlyerService {
	return &flyerService{
		flyers:     flyers,
		storage:    storage,
		splitter:   splitter,
		prices:     prices,
		cfg:        cfg,
		pagePrefix: strings.TrimSuffix(cfg.PagePrefix, "/"),
	}
}

func (s *flyerService) maxBytes() int64 {
	return s.cfg.MaxFileSizeMB * 1024 * 1024
}

// Upload validates the PDF, splits it into single-page objects and creates
// the flyer row. New flyers start invalid; the validity scanner promotes
// them once their window opens.
func (s *flyerService) Upload(ctx context.Context, input FlyerUploadInput) (*domain.Flyer, error) {
	if _, err := s.prices.Rule(input.ShopName); err != nil {
		return nil, fmt.Errorf("flyer upload: %w", err)
	}
	if input.ValidTo.Before(input.ValidFrom) {
		return nil, fmt.Errorf("flyer upload: %w", domain.ErrInvalidDateRange)
	}
	if err := validatePDF(input.Header, s.maxBytes()); err != nil {
		return nil, fmt.Errorf("flyer upload: %w", err)
	}

	data, err := io.ReadAll(io.LimitReader(input.File, s.maxBytes()+1))
	if err != nil {
		return nil, fmt.Errorf("flyer upload: read file: %w", err)
	}
	if int64(len(data)) > s.maxBytes() {
		return nil, fmt.Errorf("flyer upload: %w", domain.ErrFileTooLarge)
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return nil, fmt.Errorf("flyer upload: %w", domain.ErrUnsupportedFileType)
	}

	flyerID := uuid.New()
	fileID := flyerID.String()

	pages, err := s.splitter.Split(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("flyer upload: split pages: %w", err)
	}

	pageKeys := make(domain.StringList, 0, len(pages))
	for i, page := range pages {
		key := fmt.Sprintf("%s/%s/page_%03d.pdf", s.pagePrefix, fileID, i+1)
		_, err := s.storage.Upload(ctx, port.UploadInput{
			Key:         key,
			Body:        bytes.NewReader(page),
			ContentType: "application/pdf",
			Size:        int64(len(page)),
		})
		if err != nil {
			log.Printf("flyer upload: page %d of %s: %v", i+1, fileID, err)
			return nil, fmt.Errorf("flyer upload: %w", domain.ErrUploadFailed)
		}
		pageKeys = append(pageKeys, key)
	}

	now := time.Now().UTC()
	flyer := &domain.Flyer{
		ID:        flyerID,
		FileID:    fileID,
		ShopName:  input.ShopName,
		PageKeys:  pageKeys,
		ValidFrom: input.ValidFrom,
		ValidTo:   input.ValidTo,
		Valid:     false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.flyers.Create(ctx, flyer); err != nil {
		return nil, fmt.Errorf("flyer upload: %w", err)
	}
	return flyer, nil
}

func (s *flyerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Flyer, error) {
	return s.flyers.GetByID(ctx, id)
}

func (s *flyerService) List(ctx context.Context, offset, limit int) ([]domain.Flyer, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.flyers.List(ctx, offset, limit)
}

// GetPageURL returns a presigned URL for one page of a flyer. Pages are
// 1-based.
func (s *flyerService) GetPageURL(ctx context.Context, id uuid.UUID, page int) (string, error) {
	flyer, err := s.flyers.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if page < 1 || page > len(flyer.PageKeys) {
		return "", domain.ErrNotFound
	}
	expiry := time.Duration(s.cfg.PresignExpiry) * time.Second
	return s.storage.GetPresignedURL(ctx, flyer.PageKeys[page-1], expiry)
}

func validatePDF(header *multipart.FileHeader, maxBytes int64) error {
	if header == nil {
		return domain.ErrUnsupportedFileType
	}
	if header.Size > maxBytes {
		return domain.ErrFileTooLarge
	}
	if strings.ToLower(filepath.Ext(header.Filename)) != ".pdf" {
		return domain.ErrUnsupportedFileType
	}
	return nil
}
