package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"flyerwatch/internal/assemble"
	"flyerwatch/internal/correct"
	"flyerwatch/internal/domain"
	"flyerwatch/internal/price"
	"flyerwatch/internal/service"
	"flyerwatch/internal/vocab"
	"flyerwatch/mocks"
)

func newIngestService(t *testing.T, records *mocks.MockDetectionRecordRepo) service.IngestService {
	t.Helper()
	trie, err := vocab.FromWords([]string{"mleko", "maslo"})
	require.NoError(t, err)
	corrector := correct.NewTrieCorrector(trie, correct.DefaultConfig())
	prices := price.NewTable()
	return service.NewIngestService(records, assemble.New(corrector, prices), prices, 4)
}

func rawDet(imageID string, class domain.PriceClass, text string) domain.RawDetection {
	return domain.RawDetection{ImageID: imageID, ClassID: class, OCRText: text}
}

func TestIngestService_ProcessDetections_GroupsByImage(t *testing.T) {
	records := new(mocks.MockDetectionRecordRepo)
	svc := newIngestService(t, records)
	flyerID := uuid.New()

	records.On("Upsert", mock.Anything, mock.MatchedBy(func(rec *domain.DetectionRecord) bool {
		return rec.ImageID == "img-1" && rec.ProcessedItemPrice != nil && *rec.ProcessedItemPrice == 1990
	})).Return(nil).Once()
	records.On("Upsert", mock.Anything, mock.MatchedBy(func(rec *domain.DetectionRecord) bool {
		return rec.ImageID == "img-2" && rec.ProcessedItemName == "maslo"
	})).Return(nil).Once()

	summary, err := svc.ProcessDetections(context.Background(), service.IngestInput{
		FlyerID:  flyerID,
		ShopName: "Lidl",
		Detections: []domain.RawDetection{
			rawDet("img-1", domain.ClassItemName, "mieko"),
			rawDet("img-1", domain.ClassItemPrice, "19,90"),
			rawDet("img-2", domain.ClassItemName, "masl0"),
			rawDet("img-2", domain.ClassItemPrice, "24,90"),
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Images)
	assert.Equal(t, 2, summary.Records)
	assert.Equal(t, 0, summary.Failed)
	records.AssertExpectations(t)
}

func TestIngestService_ProcessDetections_UnknownShop(t *testing.T) {
	records := new(mocks.MockDetectionRecordRepo)
	svc := newIngestService(t, records)

	_, err := svc.ProcessDetections(context.Background(), service.IngestInput{
		FlyerID:    uuid.New(),
		ShopName:   "Bodega",
		Detections: []domain.RawDetection{rawDet("img-1", domain.ClassItemPrice, "19,90")},
	})

	assert.ErrorIs(t, err, domain.ErrUnknownShop)
	records.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestIngestService_ProcessDetections_FailedImageContained(t *testing.T) {
	records := new(mocks.MockDetectionRecordRepo)
	svc := newIngestService(t, records)

	records.On("Upsert", mock.Anything, mock.MatchedBy(func(rec *domain.DetectionRecord) bool {
		return rec.ImageID == "img-1"
	})).Return(errors.New("db down")).Once()
	records.On("Upsert", mock.Anything, mock.MatchedBy(func(rec *domain.DetectionRecord) bool {
		return rec.ImageID == "img-2"
	})).Return(nil).Once()

	summary, err := svc.ProcessDetections(context.Background(), service.IngestInput{
		FlyerID:  uuid.New(),
		ShopName: "Lidl",
		Detections: []domain.RawDetection{
			rawDet("img-1", domain.ClassItemPrice, "19,90"),
			rawDet("img-2", domain.ClassItemPrice, "24,90"),
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Images)
	assert.Equal(t, 1, summary.Records)
	assert.Equal(t, 1, summary.Failed)
}
