package assemble

import (
	"log"
	"time"

	"github.com/google/uuid"

	"flyerwatch/internal/correct"
	"flyerwatch/internal/domain"
	"flyerwatch/internal/price"
)

// Assembler combines corrected names and parsed prices into finalized
// detection records. Pure over its inputs; safe to call concurrently across
// images.
type Assembler struct {
	corrector correct.Corrector
	prices    *price.Table
}

// New creates an Assembler.
func New(corrector correct.Corrector, prices *price.Table) *Assembler {
	return &Assembler{corrector: corrector, prices: prices}
}

// Build assembles one DetectionRecord from the detections of a single image.
// A record is emitted even when every price failed to parse; such records
// carry valid=false so downstream can surface OCR failures instead of
// silently dropping items.
func (a *Assembler) Build(flyerID uuid.UUID, shop, imageID string, detections []domain.RawDetection) domain.DetectionRecord {
	now := time.Now().UTC()
	rec := domain.DetectionRecord{
		ImageID:   imageID,
		FlyerID:   flyerID,
		ShopName:  shop,
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, det := range detections {
		switch {
		case det.ClassID == domain.ClassItemName:
			rec.ItemName = det.OCRText
			rec.ProcessedItemName = a.corrector.CorrectText(det.OCRText)

		case det.ClassID == domain.ClassWholeImage:
			rec.WholeImageOCRText = det.OCRText

		case det.ClassID.IsPrice():
			res, err := a.prices.Parse(shop, det.ClassID, det.OCRText)
			if err != nil {
				// unknown shop; recorded raw, price left null
				log.Printf("assembler: image %s: %v", imageID, err)
			}
			switch det.ClassID {
			case domain.ClassItemPrice:
				rec.ItemPrice = det.OCRText
			case domain.ClassItemMemberPrice:
				rec.ItemMemberPrice = det.OCRText
			case domain.ClassItemInitialPrice:
				rec.ItemInitialPrice = det.OCRText
			}
			merge(&rec, res)
		}
	}

	rec.Valid = rec.ProcessedItemPrice != nil ||
		rec.ProcessedItemMemberPrice != nil ||
		rec.ProcessedItemInitialPrice != nil
	return rec
}

// merge folds one parse result into the record without clobbering fields an
// earlier detection already filled.
func merge(rec *domain.DetectionRecord, res price.Result) {
	if rec.ProcessedItemPrice == nil {
		rec.ProcessedItemPrice = res.ItemPrice
	}
	if rec.ProcessedItemMemberPrice == nil {
		rec.ProcessedItemMemberPrice = res.ItemMemberPrice
	}
	if rec.ProcessedItemInitialPrice == nil {
		rec.ProcessedItemInitialPrice = res.ItemInitialPrice
	}
}
