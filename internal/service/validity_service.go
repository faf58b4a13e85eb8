package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"flyerwatch/internal/domain"
	"flyerwatch/internal/notify"
	"flyerwatch/internal/port"
	"flyerwatch/internal/validity"
)

// ScanSummary reports the outcome of one validity scan.
type ScanSummary struct {
	Scanned        int `json:"scanned"`
	Changed        int `json:"changed"`
	Batches        int `json:"batches"`
	Delivered      int `json:"delivered"`
	DeliveryErrors int `json:"delivery_errors"`
}

// ValidityService re-evaluates flyer validity against the calendar and
// delivers notification digests for the flips it finds.
type ValidityService interface {
	RunScan(ctx context.Context, today time.Time) (*ScanSummary, error)
}

type validityService struct {
	flyers  port.FlyerRepository
	records port.DetectionRecordRepository
	prefs   port.PreferenceRepository
	sender  port.NotificationSender
}

// NewValidityService creates a new ValidityService implementation.
func NewValidityService(
	flyers port.FlyerRepository,
	records port.DetectionRecordRepository,
	prefs port.PreferenceRepository,
	sender port.NotificationSender,
) ValidityService {
	return &validityService{
		flyers:  flyers,
		records: records,
		prefs:   prefs,
		sender:  sender,
	}
}

// RunScan loads every flyer, computes validity flips for today, persists
// them and fans the resulting digests out to users. Delivery failures are
// logged and counted; they never abort the scan.
func (s *validityService) RunScan(ctx context.Context, today time.Time) (*ScanSummary, error) {
	flyers, err := s.flyers.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("validity scan: %w", err)
	}

	changes := validity.Scan(flyers, today)
	summary := &ScanSummary{Scanned: len(flyers)}
	if len(changes) == 0 {
		return summary, nil
	}

	byID := make(map[uuid.UUID]domain.Flyer, len(flyers))
	for _, f := range flyers {
		byID[f.ID] = f
	}

	applied := changes[:0:0]
	for _, ch := range changes {
		if err := s.flyers.UpdateValid(ctx, ch.FlyerID, ch.NewValid); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				log.Printf("validity scan: flyer %s vanished mid-scan", ch.FlyerID)
				continue
			}
			return nil, fmt.Errorf("validity scan: %w", err)
		}
		if err := s.records.SetValidByFlyer(ctx, ch.FlyerID, ch.NewValid); err != nil {
			return nil, fmt.Errorf("validity scan: %w", err)
		}
		applied = append(applied, ch)
	}
	summary.Changed = len(applied)
	if len(applied) == 0 {
		return summary, nil
	}

	changedIDs := make([]uuid.UUID, 0, len(applied))
	for _, ch := range applied {
		changedIDs = append(changedIDs, ch.FlyerID)
	}
	records, err := s.records.ListByFlyers(ctx, changedIDs)
	if err != nil {
		return nil, fmt.Errorf("validity scan: %w", err)
	}
	prefs, err := s.prefs.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("validity scan: %w", err)
	}

	batches := notify.Regroup(notify.Input{
		Changes:     applied,
		Flyers:      byID,
		Records:     records,
		Preferences: prefs,
	})
	summary.Batches = len(batches)

	for _, batch := range batches {
		if err := s.sender.Send(ctx, batch); err != nil {
			log.Printf("validity scan: deliver to user %d: %v", batch.UserID, err)
			summary.DeliveryErrors++
			continue
		}
		summary.Delivered++
	}
	return summary, nil
}
