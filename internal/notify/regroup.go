package notify

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"flyerwatch/internal/domain"
)

// Input is everything one regrouping run works from. Preferences must be a
// snapshot taken once for the run; the engine never re-reads them.
type Input struct {
	Changes     []domain.ValidityChange
	Flyers      map[uuid.UUID]domain.Flyer
	Records     []domain.DetectionRecord
	Preferences []domain.UserPreference
}

// Regroup turns a validity changeset into at most one NotificationBatch per
// eligible user. Shop eligibility follows include/exclude sets and the
// wants_pdf_updates flag; tracked items are an opt-in override that bypasses
// the shop check. Batches come back ordered by shop name then user id so
// delivery is deterministic and testable.
func Regroup(in Input) []domain.NotificationBatch {
	updatesByShop := make(map[string][]domain.FlyerUpdate)
	changedFlyers := make(map[uuid.UUID]bool)
	for _, ch := range in.Changes {
		f, ok := in.Flyers[ch.FlyerID]
		if !ok {
			continue // metadata missing for this change, skip it
		}
		if ch.NewValid {
			// tracked items only fire on flyers that just became valid
			changedFlyers[ch.FlyerID] = true
		}
		updatesByShop[ch.ShopName] = append(updatesByShop[ch.ShopName], domain.FlyerUpdate{
			FlyerID:   ch.FlyerID,
			FileID:    ch.FileID,
			ShopName:  ch.ShopName,
			State:     ch.State,
			ValidFrom: f.ValidFrom,
			ValidTo:   f.ValidTo,
		})
	}

	var batches []domain.NotificationBatch
	for _, pref := range in.Preferences {
		batch := domain.NotificationBatch{UserID: pref.UserID}

		if pref.WantsPDFUpdate {
			for shop, updates := range updatesByShop {
				if eligible(pref, shop) {
					batch.ShopUpdates = append(batch.ShopUpdates, updates...)
				}
			}
		}
		batch.TrackedItems = trackedHits(pref, in.Records, changedFlyers)

		if len(batch.ShopUpdates) == 0 && len(batch.TrackedItems) == 0 {
			continue
		}
		sortBatch(&batch)
		batches = append(batches, batch)
	}

	sort.Slice(batches, func(i, j int) bool {
		si, sj := primaryShop(batches[i]), primaryShop(batches[j])
		if si != sj {
			return si < sj
		}
		return batches[i].UserID < batches[j].UserID
	})
	return batches
}

// eligible applies the shop filter: an empty include set means all shops,
// the exclude set always wins.
func eligible(pref domain.UserPreference, shop string) bool {
	if pref.ExcludedShops.Contains(shop) {
		return false
	}
	return len(pref.IncludedShops) == 0 || pref.IncludedShops.Contains(shop)
}

// trackedHits matches the user's tracked terms against the records of flyers
// that just changed validity.
func trackedHits(pref domain.UserPreference, records []domain.DetectionRecord, changed map[uuid.UUID]bool) []domain.TrackedItemUpdate {
	if len(pref.TrackedItems) == 0 {
		return nil
	}
	var hits []domain.TrackedItemUpdate
	for _, rec := range records {
		if !changed[rec.FlyerID] {
			continue
		}
		name := rec.ProcessedItemName
		if name == "" {
			name = rec.ItemName
		}
		lower := strings.ToLower(name)
		for _, term := range pref.TrackedItems {
			if term == "" || !strings.Contains(lower, strings.ToLower(term)) {
				continue
			}
			hits = append(hits, domain.TrackedItemUpdate{
				ImageID:  rec.ImageID,
				ItemName: name,
				ShopName: rec.ShopName,
				Price:    bestPrice(rec),
				Term:     term,
			})
			break // one hit per record is enough
		}
	}
	return hits
}

func bestPrice(rec domain.DetectionRecord) *int64 {
	switch {
	case rec.ProcessedItemPrice != nil:
		return rec.ProcessedItemPrice
	case rec.ProcessedItemMemberPrice != nil:
		return rec.ProcessedItemMemberPrice
	default:
		return rec.ProcessedItemInitialPrice
	}
}

func sortBatch(b *domain.NotificationBatch) {
	sort.Slice(b.ShopUpdates, func(i, j int) bool {
		if b.ShopUpdates[i].ShopName != b.ShopUpdates[j].ShopName {
			return b.ShopUpdates[i].ShopName < b.ShopUpdates[j].ShopName
		}
		return b.ShopUpdates[i].FileID < b.ShopUpdates[j].FileID
	})
	sort.Slice(b.TrackedItems, func(i, j int) bool {
		return b.TrackedItems[i].ImageID < b.TrackedItems[j].ImageID
	})
}

func primaryShop(b domain.NotificationBatch) string {
	if len(b.ShopUpdates) > 0 {
		return b.ShopUpdates[0].ShopName
	}
	return ""
}
