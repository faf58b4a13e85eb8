package notify_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flyerwatch/internal/domain"
	"flyerwatch/internal/notify"
)

func change(f domain.Flyer, newValid bool) domain.ValidityChange {
	state := domain.ValidityExpired
	if newValid {
		state = domain.ValidityValid
	}
	return domain.ValidityChange{
		FlyerID:  f.ID,
		FileID:   f.FileID,
		ShopName: f.ShopName,
		OldValid: !newValid,
		NewValid: newValid,
		State:    state,
	}
}

func testFlyer(fileID, shop string) domain.Flyer {
	return domain.Flyer{
		ID:        uuid.New(),
		FileID:    fileID,
		ShopName:  shop,
		ValidFrom: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		ValidTo:   time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC),
	}
}

func flyerMap(flyers ...domain.Flyer) map[uuid.UUID]domain.Flyer {
	m := make(map[uuid.UUID]domain.Flyer)
	for _, f := range flyers {
		m[f.ID] = f
	}
	return m
}

func pdfUser(id int64) domain.UserPreference {
	return domain.UserPreference{UserID: id, WantsPDFUpdate: true}
}

func TestRegroup_IncludeExcludeFilters(t *testing.T) {
	billa := testFlyer("billa-24", "Billa")
	albert := testFlyer("albert-24", "Albert Hypermarket")
	in := notify.Input{
		Changes: []domain.ValidityChange{change(billa, true), change(albert, true)},
		Flyers:  flyerMap(billa, albert),
		Preferences: []domain.UserPreference{
			func() domain.UserPreference {
				p := pdfUser(1)
				p.IncludedShops = domain.StringList{"Billa"}
				return p
			}(),
			func() domain.UserPreference {
				p := pdfUser(2)
				p.ExcludedShops = domain.StringList{"Billa"}
				return p
			}(),
			pdfUser(3),
		},
	}

	batches := notify.Regroup(in)
	require.Len(t, batches, 3)

	byUser := make(map[int64]domain.NotificationBatch)
	for _, b := range batches {
		byUser[b.UserID] = b
	}

	require.Len(t, byUser[1].ShopUpdates, 1)
	assert.Equal(t, "Billa", byUser[1].ShopUpdates[0].ShopName)

	require.Len(t, byUser[2].ShopUpdates, 1)
	assert.Equal(t, "Albert Hypermarket", byUser[2].ShopUpdates[0].ShopName)

	assert.Len(t, byUser[3].ShopUpdates, 2)
}

func TestRegroup_ExcludeBeatsInclude(t *testing.T) {
	billa := testFlyer("billa-24", "Billa")
	pref := pdfUser(1)
	pref.IncludedShops = domain.StringList{"Billa"}
	pref.ExcludedShops = domain.StringList{"Billa"}

	batches := notify.Regroup(notify.Input{
		Changes:     []domain.ValidityChange{change(billa, true)},
		Flyers:      flyerMap(billa),
		Preferences: []domain.UserPreference{pref},
	})
	assert.Empty(t, batches)
}

func TestRegroup_NoPDFUpdateNoShopUpdates(t *testing.T) {
	billa := testFlyer("billa-24", "Billa")
	pref := domain.UserPreference{UserID: 1, WantsPDFUpdate: false}

	batches := notify.Regroup(notify.Input{
		Changes:     []domain.ValidityChange{change(billa, true)},
		Flyers:      flyerMap(billa),
		Preferences: []domain.UserPreference{pref},
	})
	assert.Empty(t, batches)
}

func TestRegroup_TrackedItemsBypassShopFilter(t *testing.T) {
	billa := testFlyer("billa-24", "Billa")
	price := int64(1990)
	rec := domain.DetectionRecord{
		ImageID:            "img-1",
		FlyerID:            billa.ID,
		ShopName:           "Billa",
		ProcessedItemName:  "mleko cerstve",
		ProcessedItemPrice: &price,
		Valid:              true,
	}
	pref := domain.UserPreference{
		UserID:        1,
		ExcludedShops: domain.StringList{"Billa"},
		TrackedItems:  domain.StringList{"mleko"},
	}

	batches := notify.Regroup(notify.Input{
		Changes:     []domain.ValidityChange{change(billa, true)},
		Flyers:      flyerMap(billa),
		Records:     []domain.DetectionRecord{rec},
		Preferences: []domain.UserPreference{pref},
	})

	require.Len(t, batches, 1)
	assert.Empty(t, batches[0].ShopUpdates)
	require.Len(t, batches[0].TrackedItems, 1)
	hit := batches[0].TrackedItems[0]
	assert.Equal(t, "img-1", hit.ImageID)
	assert.Equal(t, "mleko cerstve", hit.ItemName)
	assert.Equal(t, "mleko", hit.Term)
	require.NotNil(t, hit.Price)
	assert.Equal(t, int64(1990), *hit.Price)
}

func TestRegroup_TrackedItemsOnlyOnNewlyValid(t *testing.T) {
	billa := testFlyer("billa-24", "Billa")
	rec := domain.DetectionRecord{
		ImageID:           "img-1",
		FlyerID:           billa.ID,
		ShopName:          "Billa",
		ProcessedItemName: "mleko",
	}
	pref := domain.UserPreference{UserID: 1, TrackedItems: domain.StringList{"mleko"}}

	batches := notify.Regroup(notify.Input{
		Changes:     []domain.ValidityChange{change(billa, false)}, // expired
		Flyers:      flyerMap(billa),
		Records:     []domain.DetectionRecord{rec},
		Preferences: []domain.UserPreference{pref},
	})
	assert.Empty(t, batches)
}

func TestRegroup_OneHitPerRecord(t *testing.T) {
	billa := testFlyer("billa-24", "Billa")
	rec := domain.DetectionRecord{
		ImageID:           "img-1",
		FlyerID:           billa.ID,
		ShopName:          "Billa",
		ProcessedItemName: "mleko polotucne",
	}
	pref := domain.UserPreference{
		UserID:       1,
		TrackedItems: domain.StringList{"mleko", "polotucne"},
	}

	batches := notify.Regroup(notify.Input{
		Changes:     []domain.ValidityChange{change(billa, true)},
		Flyers:      flyerMap(billa),
		Records:     []domain.DetectionRecord{rec},
		Preferences: []domain.UserPreference{pref},
	})

	require.Len(t, batches, 1)
	assert.Len(t, batches[0].TrackedItems, 1)
}

func TestRegroup_FallbackToRawName(t *testing.T) {
	billa := testFlyer("billa-24", "Billa")
	rec := domain.DetectionRecord{
		ImageID:  "img-1",
		FlyerID:  billa.ID,
		ShopName: "Billa",
		ItemName: "Mleko",
	}
	pref := domain.UserPreference{UserID: 1, TrackedItems: domain.StringList{"mleko"}}

	batches := notify.Regroup(notify.Input{
		Changes:     []domain.ValidityChange{change(billa, true)},
		Flyers:      flyerMap(billa),
		Records:     []domain.DetectionRecord{rec},
		Preferences: []domain.UserPreference{pref},
	})

	require.Len(t, batches, 1)
	require.Len(t, batches[0].TrackedItems, 1)
	assert.Equal(t, "Mleko", batches[0].TrackedItems[0].ItemName)
}

func TestRegroup_MissingFlyerMetadataSkipped(t *testing.T) {
	orphan := testFlyer("ghost", "Billa")
	batches := notify.Regroup(notify.Input{
		Changes:     []domain.ValidityChange{change(orphan, true)},
		Flyers:      map[uuid.UUID]domain.Flyer{},
		Preferences: []domain.UserPreference{pdfUser(1)},
	})
	assert.Empty(t, batches)
}

func TestRegroup_OneBatchPerUser(t *testing.T) {
	billa := testFlyer("billa-24", "Billa")
	albert := testFlyer("albert-24", "Albert Hypermarket")
	rec := domain.DetectionRecord{
		ImageID:           "img-1",
		FlyerID:           billa.ID,
		ShopName:          "Billa",
		ProcessedItemName: "mleko",
	}
	pref := pdfUser(1)
	pref.TrackedItems = domain.StringList{"mleko"}

	batches := notify.Regroup(notify.Input{
		Changes:     []domain.ValidityChange{change(billa, true), change(albert, true)},
		Flyers:      flyerMap(billa, albert),
		Records:     []domain.DetectionRecord{rec},
		Preferences: []domain.UserPreference{pref},
	})

	require.Len(t, batches, 1)
	assert.Len(t, batches[0].ShopUpdates, 2)
	assert.Len(t, batches[0].TrackedItems, 1)
}

func TestRegroup_DeterministicOrdering(t *testing.T) {
	billa := testFlyer("billa-24", "Billa")
	albert := testFlyer("albert-24", "Albert Hypermarket")
	in := notify.Input{
		Changes: []domain.ValidityChange{change(billa, true), change(albert, true)},
		Flyers:  flyerMap(billa, albert),
		Preferences: []domain.UserPreference{
			pdfUser(7), pdfUser(3), pdfUser(5),
		},
	}

	first := notify.Regroup(in)
	second := notify.Regroup(in)
	assert.Equal(t, first, second)

	require.Len(t, first, 3)
	assert.Equal(t, int64(3), first[0].UserID)
	assert.Equal(t, int64(5), first[1].UserID)
	assert.Equal(t, int64(7), first[2].UserID)

	// shop updates inside each batch sort by shop then file id
	require.Len(t, first[0].ShopUpdates, 2)
	assert.Equal(t, "Albert Hypermarket", first[0].ShopUpdates[0].ShopName)
	assert.Equal(t, "Billa", first[0].ShopUpdates[1].ShopName)
}

func TestRegroup_ScanScenario(t *testing.T) {
	// three flyers over two shops: a fresh Billa flyer, an expiring Billa
	// flyer and a fresh Albert flyer, regrouped for five users at once.
	billaNew := testFlyer("billa-25", "Billa")
	billaOld := testFlyer("billa-24", "Billa")
	albert := testFlyer("albert-25", "Albert Hypermarket")

	price := int64(1990)
	records := []domain.DetectionRecord{
		{
			ImageID:            "img-new",
			FlyerID:            billaNew.ID,
			ShopName:           "Billa",
			ProcessedItemName:  "mleko cerstve",
			ProcessedItemPrice: &price,
			Valid:              true,
		},
		{
			ImageID:           "img-old",
			FlyerID:           billaOld.ID,
			ShopName:          "Billa",
			ProcessedItemName: "mleko trvanlive",
		},
	}

	onlyBilla := pdfUser(1)
	onlyBilla.IncludedShops = domain.StringList{"Billa"}
	noBilla := pdfUser(2)
	noBilla.ExcludedShops = domain.StringList{"Billa"}
	everything := pdfUser(3)
	tracker := domain.UserPreference{UserID: 4, TrackedItems: domain.StringList{"mleko"}}
	inactive := domain.UserPreference{UserID: 5}

	batches := notify.Regroup(notify.Input{
		Changes: []domain.ValidityChange{
			change(billaNew, true), change(billaOld, false), change(albert, true),
		},
		Flyers:      flyerMap(billaNew, billaOld, albert),
		Records:     records,
		Preferences: []domain.UserPreference{onlyBilla, noBilla, everything, tracker, inactive},
	})

	require.Len(t, batches, 4)

	// ordered by primary shop then user id; the tracked-only batch has no
	// shop updates and sorts first
	assert.Equal(t, int64(4), batches[0].UserID)
	assert.Equal(t, int64(2), batches[1].UserID)
	assert.Equal(t, int64(3), batches[2].UserID)
	assert.Equal(t, int64(1), batches[3].UserID)

	require.Len(t, batches[0].TrackedItems, 1)
	assert.Equal(t, "img-new", batches[0].TrackedItems[0].ImageID)
	assert.Empty(t, batches[0].ShopUpdates)

	require.Len(t, batches[1].ShopUpdates, 1)
	assert.Equal(t, "albert-25", batches[1].ShopUpdates[0].FileID)

	require.Len(t, batches[2].ShopUpdates, 3)
	assert.Equal(t, "albert-25", batches[2].ShopUpdates[0].FileID)
	assert.Equal(t, "billa-24", batches[2].ShopUpdates[1].FileID)
	assert.Equal(t, "billa-25", batches[2].ShopUpdates[2].FileID)
	assert.Equal(t, domain.ValidityExpired, batches[2].ShopUpdates[1].State)

	require.Len(t, batches[3].ShopUpdates, 2)
	assert.Equal(t, "Billa", batches[3].ShopUpdates[0].ShopName)
	assert.Equal(t, "Billa", batches[3].ShopUpdates[1].ShopName)
}

func TestRenderText_Digest(t *testing.T) {
	batch := domain.NotificationBatch{
		UserID: 1,
		ShopUpdates: []domain.FlyerUpdate{{
			FileID:    "billa-24",
			ShopName:  "Billa",
			State:     domain.ValidityValid,
			ValidFrom: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			ValidTo:   time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC),
		}},
		TrackedItems: []domain.TrackedItemUpdate{{
			ImageID:  "img-1",
			ItemName: "mleko cerstve",
			ShopName: "Billa",
			Price:    func() *int64 { v := int64(1990); return &v }(),
			Term:     "mleko",
		}},
	}

	text := notify.RenderText(batch)
	assert.True(t, strings.Contains(text, "Billa"))
	assert.True(t, strings.Contains(text, "mleko cerstve"))
	assert.True(t, strings.Contains(text, "19.90"))
	assert.True(t, strings.Contains(text, "01.06."))
}
