package assemble_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flyerwatch/internal/assemble"
	"flyerwatch/internal/correct"
	"flyerwatch/internal/domain"
	"flyerwatch/internal/price"
	"flyerwatch/internal/vocab"
)

func testAssembler(t *testing.T) *assemble.Assembler {
	t.Helper()
	trie, err := vocab.FromWords([]string{"mleko", "cerstve", "maslo"})
	require.NoError(t, err)
	corrector := correct.NewTrieCorrector(trie, correct.DefaultConfig())
	return assemble.New(corrector, price.NewTable())
}

func det(class domain.PriceClass, text string) domain.RawDetection {
	return domain.RawDetection{ImageID: "img-1", ClassID: class, OCRText: text}
}

func TestBuild_FullRecord(t *testing.T) {
	a := testAssembler(t)
	flyerID := uuid.New()

	rec := a.Build(flyerID, "Lidl", "img-1", []domain.RawDetection{
		det(domain.ClassItemName, "Mieko cerstve"),
		det(domain.ClassItemPrice, "19,90"),
		det(domain.ClassItemInitialPrice, "24,90"),
		det(domain.ClassWholeImage, "Mieko cerstve 19,90 24,90"),
	})

	assert.Equal(t, "img-1", rec.ImageID)
	assert.Equal(t, flyerID, rec.FlyerID)
	assert.Equal(t, "Lidl", rec.ShopName)
	assert.Equal(t, "Mieko cerstve", rec.ItemName)
	assert.Equal(t, "mleko cerstve", rec.ProcessedItemName)
	assert.Equal(t, "19,90", rec.ItemPrice)
	require.NotNil(t, rec.ProcessedItemPrice)
	assert.Equal(t, int64(1990), *rec.ProcessedItemPrice)
	assert.Equal(t, "24,90", rec.ItemInitialPrice)
	require.NotNil(t, rec.ProcessedItemInitialPrice)
	assert.Equal(t, int64(2490), *rec.ProcessedItemInitialPrice)
	assert.Equal(t, "Mieko cerstve 19,90 24,90", rec.WholeImageOCRText)
	assert.True(t, rec.Valid)
}

func TestBuild_AllPricesUnparseable(t *testing.T) {
	a := testAssembler(t)

	rec := a.Build(uuid.New(), "Lidl", "img-1", []domain.RawDetection{
		det(domain.ClassItemName, "maslo"),
		det(domain.ClassItemPrice, "akce!"),
	})

	assert.Equal(t, "akce!", rec.ItemPrice)
	assert.Nil(t, rec.ProcessedItemPrice)
	assert.False(t, rec.Valid)
}

func TestBuild_NoClobberOnRepeatedClass(t *testing.T) {
	a := testAssembler(t)

	rec := a.Build(uuid.New(), "Lidl", "img-1", []domain.RawDetection{
		det(domain.ClassItemPrice, "19,90"),
		det(domain.ClassItemPrice, "99,90"),
	})

	require.NotNil(t, rec.ProcessedItemPrice)
	assert.Equal(t, int64(1990), *rec.ProcessedItemPrice)
}

func TestBuild_MemberPriceOnly(t *testing.T) {
	a := testAssembler(t)

	rec := a.Build(uuid.New(), "Billa", "img-1", []domain.RawDetection{
		det(domain.ClassItemMemberPrice, "12,90"),
	})

	require.NotNil(t, rec.ProcessedItemMemberPrice)
	assert.Equal(t, int64(1290), *rec.ProcessedItemMemberPrice)
	assert.Nil(t, rec.ProcessedItemPrice)
	assert.True(t, rec.Valid)
}

func TestBuild_UnknownShopRecordsRawOnly(t *testing.T) {
	a := testAssembler(t)

	rec := a.Build(uuid.New(), "Bodega", "img-1", []domain.RawDetection{
		det(domain.ClassItemPrice, "19,90"),
	})

	assert.Equal(t, "19,90", rec.ItemPrice)
	assert.Nil(t, rec.ProcessedItemPrice)
	assert.False(t, rec.Valid)
}

func TestBuild_EmptyDetections(t *testing.T) {
	a := testAssembler(t)

	rec := a.Build(uuid.New(), "Lidl", "img-1", nil)

	assert.Equal(t, "img-1", rec.ImageID)
	assert.False(t, rec.Valid)
}
