package service_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"flyerwatch/internal/config"
	"flyerwatch/internal/domain"
	"flyerwatch/internal/port"
	"flyerwatch/internal/price"
	"flyerwatch/internal/service"
	"flyerwatch/mocks"
)

// createMultipartFile creates a fake multipart file header and content for testing.
func createMultipartFile(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", "application/pdf")

	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(int64(len(content) + 1024))
	require.NoError(t, err)
	file, err := form.File["file"][0].Open()
	require.NoError(t, err)
	return file, form.File["file"][0]
}

func pdfContent() []byte {
	return []byte("%PDF-1.4 flyer content long enough to pass detection")
}

func testS3Config() *config.S3Config {
	return &config.S3Config{
		PagePrefix:    "pages/valid",
		MaxFileSizeMB: 50,
		PresignExpiry: 900,
	}
}

func newFlyerService(flyers *mocks.MockFlyerRepo, storage *mocks.MockObjectStorage, splitter *mocks.MockPageSplitter) service.FlyerService {
	return service.NewFlyerService(flyers, storage, splitter, price.NewTable(), testS3Config())
}

func uploadInput(t *testing.T, filename string, content []byte) service.FlyerUploadInput {
	t.Helper()
	file, header := createMultipartFile(t, filename, content)
	return service.FlyerUploadInput{
		File:      file,
		Header:    header,
		ShopName:  "Billa",
		ValidFrom: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		ValidTo:   time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC),
	}
}

func TestFlyerService_Upload_Success(t *testing.T) {
	flyers := new(mocks.MockFlyerRepo)
	storage := new(mocks.MockObjectStorage)
	splitter := new(mocks.MockPageSplitter)
	svc := newFlyerService(flyers, storage, splitter)

	splitter.On("Split", mock.Anything, mock.Anything).
		Return([][]byte{[]byte("%PDF page1"), []byte("%PDF page2")}, nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{Location: "https://bucket/pages", ETag: "abc"}, nil).Twice()
	flyers.On("Create", mock.Anything, mock.AnythingOfType("*domain.Flyer")).Return(nil)

	flyer, err := svc.Upload(context.Background(), uploadInput(t, "billa.pdf", pdfContent()))

	require.NoError(t, err)
	assert.Equal(t, "Billa", flyer.ShopName)
	assert.Len(t, flyer.PageKeys, 2)
	assert.Contains(t, flyer.PageKeys[0], "pages/valid/"+flyer.FileID+"/page_001.pdf")
	assert.False(t, flyer.Valid, "new flyers start invalid until the scanner promotes them")
	flyers.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestFlyerService_Upload_UnknownShop(t *testing.T) {
	svc := newFlyerService(new(mocks.MockFlyerRepo), new(mocks.MockObjectStorage), new(mocks.MockPageSplitter))

	input := uploadInput(t, "flyer.pdf", pdfContent())
	input.ShopName = "Bodega"

	_, err := svc.Upload(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrUnknownShop)
}

func TestFlyerService_Upload_InvalidDateRange(t *testing.T) {
	svc := newFlyerService(new(mocks.MockFlyerRepo), new(mocks.MockObjectStorage), new(mocks.MockPageSplitter))

	input := uploadInput(t, "flyer.pdf", pdfContent())
	input.ValidFrom, input.ValidTo = input.ValidTo, input.ValidFrom

	_, err := svc.Upload(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestFlyerService_Upload_WrongExtension(t *testing.T) {
	svc := newFlyerService(new(mocks.MockFlyerRepo), new(mocks.MockObjectStorage), new(mocks.MockPageSplitter))

	_, err := svc.Upload(context.Background(), uploadInput(t, "flyer.jpg", pdfContent()))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestFlyerService_Upload_NotAPDF(t *testing.T) {
	svc := newFlyerService(new(mocks.MockFlyerRepo), new(mocks.MockObjectStorage), new(mocks.MockPageSplitter))

	_, err := svc.Upload(context.Background(), uploadInput(t, "flyer.pdf", []byte("plain text, no magic")))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestFlyerService_Upload_RespectsConfiguredSizeLimit(t *testing.T) {
	cfg := testS3Config()
	cfg.MaxFileSizeMB = 1
	svc := service.NewFlyerService(
		new(mocks.MockFlyerRepo), new(mocks.MockObjectStorage), new(mocks.MockPageSplitter),
		price.NewTable(), cfg,
	)

	oversized := append([]byte("%PDF-1.4 "), make([]byte, 1<<20)...)
	_, err := svc.Upload(context.Background(), uploadInput(t, "flyer.pdf", oversized))
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestFlyerService_Upload_StorageFailure(t *testing.T) {
	flyers := new(mocks.MockFlyerRepo)
	storage := new(mocks.MockObjectStorage)
	splitter := new(mocks.MockPageSplitter)
	svc := newFlyerService(flyers, storage, splitter)

	splitter.On("Split", mock.Anything, mock.Anything).Return([][]byte{[]byte("%PDF page1")}, nil)
	storage.On("Upload", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	_, err := svc.Upload(context.Background(), uploadInput(t, "flyer.pdf", pdfContent()))
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	flyers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFlyerService_GetPageURL(t *testing.T) {
	flyers := new(mocks.MockFlyerRepo)
	storage := new(mocks.MockObjectStorage)
	svc := newFlyerService(flyers, storage, new(mocks.MockPageSplitter))

	f := &domain.Flyer{
		ID:       uuid.New(),
		PageKeys: domain.StringList{"pages/valid/f/page_001.pdf", "pages/valid/f/page_002.pdf"},
	}
	flyers.On("GetByID", mock.Anything, f.ID).Return(f, nil)
	storage.On("GetPresignedURL", mock.Anything, "pages/valid/f/page_002.pdf", 900*time.Second).
		Return("https://signed/page2", nil)

	url, err := svc.GetPageURL(context.Background(), f.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, "https://signed/page2", url)

	_, err = svc.GetPageURL(context.Background(), f.ID, 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetPageURL(context.Background(), f.ID, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
