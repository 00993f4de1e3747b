package usecase_test

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/FacturaOCR/internal/application/dto"
	"github.com/jhoicas/FacturaOCR/internal/application/usecase"
	"github.com/jhoicas/FacturaOCR/internal/domain"
)

type fakeExtractor struct {
	guess      *dto.InvoiceGuess
	err        error
	gotImage   []byte
	gotType    string
	waitForCtx bool
}

func (f *fakeExtractor) ExtractInvoice(ctx context.Context, image []byte, mediaType string) (*dto.InvoiceGuess, error) {
	f.gotImage, f.gotType = image, mediaType
	if f.waitForCtx {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	g := *f.guess
	return &g, nil
}

type fakeImageStore struct {
	key  string
	body string
	err  error
}

func (s *fakeImageStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if s.err != nil {
		return s.err
	}
	b, _ := io.ReadAll(r)
	s.key, s.body = key, string(b)
	return nil
}

func (s *fakeImageStore) URL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "http://minio.local/facturas/" + key, nil
}

var pngData = "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("fake-png"))

func newOCR(ex *fakeExtractor, store *fakeImageStore) *usecase.OCRUseCase {
	var uc *usecase.OCRUseCase
	if store != nil {
		uc = usecase.NewOCRUseCase(ex, store, 0, time.UTC, nil)
	} else {
		uc = usecase.NewOCRUseCase(ex, nil, 0, time.UTC, nil)
	}
	return uc.WithClock(func() time.Time { return fixedNow })
}

func TestExtractInvoice_ValoresPorDefecto(t *testing.T) {
	ex := &fakeExtractor{guess: &dto.InvoiceGuess{Total: decimal.NewFromInt(200), Date: "no legible"}}
	got, err := newOCR(ex, nil).ExtractInvoice(context.Background(), dto.ExtractInvoiceRequest{ImageData: pngData})
	require.NoError(t, err)

	assert.Equal(t, "fake-png", string(ex.gotImage))
	assert.Equal(t, "image/png", ex.gotType)
	assert.Equal(t, usecase.DefaultVendor, got.Vendor)
	assert.Equal(t, usecase.DefaultDescription, got.Description)
	assert.Equal(t, "Otros", got.Category)
	assert.Equal(t, "170.00", got.Amount.StringFixed(2))
	assert.Equal(t, "30.00", got.Tax.StringFixed(2))
	assert.Equal(t, "200.00", got.Total.StringFixed(2))
	assert.Equal(t, "2026-03-15", got.Date)
	assert.Empty(t, got.ImageURL)
}

func TestExtractInvoice_TotalFaltante(t *testing.T) {
	ex := &fakeExtractor{guess: &dto.InvoiceGuess{
		Vendor: "Farmacia Carol", Amount: decimal.NewFromInt(100), Tax: decimal.NewFromInt(18), Date: "2026-03-01", Category: "Salud",
	}}
	raw := base64.StdEncoding.EncodeToString([]byte("jpeg"))
	got, err := newOCR(ex, nil).ExtractInvoice(context.Background(), dto.ExtractInvoiceRequest{ImageData: raw, MediaType: "image/jpeg"})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(118).Equal(got.Total), got.Total.String())
	assert.Equal(t, "2026-03-01", got.Date)
	assert.Equal(t, "Salud", got.Category)
}

func TestExtractInvoice_EntradaInvalida(t *testing.T) {
	uc := newOCR(&fakeExtractor{guess: &dto.InvoiceGuess{}}, nil)
	for name, req := range map[string]dto.ExtractInvoiceRequest{
		"vacía":          {},
		"base64 roto":    {ImageData: "%%%"},
		"tipo no imagen": {ImageData: "data:application/pdf;base64,QUJD"},
		"data url rota":  {ImageData: "data:image/png,QUJD"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := uc.ExtractInvoice(context.Background(), req)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestExtractInvoice_ImagenDemasiadoGrande(t *testing.T) {
	big := base64.StdEncoding.EncodeToString([]byte(strings.Repeat("x", 2<<20)))
	uc := usecase.NewOCRUseCase(&fakeExtractor{guess: &dto.InvoiceGuess{}}, nil, 1<<20, time.UTC, nil)
	_, err := uc.ExtractInvoice(context.Background(), dto.ExtractInvoiceRequest{ImageData: big, MediaType: "image/png"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExtractInvoice_FalloDelModelo(t *testing.T) {
	ex := &fakeExtractor{err: errors.New("quota exceeded")}
	_, err := newOCR(ex, nil).ExtractInvoice(context.Background(), dto.ExtractInvoiceRequest{ImageData: pngData})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestExtractInvoice_CancelacionPropagada(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	ex := &fakeExtractor{waitForCtx: true}
	_, err := newOCR(ex, nil).ExtractInvoice(ctx, dto.ExtractInvoiceRequest{ImageData: pngData})
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestExtractInvoice_GuardaImagen(t *testing.T) {
	store := &fakeImageStore{}
	ex := &fakeExtractor{guess: &dto.InvoiceGuess{Vendor: "X", Total: decimal.NewFromInt(10), Date: "2026-03-15"}}
	got, err := newOCR(ex, store).ExtractInvoice(context.Background(), dto.ExtractInvoiceRequest{ImageData: pngData})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(store.key, "invoices/2026/03/"))
	assert.True(t, strings.HasSuffix(store.key, ".png"))
	assert.Equal(t, "fake-png", store.body)
	assert.Equal(t, "http://minio.local/facturas/"+store.key, got.ImageURL)

	failing := &fakeImageStore{err: errors.New("bucket missing")}
	got, err = newOCR(ex, failing).ExtractInvoice(context.Background(), dto.ExtractInvoiceRequest{ImageData: pngData})
	require.NoError(t, err, "la falla del almacenamiento no impide la extracción")
	assert.Empty(t, got.ImageURL)
}
