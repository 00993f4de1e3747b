package usecase

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/FacturaOCR/internal/application/dto"
	"github.com/jhoicas/FacturaOCR/internal/application/ports"
	"github.com/jhoicas/FacturaOCR/internal/domain"
	"github.com/jhoicas/FacturaOCR/internal/domain/invoicing"
	"github.com/jhoicas/FacturaOCR/pkg/logger"
)

// Valores por defecto cuando el modelo no logra leer un campo.
const (
	DefaultVendor      = "Desconocido"
	DefaultDescription = "Sin descripción"

	ocrTimeout      = 30 * time.Second
	imageURLExpiry  = 7 * 24 * time.Hour
	defaultMaxImage = 8 << 20
)

// allowedImageTypes tipos MIME aceptados → extensión del objeto guardado.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
	"image/heic": ".heic",
}

// OCRUseCase orquesta la extracción de datos de una foto de factura.
// Aplica un timeout de 30 s a la llamada al LLM y completa los campos que el modelo no pudo leer.
// La sugerencia no se persiste: el usuario la revisa y la guarda con InvoiceUseCase.Create.
type OCRUseCase struct {
	extractor ports.InvoiceExtractor
	images    ports.ImageStore // nil → no se guardan imágenes
	maxBytes  int
	loc       *time.Location
	log       *logger.Logger
	now       func() time.Time
}

// NewOCRUseCase construye el caso de uso. images puede ser nil.
func NewOCRUseCase(extractor ports.InvoiceExtractor, images ports.ImageStore, maxBytes int, loc *time.Location, log *logger.Logger) *OCRUseCase {
	if maxBytes <= 0 {
		maxBytes = defaultMaxImage
	}
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = logger.Nop()
	}
	return &OCRUseCase{extractor: extractor, images: images, maxBytes: maxBytes, loc: loc, log: log, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *OCRUseCase) WithClock(now func() time.Time) *OCRUseCase {
	uc.now = now
	return uc
}

// ExtractInvoice decodifica la imagen, la envía al extractor y devuelve la sugerencia completa.
// Errores: *dto.ValidationError (imagen ausente o inválida) o domain.ErrExtractionFailed
// envolviendo la causa (incluido context.DeadlineExceeded si se agotó el timeout).
func (uc *OCRUseCase) ExtractInvoice(ctx context.Context, req dto.ExtractInvoiceRequest) (*dto.InvoiceGuess, error) {
	image, mediaType, err := decodeImageData(req.ImageData, req.MediaType)
	if err != nil {
		return nil, err
	}
	if len(image) > uc.maxBytes {
		return nil, dto.NewValidationError("imageData", fmt.Sprintf("La imagen supera el máximo de %d MB", uc.maxBytes>>20))
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, ocrTimeout)
	defer cancel()

	guess, err := uc.extractor.ExtractInvoice(ctx, image, mediaType)
	if err != nil {
		uc.log.Error().Err(err).Str("media_type", mediaType).Int("bytes", len(image)).Msg("extracción OCR fallida")
		return nil, fmt.Errorf("%w: %w", domain.ErrExtractionFailed, err)
	}
	if guess == nil {
		return nil, fmt.Errorf("%w: respuesta vacía del modelo", domain.ErrExtractionFailed)
	}
	uc.applyDefaults(guess)
	uc.log.Info().Str("vendor", guess.Vendor).Str("total", guess.Total.String()).
		Dur("latency", time.Since(start)).Msg("extracción OCR exitosa")

	if uc.images != nil {
		url, err := uc.storeImage(ctx, image, mediaType)
		if err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo guardar la imagen; se continúa sin image_url")
		} else {
			guess.ImageURL = url
		}
	}
	return guess, nil
}

func (uc *OCRUseCase) storeImage(ctx context.Context, image []byte, mediaType string) (string, error) {
	now := uc.now().In(uc.loc)
	key := fmt.Sprintf("invoices/%s/%s%s", now.Format("2006/01"), uuid.New().String(), allowedImageTypes[mediaType])
	if err := uc.images.Put(ctx, key, bytes.NewReader(image), int64(len(image)), mediaType); err != nil {
		return "", err
	}
	return uc.images.URL(ctx, key, imageURLExpiry)
}

// applyDefaults completa la sugerencia con las mismas reglas que se piden al modelo.
func (uc *OCRUseCase) applyDefaults(g *dto.InvoiceGuess) {
	g.Vendor = strings.TrimSpace(g.Vendor)
	if g.Vendor == "" {
		g.Vendor = DefaultVendor
	}
	g.Description = strings.TrimSpace(g.Description)
	if g.Description == "" {
		g.Description = DefaultDescription
	}
	g.Category = strings.TrimSpace(g.Category)
	if g.Category == "" {
		g.Category = invoicing.CategoryOther
	}

	amount := nonNegative(g.Amount)
	tax := nonNegative(g.Tax)
	total := nonNegative(g.Total)
	switch {
	case total.IsZero():
		total = amount.Add(tax)
	case amount.IsZero() && tax.IsZero():
		// solo se leyó el total: 85 % subtotal, 15 % impuesto
		amount = total.Mul(decimal.RequireFromString("0.85")).Round(2)
		tax = total.Sub(amount)
	}
	g.Amount, g.Tax, g.Total = amount, tax, total

	g.Date = strings.TrimSpace(g.Date)
	if _, err := time.Parse(dateLayout, g.Date); err != nil {
		g.Date = uc.now().In(uc.loc).Format(dateLayout)
	}
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	d = d.Round(2)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// decodeImageData acepta "data:<mime>;base64,<datos>" o base64 plano con mediaType aparte.
func decodeImageData(data, mediaType string) ([]byte, string, error) {
	data = strings.TrimSpace(data)
	if data == "" {
		return nil, "", dto.NewValidationError("imageData", "No se proporcionó imagen")
	}
	if rest, ok := strings.CutPrefix(data, "data:"); ok {
		header, payload, found := strings.Cut(rest, ",")
		if !found || !strings.HasSuffix(header, ";base64") {
			return nil, "", dto.NewValidationError("imageData", "Data URL inválida")
		}
		mediaType = strings.TrimSuffix(header, ";base64")
		data = payload
	}
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if mediaType == "" {
		mediaType = "image/jpeg"
	}
	if _, ok := allowedImageTypes[mediaType]; !ok {
		return nil, "", dto.NewValidationError("mediaType", "Tipo de imagen no soportado: "+mediaType)
	}
	image, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, "", dto.NewValidationError("imageData", "La imagen no es base64 válido")
	}
	if len(image) == 0 {
		return nil, "", dto.NewValidationError("imageData", "No se proporcionó imagen")
	}
	return image, mediaType, nil
}
