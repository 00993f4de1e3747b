package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/FacturaOCR/internal/application/dto"
	"github.com/jhoicas/FacturaOCR/internal/application/usecase"
)

// OCRHandler expone la extracción de facturas desde una foto.
type OCRHandler struct {
	uc *usecase.OCRUseCase
}

// NewOCRHandler construye el handler.
func NewOCRHandler(uc *usecase.OCRUseCase) *OCRHandler {
	return &OCRHandler{uc: uc}
}

// ExtractInvoice godoc
// @Summary      Extraer datos de una factura con IA
// @Description  Recibe la imagen en base64 (o data URL) y devuelve una sugerencia de factura que el usuario revisa antes de guardar. No persiste nada. Timeout interno de 30 s.
// @Tags         ocr
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExtractInvoiceRequest  true  "imageData (obligatorio) y mediaType"
// @Success      200   {object}  dto.ExtractInvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Failure      504   {object}  dto.ErrorResponse
// @Router       /api/extract-invoice [post]
func (h *OCRHandler) ExtractInvoice(c *fiber.Ctx) error {
	var req dto.ExtractInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	guess, err := h.uc.ExtractInvoice(c.Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ExtractInvoiceResponse{Invoice: *guess})
}
