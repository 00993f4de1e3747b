package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/FacturaOCR/internal/application/dto"
	"github.com/jhoicas/FacturaOCR/internal/application/usecase"
	"github.com/jhoicas/FacturaOCR/internal/domain/invoicing"
)

// InvoiceHandler maneja las peticiones HTTP de facturas (protegido por AccessGate).
type InvoiceHandler struct {
	uc *usecase.InvoiceUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *usecase.InvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar factura
// @Description  Montos como texto. total vacío = amount + tax; category vacía = "Otros".
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "vendor, amount, date obligatorios"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar facturas
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        window  query  string  false  "day | week | month | all (default all)"
// @Success      200  {array}   dto.InvoiceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	w, err := invoicing.ParseWindow(c.Query("window"))
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.Context(), w)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar factura
// @Tags         invoices
// @Security     Bearer
// @Param        id   path  string  true  "ID de la factura"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Summary godoc
// @Summary      Resumen de facturas por ventana
// @Description  Totales (amount, tax, total), cantidad y desglose por categoría con porcentaje.
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        window  query  string  false  "day | week | month | all (default all)"
// @Success      200  {object}  dto.InvoiceSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/invoices/summary [get]
func (h *InvoiceHandler) Summary(c *fiber.Ctx) error {
	w, err := invoicing.ParseWindow(c.Query("window"))
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Summary(c.Context(), w)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SummaryPDF godoc
// @Summary      Reporte PDF del resumen
// @Tags         invoices
// @Security     Bearer
// @Produce      application/pdf
// @Param        window  query  string  false  "day | week | month | all (default all)"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/invoices/summary/pdf [get]
func (h *InvoiceHandler) SummaryPDF(c *fiber.Ctx) error {
	w, err := invoicing.ParseWindow(c.Query("window"))
	if err != nil {
		return writeError(c, err)
	}
	pdf, err := h.uc.SummaryPDF(c.Context(), w)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="resumen-%s.pdf"`, w))
	return c.Send(pdf)
}
