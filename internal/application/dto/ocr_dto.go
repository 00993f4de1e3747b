package dto

import "github.com/shopspring/decimal"

// ExtractInvoiceRequest imagen de la factura como blob autodescriptivo.
// ImageData admite data URL ("data:image/jpeg;base64,...") o base64 plano junto con MediaType.
type ExtractInvoiceRequest struct {
	ImageData string `json:"imageData" validate:"required"`
	MediaType string `json:"mediaType"`
}

// InvoiceGuess sugerencia del OCR. Los montos son números sin símbolo de moneda;
// el usuario puede corregir cualquier campo antes de guardar.
type InvoiceGuess struct {
	Vendor      string          `json:"vendor"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
	Date        string          `json:"date"` // YYYY-MM-DD
	Category    string          `json:"category"`
	ImageURL    string          `json:"image_url,omitempty"`
}

// ExtractInvoiceResponse respuesta del endpoint de extracción.
type ExtractInvoiceResponse struct {
	Invoice InvoiceGuess `json:"invoice"`
}
