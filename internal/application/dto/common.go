package dto

import (
	"sort"

	"github.com/jhoicas/FacturaOCR/internal/domain"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code     string            `json:"code"`
	Message  string            `json:"message"`
	Redirect string            `json:"redirect,omitempty"` // página sugerida cuando el acceso se deniega
	Fields   map[string]string `json:"fields,omitempty"`   // errores de validación por campo
}

// ValidationError errores de validación por campo (mensajes en español para mostrar en línea).
// errors.Is(err, domain.ErrInvalidInput) es true.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError crea el error con un único campo.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "datos inválidos"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys[0] + ": " + e.Fields[keys[0]]
}

func (e *ValidationError) Unwrap() error { return domain.ErrInvalidInput }
