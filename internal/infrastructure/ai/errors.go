package ai

import (
	"errors"
	"fmt"
)

// ErrNoAPIKey el proveedor seleccionado no tiene API key configurada.
var ErrNoAPIKey = errors.New("AI: API key no configurada")

func errNoJSON(raw string) error {
	return fmt.Errorf("AI: no se encontró JSON en la respuesta del modelo (respuesta: %.200s)", raw)
}

func errBadJSON(err error, clean string) error {
	return fmt.Errorf("AI: respuesta del modelo no es JSON válido: %w (JSON extraído: %.200s)", err, clean)
}
