package dto

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// validatorInstance usa los nombres de las etiquetas json en los errores.
func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate valida las etiquetas `validate` del struct.
// Devuelve *ValidationError con un mensaje en español por campo, o nil.
func Validate(v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, e := range verrs {
		out.Fields[e.Field()] = validationMessage(e)
	}
	return out
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "Este campo es obligatorio"
	case "email":
		return "Formato de email inválido"
	case "min":
		return "Debe tener al menos " + e.Param() + " caracteres"
	case "max":
		return "Debe tener como máximo " + e.Param() + " caracteres"
	case "numeric":
		return "Debe ser un número"
	case "datetime":
		return "Fecha inválida (formato AAAA-MM-DD)"
	case "url":
		return "URL inválida"
	default:
		return "Valor inválido"
	}
}
