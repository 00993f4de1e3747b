package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// Gestión de roles
	ErrRoleNotFound    = errors.New("rol no encontrado")
	ErrAlreadyAssigned = errors.New("el usuario ya tiene este rol")

	// Colaboradores externos (base de datos, servicio de OCR)
	ErrCollaboratorUnavailable = errors.New("servicio externo no disponible")
	ErrExtractionFailed        = errors.New("no se pudo procesar la imagen")
)
