package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrUserNotFound     = fmt.Errorf("usuario no encontrado: %w", ErrNotFound)
	ErrAlreadyExists    = errors.New("el email ya está registrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrValidationFailed = errors.New("registro de usuario inválido")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrEmailNotAllowed  = fmt.Errorf("email fuera de la lista permitida: %w", ErrForbidden)
	ErrConflict         = errors.New("conflicto con el estado actual")
	ErrUpstream         = errors.New("fallo del servicio externo")
	ErrOrphanedIdentity = errors.New("identidad y registro desincronizados")
)

// ValidationError lleva la lista completa de reglas incumplidas por un registro.
// errors.Is(err, ErrValidationFailed) es verdadero para cualquier *ValidationError.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }

// InputError describe una entrada inválida con un mensaje legible para el cliente.
type InputError struct {
	Message string
}

// NewInputError construye un error de entrada inválida.
func NewInputError(msg string) *InputError {
	return &InputError{Message: msg}
}

func (e *InputError) Error() string { return e.Message }

func (e *InputError) Unwrap() error { return ErrInvalidInput }

// UpstreamError fallo de un servicio externo. Message es el texto para el cliente y
// Detail lo que respondió (o no) el servicio.
type UpstreamError struct {
	Message string
	Detail  string
}

func (e *UpstreamError) Error() string {
	if e.Detail == "" {
		return e.Message
	}
	return e.Message + ": " + e.Detail
}

func (e *UpstreamError) Unwrap() error { return ErrUpstream }
