package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrValidation   = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)

// NotFoundError carries the resource name for the 404 envelope.
type NotFoundError struct {
	Recurso string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s no encontrado", e.Recurso)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ValidationError is a client-input problem detected past binding, e.g. a
// state machine violation expressed in the payload.
type ValidationError struct {
	Detalle string
}

func (e *ValidationError) Error() string { return e.Detalle }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ConflictError means the operation is incompatible with the resource's
// current state (wrong lifecycle state, dependent rows exist, etc.).
type ConflictError struct {
	Detalle string
}

func (e *ConflictError) Error() string { return e.Detalle }

func (e *ConflictError) Unwrap() error { return ErrConflict }

// InsufficientStockError reports exactly which input blocked a reservation
// and by how much.
type InsufficientStockError struct {
	Recurso    string
	Disponible decimal.Decimal
	Requerido  decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente de %s: disponible %s, requerido %s",
		e.Recurso, e.Disponible.String(), e.Requerido.String())
}

func NewNotFound(recurso string) error { return &NotFoundError{Recurso: recurso} }

func NewValidation(format string, args ...any) error {
	return &ValidationError{Detalle: fmt.Sprintf(format, args...)}
}

func NewConflict(format string, args ...any) error {
	return &ConflictError{Detalle: fmt.Sprintf(format, args...)}
}
