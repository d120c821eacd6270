package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearOrdenProduccionRequest struct {
	ProductoID       string          `json:"producto_id" validate:"required,uuid"`
	CantidadPlaneada decimal.Decimal `json:"cantidad_planeada" validate:"required"`
	Prioridad        *int            `json:"prioridad"`
	Estado           *string         `json:"estado" validate:"omitempty,oneof=BORRADOR PLANIFICADA"`
	Notas            *string         `json:"notas"`
}

// ActualizarOrdenProduccionRequest only covers mutable header fields;
// quantity and product are frozen once reservations exist, and the
// terminal states are reachable only through cancelar/cerrar.
type ActualizarOrdenProduccionRequest struct {
	Estado    *string `json:"estado" validate:"omitempty,oneof=BORRADOR PLANIFICADA EN_PROCESO PAUSADA COMPLETADA CANCELADA"`
	Prioridad *int    `json:"prioridad"`
	Notas     *string `json:"notas"`
}

// CerrarOrdenRequest reports what actually came out of the run. When the
// quantity is omitted it defaults to the last route step's recorded output.
type CerrarOrdenRequest struct {
	CantidadProducida *decimal.Decimal `json:"cantidad_producida"`
}

// ─── Process steps ───────────────────────────────────────────────────────────

// CompletarPasoRequest closes (or, with parcial=true, just records interim
// readings on) a step. Loss is derived from entrada − salida only when both
// are known and no explicit value came in.
type CompletarPasoRequest struct {
	CantidadEntrada *decimal.Decimal `json:"cantidad_entrada"`
	CantidadSalida  *decimal.Decimal `json:"cantidad_salida"`
	CantidadPerdida *decimal.Decimal `json:"cantidad_perdida"`
	MotivoPerdida   *string          `json:"motivo_perdida"`
	Notas           *string          `json:"notas"`
	Parcial         bool             `json:"parcial"`
}

type PasoOrdenResponse struct {
	ID              string           `json:"id"`
	ProcesoID       string           `json:"proceso_id"`
	Proceso         *string          `json:"proceso"`
	Orden           int              `json:"orden"`
	Estado          string           `json:"estado"`
	CantidadEntrada *decimal.Decimal `json:"cantidad_entrada"`
	CantidadSalida  *decimal.Decimal `json:"cantidad_salida"`
	CantidadPerdida *decimal.Decimal `json:"cantidad_perdida"`
	MotivoPerdida   *string          `json:"motivo_perdida"`
	Notas           *string          `json:"notas"`
	FechaInicio     *string          `json:"fecha_inicio"`
	FechaFin        *string          `json:"fecha_fin"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type OrdenProduccionFilter struct {
	Estado     string     `form:"estado" validate:"omitempty,oneof=BORRADOR PLANIFICADA EN_PROCESO PAUSADA COMPLETADA CANCELADA"`
	ProductoID string     `form:"producto_id"`
	Desde      *time.Time `form:"desde" time_format:"2006-01-02"`
	Hasta      *time.Time `form:"hasta" time_format:"2006-01-02"`
	Page       int        `form:"page,default=1"   validate:"min=1"`
	Limit      int        `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrdenProduccionResponse struct {
	ID                string              `json:"id"`
	CodigoOrden       string              `json:"codigo_orden"`
	ProductoID        string              `json:"producto_id"`
	Producto          *string             `json:"producto"`
	CantidadPlaneada  decimal.Decimal     `json:"cantidad_planeada"`
	CantidadProducida decimal.Decimal     `json:"cantidad_producida"`
	Estado            string              `json:"estado"`
	Prioridad         int                 `json:"prioridad"`
	Notas             *string             `json:"notas"`
	FechaInicio       *string             `json:"fecha_inicio"`
	FechaFin          *string             `json:"fecha_fin"`
	Procesos          []PasoOrdenResponse `json:"procesos,omitempty"`
	CreatedAt         string              `json:"created_at"`
}

type OrdenProduccionListResponse struct {
	Data       []OrdenProduccionResponse `json:"data"`
	Total      int64                     `json:"total"`
	Page       int                       `json:"page"`
	Limit      int                       `json:"limit"`
	TotalPages int                       `json:"total_pages"`
}
