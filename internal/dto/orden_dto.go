package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemOrdenRequest struct {
	ProductoID     string           `json:"producto_id" validate:"required,uuid"`
	Cantidad       decimal.Decimal  `json:"cantidad"    validate:"required"`
	PrecioUnitario *decimal.Decimal `json:"precio_unitario"`
}

type CrearOrdenRequest struct {
	ClienteID  string             `json:"cliente_id"   validate:"required,uuid"`
	TipoPagoID string             `json:"tipo_pago_id" validate:"required,uuid"`
	Fecha      *string            `json:"fecha"` // YYYY-MM-DD; empty = today
	Nota       *string            `json:"nota"`
	Items      []ItemOrdenRequest `json:"items" validate:"required,min=1,dive"`
}

// CambiarEstadoOrdenRequest moves a sales order through
// pendiente → enviada → pagada.
type CambiarEstadoOrdenRequest struct {
	Estado string `json:"estado" validate:"required,oneof=pendiente enviada pagada"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type OrdenFilter struct {
	Estado    string     `form:"estado" validate:"omitempty,oneof=pendiente enviada pagada"`
	ClienteID string     `form:"cliente_id"`
	Desde     *time.Time `form:"desde" time_format:"2006-01-02"`
	Hasta     *time.Time `form:"hasta" time_format:"2006-01-02"`
	Page      int        `form:"page,default=1"   validate:"min=1"`
	Limit     int        `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemOrdenResponse struct {
	ID             string          `json:"id"`
	ProductoID     string          `json:"producto_id"`
	Producto       *string         `json:"producto"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type OrdenResponse struct {
	ID         string              `json:"id"`
	Numero     string              `json:"numero"`
	ClienteID  string              `json:"cliente_id"`
	Cliente    *string             `json:"cliente"`
	TipoPagoID string              `json:"tipo_pago_id"`
	TipoPago   *string             `json:"tipo_pago"`
	Estado     string              `json:"estado"`
	Fecha      string              `json:"fecha"`
	FechaEnvio *string             `json:"fecha_envio"`
	FechaPago  *string             `json:"fecha_pago"`
	Total      decimal.Decimal     `json:"total"`
	Saldo      decimal.Decimal     `json:"saldo"`
	Nota       *string             `json:"nota"`
	Items      []ItemOrdenResponse `json:"items,omitempty"`
}

type OrdenListResponse struct {
	Data       []OrdenResponse `json:"data"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}
