package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CrearConsumoRequest posts a manual consumption row against an order.
// cantidad_real is withdrawn from on-hand immediately.
type CrearConsumoRequest struct {
	InsumoID        string           `json:"insumo_id" validate:"required,uuid"`
	ProcesoOrdenID  *string          `json:"proceso_orden_id" validate:"omitempty,uuid"`
	CantidadTeorica *decimal.Decimal `json:"cantidad_teorica"`
	CantidadReal    decimal.Decimal  `json:"cantidad_real" validate:"required"`
	Notas           *string          `json:"notas"`
}

type ActualizarConsumoRequest struct {
	CantidadTeorica *decimal.Decimal `json:"cantidad_teorica"`
	CantidadReal    *decimal.Decimal `json:"cantidad_real"`
	Notas           *string          `json:"notas"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ConsumoResponse struct {
	ID              string           `json:"id"`
	OrdenID         string           `json:"orden_id"`
	InsumoID        string           `json:"insumo_id"`
	Insumo          *string          `json:"insumo"`
	Tipo            string           `json:"tipo"` // materia_prima | componente
	ProcesoOrdenID  *string          `json:"proceso_orden_id"`
	CantidadTeorica decimal.Decimal  `json:"cantidad_teorica"`
	CantidadReal    *decimal.Decimal `json:"cantidad_real"`
	Desperdicio     *decimal.Decimal `json:"desperdicio"`
	Notas           *string          `json:"notas"`
	CreatedAt       string           `json:"created_at"`
}

type ConsumosOrdenResponse struct {
	OrdenID        string            `json:"orden_id"`
	MateriasPrimas []ConsumoResponse `json:"materias_primas"`
	Componentes    []ConsumoResponse `json:"componentes"`
}
