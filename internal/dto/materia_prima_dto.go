package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearMateriaPrimaRequest struct {
	Nombre      string           `json:"nombre" validate:"required,min=2,max=120"`
	Codigo      string           `json:"codigo" validate:"required,min=1,max=40"`
	Unidad      string           `json:"unidad" validate:"required"`
	CostoUnidad decimal.Decimal  `json:"costo_unidad" validate:"min=0"`
	Proveedor   *string          `json:"proveedor"`
	StockActual *decimal.Decimal `json:"stock_actual"`
	StockMinimo *decimal.Decimal `json:"stock_minimo"`
}

type ActualizarMateriaPrimaRequest struct {
	Nombre      *string          `json:"nombre" validate:"omitempty,min=2,max=120"`
	Codigo      *string          `json:"codigo" validate:"omitempty,min=1,max=40"`
	Unidad      *string          `json:"unidad"`
	CostoUnidad *decimal.Decimal `json:"costo_unidad"`
	Proveedor   *string          `json:"proveedor"`
	StockMinimo *decimal.Decimal `json:"stock_minimo"`
}

// AjusteStockRequest posts a manual on-hand movement.
type AjusteStockRequest struct {
	Tipo     string          `json:"tipo"     validate:"required,oneof=ENTRADA SALIDA AJUSTE"`
	Cantidad decimal.Decimal `json:"cantidad" validate:"required"`
	Motivo   *string         `json:"motivo"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type MateriaPrimaFilter struct {
	Nombre string `form:"nombre"`
	Activo string `form:"activo"` // "false" | "all" | "" (activos)
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MateriaPrimaResponse struct {
	ID              string          `json:"id"`
	Nombre          string          `json:"nombre"`
	Codigo          string          `json:"codigo"`
	Unidad          string          `json:"unidad"`
	CostoUnidad     decimal.Decimal `json:"costo_unidad"`
	Proveedor       *string         `json:"proveedor"`
	StockActual     decimal.Decimal `json:"stock_actual"`
	StockReservado  decimal.Decimal `json:"stock_reservado"`
	StockDisponible decimal.Decimal `json:"stock_disponible"`
	StockMinimo     decimal.Decimal `json:"stock_minimo"`
	Activo          bool            `json:"activo"`
}

type MateriaPrimaListResponse struct {
	Data       []MateriaPrimaResponse `json:"data"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
}

type AjusteResponse struct {
	ID             string          `json:"id"`
	MateriaPrimaID string          `json:"materia_prima_id"`
	Tipo           string          `json:"tipo"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	Motivo         *string         `json:"motivo"`
	CreatedAt      string          `json:"created_at"`
}
