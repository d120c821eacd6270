package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Nombre          string           `json:"nombre"       validate:"required,min=2,max=120"`
	Codigo          string           `json:"codigo"       validate:"required,min=1,max=40"`
	SKU             *string          `json:"sku"`
	Foto            *string          `json:"foto"`
	CategoriaID     string           `json:"categoria_id" validate:"required,uuid"`
	EsProductoFinal *bool            `json:"es_producto_final"`
	PrecioCF        decimal.Decimal  `json:"precio_cf"        validate:"min=0"`
	PrecioMinorista decimal.Decimal  `json:"precio_minorista" validate:"min=0"`
	PrecioMayorista decimal.Decimal  `json:"precio_mayorista" validate:"min=0"`
	StockActual     *decimal.Decimal `json:"stock_actual"`
	StockMinimo     *decimal.Decimal `json:"stock_minimo"`

	UnidadProduccion    *string          `json:"unidad_produccion"`
	LeadTimeObjetivoMin *int             `json:"lead_time_objetivo_min" validate:"omitempty,min=0"`
	PesoUnitarioEst     *decimal.Decimal `json:"peso_unitario_est"`
	VersionBom          *string          `json:"version_bom"`
	NotasProduccion     *string          `json:"notas_produccion"`
}

type ActualizarProductoRequest struct {
	Nombre          *string          `json:"nombre" validate:"omitempty,min=2,max=120"`
	Codigo          *string          `json:"codigo" validate:"omitempty,min=1,max=40"`
	SKU             *string          `json:"sku"`
	Foto            *string          `json:"foto"`
	CategoriaID     *string          `json:"categoria_id" validate:"omitempty,uuid"`
	EsProductoFinal *bool            `json:"es_producto_final"`
	PrecioCF        *decimal.Decimal `json:"precio_cf"`
	PrecioMinorista *decimal.Decimal `json:"precio_minorista"`
	PrecioMayorista *decimal.Decimal `json:"precio_mayorista"`
	StockMinimo     *decimal.Decimal `json:"stock_minimo"`

	UnidadProduccion    *string          `json:"unidad_produccion"`
	LeadTimeObjetivoMin *int             `json:"lead_time_objetivo_min" validate:"omitempty,min=0"`
	PesoUnitarioEst     *decimal.Decimal `json:"peso_unitario_est"`
	VersionBom          *string          `json:"version_bom"`
	NotasProduccion     *string          `json:"notas_produccion"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductoFilter struct {
	Nombre          string `form:"nombre"`
	Codigo          string `form:"codigo"`
	CategoriaID     string `form:"categoria_id"`
	EsProductoFinal string `form:"es_producto_final"` // "true" | "false" | ""
	Activo          string `form:"activo"`            // "false" | "all" | "" (activos)
	Page            int    `form:"page,default=1"   validate:"min=1"`
	Limit           int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID              string          `json:"id"`
	Nombre          string          `json:"nombre"`
	Codigo          string          `json:"codigo"`
	SKU             *string         `json:"sku"`
	Foto            *string         `json:"foto"`
	CategoriaID     string          `json:"categoria_id"`
	Categoria       *string         `json:"categoria"`
	EsProductoFinal bool            `json:"es_producto_final"`
	PrecioCF        decimal.Decimal `json:"precio_cf"`
	PrecioMinorista decimal.Decimal `json:"precio_minorista"`
	PrecioMayorista decimal.Decimal `json:"precio_mayorista"`
	StockActual     decimal.Decimal `json:"stock_actual"`
	StockReservado  decimal.Decimal `json:"stock_reservado"`
	StockDisponible decimal.Decimal `json:"stock_disponible"`
	StockMinimo     decimal.Decimal `json:"stock_minimo"`
	Activo          bool            `json:"activo"`

	UnidadProduccion    *string         `json:"unidad_produccion"`
	LeadTimeObjetivoMin *int            `json:"lead_time_objetivo_min"`
	PesoUnitarioEst     decimal.Decimal `json:"peso_unitario_est"`
	VersionBom          *string         `json:"version_bom"`
	NotasProduccion     *string         `json:"notas_produccion"`
}

type ProductoListResponse struct {
	Data       []ProductoResponse `json:"data"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}

// ConsultaPreciosResponse is returned by the public price check endpoint (no auth required).
type ConsultaPreciosResponse struct {
	Nombre          string          `json:"nombre"`
	PrecioCF        decimal.Decimal `json:"precio_cf"`
	PrecioMinorista decimal.Decimal `json:"precio_minorista"`
	PrecioMayorista decimal.Decimal `json:"precio_mayorista"`
	StockDisponible decimal.Decimal `json:"stock_disponible"`
	Categoria       string          `json:"categoria"`
}
