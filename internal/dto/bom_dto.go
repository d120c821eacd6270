package dto

import "github.com/shopspring/decimal"

// ─── BOM lines ───────────────────────────────────────────────────────────────

type CrearLineaBomRequest struct {
	// InsumoID is a materia prima or a componente product depending on the
	// endpoint the line is posted to.
	InsumoID          string          `json:"insumo_id"  validate:"required,uuid"`
	ProcesoID         *string         `json:"proceso_id" validate:"omitempty,uuid"`
	CantidadNecesaria decimal.Decimal `json:"cantidad_necesaria" validate:"required"`
	MermaEstandar     decimal.Decimal `json:"merma_estandar"     validate:"min=0"`
}

type ActualizarLineaBomRequest struct {
	ProcesoID         *string          `json:"proceso_id" validate:"omitempty,uuid"`
	CantidadNecesaria *decimal.Decimal `json:"cantidad_necesaria"`
	MermaEstandar     *decimal.Decimal `json:"merma_estandar"`
}

type LineaBomResponse struct {
	ID                string          `json:"id"`
	ProductoID        string          `json:"producto_id"`
	InsumoID          string          `json:"insumo_id"`
	Insumo            *string         `json:"insumo"`
	ProcesoID         *string         `json:"proceso_id"`
	CantidadNecesaria decimal.Decimal `json:"cantidad_necesaria"`
	MermaEstandar     decimal.Decimal `json:"merma_estandar"`
	// CantidadTeoricaUnitaria = cantidad_necesaria + merma_estandar
	CantidadTeoricaUnitaria decimal.Decimal `json:"cantidad_teorica_unitaria"`
}

// BomResponse groups both line kinds of a product.
type BomResponse struct {
	ProductoID     string             `json:"producto_id"`
	MateriasPrimas []LineaBomResponse `json:"materias_primas"`
	Componentes    []LineaBomResponse `json:"componentes"`
}

// ─── Explosion / availability ────────────────────────────────────────────────

// RequerimientoResponse is one input of an exploded BOM at a given batch
// size, with its availability verdict.
type RequerimientoResponse struct {
	InsumoID        string          `json:"insumo_id"`
	Insumo          string          `json:"insumo"`
	Tipo            string          `json:"tipo"` // materia_prima | componente
	CantidadTeorica decimal.Decimal `json:"cantidad_teorica"`
	Disponible      decimal.Decimal `json:"disponible"`
	Suficiente      bool            `json:"suficiente"`
}

type ExplosionResponse struct {
	ProductoID     string                  `json:"producto_id"`
	Cantidad       decimal.Decimal         `json:"cantidad"`
	Requerimientos []RequerimientoResponse `json:"requerimientos"`
	Fabricable     bool                    `json:"fabricable"`
}
