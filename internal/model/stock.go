package model

import "github.com/shopspring/decimal"

// Stock is embedded by every entity that holds inventory (MateriaPrima and
// Producto acting as sub-component). All mutations go through the stock
// ledger in internal/service — never assign these fields directly.
type Stock struct {
	StockActual    decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0"`
	StockReservado decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0"`
	StockMinimo    decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0"`
}

// Disponible is what a new reservation may still claim.
func (s Stock) Disponible() decimal.Decimal {
	return s.StockActual.Sub(s.StockReservado)
}
