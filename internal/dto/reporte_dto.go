package dto

import "github.com/shopspring/decimal"

// ─── Reports ─────────────────────────────────────────────────────────────────

// ReporteProduccionResponse summarizes production orders between two dates.
type ReporteProduccionResponse struct {
	Desde             string                  `json:"desde"`
	Hasta             string                  `json:"hasta"`
	TotalOrdenes      int                     `json:"total_ordenes"`
	PorEstado         map[string]int          `json:"por_estado"`
	CantidadPlaneada  decimal.Decimal         `json:"cantidad_planeada"`
	CantidadProducida decimal.Decimal         `json:"cantidad_producida"`
	Ordenes           []OrdenProduccionResponse `json:"ordenes"`
}

// CuentaPorCobrarItem is one customer row of the receivables report.
type CuentaPorCobrarItem struct {
	ClienteID      string          `json:"cliente_id"`
	Cliente        string          `json:"cliente"`
	Saldo          decimal.Decimal `json:"saldo"`
	OrdenesAbiertas int            `json:"ordenes_abiertas"`
	Vencidas       int             `json:"vencidas"`
}

type ReporteCuentasPorCobrarResponse struct {
	Total decimal.Decimal       `json:"total"`
	Data  []CuentaPorCobrarItem `json:"data"`
}

// StockBajoItem flags an input at or under its minimum.
type StockBajoItem struct {
	ID         string          `json:"id"`
	Nombre     string          `json:"nombre"`
	Tipo       string          `json:"tipo"` // materia_prima | producto
	Disponible decimal.Decimal `json:"disponible"`
	Minimo     decimal.Decimal `json:"minimo"`
}

type ReporteStockBajoResponse struct {
	Data []StockBajoItem `json:"data"`
}
