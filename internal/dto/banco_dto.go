package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearBancoRequest struct {
	Fecha      *string         `json:"fecha"` // YYYY-MM-DD
	Referencia string          `json:"referencia" validate:"required,min=1,max=80"`
	Banco      string          `json:"banco"      validate:"required,min=1,max=80"`
	Monto      decimal.Decimal `json:"monto"      validate:"required"`
	Nota       *string         `json:"nota"`
}

// AsignarBancoRequest allocates a deposit to a customer's open orders.
type AsignarBancoRequest struct {
	ClienteID string `json:"cliente_id" validate:"required,uuid"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type BancoFilter struct {
	Asignado  string `form:"asignado"` // "true" | "false" | ""
	ClienteID string `form:"cliente_id"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type BancoResponse struct {
	ID         string          `json:"id"`
	Fecha      *string         `json:"fecha"`
	Referencia string          `json:"referencia"`
	Banco      string          `json:"banco"`
	Monto      decimal.Decimal `json:"monto"`
	Nota       *string         `json:"nota"`
	Asignado   bool            `json:"asignado"`
	ClienteID  *string         `json:"cliente_id"`
	Cliente    *string         `json:"cliente"`
}

type BancoListResponse struct {
	Data       []BancoResponse `json:"data"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

// AsignacionResponse reports what an allocation actually did.
type AsignacionResponse struct {
	BancoID          string              `json:"banco_id"`
	ClienteID        string              `json:"cliente_id"`
	MontoAsignado    decimal.Decimal     `json:"monto_asignado"`
	SobranteACredito decimal.Decimal     `json:"sobrante_a_credito"`
	Ordenes          []OrdenPagoDetalle  `json:"ordenes"`
}

type OrdenPagoDetalle struct {
	OrdenID   string          `json:"orden_id"`
	Numero    string          `json:"numero"`
	Aplicado  decimal.Decimal `json:"aplicado"`
	SaldoPost decimal.Decimal `json:"saldo_post"`
	Estado    string          `json:"estado"`
}
