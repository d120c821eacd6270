package dto

import "github.com/shopspring/decimal"

type CrearClienteRequest struct {
	Codigo    string  `json:"codigo" validate:"required,min=1,max=40"`
	Nombre    string  `json:"nombre" validate:"required,min=2,max=120"`
	Telefono  *string `json:"telefono"`
	Direccion *string `json:"direccion"`
}

type ActualizarClienteRequest struct {
	Codigo    *string `json:"codigo" validate:"omitempty,min=1,max=40"`
	Nombre    *string `json:"nombre" validate:"omitempty,min=2,max=120"`
	Telefono  *string `json:"telefono"`
	Direccion *string `json:"direccion"`
}

type ClienteResponse struct {
	ID        string          `json:"id"`
	Codigo    string          `json:"codigo"`
	Nombre    string          `json:"nombre"`
	Telefono  *string         `json:"telefono"`
	Direccion *string         `json:"direccion"`
	Saldo     decimal.Decimal `json:"saldo"`
}

type CrearTipoPagoRequest struct {
	Nombre      string `json:"nombre" validate:"required,min=2,max=80"`
	DiasCredito int    `json:"dias_credito" validate:"min=0"`
}

type ActualizarTipoPagoRequest struct {
	Nombre      *string `json:"nombre" validate:"omitempty,min=2,max=80"`
	DiasCredito *int    `json:"dias_credito" validate:"omitempty,min=0"`
}

type TipoPagoResponse struct {
	ID          string `json:"id"`
	Nombre      string `json:"nombre"`
	DiasCredito int    `json:"dias_credito"`
	Activo      bool   `json:"activo"`
}
