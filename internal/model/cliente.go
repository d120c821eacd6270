package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cliente.Saldo is the running balance of the customer account: it grows
// when an order ships (amount now due) and shrinks when a bank deposit is
// allocated. A negative value is credit in the customer's favour.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo    string    `gorm:"uniqueIndex;not null"`
	Nombre    string    `gorm:"index;not null"`
	Telefono  *string
	Direccion *string
	Saldo     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Cliente) TableName() string { return "clientes" }
