package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Banco is an incoming bank deposit. Asignado flips to true once the
// deposit has been allocated against a customer's open orders; deleting an
// assigned deposit replays the allocation in reverse.
type Banco struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Fecha      *time.Time
	Referencia string          `gorm:"not null"`
	Banco      string          `gorm:"not null"`
	Monto      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Nota       *string
	Asignado   bool       `gorm:"not null;default:false"`
	ClienteID  *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Cliente *Cliente `gorm:"foreignKey:ClienteID"`
}

func (Banco) TableName() string { return "bancos" }
