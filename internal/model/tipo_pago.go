package model

import (
	"time"

	"github.com/google/uuid"
)

// TipoPago defines payment terms. DiasCredito is the explicit credit-day
// count used by the allocation engine to compute due dates.
type TipoPago struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"uniqueIndex;not null"`
	DiasCredito int       `gorm:"not null;default:0"`
	Activo      bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (TipoPago) TableName() string { return "tipos_pago" }
