package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MateriaPrima is a purchased raw material tracked by the stock ledger.
type MateriaPrima struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"index;not null"`
	Codigo      string    `gorm:"uniqueIndex;not null"`
	Unidad      string    `gorm:"not null;default:'unidad'"`
	CostoUnidad decimal.Decimal `gorm:"type:decimal(12,4);not null;default:0"`
	Proveedor   *string
	Activo      bool `gorm:"not null;default:true"`

	Stock `gorm:"embedded"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (MateriaPrima) TableName() string { return "materias_primas" }

// Movement kinds recorded against a raw material.
const (
	AjusteEntrada = "ENTRADA"
	AjusteSalida  = "SALIDA"
	AjusteAjuste  = "AJUSTE"
)

// MateriaPrimaAjuste is the audit trail of manual on-hand movements.
// Cantidad is always stored positive; Tipo carries the direction.
type MateriaPrimaAjuste struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MateriaPrimaID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Tipo           string          `gorm:"type:varchar(10);not null"`
	Cantidad       decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	Motivo         *string
	UsuarioID      *uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time

	MateriaPrima *MateriaPrima `gorm:"foreignKey:MateriaPrimaID"`
}

func (MateriaPrimaAjuste) TableName() string { return "materias_primas_ajustes" }
