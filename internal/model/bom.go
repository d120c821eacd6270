package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductoMateriaPrima is a raw-material BOM line: building one unit of the
// product takes CantidadNecesaria of the material plus MermaEstandar of
// expected waste. ProcesoID optionally binds the line to a route step so
// consumption posts when that step completes; unbound lines post when the
// order starts.
type ProductoMateriaPrima struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_bom_mp,priority:1"`
	MateriaPrimaID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_bom_mp,priority:2"`
	ProcesoID        *uuid.UUID      `gorm:"type:uuid;index"`
	CantidadNecesaria decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	MermaEstandar    decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Producto     *Producto     `gorm:"foreignKey:ProductoID"`
	MateriaPrima *MateriaPrima `gorm:"foreignKey:MateriaPrimaID"`
	Proceso      *Proceso      `gorm:"foreignKey:ProcesoID"`
}

func (ProductoMateriaPrima) TableName() string { return "productos_materias_primas" }

// ProductoComponente is a sub-product BOM line: the parent product consumes
// finished units of another product (ComponenteID) as an input.
type ProductoComponente struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_bom_comp,priority:1"`
	ComponenteID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_bom_comp,priority:2"`
	ProcesoID         *uuid.UUID      `gorm:"type:uuid;index"`
	CantidadNecesaria decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	MermaEstandar     decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Producto   *Producto `gorm:"foreignKey:ProductoID"`
	Componente *Producto `gorm:"foreignKey:ComponenteID"`
	Proceso    *Proceso  `gorm:"foreignKey:ProcesoID"`
}

func (ProductoComponente) TableName() string { return "productos_componentes" }
