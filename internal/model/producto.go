package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto covers both finished goods (EsProductoFinal=true, sellable on
// sales orders) and intermediate products that act as sub-components of
// other products' BOMs. The embedded Stock fields carry the component-role
// inventory.
type Producto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"index;not null"`
	Codigo      string    `gorm:"uniqueIndex;not null"`
	SKU         *string   `gorm:"uniqueIndex"`
	Foto        *string
	CategoriaID uuid.UUID `gorm:"type:uuid;not null;index"`

	Activo          bool `gorm:"not null;default:true"`
	EsProductoFinal bool `gorm:"not null;default:true"`

	PrecioCF        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PrecioMinorista decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PrecioMayorista decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	Stock `gorm:"embedded"`

	UnidadProduccion    *string
	LeadTimeObjetivoMin *int
	PesoUnitarioEst     decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	VersionBom          *string
	NotasProduccion     *string

	CreatedAt time.Time
	UpdatedAt time.Time

	Categoria *CategoriaProducto `gorm:"foreignKey:CategoriaID"`
}

func (Producto) TableName() string { return "productos" }
