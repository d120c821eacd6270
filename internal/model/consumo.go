package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConsumoMateriaPrima records raw material drawn by a production order.
// CantidadTeorica is the planned draw ((necesaria + merma) * base);
// CantidadReal is what was actually posted against on-hand stock.
// ProcesoOrdenID is nil for consumption posted at order start.
type ConsumoMateriaPrima struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrdenProduccionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	MateriaPrimaID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProcesoOrdenID    *uuid.UUID      `gorm:"type:uuid;index"`
	CantidadTeorica   decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	CantidadReal      *decimal.Decimal `gorm:"type:decimal(14,4)"`
	Desperdicio       *decimal.Decimal `gorm:"type:decimal(14,4)"`
	Notas             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	MateriaPrima *MateriaPrima `gorm:"foreignKey:MateriaPrimaID"`
	ProcesoOrden *ProcesoOrden `gorm:"foreignKey:ProcesoOrdenID"`
}

func (ConsumoMateriaPrima) TableName() string { return "consumos_materia_prima" }

// ConsumoProductoComponente mirrors ConsumoMateriaPrima for sub-product
// inputs.
type ConsumoProductoComponente struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrdenProduccionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ComponenteID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProcesoOrdenID    *uuid.UUID      `gorm:"type:uuid;index"`
	CantidadTeorica   decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	CantidadReal      *decimal.Decimal `gorm:"type:decimal(14,4)"`
	Desperdicio       *decimal.Decimal `gorm:"type:decimal(14,4)"`
	Notas             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Componente   *Producto     `gorm:"foreignKey:ComponenteID"`
	ProcesoOrden *ProcesoOrden `gorm:"foreignKey:ProcesoOrdenID"`
}

func (ConsumoProductoComponente) TableName() string { return "consumos_producto_componente" }
