package model

import (
	"time"

	"github.com/google/uuid"
)

// Proceso is a reusable manufacturing process definition (corte, armado,
// acabado...). Products reference processes through ProductoProceso to form
// their ordered route.
type Proceso struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"uniqueIndex;not null"`
	Descripcion *string
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Proceso) TableName() string { return "procesos" }

// ProductoProceso is one step of a product's route. Orden is the 1-based
// position; (ProductoID, Orden) and (ProductoID, ProcesoID) are both unique.
type ProductoProceso struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_producto_orden,priority:1;uniqueIndex:uq_producto_proceso,priority:1"`
	ProcesoID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_producto_proceso,priority:2"`
	Orden      int       `gorm:"not null;uniqueIndex:uq_producto_orden,priority:2"`
	TiempoEstimadoMin *int
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
	Proceso  *Proceso  `gorm:"foreignKey:ProcesoID"`
}

func (ProductoProceso) TableName() string { return "productos_procesos" }
