package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Production order lifecycle states.
const (
	OrdenProduccionBorrador    = "BORRADOR"
	OrdenProduccionPlanificada = "PLANIFICADA"
	OrdenProduccionEnProceso   = "EN_PROCESO"
	OrdenProduccionPausada     = "PAUSADA"
	OrdenProduccionCompletada  = "COMPLETADA"
	OrdenProduccionCancelada   = "CANCELADA"
)

// OrdenProduccion is a production run of CantidadPlaneada units of a
// product. Creating one reserves the theoretical input quantities; closing
// or cancelling it settles the reservations.
type OrdenProduccion struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CodigoOrden     string          `gorm:"uniqueIndex;not null"`
	ProductoID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	CantidadPlaneada decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	CantidadProducida decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0"`
	Estado          string          `gorm:"type:varchar(20);not null;default:'PLANIFICADA';index"`
	Prioridad       int             `gorm:"not null;default:0"`
	Notas           *string
	FechaInicio     *time.Time
	FechaFin        *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Producto *Producto      `gorm:"foreignKey:ProductoID"`
	Procesos []ProcesoOrden `gorm:"foreignKey:OrdenProduccionID"`
}

func (OrdenProduccion) TableName() string { return "ordenes_produccion" }

// Process step instance states.
const (
	ProcesoOrdenPendiente  = "PENDIENTE"
	ProcesoOrdenEnProceso  = "EN_PROCESO"
	ProcesoOrdenPausado    = "PAUSADO"
	ProcesoOrdenCompletado = "COMPLETADO"
)

// ProcesoOrden is the execution record of one route step within a
// production order. Entrada/Salida/Perdida stay nil until reported; a nil
// loss is unknown, not zero.
type ProcesoOrden struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrdenProduccionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_orden_paso,priority:1"`
	ProcesoID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Orden             int       `gorm:"not null;uniqueIndex:uq_orden_paso,priority:2"`
	Estado            string    `gorm:"type:varchar(20);not null;default:'PENDIENTE'"`
	CantidadEntrada   *decimal.Decimal `gorm:"type:decimal(14,3)"`
	CantidadSalida    *decimal.Decimal `gorm:"type:decimal(14,3)"`
	CantidadPerdida   *decimal.Decimal `gorm:"type:decimal(14,3)"`
	MotivoPerdida     *string
	Notas             *string
	FechaInicio       *time.Time
	FechaFin          *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Proceso *Proceso `gorm:"foreignKey:ProcesoID"`
}

func (ProcesoOrden) TableName() string { return "procesos_orden" }

// CantidadBase is the quantity consumption math scales by when the step
// completes: reported output, else reported input, else the order's plan.
func (p ProcesoOrden) CantidadBase(planeada decimal.Decimal) decimal.Decimal {
	if p.CantidadSalida != nil {
		return *p.CantidadSalida
	}
	if p.CantidadEntrada != nil {
		return *p.CantidadEntrada
	}
	return planeada
}
