package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sales order states. The payment allocation engine only touches orders in
// estado "enviada"; "pagada" means the balance reached zero.
const (
	OrdenPendiente = "pendiente"
	OrdenEnviada   = "enviada"
	OrdenPagada    = "pagada"
)

// Orden is a customer sales order. Saldo is the open balance (Total minus
// allocated payments); FechaEnvio is stamped when the order ships and
// anchors the credit-days due date. FechaPago is stamped when an
// allocation drives the balance to zero and cleared if that allocation is
// later unwound.
type Orden struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero     string    `gorm:"uniqueIndex;not null"`
	ClienteID  uuid.UUID `gorm:"type:uuid;not null;index"`
	TipoPagoID uuid.UUID `gorm:"type:uuid;not null"`
	Estado     string    `gorm:"type:varchar(20);not null;default:'pendiente';index"`
	Fecha      time.Time `gorm:"not null"`
	FechaEnvio *time.Time
	FechaPago  *time.Time
	Total      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Saldo      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Nota       *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Cliente  *Cliente    `gorm:"foreignKey:ClienteID"`
	TipoPago *TipoPago   `gorm:"foreignKey:TipoPagoID"`
	Items    []OrdenItem `gorm:"foreignKey:OrdenID"`
}

func (Orden) TableName() string { return "ordenes" }

// OrdenItem is one product line of a sales order. PrecioUnitario is frozen
// at order time.
type OrdenItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrdenID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad       decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CreatedAt      time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (OrdenItem) TableName() string { return "ordenes_items" }
