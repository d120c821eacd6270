package repository

import (
	"context"

	"github.com/Alexistodj124/CoprodaBackEnd/internal/dto"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrdenRepository is the sales order store.
type OrdenRepository interface {
	CreateTx(tx *gorm.DB, o *model.Orden) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Orden, error)
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Orden, error)
	List(ctx context.Context, filter dto.OrdenFilter) ([]model.Orden, int64, error)
	Update(ctx context.Context, o *model.Orden) error
	SaveTx(tx *gorm.DB, o *model.Orden) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	ExisteNumero(ctx context.Context, numero string) (bool, error)

	// ListPendientesCobroByClienteTx returns the customer's orders with an
	// open balance, locked FOR UPDATE. The service sorts them by due date.
	ListPendientesCobroByClienteTx(tx *gorm.DB, clienteID uuid.UUID) ([]model.Orden, error)
	// ListConPagoByClienteTx feeds the reversal replay: every order a past
	// allocation may have touched (total > saldo).
	ListConPagoByClienteTx(tx *gorm.DB, clienteID uuid.UUID) ([]model.Orden, error)
	// ListAbiertasByCliente returns shipped-but-unpaid orders for reports.
	ListAbiertasByCliente(ctx context.Context, clienteID uuid.UUID) ([]model.Orden, error)

	DB() *gorm.DB
}

type ordenRepo struct{ db *gorm.DB }

func NewOrdenRepository(db *gorm.DB) OrdenRepository { return &ordenRepo{db: db} }

func (r *ordenRepo) CreateTx(tx *gorm.DB, o *model.Orden) error {
	return tx.Create(o).Error
}

func (r *ordenRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Orden, error) {
	var o model.Orden
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("TipoPago").
		Preload("Items.Producto").
		First(&o, "id = ?", id).Error
	return &o, err
}

func (r *ordenRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Orden, error) {
	var o model.Orden
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&o, "id = ?", id).Error
	return &o, err
}

func (r *ordenRepo) List(ctx context.Context, filter dto.OrdenFilter) ([]model.Orden, int64, error) {
	var list []model.Orden
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Orden{})
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}
	if filter.Desde != nil {
		q = q.Where("fecha >= ?", *filter.Desde)
	}
	if filter.Hasta != nil {
		q = q.Where("fecha <= ?", *filter.Hasta)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Cliente").Preload("TipoPago").
		Order("fecha DESC, created_at DESC").
		Limit(filter.Limit).Offset(offset).Find(&list).Error
	return list, total, err
}

func (r *ordenRepo) Update(ctx context.Context, o *model.Orden) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *ordenRepo) SaveTx(tx *gorm.DB, o *model.Orden) error {
	return tx.Save(o).Error
}

func (r *ordenRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	if err := tx.Delete(&model.OrdenItem{}, "orden_id = ?", id).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Orden{}, "id = ?", id).Error
}

func (r *ordenRepo) ExisteNumero(ctx context.Context, numero string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Orden{}).
		Where("numero = ?", numero).Count(&n).Error
	return n > 0, err
}

func (r *ordenRepo) ListPendientesCobroByClienteTx(tx *gorm.DB, clienteID uuid.UUID) ([]model.Orden, error) {
	var list []model.Orden
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("TipoPago").
		Where("cliente_id = ? AND saldo > 0 AND estado <> ?", clienteID, model.OrdenPagada).
		Order("fecha_envio asc, fecha asc, created_at asc").Find(&list).Error
	return list, err
}

func (r *ordenRepo) ListConPagoByClienteTx(tx *gorm.DB, clienteID uuid.UUID) ([]model.Orden, error) {
	var list []model.Orden
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("TipoPago").
		Where("cliente_id = ? AND total > saldo", clienteID).
		Order("fecha_envio asc, fecha asc, created_at asc").Find(&list).Error
	return list, err
}

func (r *ordenRepo) ListAbiertasByCliente(ctx context.Context, clienteID uuid.UUID) ([]model.Orden, error) {
	var list []model.Orden
	err := r.db.WithContext(ctx).Preload("TipoPago").
		Where("cliente_id = ? AND saldo > 0 AND estado <> ?", clienteID, model.OrdenPagada).
		Order("fecha asc").Find(&list).Error
	return list, err
}

func (r *ordenRepo) DB() *gorm.DB { return r.db }
