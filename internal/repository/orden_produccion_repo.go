package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Alexistodj124/CoprodaBackEnd/internal/dto"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrdenProduccionRepository interface {
	CreateTx(tx *gorm.DB, o *model.OrdenProduccion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.OrdenProduccion, error)
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.OrdenProduccion, error)
	List(ctx context.Context, filter dto.OrdenProduccionFilter) ([]model.OrdenProduccion, int64, error)
	Update(ctx context.Context, o *model.OrdenProduccion) error
	SaveTx(tx *gorm.DB, o *model.OrdenProduccion) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	NextCodigo(ctx context.Context, hoy time.Time) (string, error)

	// Process step instances of an order, ordered by route position.
	CreatePasoTx(tx *gorm.DB, p *model.ProcesoOrden) error
	FindPaso(ctx context.Context, id uuid.UUID) (*model.ProcesoOrden, error)
	FindPasoForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.ProcesoOrden, error)
	ListPasos(ctx context.Context, ordenID uuid.UUID) ([]model.ProcesoOrden, error)
	ListPasosTx(tx *gorm.DB, ordenID uuid.UUID) ([]model.ProcesoOrden, error)
	SavePasoTx(tx *gorm.DB, p *model.ProcesoOrden) error

	DB() *gorm.DB
}

type ordenProduccionRepo struct{ db *gorm.DB }

func NewOrdenProduccionRepository(db *gorm.DB) OrdenProduccionRepository {
	return &ordenProduccionRepo{db: db}
}

func (r *ordenProduccionRepo) CreateTx(tx *gorm.DB, o *model.OrdenProduccion) error {
	return tx.Create(o).Error
}

func (r *ordenProduccionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.OrdenProduccion, error) {
	var o model.OrdenProduccion
	err := r.db.WithContext(ctx).
		Preload("Producto").
		Preload("Procesos", func(db *gorm.DB) *gorm.DB { return db.Order("orden asc") }).
		Preload("Procesos.Proceso").
		First(&o, "id = ?", id).Error
	return &o, err
}

func (r *ordenProduccionRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.OrdenProduccion, error) {
	var o model.OrdenProduccion
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&o, "id = ?", id).Error
	return &o, err
}

func (r *ordenProduccionRepo) List(ctx context.Context, filter dto.OrdenProduccionFilter) ([]model.OrdenProduccion, int64, error) {
	var list []model.OrdenProduccion
	var total int64

	q := r.db.WithContext(ctx).Model(&model.OrdenProduccion{})
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.ProductoID != "" {
		q = q.Where("producto_id = ?", filter.ProductoID)
	}
	if filter.Desde != nil {
		q = q.Where("created_at >= ?", *filter.Desde)
	}
	if filter.Hasta != nil {
		q = q.Where("created_at < ?", filter.Hasta.AddDate(0, 0, 1))
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Producto").
		Order("prioridad DESC, created_at DESC").
		Limit(filter.Limit).Offset(offset).Find(&list).Error
	return list, total, err
}

func (r *ordenProduccionRepo) Update(ctx context.Context, o *model.OrdenProduccion) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *ordenProduccionRepo) SaveTx(tx *gorm.DB, o *model.OrdenProduccion) error {
	return tx.Save(o).Error
}

func (r *ordenProduccionRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	if err := tx.Delete(&model.ProcesoOrden{}, "orden_produccion_id = ?", id).Error; err != nil {
		return err
	}
	return tx.Delete(&model.OrdenProduccion{}, "id = ?", id).Error
}

// NextCodigo builds OP-YYYYMMDD-NNN from today's order count.
func (r *ordenProduccionRepo) NextCodigo(ctx context.Context, hoy time.Time) (string, error) {
	var n int64
	inicio := time.Date(hoy.Year(), hoy.Month(), hoy.Day(), 0, 0, 0, 0, hoy.Location())
	err := r.db.WithContext(ctx).Model(&model.OrdenProduccion{}).
		Where("created_at >= ?", inicio).Count(&n).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("OP-%s-%03d", hoy.Format("20060102"), n+1), nil
}

func (r *ordenProduccionRepo) CreatePasoTx(tx *gorm.DB, p *model.ProcesoOrden) error {
	return tx.Create(p).Error
}

func (r *ordenProduccionRepo) FindPaso(ctx context.Context, id uuid.UUID) (*model.ProcesoOrden, error) {
	var p model.ProcesoOrden
	err := r.db.WithContext(ctx).Preload("Proceso").First(&p, "id = ?", id).Error
	return &p, err
}

func (r *ordenProduccionRepo) FindPasoForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.ProcesoOrden, error) {
	var p model.ProcesoOrden
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *ordenProduccionRepo) ListPasos(ctx context.Context, ordenID uuid.UUID) ([]model.ProcesoOrden, error) {
	return r.listPasos(r.db.WithContext(ctx), ordenID)
}

func (r *ordenProduccionRepo) ListPasosTx(tx *gorm.DB, ordenID uuid.UUID) ([]model.ProcesoOrden, error) {
	return r.listPasos(tx, ordenID)
}

func (r *ordenProduccionRepo) listPasos(db *gorm.DB, ordenID uuid.UUID) ([]model.ProcesoOrden, error) {
	var pasos []model.ProcesoOrden
	err := db.Preload("Proceso").
		Where("orden_produccion_id = ?", ordenID).
		Order("orden asc").Find(&pasos).Error
	return pasos, err
}

func (r *ordenProduccionRepo) SavePasoTx(tx *gorm.DB, p *model.ProcesoOrden) error {
	return tx.Save(p).Error
}

func (r *ordenProduccionRepo) DB() *gorm.DB { return r.db }
