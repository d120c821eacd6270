package repository

import (
	"context"
	"errors"

	"github.com/Alexistodj124/CoprodaBackEnd/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConsumoRepository is the consumption ledger: raw material and component
// draws per production order.
type ConsumoRepository interface {
	CreateMPTx(tx *gorm.DB, c *model.ConsumoMateriaPrima) error
	FindMP(ctx context.Context, id uuid.UUID) (*model.ConsumoMateriaPrima, error)
	FindMPTx(tx *gorm.DB, id uuid.UUID) (*model.ConsumoMateriaPrima, error)
	// FindMPExistenteTx locates the row for (orden, paso, materia prima);
	// returns nil when absent. Used for idempotent auto-posting.
	FindMPExistenteTx(tx *gorm.DB, ordenID uuid.UUID, pasoID *uuid.UUID, materiaPrimaID uuid.UUID) (*model.ConsumoMateriaPrima, error)
	ListMPByOrden(ctx context.Context, ordenID uuid.UUID) ([]model.ConsumoMateriaPrima, error)
	ListMPByOrdenTx(tx *gorm.DB, ordenID uuid.UUID) ([]model.ConsumoMateriaPrima, error)
	ListMPByOrdenInsumoTx(tx *gorm.DB, ordenID, materiaPrimaID uuid.UUID) ([]model.ConsumoMateriaPrima, error)
	SaveMPTx(tx *gorm.DB, c *model.ConsumoMateriaPrima) error
	DeleteMPTx(tx *gorm.DB, id uuid.UUID) error
	DeleteMPByOrdenTx(tx *gorm.DB, ordenID uuid.UUID) error

	CreateCompTx(tx *gorm.DB, c *model.ConsumoProductoComponente) error
	FindComp(ctx context.Context, id uuid.UUID) (*model.ConsumoProductoComponente, error)
	FindCompTx(tx *gorm.DB, id uuid.UUID) (*model.ConsumoProductoComponente, error)
	FindCompExistenteTx(tx *gorm.DB, ordenID uuid.UUID, pasoID *uuid.UUID, componenteID uuid.UUID) (*model.ConsumoProductoComponente, error)
	ListCompByOrden(ctx context.Context, ordenID uuid.UUID) ([]model.ConsumoProductoComponente, error)
	ListCompByOrdenTx(tx *gorm.DB, ordenID uuid.UUID) ([]model.ConsumoProductoComponente, error)
	ListCompByOrdenInsumoTx(tx *gorm.DB, ordenID, componenteID uuid.UUID) ([]model.ConsumoProductoComponente, error)
	SaveCompTx(tx *gorm.DB, c *model.ConsumoProductoComponente) error
	DeleteCompTx(tx *gorm.DB, id uuid.UUID) error
	DeleteCompByOrdenTx(tx *gorm.DB, ordenID uuid.UUID) error

	DB() *gorm.DB
}

type consumoRepo struct{ db *gorm.DB }

func NewConsumoRepository(db *gorm.DB) ConsumoRepository { return &consumoRepo{db: db} }

func (r *consumoRepo) CreateMPTx(tx *gorm.DB, c *model.ConsumoMateriaPrima) error {
	return tx.Create(c).Error
}

func (r *consumoRepo) FindMP(ctx context.Context, id uuid.UUID) (*model.ConsumoMateriaPrima, error) {
	var c model.ConsumoMateriaPrima
	err := r.db.WithContext(ctx).Preload("MateriaPrima").First(&c, "id = ?", id).Error
	return &c, err
}

func (r *consumoRepo) FindMPTx(tx *gorm.DB, id uuid.UUID) (*model.ConsumoMateriaPrima, error) {
	var c model.ConsumoMateriaPrima
	err := tx.First(&c, "id = ?", id).Error
	return &c, err
}

func (r *consumoRepo) FindMPExistenteTx(tx *gorm.DB, ordenID uuid.UUID, pasoID *uuid.UUID, materiaPrimaID uuid.UUID) (*model.ConsumoMateriaPrima, error) {
	q := tx.Where("orden_produccion_id = ? AND materia_prima_id = ?", ordenID, materiaPrimaID)
	if pasoID == nil {
		q = q.Where("proceso_orden_id IS NULL")
	} else {
		q = q.Where("proceso_orden_id = ?", *pasoID)
	}
	var c model.ConsumoMateriaPrima
	err := q.First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *consumoRepo) ListMPByOrden(ctx context.Context, ordenID uuid.UUID) ([]model.ConsumoMateriaPrima, error) {
	var list []model.ConsumoMateriaPrima
	err := r.db.WithContext(ctx).Preload("MateriaPrima").
		Where("orden_produccion_id = ?", ordenID).
		Order("created_at asc").Find(&list).Error
	return list, err
}

func (r *consumoRepo) ListMPByOrdenTx(tx *gorm.DB, ordenID uuid.UUID) ([]model.ConsumoMateriaPrima, error) {
	var list []model.ConsumoMateriaPrima
	err := tx.Where("orden_produccion_id = ?", ordenID).Find(&list).Error
	return list, err
}

func (r *consumoRepo) ListMPByOrdenInsumoTx(tx *gorm.DB, ordenID, materiaPrimaID uuid.UUID) ([]model.ConsumoMateriaPrima, error) {
	var list []model.ConsumoMateriaPrima
	err := tx.Where("orden_produccion_id = ? AND materia_prima_id = ?", ordenID, materiaPrimaID).
		Find(&list).Error
	return list, err
}

func (r *consumoRepo) SaveMPTx(tx *gorm.DB, c *model.ConsumoMateriaPrima) error {
	return tx.Save(c).Error
}

func (r *consumoRepo) DeleteMPTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.ConsumoMateriaPrima{}, "id = ?", id).Error
}

func (r *consumoRepo) DeleteMPByOrdenTx(tx *gorm.DB, ordenID uuid.UUID) error {
	return tx.Delete(&model.ConsumoMateriaPrima{}, "orden_produccion_id = ?", ordenID).Error
}

func (r *consumoRepo) CreateCompTx(tx *gorm.DB, c *model.ConsumoProductoComponente) error {
	return tx.Create(c).Error
}

func (r *consumoRepo) FindComp(ctx context.Context, id uuid.UUID) (*model.ConsumoProductoComponente, error) {
	var c model.ConsumoProductoComponente
	err := r.db.WithContext(ctx).Preload("Componente").First(&c, "id = ?", id).Error
	return &c, err
}

func (r *consumoRepo) FindCompTx(tx *gorm.DB, id uuid.UUID) (*model.ConsumoProductoComponente, error) {
	var c model.ConsumoProductoComponente
	err := tx.First(&c, "id = ?", id).Error
	return &c, err
}

func (r *consumoRepo) FindCompExistenteTx(tx *gorm.DB, ordenID uuid.UUID, pasoID *uuid.UUID, componenteID uuid.UUID) (*model.ConsumoProductoComponente, error) {
	q := tx.Where("orden_produccion_id = ? AND componente_id = ?", ordenID, componenteID)
	if pasoID == nil {
		q = q.Where("proceso_orden_id IS NULL")
	} else {
		q = q.Where("proceso_orden_id = ?", *pasoID)
	}
	var c model.ConsumoProductoComponente
	err := q.First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *consumoRepo) ListCompByOrden(ctx context.Context, ordenID uuid.UUID) ([]model.ConsumoProductoComponente, error) {
	var list []model.ConsumoProductoComponente
	err := r.db.WithContext(ctx).Preload("Componente").
		Where("orden_produccion_id = ?", ordenID).
		Order("created_at asc").Find(&list).Error
	return list, err
}

func (r *consumoRepo) ListCompByOrdenTx(tx *gorm.DB, ordenID uuid.UUID) ([]model.ConsumoProductoComponente, error) {
	var list []model.ConsumoProductoComponente
	err := tx.Where("orden_produccion_id = ?", ordenID).Find(&list).Error
	return list, err
}

func (r *consumoRepo) ListCompByOrdenInsumoTx(tx *gorm.DB, ordenID, componenteID uuid.UUID) ([]model.ConsumoProductoComponente, error) {
	var list []model.ConsumoProductoComponente
	err := tx.Where("orden_produccion_id = ? AND componente_id = ?", ordenID, componenteID).
		Find(&list).Error
	return list, err
}

func (r *consumoRepo) SaveCompTx(tx *gorm.DB, c *model.ConsumoProductoComponente) error {
	return tx.Save(c).Error
}

func (r *consumoRepo) DeleteCompTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.ConsumoProductoComponente{}, "id = ?", id).Error
}

func (r *consumoRepo) DeleteCompByOrdenTx(tx *gorm.DB, ordenID uuid.UUID) error {
	return tx.Delete(&model.ConsumoProductoComponente{}, "orden_produccion_id = ?", ordenID).Error
}

func (r *consumoRepo) DB() *gorm.DB { return r.db }
