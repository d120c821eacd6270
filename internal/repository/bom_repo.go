package repository

import (
	"context"

	"github.com/Alexistodj124/CoprodaBackEnd/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BomRepository handles both BOM line kinds: raw material lines and
// sub-product (componente) lines.
type BomRepository interface {
	CrearLineaMP(ctx context.Context, l *model.ProductoMateriaPrima) error
	ObtenerLineaMP(ctx context.Context, id uuid.UUID) (*model.ProductoMateriaPrima, error)
	ListarLineasMP(ctx context.Context, productoID uuid.UUID) ([]model.ProductoMateriaPrima, error)
	ListarLineasMPTx(tx *gorm.DB, productoID uuid.UUID) ([]model.ProductoMateriaPrima, error)
	ActualizarLineaMP(ctx context.Context, l *model.ProductoMateriaPrima) error
	EliminarLineaMP(ctx context.Context, id uuid.UUID) error

	CrearLineaComp(ctx context.Context, l *model.ProductoComponente) error
	ObtenerLineaComp(ctx context.Context, id uuid.UUID) (*model.ProductoComponente, error)
	ListarLineasComp(ctx context.Context, productoID uuid.UUID) ([]model.ProductoComponente, error)
	ListarLineasCompTx(tx *gorm.DB, productoID uuid.UUID) ([]model.ProductoComponente, error)
	ActualizarLineaComp(ctx context.Context, l *model.ProductoComponente) error
	EliminarLineaComp(ctx context.Context, id uuid.UUID) error

	DB() *gorm.DB
}

type bomRepo struct{ db *gorm.DB }

func NewBomRepository(db *gorm.DB) BomRepository { return &bomRepo{db: db} }

func (r *bomRepo) CrearLineaMP(ctx context.Context, l *model.ProductoMateriaPrima) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *bomRepo) ObtenerLineaMP(ctx context.Context, id uuid.UUID) (*model.ProductoMateriaPrima, error) {
	var l model.ProductoMateriaPrima
	err := r.db.WithContext(ctx).Preload("MateriaPrima").First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *bomRepo) ListarLineasMP(ctx context.Context, productoID uuid.UUID) ([]model.ProductoMateriaPrima, error) {
	return r.listarMP(r.db.WithContext(ctx), productoID)
}

func (r *bomRepo) ListarLineasMPTx(tx *gorm.DB, productoID uuid.UUID) ([]model.ProductoMateriaPrima, error) {
	return r.listarMP(tx, productoID)
}

func (r *bomRepo) listarMP(db *gorm.DB, productoID uuid.UUID) ([]model.ProductoMateriaPrima, error) {
	var list []model.ProductoMateriaPrima
	err := db.Preload("MateriaPrima").
		Where("producto_id = ?", productoID).Find(&list).Error
	return list, err
}

func (r *bomRepo) ActualizarLineaMP(ctx context.Context, l *model.ProductoMateriaPrima) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *bomRepo) EliminarLineaMP(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ProductoMateriaPrima{}, "id = ?", id).Error
}

func (r *bomRepo) CrearLineaComp(ctx context.Context, l *model.ProductoComponente) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *bomRepo) ObtenerLineaComp(ctx context.Context, id uuid.UUID) (*model.ProductoComponente, error) {
	var l model.ProductoComponente
	err := r.db.WithContext(ctx).Preload("Componente").First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *bomRepo) ListarLineasComp(ctx context.Context, productoID uuid.UUID) ([]model.ProductoComponente, error) {
	return r.listarComp(r.db.WithContext(ctx), productoID)
}

func (r *bomRepo) ListarLineasCompTx(tx *gorm.DB, productoID uuid.UUID) ([]model.ProductoComponente, error) {
	return r.listarComp(tx, productoID)
}

func (r *bomRepo) listarComp(db *gorm.DB, productoID uuid.UUID) ([]model.ProductoComponente, error) {
	var list []model.ProductoComponente
	err := db.Preload("Componente").
		Where("producto_id = ?", productoID).Find(&list).Error
	return list, err
}

func (r *bomRepo) ActualizarLineaComp(ctx context.Context, l *model.ProductoComponente) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *bomRepo) EliminarLineaComp(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ProductoComponente{}, "id = ?", id).Error
}

func (r *bomRepo) DB() *gorm.DB { return r.db }
