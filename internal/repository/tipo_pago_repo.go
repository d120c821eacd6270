package repository

import (
	"context"

	"github.com/Alexistodj124/CoprodaBackEnd/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TipoPagoRepository interface {
	Crear(ctx context.Context, t *model.TipoPago) error
	Listar(ctx context.Context) ([]model.TipoPago, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.TipoPago, error)
	Actualizar(ctx context.Context, t *model.TipoPago) error
	Desactivar(ctx context.Context, id uuid.UUID) error
	ContarOrdenes(ctx context.Context, id uuid.UUID) (int64, error)
}

type tipoPagoRepo struct{ db *gorm.DB }

func NewTipoPagoRepository(db *gorm.DB) TipoPagoRepository { return &tipoPagoRepo{db: db} }

func (r *tipoPagoRepo) Crear(ctx context.Context, t *model.TipoPago) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *tipoPagoRepo) Listar(ctx context.Context) ([]model.TipoPago, error) {
	var list []model.TipoPago
	err := r.db.WithContext(ctx).Where("activo = true").Order("dias_credito asc").Find(&list).Error
	return list, err
}

func (r *tipoPagoRepo) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.TipoPago, error) {
	var t model.TipoPago
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tipoPagoRepo) Actualizar(ctx context.Context, t *model.TipoPago) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *tipoPagoRepo) Desactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.TipoPago{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *tipoPagoRepo) ContarOrdenes(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Orden{}).Where("tipo_pago_id = ?", id).Count(&n).Error
	return n, err
}
