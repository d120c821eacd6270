package repository

import (
	"context"

	"github.com/Alexistodj124/CoprodaBackEnd/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProcesoRepository covers process definitions and per-product routes.
type ProcesoRepository interface {
	Crear(ctx context.Context, p *model.Proceso) error
	Listar(ctx context.Context) ([]model.Proceso, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Proceso, error)
	Actualizar(ctx context.Context, p *model.Proceso) error
	Desactivar(ctx context.Context, id uuid.UUID) error

	// Route steps, always returned ordered by position.
	CrearPaso(ctx context.Context, pp *model.ProductoProceso) error
	ObtenerPaso(ctx context.Context, id uuid.UUID) (*model.ProductoProceso, error)
	ListarRuta(ctx context.Context, productoID uuid.UUID) ([]model.ProductoProceso, error)
	ListarRutaTx(tx *gorm.DB, productoID uuid.UUID) ([]model.ProductoProceso, error)
	ActualizarPaso(ctx context.Context, pp *model.ProductoProceso) error
	EliminarPaso(ctx context.Context, id uuid.UUID) error
	ContarUsosEnRutas(ctx context.Context, procesoID uuid.UUID) (int64, error)

	DB() *gorm.DB
}

type procesoRepo struct{ db *gorm.DB }

func NewProcesoRepository(db *gorm.DB) ProcesoRepository { return &procesoRepo{db: db} }

func (r *procesoRepo) Crear(ctx context.Context, p *model.Proceso) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *procesoRepo) Listar(ctx context.Context) ([]model.Proceso, error) {
	var list []model.Proceso
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre asc").Find(&list).Error
	return list, err
}

func (r *procesoRepo) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Proceso, error) {
	var p model.Proceso
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *procesoRepo) Actualizar(ctx context.Context, p *model.Proceso) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *procesoRepo) Desactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Proceso{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *procesoRepo) CrearPaso(ctx context.Context, pp *model.ProductoProceso) error {
	return r.db.WithContext(ctx).Create(pp).Error
}

func (r *procesoRepo) ObtenerPaso(ctx context.Context, id uuid.UUID) (*model.ProductoProceso, error) {
	var pp model.ProductoProceso
	err := r.db.WithContext(ctx).Preload("Proceso").First(&pp, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &pp, nil
}

func (r *procesoRepo) ListarRuta(ctx context.Context, productoID uuid.UUID) ([]model.ProductoProceso, error) {
	return r.listarRuta(r.db.WithContext(ctx), productoID)
}

func (r *procesoRepo) ListarRutaTx(tx *gorm.DB, productoID uuid.UUID) ([]model.ProductoProceso, error) {
	return r.listarRuta(tx, productoID)
}

func (r *procesoRepo) listarRuta(db *gorm.DB, productoID uuid.UUID) ([]model.ProductoProceso, error) {
	var ruta []model.ProductoProceso
	err := db.Preload("Proceso").
		Where("producto_id = ?", productoID).
		Order("orden asc").Find(&ruta).Error
	return ruta, err
}

func (r *procesoRepo) ActualizarPaso(ctx context.Context, pp *model.ProductoProceso) error {
	return r.db.WithContext(ctx).Save(pp).Error
}

func (r *procesoRepo) EliminarPaso(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ProductoProceso{}, "id = ?", id).Error
}

func (r *procesoRepo) ContarUsosEnRutas(ctx context.Context, procesoID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ProductoProceso{}).
		Where("proceso_id = ?", procesoID).Count(&n).Error
	return n, err
}

func (r *procesoRepo) DB() *gorm.DB { return r.db }
