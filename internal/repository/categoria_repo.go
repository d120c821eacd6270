package repository

import (
	"context"

	"github.com/Alexistodj124/CoprodaBackEnd/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoriaRepository defines CRUD operations for product categories.
type CategoriaRepository interface {
	Crear(ctx context.Context, c *model.CategoriaProducto) error
	Listar(ctx context.Context) ([]model.CategoriaProducto, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.CategoriaProducto, error)
	ObtenerPorNombre(ctx context.Context, nombre string) (*model.CategoriaProducto, error)
	Actualizar(ctx context.Context, c *model.CategoriaProducto) error
	Desactivar(ctx context.Context, id uuid.UUID) error
	ContarProductos(ctx context.Context, id uuid.UUID) (int64, error)
}

type categoriaRepository struct{ db *gorm.DB }

func NewCategoriaRepository(db *gorm.DB) CategoriaRepository {
	return &categoriaRepository{db: db}
}

func (r *categoriaRepository) Crear(ctx context.Context, c *model.CategoriaProducto) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoriaRepository) Listar(ctx context.Context) ([]model.CategoriaProducto, error) {
	var list []model.CategoriaProducto
	err := r.db.WithContext(ctx).Order("nombre asc").Find(&list).Error
	return list, err
}

func (r *categoriaRepository) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.CategoriaProducto, error) {
	var c model.CategoriaProducto
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoriaRepository) ObtenerPorNombre(ctx context.Context, nombre string) (*model.CategoriaProducto, error) {
	var c model.CategoriaProducto
	err := r.db.WithContext(ctx).Where("lower(nombre) = lower(?)", nombre).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoriaRepository) Actualizar(ctx context.Context, c *model.CategoriaProducto) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *categoriaRepository) Desactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.CategoriaProducto{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *categoriaRepository) ContarProductos(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Producto{}).Where("categoria_id = ?", id).Count(&n).Error
	return n, err
}
