package repository

import (
	"context"

	"github.com/Alexistodj124/CoprodaBackEnd/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClienteRepository interface {
	Crear(ctx context.Context, c *model.Cliente) error
	Listar(ctx context.Context, nombre string) ([]model.Cliente, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	Actualizar(ctx context.Context, c *model.Cliente) error
	Eliminar(ctx context.Context, id uuid.UUID) error
	ContarOrdenes(ctx context.Context, id uuid.UUID) (int64, error)

	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Cliente, error)
	SaveTx(tx *gorm.DB, c *model.Cliente) error

	DB() *gorm.DB
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Crear(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) Listar(ctx context.Context, nombre string) ([]model.Cliente, error) {
	var list []model.Cliente
	q := r.db.WithContext(ctx)
	if nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+nombre+"%")
	}
	err := q.Order("nombre asc").Find(&list).Error
	return list, err
}

func (r *clienteRepo) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) Actualizar(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clienteRepo) Eliminar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Cliente{}, "id = ?", id).Error
}

func (r *clienteRepo) ContarOrdenes(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Orden{}).Where("cliente_id = ?", id).Count(&n).Error
	return n, err
}

func (r *clienteRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *clienteRepo) SaveTx(tx *gorm.DB, c *model.Cliente) error {
	return tx.Save(c).Error
}

func (r *clienteRepo) DB() *gorm.DB { return r.db }
