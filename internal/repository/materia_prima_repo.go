package repository

import (
	"context"

	"github.com/Alexistodj124/CoprodaBackEnd/internal/dto"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MateriaPrimaRepository interface {
	Create(ctx context.Context, m *model.MateriaPrima) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.MateriaPrima, error)
	List(ctx context.Context, filter dto.MateriaPrimaFilter) ([]model.MateriaPrima, int64, error)
	ListBajoMinimo(ctx context.Context) ([]model.MateriaPrima, error)
	Update(ctx context.Context, m *model.MateriaPrima) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.MateriaPrima, error)
	SaveTx(tx *gorm.DB, m *model.MateriaPrima) error

	CreateAjusteTx(tx *gorm.DB, a *model.MateriaPrimaAjuste) error
	ListAjustes(ctx context.Context, materiaPrimaID uuid.UUID) ([]model.MateriaPrimaAjuste, error)

	DB() *gorm.DB
}

type materiaPrimaRepo struct{ db *gorm.DB }

func NewMateriaPrimaRepository(db *gorm.DB) MateriaPrimaRepository {
	return &materiaPrimaRepo{db: db}
}

func (r *materiaPrimaRepo) Create(ctx context.Context, m *model.MateriaPrima) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *materiaPrimaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.MateriaPrima, error) {
	var m model.MateriaPrima
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	return &m, err
}

func (r *materiaPrimaRepo) List(ctx context.Context, filter dto.MateriaPrimaFilter) ([]model.MateriaPrima, int64, error) {
	var list []model.MateriaPrima
	var total int64

	q := r.db.WithContext(ctx).Model(&model.MateriaPrima{})

	switch filter.Activo {
	case "false":
		q = q.Where("activo = false")
	case "all":
	default:
		q = q.Where("activo = true")
	}
	if filter.Nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Nombre+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("nombre ASC").Limit(filter.Limit).Offset(offset).Find(&list).Error
	return list, total, err
}

func (r *materiaPrimaRepo) ListBajoMinimo(ctx context.Context) ([]model.MateriaPrima, error) {
	var list []model.MateriaPrima
	err := r.db.WithContext(ctx).
		Where("activo = true AND stock_actual - stock_reservado <= stock_minimo").
		Order("nombre ASC").Find(&list).Error
	return list, err
}

func (r *materiaPrimaRepo) Update(ctx context.Context, m *model.MateriaPrima) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *materiaPrimaRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.MateriaPrima{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *materiaPrimaRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.MateriaPrima, error) {
	var m model.MateriaPrima
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, "id = ?", id).Error
	return &m, err
}

func (r *materiaPrimaRepo) SaveTx(tx *gorm.DB, m *model.MateriaPrima) error {
	return tx.Save(m).Error
}

func (r *materiaPrimaRepo) CreateAjusteTx(tx *gorm.DB, a *model.MateriaPrimaAjuste) error {
	return tx.Create(a).Error
}

func (r *materiaPrimaRepo) ListAjustes(ctx context.Context, materiaPrimaID uuid.UUID) ([]model.MateriaPrimaAjuste, error) {
	var list []model.MateriaPrimaAjuste
	err := r.db.WithContext(ctx).
		Where("materia_prima_id = ?", materiaPrimaID).
		Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *materiaPrimaRepo) DB() *gorm.DB { return r.db }
