package repository

import (
	"context"

	"github.com/Alexistodj124/CoprodaBackEnd/internal/dto"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BancoRepository interface {
	Crear(ctx context.Context, b *model.Banco) error
	List(ctx context.Context, filter dto.BancoFilter) ([]model.Banco, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Banco, error)
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Banco, error)
	Update(ctx context.Context, b *model.Banco) error
	SaveTx(tx *gorm.DB, b *model.Banco) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error

	DB() *gorm.DB
}

type bancoRepo struct{ db *gorm.DB }

func NewBancoRepository(db *gorm.DB) BancoRepository { return &bancoRepo{db: db} }

func (r *bancoRepo) Crear(ctx context.Context, b *model.Banco) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *bancoRepo) List(ctx context.Context, filter dto.BancoFilter) ([]model.Banco, int64, error) {
	var list []model.Banco
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Banco{})
	switch filter.Asignado {
	case "true":
		q = q.Where("asignado = true")
	case "false":
		q = q.Where("asignado = false")
	}
	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Cliente").
		Order("fecha DESC, created_at DESC").
		Limit(filter.Limit).Offset(offset).Find(&list).Error
	return list, total, err
}

func (r *bancoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Banco, error) {
	var b model.Banco
	err := r.db.WithContext(ctx).Preload("Cliente").First(&b, "id = ?", id).Error
	return &b, err
}

func (r *bancoRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Banco, error) {
	var b model.Banco
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&b, "id = ?", id).Error
	return &b, err
}

func (r *bancoRepo) Update(ctx context.Context, b *model.Banco) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *bancoRepo) SaveTx(tx *gorm.DB, b *model.Banco) error {
	return tx.Save(b).Error
}

func (r *bancoRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Banco{}, "id = ?", id).Error
}

func (r *bancoRepo) DB() *gorm.DB { return r.db }
