package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Alexistodj124/CoprodaBackEnd/internal/domain"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/dto"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/model"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TipoPagoService interface {
	Crear(ctx context.Context, req dto.CrearTipoPagoRequest) (*dto.TipoPagoResponse, error)
	Listar(ctx context.Context) ([]dto.TipoPagoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarTipoPagoRequest) (*dto.TipoPagoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type tipoPagoService struct {
	repo repository.TipoPagoRepository
}

func NewTipoPagoService(repo repository.TipoPagoRepository) TipoPagoService {
	return &tipoPagoService{repo: repo}
}

func (s *tipoPagoService) Crear(ctx context.Context, req dto.CrearTipoPagoRequest) (*dto.TipoPagoResponse, error) {
	t := &model.TipoPago{
		Nombre:      strings.TrimSpace(req.Nombre),
		DiasCredito: req.DiasCredito,
		Activo:      true,
	}
	if err := s.repo.Crear(ctx, t); err != nil {
		if esErrorDuplicado(err) {
			return nil, domain.NewConflict("ya existe un tipo de pago %s", t.Nombre)
		}
		return nil, err
	}
	return tipoPagoToResponse(t), nil
}

func (s *tipoPagoService) Listar(ctx context.Context) ([]dto.TipoPagoResponse, error) {
	tipos, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TipoPagoResponse, len(tipos))
	for i := range tipos {
		out[i] = *tipoPagoToResponse(&tipos[i])
	}
	return out, nil
}

func (s *tipoPagoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarTipoPagoRequest) (*dto.TipoPagoResponse, error) {
	t, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("tipo de pago")
		}
		return nil, err
	}
	if req.Nombre != nil {
		t.Nombre = strings.TrimSpace(*req.Nombre)
	}
	if req.DiasCredito != nil {
		t.DiasCredito = *req.DiasCredito
	}
	if err := s.repo.Actualizar(ctx, t); err != nil {
		if esErrorDuplicado(err) {
			return nil, domain.NewConflict("ya existe un tipo de pago %s", t.Nombre)
		}
		return nil, err
	}
	return tipoPagoToResponse(t), nil
}

// Desactivar is a soft delete: orders keep referencing the term.
func (s *tipoPagoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.ObtenerPorID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewNotFound("tipo de pago")
		}
		return err
	}
	return s.repo.Desactivar(ctx, id)
}

func tipoPagoToResponse(t *model.TipoPago) *dto.TipoPagoResponse {
	return &dto.TipoPagoResponse{
		ID:          t.ID.String(),
		Nombre:      t.Nombre,
		DiasCredito: t.DiasCredito,
		Activo:      t.Activo,
	}
}
