package service

import (
	"context"
	"errors"

	"github.com/Alexistodj124/CoprodaBackEnd/internal/domain"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/dto"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/model"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MateriaPrimaService interface {
	Crear(ctx context.Context, req dto.CrearMateriaPrimaRequest) (*dto.MateriaPrimaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.MateriaPrimaResponse, error)
	Listar(ctx context.Context, filter dto.MateriaPrimaFilter) (*dto.MateriaPrimaListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarMateriaPrimaRequest) (*dto.MateriaPrimaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error

	// AjustarStock posts a manual on-hand movement and its audit row in one
	// transaction. SALIDA may not exceed the available balance.
	AjustarStock(ctx context.Context, id uuid.UUID, usuarioID *uuid.UUID, req dto.AjusteStockRequest) (*dto.MateriaPrimaResponse, error)
	ListarAjustes(ctx context.Context, id uuid.UUID) ([]dto.AjusteResponse, error)
}

type materiaPrimaService struct {
	repo repository.MateriaPrimaRepository
}

func NewMateriaPrimaService(repo repository.MateriaPrimaRepository) MateriaPrimaService {
	return &materiaPrimaService{repo: repo}
}

func (s *materiaPrimaService) Crear(ctx context.Context, req dto.CrearMateriaPrimaRequest) (*dto.MateriaPrimaResponse, error) {
	m := &model.MateriaPrima{
		Nombre:      req.Nombre,
		Codigo:      req.Codigo,
		Unidad:      req.Unidad,
		CostoUnidad: req.CostoUnidad,
		Proveedor:   req.Proveedor,
		Activo:      true,
	}
	if req.StockActual != nil {
		if req.StockActual.IsNegative() {
			return nil, domain.NewValidation("stock_actual no puede ser negativo")
		}
		m.StockActual = *req.StockActual
	}
	if req.StockMinimo != nil {
		m.StockMinimo = *req.StockMinimo
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return materiaPrimaToResponse(m), nil
}

func (s *materiaPrimaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.MateriaPrimaResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("materia prima")
		}
		return nil, err
	}
	return materiaPrimaToResponse(m), nil
}

func (s *materiaPrimaService) Listar(ctx context.Context, filter dto.MateriaPrimaFilter) (*dto.MateriaPrimaListResponse, error) {
	list, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.MateriaPrimaResponse, len(list))
	for i := range list {
		data[i] = *materiaPrimaToResponse(&list[i])
	}
	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &dto.MateriaPrimaListResponse{
		Data: data, Total: total, Page: filter.Page, Limit: filter.Limit, TotalPages: totalPages,
	}, nil
}

func (s *materiaPrimaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarMateriaPrimaRequest) (*dto.MateriaPrimaResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("materia prima")
		}
		return nil, err
	}
	if req.Nombre != nil {
		m.Nombre = *req.Nombre
	}
	if req.Codigo != nil {
		m.Codigo = *req.Codigo
	}
	if req.Unidad != nil {
		m.Unidad = *req.Unidad
	}
	if req.CostoUnidad != nil {
		m.CostoUnidad = *req.CostoUnidad
	}
	if req.Proveedor != nil {
		m.Proveedor = req.Proveedor
	}
	if req.StockMinimo != nil {
		m.StockMinimo = *req.StockMinimo
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return materiaPrimaToResponse(m), nil
}

func (s *materiaPrimaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewNotFound("materia prima")
		}
		return err
	}
	if m.StockReservado.IsPositive() {
		return domain.NewConflict("la materia prima tiene %s unidades reservadas por producción", m.StockReservado.String())
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *materiaPrimaService) AjustarStock(ctx context.Context, id uuid.UUID, usuarioID *uuid.UUID, req dto.AjusteStockRequest) (*dto.MateriaPrimaResponse, error) {
	var resultado *model.MateriaPrima

	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		m, err := s.repo.FindByIDForUpdateTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFound("materia prima")
			}
			return err
		}

		switch req.Tipo {
		case model.AjusteEntrada:
			if !req.Cantidad.IsPositive() {
				return domain.NewValidation("la cantidad de una ENTRADA debe ser positiva")
			}
			DepositarStock(&m.Stock, req.Cantidad)
		case model.AjusteSalida:
			if !req.Cantidad.IsPositive() {
				return domain.NewValidation("la cantidad de una SALIDA debe ser positiva")
			}
			if m.Disponible().LessThan(req.Cantidad) {
				return &domain.InsufficientStockError{
					Recurso:    m.Nombre,
					Disponible: m.Disponible(),
					Requerido:  req.Cantidad,
				}
			}
			if err := RetirarStock(&m.Stock, m.Nombre, req.Cantidad); err != nil {
				return err
			}
		case model.AjusteAjuste:
			// AJUSTE sets the absolute on-hand level.
			if req.Cantidad.IsNegative() {
				return domain.NewValidation("el nivel de un AJUSTE no puede ser negativo")
			}
			m.StockActual = req.Cantidad
		default:
			return domain.NewValidation("tipo de ajuste desconocido: %s", req.Tipo)
		}

		if err := s.repo.SaveTx(tx, m); err != nil {
			return err
		}

		ajuste := &model.MateriaPrimaAjuste{
			MateriaPrimaID: m.ID,
			Tipo:           req.Tipo,
			Cantidad:       req.Cantidad.Abs(),
			Motivo:         req.Motivo,
			UsuarioID:      usuarioID,
		}
		if err := s.repo.CreateAjusteTx(tx, ajuste); err != nil {
			return err
		}

		resultado = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return materiaPrimaToResponse(resultado), nil
}

func (s *materiaPrimaService) ListarAjustes(ctx context.Context, id uuid.UUID) ([]dto.AjusteResponse, error) {
	list, err := s.repo.ListAjustes(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.AjusteResponse, len(list))
	for i, a := range list {
		resp[i] = dto.AjusteResponse{
			ID:             a.ID.String(),
			MateriaPrimaID: a.MateriaPrimaID.String(),
			Tipo:           a.Tipo,
			Cantidad:       a.Cantidad,
			Motivo:         a.Motivo,
			CreatedAt:      a.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}
	return resp, nil
}

func materiaPrimaToResponse(m *model.MateriaPrima) *dto.MateriaPrimaResponse {
	return &dto.MateriaPrimaResponse{
		ID:              m.ID.String(),
		Nombre:          m.Nombre,
		Codigo:          m.Codigo,
		Unidad:          m.Unidad,
		CostoUnidad:     m.CostoUnidad,
		Proveedor:       m.Proveedor,
		StockActual:     m.StockActual,
		StockReservado:  m.StockReservado,
		StockDisponible: m.Disponible(),
		StockMinimo:     m.StockMinimo,
		Activo:          m.Activo,
	}
}
