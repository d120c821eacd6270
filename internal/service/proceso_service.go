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

type ProcesoService interface {
	Crear(ctx context.Context, req dto.CrearProcesoRequest) (*dto.ProcesoResponse, error)
	Listar(ctx context.Context) ([]dto.ProcesoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProcesoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProcesoRequest) (*dto.ProcesoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error

	// Route steps of a product.
	AgregarPaso(ctx context.Context, productoID uuid.UUID, req dto.CrearPasoRutaRequest) (*dto.PasoRutaResponse, error)
	ListarRuta(ctx context.Context, productoID uuid.UUID) ([]dto.PasoRutaResponse, error)
	ActualizarPaso(ctx context.Context, pasoID uuid.UUID, req dto.ActualizarPasoRutaRequest) (*dto.PasoRutaResponse, error)
	EliminarPaso(ctx context.Context, pasoID uuid.UUID) error
}

type procesoService struct {
	repo         repository.ProcesoRepository
	productoRepo repository.ProductoRepository
}

func NewProcesoService(repo repository.ProcesoRepository, productoRepo repository.ProductoRepository) ProcesoService {
	return &procesoService{repo: repo, productoRepo: productoRepo}
}

func (s *procesoService) Crear(ctx context.Context, req dto.CrearProcesoRequest) (*dto.ProcesoResponse, error) {
	p := &model.Proceso{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Activo:      true,
	}
	if err := s.repo.Crear(ctx, p); err != nil {
		return nil, err
	}
	return procesoToResponse(p), nil
}

func (s *procesoService) Listar(ctx context.Context) ([]dto.ProcesoResponse, error) {
	list, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProcesoResponse, len(list))
	for i := range list {
		resp[i] = *procesoToResponse(&list[i])
	}
	return resp, nil
}

func (s *procesoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProcesoResponse, error) {
	p, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("proceso")
		}
		return nil, err
	}
	return procesoToResponse(p), nil
}

func (s *procesoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProcesoRequest) (*dto.ProcesoResponse, error) {
	p, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("proceso")
		}
		return nil, err
	}
	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if err := s.repo.Actualizar(ctx, p); err != nil {
		return nil, err
	}
	return procesoToResponse(p), nil
}

func (s *procesoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	n, err := s.repo.ContarUsosEnRutas(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.NewConflict("el proceso aparece en %d rutas de producto", n)
	}
	return s.repo.Desactivar(ctx, id)
}

func (s *procesoService) AgregarPaso(ctx context.Context, productoID uuid.UUID, req dto.CrearPasoRutaRequest) (*dto.PasoRutaResponse, error) {
	if _, err := s.productoRepo.FindByID(ctx, productoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("producto")
		}
		return nil, err
	}
	procesoID, err := uuid.Parse(req.ProcesoID)
	if err != nil {
		return nil, domain.NewValidation("proceso_id inválido")
	}
	if _, err := s.repo.ObtenerPorID(ctx, procesoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("proceso")
		}
		return nil, err
	}

	// Route positions must stay unique per product; the DB index backs this
	// up but we answer with a clean conflict first.
	ruta, err := s.repo.ListarRuta(ctx, productoID)
	if err != nil {
		return nil, err
	}
	for _, paso := range ruta {
		if paso.Orden == req.Orden {
			return nil, domain.NewConflict("la posición %d ya está ocupada en la ruta", req.Orden)
		}
		if paso.ProcesoID == procesoID {
			return nil, domain.NewConflict("el proceso ya forma parte de la ruta")
		}
	}

	pp := &model.ProductoProceso{
		ProductoID:        productoID,
		ProcesoID:         procesoID,
		Orden:             req.Orden,
		TiempoEstimadoMin: req.TiempoEstimadoMin,
	}
	if err := s.repo.CrearPaso(ctx, pp); err != nil {
		return nil, err
	}
	return pasoRutaToResponse(pp), nil
}

func (s *procesoService) ListarRuta(ctx context.Context, productoID uuid.UUID) ([]dto.PasoRutaResponse, error) {
	ruta, err := s.repo.ListarRuta(ctx, productoID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PasoRutaResponse, len(ruta))
	for i := range ruta {
		resp[i] = *pasoRutaToResponse(&ruta[i])
	}
	return resp, nil
}

func (s *procesoService) ActualizarPaso(ctx context.Context, pasoID uuid.UUID, req dto.ActualizarPasoRutaRequest) (*dto.PasoRutaResponse, error) {
	pp, err := s.repo.ObtenerPaso(ctx, pasoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("paso de ruta")
		}
		return nil, err
	}
	if req.Orden != nil && *req.Orden != pp.Orden {
		ruta, err := s.repo.ListarRuta(ctx, pp.ProductoID)
		if err != nil {
			return nil, err
		}
		for _, otro := range ruta {
			if otro.ID != pp.ID && otro.Orden == *req.Orden {
				return nil, domain.NewConflict("la posición %d ya está ocupada en la ruta", *req.Orden)
			}
		}
		pp.Orden = *req.Orden
	}
	if req.TiempoEstimadoMin != nil {
		pp.TiempoEstimadoMin = req.TiempoEstimadoMin
	}
	if err := s.repo.ActualizarPaso(ctx, pp); err != nil {
		return nil, err
	}
	return pasoRutaToResponse(pp), nil
}

func (s *procesoService) EliminarPaso(ctx context.Context, pasoID uuid.UUID) error {
	if _, err := s.repo.ObtenerPaso(ctx, pasoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewNotFound("paso de ruta")
		}
		return err
	}
	return s.repo.EliminarPaso(ctx, pasoID)
}

func procesoToResponse(p *model.Proceso) *dto.ProcesoResponse {
	return &dto.ProcesoResponse{
		ID:          p.ID.String(),
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		Activo:      p.Activo,
	}
}

func pasoRutaToResponse(pp *model.ProductoProceso) *dto.PasoRutaResponse {
	resp := &dto.PasoRutaResponse{
		ID:                pp.ID.String(),
		ProductoID:        pp.ProductoID.String(),
		ProcesoID:         pp.ProcesoID.String(),
		Orden:             pp.Orden,
		TiempoEstimadoMin: pp.TiempoEstimadoMin,
	}
	if pp.Proceso != nil {
		resp.Proceso = &pp.Proceso.Nombre
	}
	return resp
}
