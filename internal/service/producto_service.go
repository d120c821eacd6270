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

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
	ConsultarPorCodigo(ctx context.Context, codigo string) (*dto.ConsultaPreciosResponse, error)
}

type productoService struct {
	repo          repository.ProductoRepository
	categoriaRepo repository.CategoriaRepository
}

func NewProductoService(repo repository.ProductoRepository, categoriaRepo repository.CategoriaRepository) ProductoService {
	return &productoService{repo: repo, categoriaRepo: categoriaRepo}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	categoriaID, err := uuid.Parse(req.CategoriaID)
	if err != nil {
		return nil, domain.NewValidation("categoria_id inválido")
	}
	if _, err := s.categoriaRepo.ObtenerPorID(ctx, categoriaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("categoria")
		}
		return nil, err
	}

	p := &model.Producto{
		Nombre:          req.Nombre,
		Codigo:          req.Codigo,
		SKU:             req.SKU,
		Foto:            req.Foto,
		CategoriaID:     categoriaID,
		Activo:          true,
		EsProductoFinal: true,
		PrecioCF:        req.PrecioCF,
		PrecioMinorista: req.PrecioMinorista,
		PrecioMayorista: req.PrecioMayorista,

		UnidadProduccion:    req.UnidadProduccion,
		LeadTimeObjetivoMin: req.LeadTimeObjetivoMin,
		VersionBom:          req.VersionBom,
		NotasProduccion:     req.NotasProduccion,
	}
	if req.EsProductoFinal != nil {
		p.EsProductoFinal = *req.EsProductoFinal
	}
	if req.StockActual != nil {
		p.StockActual = *req.StockActual
	}
	if req.StockMinimo != nil {
		p.StockMinimo = *req.StockMinimo
	}
	if req.PesoUnitarioEst != nil {
		p.PesoUnitarioEst = *req.PesoUnitarioEst
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *productoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("producto")
		}
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductoResponse, len(productos))
	for i := range productos {
		data[i] = *productoToResponse(&productos[i])
	}
	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &dto.ProductoListResponse{
		Data: data, Total: total, Page: filter.Page, Limit: filter.Limit, TotalPages: totalPages,
	}, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("producto")
		}
		return nil, err
	}

	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Codigo != nil {
		p.Codigo = *req.Codigo
	}
	if req.SKU != nil {
		p.SKU = req.SKU
	}
	if req.Foto != nil {
		p.Foto = req.Foto
	}
	if req.CategoriaID != nil {
		categoriaID, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, domain.NewValidation("categoria_id inválido")
		}
		p.CategoriaID = categoriaID
	}
	if req.EsProductoFinal != nil {
		p.EsProductoFinal = *req.EsProductoFinal
	}
	if req.PrecioCF != nil {
		p.PrecioCF = *req.PrecioCF
	}
	if req.PrecioMinorista != nil {
		p.PrecioMinorista = *req.PrecioMinorista
	}
	if req.PrecioMayorista != nil {
		p.PrecioMayorista = *req.PrecioMayorista
	}
	if req.StockMinimo != nil {
		p.StockMinimo = *req.StockMinimo
	}
	if req.UnidadProduccion != nil {
		p.UnidadProduccion = req.UnidadProduccion
	}
	if req.LeadTimeObjetivoMin != nil {
		p.LeadTimeObjetivoMin = req.LeadTimeObjetivoMin
	}
	if req.PesoUnitarioEst != nil {
		p.PesoUnitarioEst = *req.PesoUnitarioEst
	}
	if req.VersionBom != nil {
		p.VersionBom = req.VersionBom
	}
	if req.NotasProduccion != nil {
		p.NotasProduccion = req.NotasProduccion
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *productoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewNotFound("producto")
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *productoService) Reactivar(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivar(ctx, id)
}

func (s *productoService) ConsultarPorCodigo(ctx context.Context, codigo string) (*dto.ConsultaPreciosResponse, error) {
	p, err := s.repo.FindByCodigo(ctx, codigo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("producto")
		}
		return nil, err
	}
	categoria := ""
	if p.Categoria != nil {
		categoria = p.Categoria.Nombre
	}
	return &dto.ConsultaPreciosResponse{
		Nombre:          p.Nombre,
		PrecioCF:        p.PrecioCF,
		PrecioMinorista: p.PrecioMinorista,
		PrecioMayorista: p.PrecioMayorista,
		StockDisponible: p.Disponible(),
		Categoria:       categoria,
	}, nil
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	resp := &dto.ProductoResponse{
		ID:              p.ID.String(),
		Nombre:          p.Nombre,
		Codigo:          p.Codigo,
		SKU:             p.SKU,
		Foto:            p.Foto,
		CategoriaID:     p.CategoriaID.String(),
		EsProductoFinal: p.EsProductoFinal,
		PrecioCF:        p.PrecioCF,
		PrecioMinorista: p.PrecioMinorista,
		PrecioMayorista: p.PrecioMayorista,
		StockActual:     p.StockActual,
		StockReservado:  p.StockReservado,
		StockDisponible: p.Disponible(),
		StockMinimo:     p.StockMinimo,
		Activo:          p.Activo,

		UnidadProduccion:    p.UnidadProduccion,
		LeadTimeObjetivoMin: p.LeadTimeObjetivoMin,
		PesoUnitarioEst:     p.PesoUnitarioEst,
		VersionBom:          p.VersionBom,
		NotasProduccion:     p.NotasProduccion,
	}
	if p.Categoria != nil {
		resp.Categoria = &p.Categoria.Nombre
	}
	return resp
}
