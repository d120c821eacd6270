package service

import (
	"context"
	"errors"

	"github.com/Alexistodj124/CoprodaBackEnd/internal/domain"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/dto"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/model"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BomService interface {
	// Raw material lines
	AgregarMateriaPrima(ctx context.Context, productoID uuid.UUID, req dto.CrearLineaBomRequest) (*dto.LineaBomResponse, error)
	ActualizarLineaMP(ctx context.Context, lineaID uuid.UUID, req dto.ActualizarLineaBomRequest) (*dto.LineaBomResponse, error)
	EliminarLineaMP(ctx context.Context, lineaID uuid.UUID) error

	// Component (sub-product) lines
	AgregarComponente(ctx context.Context, productoID uuid.UUID, req dto.CrearLineaBomRequest) (*dto.LineaBomResponse, error)
	ActualizarLineaComp(ctx context.Context, lineaID uuid.UUID, req dto.ActualizarLineaBomRequest) (*dto.LineaBomResponse, error)
	EliminarLineaComp(ctx context.Context, lineaID uuid.UUID) error

	ObtenerBom(ctx context.Context, productoID uuid.UUID) (*dto.BomResponse, error)

	// Explotar computes the theoretical requirement of every input at the
	// given batch size and checks it against available stock.
	Explotar(ctx context.Context, productoID uuid.UUID, cantidad decimal.Decimal) (*dto.ExplosionResponse, error)
}

type bomService struct {
	repo             repository.BomRepository
	productoRepo     repository.ProductoRepository
	materiaPrimaRepo repository.MateriaPrimaRepository
	procesoRepo      repository.ProcesoRepository
}

func NewBomService(
	repo repository.BomRepository,
	productoRepo repository.ProductoRepository,
	materiaPrimaRepo repository.MateriaPrimaRepository,
	procesoRepo repository.ProcesoRepository,
) BomService {
	return &bomService{
		repo:             repo,
		productoRepo:     productoRepo,
		materiaPrimaRepo: materiaPrimaRepo,
		procesoRepo:      procesoRepo,
	}
}

func (s *bomService) AgregarMateriaPrima(ctx context.Context, productoID uuid.UUID, req dto.CrearLineaBomRequest) (*dto.LineaBomResponse, error) {
	if !req.CantidadNecesaria.IsPositive() {
		return nil, domain.NewValidation("cantidad_necesaria debe ser positiva")
	}
	if req.MermaEstandar.IsNegative() {
		return nil, domain.NewValidation("merma_estandar no puede ser negativa")
	}
	if _, err := s.productoRepo.FindByID(ctx, productoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("producto")
		}
		return nil, err
	}
	insumoID, err := uuid.Parse(req.InsumoID)
	if err != nil {
		return nil, domain.NewValidation("insumo_id inválido")
	}
	if _, err := s.materiaPrimaRepo.FindByID(ctx, insumoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("materia prima")
		}
		return nil, err
	}

	procesoID, err := s.resolverProcesoRuta(ctx, productoID, req.ProcesoID)
	if err != nil {
		return nil, err
	}

	existentes, err := s.repo.ListarLineasMP(ctx, productoID)
	if err != nil {
		return nil, err
	}
	for _, l := range existentes {
		if l.MateriaPrimaID == insumoID {
			return nil, domain.NewConflict("la materia prima ya tiene una línea en el BOM")
		}
	}

	l := &model.ProductoMateriaPrima{
		ProductoID:        productoID,
		MateriaPrimaID:    insumoID,
		ProcesoID:         procesoID,
		CantidadNecesaria: req.CantidadNecesaria,
		MermaEstandar:     req.MermaEstandar,
	}
	if err := s.repo.CrearLineaMP(ctx, l); err != nil {
		return nil, err
	}
	return lineaMPToResponse(l), nil
}

func (s *bomService) ActualizarLineaMP(ctx context.Context, lineaID uuid.UUID, req dto.ActualizarLineaBomRequest) (*dto.LineaBomResponse, error) {
	l, err := s.repo.ObtenerLineaMP(ctx, lineaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("línea de BOM")
		}
		return nil, err
	}
	if err := s.aplicarCambiosLinea(ctx, l.ProductoID, req, &l.ProcesoID, &l.CantidadNecesaria, &l.MermaEstandar); err != nil {
		return nil, err
	}
	if err := s.repo.ActualizarLineaMP(ctx, l); err != nil {
		return nil, err
	}
	return lineaMPToResponse(l), nil
}

func (s *bomService) EliminarLineaMP(ctx context.Context, lineaID uuid.UUID) error {
	if _, err := s.repo.ObtenerLineaMP(ctx, lineaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewNotFound("línea de BOM")
		}
		return err
	}
	return s.repo.EliminarLineaMP(ctx, lineaID)
}

func (s *bomService) AgregarComponente(ctx context.Context, productoID uuid.UUID, req dto.CrearLineaBomRequest) (*dto.LineaBomResponse, error) {
	if !req.CantidadNecesaria.IsPositive() {
		return nil, domain.NewValidation("cantidad_necesaria debe ser positiva")
	}
	if req.MermaEstandar.IsNegative() {
		return nil, domain.NewValidation("merma_estandar no puede ser negativa")
	}
	componenteID, err := uuid.Parse(req.InsumoID)
	if err != nil {
		return nil, domain.NewValidation("insumo_id inválido")
	}
	if componenteID == productoID {
		return nil, domain.NewValidation("un producto no puede ser componente de sí mismo")
	}
	if _, err := s.productoRepo.FindByID(ctx, productoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("producto")
		}
		return nil, err
	}
	if _, err := s.productoRepo.FindByID(ctx, componenteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("componente")
		}
		return nil, err
	}

	// Reject cycles: the candidate component may not reach the parent
	// through its own component lines.
	if err := s.verificarCiclo(ctx, productoID, componenteID); err != nil {
		return nil, err
	}

	procesoID, err := s.resolverProcesoRuta(ctx, productoID, req.ProcesoID)
	if err != nil {
		return nil, err
	}

	existentes, err := s.repo.ListarLineasComp(ctx, productoID)
	if err != nil {
		return nil, err
	}
	for _, l := range existentes {
		if l.ComponenteID == componenteID {
			return nil, domain.NewConflict("el componente ya tiene una línea en el BOM")
		}
	}

	l := &model.ProductoComponente{
		ProductoID:        productoID,
		ComponenteID:      componenteID,
		ProcesoID:         procesoID,
		CantidadNecesaria: req.CantidadNecesaria,
		MermaEstandar:     req.MermaEstandar,
	}
	if err := s.repo.CrearLineaComp(ctx, l); err != nil {
		return nil, err
	}
	return lineaCompToResponse(l), nil
}

func (s *bomService) ActualizarLineaComp(ctx context.Context, lineaID uuid.UUID, req dto.ActualizarLineaBomRequest) (*dto.LineaBomResponse, error) {
	l, err := s.repo.ObtenerLineaComp(ctx, lineaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("línea de BOM")
		}
		return nil, err
	}
	if err := s.aplicarCambiosLinea(ctx, l.ProductoID, req, &l.ProcesoID, &l.CantidadNecesaria, &l.MermaEstandar); err != nil {
		return nil, err
	}
	if err := s.repo.ActualizarLineaComp(ctx, l); err != nil {
		return nil, err
	}
	return lineaCompToResponse(l), nil
}

func (s *bomService) EliminarLineaComp(ctx context.Context, lineaID uuid.UUID) error {
	if _, err := s.repo.ObtenerLineaComp(ctx, lineaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewNotFound("línea de BOM")
		}
		return err
	}
	return s.repo.EliminarLineaComp(ctx, lineaID)
}

func (s *bomService) ObtenerBom(ctx context.Context, productoID uuid.UUID) (*dto.BomResponse, error) {
	if _, err := s.productoRepo.FindByID(ctx, productoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("producto")
		}
		return nil, err
	}
	mps, err := s.repo.ListarLineasMP(ctx, productoID)
	if err != nil {
		return nil, err
	}
	comps, err := s.repo.ListarLineasComp(ctx, productoID)
	if err != nil {
		return nil, err
	}

	resp := &dto.BomResponse{
		ProductoID:     productoID.String(),
		MateriasPrimas: make([]dto.LineaBomResponse, len(mps)),
		Componentes:    make([]dto.LineaBomResponse, len(comps)),
	}
	for i := range mps {
		resp.MateriasPrimas[i] = *lineaMPToResponse(&mps[i])
	}
	for i := range comps {
		resp.Componentes[i] = *lineaCompToResponse(&comps[i])
	}
	return resp, nil
}

func (s *bomService) Explotar(ctx context.Context, productoID uuid.UUID, cantidad decimal.Decimal) (*dto.ExplosionResponse, error) {
	if !cantidad.IsPositive() {
		return nil, domain.NewValidation("cantidad debe ser positiva")
	}
	bom, err := s.ObtenerBom(ctx, productoID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ExplosionResponse{
		ProductoID: productoID.String(),
		Cantidad:   cantidad,
		Fabricable: true,
	}

	for _, l := range bom.MateriasPrimas {
		insumoID, _ := uuid.Parse(l.InsumoID)
		mp, err := s.materiaPrimaRepo.FindByID(ctx, insumoID)
		if err != nil {
			return nil, err
		}
		teorico := CalcularTeorico(l.CantidadNecesaria, l.MermaEstandar, cantidad)
		suficiente := !mp.Disponible().LessThan(teorico)
		if !suficiente {
			resp.Fabricable = false
		}
		resp.Requerimientos = append(resp.Requerimientos, dto.RequerimientoResponse{
			InsumoID:        l.InsumoID,
			Insumo:          mp.Nombre,
			Tipo:            "materia_prima",
			CantidadTeorica: teorico,
			Disponible:      mp.Disponible(),
			Suficiente:      suficiente,
		})
	}

	for _, l := range bom.Componentes {
		insumoID, _ := uuid.Parse(l.InsumoID)
		comp, err := s.productoRepo.FindByID(ctx, insumoID)
		if err != nil {
			return nil, err
		}
		teorico := CalcularTeorico(l.CantidadNecesaria, l.MermaEstandar, cantidad)
		suficiente := !comp.Disponible().LessThan(teorico)
		if !suficiente {
			resp.Fabricable = false
		}
		resp.Requerimientos = append(resp.Requerimientos, dto.RequerimientoResponse{
			InsumoID:        l.InsumoID,
			Insumo:          comp.Nombre,
			Tipo:            "componente",
			CantidadTeorica: teorico,
			Disponible:      comp.Disponible(),
			Suficiente:      suficiente,
		})
	}

	return resp, nil
}

// resolverProcesoRuta validates that an optional proceso binding exists and
// belongs to the product's route, returning the parsed id.
func (s *bomService) resolverProcesoRuta(ctx context.Context, productoID uuid.UUID, procesoIDStr *string) (*uuid.UUID, error) {
	if procesoIDStr == nil {
		return nil, nil
	}
	procesoID, err := uuid.Parse(*procesoIDStr)
	if err != nil {
		return nil, domain.NewValidation("proceso_id inválido")
	}
	ruta, err := s.procesoRepo.ListarRuta(ctx, productoID)
	if err != nil {
		return nil, err
	}
	for _, paso := range ruta {
		if paso.ProcesoID == procesoID {
			return &procesoID, nil
		}
	}
	return nil, domain.NewValidation("el proceso no forma parte de la ruta del producto")
}

func (s *bomService) aplicarCambiosLinea(ctx context.Context, productoID uuid.UUID, req dto.ActualizarLineaBomRequest, procesoID **uuid.UUID, necesaria, merma *decimal.Decimal) error {
	if req.CantidadNecesaria != nil {
		if !req.CantidadNecesaria.IsPositive() {
			return domain.NewValidation("cantidad_necesaria debe ser positiva")
		}
		*necesaria = *req.CantidadNecesaria
	}
	if req.MermaEstandar != nil {
		if req.MermaEstandar.IsNegative() {
			return domain.NewValidation("merma_estandar no puede ser negativa")
		}
		*merma = *req.MermaEstandar
	}
	if req.ProcesoID != nil {
		resuelto, err := s.resolverProcesoRuta(ctx, productoID, req.ProcesoID)
		if err != nil {
			return err
		}
		*procesoID = resuelto
	}
	return nil
}

// verificarCiclo walks the candidate component's BOM depth-first looking
// for the parent product.
func (s *bomService) verificarCiclo(ctx context.Context, padreID, componenteID uuid.UUID) error {
	visitados := map[uuid.UUID]bool{}
	var visitar func(id uuid.UUID) error
	visitar = func(id uuid.UUID) error {
		if id == padreID {
			return domain.NewValidation("la línea crearía un ciclo en el BOM")
		}
		if visitados[id] {
			return nil
		}
		visitados[id] = true
		lineas, err := s.repo.ListarLineasComp(ctx, id)
		if err != nil {
			return err
		}
		for _, l := range lineas {
			if err := visitar(l.ComponenteID); err != nil {
				return err
			}
		}
		return nil
	}
	return visitar(componenteID)
}

func lineaMPToResponse(l *model.ProductoMateriaPrima) *dto.LineaBomResponse {
	resp := &dto.LineaBomResponse{
		ID:                      l.ID.String(),
		ProductoID:              l.ProductoID.String(),
		InsumoID:                l.MateriaPrimaID.String(),
		CantidadNecesaria:       l.CantidadNecesaria,
		MermaEstandar:           l.MermaEstandar,
		CantidadTeoricaUnitaria: l.CantidadNecesaria.Add(l.MermaEstandar),
	}
	if l.MateriaPrima != nil {
		resp.Insumo = &l.MateriaPrima.Nombre
	}
	if l.ProcesoID != nil {
		id := l.ProcesoID.String()
		resp.ProcesoID = &id
	}
	return resp
}

func lineaCompToResponse(l *model.ProductoComponente) *dto.LineaBomResponse {
	resp := &dto.LineaBomResponse{
		ID:                      l.ID.String(),
		ProductoID:              l.ProductoID.String(),
		InsumoID:                l.ComponenteID.String(),
		CantidadNecesaria:       l.CantidadNecesaria,
		MermaEstandar:           l.MermaEstandar,
		CantidadTeoricaUnitaria: l.CantidadNecesaria.Add(l.MermaEstandar),
	}
	if l.Componente != nil {
		resp.Insumo = &l.Componente.Nombre
	}
	if l.ProcesoID != nil {
		id := l.ProcesoID.String()
		resp.ProcesoID = &id
	}
	return resp
}
