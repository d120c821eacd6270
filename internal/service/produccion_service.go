package service

import (
	"context"
	"errors"
	"time"

	"github.com/Alexistodj124/CoprodaBackEnd/internal/domain"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/dto"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/model"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProduccionService drives the production order state machine and, through
// the step actions, the per-process auto-consumption postings.
type ProduccionService interface {
	Crear(ctx context.Context, req dto.CrearOrdenProduccionRequest) (*dto.OrdenProduccionResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.OrdenProduccionResponse, error)
	Listar(ctx context.Context, filter dto.OrdenProduccionFilter) (*dto.OrdenProduccionListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarOrdenProduccionRequest) (*dto.OrdenProduccionResponse, error)

	Iniciar(ctx context.Context, id uuid.UUID) (*dto.OrdenProduccionResponse, error)
	Pausar(ctx context.Context, id uuid.UUID) (*dto.OrdenProduccionResponse, error)
	Cancelar(ctx context.Context, id uuid.UUID) (*dto.OrdenProduccionResponse, error)
	Cerrar(ctx context.Context, id uuid.UUID, req dto.CerrarOrdenRequest) (*dto.OrdenProduccionResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error

	IniciarPaso(ctx context.Context, pasoID uuid.UUID) (*dto.PasoOrdenResponse, error)
	PausarPaso(ctx context.Context, pasoID uuid.UUID) (*dto.PasoOrdenResponse, error)
	CompletarPaso(ctx context.Context, pasoID uuid.UUID, req dto.CompletarPasoRequest) (*dto.PasoOrdenResponse, error)
}

type produccionService struct {
	repo             repository.OrdenProduccionRepository
	productoRepo     repository.ProductoRepository
	materiaPrimaRepo repository.MateriaPrimaRepository
	bomRepo          repository.BomRepository
	procesoRepo      repository.ProcesoRepository
	consumoRepo      repository.ConsumoRepository
}

func NewProduccionService(
	repo repository.OrdenProduccionRepository,
	productoRepo repository.ProductoRepository,
	materiaPrimaRepo repository.MateriaPrimaRepository,
	bomRepo repository.BomRepository,
	procesoRepo repository.ProcesoRepository,
	consumoRepo repository.ConsumoRepository,
) ProduccionService {
	return &produccionService{
		repo:             repo,
		productoRepo:     productoRepo,
		materiaPrimaRepo: materiaPrimaRepo,
		bomRepo:          bomRepo,
		procesoRepo:      procesoRepo,
		consumoRepo:      consumoRepo,
	}
}

// Crear validates the BOM and route, checks availability of every input,
// reserves the theoretical quantities and materializes the consumption
// entries and step instances — all inside one transaction. A shortfall on
// the last line rolls back every reservation made before it.
func (s *produccionService) Crear(ctx context.Context, req dto.CrearOrdenProduccionRequest) (*dto.OrdenProduccionResponse, error) {
	if !req.CantidadPlaneada.IsPositive() {
		return nil, domain.NewValidation("cantidad_planeada debe ser positiva")
	}
	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, domain.NewValidation("producto_id inválido")
	}
	if _, err := s.productoRepo.FindByID(ctx, productoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("producto")
		}
		return nil, err
	}

	codigo, err := s.repo.NextCodigo(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	estado := model.OrdenProduccionPlanificada
	if req.Estado != nil {
		estado = *req.Estado
	}

	var ordenID uuid.UUID
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		ruta, err := s.procesoRepo.ListarRutaTx(tx, productoID)
		if err != nil {
			return err
		}
		if len(ruta) == 0 {
			return domain.NewValidation("el producto no tiene ruta de procesos definida")
		}
		lineasMP, err := s.bomRepo.ListarLineasMPTx(tx, productoID)
		if err != nil {
			return err
		}
		lineasComp, err := s.bomRepo.ListarLineasCompTx(tx, productoID)
		if err != nil {
			return err
		}
		if len(lineasMP)+len(lineasComp) == 0 {
			return domain.NewValidation("el producto no tiene BOM definido")
		}

		orden := &model.OrdenProduccion{
			CodigoOrden:      codigo,
			ProductoID:       productoID,
			CantidadPlaneada: req.CantidadPlaneada,
			Estado:           estado,
			Notas:            req.Notas,
		}
		if req.Prioridad != nil {
			orden.Prioridad = *req.Prioridad
		}
		if err := s.repo.CreateTx(tx, orden); err != nil {
			return err
		}
		ordenID = orden.ID

		for i := range lineasMP {
			l := &lineasMP[i]
			teorico := CalcularTeorico(l.CantidadNecesaria, l.MermaEstandar, req.CantidadPlaneada)
			mp, err := s.materiaPrimaRepo.FindByIDForUpdateTx(tx, l.MateriaPrimaID)
			if err != nil {
				return err
			}
			if err := ReservarStock(&mp.Stock, mp.Nombre, teorico); err != nil {
				return err
			}
			if err := s.materiaPrimaRepo.SaveTx(tx, mp); err != nil {
				return err
			}
			consumo := &model.ConsumoMateriaPrima{
				OrdenProduccionID: orden.ID,
				MateriaPrimaID:    l.MateriaPrimaID,
				CantidadTeorica:   teorico,
			}
			if err := s.consumoRepo.CreateMPTx(tx, consumo); err != nil {
				return err
			}
		}

		for i := range lineasComp {
			l := &lineasComp[i]
			teorico := CalcularTeorico(l.CantidadNecesaria, l.MermaEstandar, req.CantidadPlaneada)
			comp, err := s.productoRepo.FindByIDForUpdateTx(tx, l.ComponenteID)
			if err != nil {
				return err
			}
			if err := ReservarStock(&comp.Stock, comp.Nombre, teorico); err != nil {
				return err
			}
			if err := s.productoRepo.SaveTx(tx, comp); err != nil {
				return err
			}
			consumo := &model.ConsumoProductoComponente{
				OrdenProduccionID: orden.ID,
				ComponenteID:      l.ComponenteID,
				CantidadTeorica:   teorico,
			}
			if err := s.consumoRepo.CreateCompTx(tx, consumo); err != nil {
				return err
			}
		}

		for i := range ruta {
			paso := &model.ProcesoOrden{
				OrdenProduccionID: orden.ID,
				ProcesoID:         ruta[i].ProcesoID,
				Orden:             ruta[i].Orden,
				Estado:            model.ProcesoOrdenPendiente,
			}
			if err := s.repo.CreatePasoTx(tx, paso); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Obtener(ctx, ordenID)
}

func (s *produccionService) Obtener(ctx context.Context, id uuid.UUID) (*dto.OrdenProduccionResponse, error) {
	orden, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("orden de producción")
		}
		return nil, err
	}
	return ordenProduccionToResponse(orden, true), nil
}

func (s *produccionService) Listar(ctx context.Context, filter dto.OrdenProduccionFilter) (*dto.OrdenProduccionListResponse, error) {
	list, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.OrdenProduccionResponse, len(list))
	for i := range list {
		data[i] = *ordenProduccionToResponse(&list[i], false)
	}
	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &dto.OrdenProduccionListResponse{
		Data: data, Total: total, Page: filter.Page, Limit: filter.Limit, TotalPages: totalPages,
	}, nil
}

func (s *produccionService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarOrdenProduccionRequest) (*dto.OrdenProduccionResponse, error) {
	orden, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("orden de producción")
		}
		return nil, err
	}
	if req.Estado != nil {
		// Terminal states only through cancelar/cerrar: they carry the
		// release and settlement side effects.
		if *req.Estado == model.OrdenProduccionCancelada || *req.Estado == model.OrdenProduccionCompletada {
			return nil, domain.NewValidation("use las acciones cancelar/cerrar para estados terminales")
		}
		orden.Estado = *req.Estado
	}
	if req.Prioridad != nil {
		orden.Prioridad = *req.Prioridad
	}
	if req.Notas != nil {
		orden.Notas = req.Notas
	}
	if err := s.repo.Update(ctx, orden); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, id)
}

func (s *produccionService) Iniciar(ctx context.Context, id uuid.UUID) (*dto.OrdenProduccionResponse, error) {
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		orden, err := s.repo.FindByIDForUpdateTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFound("orden de producción")
			}
			return err
		}
		if orden.Estado == model.OrdenProduccionCancelada || orden.Estado == model.OrdenProduccionCompletada {
			return domain.NewConflict("la orden está en estado %s", orden.Estado)
		}
		iniciarOrden(orden)
		return s.repo.SaveTx(tx, orden)
	})
	if err != nil {
		return nil, err
	}
	return s.Obtener(ctx, id)
}

func (s *produccionService) Pausar(ctx context.Context, id uuid.UUID) (*dto.OrdenProduccionResponse, error) {
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		orden, err := s.repo.FindByIDForUpdateTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFound("orden de producción")
			}
			return err
		}
		if orden.Estado != model.OrdenProduccionEnProceso {
			return domain.NewConflict("solo una orden EN_PROCESO puede pausarse (estado actual: %s)", orden.Estado)
		}
		orden.Estado = model.OrdenProduccionPausada
		return s.repo.SaveTx(tx, orden)
	})
	if err != nil {
		return nil, err
	}
	return s.Obtener(ctx, id)
}

// Cancelar releases every outstanding reservation (per consumption entry,
// theoretical minus actual, floored at zero) and parks the order in
// CANCELADA.
func (s *produccionService) Cancelar(ctx context.Context, id uuid.UUID) (*dto.OrdenProduccionResponse, error) {
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		orden, err := s.repo.FindByIDForUpdateTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFound("orden de producción")
			}
			return err
		}
		if orden.Estado == model.OrdenProduccionCancelada {
			return domain.NewConflict("la orden ya está cancelada")
		}
		if err := s.liberarReservasOrdenTx(tx, orden.ID); err != nil {
			return err
		}
		orden.Estado = model.OrdenProduccionCancelada
		if orden.FechaFin == nil {
			now := time.Now()
			orden.FechaFin = &now
		}
		return s.repo.SaveTx(tx, orden)
	})
	if err != nil {
		return nil, err
	}
	return s.Obtener(ctx, id)
}

func (s *produccionService) Cerrar(ctx context.Context, id uuid.UUID, req dto.CerrarOrdenRequest) (*dto.OrdenProduccionResponse, error) {
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		orden, err := s.repo.FindByIDForUpdateTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFound("orden de producción")
			}
			return err
		}
		if orden.Estado == model.OrdenProduccionCancelada {
			return domain.NewConflict("una orden cancelada no puede cerrarse")
		}

		if req.CantidadProducida != nil {
			if req.CantidadProducida.IsNegative() {
				return domain.NewValidation("cantidad_producida no puede ser negativa")
			}
			orden.CantidadProducida = *req.CantidadProducida
		} else {
			// Default to the last route step's recorded output.
			pasos, err := s.repo.ListPasosTx(tx, orden.ID)
			if err != nil {
				return err
			}
			if len(pasos) > 0 {
				ultimo := pasos[len(pasos)-1]
				if ultimo.CantidadSalida != nil {
					orden.CantidadProducida = *ultimo.CantidadSalida
				}
			}
		}

		orden.Estado = model.OrdenProduccionCompletada
		if orden.FechaFin == nil {
			now := time.Now()
			orden.FechaFin = &now
		}
		return s.repo.SaveTx(tx, orden)
	})
	if err != nil {
		return nil, err
	}
	return s.Obtener(ctx, id)
}

func (s *produccionService) Eliminar(ctx context.Context, id uuid.UUID) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		orden, err := s.repo.FindByIDForUpdateTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFound("orden de producción")
			}
			return err
		}
		switch orden.Estado {
		case model.OrdenProduccionBorrador, model.OrdenProduccionPlanificada, model.OrdenProduccionCancelada:
		default:
			return domain.NewConflict("la orden tiene actividad registrada (estado %s)", orden.Estado)
		}
		// A cancelled order already released its reservations.
		if orden.Estado != model.OrdenProduccionCancelada {
			if err := s.liberarReservasOrdenTx(tx, orden.ID); err != nil {
				return err
			}
		}
		if err := s.consumoRepo.DeleteMPByOrdenTx(tx, orden.ID); err != nil {
			return err
		}
		if err := s.consumoRepo.DeleteCompByOrdenTx(tx, orden.ID); err != nil {
			return err
		}
		return s.repo.DeleteTx(tx, orden.ID)
	})
}

// liberarReservasOrdenTx walks every consumption entry of the order and
// releases the unconsumed remainder (teórica − real, per entry, floored at
// zero) from the input's reservation.
func (s *produccionService) liberarReservasOrdenTx(tx *gorm.DB, ordenID uuid.UUID) error {
	mps, err := s.consumoRepo.ListMPByOrdenTx(tx, ordenID)
	if err != nil {
		return err
	}
	for i := range mps {
		restante := remanente(mps[i].CantidadTeorica, mps[i].CantidadReal)
		if !restante.IsPositive() {
			continue
		}
		mp, err := s.materiaPrimaRepo.FindByIDForUpdateTx(tx, mps[i].MateriaPrimaID)
		if err != nil {
			return err
		}
		LiberarStock(&mp.Stock, restante)
		if err := s.materiaPrimaRepo.SaveTx(tx, mp); err != nil {
			return err
		}
	}

	comps, err := s.consumoRepo.ListCompByOrdenTx(tx, ordenID)
	if err != nil {
		return err
	}
	for i := range comps {
		restante := remanente(comps[i].CantidadTeorica, comps[i].CantidadReal)
		if !restante.IsPositive() {
			continue
		}
		comp, err := s.productoRepo.FindByIDForUpdateTx(tx, comps[i].ComponenteID)
		if err != nil {
			return err
		}
		LiberarStock(&comp.Stock, restante)
		if err := s.productoRepo.SaveTx(tx, comp); err != nil {
			return err
		}
	}
	return nil
}

// remanente is the unconsumed part of one entry; a missing actual counts
// as zero consumed.
func remanente(teorica decimal.Decimal, real *decimal.Decimal) decimal.Decimal {
	consumido := decimal.Zero
	if real != nil {
		consumido = *real
	}
	restante := teorica.Sub(consumido)
	if restante.IsNegative() {
		return decimal.Zero
	}
	return restante
}

func iniciarOrden(orden *model.OrdenProduccion) {
	orden.Estado = model.OrdenProduccionEnProceso
	if orden.FechaInicio == nil {
		now := time.Now()
		orden.FechaInicio = &now
	}
}

func ordenProduccionToResponse(o *model.OrdenProduccion, conPasos bool) *dto.OrdenProduccionResponse {
	resp := &dto.OrdenProduccionResponse{
		ID:                o.ID.String(),
		CodigoOrden:       o.CodigoOrden,
		ProductoID:        o.ProductoID.String(),
		CantidadPlaneada:  o.CantidadPlaneada,
		CantidadProducida: o.CantidadProducida,
		Estado:            o.Estado,
		Prioridad:         o.Prioridad,
		Notas:             o.Notas,
		CreatedAt:         o.CreatedAt.Format(time.RFC3339),
	}
	if o.Producto != nil {
		resp.Producto = &o.Producto.Nombre
	}
	if o.FechaInicio != nil {
		f := o.FechaInicio.Format(time.RFC3339)
		resp.FechaInicio = &f
	}
	if o.FechaFin != nil {
		f := o.FechaFin.Format(time.RFC3339)
		resp.FechaFin = &f
	}
	if conPasos {
		resp.Procesos = make([]dto.PasoOrdenResponse, len(o.Procesos))
		for i := range o.Procesos {
			resp.Procesos[i] = *pasoOrdenToResponse(&o.Procesos[i])
		}
	}
	return resp
}

func pasoOrdenToResponse(p *model.ProcesoOrden) *dto.PasoOrdenResponse {
	resp := &dto.PasoOrdenResponse{
		ID:              p.ID.String(),
		ProcesoID:       p.ProcesoID.String(),
		Orden:           p.Orden,
		Estado:          p.Estado,
		CantidadEntrada: p.CantidadEntrada,
		CantidadSalida:  p.CantidadSalida,
		CantidadPerdida: p.CantidadPerdida,
		MotivoPerdida:   p.MotivoPerdida,
		Notas:           p.Notas,
	}
	if p.Proceso != nil {
		resp.Proceso = &p.Proceso.Nombre
	}
	if p.FechaInicio != nil {
		f := p.FechaInicio.Format(time.RFC3339)
		resp.FechaInicio = &f
	}
	if p.FechaFin != nil {
		f := p.FechaFin.Format(time.RFC3339)
		resp.FechaFin = &f
	}
	return resp
}
