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

// ConsumoService manages manual entries of the consumption ledger. Every
// mutation reconciles the input's on-hand and reserved balances so that
// the ledger and the stock row never disagree.
type ConsumoService interface {
	ListarPorOrden(ctx context.Context, ordenID uuid.UUID) (*dto.ConsumosOrdenResponse, error)

	CrearMP(ctx context.Context, ordenID uuid.UUID, req dto.CrearConsumoRequest) (*dto.ConsumoResponse, error)
	ActualizarMP(ctx context.Context, id uuid.UUID, req dto.ActualizarConsumoRequest) (*dto.ConsumoResponse, error)
	EliminarMP(ctx context.Context, id uuid.UUID) error

	CrearComponente(ctx context.Context, ordenID uuid.UUID, req dto.CrearConsumoRequest) (*dto.ConsumoResponse, error)
	ActualizarComponente(ctx context.Context, id uuid.UUID, req dto.ActualizarConsumoRequest) (*dto.ConsumoResponse, error)
	EliminarComponente(ctx context.Context, id uuid.UUID) error
}

type consumoService struct {
	repo             repository.ConsumoRepository
	ordenRepo        repository.OrdenProduccionRepository
	materiaPrimaRepo repository.MateriaPrimaRepository
	productoRepo     repository.ProductoRepository
}

func NewConsumoService(
	repo repository.ConsumoRepository,
	ordenRepo repository.OrdenProduccionRepository,
	materiaPrimaRepo repository.MateriaPrimaRepository,
	productoRepo repository.ProductoRepository,
) ConsumoService {
	return &consumoService{
		repo:             repo,
		ordenRepo:        ordenRepo,
		materiaPrimaRepo: materiaPrimaRepo,
		productoRepo:     productoRepo,
	}
}

func (s *consumoService) ListarPorOrden(ctx context.Context, ordenID uuid.UUID) (*dto.ConsumosOrdenResponse, error) {
	if _, err := s.ordenRepo.FindByID(ctx, ordenID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("orden de producción")
		}
		return nil, err
	}
	mps, err := s.repo.ListMPByOrden(ctx, ordenID)
	if err != nil {
		return nil, err
	}
	comps, err := s.repo.ListCompByOrden(ctx, ordenID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ConsumosOrdenResponse{
		OrdenID:        ordenID.String(),
		MateriasPrimas: make([]dto.ConsumoResponse, len(mps)),
		Componentes:    make([]dto.ConsumoResponse, len(comps)),
	}
	for i := range mps {
		resp.MateriasPrimas[i] = *consumoMPToResponse(&mps[i])
	}
	for i := range comps {
		resp.Componentes[i] = *consumoCompToResponse(&comps[i])
	}
	return resp, nil
}

// CrearMP posts a manual raw material draw: withdraw the actual quantity
// from on-hand, release up to that much of the order's outstanding
// reservation on the same input and record the entry with its waste.
func (s *consumoService) CrearMP(ctx context.Context, ordenID uuid.UUID, req dto.CrearConsumoRequest) (*dto.ConsumoResponse, error) {
	insumoID, pasoID, teorica, err := s.validarCrear(ctx, ordenID, req)
	if err != nil {
		return nil, err
	}

	var creado *model.ConsumoMateriaPrima
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		mp, err := s.materiaPrimaRepo.FindByIDForUpdateTx(tx, insumoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFound("materia prima")
			}
			return err
		}
		if err := RetirarStock(&mp.Stock, mp.Nombre, req.CantidadReal); err != nil {
			return err
		}

		hermanos, err := s.repo.ListMPByOrdenInsumoTx(tx, ordenID, insumoID)
		if err != nil {
			return err
		}
		restante := ReservadoRestante(sumarConsumosMP(hermanos))
		LiberarStock(&mp.Stock, minDecimal(req.CantidadReal, restante))

		if err := s.materiaPrimaRepo.SaveTx(tx, mp); err != nil {
			return err
		}

		real := req.CantidadReal
		desperdicio := calcularDesperdicio(teorica, real)
		creado = &model.ConsumoMateriaPrima{
			OrdenProduccionID: ordenID,
			MateriaPrimaID:    insumoID,
			ProcesoOrdenID:    pasoID,
			CantidadTeorica:   teorica,
			CantidadReal:      &real,
			Desperdicio:       &desperdicio,
			Notas:             req.Notas,
		}
		return s.repo.CreateMPTx(tx, creado)
	})
	if err != nil {
		return nil, err
	}
	return consumoMPToResponse(creado), nil
}

// ActualizarMP reconciles both balances against the edited entry: the
// change in actual quantity moves on-hand, and the change in the order's
// outstanding reservation on that input moves reserved.
func (s *consumoService) ActualizarMP(ctx context.Context, id uuid.UUID, req dto.ActualizarConsumoRequest) (*dto.ConsumoResponse, error) {
	var actualizado *model.ConsumoMateriaPrima
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		consumo, err := s.repo.FindMPTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFound("consumo")
			}
			return err
		}

		mp, err := s.materiaPrimaRepo.FindByIDForUpdateTx(tx, consumo.MateriaPrimaID)
		if err != nil {
			return err
		}
		hermanos, err := s.repo.ListMPByOrdenInsumoTx(tx, consumo.OrdenProduccionID, consumo.MateriaPrimaID)
		if err != nil {
			return err
		}
		antes := ReservadoRestante(sumarConsumosMP(hermanos))

		realAntes := decimal.Zero
		if consumo.CantidadReal != nil {
			realAntes = *consumo.CantidadReal
		}
		if err := aplicarActualizacion(&consumo.CantidadTeorica, &consumo.CantidadReal, &consumo.Desperdicio, &consumo.Notas, req); err != nil {
			return err
		}
		realDespues := decimal.Zero
		if consumo.CantidadReal != nil {
			realDespues = *consumo.CantidadReal
		}

		if err := ajustarPorDelta(&mp.Stock, mp.Nombre, realAntes, realDespues); err != nil {
			return err
		}
		despues := ReservadoRestante(recalcularMP(hermanos, consumo))
		conciliarReserva(&mp.Stock, antes, despues)

		if err := s.materiaPrimaRepo.SaveTx(tx, mp); err != nil {
			return err
		}
		actualizado = consumo
		return s.repo.SaveMPTx(tx, consumo)
	})
	if err != nil {
		return nil, err
	}
	return consumoMPToResponse(actualizado), nil
}

// EliminarMP returns the entry's actual quantity to on-hand and
// re-reserves what the deletion leaves outstanding again.
func (s *consumoService) EliminarMP(ctx context.Context, id uuid.UUID) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		consumo, err := s.repo.FindMPTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFound("consumo")
			}
			return err
		}

		mp, err := s.materiaPrimaRepo.FindByIDForUpdateTx(tx, consumo.MateriaPrimaID)
		if err != nil {
			return err
		}
		hermanos, err := s.repo.ListMPByOrdenInsumoTx(tx, consumo.OrdenProduccionID, consumo.MateriaPrimaID)
		if err != nil {
			return err
		}
		antes := ReservadoRestante(sumarConsumosMP(hermanos))
		despues := ReservadoRestante(sumarConsumosMP(sinConsumoMP(hermanos, consumo.ID)))

		if consumo.CantidadReal != nil {
			DepositarStock(&mp.Stock, *consumo.CantidadReal)
		}
		conciliarReserva(&mp.Stock, antes, despues)

		if err := s.materiaPrimaRepo.SaveTx(tx, mp); err != nil {
			return err
		}
		return s.repo.DeleteMPTx(tx, consumo.ID)
	})
}

func (s *consumoService) CrearComponente(ctx context.Context, ordenID uuid.UUID, req dto.CrearConsumoRequest) (*dto.ConsumoResponse, error) {
	insumoID, pasoID, teorica, err := s.validarCrear(ctx, ordenID, req)
	if err != nil {
		return nil, err
	}

	var creado *model.ConsumoProductoComponente
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		comp, err := s.productoRepo.FindByIDForUpdateTx(tx, insumoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFound("producto componente")
			}
			return err
		}
		if err := RetirarStock(&comp.Stock, comp.Nombre, req.CantidadReal); err != nil {
			return err
		}

		hermanos, err := s.repo.ListCompByOrdenInsumoTx(tx, ordenID, insumoID)
		if err != nil {
			return err
		}
		restante := ReservadoRestante(sumarConsumosComp(hermanos))
		LiberarStock(&comp.Stock, minDecimal(req.CantidadReal, restante))

		if err := s.productoRepo.SaveTx(tx, comp); err != nil {
			return err
		}

		real := req.CantidadReal
		desperdicio := calcularDesperdicio(teorica, real)
		creado = &model.ConsumoProductoComponente{
			OrdenProduccionID: ordenID,
			ComponenteID:      insumoID,
			ProcesoOrdenID:    pasoID,
			CantidadTeorica:   teorica,
			CantidadReal:      &real,
			Desperdicio:       &desperdicio,
			Notas:             req.Notas,
		}
		return s.repo.CreateCompTx(tx, creado)
	})
	if err != nil {
		return nil, err
	}
	return consumoCompToResponse(creado), nil
}

func (s *consumoService) ActualizarComponente(ctx context.Context, id uuid.UUID, req dto.ActualizarConsumoRequest) (*dto.ConsumoResponse, error) {
	var actualizado *model.ConsumoProductoComponente
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		consumo, err := s.repo.FindCompTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFound("consumo")
			}
			return err
		}

		comp, err := s.productoRepo.FindByIDForUpdateTx(tx, consumo.ComponenteID)
		if err != nil {
			return err
		}
		hermanos, err := s.repo.ListCompByOrdenInsumoTx(tx, consumo.OrdenProduccionID, consumo.ComponenteID)
		if err != nil {
			return err
		}
		antes := ReservadoRestante(sumarConsumosComp(hermanos))

		realAntes := decimal.Zero
		if consumo.CantidadReal != nil {
			realAntes = *consumo.CantidadReal
		}
		if err := aplicarActualizacion(&consumo.CantidadTeorica, &consumo.CantidadReal, &consumo.Desperdicio, &consumo.Notas, req); err != nil {
			return err
		}
		realDespues := decimal.Zero
		if consumo.CantidadReal != nil {
			realDespues = *consumo.CantidadReal
		}

		if err := ajustarPorDelta(&comp.Stock, comp.Nombre, realAntes, realDespues); err != nil {
			return err
		}
		despues := ReservadoRestante(recalcularComp(hermanos, consumo))
		conciliarReserva(&comp.Stock, antes, despues)

		if err := s.productoRepo.SaveTx(tx, comp); err != nil {
			return err
		}
		actualizado = consumo
		return s.repo.SaveCompTx(tx, consumo)
	})
	if err != nil {
		return nil, err
	}
	return consumoCompToResponse(actualizado), nil
}

func (s *consumoService) EliminarComponente(ctx context.Context, id uuid.UUID) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		consumo, err := s.repo.FindCompTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFound("consumo")
			}
			return err
		}

		comp, err := s.productoRepo.FindByIDForUpdateTx(tx, consumo.ComponenteID)
		if err != nil {
			return err
		}
		hermanos, err := s.repo.ListCompByOrdenInsumoTx(tx, consumo.OrdenProduccionID, consumo.ComponenteID)
		if err != nil {
			return err
		}
		antes := ReservadoRestante(sumarConsumosComp(hermanos))
		despues := ReservadoRestante(sumarConsumosComp(sinConsumoComp(hermanos, consumo.ID)))

		if consumo.CantidadReal != nil {
			DepositarStock(&comp.Stock, *consumo.CantidadReal)
		}
		conciliarReserva(&comp.Stock, antes, despues)

		if err := s.productoRepo.SaveTx(tx, comp); err != nil {
			return err
		}
		return s.repo.DeleteCompTx(tx, consumo.ID)
	})
}

// validarCrear parses the request and rejects postings against orders that
// already reached a terminal state.
func (s *consumoService) validarCrear(ctx context.Context, ordenID uuid.UUID, req dto.CrearConsumoRequest) (uuid.UUID, *uuid.UUID, decimal.Decimal, error) {
	if !req.CantidadReal.IsPositive() {
		return uuid.Nil, nil, decimal.Zero, domain.NewValidation("cantidad_real debe ser positiva")
	}
	insumoID, err := uuid.Parse(req.InsumoID)
	if err != nil {
		return uuid.Nil, nil, decimal.Zero, domain.NewValidation("insumo_id inválido")
	}
	var pasoID *uuid.UUID
	if req.ProcesoOrdenID != nil {
		parsed, err := uuid.Parse(*req.ProcesoOrdenID)
		if err != nil {
			return uuid.Nil, nil, decimal.Zero, domain.NewValidation("proceso_orden_id inválido")
		}
		pasoID = &parsed
	}
	teorica := decimal.Zero
	if req.CantidadTeorica != nil {
		if req.CantidadTeorica.IsNegative() {
			return uuid.Nil, nil, decimal.Zero, domain.NewValidation("cantidad_teorica no puede ser negativa")
		}
		teorica = *req.CantidadTeorica
	}

	orden, err := s.ordenRepo.FindByID(ctx, ordenID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, nil, decimal.Zero, domain.NewNotFound("orden de producción")
		}
		return uuid.Nil, nil, decimal.Zero, err
	}
	if orden.Estado == model.OrdenProduccionCancelada || orden.Estado == model.OrdenProduccionCompletada {
		return uuid.Nil, nil, decimal.Zero, domain.NewConflict("la orden está en estado %s", orden.Estado)
	}
	if pasoID != nil {
		paso, err := s.ordenRepo.FindPaso(ctx, *pasoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return uuid.Nil, nil, decimal.Zero, domain.NewNotFound("proceso de orden")
			}
			return uuid.Nil, nil, decimal.Zero, err
		}
		if paso.OrdenProduccionID != ordenID {
			return uuid.Nil, nil, decimal.Zero, domain.NewValidation("el proceso no pertenece a la orden")
		}
	}
	return insumoID, pasoID, teorica, nil
}

// aplicarActualizacion mutates the entry fields in place and recomputes
// the waste whenever a quantity changed.
func aplicarActualizacion(teorica *decimal.Decimal, real **decimal.Decimal, desperdicio **decimal.Decimal, notas **string, req dto.ActualizarConsumoRequest) error {
	if req.CantidadTeorica != nil {
		if req.CantidadTeorica.IsNegative() {
			return domain.NewValidation("cantidad_teorica no puede ser negativa")
		}
		*teorica = *req.CantidadTeorica
	}
	if req.CantidadReal != nil {
		if !req.CantidadReal.IsPositive() {
			return domain.NewValidation("cantidad_real debe ser positiva")
		}
		v := *req.CantidadReal
		*real = &v
	}
	if req.Notas != nil {
		*notas = req.Notas
	}
	if (req.CantidadTeorica != nil || req.CantidadReal != nil) && *real != nil {
		d := calcularDesperdicio(*teorica, **real)
		*desperdicio = &d
	}
	return nil
}

// ajustarPorDelta moves on-hand by the change in actual quantity. A
// positive delta is an extra draw and must fit in on-hand.
func ajustarPorDelta(stock *model.Stock, recurso string, antes, despues decimal.Decimal) error {
	delta := despues.Sub(antes)
	switch {
	case delta.IsPositive():
		return RetirarStock(stock, recurso, delta)
	case delta.IsNegative():
		DepositarStock(stock, delta.Neg())
	}
	return nil
}

// conciliarReserva moves the reserved balance by the change in the
// order's outstanding reservation on the input.
func conciliarReserva(stock *model.Stock, antes, despues decimal.Decimal) {
	delta := despues.Sub(antes)
	switch {
	case delta.IsPositive():
		stock.StockReservado = stock.StockReservado.Add(delta)
	case delta.IsNegative():
		LiberarStock(stock, delta.Neg())
	}
}

// calcularDesperdicio is signed: drawing less than the theoretical
// quantity yields a negative figure, it is not floored at zero.
func calcularDesperdicio(teorica, real decimal.Decimal) decimal.Decimal {
	return real.Sub(teorica)
}

// recalcularMP sums the sibling rows with the edited entry substituted in.
func recalcularMP(hermanos []model.ConsumoMateriaPrima, editado *model.ConsumoMateriaPrima) (teoricos, reales decimal.Decimal) {
	for i := range hermanos {
		c := &hermanos[i]
		if c.ID == editado.ID {
			c = editado
		}
		teoricos = teoricos.Add(c.CantidadTeorica)
		if c.CantidadReal != nil {
			reales = reales.Add(*c.CantidadReal)
		}
	}
	return teoricos, reales
}

func recalcularComp(hermanos []model.ConsumoProductoComponente, editado *model.ConsumoProductoComponente) (teoricos, reales decimal.Decimal) {
	for i := range hermanos {
		c := &hermanos[i]
		if c.ID == editado.ID {
			c = editado
		}
		teoricos = teoricos.Add(c.CantidadTeorica)
		if c.CantidadReal != nil {
			reales = reales.Add(*c.CantidadReal)
		}
	}
	return teoricos, reales
}

func sinConsumoMP(rows []model.ConsumoMateriaPrima, id uuid.UUID) []model.ConsumoMateriaPrima {
	out := make([]model.ConsumoMateriaPrima, 0, len(rows))
	for i := range rows {
		if rows[i].ID != id {
			out = append(out, rows[i])
		}
	}
	return out
}

func sinConsumoComp(rows []model.ConsumoProductoComponente, id uuid.UUID) []model.ConsumoProductoComponente {
	out := make([]model.ConsumoProductoComponente, 0, len(rows))
	for i := range rows {
		if rows[i].ID != id {
			out = append(out, rows[i])
		}
	}
	return out
}

func consumoMPToResponse(c *model.ConsumoMateriaPrima) *dto.ConsumoResponse {
	resp := &dto.ConsumoResponse{
		ID:              c.ID.String(),
		OrdenID:         c.OrdenProduccionID.String(),
		InsumoID:        c.MateriaPrimaID.String(),
		Tipo:            "materia_prima",
		CantidadTeorica: c.CantidadTeorica,
		CantidadReal:    c.CantidadReal,
		Desperdicio:     c.Desperdicio,
		Notas:           c.Notas,
		CreatedAt:       c.CreatedAt.Format(time.RFC3339),
	}
	if c.MateriaPrima != nil {
		resp.Insumo = &c.MateriaPrima.Nombre
	}
	if c.ProcesoOrdenID != nil {
		id := c.ProcesoOrdenID.String()
		resp.ProcesoOrdenID = &id
	}
	return resp
}

func consumoCompToResponse(c *model.ConsumoProductoComponente) *dto.ConsumoResponse {
	resp := &dto.ConsumoResponse{
		ID:              c.ID.String(),
		OrdenID:         c.OrdenProduccionID.String(),
		InsumoID:        c.ComponenteID.String(),
		Tipo:            "componente",
		CantidadTeorica: c.CantidadTeorica,
		CantidadReal:    c.CantidadReal,
		Desperdicio:     c.Desperdicio,
		Notas:           c.Notas,
		CreatedAt:       c.CreatedAt.Format(time.RFC3339),
	}
	if c.Componente != nil {
		resp.Insumo = &c.Componente.Nombre
	}
	if c.ProcesoOrdenID != nil {
		id := c.ProcesoOrdenID.String()
		resp.ProcesoOrdenID = &id
	}
	return resp
}
