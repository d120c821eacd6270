package service

import (
	"context"
	"errors"
	"time"

	"github.com/Alexistodj124/CoprodaBackEnd/internal/domain"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/dto"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Step actions of the process route executor. They live on the production
// service because completing a step can close the whole order.

// IniciarPaso enforces the predecessor gate: the previous route step must
// either be COMPLETADO or have a positive recorded output.
func (s *produccionService) IniciarPaso(ctx context.Context, pasoID uuid.UUID) (*dto.PasoOrdenResponse, error) {
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		paso, err := s.repo.FindPasoForUpdateTx(tx, pasoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFound("proceso de orden")
			}
			return err
		}
		if paso.Estado == model.ProcesoOrdenCompletado {
			return domain.NewConflict("el proceso ya está completado")
		}

		pasos, err := s.repo.ListPasosTx(tx, paso.OrdenProduccionID)
		if err != nil {
			return err
		}
		if anterior := buscarPaso(pasos, paso.Orden-1); anterior != nil {
			if anterior.Estado != model.ProcesoOrdenCompletado &&
				(anterior.CantidadSalida == nil || !anterior.CantidadSalida.IsPositive()) {
				return domain.NewValidation("debe registrar la salida del proceso anterior antes de iniciar")
			}
		}

		paso.Estado = model.ProcesoOrdenEnProceso
		if paso.FechaInicio == nil {
			now := time.Now()
			paso.FechaInicio = &now
		}
		if err := s.repo.SavePasoTx(tx, paso); err != nil {
			return err
		}

		// Starting the first step drags the order along.
		orden, err := s.repo.FindByIDForUpdateTx(tx, paso.OrdenProduccionID)
		if err != nil {
			return err
		}
		if orden.Estado != model.OrdenProduccionEnProceso &&
			orden.Estado != model.OrdenProduccionCancelada &&
			orden.Estado != model.OrdenProduccionCompletada {
			iniciarOrden(orden)
			if err := s.repo.SaveTx(tx, orden); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.obtenerPaso(ctx, pasoID)
}

func (s *produccionService) PausarPaso(ctx context.Context, pasoID uuid.UUID) (*dto.PasoOrdenResponse, error) {
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		paso, err := s.repo.FindPasoForUpdateTx(tx, pasoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFound("proceso de orden")
			}
			return err
		}
		if paso.Estado != model.ProcesoOrdenEnProceso {
			return domain.NewConflict("solo un proceso EN_PROCESO puede pausarse (estado actual: %s)", paso.Estado)
		}
		paso.Estado = model.ProcesoOrdenPausado
		return s.repo.SavePasoTx(tx, paso)
	})
	if err != nil {
		return nil, err
	}
	return s.obtenerPaso(ctx, pasoID)
}

// CompletarPaso records the step quantities and, unless parcial, closes
// the step, posts the auto-consumption of every BOM line bound to its
// process and closes the order when it was the last open step.
func (s *produccionService) CompletarPaso(ctx context.Context, pasoID uuid.UUID, req dto.CompletarPasoRequest) (*dto.PasoOrdenResponse, error) {
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		paso, err := s.repo.FindPasoForUpdateTx(tx, pasoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFound("proceso de orden")
			}
			return err
		}
		if paso.Estado != model.ProcesoOrdenEnProceso && paso.Estado != model.ProcesoOrdenPausado {
			return domain.NewConflict("el proceso no está en ejecución (estado actual: %s)", paso.Estado)
		}

		if err := aplicarCantidadesPaso(paso, req); err != nil {
			return err
		}

		pasos, err := s.repo.ListPasosTx(tx, paso.OrdenProduccionID)
		if err != nil {
			return err
		}
		if anterior := buscarPaso(pasos, paso.Orden-1); anterior != nil {
			if paso.CantidadEntrada != nil && anterior.CantidadSalida != nil &&
				paso.CantidadEntrada.GreaterThan(*anterior.CantidadSalida) {
				return domain.NewValidation("la entrada (%s) no puede superar la salida del proceso anterior (%s)",
					paso.CantidadEntrada.String(), anterior.CantidadSalida.String())
			}
		}

		// Derived loss only when both operands are known and no explicit
		// value came in; otherwise the field stays unset.
		if req.CantidadPerdida == nil && paso.CantidadEntrada != nil && paso.CantidadSalida != nil {
			perdida := paso.CantidadEntrada.Sub(*paso.CantidadSalida)
			if perdida.IsNegative() {
				perdida = decimal.Zero
			}
			paso.CantidadPerdida = &perdida
		}

		if req.Parcial {
			// Interim reading: persist quantities without closing the step.
			return s.repo.SavePasoTx(tx, paso)
		}

		paso.Estado = model.ProcesoOrdenCompletado
		if paso.FechaFin == nil {
			now := time.Now()
			paso.FechaFin = &now
		}
		if err := s.repo.SavePasoTx(tx, paso); err != nil {
			return err
		}

		orden, err := s.repo.FindByIDForUpdateTx(tx, paso.OrdenProduccionID)
		if err != nil {
			return err
		}

		base := paso.CantidadBase(orden.CantidadPlaneada)
		if base.IsPositive() {
			if err := s.autoConsumirPasoTx(tx, orden, paso, base); err != nil {
				return err
			}
		}

		return s.cerrarOrdenSiTerminaTx(tx, orden, paso)
	})
	if err != nil {
		return nil, err
	}
	return s.obtenerPaso(ctx, pasoID)
}

// autoConsumirPasoTx posts one idempotent consumption per BOM line bound
// to the completed step's process, scaled to the step base quantity.
func (s *produccionService) autoConsumirPasoTx(tx *gorm.DB, orden *model.OrdenProduccion, paso *model.ProcesoOrden, base decimal.Decimal) error {
	lineasMP, err := s.bomRepo.ListarLineasMPTx(tx, orden.ProductoID)
	if err != nil {
		return err
	}
	for i := range lineasMP {
		l := &lineasMP[i]
		if l.ProcesoID == nil || *l.ProcesoID != paso.ProcesoID {
			continue
		}
		teorico := CalcularTeorico(l.CantidadNecesaria, l.MermaEstandar, base)
		if err := s.registrarAutoMPTx(tx, orden.ID, paso.ID, l.MateriaPrimaID, teorico); err != nil {
			return err
		}
	}

	lineasComp, err := s.bomRepo.ListarLineasCompTx(tx, orden.ProductoID)
	if err != nil {
		return err
	}
	for i := range lineasComp {
		l := &lineasComp[i]
		if l.ProcesoID == nil || *l.ProcesoID != paso.ProcesoID {
			continue
		}
		teorico := CalcularTeorico(l.CantidadNecesaria, l.MermaEstandar, base)
		if err := s.registrarAutoCompTx(tx, orden.ID, paso.ID, l.ComponenteID, teorico); err != nil {
			return err
		}
	}
	return nil
}

// registrarAutoMPTx is a no-op when an entry for (orden, paso, materia
// prima) already exists. Otherwise it withdraws the theoretical quantity
// from on-hand and releases min(actual, outstanding reservation).
func (s *produccionService) registrarAutoMPTx(tx *gorm.DB, ordenID, pasoID, materiaPrimaID uuid.UUID, teorico decimal.Decimal) error {
	existente, err := s.consumoRepo.FindMPExistenteTx(tx, ordenID, &pasoID, materiaPrimaID)
	if err != nil {
		return err
	}
	if existente != nil {
		return nil
	}

	mp, err := s.materiaPrimaRepo.FindByIDForUpdateTx(tx, materiaPrimaID)
	if err != nil {
		return err
	}
	if err := RetirarStock(&mp.Stock, mp.Nombre, teorico); err != nil {
		return err
	}

	hermanos, err := s.consumoRepo.ListMPByOrdenInsumoTx(tx, ordenID, materiaPrimaID)
	if err != nil {
		return err
	}
	restante := ReservadoRestante(sumarConsumosMP(hermanos))
	LiberarStock(&mp.Stock, minDecimal(teorico, restante))

	if err := s.materiaPrimaRepo.SaveTx(tx, mp); err != nil {
		return err
	}

	cero := decimal.Zero
	real := teorico
	return s.consumoRepo.CreateMPTx(tx, &model.ConsumoMateriaPrima{
		OrdenProduccionID: ordenID,
		MateriaPrimaID:    materiaPrimaID,
		ProcesoOrdenID:    &pasoID,
		CantidadTeorica:   teorico,
		CantidadReal:      &real,
		Desperdicio:       &cero,
	})
}

func (s *produccionService) registrarAutoCompTx(tx *gorm.DB, ordenID, pasoID, componenteID uuid.UUID, teorico decimal.Decimal) error {
	existente, err := s.consumoRepo.FindCompExistenteTx(tx, ordenID, &pasoID, componenteID)
	if err != nil {
		return err
	}
	if existente != nil {
		return nil
	}

	comp, err := s.productoRepo.FindByIDForUpdateTx(tx, componenteID)
	if err != nil {
		return err
	}
	if err := RetirarStock(&comp.Stock, comp.Nombre, teorico); err != nil {
		return err
	}

	hermanos, err := s.consumoRepo.ListCompByOrdenInsumoTx(tx, ordenID, componenteID)
	if err != nil {
		return err
	}
	restante := ReservadoRestante(sumarConsumosComp(hermanos))
	LiberarStock(&comp.Stock, minDecimal(teorico, restante))

	if err := s.productoRepo.SaveTx(tx, comp); err != nil {
		return err
	}

	cero := decimal.Zero
	real := teorico
	return s.consumoRepo.CreateCompTx(tx, &model.ConsumoProductoComponente{
		OrdenProduccionID: ordenID,
		ComponenteID:      componenteID,
		ProcesoOrdenID:    &pasoID,
		CantidadTeorica:   teorico,
		CantidadReal:      &real,
		Desperdicio:       &cero,
	})
}

// cerrarOrdenSiTerminaTx completes the order when the step just closed
// was the last one still open.
func (s *produccionService) cerrarOrdenSiTerminaTx(tx *gorm.DB, orden *model.OrdenProduccion, ultimo *model.ProcesoOrden) error {
	if orden.Estado == model.OrdenProduccionCancelada {
		return nil
	}
	pasos, err := s.repo.ListPasosTx(tx, orden.ID)
	if err != nil {
		return err
	}
	for i := range pasos {
		if pasos[i].Estado != model.ProcesoOrdenCompletado {
			return nil
		}
	}

	orden.Estado = model.OrdenProduccionCompletada
	if orden.FechaFin == nil {
		now := time.Now()
		orden.FechaFin = &now
	}
	if orden.CantidadProducida.IsZero() && ultimo.CantidadSalida != nil {
		orden.CantidadProducida = *ultimo.CantidadSalida
	}
	return s.repo.SaveTx(tx, orden)
}

func (s *produccionService) obtenerPaso(ctx context.Context, pasoID uuid.UUID) (*dto.PasoOrdenResponse, error) {
	paso, err := s.repo.FindPaso(ctx, pasoID)
	if err != nil {
		return nil, err
	}
	return pasoOrdenToResponse(paso), nil
}

func aplicarCantidadesPaso(paso *model.ProcesoOrden, req dto.CompletarPasoRequest) error {
	for _, c := range []*decimal.Decimal{req.CantidadEntrada, req.CantidadSalida, req.CantidadPerdida} {
		if c != nil && c.IsNegative() {
			return domain.NewValidation("las cantidades del proceso no pueden ser negativas")
		}
	}
	if req.CantidadEntrada != nil {
		paso.CantidadEntrada = req.CantidadEntrada
	}
	if req.CantidadSalida != nil {
		paso.CantidadSalida = req.CantidadSalida
	}
	if req.CantidadPerdida != nil {
		paso.CantidadPerdida = req.CantidadPerdida
	}
	if req.MotivoPerdida != nil {
		paso.MotivoPerdida = req.MotivoPerdida
	}
	if req.Notas != nil {
		paso.Notas = req.Notas
	}
	return nil
}

func buscarPaso(pasos []model.ProcesoOrden, orden int) *model.ProcesoOrden {
	for i := range pasos {
		if pasos[i].Orden == orden {
			return &pasos[i]
		}
	}
	return nil
}

func sumarConsumosMP(rows []model.ConsumoMateriaPrima) (teoricos, reales decimal.Decimal) {
	for i := range rows {
		teoricos = teoricos.Add(rows[i].CantidadTeorica)
		if rows[i].CantidadReal != nil {
			reales = reales.Add(*rows[i].CantidadReal)
		}
	}
	return teoricos, reales
}

func sumarConsumosComp(rows []model.ConsumoProductoComponente) (teoricos, reales decimal.Decimal) {
	for i := range rows {
		teoricos = teoricos.Add(rows[i].CantidadTeorica)
		if rows[i].CantidadReal != nil {
			reales = reales.Add(*rows[i].CantidadReal)
		}
	}
	return teoricos, reales
}

func minDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}
