package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/Alexistodj124/CoprodaBackEnd/internal/domain"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/dto"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/model"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PagoService registers bank deposits and allocates them against customer
// orders. Allocation order is most-urgent-first: fewest credit days left,
// then oldest ship date, then creation order.
type PagoService interface {
	CrearBanco(ctx context.Context, req dto.CrearBancoRequest) (*dto.BancoResponse, error)
	ObtenerBanco(ctx context.Context, id uuid.UUID) (*dto.BancoResponse, error)
	ListarBancos(ctx context.Context, filter dto.BancoFilter) (*dto.BancoListResponse, error)
	Asignar(ctx context.Context, bancoID uuid.UUID, req dto.AsignarBancoRequest) (*dto.AsignacionResponse, error)
	EliminarBanco(ctx context.Context, id uuid.UUID) error
}

type pagoService struct {
	bancoRepo   repository.BancoRepository
	ordenRepo   repository.OrdenRepository
	clienteRepo repository.ClienteRepository
}

func NewPagoService(
	bancoRepo repository.BancoRepository,
	ordenRepo repository.OrdenRepository,
	clienteRepo repository.ClienteRepository,
) PagoService {
	return &pagoService{
		bancoRepo:   bancoRepo,
		ordenRepo:   ordenRepo,
		clienteRepo: clienteRepo,
	}
}

func (s *pagoService) CrearBanco(ctx context.Context, req dto.CrearBancoRequest) (*dto.BancoResponse, error) {
	if !req.Monto.IsPositive() {
		return nil, domain.NewValidation("monto debe ser positivo")
	}
	banco := &model.Banco{
		Referencia: req.Referencia,
		Banco:      req.Banco,
		Monto:      req.Monto,
		Nota:       req.Nota,
	}
	if req.Fecha != nil && *req.Fecha != "" {
		fecha, err := time.Parse("2006-01-02", *req.Fecha)
		if err != nil {
			return nil, domain.NewValidation("fecha inválida, formato esperado YYYY-MM-DD")
		}
		banco.Fecha = &fecha
	}
	if err := s.bancoRepo.Crear(ctx, banco); err != nil {
		return nil, err
	}
	return bancoToResponse(banco), nil
}

func (s *pagoService) ObtenerBanco(ctx context.Context, id uuid.UUID) (*dto.BancoResponse, error) {
	banco, err := s.bancoRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("depósito bancario")
		}
		return nil, err
	}
	return bancoToResponse(banco), nil
}

func (s *pagoService) ListarBancos(ctx context.Context, filter dto.BancoFilter) (*dto.BancoListResponse, error) {
	list, total, err := s.bancoRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.BancoResponse, len(list))
	for i := range list {
		data[i] = *bancoToResponse(&list[i])
	}
	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &dto.BancoListResponse{
		Data: data, Total: total, Page: filter.Page, Limit: filter.Limit, TotalPages: totalPages,
	}, nil
}

// Asignar walks the customer's open orders most-urgent-first, applying
// min(remaining, saldo) to each. A balance that reaches zero marks the
// order pagada. The full deposit amount comes off the customer balance, so
// any unapplied remainder becomes credit in the customer's favour.
func (s *pagoService) Asignar(ctx context.Context, bancoID uuid.UUID, req dto.AsignarBancoRequest) (*dto.AsignacionResponse, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, domain.NewValidation("cliente_id inválido")
	}

	var resp *dto.AsignacionResponse
	err = runTx(ctx, s.bancoRepo.DB(), func(tx *gorm.DB) error {
		banco, err := s.bancoRepo.FindByIDForUpdateTx(tx, bancoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFound("depósito bancario")
			}
			return err
		}
		if banco.Asignado {
			return domain.NewConflict("el depósito ya fue asignado")
		}
		if !banco.Monto.IsPositive() {
			return domain.NewValidation("monto del depósito debe ser positivo")
		}

		cliente, err := s.clienteRepo.FindByIDForUpdateTx(tx, clienteID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFound("cliente")
			}
			return err
		}

		ordenes, err := s.ordenRepo.ListPendientesCobroByClienteTx(tx, clienteID)
		if err != nil {
			return err
		}
		if len(ordenes) == 0 {
			return domain.NewNotFound("orden con saldo pendiente del cliente")
		}
		hoy := time.Now()
		ordenarPorUrgencia(ordenes, hoy)

		restante := banco.Monto
		detalles := make([]dto.OrdenPagoDetalle, 0, len(ordenes))
		for i := range ordenes {
			if !restante.IsPositive() {
				break
			}
			orden := &ordenes[i]
			aplicado := minDecimal(restante, orden.Saldo)
			orden.Saldo = orden.Saldo.Sub(aplicado)
			restante = restante.Sub(aplicado)
			if orden.Saldo.IsZero() {
				orden.Estado = model.OrdenPagada
				orden.FechaPago = &hoy
			}
			if err := s.ordenRepo.SaveTx(tx, orden); err != nil {
				return err
			}
			detalles = append(detalles, dto.OrdenPagoDetalle{
				OrdenID:   orden.ID.String(),
				Numero:    orden.Numero,
				Aplicado:  aplicado,
				SaldoPost: orden.Saldo,
				Estado:    orden.Estado,
			})
		}

		banco.Asignado = true
		banco.ClienteID = &clienteID
		if err := s.bancoRepo.SaveTx(tx, banco); err != nil {
			return err
		}

		cliente.Saldo = cliente.Saldo.Sub(banco.Monto)
		if err := s.clienteRepo.SaveTx(tx, cliente); err != nil {
			return err
		}

		resp = &dto.AsignacionResponse{
			BancoID:          banco.ID.String(),
			ClienteID:        clienteID.String(),
			MontoAsignado:    banco.Monto.Sub(restante),
			SobranteACredito: restante,
			Ordenes:          detalles,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// EliminarBanco removes a deposit. An assigned deposit is first unwound:
// the paid portion of each touched order is restored most-urgent-first and
// the amount goes back onto the customer balance.
func (s *pagoService) EliminarBanco(ctx context.Context, id uuid.UUID) error {
	return runTx(ctx, s.bancoRepo.DB(), func(tx *gorm.DB) error {
		banco, err := s.bancoRepo.FindByIDForUpdateTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFound("depósito bancario")
			}
			return err
		}
		if !banco.Asignado {
			return s.bancoRepo.DeleteTx(tx, banco.ID)
		}
		if banco.ClienteID == nil {
			return domain.NewConflict("el depósito asignado no tiene cliente")
		}
		if !banco.Monto.IsPositive() {
			return domain.NewValidation("monto del depósito debe ser positivo")
		}

		cliente, err := s.clienteRepo.FindByIDForUpdateTx(tx, *banco.ClienteID)
		if err != nil {
			return err
		}

		ordenes, err := s.ordenRepo.ListConPagoByClienteTx(tx, *banco.ClienteID)
		if err != nil {
			return err
		}
		ordenarPorUrgencia(ordenes, time.Now())

		restante := banco.Monto
		for i := range ordenes {
			if !restante.IsPositive() {
				break
			}
			orden := &ordenes[i]
			pagado := orden.Total.Sub(orden.Saldo)
			restaurar := minDecimal(restante, pagado)
			if !restaurar.IsPositive() {
				continue
			}
			orden.Saldo = orden.Saldo.Add(restaurar)
			restante = restante.Sub(restaurar)
			if orden.Estado == model.OrdenPagada && orden.Saldo.IsPositive() {
				orden.Estado = model.OrdenEnviada
				orden.FechaPago = nil
			}
			if err := s.ordenRepo.SaveTx(tx, orden); err != nil {
				return err
			}
		}

		cliente.Saldo = cliente.Saldo.Add(banco.Monto)
		if err := s.clienteRepo.SaveTx(tx, cliente); err != nil {
			return err
		}
		return s.bancoRepo.DeleteTx(tx, banco.ID)
	})
}

// ordenarPorUrgencia sorts by days of credit remaining, then the date the
// term anchors on (ship date, else order date), then creation order. Ties
// fall back to the id so the order is total and replayable.
func ordenarPorUrgencia(ordenes []model.Orden, hoy time.Time) {
	hoy = truncarDia(hoy)
	sort.SliceStable(ordenes, func(i, j int) bool {
		a, b := &ordenes[i], &ordenes[j]
		da, db := diasRestantes(a, hoy), diasRestantes(b, hoy)
		if da != db {
			return da < db
		}
		fa, fb := fechaBase(a), fechaBase(b)
		if !fa.Equal(fb) {
			return fa.Before(fb)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})
}

// diasRestantes is the signed day count until the order's due date;
// overdue orders come out negative and sort first.
func diasRestantes(o *model.Orden, hoy time.Time) int {
	dias := 0
	if o.TipoPago != nil {
		dias = o.TipoPago.DiasCredito
	}
	vence := truncarDia(fechaBase(o)).AddDate(0, 0, dias)
	return int(vence.Sub(hoy).Hours() / 24)
}

func fechaBase(o *model.Orden) time.Time {
	if o.FechaEnvio != nil {
		return *o.FechaEnvio
	}
	return o.Fecha
}

func truncarDia(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func bancoToResponse(b *model.Banco) *dto.BancoResponse {
	resp := &dto.BancoResponse{
		ID:         b.ID.String(),
		Referencia: b.Referencia,
		Banco:      b.Banco,
		Monto:      b.Monto,
		Nota:       b.Nota,
		Asignado:   b.Asignado,
	}
	if b.Fecha != nil {
		f := b.Fecha.Format("2006-01-02")
		resp.Fecha = &f
	}
	if b.ClienteID != nil {
		id := b.ClienteID.String()
		resp.ClienteID = &id
	}
	if b.Cliente != nil {
		resp.Cliente = &b.Cliente.Nombre
	}
	return resp
}
