package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Alexistodj124/CoprodaBackEnd/internal/domain"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/dto"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/model"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrdenService manages customer sales orders. Estado "pagada" is never set
// here: only the payment allocation engine can drive a balance to zero.
type OrdenService interface {
	Crear(ctx context.Context, req dto.CrearOrdenRequest) (*dto.OrdenResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.OrdenResponse, error)
	Listar(ctx context.Context, filter dto.OrdenFilter) (*dto.OrdenListResponse, error)
	CambiarEstado(ctx context.Context, id uuid.UUID, req dto.CambiarEstadoOrdenRequest) (*dto.OrdenResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type ordenService struct {
	repo         repository.OrdenRepository
	clienteRepo  repository.ClienteRepository
	tipoPagoRepo repository.TipoPagoRepository
	productoRepo repository.ProductoRepository
}

func NewOrdenService(
	repo repository.OrdenRepository,
	clienteRepo repository.ClienteRepository,
	tipoPagoRepo repository.TipoPagoRepository,
	productoRepo repository.ProductoRepository,
) OrdenService {
	return &ordenService{
		repo:         repo,
		clienteRepo:  clienteRepo,
		tipoPagoRepo: tipoPagoRepo,
		productoRepo: productoRepo,
	}
}

// Crear builds the order with frozen unit prices and a number derived from
// the customer code. Only active finished products can be sold.
func (s *ordenService) Crear(ctx context.Context, req dto.CrearOrdenRequest) (*dto.OrdenResponse, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, domain.NewValidation("cliente_id inválido")
	}
	tipoPagoID, err := uuid.Parse(req.TipoPagoID)
	if err != nil {
		return nil, domain.NewValidation("tipo_pago_id inválido")
	}

	cliente, err := s.clienteRepo.ObtenerPorID(ctx, clienteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("cliente")
		}
		return nil, err
	}
	if _, err := s.tipoPagoRepo.ObtenerPorID(ctx, tipoPagoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("tipo de pago")
		}
		return nil, err
	}

	fecha := time.Now()
	if req.Fecha != nil && *req.Fecha != "" {
		fecha, err = time.Parse("2006-01-02", *req.Fecha)
		if err != nil {
			return nil, domain.NewValidation("fecha inválida, formato esperado YYYY-MM-DD")
		}
	}

	items := make([]model.OrdenItem, 0, len(req.Items))
	total := decimal.Zero
	for _, it := range req.Items {
		productoID, err := uuid.Parse(it.ProductoID)
		if err != nil {
			return nil, domain.NewValidation("producto_id inválido")
		}
		if !it.Cantidad.IsPositive() {
			return nil, domain.NewValidation("la cantidad de cada item debe ser positiva")
		}
		producto, err := s.productoRepo.FindByID(ctx, productoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.NewNotFound("producto")
			}
			return nil, err
		}
		if !producto.Activo {
			return nil, domain.NewValidation("el producto %s está inactivo", producto.Codigo)
		}
		if !producto.EsProductoFinal {
			return nil, domain.NewValidation("el producto %s no es un producto final", producto.Codigo)
		}

		precio := producto.PrecioCF
		if it.PrecioUnitario != nil {
			if it.PrecioUnitario.IsNegative() {
				return nil, domain.NewValidation("precio_unitario no puede ser negativo")
			}
			precio = *it.PrecioUnitario
		}
		subtotal := precio.Mul(it.Cantidad)
		total = total.Add(subtotal)
		items = append(items, model.OrdenItem{
			ProductoID:     productoID,
			Cantidad:       it.Cantidad,
			PrecioUnitario: precio,
			Subtotal:       subtotal,
		})
	}

	numero, err := s.generarNumero(ctx, cliente.Codigo)
	if err != nil {
		return nil, err
	}

	orden := &model.Orden{
		Numero:     numero,
		ClienteID:  clienteID,
		TipoPagoID: tipoPagoID,
		Estado:     model.OrdenPendiente,
		Fecha:      fecha,
		Total:      total,
		Saldo:      total,
		Nota:       req.Nota,
		Items:      items,
	}
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.CreateTx(tx, orden)
	})
	if err != nil {
		return nil, err
	}
	return s.Obtener(ctx, orden.ID)
}

func (s *ordenService) Obtener(ctx context.Context, id uuid.UUID) (*dto.OrdenResponse, error) {
	orden, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("orden")
		}
		return nil, err
	}
	return ordenToResponse(orden, true), nil
}

func (s *ordenService) Listar(ctx context.Context, filter dto.OrdenFilter) (*dto.OrdenListResponse, error) {
	list, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.OrdenResponse, len(list))
	for i := range list {
		data[i] = *ordenToResponse(&list[i], false)
	}
	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &dto.OrdenListResponse{
		Data: data, Total: total, Page: filter.Page, Limit: filter.Limit, TotalPages: totalPages,
	}, nil
}

// CambiarEstado only accepts pendiente → enviada. Shipping stamps the send
// date and moves the order total onto the customer's running balance.
func (s *ordenService) CambiarEstado(ctx context.Context, id uuid.UUID, req dto.CambiarEstadoOrdenRequest) (*dto.OrdenResponse, error) {
	if req.Estado == model.OrdenPagada {
		return nil, domain.NewValidation("el estado pagada se alcanza asignando pagos, no manualmente")
	}
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		orden, err := s.repo.FindByIDForUpdateTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFound("orden")
			}
			return err
		}
		if orden.Estado == req.Estado {
			return nil
		}
		if orden.Estado != model.OrdenPendiente || req.Estado != model.OrdenEnviada {
			return domain.NewConflict("transición %s → %s no permitida", orden.Estado, req.Estado)
		}

		cliente, err := s.clienteRepo.FindByIDForUpdateTx(tx, orden.ClienteID)
		if err != nil {
			return err
		}
		cliente.Saldo = cliente.Saldo.Add(orden.Saldo)
		if err := s.clienteRepo.SaveTx(tx, cliente); err != nil {
			return err
		}

		orden.Estado = model.OrdenEnviada
		now := time.Now()
		orden.FechaEnvio = &now
		return s.repo.SaveTx(tx, orden)
	})
	if err != nil {
		return nil, err
	}
	return s.Obtener(ctx, id)
}

// Eliminar refuses once any payment has been applied (total != saldo). For
// a shipped order the pending amount is backed out of the customer balance.
func (s *ordenService) Eliminar(ctx context.Context, id uuid.UUID) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		orden, err := s.repo.FindByIDForUpdateTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFound("orden")
			}
			return err
		}
		if !orden.Total.Equal(orden.Saldo) {
			return domain.NewConflict("la orden tiene pagos asignados")
		}
		if orden.Estado == model.OrdenEnviada {
			cliente, err := s.clienteRepo.FindByIDForUpdateTx(tx, orden.ClienteID)
			if err != nil {
				return err
			}
			cliente.Saldo = cliente.Saldo.Sub(orden.Saldo)
			if err := s.clienteRepo.SaveTx(tx, cliente); err != nil {
				return err
			}
		}
		return s.repo.DeleteTx(tx, orden.ID)
	})
}

// generarNumero derives CODIGO-UNIXSECONDS and bumps the suffix on the
// rare collision of two orders for the same customer within a second.
func (s *ordenService) generarNumero(ctx context.Context, codigoCliente string) (string, error) {
	base := time.Now().Unix()
	for i := int64(0); i < 100; i++ {
		numero := fmt.Sprintf("%s-%d", codigoCliente, base+i)
		existe, err := s.repo.ExisteNumero(ctx, numero)
		if err != nil {
			return "", err
		}
		if !existe {
			return numero, nil
		}
	}
	return "", domain.NewConflict("no se pudo generar un número de orden único")
}

func ordenToResponse(o *model.Orden, conItems bool) *dto.OrdenResponse {
	resp := &dto.OrdenResponse{
		ID:         o.ID.String(),
		Numero:     o.Numero,
		ClienteID:  o.ClienteID.String(),
		TipoPagoID: o.TipoPagoID.String(),
		Estado:     o.Estado,
		Fecha:      o.Fecha.Format("2006-01-02"),
		Total:      o.Total,
		Saldo:      o.Saldo,
		Nota:       o.Nota,
	}
	if o.Cliente != nil {
		resp.Cliente = &o.Cliente.Nombre
	}
	if o.TipoPago != nil {
		resp.TipoPago = &o.TipoPago.Nombre
	}
	if o.FechaEnvio != nil {
		f := o.FechaEnvio.Format(time.RFC3339)
		resp.FechaEnvio = &f
	}
	if o.FechaPago != nil {
		f := o.FechaPago.Format(time.RFC3339)
		resp.FechaPago = &f
	}
	if conItems {
		resp.Items = make([]dto.ItemOrdenResponse, len(o.Items))
		for i := range o.Items {
			it := &o.Items[i]
			item := dto.ItemOrdenResponse{
				ID:             it.ID.String(),
				ProductoID:     it.ProductoID.String(),
				Cantidad:       it.Cantidad,
				PrecioUnitario: it.PrecioUnitario,
				Subtotal:       it.Subtotal,
			}
			if it.Producto != nil {
				item.Producto = &it.Producto.Nombre
			}
			resp.Items[i] = item
		}
	}
	return resp
}
