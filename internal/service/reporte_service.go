package service

import (
	"context"
	"time"

	"github.com/Alexistodj124/CoprodaBackEnd/internal/dto"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/repository"

	"github.com/shopspring/decimal"
)

// ReporteService builds the read-only management reports.
type ReporteService interface {
	Produccion(ctx context.Context, desde, hasta *time.Time) (*dto.ReporteProduccionResponse, error)
	CuentasPorCobrar(ctx context.Context) (*dto.ReporteCuentasPorCobrarResponse, error)
	StockBajo(ctx context.Context) (*dto.ReporteStockBajoResponse, error)
}

type reporteService struct {
	ordenProduccionRepo repository.OrdenProduccionRepository
	clienteRepo         repository.ClienteRepository
	ordenRepo           repository.OrdenRepository
	materiaPrimaRepo    repository.MateriaPrimaRepository
	productoRepo        repository.ProductoRepository
}

func NewReporteService(
	ordenProduccionRepo repository.OrdenProduccionRepository,
	clienteRepo repository.ClienteRepository,
	ordenRepo repository.OrdenRepository,
	materiaPrimaRepo repository.MateriaPrimaRepository,
	productoRepo repository.ProductoRepository,
) ReporteService {
	return &reporteService{
		ordenProduccionRepo: ordenProduccionRepo,
		clienteRepo:         clienteRepo,
		ordenRepo:           ordenRepo,
		materiaPrimaRepo:    materiaPrimaRepo,
		productoRepo:        productoRepo,
	}
}

// Produccion summarizes the production orders of a date range. A missing
// bound defaults to the last 30 days ending today.
func (s *reporteService) Produccion(ctx context.Context, desde, hasta *time.Time) (*dto.ReporteProduccionResponse, error) {
	hoy := time.Now()
	if hasta == nil {
		hasta = &hoy
	}
	if desde == nil {
		d := hasta.AddDate(0, 0, -30)
		desde = &d
	}

	filter := dto.OrdenProduccionFilter{Desde: desde, Hasta: hasta, Page: 1, Limit: 100}
	var ordenes []dto.OrdenProduccionResponse
	porEstado := map[string]int{}
	planeada := decimal.Zero
	producida := decimal.Zero
	for {
		list, _, err := s.ordenProduccionRepo.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		for i := range list {
			o := &list[i]
			porEstado[o.Estado]++
			planeada = planeada.Add(o.CantidadPlaneada)
			producida = producida.Add(o.CantidadProducida)
			ordenes = append(ordenes, *ordenProduccionToResponse(o, false))
		}
		if len(list) < filter.Limit {
			break
		}
		filter.Page++
	}

	return &dto.ReporteProduccionResponse{
		Desde:             desde.Format("2006-01-02"),
		Hasta:             hasta.Format("2006-01-02"),
		TotalOrdenes:      len(ordenes),
		PorEstado:         porEstado,
		CantidadPlaneada:  planeada,
		CantidadProducida: producida,
		Ordenes:           ordenes,
	}, nil
}

// CuentasPorCobrar lists every customer carrying a positive balance, with
// the count of open orders and how many of them are past due.
func (s *reporteService) CuentasPorCobrar(ctx context.Context) (*dto.ReporteCuentasPorCobrarResponse, error) {
	clientes, err := s.clienteRepo.Listar(ctx, "")
	if err != nil {
		return nil, err
	}

	hoy := truncarDia(time.Now())
	total := decimal.Zero
	data := make([]dto.CuentaPorCobrarItem, 0)
	for i := range clientes {
		c := &clientes[i]
		if !c.Saldo.IsPositive() {
			continue
		}
		abiertas, err := s.ordenRepo.ListAbiertasByCliente(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		vencidas := 0
		for j := range abiertas {
			if diasRestantes(&abiertas[j], hoy) < 0 {
				vencidas++
			}
		}
		total = total.Add(c.Saldo)
		data = append(data, dto.CuentaPorCobrarItem{
			ClienteID:       c.ID.String(),
			Cliente:         c.Nombre,
			Saldo:           c.Saldo,
			OrdenesAbiertas: len(abiertas),
			Vencidas:        vencidas,
		})
	}
	return &dto.ReporteCuentasPorCobrarResponse{Total: total, Data: data}, nil
}

// StockBajo flags raw materials and products whose available balance sits
// at or under the configured minimum.
func (s *reporteService) StockBajo(ctx context.Context) (*dto.ReporteStockBajoResponse, error) {
	mps, err := s.materiaPrimaRepo.ListBajoMinimo(ctx)
	if err != nil {
		return nil, err
	}
	productos, err := s.productoRepo.ListBajoMinimo(ctx)
	if err != nil {
		return nil, err
	}

	data := make([]dto.StockBajoItem, 0, len(mps)+len(productos))
	for i := range mps {
		m := &mps[i]
		data = append(data, dto.StockBajoItem{
			ID:         m.ID.String(),
			Nombre:     m.Nombre,
			Tipo:       "materia_prima",
			Disponible: m.Disponible(),
			Minimo:     m.StockMinimo,
		})
	}
	for i := range productos {
		p := &productos[i]
		data = append(data, dto.StockBajoItem{
			ID:         p.ID.String(),
			Nombre:     p.Nombre,
			Tipo:       "producto",
			Disponible: p.Disponible(),
			Minimo:     p.StockMinimo,
		})
	}
	return &dto.ReporteStockBajoResponse{Data: data}, nil
}
