package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Alexistodj124/CoprodaBackEnd/internal/dto"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/model"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository stubs. Every DB() returns nil so runTx calls the
// body with a nil tx and no real transaction is opened.

// ── MateriaPrima ─────────────────────────────────────────────────────────────

type stubMateriaPrimaRepo struct {
	items map[uuid.UUID]*model.MateriaPrima
}

func newStubMateriaPrimaRepo() *stubMateriaPrimaRepo {
	return &stubMateriaPrimaRepo{items: make(map[uuid.UUID]*model.MateriaPrima)}
}

func (r *stubMateriaPrimaRepo) add(m *model.MateriaPrima) *model.MateriaPrima {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.items[m.ID] = m
	return m
}

func (r *stubMateriaPrimaRepo) Create(_ context.Context, m *model.MateriaPrima) error {
	r.add(m)
	return nil
}

func (r *stubMateriaPrimaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.MateriaPrima, error) {
	m, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *stubMateriaPrimaRepo) List(_ context.Context, _ dto.MateriaPrimaFilter) ([]model.MateriaPrima, int64, error) {
	return nil, 0, nil
}

func (r *stubMateriaPrimaRepo) ListBajoMinimo(_ context.Context) ([]model.MateriaPrima, error) {
	var out []model.MateriaPrima
	for _, m := range r.items {
		if m.StockActual.LessThan(m.StockMinimo) {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *stubMateriaPrimaRepo) Update(_ context.Context, m *model.MateriaPrima) error {
	r.items[m.ID] = m
	return nil
}

func (r *stubMateriaPrimaRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *stubMateriaPrimaRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.MateriaPrima, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubMateriaPrimaRepo) SaveTx(_ *gorm.DB, m *model.MateriaPrima) error {
	r.items[m.ID] = m
	return nil
}

func (r *stubMateriaPrimaRepo) CreateAjusteTx(_ *gorm.DB, a *model.MateriaPrimaAjuste) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (r *stubMateriaPrimaRepo) ListAjustes(_ context.Context, _ uuid.UUID) ([]model.MateriaPrimaAjuste, error) {
	return nil, nil
}

func (r *stubMateriaPrimaRepo) DB() *gorm.DB { return nil }

var _ repository.MateriaPrimaRepository = (*stubMateriaPrimaRepo)(nil)

// ── Producto ─────────────────────────────────────────────────────────────────

type stubProductoRepo struct {
	items map[uuid.UUID]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{items: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) add(p *model.Producto) *model.Producto {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.items[p.ID] = p
	return p
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	r.add(p)
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) FindByCodigo(_ context.Context, codigo string) (*model.Producto, error) {
	for _, p := range r.items {
		if p.Codigo == codigo {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	return nil, 0, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.items[p.ID] = p
	return nil
}

func (r *stubProductoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.items[id]; ok {
		p.Activo = false
	}
	return nil
}

func (r *stubProductoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if p, ok := r.items[id]; ok {
		p.Activo = true
	}
	return nil
}

func (r *stubProductoRepo) ListBajoMinimo(_ context.Context) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.items {
		if p.StockActual.LessThan(p.StockMinimo) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductoRepo) SaveTx(_ *gorm.DB, p *model.Producto) error {
	r.items[p.ID] = p
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── BOM ──────────────────────────────────────────────────────────────────────

type stubBomRepo struct {
	lineasMP   []model.ProductoMateriaPrima
	lineasComp []model.ProductoComponente
}

func (r *stubBomRepo) CrearLineaMP(_ context.Context, l *model.ProductoMateriaPrima) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	r.lineasMP = append(r.lineasMP, *l)
	return nil
}

func (r *stubBomRepo) ObtenerLineaMP(_ context.Context, id uuid.UUID) (*model.ProductoMateriaPrima, error) {
	for i := range r.lineasMP {
		if r.lineasMP[i].ID == id {
			return &r.lineasMP[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubBomRepo) ListarLineasMP(_ context.Context, productoID uuid.UUID) ([]model.ProductoMateriaPrima, error) {
	return r.ListarLineasMPTx(nil, productoID)
}

func (r *stubBomRepo) ListarLineasMPTx(_ *gorm.DB, productoID uuid.UUID) ([]model.ProductoMateriaPrima, error) {
	var out []model.ProductoMateriaPrima
	for _, l := range r.lineasMP {
		if l.ProductoID == productoID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *stubBomRepo) ActualizarLineaMP(_ context.Context, l *model.ProductoMateriaPrima) error {
	for i := range r.lineasMP {
		if r.lineasMP[i].ID == l.ID {
			r.lineasMP[i] = *l
		}
	}
	return nil
}

func (r *stubBomRepo) EliminarLineaMP(_ context.Context, id uuid.UUID) error {
	out := r.lineasMP[:0]
	for _, l := range r.lineasMP {
		if l.ID != id {
			out = append(out, l)
		}
	}
	r.lineasMP = out
	return nil
}

func (r *stubBomRepo) CrearLineaComp(_ context.Context, l *model.ProductoComponente) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	r.lineasComp = append(r.lineasComp, *l)
	return nil
}

func (r *stubBomRepo) ObtenerLineaComp(_ context.Context, id uuid.UUID) (*model.ProductoComponente, error) {
	for i := range r.lineasComp {
		if r.lineasComp[i].ID == id {
			return &r.lineasComp[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubBomRepo) ListarLineasComp(_ context.Context, productoID uuid.UUID) ([]model.ProductoComponente, error) {
	return r.ListarLineasCompTx(nil, productoID)
}

func (r *stubBomRepo) ListarLineasCompTx(_ *gorm.DB, productoID uuid.UUID) ([]model.ProductoComponente, error) {
	var out []model.ProductoComponente
	for _, l := range r.lineasComp {
		if l.ProductoID == productoID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *stubBomRepo) ActualizarLineaComp(_ context.Context, l *model.ProductoComponente) error {
	for i := range r.lineasComp {
		if r.lineasComp[i].ID == l.ID {
			r.lineasComp[i] = *l
		}
	}
	return nil
}

func (r *stubBomRepo) EliminarLineaComp(_ context.Context, id uuid.UUID) error {
	out := r.lineasComp[:0]
	for _, l := range r.lineasComp {
		if l.ID != id {
			out = append(out, l)
		}
	}
	r.lineasComp = out
	return nil
}

func (r *stubBomRepo) DB() *gorm.DB { return nil }

var _ repository.BomRepository = (*stubBomRepo)(nil)

// ── Proceso ──────────────────────────────────────────────────────────────────

type stubProcesoRepo struct {
	procesos map[uuid.UUID]*model.Proceso
	rutas    []model.ProductoProceso
}

func newStubProcesoRepo() *stubProcesoRepo {
	return &stubProcesoRepo{procesos: make(map[uuid.UUID]*model.Proceso)}
}

func (r *stubProcesoRepo) Crear(_ context.Context, p *model.Proceso) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.procesos[p.ID] = p
	return nil
}

func (r *stubProcesoRepo) Listar(_ context.Context) ([]model.Proceso, error) { return nil, nil }

func (r *stubProcesoRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Proceso, error) {
	p, ok := r.procesos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProcesoRepo) Actualizar(_ context.Context, p *model.Proceso) error {
	r.procesos[p.ID] = p
	return nil
}

func (r *stubProcesoRepo) Desactivar(_ context.Context, _ uuid.UUID) error { return nil }

func (r *stubProcesoRepo) CrearPaso(_ context.Context, pp *model.ProductoProceso) error {
	if pp.ID == uuid.Nil {
		pp.ID = uuid.New()
	}
	r.rutas = append(r.rutas, *pp)
	return nil
}

func (r *stubProcesoRepo) ObtenerPaso(_ context.Context, id uuid.UUID) (*model.ProductoProceso, error) {
	for i := range r.rutas {
		if r.rutas[i].ID == id {
			return &r.rutas[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProcesoRepo) ListarRuta(_ context.Context, productoID uuid.UUID) ([]model.ProductoProceso, error) {
	return r.ListarRutaTx(nil, productoID)
}

func (r *stubProcesoRepo) ListarRutaTx(_ *gorm.DB, productoID uuid.UUID) ([]model.ProductoProceso, error) {
	var out []model.ProductoProceso
	for _, pp := range r.rutas {
		if pp.ProductoID == productoID {
			out = append(out, pp)
		}
	}
	return out, nil
}

func (r *stubProcesoRepo) ActualizarPaso(_ context.Context, pp *model.ProductoProceso) error {
	for i := range r.rutas {
		if r.rutas[i].ID == pp.ID {
			r.rutas[i] = *pp
		}
	}
	return nil
}

func (r *stubProcesoRepo) EliminarPaso(_ context.Context, _ uuid.UUID) error { return nil }

func (r *stubProcesoRepo) ContarUsosEnRutas(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

func (r *stubProcesoRepo) DB() *gorm.DB { return nil }

var _ repository.ProcesoRepository = (*stubProcesoRepo)(nil)

// ── Orden de producción ──────────────────────────────────────────────────────

type stubOrdenProduccionRepo struct {
	ordenes map[uuid.UUID]*model.OrdenProduccion
	pasos   []*model.ProcesoOrden
	seq     int
}

func newStubOrdenProduccionRepo() *stubOrdenProduccionRepo {
	return &stubOrdenProduccionRepo{ordenes: make(map[uuid.UUID]*model.OrdenProduccion)}
}

func (r *stubOrdenProduccionRepo) CreateTx(_ *gorm.DB, o *model.OrdenProduccion) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	o.CreatedAt = time.Now()
	r.ordenes[o.ID] = o
	return nil
}

func (r *stubOrdenProduccionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.OrdenProduccion, error) {
	o, ok := r.ordenes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (r *stubOrdenProduccionRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.OrdenProduccion, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubOrdenProduccionRepo) List(_ context.Context, _ dto.OrdenProduccionFilter) ([]model.OrdenProduccion, int64, error) {
	return nil, 0, nil
}

func (r *stubOrdenProduccionRepo) Update(_ context.Context, o *model.OrdenProduccion) error {
	r.ordenes[o.ID] = o
	return nil
}

func (r *stubOrdenProduccionRepo) SaveTx(_ *gorm.DB, o *model.OrdenProduccion) error {
	r.ordenes[o.ID] = o
	return nil
}

func (r *stubOrdenProduccionRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.ordenes, id)
	return nil
}

func (r *stubOrdenProduccionRepo) NextCodigo(_ context.Context, hoy time.Time) (string, error) {
	r.seq++
	return fmt.Sprintf("OP-%s-%03d", hoy.Format("20060102"), r.seq), nil
}

func (r *stubOrdenProduccionRepo) CreatePasoTx(_ *gorm.DB, p *model.ProcesoOrden) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.pasos = append(r.pasos, p)
	return nil
}

func (r *stubOrdenProduccionRepo) FindPaso(_ context.Context, id uuid.UUID) (*model.ProcesoOrden, error) {
	for _, p := range r.pasos {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubOrdenProduccionRepo) FindPasoForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.ProcesoOrden, error) {
	return r.FindPaso(context.Background(), id)
}

func (r *stubOrdenProduccionRepo) ListPasos(_ context.Context, ordenID uuid.UUID) ([]model.ProcesoOrden, error) {
	return r.ListPasosTx(nil, ordenID)
}

func (r *stubOrdenProduccionRepo) ListPasosTx(_ *gorm.DB, ordenID uuid.UUID) ([]model.ProcesoOrden, error) {
	var out []model.ProcesoOrden
	for _, p := range r.pasos {
		if p.OrdenProduccionID == ordenID {
			out = append(out, *p)
		}
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].Orden < out[i].Orden {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (r *stubOrdenProduccionRepo) SavePasoTx(_ *gorm.DB, p *model.ProcesoOrden) error {
	for i := range r.pasos {
		if r.pasos[i].ID == p.ID {
			r.pasos[i] = p
			return nil
		}
	}
	r.pasos = append(r.pasos, p)
	return nil
}

func (r *stubOrdenProduccionRepo) DB() *gorm.DB { return nil }

var _ repository.OrdenProduccionRepository = (*stubOrdenProduccionRepo)(nil)

// ── Consumos ─────────────────────────────────────────────────────────────────

type stubConsumoRepo struct {
	mps   []*model.ConsumoMateriaPrima
	comps []*model.ConsumoProductoComponente
}

func (r *stubConsumoRepo) CreateMPTx(_ *gorm.DB, c *model.ConsumoMateriaPrima) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	r.mps = append(r.mps, c)
	return nil
}

func (r *stubConsumoRepo) FindMP(_ context.Context, id uuid.UUID) (*model.ConsumoMateriaPrima, error) {
	for _, c := range r.mps {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubConsumoRepo) FindMPTx(_ *gorm.DB, id uuid.UUID) (*model.ConsumoMateriaPrima, error) {
	return r.FindMP(context.Background(), id)
}

func (r *stubConsumoRepo) FindMPExistenteTx(_ *gorm.DB, ordenID uuid.UUID, pasoID *uuid.UUID, materiaPrimaID uuid.UUID) (*model.ConsumoMateriaPrima, error) {
	for _, c := range r.mps {
		if c.OrdenProduccionID != ordenID || c.MateriaPrimaID != materiaPrimaID {
			continue
		}
		if (c.ProcesoOrdenID == nil) != (pasoID == nil) {
			continue
		}
		if pasoID == nil || *c.ProcesoOrdenID == *pasoID {
			return c, nil
		}
	}
	return nil, nil
}

func (r *stubConsumoRepo) ListMPByOrden(_ context.Context, ordenID uuid.UUID) ([]model.ConsumoMateriaPrima, error) {
	return r.ListMPByOrdenTx(nil, ordenID)
}

func (r *stubConsumoRepo) ListMPByOrdenTx(_ *gorm.DB, ordenID uuid.UUID) ([]model.ConsumoMateriaPrima, error) {
	var out []model.ConsumoMateriaPrima
	for _, c := range r.mps {
		if c.OrdenProduccionID == ordenID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubConsumoRepo) ListMPByOrdenInsumoTx(_ *gorm.DB, ordenID, materiaPrimaID uuid.UUID) ([]model.ConsumoMateriaPrima, error) {
	var out []model.ConsumoMateriaPrima
	for _, c := range r.mps {
		if c.OrdenProduccionID == ordenID && c.MateriaPrimaID == materiaPrimaID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubConsumoRepo) SaveMPTx(_ *gorm.DB, c *model.ConsumoMateriaPrima) error {
	for i := range r.mps {
		if r.mps[i].ID == c.ID {
			r.mps[i] = c
			return nil
		}
	}
	r.mps = append(r.mps, c)
	return nil
}

func (r *stubConsumoRepo) DeleteMPTx(_ *gorm.DB, id uuid.UUID) error {
	out := r.mps[:0]
	for _, c := range r.mps {
		if c.ID != id {
			out = append(out, c)
		}
	}
	r.mps = out
	return nil
}

func (r *stubConsumoRepo) DeleteMPByOrdenTx(_ *gorm.DB, ordenID uuid.UUID) error {
	out := r.mps[:0]
	for _, c := range r.mps {
		if c.OrdenProduccionID != ordenID {
			out = append(out, c)
		}
	}
	r.mps = out
	return nil
}

func (r *stubConsumoRepo) CreateCompTx(_ *gorm.DB, c *model.ConsumoProductoComponente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	r.comps = append(r.comps, c)
	return nil
}

func (r *stubConsumoRepo) FindComp(_ context.Context, id uuid.UUID) (*model.ConsumoProductoComponente, error) {
	for _, c := range r.comps {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubConsumoRepo) FindCompTx(_ *gorm.DB, id uuid.UUID) (*model.ConsumoProductoComponente, error) {
	return r.FindComp(context.Background(), id)
}

func (r *stubConsumoRepo) FindCompExistenteTx(_ *gorm.DB, ordenID uuid.UUID, pasoID *uuid.UUID, componenteID uuid.UUID) (*model.ConsumoProductoComponente, error) {
	for _, c := range r.comps {
		if c.OrdenProduccionID != ordenID || c.ComponenteID != componenteID {
			continue
		}
		if (c.ProcesoOrdenID == nil) != (pasoID == nil) {
			continue
		}
		if pasoID == nil || *c.ProcesoOrdenID == *pasoID {
			return c, nil
		}
	}
	return nil, nil
}

func (r *stubConsumoRepo) ListCompByOrden(_ context.Context, ordenID uuid.UUID) ([]model.ConsumoProductoComponente, error) {
	return r.ListCompByOrdenTx(nil, ordenID)
}

func (r *stubConsumoRepo) ListCompByOrdenTx(_ *gorm.DB, ordenID uuid.UUID) ([]model.ConsumoProductoComponente, error) {
	var out []model.ConsumoProductoComponente
	for _, c := range r.comps {
		if c.OrdenProduccionID == ordenID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubConsumoRepo) ListCompByOrdenInsumoTx(_ *gorm.DB, ordenID, componenteID uuid.UUID) ([]model.ConsumoProductoComponente, error) {
	var out []model.ConsumoProductoComponente
	for _, c := range r.comps {
		if c.OrdenProduccionID == ordenID && c.ComponenteID == componenteID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubConsumoRepo) SaveCompTx(_ *gorm.DB, c *model.ConsumoProductoComponente) error {
	for i := range r.comps {
		if r.comps[i].ID == c.ID {
			r.comps[i] = c
			return nil
		}
	}
	r.comps = append(r.comps, c)
	return nil
}

func (r *stubConsumoRepo) DeleteCompTx(_ *gorm.DB, id uuid.UUID) error {
	out := r.comps[:0]
	for _, c := range r.comps {
		if c.ID != id {
			out = append(out, c)
		}
	}
	r.comps = out
	return nil
}

func (r *stubConsumoRepo) DeleteCompByOrdenTx(_ *gorm.DB, ordenID uuid.UUID) error {
	out := r.comps[:0]
	for _, c := range r.comps {
		if c.OrdenProduccionID != ordenID {
			out = append(out, c)
		}
	}
	r.comps = out
	return nil
}

func (r *stubConsumoRepo) DB() *gorm.DB { return nil }

var _ repository.ConsumoRepository = (*stubConsumoRepo)(nil)

// ── Orden de venta ───────────────────────────────────────────────────────────

type stubOrdenRepo struct {
	ordenes map[uuid.UUID]*model.Orden
}

func newStubOrdenRepo() *stubOrdenRepo {
	return &stubOrdenRepo{ordenes: make(map[uuid.UUID]*model.Orden)}
}

func (r *stubOrdenRepo) add(o *model.Orden) *model.Orden {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.ordenes[o.ID] = o
	return o
}

func (r *stubOrdenRepo) CreateTx(_ *gorm.DB, o *model.Orden) error {
	o.CreatedAt = time.Now()
	r.add(o)
	return nil
}

func (r *stubOrdenRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Orden, error) {
	o, ok := r.ordenes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (r *stubOrdenRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Orden, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubOrdenRepo) List(_ context.Context, _ dto.OrdenFilter) ([]model.Orden, int64, error) {
	return nil, 0, nil
}

func (r *stubOrdenRepo) Update(_ context.Context, o *model.Orden) error {
	r.ordenes[o.ID] = o
	return nil
}

func (r *stubOrdenRepo) SaveTx(_ *gorm.DB, o *model.Orden) error {
	copia := *o
	r.ordenes[o.ID] = &copia
	return nil
}

func (r *stubOrdenRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.ordenes, id)
	return nil
}

func (r *stubOrdenRepo) ExisteNumero(_ context.Context, numero string) (bool, error) {
	for _, o := range r.ordenes {
		if o.Numero == numero {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubOrdenRepo) ListPendientesCobroByClienteTx(_ *gorm.DB, clienteID uuid.UUID) ([]model.Orden, error) {
	var out []model.Orden
	for _, o := range r.ordenes {
		if o.ClienteID == clienteID && o.Estado == model.OrdenEnviada && o.Saldo.IsPositive() {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOrdenRepo) ListConPagoByClienteTx(_ *gorm.DB, clienteID uuid.UUID) ([]model.Orden, error) {
	var out []model.Orden
	for _, o := range r.ordenes {
		if o.ClienteID == clienteID && o.Total.GreaterThan(o.Saldo) {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOrdenRepo) ListAbiertasByCliente(_ context.Context, clienteID uuid.UUID) ([]model.Orden, error) {
	var out []model.Orden
	for _, o := range r.ordenes {
		if o.ClienteID == clienteID && o.Estado == model.OrdenEnviada && o.Saldo.IsPositive() {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOrdenRepo) DB() *gorm.DB { return nil }

var _ repository.OrdenRepository = (*stubOrdenRepo)(nil)

// ── Cliente ──────────────────────────────────────────────────────────────────

type stubClienteRepo struct {
	items map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{items: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) add(c *model.Cliente) *model.Cliente {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.items[c.ID] = c
	return c
}

func (r *stubClienteRepo) Crear(_ context.Context, c *model.Cliente) error {
	r.add(c)
	return nil
}

func (r *stubClienteRepo) Listar(_ context.Context, _ string) ([]model.Cliente, error) {
	var out []model.Cliente
	for _, c := range r.items {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubClienteRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClienteRepo) Actualizar(_ context.Context, c *model.Cliente) error {
	r.items[c.ID] = c
	return nil
}

func (r *stubClienteRepo) Eliminar(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *stubClienteRepo) ContarOrdenes(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

func (r *stubClienteRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Cliente, error) {
	return r.ObtenerPorID(context.Background(), id)
}

func (r *stubClienteRepo) SaveTx(_ *gorm.DB, c *model.Cliente) error {
	r.items[c.ID] = c
	return nil
}

func (r *stubClienteRepo) DB() *gorm.DB { return nil }

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// ── Tipo de pago ─────────────────────────────────────────────────────────────

type stubTipoPagoRepo struct {
	items map[uuid.UUID]*model.TipoPago
}

func newStubTipoPagoRepo() *stubTipoPagoRepo {
	return &stubTipoPagoRepo{items: make(map[uuid.UUID]*model.TipoPago)}
}

func (r *stubTipoPagoRepo) add(t *model.TipoPago) *model.TipoPago {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.items[t.ID] = t
	return t
}

func (r *stubTipoPagoRepo) Crear(_ context.Context, t *model.TipoPago) error {
	r.add(t)
	return nil
}

func (r *stubTipoPagoRepo) Listar(_ context.Context) ([]model.TipoPago, error) { return nil, nil }

func (r *stubTipoPagoRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.TipoPago, error) {
	t, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *stubTipoPagoRepo) Actualizar(_ context.Context, t *model.TipoPago) error {
	r.items[t.ID] = t
	return nil
}

func (r *stubTipoPagoRepo) Desactivar(_ context.Context, id uuid.UUID) error {
	if t, ok := r.items[id]; ok {
		t.Activo = false
	}
	return nil
}

func (r *stubTipoPagoRepo) ContarOrdenes(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

var _ repository.TipoPagoRepository = (*stubTipoPagoRepo)(nil)

// ── Banco ────────────────────────────────────────────────────────────────────

type stubBancoRepo struct {
	items map[uuid.UUID]*model.Banco
}

func newStubBancoRepo() *stubBancoRepo {
	return &stubBancoRepo{items: make(map[uuid.UUID]*model.Banco)}
}

func (r *stubBancoRepo) add(b *model.Banco) *model.Banco {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.items[b.ID] = b
	return b
}

func (r *stubBancoRepo) Crear(_ context.Context, b *model.Banco) error {
	r.add(b)
	return nil
}

func (r *stubBancoRepo) List(_ context.Context, _ dto.BancoFilter) ([]model.Banco, int64, error) {
	return nil, 0, nil
}

func (r *stubBancoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Banco, error) {
	b, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (r *stubBancoRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Banco, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubBancoRepo) Update(_ context.Context, b *model.Banco) error {
	r.items[b.ID] = b
	return nil
}

func (r *stubBancoRepo) SaveTx(_ *gorm.DB, b *model.Banco) error {
	r.items[b.ID] = b
	return nil
}

func (r *stubBancoRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *stubBancoRepo) DB() *gorm.DB { return nil }

var _ repository.BancoRepository = (*stubBancoRepo)(nil)
