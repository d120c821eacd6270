package service

import (
	"context"
	"testing"

	"github.com/Alexistodj124/CoprodaBackEnd/internal/domain"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/dto"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// produccionFixture wires a production service over in-memory stubs with
// one finished product, one raw material, one sub-component and a two-step
// route. The raw material BOM line is bound to the second process.
type produccionFixture struct {
	svc ProduccionService

	ordenRepo   *stubOrdenProduccionRepo
	mpRepo      *stubMateriaPrimaRepo
	prodRepo    *stubProductoRepo
	bomRepo     *stubBomRepo
	procesoRepo *stubProcesoRepo
	consumoRepo *stubConsumoRepo

	producto   *model.Producto
	componente *model.Producto
	harina     *model.MateriaPrima
	proceso1   *model.Proceso
	proceso2   *model.Proceso
}

func newProduccionFixture(t *testing.T) *produccionFixture {
	t.Helper()
	f := &produccionFixture{
		ordenRepo:   newStubOrdenProduccionRepo(),
		mpRepo:      newStubMateriaPrimaRepo(),
		prodRepo:    newStubProductoRepo(),
		bomRepo:     &stubBomRepo{},
		procesoRepo: newStubProcesoRepo(),
		consumoRepo: &stubConsumoRepo{},
	}

	f.harina = f.mpRepo.add(&model.MateriaPrima{
		Nombre: "Harina", Codigo: "MP-001", Unidad: "kg",
		Stock: model.Stock{StockActual: dec("100")},
	})
	f.componente = f.prodRepo.add(&model.Producto{
		Nombre: "Masa base", Codigo: "COMP-001", EsProductoFinal: false, Activo: true,
		Stock: model.Stock{StockActual: dec("40")},
	})
	f.producto = f.prodRepo.add(&model.Producto{
		Nombre: "Pan integral", Codigo: "PF-001", EsProductoFinal: true, Activo: true,
	})

	f.proceso1 = &model.Proceso{Nombre: "Amasado", Activo: true}
	f.proceso2 = &model.Proceso{Nombre: "Horneado", Activo: true}
	require.NoError(t, f.procesoRepo.Crear(context.Background(), f.proceso1))
	require.NoError(t, f.procesoRepo.Crear(context.Background(), f.proceso2))

	require.NoError(t, f.procesoRepo.CrearPaso(context.Background(), &model.ProductoProceso{
		ProductoID: f.producto.ID, ProcesoID: f.proceso1.ID, Orden: 1,
	}))
	require.NoError(t, f.procesoRepo.CrearPaso(context.Background(), &model.ProductoProceso{
		ProductoID: f.producto.ID, ProcesoID: f.proceso2.ID, Orden: 2,
	}))

	// (2.5 + 0.1) per unit of harina, posted when Horneado completes.
	require.NoError(t, f.bomRepo.CrearLineaMP(context.Background(), &model.ProductoMateriaPrima{
		ProductoID: f.producto.ID, MateriaPrimaID: f.harina.ID, ProcesoID: &f.proceso2.ID,
		CantidadNecesaria: dec("2.5"), MermaEstandar: dec("0.1"),
	}))
	// One componente per unit, unbound (no process).
	require.NoError(t, f.bomRepo.CrearLineaComp(context.Background(), &model.ProductoComponente{
		ProductoID: f.producto.ID, ComponenteID: f.componente.ID,
		CantidadNecesaria: dec("1"), MermaEstandar: dec("0"),
	}))

	f.svc = NewProduccionService(f.ordenRepo, f.prodRepo, f.mpRepo, f.bomRepo, f.procesoRepo, f.consumoRepo)
	return f
}

func (f *produccionFixture) crearOrden(t *testing.T, cantidad string) *dto.OrdenProduccionResponse {
	t.Helper()
	resp, err := f.svc.Crear(context.Background(), dto.CrearOrdenProduccionRequest{
		ProductoID:       f.producto.ID.String(),
		CantidadPlaneada: dec(cantidad),
	})
	require.NoError(t, err)
	return resp
}

func TestCrearOrdenReservaInsumos(t *testing.T) {
	f := newProduccionFixture(t)

	resp := f.crearOrden(t, "10")
	assert.Equal(t, model.OrdenProduccionPlanificada, resp.Estado)
	assert.NotEmpty(t, resp.CodigoOrden)

	// (2.5 + 0.1) * 10 = 26 reserved on harina, 10 on the componente.
	assert.True(t, f.harina.StockReservado.Equal(dec("26")), "reservado %s", f.harina.StockReservado)
	assert.True(t, f.harina.StockActual.Equal(dec("100")), "on-hand untouched at creation")
	assert.True(t, f.componente.StockReservado.Equal(dec("10")))

	ordenID := uuid.MustParse(resp.ID)
	mps, err := f.consumoRepo.ListMPByOrden(context.Background(), ordenID)
	require.NoError(t, err)
	require.Len(t, mps, 1)
	assert.True(t, mps[0].CantidadTeorica.Equal(dec("26")))
	assert.Nil(t, mps[0].CantidadReal)

	pasos, err := f.ordenRepo.ListPasos(context.Background(), ordenID)
	require.NoError(t, err)
	require.Len(t, pasos, 2)
	assert.Equal(t, model.ProcesoOrdenPendiente, pasos[0].Estado)
}

func TestCrearOrdenSinStockSuficiente(t *testing.T) {
	f := newProduccionFixture(t)
	f.harina.StockActual = dec("20") // needs 26

	_, err := f.svc.Crear(context.Background(), dto.CrearOrdenProduccionRequest{
		ProductoID:       f.producto.ID.String(),
		CantidadPlaneada: dec("10"),
	})
	var insuf *domain.InsufficientStockError
	require.ErrorAs(t, err, &insuf)
	assert.Equal(t, "Harina", insuf.Recurso)
}

func TestCrearOrdenSinRuta(t *testing.T) {
	f := newProduccionFixture(t)
	f.procesoRepo.rutas = nil

	_, err := f.svc.Crear(context.Background(), dto.CrearOrdenProduccionRequest{
		ProductoID:       f.producto.ID.String(),
		CantidadPlaneada: dec("10"),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCancelarLiberaReservas(t *testing.T) {
	f := newProduccionFixture(t)
	resp := f.crearOrden(t, "10")
	ordenID := uuid.MustParse(resp.ID)

	out, err := f.svc.Cancelar(context.Background(), ordenID)
	require.NoError(t, err)
	assert.Equal(t, model.OrdenProduccionCancelada, out.Estado)
	assert.NotNil(t, out.FechaFin)
	assert.True(t, f.harina.StockReservado.IsZero())
	assert.True(t, f.componente.StockReservado.IsZero())

	// Cancelling twice is a conflict.
	_, err = f.svc.Cancelar(context.Background(), ordenID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestEliminarOrdenConActividad(t *testing.T) {
	f := newProduccionFixture(t)
	resp := f.crearOrden(t, "10")
	ordenID := uuid.MustParse(resp.ID)

	_, err := f.svc.Iniciar(context.Background(), ordenID)
	require.NoError(t, err)

	err = f.svc.Eliminar(context.Background(), ordenID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestEliminarOrdenPlanificadaLiberaYBorra(t *testing.T) {
	f := newProduccionFixture(t)
	resp := f.crearOrden(t, "10")
	ordenID := uuid.MustParse(resp.ID)

	require.NoError(t, f.svc.Eliminar(context.Background(), ordenID))
	assert.True(t, f.harina.StockReservado.IsZero())

	_, err := f.svc.Obtener(context.Background(), ordenID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	mps, err := f.consumoRepo.ListMPByOrden(context.Background(), ordenID)
	require.NoError(t, err)
	assert.Empty(t, mps)
}

func TestPausarSoloEnProceso(t *testing.T) {
	f := newProduccionFixture(t)
	resp := f.crearOrden(t, "10")
	ordenID := uuid.MustParse(resp.ID)

	_, err := f.svc.Pausar(context.Background(), ordenID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.svc.Iniciar(context.Background(), ordenID)
	require.NoError(t, err)
	out, err := f.svc.Pausar(context.Background(), ordenID)
	require.NoError(t, err)
	assert.Equal(t, model.OrdenProduccionPausada, out.Estado)
}

func TestCerrarConCantidadExplicita(t *testing.T) {
	f := newProduccionFixture(t)
	resp := f.crearOrden(t, "10")
	ordenID := uuid.MustParse(resp.ID)

	producida := dec("9.5")
	out, err := f.svc.Cerrar(context.Background(), ordenID, dto.CerrarOrdenRequest{CantidadProducida: &producida})
	require.NoError(t, err)
	assert.Equal(t, model.OrdenProduccionCompletada, out.Estado)
	assert.True(t, out.CantidadProducida.Equal(dec("9.5")))
	assert.NotNil(t, out.FechaFin)
}

func TestActualizarRechazaEstadosTerminales(t *testing.T) {
	f := newProduccionFixture(t)
	resp := f.crearOrden(t, "10")
	ordenID := uuid.MustParse(resp.ID)

	cancelada := model.OrdenProduccionCancelada
	_, err := f.svc.Actualizar(context.Background(), ordenID, dto.ActualizarOrdenProduccionRequest{Estado: &cancelada})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
