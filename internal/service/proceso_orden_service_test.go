package service

import (
	"context"
	"testing"

	"github.com/Alexistodj124/CoprodaBackEnd/internal/domain"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/dto"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// pasosDeOrden returns the step instances of the order sorted by position.
func pasosDeOrden(t *testing.T, f *produccionFixture, ordenID uuid.UUID) []model.ProcesoOrden {
	t.Helper()
	pasos, err := f.ordenRepo.ListPasos(context.Background(), ordenID)
	require.NoError(t, err)
	require.Len(t, pasos, 2)
	return pasos
}

func TestIniciarPasoRespetaElOrdenDeRuta(t *testing.T) {
	f := newProduccionFixture(t)
	resp := f.crearOrden(t, "10")
	ordenID := uuid.MustParse(resp.ID)
	pasos := pasosDeOrden(t, f, ordenID)

	// Step 2 cannot start while step 1 has neither closed nor reported output.
	_, err := f.svc.IniciarPaso(context.Background(), pasos[1].ID)
	assert.ErrorIs(t, err, domain.ErrValidation)

	out, err := f.svc.IniciarPaso(context.Background(), pasos[0].ID)
	require.NoError(t, err)
	assert.Equal(t, model.ProcesoOrdenEnProceso, out.Estado)
	assert.NotNil(t, out.FechaInicio)

	// Starting the first step drags the order into EN_PROCESO.
	orden, err := f.svc.Obtener(context.Background(), ordenID)
	require.NoError(t, err)
	assert.Equal(t, model.OrdenProduccionEnProceso, orden.Estado)
}

func TestCompletarPasoDerivaPerdida(t *testing.T) {
	f := newProduccionFixture(t)
	resp := f.crearOrden(t, "10")
	ordenID := uuid.MustParse(resp.ID)
	pasos := pasosDeOrden(t, f, ordenID)

	_, err := f.svc.IniciarPaso(context.Background(), pasos[0].ID)
	require.NoError(t, err)

	out, err := f.svc.CompletarPaso(context.Background(), pasos[0].ID, dto.CompletarPasoRequest{
		CantidadEntrada: decPtr("10"),
		CantidadSalida:  decPtr("9.8"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.ProcesoOrdenCompletado, out.Estado)
	require.NotNil(t, out.CantidadPerdida)
	assert.True(t, out.CantidadPerdida.Equal(dec("0.2")))

	// No BOM line is bound to the first process, so nothing posted yet.
	assert.True(t, f.harina.StockActual.Equal(dec("100")))
	assert.True(t, f.harina.StockReservado.Equal(dec("26")))
}

func TestCompletarPasoSinEntradaDejaPerdidaNula(t *testing.T) {
	f := newProduccionFixture(t)
	resp := f.crearOrden(t, "10")
	ordenID := uuid.MustParse(resp.ID)
	pasos := pasosDeOrden(t, f, ordenID)

	_, err := f.svc.IniciarPaso(context.Background(), pasos[0].ID)
	require.NoError(t, err)

	out, err := f.svc.CompletarPaso(context.Background(), pasos[0].ID, dto.CompletarPasoRequest{
		CantidadSalida: decPtr("9.8"),
	})
	require.NoError(t, err)
	// An unknown loss stays unknown, it is not coerced to zero.
	assert.Nil(t, out.CantidadPerdida)
}

func TestCompletarPasoParcialNoCierra(t *testing.T) {
	f := newProduccionFixture(t)
	resp := f.crearOrden(t, "10")
	ordenID := uuid.MustParse(resp.ID)
	pasos := pasosDeOrden(t, f, ordenID)

	_, err := f.svc.IniciarPaso(context.Background(), pasos[0].ID)
	require.NoError(t, err)

	out, err := f.svc.CompletarPaso(context.Background(), pasos[0].ID, dto.CompletarPasoRequest{
		CantidadEntrada: decPtr("10"),
		Parcial:         true,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ProcesoOrdenEnProceso, out.Estado)
	require.NotNil(t, out.CantidadEntrada)
	assert.True(t, out.CantidadEntrada.Equal(dec("10")))
	assert.Nil(t, out.FechaFin)
}

func TestCompletarPasoEntradaLimitadaPorSalidaAnterior(t *testing.T) {
	f := newProduccionFixture(t)
	resp := f.crearOrden(t, "10")
	ordenID := uuid.MustParse(resp.ID)
	pasos := pasosDeOrden(t, f, ordenID)

	_, err := f.svc.IniciarPaso(context.Background(), pasos[0].ID)
	require.NoError(t, err)
	_, err = f.svc.CompletarPaso(context.Background(), pasos[0].ID, dto.CompletarPasoRequest{
		CantidadEntrada: decPtr("10"),
		CantidadSalida:  decPtr("9.8"),
	})
	require.NoError(t, err)

	_, err = f.svc.IniciarPaso(context.Background(), pasos[1].ID)
	require.NoError(t, err)
	_, err = f.svc.CompletarPaso(context.Background(), pasos[1].ID, dto.CompletarPasoRequest{
		CantidadEntrada: decPtr("10.5"), // step 1 only produced 9.8
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCompletarUltimoPasoConsumeYCierra(t *testing.T) {
	f := newProduccionFixture(t)
	resp := f.crearOrden(t, "10")
	ordenID := uuid.MustParse(resp.ID)
	pasos := pasosDeOrden(t, f, ordenID)

	_, err := f.svc.IniciarPaso(context.Background(), pasos[0].ID)
	require.NoError(t, err)
	_, err = f.svc.CompletarPaso(context.Background(), pasos[0].ID, dto.CompletarPasoRequest{
		CantidadEntrada: decPtr("10"),
		CantidadSalida:  decPtr("9.8"),
	})
	require.NoError(t, err)

	_, err = f.svc.IniciarPaso(context.Background(), pasos[1].ID)
	require.NoError(t, err)
	out, err := f.svc.CompletarPaso(context.Background(), pasos[1].ID, dto.CompletarPasoRequest{
		CantidadEntrada: decPtr("9.8"),
		CantidadSalida:  decPtr("9.5"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.ProcesoOrdenCompletado, out.Estado)

	// Auto-posting at base 9.5: (2.5 + 0.1) * 9.5 = 24.7 drawn from
	// on-hand and released from the reservation.
	assert.True(t, f.harina.StockActual.Equal(dec("75.3")), "actual %s", f.harina.StockActual)
	assert.True(t, f.harina.StockReservado.Equal(dec("1.3")), "reservado %s", f.harina.StockReservado)

	mps, err := f.consumoRepo.ListMPByOrden(context.Background(), ordenID)
	require.NoError(t, err)
	require.Len(t, mps, 2) // the order-level entry plus the step entry
	var auto *model.ConsumoMateriaPrima
	for i := range mps {
		if mps[i].ProcesoOrdenID != nil {
			auto = &mps[i]
		}
	}
	require.NotNil(t, auto)
	assert.True(t, auto.CantidadTeorica.Equal(dec("24.7")))
	require.NotNil(t, auto.CantidadReal)
	assert.True(t, auto.CantidadReal.Equal(dec("24.7")))
	require.NotNil(t, auto.Desperdicio)
	assert.True(t, auto.Desperdicio.IsZero())

	// The unbound componente line is never auto-posted by a step.
	comps, err := f.consumoRepo.ListCompByOrden(context.Background(), ordenID)
	require.NoError(t, err)
	require.Len(t, comps, 1)
	assert.Nil(t, comps[0].CantidadReal)

	// Every step closed: the order completes with the last output.
	orden, err := f.svc.Obtener(context.Background(), ordenID)
	require.NoError(t, err)
	assert.Equal(t, model.OrdenProduccionCompletada, orden.Estado)
	assert.True(t, orden.CantidadProducida.Equal(dec("9.5")))
	assert.NotNil(t, orden.FechaFin)
}

func TestAutoConsumoEsIdempotente(t *testing.T) {
	f := newProduccionFixture(t)
	resp := f.crearOrden(t, "10")
	ordenID := uuid.MustParse(resp.ID)
	pasos := pasosDeOrden(t, f, ordenID)

	svc := f.svc.(*produccionService)
	orden, err := f.ordenRepo.FindByID(context.Background(), ordenID)
	require.NoError(t, err)
	paso, err := f.ordenRepo.FindPaso(context.Background(), pasos[1].ID)
	require.NoError(t, err)

	require.NoError(t, svc.autoConsumirPasoTx(nil, orden, paso, dec("9.5")))
	actual := f.harina.StockActual
	reservado := f.harina.StockReservado

	// Replaying the same step posts nothing new.
	require.NoError(t, svc.autoConsumirPasoTx(nil, orden, paso, dec("9.5")))
	assert.True(t, f.harina.StockActual.Equal(actual))
	assert.True(t, f.harina.StockReservado.Equal(reservado))

	mps, err := f.consumoRepo.ListMPByOrden(context.Background(), ordenID)
	require.NoError(t, err)
	assert.Len(t, mps, 2)
}

func TestPausarPasoSoloEnProceso(t *testing.T) {
	f := newProduccionFixture(t)
	resp := f.crearOrden(t, "10")
	pasos := pasosDeOrden(t, f, uuid.MustParse(resp.ID))

	_, err := f.svc.PausarPaso(context.Background(), pasos[0].ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.svc.IniciarPaso(context.Background(), pasos[0].ID)
	require.NoError(t, err)
	out, err := f.svc.PausarPaso(context.Background(), pasos[0].ID)
	require.NoError(t, err)
	assert.Equal(t, model.ProcesoOrdenPausado, out.Estado)
}

func TestCompletarPasoRechazaCantidadesNegativas(t *testing.T) {
	f := newProduccionFixture(t)
	resp := f.crearOrden(t, "10")
	pasos := pasosDeOrden(t, f, uuid.MustParse(resp.ID))

	_, err := f.svc.IniciarPaso(context.Background(), pasos[0].ID)
	require.NoError(t, err)
	_, err = f.svc.CompletarPaso(context.Background(), pasos[0].ID, dto.CompletarPasoRequest{
		CantidadSalida: decPtr("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
