package service

import (
	"context"
	"testing"
	"time"

	"github.com/Alexistodj124/CoprodaBackEnd/internal/domain"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/dto"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pagoFixture struct {
	svc PagoService

	bancoRepo   *stubBancoRepo
	ordenRepo   *stubOrdenRepo
	clienteRepo *stubClienteRepo

	cliente  *model.Cliente
	credito7 *model.TipoPago
}

func newPagoFixture(t *testing.T) *pagoFixture {
	t.Helper()
	f := &pagoFixture{
		bancoRepo:   newStubBancoRepo(),
		ordenRepo:   newStubOrdenRepo(),
		clienteRepo: newStubClienteRepo(),
	}
	f.cliente = f.clienteRepo.add(&model.Cliente{
		Codigo: "CLI-001", Nombre: "Panadería Sur", Saldo: dec("180"),
	})
	f.credito7 = &model.TipoPago{Nombre: "Crédito 7 días", DiasCredito: 7, Activo: true}
	f.svc = NewPagoService(f.bancoRepo, f.ordenRepo, f.clienteRepo)
	return f
}

// ordenEnviada seeds a shipped order with an open balance equal to its total.
func (f *pagoFixture) ordenEnviada(numero string, total string, enviadaHace int) *model.Orden {
	fecha := time.Now().AddDate(0, 0, -enviadaHace)
	return f.ordenRepo.add(&model.Orden{
		Numero:     numero,
		ClienteID:  f.cliente.ID,
		Estado:     model.OrdenEnviada,
		Fecha:      fecha,
		FechaEnvio: &fecha,
		Total:      dec(total),
		Saldo:      dec(total),
		TipoPago:   f.credito7,
		CreatedAt:  fecha,
	})
}

func (f *pagoFixture) deposito(monto string) *model.Banco {
	return f.bancoRepo.add(&model.Banco{Referencia: "REF-1", Banco: "Industrial", Monto: dec(monto)})
}

func TestOrdenarPorUrgencia(t *testing.T) {
	hoy := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	vencida := time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC)  // 7 días de crédito, vencida hace 6
	alDia := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)     // vence en 5
	contado := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)  // sin tipo de pago, vence hoy
	credito := &model.TipoPago{Nombre: "Crédito 7 días", DiasCredito: 7}

	ordenes := []model.Orden{
		{Numero: "B", Fecha: alDia, FechaEnvio: &alDia, TipoPago: credito},
		{Numero: "C", Fecha: contado},
		{Numero: "A", Fecha: vencida, FechaEnvio: &vencida, TipoPago: credito},
	}
	ordenarPorUrgencia(ordenes, hoy)

	assert.Equal(t, "A", ordenes[0].Numero) // overdue first
	assert.Equal(t, "C", ordenes[1].Numero)
	assert.Equal(t, "B", ordenes[2].Numero)
}

func TestOrdenarPorUrgenciaDesempataPorCreacion(t *testing.T) {
	hoy := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	fecha := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	ordenes := []model.Orden{
		{Numero: "segunda", Fecha: fecha, CreatedAt: fecha.Add(2 * time.Hour)},
		{Numero: "primera", Fecha: fecha, CreatedAt: fecha.Add(1 * time.Hour)},
	}
	ordenarPorUrgencia(ordenes, hoy)

	assert.Equal(t, "primera", ordenes[0].Numero)
	assert.Equal(t, "segunda", ordenes[1].Numero)
}

func TestAsignarCubreOrdenesPorUrgencia(t *testing.T) {
	f := newPagoFixture(t)
	vieja := f.ordenEnviada("CLI-001-100", "100", 5)
	nueva := f.ordenEnviada("CLI-001-200", "80", 2)
	banco := f.deposito("150")

	resp, err := f.svc.Asignar(context.Background(), banco.ID, dto.AsignarBancoRequest{
		ClienteID: f.cliente.ID.String(),
	})
	require.NoError(t, err)
	assert.True(t, resp.MontoAsignado.Equal(dec("150")))
	assert.True(t, resp.SobranteACredito.IsZero())
	require.Len(t, resp.Ordenes, 2)
	assert.Equal(t, vieja.Numero, resp.Ordenes[0].Numero)
	assert.True(t, resp.Ordenes[0].Aplicado.Equal(dec("100")))
	assert.True(t, resp.Ordenes[1].Aplicado.Equal(dec("50")))

	pagada, err := f.ordenRepo.FindByID(context.Background(), vieja.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrdenPagada, pagada.Estado)
	assert.True(t, pagada.Saldo.IsZero())
	assert.NotNil(t, pagada.FechaPago, "zero balance stamps the payment date")

	parcial, err := f.ordenRepo.FindByID(context.Background(), nueva.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrdenEnviada, parcial.Estado)
	assert.True(t, parcial.Saldo.Equal(dec("30")))
	assert.Nil(t, parcial.FechaPago)

	assert.True(t, f.cliente.Saldo.Equal(dec("30")))
	assert.True(t, banco.Asignado)
	require.NotNil(t, banco.ClienteID)
	assert.Equal(t, f.cliente.ID, *banco.ClienteID)
}

func TestAsignarSobranteQuedaComoCredito(t *testing.T) {
	f := newPagoFixture(t)
	f.ordenEnviada("CLI-001-100", "100", 5)
	f.ordenEnviada("CLI-001-200", "80", 2)
	banco := f.deposito("200")

	resp, err := f.svc.Asignar(context.Background(), banco.ID, dto.AsignarBancoRequest{
		ClienteID: f.cliente.ID.String(),
	})
	require.NoError(t, err)
	assert.True(t, resp.MontoAsignado.Equal(dec("180")))
	assert.True(t, resp.SobranteACredito.Equal(dec("20")))

	// The full deposit leaves the account, so the customer ends in credit.
	assert.True(t, f.cliente.Saldo.Equal(dec("-20")))
}

func TestAsignarSinOrdenesPendientes(t *testing.T) {
	f := newPagoFixture(t)
	banco := f.deposito("150")

	_, err := f.svc.Asignar(context.Background(), banco.ID, dto.AsignarBancoRequest{
		ClienteID: f.cliente.ID.String(),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Nothing moved: the deposit stays unassigned and the balance intact.
	assert.False(t, banco.Asignado)
	assert.True(t, f.cliente.Saldo.Equal(dec("180")))
}

func TestAsignarMontoNoPositivo(t *testing.T) {
	f := newPagoFixture(t)
	f.ordenEnviada("CLI-001-100", "100", 5)
	banco := f.bancoRepo.add(&model.Banco{Referencia: "REF-0", Banco: "Industrial", Monto: dec("0")})

	_, err := f.svc.Asignar(context.Background(), banco.ID, dto.AsignarBancoRequest{
		ClienteID: f.cliente.ID.String(),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	asignado := f.bancoRepo.add(&model.Banco{
		Referencia: "REF-X", Banco: "Industrial", Monto: dec("0"),
		Asignado: true, ClienteID: &f.cliente.ID,
	})
	err = f.svc.EliminarBanco(context.Background(), asignado.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAsignarDepositoYaAsignado(t *testing.T) {
	f := newPagoFixture(t)
	f.ordenEnviada("CLI-001-100", "100", 5)
	banco := f.deposito("50")

	_, err := f.svc.Asignar(context.Background(), banco.ID, dto.AsignarBancoRequest{ClienteID: f.cliente.ID.String()})
	require.NoError(t, err)
	_, err = f.svc.Asignar(context.Background(), banco.ID, dto.AsignarBancoRequest{ClienteID: f.cliente.ID.String()})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestEliminarBancoAsignadoRevierte(t *testing.T) {
	f := newPagoFixture(t)
	vieja := f.ordenEnviada("CLI-001-100", "100", 5)
	nueva := f.ordenEnviada("CLI-001-200", "80", 2)
	banco := f.deposito("150")

	_, err := f.svc.Asignar(context.Background(), banco.ID, dto.AsignarBancoRequest{ClienteID: f.cliente.ID.String()})
	require.NoError(t, err)
	require.True(t, f.cliente.Saldo.Equal(dec("30")))

	require.NoError(t, f.svc.EliminarBanco(context.Background(), banco.ID))

	restaurada, err := f.ordenRepo.FindByID(context.Background(), vieja.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrdenEnviada, restaurada.Estado)
	assert.True(t, restaurada.Saldo.Equal(dec("100")))
	assert.Nil(t, restaurada.FechaPago, "the reversal clears the payment date")

	parcial, err := f.ordenRepo.FindByID(context.Background(), nueva.ID)
	require.NoError(t, err)
	assert.True(t, parcial.Saldo.Equal(dec("80")))

	assert.True(t, f.cliente.Saldo.Equal(dec("180")))

	_, err = f.svc.ObtenerBanco(context.Background(), banco.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEliminarBancoSinAsignar(t *testing.T) {
	f := newPagoFixture(t)
	banco := f.deposito("99")

	require.NoError(t, f.svc.EliminarBanco(context.Background(), banco.ID))
	assert.True(t, f.cliente.Saldo.Equal(dec("180")), "balance untouched")

	_, err := f.svc.ObtenerBanco(context.Background(), banco.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCrearBancoValidaciones(t *testing.T) {
	f := newPagoFixture(t)

	_, err := f.svc.CrearBanco(context.Background(), dto.CrearBancoRequest{Monto: dec("0")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	mala := "10/03/2026"
	_, err = f.svc.CrearBanco(context.Background(), dto.CrearBancoRequest{Monto: dec("10"), Fecha: &mala})
	assert.ErrorIs(t, err, domain.ErrValidation)

	buena := "2026-03-10"
	resp, err := f.svc.CrearBanco(context.Background(), dto.CrearBancoRequest{
		Monto: dec("10"), Fecha: &buena, Referencia: "REF-2", Banco: "BAM",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Fecha)
	assert.Equal(t, "2026-03-10", *resp.Fecha)
	assert.False(t, resp.Asignado)
}
