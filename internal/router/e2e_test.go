//go:build integration

package router_test

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Alexistodj124/CoprodaBackEnd/internal/config"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/dto"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/infra"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/model"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/router"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func ptr[T any](v T) *T { return &v }

// ── Suite setup ──────────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("coproda_test"),
		tcPostgres.WithUsername("coproda"),
		tcPostgres.WithPassword("coproda"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("admin-e2e-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.Usuario{
		Username:     "admin",
		Nombre:       "Admin E2E",
		PasswordHash: string(hash),
		Rol:          "administrador",
		Activo:       true,
	}).Error)

	srv := httptest.NewServer(router.New(cfg, db, rdb))
	t.Cleanup(srv.Close)

	resp := do(t, srv, http.MethodPost, "/v1/auth/login", jsonBody(t, dto.LoginRequest{
		Username: "admin",
		Password: "admin-e2e-pass",
	}), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login dto.LoginResponse
	decodeJSON(t, resp, &login)
	require.NotEmpty(t, login.AccessToken)

	return &testEnv{server: srv, token: login.AccessToken}
}

// crearCatalogoBase seeds a category, a finished product, a raw material, a
// process, a one-line recipe bound to that process and a one-step route.
type catalogo struct {
	productoID     string
	productoCodigo string
	materiaPrimaID string
	procesoID      string
}

func (e *testEnv) crearCatalogoBase(t *testing.T) *catalogo {
	t.Helper()
	srv, token := e.server, e.token

	resp := do(t, srv, http.MethodPost, "/v1/categorias", jsonBody(t, dto.CrearCategoriaRequest{Nombre: "Panificados"}), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var cat dto.CategoriaResponse
	decodeJSON(t, resp, &cat)

	resp = do(t, srv, http.MethodPost, "/v1/materias-primas", jsonBody(t, dto.CrearMateriaPrimaRequest{
		Nombre: "Harina", Codigo: "MP-001", Unidad: "kg",
		CostoUnidad: d("2"), StockActual: ptr(d("100")),
	}), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var mp dto.MateriaPrimaResponse
	decodeJSON(t, resp, &mp)

	resp = do(t, srv, http.MethodPost, "/v1/procesos", jsonBody(t, dto.CrearProcesoRequest{Nombre: "Horneado"}), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var proceso dto.ProcesoResponse
	decodeJSON(t, resp, &proceso)

	resp = do(t, srv, http.MethodPost, "/v1/productos", jsonBody(t, dto.CrearProductoRequest{
		Nombre: "Pan integral", Codigo: "PF-001", CategoriaID: cat.ID,
		EsProductoFinal: ptr(true), PrecioCF: d("12.50"),
	}), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var producto dto.ProductoResponse
	decodeJSON(t, resp, &producto)

	resp = do(t, srv, http.MethodPost, "/v1/productos/"+producto.ID+"/bom/materias-primas", jsonBody(t, dto.CrearLineaBomRequest{
		InsumoID: mp.ID, ProcesoID: &proceso.ID,
		CantidadNecesaria: d("2.5"), MermaEstandar: d("0.1"),
	}), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, srv, http.MethodPost, "/v1/productos/"+producto.ID+"/ruta", jsonBody(t, dto.CrearPasoRutaRequest{
		ProcesoID: proceso.ID, Orden: 1,
	}), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	return &catalogo{
		productoID:     producto.ID,
		productoCodigo: producto.Codigo,
		materiaPrimaID: mp.ID,
		procesoID:      proceso.ID,
	}
}

func (e *testEnv) materiaPrima(t *testing.T, id string) dto.MateriaPrimaResponse {
	t.Helper()
	resp := do(t, e.server, http.MethodGet, "/v1/materias-primas/"+id, nil, e.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mp dto.MateriaPrimaResponse
	decodeJSON(t, resp, &mp)
	return mp
}

// ── Tests ────────────────────────────────────────────────────────────────────

// Full production cycle: catalog → recipe → order → shop-floor step →
// automatic consumption posting → order close.
func TestProduccionEndToEnd(t *testing.T) {
	env := setupTestEnv(t)
	srv, token := env.server, env.token

	// Protected routes reject anonymous access.
	resp := do(t, srv, http.MethodGet, "/v1/productos", nil, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	cat := env.crearCatalogoBase(t)

	// Creating a production order of 10 units reserves (2.5+0.1)*10 = 26.
	resp = do(t, srv, http.MethodPost, "/v1/ordenes-produccion", jsonBody(t, dto.CrearOrdenProduccionRequest{
		ProductoID: cat.productoID, CantidadPlaneada: d("10"),
	}), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var orden dto.OrdenProduccionResponse
	decodeJSON(t, resp, &orden)
	assert.Equal(t, "PLANIFICADA", orden.Estado)

	mp := env.materiaPrima(t, cat.materiaPrimaID)
	assert.True(t, mp.StockReservado.Equal(d("26")), "reservado %s", mp.StockReservado)
	assert.True(t, mp.StockActual.Equal(d("100")))
	assert.True(t, mp.StockDisponible.Equal(d("74")))

	resp = do(t, srv, http.MethodGet, "/v1/ordenes-produccion/"+orden.ID, nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &orden)
	require.Len(t, orden.Procesos, 1)
	pasoID := orden.Procesos[0].ID

	resp = do(t, srv, http.MethodPost, "/v1/pasos-produccion/"+pasoID+"/iniciar", jsonBody(t, struct{}{}), token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Closing the only step posts the bound recipe line at the step output
	// and completes the order.
	resp = do(t, srv, http.MethodPost, "/v1/pasos-produccion/"+pasoID+"/completar", jsonBody(t, dto.CompletarPasoRequest{
		CantidadEntrada: ptr(d("10")),
		CantidadSalida:  ptr(d("9.5")),
	}), token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var paso dto.PasoOrdenResponse
	decodeJSON(t, resp, &paso)
	assert.Equal(t, "COMPLETADO", paso.Estado)
	require.NotNil(t, paso.CantidadPerdida)
	assert.True(t, paso.CantidadPerdida.Equal(d("0.5")))

	resp = do(t, srv, http.MethodGet, "/v1/ordenes-produccion/"+orden.ID, nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &orden)
	assert.Equal(t, "COMPLETADA", orden.Estado)
	assert.True(t, orden.CantidadProducida.Equal(d("9.5")))

	// (2.5+0.1)*9.5 = 24.7 drawn, remainder of the reservation released.
	mp = env.materiaPrima(t, cat.materiaPrimaID)
	assert.True(t, mp.StockActual.Equal(d("75.3")), "actual %s", mp.StockActual)
	assert.True(t, mp.StockReservado.Equal(d("1.3")), "reservado %s", mp.StockReservado)

	// The public price check works without a token.
	resp = do(t, srv, http.MethodGet, "/v1/precio/"+cat.productoCodigo, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var precio dto.ConsultaPreciosResponse
	decodeJSON(t, resp, &precio)
	assert.Equal(t, "Pan integral", precio.Nombre)
	assert.True(t, precio.PrecioCF.Equal(d("12.50")))

	// Second hit is served from the Redis cache with the same body.
	resp = do(t, srv, http.MethodGet, "/v1/precio/"+cat.productoCodigo, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cacheado dto.ConsultaPreciosResponse
	decodeJSON(t, resp, &cacheado)
	assert.Equal(t, precio, cacheado)
}

// Sales order shipping, bank deposit allocation and its reversal.
func TestVentasYPagosEndToEnd(t *testing.T) {
	env := setupTestEnv(t)
	srv, token := env.server, env.token
	cat := env.crearCatalogoBase(t)

	resp := do(t, srv, http.MethodPost, "/v1/clientes", jsonBody(t, dto.CrearClienteRequest{
		Codigo: "CLI-001", Nombre: "Panadería Sur",
	}), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var cliente dto.ClienteResponse
	decodeJSON(t, resp, &cliente)

	resp = do(t, srv, http.MethodPost, "/v1/tipos-pago", jsonBody(t, dto.CrearTipoPagoRequest{
		Nombre: "Crédito 7 días", DiasCredito: 7,
	}), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var tipoPago dto.TipoPagoResponse
	decodeJSON(t, resp, &tipoPago)

	// 4 units at the catalog price: total 50.
	resp = do(t, srv, http.MethodPost, "/v1/ordenes", jsonBody(t, dto.CrearOrdenRequest{
		ClienteID:  cliente.ID,
		TipoPagoID: tipoPago.ID,
		Items:      []dto.ItemOrdenRequest{{ProductoID: cat.productoID, Cantidad: d("4")}},
	}), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var orden dto.OrdenResponse
	decodeJSON(t, resp, &orden)
	assert.Equal(t, "pendiente", orden.Estado)
	assert.True(t, orden.Total.Equal(d("50")))

	// Shipping moves the order total onto the customer balance.
	resp = do(t, srv, http.MethodPatch, fmt.Sprintf("/v1/ordenes/%s/estado", orden.ID), jsonBody(t, dto.CambiarEstadoOrdenRequest{
		Estado: "enviada",
	}), token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &orden)
	assert.Equal(t, "enviada", orden.Estado)
	require.NotNil(t, orden.FechaEnvio)

	resp = do(t, srv, http.MethodGet, "/v1/clientes/"+cliente.ID, nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &cliente)
	assert.True(t, cliente.Saldo.Equal(d("50")))

	// A 30 deposit covers the order partially.
	resp = do(t, srv, http.MethodPost, "/v1/bancos", jsonBody(t, dto.CrearBancoRequest{
		Referencia: "DEP-001", Banco: "Industrial", Monto: d("30"),
	}), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var banco dto.BancoResponse
	decodeJSON(t, resp, &banco)

	resp = do(t, srv, http.MethodPost, "/v1/bancos/"+banco.ID+"/asignar", jsonBody(t, dto.AsignarBancoRequest{
		ClienteID: cliente.ID,
	}), token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var asignacion dto.AsignacionResponse
	decodeJSON(t, resp, &asignacion)
	assert.True(t, asignacion.MontoAsignado.Equal(d("30")))
	assert.True(t, asignacion.SobranteACredito.IsZero())
	require.Len(t, asignacion.Ordenes, 1)
	assert.True(t, asignacion.Ordenes[0].SaldoPost.Equal(d("20")))
	assert.Equal(t, "enviada", asignacion.Ordenes[0].Estado)

	resp = do(t, srv, http.MethodGet, "/v1/clientes/"+cliente.ID, nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &cliente)
	assert.True(t, cliente.Saldo.Equal(d("20")))

	// Deleting the assigned deposit unwinds the allocation.
	resp = do(t, srv, http.MethodDelete, "/v1/bancos/"+banco.ID, nil, token)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, srv, http.MethodGet, "/v1/ordenes/"+orden.ID, nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &orden)
	assert.True(t, orden.Saldo.Equal(d("50")))

	resp = do(t, srv, http.MethodGet, "/v1/clientes/"+cliente.ID, nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &cliente)
	assert.True(t, cliente.Saldo.Equal(d("50")))
}
