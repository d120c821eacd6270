package router

import (
	"time"

	"github.com/Alexistodj124/CoprodaBackEnd/internal/config"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/handler"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/middleware"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/repository"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	materiaPrimaRepo := repository.NewMateriaPrimaRepository(db)
	procesoRepo := repository.NewProcesoRepository(db)
	bomRepo := repository.NewBomRepository(db)
	ordenProduccionRepo := repository.NewOrdenProduccionRepository(db)
	consumoRepo := repository.NewConsumoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	tipoPagoRepo := repository.NewTipoPagoRepository(db)
	ordenRepo := repository.NewOrdenRepository(db)
	bancoRepo := repository.NewBancoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	categoriaSvc := service.NewCategoriaService(categoriaRepo)
	productoSvc := service.NewProductoService(productoRepo, categoriaRepo)
	materiaPrimaSvc := service.NewMateriaPrimaService(materiaPrimaRepo)
	procesoSvc := service.NewProcesoService(procesoRepo, productoRepo)
	bomSvc := service.NewBomService(bomRepo, productoRepo, materiaPrimaRepo, procesoRepo)
	produccionSvc := service.NewProduccionService(
		ordenProduccionRepo, productoRepo, materiaPrimaRepo, bomRepo, procesoRepo, consumoRepo,
	)
	consumoSvc := service.NewConsumoService(consumoRepo, ordenProduccionRepo, materiaPrimaRepo, productoRepo)
	clienteSvc := service.NewClienteService(clienteRepo)
	tipoPagoSvc := service.NewTipoPagoService(tipoPagoRepo)
	ordenSvc := service.NewOrdenService(ordenRepo, clienteRepo, tipoPagoRepo, productoRepo)
	pagoSvc := service.NewPagoService(bancoRepo, ordenRepo, clienteRepo)
	reporteSvc := service.NewReporteService(ordenProduccionRepo, clienteRepo, ordenRepo, materiaPrimaRepo, productoRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	consultaH := handler.NewConsultaPreciosHandler(productoSvc, rdb)
	materiasPrimasH := handler.NewMateriasPrimasHandler(materiaPrimaSvc)
	procesosH := handler.NewProcesosHandler(procesoSvc)
	bomH := handler.NewBomHandler(bomSvc)
	produccionH := handler.NewProduccionHandler(produccionSvc)
	consumosH := handler.NewConsumosHandler(consumoSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	tiposPagoH := handler.NewTiposPagoHandler(tipoPagoSvc)
	ordenesH := handler.NewOrdenesHandler(ordenSvc)
	bancosH := handler.NewBancosHandler(pagoSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check — no auth required
	r.GET("/v1/precio/:codigo", consultaH.GetPrecioPorCodigo)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: operador, supervisor, administrador — declared per-endpoint
		lectura := middleware.RequireRole("operador", "supervisor", "administrador")
		planta := middleware.RequireRole("supervisor", "administrador")
		admin := middleware.RequireRole("administrador")

		// Categorías — administrador can write, all authenticated can read
		v1.GET("/categorias", lectura, categoriasH.Listar)
		v1.GET("/categorias/:id", lectura, categoriasH.Obtener)
		categorias := v1.Group("/categorias", admin)
		{
			categorias.POST("", categoriasH.Crear)
			categorias.PUT("/:id", categoriasH.Actualizar)
			categorias.DELETE("/:id", categoriasH.Eliminar)
		}

		// Productos — catalog reads for everyone, writes for administrador
		v1.GET("/productos", lectura, productosH.Listar)
		v1.GET("/productos/:id", lectura, productosH.Obtener)
		prods := v1.Group("/productos", admin)
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Eliminar)
			prods.PATCH("/:id/reactivar", productosH.Reactivar)
		}

		// Recetas (BOM) — nested under the finished product
		v1.GET("/productos/:id/bom", lectura, bomH.Obtener)
		v1.GET("/productos/:id/bom/explotar", lectura, bomH.Explotar)
		bom := v1.Group("/productos/:id/bom", planta)
		{
			bom.POST("/materias-primas", bomH.AgregarMateriaPrima)
			bom.PUT("/materias-primas/:lineaId", bomH.ActualizarLineaMP)
			bom.DELETE("/materias-primas/:lineaId", bomH.EliminarLineaMP)
			bom.POST("/componentes", bomH.AgregarComponente)
			bom.PUT("/componentes/:lineaId", bomH.ActualizarLineaComp)
			bom.DELETE("/componentes/:lineaId", bomH.EliminarLineaComp)
		}

		// Ruta de procesos del producto
		v1.GET("/productos/:id/ruta", lectura, procesosH.ListarRuta)
		ruta := v1.Group("/productos/:id/ruta", planta)
		{
			ruta.POST("", procesosH.AgregarPaso)
			ruta.PUT("/:pasoId", procesosH.ActualizarPaso)
			ruta.DELETE("/:pasoId", procesosH.EliminarPaso)
		}

		// Procesos (catálogo de operaciones)
		v1.GET("/procesos", lectura, procesosH.Listar)
		v1.GET("/procesos/:id", lectura, procesosH.Obtener)
		procesos := v1.Group("/procesos", admin)
		{
			procesos.POST("", procesosH.Crear)
			procesos.PUT("/:id", procesosH.Actualizar)
			procesos.DELETE("/:id", procesosH.Eliminar)
		}

		// Materias primas — stock adjustments for supervisor+, writes for administrador
		v1.GET("/materias-primas", lectura, materiasPrimasH.Listar)
		v1.GET("/materias-primas/:id", lectura, materiasPrimasH.Obtener)
		v1.PATCH("/materias-primas/:id/stock", planta, materiasPrimasH.AjustarStock)
		v1.GET("/materias-primas/:id/ajustes", planta, materiasPrimasH.ListarAjustes)
		mps := v1.Group("/materias-primas", admin)
		{
			mps.POST("", materiasPrimasH.Crear)
			mps.PUT("/:id", materiasPrimasH.Actualizar)
			mps.DELETE("/:id", materiasPrimasH.Eliminar)
		}

		// Órdenes de producción
		v1.GET("/ordenes-produccion", lectura, produccionH.Listar)
		v1.GET("/ordenes-produccion/:id", lectura, produccionH.Obtener)
		op := v1.Group("/ordenes-produccion", planta)
		{
			op.POST("", produccionH.Crear)
			op.PUT("/:id", produccionH.Actualizar)
			op.POST("/:id/iniciar", produccionH.Iniciar)
			op.POST("/:id/pausar", produccionH.Pausar)
			op.POST("/:id/cancelar", produccionH.Cancelar)
			op.POST("/:id/cerrar", produccionH.Cerrar)
			op.DELETE("/:id", produccionH.Eliminar)
		}

		// Pasos de ruta de una orden — shop-floor operators drive these
		pasos := v1.Group("/pasos-produccion", lectura)
		{
			pasos.POST("/:pasoId/iniciar", produccionH.IniciarPaso)
			pasos.POST("/:pasoId/pausar", produccionH.PausarPaso)
			pasos.POST("/:pasoId/completar", produccionH.CompletarPaso)
		}

		// Consumos de una orden de producción
		v1.GET("/ordenes-produccion/:id/consumos", lectura, consumosH.ListarPorOrden)
		v1.POST("/ordenes-produccion/:id/consumos/materias-primas", lectura, consumosH.CrearMP)
		v1.POST("/ordenes-produccion/:id/consumos/componentes", lectura, consumosH.CrearComponente)
		consumos := v1.Group("/consumos", lectura)
		{
			consumos.PUT("/materias-primas/:consumoId", consumosH.ActualizarMP)
			consumos.DELETE("/materias-primas/:consumoId", consumosH.EliminarMP)
			consumos.PUT("/componentes/:consumoId", consumosH.ActualizarComponente)
			consumos.DELETE("/componentes/:consumoId", consumosH.EliminarComponente)
		}

		// Clientes
		v1.GET("/clientes", lectura, clientesH.Listar)
		v1.GET("/clientes/:id", lectura, clientesH.Obtener)
		clientes := v1.Group("/clientes", admin)
		{
			clientes.POST("", clientesH.Crear)
			clientes.PUT("/:id", clientesH.Actualizar)
			clientes.DELETE("/:id", clientesH.Eliminar)
		}

		// Tipos de pago
		v1.GET("/tipos-pago", lectura, tiposPagoH.Listar)
		tiposPago := v1.Group("/tipos-pago", admin)
		{
			tiposPago.POST("", tiposPagoH.Crear)
			tiposPago.PUT("/:id", tiposPagoH.Actualizar)
			tiposPago.DELETE("/:id", tiposPagoH.Desactivar)
		}

		// Órdenes de venta
		v1.GET("/ordenes", lectura, ordenesH.Listar)
		v1.GET("/ordenes/:id", lectura, ordenesH.Obtener)
		ordenes := v1.Group("/ordenes", planta)
		{
			ordenes.POST("", ordenesH.Crear)
			ordenes.PATCH("/:id/estado", ordenesH.CambiarEstado)
		}
		v1.DELETE("/ordenes/:id", admin, ordenesH.Eliminar)

		// Depósitos bancarios y asignación de pagos
		bancos := v1.Group("/bancos", planta)
		{
			bancos.POST("", bancosH.Crear)
			bancos.GET("", bancosH.Listar)
			bancos.GET("/:id", bancosH.Obtener)
			bancos.POST("/:id/asignar", bancosH.Asignar)
		}
		v1.DELETE("/bancos/:id", admin, bancosH.Eliminar)

		// Reportes
		reportes := v1.Group("/reportes", planta)
		{
			reportes.GET("/produccion", reportesH.Produccion)
			reportes.GET("/cuentas-por-cobrar", reportesH.CuentasPorCobrar)
			reportes.GET("/stock-bajo", reportesH.StockBajo)
		}

		// Usuarios — administrador only
		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
