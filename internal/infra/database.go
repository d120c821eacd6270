package infra

import (
	"fmt"

	"github.com/Alexistodj124/CoprodaBackEnd/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that GORM
// cannot express (partial indexes mostly).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates / updates the schema. Also used by integration tests
// against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.CategoriaProducto{},
		&model.Producto{},
		&model.MateriaPrima{},
		&model.MateriaPrimaAjuste{},
		&model.Proceso{},
		&model.ProductoProceso{},
		&model.ProductoMateriaPrima{},
		&model.ProductoComponente{},
		&model.OrdenProduccion{},
		&model.ProcesoOrden{},
		&model.ConsumoMateriaPrima{},
		&model.ConsumoProductoComponente{},
		&model.Cliente{},
		&model.TipoPago{},
		&model.Orden{},
		&model.OrdenItem{},
		&model.Banco{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot handle on its
// own. Each statement is guarded so re-running on an already-patched DB is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Partial index for the payment allocation scan: only open, shipped
		// orders with an outstanding balance are candidates.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_ordenes_cobro_pendiente') THEN
		    CREATE INDEX idx_ordenes_cobro_pendiente
		        ON ordenes (cliente_id, fecha_envio)
		        WHERE estado = 'enviada' AND saldo > 0;
		  END IF;
		END $$`,
		// Partial index for unassigned bank deposits, the default listing filter.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_bancos_sin_asignar') THEN
		    CREATE INDEX idx_bancos_sin_asignar
		        ON bancos (fecha)
		        WHERE asignado = false;
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
