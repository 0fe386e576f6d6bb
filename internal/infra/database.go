package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/model"
)

// NewDatabase establishes a GORM connection backed by pgx. Migrations run
// separately via RunMigrations so startup can report connection and schema
// failures apart.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
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

	return db, nil
}

// RunMigrations creates/updates the schema. Every patch is idempotent so
// re-running on an existing database is a no-op.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Operator{},
		&model.Customer{},
		&model.Product{},
		&model.StockMovement{},
		&model.CashierSession{},
		&model.CashFlowEntry{},
		&model.Sale{},
		&model.SaleItem{},
		&model.SaleTender{},
		&model.FiscalDocument{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Ticket numbers come from a sequence so concurrent checkouts never collide.
		`CREATE SEQUENCE IF NOT EXISTS sales_ticket_number_seq`,
		// Partial index backing the fiscal retry cron query.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_fiscal_documents_pending_retry') THEN
		    CREATE INDEX idx_fiscal_documents_pending_retry
		        ON fiscal_documents (next_retry_at)
		        WHERE status = 'pending' AND next_retry_at IS NOT NULL;
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
