package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/jauntkid/TailorPro/models"
)

// Migrate applies (idempotent) schema migrations:
// - AutoMigrate (tables/columns/index tags)
// - Money column types (NUMERIC(12,2))
// - CHECK constraints on amounts and quantities
func Migrate() error {
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(
			&models.User{},
			&models.Customer{},
			&models.Category{},
			&models.Product{},
			&models.Measurement{},
			&models.Order{},
			&models.OrderItem{},
			&models.Invoice{},
			&models.Payment{},
		); err != nil {
			return fmt.Errorf("automigrate failed: %w", err)
		}

		// --- Enforce money columns as NUMERIC(12,2) (idempotent ALTERs) ---
		alters := []string{
			`ALTER TABLE products     ALTER COLUMN price        TYPE numeric(12,2)`,
			`ALTER TABLE order_items  ALTER COLUMN price        TYPE numeric(12,2)`,
			`ALTER TABLE orders       ALTER COLUMN total_amount TYPE numeric(12,2)`,
			`ALTER TABLE invoices     ALTER COLUMN subtotal     TYPE numeric(12,2)`,
			`ALTER TABLE invoices     ALTER COLUMN discount     TYPE numeric(12,2)`,
			`ALTER TABLE invoices     ALTER COLUMN tax          TYPE numeric(12,2)`,
			`ALTER TABLE invoices     ALTER COLUMN total_amount TYPE numeric(12,2)`,
			`ALTER TABLE invoices     ALTER COLUMN amount_paid  TYPE numeric(12,2)`,
			`ALTER TABLE invoices     ALTER COLUMN balance      TYPE numeric(12,2)`,
			`ALTER TABLE payments     ALTER COLUMN amount       TYPE numeric(12,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Basic CHECK constraints (idempotent) ---
		checks := []string{
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'products'::regclass
					  AND conname  = 'chk_products_price_nonneg'
				) THEN
					ALTER TABLE products
					ADD CONSTRAINT chk_products_price_nonneg
					CHECK (price >= 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'payments'::regclass
					  AND conname  = 'chk_payments_amount_pos'
				) THEN
					ALTER TABLE payments
					ADD CONSTRAINT chk_payments_amount_pos
					CHECK (amount > 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'order_items'::regclass
					  AND conname  = 'chk_order_items_quantity_pos'
				) THEN
					ALTER TABLE order_items
					ADD CONSTRAINT chk_order_items_quantity_pos
					CHECK (quantity >= 1);
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
}
