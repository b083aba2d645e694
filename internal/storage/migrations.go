package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a fatal
// error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial source subsystem tables",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS ledger_entries (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					entry_date TEXT NOT NULL,
					amount TEXT,
					flow TEXT NOT NULL,
					category TEXT,
					description TEXT,
					reference_id TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS maintenance_logs (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					service_date TEXT NOT NULL,
					cost TEXT,
					asset TEXT,
					description TEXT,
					reference_id TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS procurements (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					order_date TEXT NOT NULL,
					total_cost TEXT,
					supplier TEXT,
					item TEXT,
					reference_id TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS production_payrolls (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					paid_at TEXT NOT NULL,
					wage TEXT,
					worker TEXT,
					reference_id TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS driver_payrolls (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					paid_at TEXT NOT NULL,
					wage TEXT,
					driver TEXT,
					reference_id TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS sales_orders (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					order_date TEXT NOT NULL,
					total TEXT,
					customer TEXT,
					invoice_no TEXT,
					description TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Date indexes for windowed fetches",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE INDEX IF NOT EXISTS idx_ledger_entries_date ON ledger_entries(entry_date)`,
				`CREATE INDEX IF NOT EXISTS idx_maintenance_logs_date ON maintenance_logs(service_date)`,
				`CREATE INDEX IF NOT EXISTS idx_procurements_date ON procurements(order_date)`,
				`CREATE INDEX IF NOT EXISTS idx_production_payrolls_date ON production_payrolls(paid_at)`,
				`CREATE INDEX IF NOT EXISTS idx_driver_payrolls_date ON driver_payrolls(paid_at)`,
				`CREATE INDEX IF NOT EXISTS idx_sales_orders_date ON sales_orders(order_date)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate brings the database schema up to the expected version.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	current, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= current {
			continue
		}

		slog.Info("Applying migration",
			"version", migration.Version,
			"description", migration.Description)

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration transaction: %w", err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	final, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}
	if final != ExpectedSchemaVersion {
		return fmt.Errorf("schema version %d after migration, expected %d", final, ExpectedSchemaVersion)
	}
	return nil
}

func (s *SQLiteStore) schemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}
