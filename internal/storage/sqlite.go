// Package storage persists the six source subsystems' records in SQLite and
// exposes each one as a SourceRepository for the reporting engine.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tirtawidya/aruskas/internal/normalize"
	"github.com/tirtawidya/aruskas/internal/service"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore holds the dashboard's source subsystem tables.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore opens (or creates) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath must not be empty")
	}

	// Ensure directory exists
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Sources returns one repository per source subsystem, in merge-priority
// order.
func (s *SQLiteStore) Sources() []service.SourceRepository {
	return []service.SourceRepository{
		&ledgerSource{store: s},
		&salesSource{store: s},
		&procurementSource{store: s},
		&productionPayrollSource{store: s},
		&driverPayrollSource{store: s},
		&maintenanceSource{store: s},
	}
}

// Insert writes one raw record into its subsystem's table. Dispatch is by
// the record's concrete variant, mirroring the normalizer.
func (s *SQLiteStore) Insert(ctx context.Context, raw normalize.RawRecord) error {
	var err error
	switch r := raw.(type) {
	case normalize.RawLedgerRecord:
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO ledger_entries (entry_date, amount, flow, category, description, reference_id)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			r.Date, amountText(r.Amount), r.Flow, r.Category, r.Description, r.ReferenceID)
	case normalize.RawMaintenanceRecord:
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO maintenance_logs (service_date, cost, asset, description, reference_id)
			 VALUES (?, ?, ?, ?, ?)`,
			r.Date, amountText(r.Cost), r.Asset, r.Description, r.ReferenceID)
	case normalize.RawProcurementRecord:
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO procurements (order_date, total_cost, supplier, item, reference_id)
			 VALUES (?, ?, ?, ?, ?)`,
			r.Date, amountText(r.TotalCost), r.Supplier, r.Item, r.ReferenceID)
	case normalize.RawProductionPayrollRecord:
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO production_payrolls (paid_at, wage, worker, reference_id)
			 VALUES (?, ?, ?, ?)`,
			r.PaidAt, amountText(r.Wage), r.Worker, r.ReferenceID)
	case normalize.RawDriverPayrollRecord:
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO driver_payrolls (paid_at, wage, driver, reference_id)
			 VALUES (?, ?, ?, ?)`,
			r.PaidAt, amountText(r.Wage), r.Driver, r.ReferenceID)
	case normalize.RawSalesRecord:
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO sales_orders (order_date, total, customer, invoice_no, description)
			 VALUES (?, ?, ?, ?, ?)`,
			r.Date, amountText(r.Total), r.Customer, r.InvoiceNo, r.Description)
	default:
		return fmt.Errorf("unknown raw record type %T", raw)
	}
	if err != nil {
		return fmt.Errorf("failed to insert %s record: %w", raw.Source(), err)
	}
	return nil
}

// amountText stores raw amounts as text, preserving whatever shape the
// upstream system delivered. ToAmount is the only place they are coerced.
func amountText(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
