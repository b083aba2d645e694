package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tirtawidya/aruskas/internal/common"
	"github.com/tirtawidya/aruskas/internal/model"
	"github.com/tirtawidya/aruskas/internal/normalize"
)

// Dates are stored as "2006-01-02" text, so windowed fetches compare
// lexicographically.
const dateLayout = "2006-01-02"

func windowBounds(window model.DateRange) (string, string) {
	return window.Start.Format(dateLayout), window.End.Format(dateLayout)
}

func nullable(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// scanError marks a row-decoding failure as non-retryable; a malformed row
// stays malformed no matter how often the fetch is repeated.
func scanError(table string, err error) error {
	return &common.RetryableError{
		Err:       fmt.Errorf("failed to scan %s row: %w", table, err),
		Retryable: false,
	}
}

// ledgerSource serves the manual ledger book.
type ledgerSource struct {
	store *SQLiteStore
}

func (s *ledgerSource) Module() model.SourceModule { return model.SourceLedger }

func (s *ledgerSource) Fetch(ctx context.Context, window model.DateRange) ([]normalize.RawRecord, error) {
	start, end := windowBounds(window)
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT entry_date, amount, flow, category, description, reference_id
		 FROM ledger_entries
		 WHERE entry_date >= ? AND entry_date <= ?
		 ORDER BY entry_date, id`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ledger entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []normalize.RawRecord
	for rows.Next() {
		var date, flow string
		var amount, category, description, referenceID sql.NullString
		if err := rows.Scan(&date, &amount, &flow, &category, &description, &referenceID); err != nil {
			return nil, scanError("ledger_entries", err)
		}
		records = append(records, normalize.RawLedgerRecord{
			Date:        date,
			Amount:      rawAmount(amount),
			Flow:        flow,
			Category:    nullable(category),
			Description: nullable(description),
			ReferenceID: nullable(referenceID),
		})
	}
	return records, rows.Err()
}

// maintenanceSource serves machine and vehicle maintenance expenses.
type maintenanceSource struct {
	store *SQLiteStore
}

func (s *maintenanceSource) Module() model.SourceModule { return model.SourceMaintenance }

func (s *maintenanceSource) Fetch(ctx context.Context, window model.DateRange) ([]normalize.RawRecord, error) {
	start, end := windowBounds(window)
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT service_date, cost, asset, description, reference_id
		 FROM maintenance_logs
		 WHERE service_date >= ? AND service_date <= ?
		 ORDER BY service_date, id`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch maintenance logs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []normalize.RawRecord
	for rows.Next() {
		var date string
		var cost, asset, description, referenceID sql.NullString
		if err := rows.Scan(&date, &cost, &asset, &description, &referenceID); err != nil {
			return nil, scanError("maintenance_logs", err)
		}
		records = append(records, normalize.RawMaintenanceRecord{
			Date:        date,
			Cost:        rawAmount(cost),
			Asset:       nullable(asset),
			Description: nullable(description),
			ReferenceID: nullable(referenceID),
		})
	}
	return records, rows.Err()
}

// procurementSource serves raw-material purchases.
type procurementSource struct {
	store *SQLiteStore
}

func (s *procurementSource) Module() model.SourceModule { return model.SourceProcurement }

func (s *procurementSource) Fetch(ctx context.Context, window model.DateRange) ([]normalize.RawRecord, error) {
	start, end := windowBounds(window)
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT order_date, total_cost, supplier, item, reference_id
		 FROM procurements
		 WHERE order_date >= ? AND order_date <= ?
		 ORDER BY order_date, id`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch procurements: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []normalize.RawRecord
	for rows.Next() {
		var date string
		var totalCost, supplier, item, referenceID sql.NullString
		if err := rows.Scan(&date, &totalCost, &supplier, &item, &referenceID); err != nil {
			return nil, scanError("procurements", err)
		}
		records = append(records, normalize.RawProcurementRecord{
			Date:        date,
			TotalCost:   rawAmount(totalCost),
			Supplier:    nullable(supplier),
			Item:        nullable(item),
			ReferenceID: nullable(referenceID),
		})
	}
	return records, rows.Err()
}

// productionPayrollSource serves production worker wage payments.
type productionPayrollSource struct {
	store *SQLiteStore
}

func (s *productionPayrollSource) Module() model.SourceModule {
	return model.SourceProductionPayroll
}

func (s *productionPayrollSource) Fetch(ctx context.Context, window model.DateRange) ([]normalize.RawRecord, error) {
	start, end := windowBounds(window)
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT paid_at, wage, worker, reference_id
		 FROM production_payrolls
		 WHERE paid_at >= ? AND paid_at <= ?
		 ORDER BY paid_at, id`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch production payrolls: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []normalize.RawRecord
	for rows.Next() {
		var paidAt string
		var wage, worker, referenceID sql.NullString
		if err := rows.Scan(&paidAt, &wage, &worker, &referenceID); err != nil {
			return nil, scanError("production_payrolls", err)
		}
		records = append(records, normalize.RawProductionPayrollRecord{
			PaidAt:      paidAt,
			Wage:        rawAmount(wage),
			Worker:      nullable(worker),
			ReferenceID: nullable(referenceID),
		})
	}
	return records, rows.Err()
}

// driverPayrollSource serves delivery driver wage payments.
type driverPayrollSource struct {
	store *SQLiteStore
}

func (s *driverPayrollSource) Module() model.SourceModule { return model.SourceDriverPayroll }

func (s *driverPayrollSource) Fetch(ctx context.Context, window model.DateRange) ([]normalize.RawRecord, error) {
	start, end := windowBounds(window)
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT paid_at, wage, driver, reference_id
		 FROM driver_payrolls
		 WHERE paid_at >= ? AND paid_at <= ?
		 ORDER BY paid_at, id`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch driver payrolls: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []normalize.RawRecord
	for rows.Next() {
		var paidAt string
		var wage, driver, referenceID sql.NullString
		if err := rows.Scan(&paidAt, &wage, &driver, &referenceID); err != nil {
			return nil, scanError("driver_payrolls", err)
		}
		records = append(records, normalize.RawDriverPayrollRecord{
			PaidAt:      paidAt,
			Wage:        rawAmount(wage),
			Driver:      nullable(driver),
			ReferenceID: nullable(referenceID),
		})
	}
	return records, rows.Err()
}

// salesSource serves completed sales orders.
type salesSource struct {
	store *SQLiteStore
}

func (s *salesSource) Module() model.SourceModule { return model.SourceSales }

func (s *salesSource) Fetch(ctx context.Context, window model.DateRange) ([]normalize.RawRecord, error) {
	start, end := windowBounds(window)
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT order_date, total, customer, invoice_no, description
		 FROM sales_orders
		 WHERE order_date >= ? AND order_date <= ?
		 ORDER BY order_date, id`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sales orders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []normalize.RawRecord
	for rows.Next() {
		var date string
		var total, customer, invoiceNo, description sql.NullString
		if err := rows.Scan(&date, &total, &customer, &invoiceNo, &description); err != nil {
			return nil, scanError("sales_orders", err)
		}
		records = append(records, normalize.RawSalesRecord{
			Date:        date,
			Total:       rawAmount(total),
			Customer:    nullable(customer),
			InvoiceNo:   nullable(invoiceNo),
			Description: nullable(description),
		})
	}
	return records, rows.Err()
}

// rawAmount keeps a NULL amount as nil so the normalizer's coercion sees it
// unchanged.
func rawAmount(ns sql.NullString) any {
	if !ns.Valid {
		return nil
	}
	return ns.String
}
