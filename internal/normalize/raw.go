// Package normalize maps raw records from the six source subsystems into
// canonical ledger entries.
package normalize

import "github.com/tirtawidya/aruskas/internal/model"

// RawRecord is the tagged variant covering every source subsystem's record
// shape. Each variant carries exactly the fields its subsystem exposes;
// Record dispatches on the concrete type, never on field sniffing.
//
// Amount-bearing fields are `any` on purpose: the upstream systems deliver a
// mix of numbers and numeric-looking text, and ToAmount is the single place
// that mess is resolved.
type RawRecord interface {
	Source() model.SourceModule
}

// RawLedgerRecord is a manual ledger book entry. Flow is the explicit
// direction flag as recorded upstream: "masuk" (in) or "keluar" (out).
type RawLedgerRecord struct {
	Date        string
	Amount      any
	Flow        string
	Category    string
	Description string
	ReferenceID string
}

// Source implements RawRecord.
func (RawLedgerRecord) Source() model.SourceModule { return model.SourceLedger }

// RawMaintenanceRecord is a machine or vehicle maintenance expense.
type RawMaintenanceRecord struct {
	Date        string
	Cost        any
	Asset       string
	Description string
	ReferenceID string
}

// Source implements RawRecord.
func (RawMaintenanceRecord) Source() model.SourceModule { return model.SourceMaintenance }

// RawProcurementRecord is a raw-material purchase.
type RawProcurementRecord struct {
	Date        string
	TotalCost   any
	Supplier    string
	Item        string
	ReferenceID string
}

// Source implements RawRecord.
func (RawProcurementRecord) Source() model.SourceModule { return model.SourceProcurement }

// RawProductionPayrollRecord is a wage payment to a production worker.
type RawProductionPayrollRecord struct {
	PaidAt      string
	Wage        any
	Worker      string
	ReferenceID string
}

// Source implements RawRecord.
func (RawProductionPayrollRecord) Source() model.SourceModule {
	return model.SourceProductionPayroll
}

// RawDriverPayrollRecord is a wage payment to a delivery driver.
type RawDriverPayrollRecord struct {
	PaidAt      string
	Wage        any
	Driver      string
	ReferenceID string
}

// Source implements RawRecord.
func (RawDriverPayrollRecord) Source() model.SourceModule { return model.SourceDriverPayroll }

// RawSalesRecord is a completed sales order.
type RawSalesRecord struct {
	Date        string
	Total       any
	Customer    string
	InvoiceNo   string
	Description string
}

// Source implements RawRecord.
func (RawSalesRecord) Source() model.SourceModule { return model.SourceSales }
