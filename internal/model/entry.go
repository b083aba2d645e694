// Package model defines the canonical domain types shared by the reporting engine.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction indicates whether money moved into or out of the business.
type Direction string

// Valid directions.
const (
	DirectionInflow  Direction = "inflow"
	DirectionOutflow Direction = "outflow"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == DirectionInflow || d == DirectionOutflow
}

// SourceModule identifies the subsystem a financial record originated from.
type SourceModule string

// The six source subsystems feeding the unified ledger.
const (
	SourceLedger            SourceModule = "ledger"
	SourceMaintenance       SourceModule = "maintenance"
	SourceProcurement       SourceModule = "procurement"
	SourceProductionPayroll SourceModule = "productionPayroll"
	SourceDriverPayroll     SourceModule = "driverPayroll"
	SourceSales             SourceModule = "sales"
)

// SourceModules lists every source subsystem in merge-priority order
// (highest priority first). Same-day entries from different modules are
// ordered by this priority; the order itself is arbitrary but fixed.
var SourceModules = []SourceModule{
	SourceLedger,
	SourceSales,
	SourceProcurement,
	SourceProductionPayroll,
	SourceDriverPayroll,
	SourceMaintenance,
}

// Valid reports whether m is one of the six known source modules.
func (m SourceModule) Valid() bool {
	for _, known := range SourceModules {
		if m == known {
			return true
		}
	}
	return false
}

// MergePriority returns the tiebreak rank of m for same-day ordering in the
// unified ledger. Lower rank sorts first. Unknown modules sort last.
func (m SourceModule) MergePriority() int {
	for i, known := range SourceModules {
		if m == known {
			return i
		}
	}
	return len(SourceModules)
}

// LedgerEntry is one normalized financial record. Date carries calendar-date
// semantics only: it is always midnight UTC, and period assignment reads the
// UTC year and month so entries never shift into an adjacent month.
type LedgerEntry struct {
	Date        time.Time
	Amount      decimal.Decimal
	Direction   Direction
	Source      SourceModule
	Category    string
	Description string
	ReferenceID string
}

// Signed returns the entry amount with outflows negated.
func (e LedgerEntry) Signed() decimal.Decimal {
	if e.Direction == DirectionOutflow {
		return e.Amount.Neg()
	}
	return e.Amount
}

// CivilDate keeps the calendar date exactly as written on t and pins it to
// midnight UTC. The wall-clock date is read in t's own location, so a record
// dated 2024-01-31 stays in January no matter which offset it was parsed
// with or which timezone the process runs in.
func CivilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
