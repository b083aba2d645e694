package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tirtawidya/aruskas/internal/model"
)

// Ledger flow flags as recorded by the upstream ledger book.
const (
	flowMasuk  = "masuk"
	flowKeluar = "keluar"
)

// Date layouts accepted from the source subsystems.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02/01/2006",
}

// ToAmount coerces a raw amount value into a non-negative decimal. It is the
// single conversion point for amounts crossing into the engine: numbers and
// numeric-looking text convert; nil, unparseable text, NaN, infinities, and
// negative values all become exactly zero.
func ToAmount(v any) decimal.Decimal {
	var d decimal.Decimal
	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		d = x
	case int:
		d = decimal.NewFromInt(int64(x))
	case int64:
		d = decimal.NewFromInt(x)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero
		}
		d = decimal.NewFromFloat(x)
	case float32:
		return ToAmount(float64(x))
	case json.Number:
		return ToAmount(string(x))
	case string:
		parsed, err := decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return decimal.Zero
		}
		d = parsed
	default:
		return decimal.Zero
	}
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ParseDate parses a source date string into a civil date. Failure here is
// the one condition that rejects a record outright.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return model.CivilDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// Record normalizes one raw record. An error means the record is dropped;
// callers batching records should use Records, which turns these into soft
// rejections.
func Record(raw RawRecord) (model.LedgerEntry, error) {
	switch r := raw.(type) {
	case RawLedgerRecord:
		date, err := ParseDate(r.Date)
		if err != nil {
			return model.LedgerEntry{}, err
		}
		dir, err := ledgerDirection(r.Flow)
		if err != nil {
			return model.LedgerEntry{}, err
		}
		category := r.Category
		if category == "" {
			category = "general"
		}
		return model.LedgerEntry{
			Date:        date,
			Amount:      ToAmount(r.Amount),
			Direction:   dir,
			Source:      model.SourceLedger,
			Category:    category,
			Description: r.Description,
			ReferenceID: r.ReferenceID,
		}, nil

	case RawMaintenanceRecord:
		date, err := ParseDate(r.Date)
		if err != nil {
			return model.LedgerEntry{}, err
		}
		category := r.Asset
		if category == "" {
			category = "maintenance"
		}
		return model.LedgerEntry{
			Date:        date,
			Amount:      ToAmount(r.Cost),
			Direction:   model.DirectionOutflow,
			Source:      model.SourceMaintenance,
			Category:    category,
			Description: r.Description,
			ReferenceID: r.ReferenceID,
		}, nil

	case RawProcurementRecord:
		date, err := ParseDate(r.Date)
		if err != nil {
			return model.LedgerEntry{}, err
		}
		category := r.Item
		if category == "" {
			category = "procurement"
		}
		return model.LedgerEntry{
			Date:        date,
			Amount:      ToAmount(r.TotalCost),
			Direction:   model.DirectionOutflow,
			Source:      model.SourceProcurement,
			Category:    category,
			Description: fmt.Sprintf("Purchase from %s", r.Supplier),
			ReferenceID: r.ReferenceID,
		}, nil

	case RawProductionPayrollRecord:
		date, err := ParseDate(r.PaidAt)
		if err != nil {
			return model.LedgerEntry{}, err
		}
		return model.LedgerEntry{
			Date:        date,
			Amount:      ToAmount(r.Wage),
			Direction:   model.DirectionOutflow,
			Source:      model.SourceProductionPayroll,
			Category:    "payroll",
			Description: fmt.Sprintf("Wage payment to %s", r.Worker),
			ReferenceID: r.ReferenceID,
		}, nil

	case RawDriverPayrollRecord:
		date, err := ParseDate(r.PaidAt)
		if err != nil {
			return model.LedgerEntry{}, err
		}
		return model.LedgerEntry{
			Date:        date,
			Amount:      ToAmount(r.Wage),
			Direction:   model.DirectionOutflow,
			Source:      model.SourceDriverPayroll,
			Category:    "payroll",
			Description: fmt.Sprintf("Wage payment to %s", r.Driver),
			ReferenceID: r.ReferenceID,
		}, nil

	case RawSalesRecord:
		date, err := ParseDate(r.Date)
		if err != nil {
			return model.LedgerEntry{}, err
		}
		description := r.Description
		if description == "" {
			description = fmt.Sprintf("Sale to %s", r.Customer)
		}
		return model.LedgerEntry{
			Date:        date,
			Amount:      ToAmount(r.Total),
			Direction:   model.DirectionInflow,
			Source:      model.SourceSales,
			Category:    "sales",
			Description: description,
			ReferenceID: r.InvoiceNo,
		}, nil

	default:
		return model.LedgerEntry{}, fmt.Errorf("unknown raw record type %T", raw)
	}
}

func ledgerDirection(flow string) (model.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(flow)) {
	case flowMasuk, string(model.DirectionInflow):
		return model.DirectionInflow, nil
	case flowKeluar, string(model.DirectionOutflow):
		return model.DirectionOutflow, nil
	default:
		return "", fmt.Errorf("unknown ledger flow %q", flow)
	}
}

// Skipped describes one soft-rejected record.
type Skipped struct {
	Source model.SourceModule
	Reason string
}

// Result is the outcome of normalizing a batch: the entries that survived
// plus every rejection. A batch itself never fails.
type Result struct {
	Entries []model.LedgerEntry
	Skipped []Skipped
}

// Records normalizes a batch. Rejections are collected, not propagated.
func Records(raws []RawRecord) Result {
	res := Result{Entries: make([]model.LedgerEntry, 0, len(raws))}
	for _, raw := range raws {
		entry, err := Record(raw)
		if err != nil {
			res.Skipped = append(res.Skipped, Skipped{Source: raw.Source(), Reason: err.Error()})
			continue
		}
		res.Entries = append(res.Entries, entry)
	}
	return res
}
