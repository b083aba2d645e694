// Package memory provides a fixture-backed in-memory SourceRepository, used
// by tests and available to embedders that fetch records themselves.
package memory

import (
	"context"
	"sync"

	"github.com/tirtawidya/aruskas/internal/model"
	"github.com/tirtawidya/aruskas/internal/normalize"
	"github.com/tirtawidya/aruskas/internal/service"
)

// Source is a thread-safe in-memory implementation of
// service.SourceRepository holding one module's raw records.
type Source struct {
	mu      sync.Mutex
	module  model.SourceModule
	records []normalize.RawRecord
	err     error
}

// NewSource creates a source for module preloaded with records.
func NewSource(module model.SourceModule, records ...normalize.RawRecord) *Source {
	return &Source{module: module, records: records}
}

// Module implements service.SourceRepository.
func (s *Source) Module() model.SourceModule {
	return s.module
}

// Fetch returns the records whose date falls inside the window. Records
// with unparseable dates are returned regardless, so the normalizer sees
// and rejects them the same way it would with a real source.
func (s *Source) Fetch(ctx context.Context, window model.DateRange) ([]normalize.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}

	matched := make([]normalize.RawRecord, 0, len(s.records))
	for _, r := range s.records {
		date, err := normalize.ParseDate(recordDate(r))
		if err != nil || window.Contains(date) {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

// Add appends records to the source.
func (s *Source) Add(records ...normalize.RawRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
}

// FailWith makes every subsequent Fetch return err. Passing nil restores
// normal operation.
func (s *Source) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func recordDate(r normalize.RawRecord) string {
	switch v := r.(type) {
	case normalize.RawLedgerRecord:
		return v.Date
	case normalize.RawMaintenanceRecord:
		return v.Date
	case normalize.RawProcurementRecord:
		return v.Date
	case normalize.RawProductionPayrollRecord:
		return v.PaidAt
	case normalize.RawDriverPayrollRecord:
		return v.PaidAt
	case normalize.RawSalesRecord:
		return v.Date
	default:
		return ""
	}
}

// compile-time check
var _ service.SourceRepository = (*Source)(nil)
