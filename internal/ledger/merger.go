// Package ledger merges normalized entries from all six source subsystems
// into one sorted, filterable, paginated view.
package ledger

import (
	"errors"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tirtawidya/aruskas/internal/model"
)

// Pagination errors.
var (
	ErrInvalidPage     = errors.New("page must be >= 1")
	ErrInvalidPageSize = errors.New("page size must be >= 1")
)

// Filter narrows the merged ledger before pagination. Zero values match
// everything: an empty Search matches all rows, an empty Direction matches
// both directions, a nil Range matches all dates.
type Filter struct {
	Search    string
	Direction model.Direction
	Range     *model.DateRange
}

// Matches reports whether an entry passes the filter. Search is a
// case-insensitive substring match on description, category, and reference.
func (f Filter) Matches(e model.LedgerEntry) bool {
	if f.Direction != "" && e.Direction != f.Direction {
		return false
	}
	if f.Range != nil && !f.Range.Contains(e.Date) {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(e.Description), needle) &&
			!strings.Contains(strings.ToLower(e.Category), needle) &&
			!strings.Contains(strings.ToLower(e.ReferenceID), needle) {
			return false
		}
	}
	return true
}

// Summary totals the entire filtered set, not just the returned page.
// Partial is set only by PageSummary, when the totals were recomputed from a
// single page and therefore undercount.
type Summary struct {
	TotalInflow   decimal.Decimal
	TotalOutflow  decimal.Decimal
	CountBySource map[model.SourceModule]int
	Partial       bool
}

// Result is one page of the unified ledger plus full-set metadata.
type Result struct {
	Rows       []model.LedgerEntry
	Page       int
	PageSize   int
	Total      int
	TotalPages int
	Summary    Summary
}

// Merge combines per-source partitions into one view sorted by date
// descending. Same-day entries from different modules are ordered by the
// fixed source priority (ledger first, maintenance last); within a module,
// reference then description keep the order deterministic. Filters apply to
// the full merged set before pagination, and the summary covers that whole
// filtered set.
func Merge(partitions map[model.SourceModule][]model.LedgerEntry, filter Filter, page, pageSize int) (Result, error) {
	if page < 1 {
		return Result{}, ErrInvalidPage
	}
	if pageSize < 1 {
		return Result{}, ErrInvalidPageSize
	}

	// Every partition contributes, including keys outside the six known
	// modules; unknown modules rank after all known ones in the tiebreak.
	sources := make([]model.SourceModule, 0, len(partitions))
	for source := range partitions {
		sources = append(sources, source)
	}
	sort.Slice(sources, func(i, j int) bool {
		a, b := sources[i], sources[j]
		if a.MergePriority() != b.MergePriority() {
			return a.MergePriority() < b.MergePriority()
		}
		return a < b
	})

	var merged []model.LedgerEntry
	for _, source := range sources {
		for _, e := range partitions[source] {
			if filter.Matches(e) {
				merged = append(merged, e)
			}
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if a.Source != b.Source {
			return a.Source.MergePriority() < b.Source.MergePriority()
		}
		if a.ReferenceID != b.ReferenceID {
			return a.ReferenceID < b.ReferenceID
		}
		return a.Description < b.Description
	})

	total := len(merged)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Result{
		Rows:       merged[start:end],
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		Summary:    summarize(merged, false),
	}, nil
}

// PageSummary recomputes totals from a single page of rows. The result is
// marked Partial so callers never display it as an exact full-set summary.
func PageSummary(rows []model.LedgerEntry) Summary {
	return summarize(rows, true)
}

func summarize(entries []model.LedgerEntry, partial bool) Summary {
	s := Summary{
		TotalInflow:   decimal.Zero,
		TotalOutflow:  decimal.Zero,
		CountBySource: make(map[model.SourceModule]int),
		Partial:       partial,
	}
	for _, e := range entries {
		if e.Direction == model.DirectionOutflow {
			s.TotalOutflow = s.TotalOutflow.Add(e.Amount)
		} else {
			s.TotalInflow = s.TotalInflow.Add(e.Amount)
		}
		s.CountBySource[e.Source]++
	}
	return s
}
