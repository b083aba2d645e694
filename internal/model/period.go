package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PeriodKey identifies one calendar month. It is derived from an entry's own
// civil date, never re-derived through a timezone conversion.
type PeriodKey struct {
	Year  int
	Month time.Month
}

// PeriodKeyFor returns the period the given date belongs to.
func PeriodKeyFor(t time.Time) PeriodKey {
	d := CivilDate(t)
	return PeriodKey{Year: d.Year(), Month: d.Month()}
}

// ParsePeriodKey parses the "2006-01" form produced by String.
func ParsePeriodKey(s string) (PeriodKey, error) {
	t, err := time.ParseInLocation("2006-01", s, time.UTC)
	if err != nil {
		return PeriodKey{}, fmt.Errorf("invalid period key %q: %w", s, err)
	}
	return PeriodKey{Year: t.Year(), Month: t.Month()}, nil
}

// String renders the key as "2006-01".
func (k PeriodKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

// Next returns the following calendar month.
func (k PeriodKey) Next() PeriodKey {
	if k.Month == time.December {
		return PeriodKey{Year: k.Year + 1, Month: time.January}
	}
	return PeriodKey{Year: k.Year, Month: k.Month + 1}
}

// Before reports whether k falls earlier than other.
func (k PeriodKey) Before(other PeriodKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

// Start returns the first calendar day of the period, midnight UTC.
func (k PeriodKey) Start() time.Time {
	return time.Date(k.Year, k.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the last calendar day of the period, midnight UTC.
func (k PeriodKey) End() time.Time {
	return k.Start().AddDate(0, 1, -1)
}

// DateRange is an inclusive calendar window. Start and End are civil dates
// (midnight UTC); windows always run first day of a month through last day
// of a month.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// MonthRange returns the window covering one calendar month.
func MonthRange(year int, month time.Month) DateRange {
	k := PeriodKey{Year: year, Month: month}
	return DateRange{Start: k.Start(), End: k.End()}
}

// YearRange returns the window covering January through December of year.
func YearRange(year int) DateRange {
	return DateRange{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// Contains reports whether the civil date of t lies within the window,
// inclusive on both ends.
func (r DateRange) Contains(t time.Time) bool {
	d := CivilDate(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// PeriodBucket aggregates every entry whose civil date falls in one calendar
// month. BySource and ByCategory hold the net contribution (inflow minus
// outflow) per source module and per category, so the breakdowns always sum
// to TotalInflow - TotalOutflow.
type PeriodBucket struct {
	Period       PeriodKey
	TotalInflow  decimal.Decimal
	TotalOutflow decimal.Decimal
	BySource     map[SourceModule]decimal.Decimal
	ByCategory   map[string]decimal.Decimal
	EntryCount   int
}

// NewPeriodBucket returns an empty bucket for the given period with zeroed
// totals and initialized breakdown maps.
func NewPeriodBucket(period PeriodKey) PeriodBucket {
	return PeriodBucket{
		Period:       period,
		TotalInflow:  decimal.Zero,
		TotalOutflow: decimal.Zero,
		BySource:     make(map[SourceModule]decimal.Decimal),
		ByCategory:   make(map[string]decimal.Decimal),
	}
}

// Add accumulates one entry into the bucket.
func (b *PeriodBucket) Add(e LedgerEntry) {
	if e.Direction == DirectionOutflow {
		b.TotalOutflow = b.TotalOutflow.Add(e.Amount)
	} else {
		b.TotalInflow = b.TotalInflow.Add(e.Amount)
	}
	b.BySource[e.Source] = b.BySource[e.Source].Add(e.Signed())
	if e.Category != "" {
		b.ByCategory[e.Category] = b.ByCategory[e.Category].Add(e.Signed())
	}
	b.EntryCount++
}

// Net returns TotalInflow - TotalOutflow.
func (b PeriodBucket) Net() decimal.Decimal {
	return b.TotalInflow.Sub(b.TotalOutflow)
}

// YearlyRollup sums all monthly buckets of one year.
type YearlyRollup struct {
	Year           int
	TotalInflow    decimal.Decimal
	TotalOutflow   decimal.Decimal
	BySource       map[SourceModule]decimal.Decimal
	EntryCount     int
	MonthsIncluded int
}

// Net returns TotalInflow - TotalOutflow.
func (r YearlyRollup) Net() decimal.Decimal {
	return r.TotalInflow.Sub(r.TotalOutflow)
}
