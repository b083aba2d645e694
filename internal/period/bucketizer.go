// Package period groups ledger entries into calendar-month buckets and
// yearly rollups.
package period

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tirtawidya/aruskas/internal/model"
)

// Bucketize groups entries into monthly buckets. Only entries whose own
// civil date lies within the window (inclusive) are counted; the period of
// each entry is derived from that same date, so nothing ever shifts into an
// adjacent month. Buckets come back ordered by period ascending. Empty
// input yields an empty slice.
func Bucketize(entries []model.LedgerEntry, window model.DateRange) []model.PeriodBucket {
	byPeriod := make(map[model.PeriodKey]*model.PeriodBucket)
	for _, e := range entries {
		if !window.Contains(e.Date) {
			continue
		}
		key := model.PeriodKeyFor(e.Date)
		bucket, ok := byPeriod[key]
		if !ok {
			b := model.NewPeriodBucket(key)
			bucket = &b
			byPeriod[key] = bucket
		}
		bucket.Add(e)
	}

	buckets := make([]model.PeriodBucket, 0, len(byPeriod))
	for _, b := range byPeriod {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Period.Before(buckets[j].Period)
	})
	return buckets
}

// BucketizeYear groups entries into the monthly buckets of one year.
func BucketizeYear(entries []model.LedgerEntry, year int) []model.PeriodBucket {
	return Bucketize(entries, model.YearRange(year))
}

// Rollup sums monthly buckets into a yearly total. Buckets outside the
// target year are ignored.
func Rollup(year int, buckets []model.PeriodBucket) model.YearlyRollup {
	rollup := model.YearlyRollup{
		Year:         year,
		TotalInflow:  decimal.Zero,
		TotalOutflow: decimal.Zero,
		BySource:     make(map[model.SourceModule]decimal.Decimal),
	}
	for _, b := range buckets {
		if b.Period.Year != year {
			continue
		}
		rollup.TotalInflow = rollup.TotalInflow.Add(b.TotalInflow)
		rollup.TotalOutflow = rollup.TotalOutflow.Add(b.TotalOutflow)
		for source, subtotal := range b.BySource {
			rollup.BySource[source] = rollup.BySource[source].Add(subtotal)
		}
		rollup.EntryCount += b.EntryCount
		rollup.MonthsIncluded++
	}
	return rollup
}
