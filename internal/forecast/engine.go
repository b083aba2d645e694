// Package forecast extrapolates historical monthly buckets into future
// projections and derives qualitative risk indicators from them.
package forecast

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tirtawidya/aruskas/internal/model"
)

// Horizons supported by Project.
var Horizons = []int{3, 6, 12}

// ValidHorizon reports whether n is a supported projection horizon.
func ValidHorizon(n int) bool {
	for _, h := range Horizons {
		if n == h {
			return true
		}
	}
	return false
}

// Projection is the output of Project: one point per future month.
// InsufficientData marks the zero-valued series emitted when no history
// exists at all.
type Projection struct {
	Points           []model.ProjectionPoint
	InsufficientData bool
}

// Project extrapolates history into horizon future months.
//
// With no history every point is zero and the series is flagged
// insufficient; the anchor month is then taken from now, the only case the
// clock is consulted. With exactly one bucket the projection repeats it
// flat. With two or more, the two most recent buckets define a linear trend
// per direction; projected magnitudes are floored at zero.
//
// Points start the month immediately after the last historical bucket.
func Project(history []model.PeriodBucket, horizon int, now time.Time) (Projection, error) {
	if !ValidHorizon(horizon) {
		return Projection{}, fmt.Errorf("unsupported horizon %d: must be one of %v", horizon, Horizons)
	}

	if len(history) == 0 {
		points := make([]model.ProjectionPoint, 0, horizon)
		period := model.PeriodKeyFor(now).Next()
		for i := 0; i < horizon; i++ {
			points = append(points, model.ProjectionPoint{
				Period:  period,
				Inflow:  decimal.Zero,
				Outflow: decimal.Zero,
				Balance: decimal.Zero,
			})
			period = period.Next()
		}
		return Projection{Points: points, InsufficientData: true}, nil
	}

	ordered := make([]model.PeriodBucket, len(history))
	copy(ordered, history)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Period.Before(ordered[j].Period)
	})

	last := ordered[len(ordered)-1]
	inflowStep, outflowStep := decimal.Zero, decimal.Zero
	if len(ordered) >= 2 {
		prev := ordered[len(ordered)-2]
		inflowStep = last.TotalInflow.Sub(prev.TotalInflow)
		outflowStep = last.TotalOutflow.Sub(prev.TotalOutflow)
	}

	points := make([]model.ProjectionPoint, 0, horizon)
	period := last.Period.Next()
	for i := 1; i <= horizon; i++ {
		step := decimal.NewFromInt(int64(i))
		inflow := floorZero(last.TotalInflow.Add(inflowStep.Mul(step)))
		outflow := floorZero(last.TotalOutflow.Add(outflowStep.Mul(step)))
		points = append(points, model.ProjectionPoint{
			Period:  period,
			Inflow:  inflow,
			Outflow: outflow,
			Balance: inflow.Sub(outflow),
		})
		period = period.Next()
	}
	return Projection{Points: points}, nil
}

// floorZero clamps a projected magnitude at zero; inflow and outflow are
// magnitudes and must never extrapolate below it.
func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
