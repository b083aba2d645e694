package forecast

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
	"github.com/tirtawidya/aruskas/internal/model"
)

// ErrEmptyProjection is returned when risk analysis receives no points.
var ErrEmptyProjection = errors.New("no projection points to analyze")

// Risk band thresholds. Named so each band is independently testable and
// tunable rather than buried inline.
const (
	// LiquidityLowMin is the minimum share of non-negative-balance months
	// for Low liquidity risk; LiquidityMediumMin for Medium.
	LiquidityLowMin    = 0.8
	LiquidityMediumMin = 0.5

	// HealthHealthyMin is the minimum inflow/outflow percentage for a
	// Healthy classification; HealthStableMin for Stable.
	HealthHealthyMin = 110.0
	HealthStableMin  = 90.0
)

// AnalyzeRisk derives the full risk profile from a projection series. Every
// ratio has an explicit divisor floor of 1, so a zero denominator can never
// surface as NaN or infinity.
func AnalyzeRisk(points []model.ProjectionPoint) (model.RiskProfile, error) {
	if len(points) == 0 {
		return model.RiskProfile{}, ErrEmptyProjection
	}

	n := len(points)
	nonNegative := 0
	sumInflow, sumOutflow := decimal.Zero, decimal.Zero
	for _, p := range points {
		if !p.Balance.IsNegative() {
			nonNegative++
		}
		sumInflow = sumInflow.Add(p.Inflow)
		sumOutflow = sumOutflow.Add(p.Outflow)
	}

	return model.RiskProfile{
		Liquidity:          liquidityBand(float64(nonNegative) / float64(n)),
		VolatilityPercent:  volatility(points),
		GrowthTrendPercent: growthTrend(points),
		GrowthDirection:    growthDirection(growthTrend(points)),
		Health:             healthBand(healthPercent(sumInflow, sumOutflow)),
	}, nil
}

func liquidityBand(ratio float64) model.LiquidityRisk {
	switch {
	case ratio >= LiquidityLowMin:
		return model.LiquidityLow
	case ratio >= LiquidityMediumMin:
		return model.LiquidityMedium
	default:
		return model.LiquidityHigh
	}
}

// volatility is the mean, over each consecutive pair, of the absolute
// balance change relative to the previous balance. The divisor floor of 1
// keeps the ratio defined when the previous balance is exactly zero.
func volatility(points []model.ProjectionPoint) float64 {
	if len(points) < 2 {
		return 0
	}
	var sum float64
	for i := 1; i < len(points); i++ {
		prev := points[i-1].Balance.InexactFloat64()
		curr := points[i].Balance.InexactFloat64()
		sum += math.Abs(curr-prev) / math.Max(math.Abs(prev), 1)
	}
	return sum / float64(len(points)-1) * 100
}

func growthTrend(points []model.ProjectionPoint) float64 {
	first := points[0].Balance.InexactFloat64()
	last := points[len(points)-1].Balance.InexactFloat64()
	return (last - first) / math.Max(math.Abs(first), 1) * 100
}

// growthDirection classifies the trend sign. Zero counts as Positive; a tie
// is never Negative.
func growthDirection(trend float64) model.TrendDirection {
	if trend < 0 {
		return model.TrendNegative
	}
	return model.TrendPositive
}

func healthPercent(sumInflow, sumOutflow decimal.Decimal) float64 {
	out := sumOutflow.InexactFloat64()
	return sumInflow.InexactFloat64() / math.Max(out, 1) * 100
}

func healthBand(percent float64) model.CashFlowHealth {
	switch {
	case percent >= HealthHealthyMin:
		return model.HealthHealthy
	case percent >= HealthStableMin:
		return model.HealthStable
	default:
		return model.HealthAtRisk
	}
}
