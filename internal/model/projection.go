package model

import "github.com/shopspring/decimal"

// ProjectionPoint is a forward-looking estimate of one future month.
// Balance is always Inflow - Outflow.
type ProjectionPoint struct {
	Period  PeriodKey
	Inflow  decimal.Decimal
	Outflow decimal.Decimal
	Balance decimal.Decimal
}

// LiquidityRisk bands the share of projected months with a non-negative
// balance.
type LiquidityRisk string

// Liquidity risk bands.
const (
	LiquidityLow    LiquidityRisk = "Low"
	LiquidityMedium LiquidityRisk = "Medium"
	LiquidityHigh   LiquidityRisk = "High"
)

// CashFlowHealth bands the ratio of projected inflow to projected outflow.
type CashFlowHealth string

// Cash flow health bands.
const (
	HealthHealthy CashFlowHealth = "Healthy"
	HealthStable  CashFlowHealth = "Stable"
	HealthAtRisk  CashFlowHealth = "AtRisk"
)

// TrendDirection classifies the sign of the growth trend. A zero trend is
// Positive; ties are never Negative.
type TrendDirection string

// Trend classifications.
const (
	TrendPositive TrendDirection = "Positive"
	TrendNegative TrendDirection = "Negative"
)

// RiskProfile bundles the qualitative financial-health indicators derived
// from one projection series. All fields are populated together.
type RiskProfile struct {
	Liquidity          LiquidityRisk
	VolatilityPercent  float64
	GrowthTrendPercent float64
	GrowthDirection    TrendDirection
	Health             CashFlowHealth
}
