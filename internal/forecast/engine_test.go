package forecast

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tirtawidya/aruskas/internal/model"
)

func bucket(year int, month time.Month, inflow, outflow string) model.PeriodBucket {
	b := model.NewPeriodBucket(model.PeriodKey{Year: year, Month: month})
	b.TotalInflow = decimal.RequireFromString(inflow)
	b.TotalOutflow = decimal.RequireFromString(outflow)
	b.EntryCount = 1
	return b
}

func TestProject_InvalidHorizon(t *testing.T) {
	for _, horizon := range []int{0, 1, 2, 4, 5, 7, 13, -3} {
		_, err := Project(nil, horizon, time.Now())
		assert.Error(t, err, "horizon %d", horizon)
	}
}

func TestProject_NoHistory(t *testing.T) {
	now := time.Date(2024, 8, 10, 0, 0, 0, 0, time.UTC)

	projection, err := Project(nil, 6, now)
	require.NoError(t, err)

	assert.True(t, projection.InsufficientData)
	require.Len(t, projection.Points, 6)
	assert.Equal(t, "2024-09", projection.Points[0].Period.String())
	for _, p := range projection.Points {
		assert.True(t, p.Inflow.IsZero())
		assert.True(t, p.Outflow.IsZero())
		assert.True(t, p.Balance.IsZero())
	}
}

func TestProject_SingleBucketIsFlat(t *testing.T) {
	history := []model.PeriodBucket{bucket(2024, time.May, "1000", "600")}

	projection, err := Project(history, 3, time.Now())
	require.NoError(t, err)

	assert.False(t, projection.InsufficientData)
	require.Len(t, projection.Points, 3)

	wantPeriods := []string{"2024-06", "2024-07", "2024-08"}
	for i, p := range projection.Points {
		assert.Equal(t, wantPeriods[i], p.Period.String())
		assert.True(t, p.Inflow.Equal(decimal.NewFromInt(1000)), "inflow %s", p.Inflow)
		assert.True(t, p.Outflow.Equal(decimal.NewFromInt(600)), "outflow %s", p.Outflow)
		assert.True(t, p.Balance.Equal(decimal.NewFromInt(400)), "balance %s", p.Balance)
	}
}

func TestProject_LinearTrendFromTwoMostRecent(t *testing.T) {
	history := []model.PeriodBucket{
		// An older bucket that must not influence the trend.
		bucket(2023, time.December, "9999", "9999"),
		bucket(2024, time.January, "100", "50"),
		bucket(2024, time.February, "120", "60"),
	}

	projection, err := Project(history, 3, time.Now())
	require.NoError(t, err)
	require.Len(t, projection.Points, 3)

	wantInflow := []int64{140, 160, 180}
	wantOutflow := []int64{70, 80, 90}
	wantPeriods := []string{"2024-03", "2024-04", "2024-05"}
	for i, p := range projection.Points {
		assert.Equal(t, wantPeriods[i], p.Period.String())
		assert.True(t, p.Inflow.Equal(decimal.NewFromInt(wantInflow[i])), "inflow[%d] = %s", i, p.Inflow)
		assert.True(t, p.Outflow.Equal(decimal.NewFromInt(wantOutflow[i])), "outflow[%d] = %s", i, p.Outflow)
		assert.True(t, p.Balance.Equal(p.Inflow.Sub(p.Outflow)))
	}
}

func TestProject_UnorderedHistory(t *testing.T) {
	history := []model.PeriodBucket{
		bucket(2024, time.February, "120", "60"),
		bucket(2024, time.January, "100", "50"),
	}

	projection, err := Project(history, 3, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "2024-03", projection.Points[0].Period.String())
	assert.True(t, projection.Points[0].Inflow.Equal(decimal.NewFromInt(140)),
		"trend must use the two most recent buckets regardless of input order")
}

func TestProject_DecliningTrendFlooredAtZero(t *testing.T) {
	history := []model.PeriodBucket{
		bucket(2024, time.January, "100", "0"),
		bucket(2024, time.February, "40", "0"),
	}

	projection, err := Project(history, 3, time.Now())
	require.NoError(t, err)

	// Step is -60: the first projected month would already be negative.
	for i, p := range projection.Points {
		assert.False(t, p.Inflow.IsNegative(), "inflow[%d] = %s", i, p.Inflow)
		assert.True(t, p.Inflow.IsZero(), "inflow[%d] = %s", i, p.Inflow)
	}
}

func TestProject_YearBoundary(t *testing.T) {
	history := []model.PeriodBucket{bucket(2024, time.December, "500", "200")}

	projection, err := Project(history, 3, time.Now())
	require.NoError(t, err)

	wantPeriods := []string{"2025-01", "2025-02", "2025-03"}
	for i, p := range projection.Points {
		assert.Equal(t, wantPeriods[i], p.Period.String())
	}
}

func TestProject_Idempotent(t *testing.T) {
	history := []model.PeriodBucket{
		bucket(2024, time.January, "100.50", "50.25"),
		bucket(2024, time.February, "120.75", "60"),
	}
	now := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)

	first, err := Project(history, 12, now)
	require.NoError(t, err)
	second, err := Project(history, 12, now)
	require.NoError(t, err)

	require.Equal(t, len(first.Points), len(second.Points))
	for i := range first.Points {
		assert.Equal(t, first.Points[i].Period, second.Points[i].Period)
		assert.True(t, first.Points[i].Balance.Equal(second.Points[i].Balance))
	}
}
