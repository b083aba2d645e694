// Package report implements the reporting operations exposed to the
// dashboard's finance views: monthly summaries, the unified ledger, and
// forward projections with risk indicators.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tirtawidya/aruskas/internal/common"
	"github.com/tirtawidya/aruskas/internal/forecast"
	"github.com/tirtawidya/aruskas/internal/ledger"
	"github.com/tirtawidya/aruskas/internal/model"
	"github.com/tirtawidya/aruskas/internal/normalize"
	"github.com/tirtawidya/aruskas/internal/period"
	"github.com/tirtawidya/aruskas/internal/service"
)

// historyMonths is the trailing window of monthly buckets fed to the
// forecast engine.
const historyMonths = 12

// Engine aggregates the six source subsystems into report views. It holds
// no mutable state: every operation is a pure function of the fetched
// records, so concurrent invocations are independent.
type Engine struct {
	now     func() time.Time
	sources []service.SourceRepository
	retry   service.RetryOptions
}

// Config holds construction options for the reporting engine.
type Config struct {
	// Now supplies the request clock, used only to anchor windows when the
	// caller gives none (projection history, empty-history forecasts).
	Now   func() time.Time
	Retry service.RetryOptions
}

// New creates a reporting engine over the given source repositories.
func New(sources ...service.SourceRepository) *Engine {
	return NewWithConfig(sources, Config{})
}

// NewWithConfig creates a reporting engine with custom configuration.
func NewWithConfig(sources []service.SourceRepository, config Config) *Engine {
	now := config.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		sources: sources,
		retry:   config.Retry,
		now:     now,
	}
}

// MonthlySummary is the result of GetMonthlySummary.
type MonthlySummary struct {
	Year          int
	PerMonth      []model.PeriodBucket
	YearTotal     model.YearlyRollup
	Skipped       int
	Degraded      bool
	FailedSources []model.SourceModule
}

// UnifiedLedger is one page of the merged ledger view.
type UnifiedLedger struct {
	Rows          []model.LedgerEntry
	Page          int
	PageSize      int
	Total         int
	TotalPages    int
	Summary       ledger.Summary
	Skipped       int
	Degraded      bool
	FailedSources []model.SourceModule
}

// ProjectionReport is the result of GetProjection.
type ProjectionReport struct {
	Points           []model.ProjectionPoint
	Risk             model.RiskProfile
	InsufficientData bool
	Skipped          int
	Degraded         bool
	FailedSources    []model.SourceModule
}

// GetMonthlySummary buckets one calendar year of records into monthly
// totals plus a yearly rollup.
func (e *Engine) GetMonthlySummary(ctx context.Context, cred service.Credential, year int, policy service.FetchPolicy) (*MonthlySummary, error) {
	slog.Info("Building monthly summary", "user", cred.UserID, "year", year, "policy", policy)

	data, err := e.fetchAll(ctx, model.YearRange(year), policy)
	if err != nil {
		return nil, err
	}

	buckets := period.BucketizeYear(data.entries, year)
	return &MonthlySummary{
		Year:          year,
		PerMonth:      buckets,
		YearTotal:     period.Rollup(year, buckets),
		Skipped:       data.skipped,
		Degraded:      len(data.failed) > 0,
		FailedSources: data.failed,
	}, nil
}

// GetUnifiedLedger merges all sources into one filtered, paginated view.
// The summary covers the whole filtered set, never just the returned page.
func (e *Engine) GetUnifiedLedger(ctx context.Context, cred service.Credential, filter ledger.Filter, page, pageSize int, policy service.FetchPolicy) (*UnifiedLedger, error) {
	slog.Info("Building unified ledger",
		"user", cred.UserID,
		"page", page,
		"page_size", pageSize,
		"policy", policy)

	window := e.ledgerWindow(filter)
	data, err := e.fetchAll(ctx, window, policy)
	if err != nil {
		return nil, err
	}

	result, err := ledger.Merge(data.bySource, filter, page, pageSize)
	if err != nil {
		return nil, err
	}

	return &UnifiedLedger{
		Rows:          result.Rows,
		Page:          result.Page,
		PageSize:      result.PageSize,
		Total:         result.Total,
		TotalPages:    result.TotalPages,
		Summary:       result.Summary,
		Skipped:       data.skipped,
		Degraded:      len(data.failed) > 0,
		FailedSources: data.failed,
	}, nil
}

// GetProjection extrapolates the trailing twelve months of history into
// horizon future months and derives the risk profile.
func (e *Engine) GetProjection(ctx context.Context, cred service.Credential, horizon int, policy service.FetchPolicy) (*ProjectionReport, error) {
	if !forecast.ValidHorizon(horizon) {
		return nil, fmt.Errorf("unsupported horizon %d: must be one of %v", horizon, forecast.Horizons)
	}

	slog.Info("Building projection", "user", cred.UserID, "horizon", horizon, "policy", policy)

	now := e.now()
	window := e.historyWindow(now)
	data, err := e.fetchAll(ctx, window, policy)
	if err != nil {
		return nil, err
	}

	history := period.Bucketize(data.entries, window)
	projection, err := forecast.Project(history, horizon, now)
	if err != nil {
		return nil, err
	}

	risk, err := forecast.AnalyzeRisk(projection.Points)
	if err != nil {
		return nil, err
	}

	return &ProjectionReport{
		Points:           projection.Points,
		Risk:             risk,
		InsufficientData: projection.InsufficientData,
		Skipped:          data.skipped,
		Degraded:         len(data.failed) > 0,
		FailedSources:    data.failed,
	}, nil
}

// fetchedData is everything one round of source fetches produced.
type fetchedData struct {
	bySource map[model.SourceModule][]model.LedgerEntry
	entries  []model.LedgerEntry
	failed   []model.SourceModule
	skipped  int
}

// fetchAll pulls the window from every source, normalizes the raw records,
// and applies the fetch policy to failures. Sources are fetched with retry
// before being declared unavailable.
func (e *Engine) fetchAll(ctx context.Context, window model.DateRange, policy service.FetchPolicy) (*fetchedData, error) {
	if !policy.Valid() {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidPolicy, policy)
	}
	if len(e.sources) == 0 {
		return nil, common.ErrNoSources
	}

	data := &fetchedData{
		bySource: make(map[model.SourceModule][]model.LedgerEntry, len(e.sources)),
	}

	for _, source := range e.sources {
		var raws []normalize.RawRecord
		fetchErr := common.WithRetry(ctx, func() error {
			var err error
			raws, err = source.Fetch(ctx, window)
			return err
		}, e.retry)

		if fetchErr != nil {
			unavailable := common.NewSourceUnavailable(source.Module(), fetchErr)
			if policy == service.PolicyAllOrNothing {
				return nil, unavailable
			}
			slog.Warn("Source fetch failed, continuing without it",
				"module", source.Module(),
				"error", fetchErr)
			data.failed = append(data.failed, source.Module())
			continue
		}

		result := normalize.Records(raws)
		for _, rejected := range result.Skipped {
			slog.Debug("Skipped record", "module", rejected.Source, "reason", rejected.Reason)
		}
		data.skipped += len(result.Skipped)
		data.bySource[source.Module()] = append(data.bySource[source.Module()], result.Entries...)
		data.entries = append(data.entries, result.Entries...)
	}

	return data, nil
}

// ledgerWindow picks the fetch window for the unified ledger: the filter's
// range when given, otherwise an open window wide enough that post-dated
// records (a sale entered with tomorrow's date) still appear.
func (e *Engine) ledgerWindow(filter ledger.Filter) model.DateRange {
	if filter.Range != nil {
		return *filter.Range
	}
	return model.DateRange{
		Start: time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// historyWindow is the trailing twelve whole months ending with the current
// month.
func (e *Engine) historyWindow(now time.Time) model.DateRange {
	current := model.PeriodKeyFor(now)
	start := current.Start().AddDate(0, -(historyMonths - 1), 0)
	return model.DateRange{Start: start, End: current.End()}
}
