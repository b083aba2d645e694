package storage

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tirtawidya/aruskas/internal/ledger"
	"github.com/tirtawidya/aruskas/internal/model"
	"github.com/tirtawidya/aruskas/internal/normalize"
	"github.com/tirtawidya/aruskas/internal/report"
	"github.com/tirtawidya/aruskas/internal/service"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestMigrate_Idempotent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Migrate(context.Background()))

	version, err := store.schemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestInsertAndFetch_AllSources(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	records := []normalize.RawRecord{
		normalize.RawLedgerRecord{Date: "2024-03-03", Amount: "350000", Flow: "keluar", Category: "utilities", Description: "Electricity", ReferenceID: "ref-1"},
		normalize.RawMaintenanceRecord{Date: "2024-03-12", Cost: "750000", Asset: "truck", Description: "Service", ReferenceID: "ref-2"},
		normalize.RawProcurementRecord{Date: "2024-03-05", TotalCost: "1850000", Supplier: "PT Bahan", Item: "raw material", ReferenceID: "ref-3"},
		normalize.RawProductionPayrollRecord{PaidAt: "2024-03-28", Wage: "2400000", Worker: "crew", ReferenceID: "ref-4"},
		normalize.RawDriverPayrollRecord{PaidAt: "2024-03-28", Wage: "1600000", Driver: "crew", ReferenceID: "ref-5"},
		normalize.RawSalesRecord{Date: "2024-03-08", Total: "4500000", Customer: "Toko", InvoiceNo: "inv-1"},
	}
	for _, r := range records {
		require.NoError(t, store.Insert(ctx, r))
	}

	window := model.MonthRange(2024, time.March)
	sources := store.Sources()
	require.Len(t, sources, 6)

	seen := map[model.SourceModule]int{}
	for _, source := range sources {
		fetched, err := source.Fetch(ctx, window)
		require.NoError(t, err, "fetch %s", source.Module())
		seen[source.Module()] = len(fetched)

		for _, raw := range fetched {
			assert.Equal(t, source.Module(), raw.Source())
		}
	}

	for _, module := range model.SourceModules {
		assert.Equal(t, 1, seen[module], "module %s", module)
	}
}

func TestFetch_WindowExcludesOutsideDates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, normalize.RawSalesRecord{Date: "2024-02-29", Total: "1", Customer: "a"}))
	require.NoError(t, store.Insert(ctx, normalize.RawSalesRecord{Date: "2024-03-01", Total: "2", Customer: "b"}))
	require.NoError(t, store.Insert(ctx, normalize.RawSalesRecord{Date: "2024-03-31", Total: "3", Customer: "c"}))
	require.NoError(t, store.Insert(ctx, normalize.RawSalesRecord{Date: "2024-04-01", Total: "4", Customer: "d"}))

	var sales service.SourceRepository
	for _, s := range store.Sources() {
		if s.Module() == model.SourceSales {
			sales = s
		}
	}
	require.NotNil(t, sales)

	fetched, err := sales.Fetch(ctx, model.MonthRange(2024, time.March))
	require.NoError(t, err)
	assert.Len(t, fetched, 2, "March window keeps both boundary days, excludes neighbors")
}

func TestFetch_PreservesRawAmountText(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, normalize.RawLedgerRecord{Date: "2024-03-03", Amount: "150.5", Flow: "masuk"}))
	require.NoError(t, store.Insert(ctx, normalize.RawLedgerRecord{Date: "2024-03-04", Amount: "abc", Flow: "masuk"}))

	var source service.SourceRepository
	for _, s := range store.Sources() {
		if s.Module() == model.SourceLedger {
			source = s
		}
	}
	require.NotNil(t, source)

	fetched, err := source.Fetch(ctx, model.MonthRange(2024, time.March))
	require.NoError(t, err)
	require.Len(t, fetched, 2)

	result := normalize.Records(fetched)
	require.Len(t, result.Entries, 2)
	assert.True(t, result.Entries[0].Amount.Equal(decimal.RequireFromString("150.5")))
	assert.True(t, result.Entries[1].Amount.IsZero(), "non-numeric stored amount coerces to zero")
}

func TestStore_EndToEndMonthlySummary(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, normalize.RawSalesRecord{Date: "2024-03-05", Total: "100", Customer: "Toko"}))
	require.NoError(t, store.Insert(ctx, normalize.RawMaintenanceRecord{Date: "2024-03-20", Cost: "40", Asset: "truck"}))

	engine := report.New(store.Sources()...)
	summary, err := engine.GetMonthlySummary(ctx, service.Credential{UserID: "test"}, 2024, service.PolicyAllOrNothing)
	require.NoError(t, err)

	require.Len(t, summary.PerMonth, 1)
	march := summary.PerMonth[0]
	assert.Equal(t, "2024-03", march.Period.String())
	assert.True(t, march.TotalInflow.Equal(decimal.NewFromInt(100)))
	assert.True(t, march.TotalOutflow.Equal(decimal.NewFromInt(40)))
}

func TestStore_EndToEndUnifiedLedger(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, normalize.RawSalesRecord{Date: "2024-03-08", Total: "4500000", Customer: "Toko Sumber Rejeki"}))
	require.NoError(t, store.Insert(ctx, normalize.RawLedgerRecord{Date: "2024-03-08", Amount: "350000", Flow: "keluar", Category: "utilities", Description: "Electricity"}))

	engine := report.New(store.Sources()...)
	view, err := engine.GetUnifiedLedger(ctx, service.Credential{UserID: "test"}, ledger.Filter{
		Range: &model.DateRange{
			Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		},
	}, 1, 10, service.PolicyAllOrNothing)
	require.NoError(t, err)

	require.Len(t, view.Rows, 2)
	// Same day: the ledger book outranks sales.
	assert.Equal(t, model.SourceLedger, view.Rows[0].Source)
	assert.Equal(t, model.SourceSales, view.Rows[1].Source)
	assert.False(t, view.Summary.Partial)
}
