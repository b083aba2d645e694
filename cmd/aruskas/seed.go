package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tirtawidya/aruskas/internal/cli"
	"github.com/tirtawidya/aruskas/internal/common"
	"github.com/tirtawidya/aruskas/internal/normalize"
	"github.com/tirtawidya/aruskas/internal/storage"
)

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert fixture records for all six subsystems",
		Long: `Populate the database with a year of realistic fixture rows so the
summary, ledger, and projection reports run end to end.`,
		RunE: runSeed,
	}

	cmd.Flags().IntP("year", "y", time.Now().Year(), "Year the fixtures are dated in")

	_ = viper.BindPFlag("seed.year", cmd.Flags().Lookup("year"))

	return cmd
}

func runSeed(cmd *cobra.Command, _ []string) error {
	year := viper.GetInt("seed.year")

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(cmd.Context()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	count, err := seedFixtures(cmd.Context(), store, year)
	if err != nil {
		return err
	}

	common.LogInfo("Seeded fixture records", common.Fields{"count": count, "year": year})
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("inserted %d fixture records for %d", count, year)))
	return nil
}

func seedFixtures(ctx context.Context, store *storage.SQLiteStore, year int) (int, error) {
	date := func(month time.Month, day int) string {
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	}

	records := []normalize.RawRecord{}
	for month := time.January; month <= time.December; month++ {
		records = append(records,
			normalize.RawSalesRecord{
				Date:      date(month, 8),
				Total:     fmt.Sprintf("%d", 4500000+int(month)*125000),
				Customer:  "Toko Sumber Rejeki",
				InvoiceNo: uuid.NewString(),
			},
			normalize.RawSalesRecord{
				Date:      date(month, 22),
				Total:     fmt.Sprintf("%d.50", 2750000+int(month)*80000),
				Customer:  "CV Maju Bersama",
				InvoiceNo: uuid.NewString(),
			},
			normalize.RawLedgerRecord{
				Date:        date(month, 3),
				Amount:      "350000",
				Flow:        "keluar",
				Category:    "utilities",
				Description: "Electricity and water",
				ReferenceID: uuid.NewString(),
			},
			normalize.RawLedgerRecord{
				Date:        date(month, 15),
				Amount:      "1200000",
				Flow:        "masuk",
				Category:    "other income",
				Description: "Equipment rental income",
				ReferenceID: uuid.NewString(),
			},
			normalize.RawProcurementRecord{
				Date:        date(month, 5),
				TotalCost:   fmt.Sprintf("%d", 1850000+int(month)*50000),
				Supplier:    "PT Bahan Prima",
				Item:        "raw material",
				ReferenceID: uuid.NewString(),
			},
			normalize.RawProductionPayrollRecord{
				PaidAt:      date(month, 28),
				Wage:        "2400000",
				Worker:      "production crew",
				ReferenceID: uuid.NewString(),
			},
			normalize.RawDriverPayrollRecord{
				PaidAt:      date(month, 28),
				Wage:        "1600000",
				Driver:      "delivery crew",
				ReferenceID: uuid.NewString(),
			},
		)
		if month%3 == 0 {
			records = append(records, normalize.RawMaintenanceRecord{
				Date:        date(month, 12),
				Cost:        "750000",
				Asset:       "delivery truck",
				Description: "Quarterly service",
				ReferenceID: uuid.NewString(),
			})
		}
	}

	for i, record := range records {
		if err := store.Insert(ctx, record); err != nil {
			return i, err
		}
	}
	return len(records), nil
}
