package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tirtawidya/aruskas/internal/cli"
)

func summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Monthly cash-flow summary for one year",
		Long: `Bucket every financial record of the selected year into calendar
months and print the per-month totals plus the yearly rollup.`,
		RunE: runSummary,
	}

	cmd.Flags().IntP("year", "y", time.Now().Year(), "Year to summarize")
	cmd.Flags().String("policy", "best-effort", "Source failure policy (best-effort, all-or-nothing)")

	_ = viper.BindPFlag("summary.year", cmd.Flags().Lookup("year"))
	_ = viper.BindPFlag("summary.policy", cmd.Flags().Lookup("policy"))

	return cmd
}

func runSummary(cmd *cobra.Command, _ []string) error {
	year := viper.GetInt("summary.year")
	policy, err := fetchPolicyFromFlag(viper.GetString("summary.policy"))
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	engine := newEngine(store)
	summary, err := engine.GetMonthlySummary(cmd.Context(), callerCredential(), year, policy)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatTitle(fmt.Sprintf("Monthly summary %d", year)))

	rows := make([][]string, 0, len(summary.PerMonth))
	for _, bucket := range summary.PerMonth {
		rows = append(rows, []string{
			bucket.Period.String(),
			bucket.TotalInflow.StringFixed(2),
			bucket.TotalOutflow.StringFixed(2),
			bucket.Net().StringFixed(2),
			fmt.Sprintf("%d", bucket.EntryCount),
		})
	}
	fmt.Println(cli.RenderTable([]string{"Month", "Inflow", "Outflow", "Net", "Entries"}, rows))

	total := summary.YearTotal
	fmt.Println(cli.RenderBox(fmt.Sprintf("%d totals", year), fmt.Sprintf(
		"Inflow:  %s\nOutflow: %s\nNet:     %s\nMonths:  %d\nEntries: %d",
		total.TotalInflow.StringFixed(2),
		total.TotalOutflow.StringFixed(2),
		total.Net().StringFixed(2),
		total.MonthsIncluded,
		total.EntryCount,
	)))

	printDataQuality(summary.Skipped, summary.Degraded, summary.FailedSources)
	return nil
}
