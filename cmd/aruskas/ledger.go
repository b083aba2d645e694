package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tirtawidya/aruskas/internal/cli"
	"github.com/tirtawidya/aruskas/internal/ledger"
	"github.com/tirtawidya/aruskas/internal/model"
	"github.com/tirtawidya/aruskas/internal/normalize"
)

func ledgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Unified ledger across all six subsystems",
		Long: `Merge records from the ledger book, maintenance, procurement, payroll,
and sales subsystems into one view, newest first, with filters and
pagination. The printed summary always covers the whole filtered set.`,
		RunE: runLedger,
	}

	cmd.Flags().IntP("page", "p", 1, "Page number (1-based)")
	cmd.Flags().Int("size", 20, "Rows per page")
	cmd.Flags().StringP("search", "s", "", "Filter by description, category, or reference")
	cmd.Flags().StringP("direction", "d", "", "Filter by direction (inflow, outflow)")
	cmd.Flags().String("from", "", "Window start (2006-01-02)")
	cmd.Flags().String("to", "", "Window end (2006-01-02)")
	cmd.Flags().String("policy", "best-effort", "Source failure policy (best-effort, all-or-nothing)")

	_ = viper.BindPFlag("ledger.page", cmd.Flags().Lookup("page"))
	_ = viper.BindPFlag("ledger.size", cmd.Flags().Lookup("size"))
	_ = viper.BindPFlag("ledger.search", cmd.Flags().Lookup("search"))
	_ = viper.BindPFlag("ledger.direction", cmd.Flags().Lookup("direction"))
	_ = viper.BindPFlag("ledger.from", cmd.Flags().Lookup("from"))
	_ = viper.BindPFlag("ledger.to", cmd.Flags().Lookup("to"))
	_ = viper.BindPFlag("ledger.policy", cmd.Flags().Lookup("policy"))

	return cmd
}

func runLedger(cmd *cobra.Command, _ []string) error {
	policy, err := fetchPolicyFromFlag(viper.GetString("ledger.policy"))
	if err != nil {
		return err
	}

	filter, err := ledgerFilter()
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	engine := newEngine(store)
	view, err := engine.GetUnifiedLedger(cmd.Context(), callerCredential(), filter,
		viper.GetInt("ledger.page"), viper.GetInt("ledger.size"), policy)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatTitle("Unified ledger"))

	rows := make([][]string, 0, len(view.Rows))
	for _, entry := range view.Rows {
		rows = append(rows, []string{
			entry.Date.Format("2006-01-02"),
			string(entry.Source),
			string(entry.Direction),
			entry.Amount.StringFixed(2),
			entry.Category,
			entry.Description,
		})
	}
	fmt.Println(cli.RenderTable([]string{"Date", "Source", "Direction", "Amount", "Category", "Description"}, rows))

	fmt.Printf("Page %d of %d (%d rows total)\n", view.Page, view.TotalPages, view.Total)
	fmt.Println(cli.RenderBox("Filtered totals", fmt.Sprintf(
		"Inflow:  %s\nOutflow: %s",
		view.Summary.TotalInflow.StringFixed(2),
		view.Summary.TotalOutflow.StringFixed(2),
	)))

	printDataQuality(view.Skipped, view.Degraded, view.FailedSources)
	return nil
}

func ledgerFilter() (ledger.Filter, error) {
	filter := ledger.Filter{
		Search: viper.GetString("ledger.search"),
	}

	if d := viper.GetString("ledger.direction"); d != "" {
		direction := model.Direction(d)
		if !direction.Valid() {
			return ledger.Filter{}, fmt.Errorf("invalid direction %q: use inflow or outflow", d)
		}
		filter.Direction = direction
	}

	from := viper.GetString("ledger.from")
	to := viper.GetString("ledger.to")
	if (from == "") != (to == "") {
		return ledger.Filter{}, fmt.Errorf("--from and --to must be given together")
	}
	if from != "" {
		start, err := normalize.ParseDate(from)
		if err != nil {
			return ledger.Filter{}, fmt.Errorf("invalid --from: %w", err)
		}
		end, err := normalize.ParseDate(to)
		if err != nil {
			return ledger.Filter{}, fmt.Errorf("invalid --to: %w", err)
		}
		filter.Range = &model.DateRange{Start: start, End: end}
	}

	return filter, nil
}
