package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tirtawidya/aruskas/internal/cli"
)

func projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Cash-flow projection with risk indicators",
		Long: `Extrapolate the trailing twelve months of history into the chosen
horizon and print the projected points with the derived risk profile.`,
		RunE: runProject,
	}

	cmd.Flags().IntP("horizon", "n", 3, "Projection horizon in months (3, 6, 12)")
	cmd.Flags().String("policy", "best-effort", "Source failure policy (best-effort, all-or-nothing)")

	_ = viper.BindPFlag("project.horizon", cmd.Flags().Lookup("horizon"))
	_ = viper.BindPFlag("project.policy", cmd.Flags().Lookup("policy"))

	return cmd
}

func runProject(cmd *cobra.Command, _ []string) error {
	policy, err := fetchPolicyFromFlag(viper.GetString("project.policy"))
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	engine := newEngine(store)
	projection, err := engine.GetProjection(cmd.Context(), callerCredential(), viper.GetInt("project.horizon"), policy)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatTitle(fmt.Sprintf("%d-month projection", len(projection.Points))))

	if projection.InsufficientData {
		fmt.Println(cli.FormatWarning("no history available; projection is zero-valued"))
	}

	rows := make([][]string, 0, len(projection.Points))
	for _, point := range projection.Points {
		rows = append(rows, []string{
			point.Period.String(),
			point.Inflow.StringFixed(2),
			point.Outflow.StringFixed(2),
			point.Balance.StringFixed(2),
		})
	}
	fmt.Println(cli.RenderTable([]string{"Period", "Inflow", "Outflow", "Balance"}, rows))

	risk := projection.Risk
	fmt.Println(cli.RenderBox("Risk profile", fmt.Sprintf(
		"Liquidity risk: %s\nVolatility:     %.1f%%\nGrowth trend:   %.1f%% (%s)\nCash flow:      %s",
		risk.Liquidity,
		risk.VolatilityPercent,
		risk.GrowthTrendPercent,
		risk.GrowthDirection,
		risk.Health,
	)))

	printDataQuality(projection.Skipped, projection.Degraded, projection.FailedSources)
	return nil
}
