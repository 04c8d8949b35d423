package screens

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Dashboard fetches the statistics snapshot once and renders four
// visualizations from it. The server's numbers are trusted as-is; no
// client-side aggregation happens here. Without a token no request is issued,
// and without a snapshot the no-stats state is rendered.
func Dashboard(ctx context.Context, deps Deps) error {
	token := deps.Session.Token()
	if token == "" {
		fmt.Fprintln(deps.Out, "No stats available.")
		return ErrBlocked
	}

	stats, err := deps.Client.Stats(ctx, token)
	if err != nil {
		deps.Logger.Error("failed to fetch stats", zap.Error(err))
		fmt.Fprintln(deps.Out, "No stats available.")
		return err
	}

	count := func(v float64) string { return fmt.Sprintf("%.0f", v) }
	money := func(v float64) string { return fmt.Sprintf("$%.2f", v) }

	fmt.Fprintln(deps.Out, "Dashboard")
	fmt.Fprintln(deps.Out)

	renderBarChart(deps.Out, "Payment Status", []barEntry{
		{"Success", float64(stats.Counts.Success)},
		{"Failed", float64(stats.Counts.Failed)},
		{"Pending", float64(stats.Counts.Pending)},
	}, count)

	renderBarChart(deps.Out, "Payment Amounts", []barEntry{
		{"Total", stats.Amounts.TotalRevenue},
		{"Average", stats.Amounts.AverageAmount},
		{"Min", stats.Amounts.MinAmount},
		{"Max", stats.Amounts.MaxAmount},
	}, money)

	renderBarChart(deps.Out, "Payment Methods", []barEntry{
		{"Card", float64(stats.Methods.Card)},
		{"UPI", float64(stats.Methods.UPI)},
		{"Bank Transfer", float64(stats.Methods.BankTransfer)},
	}, count)

	renderGauge(deps.Out, "Success Rate", stats.SuccessRate)
	return nil
}
