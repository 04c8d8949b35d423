package screens

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"paydash/internal/api"
)

const chartWidth = 40

// renderPaymentsTable writes the list as an aligned table, or the explicit
// empty state when there is nothing to show.
func renderPaymentsTable(out io.Writer, payments []api.Payment) {
	if len(payments) == 0 {
		fmt.Fprintln(out, "No payments found.")
		return
	}

	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tAMOUNT\tRECEIVER\tSTATUS\tMETHOD")
	for _, p := range payments {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			p.ID, p.Amount.StringFixed(2), p.Receiver, p.Status, p.Method)
	}
	w.Flush()
}

type barEntry struct {
	label string
	value float64
}

// renderBarChart draws horizontal bars scaled to the largest value.
func renderBarChart(out io.Writer, title string, entries []barEntry, format func(float64) string) {
	fmt.Fprintln(out, title)

	var max float64
	labelWidth := 0
	for _, e := range entries {
		if e.value > max {
			max = e.value
		}
		if len(e.label) > labelWidth {
			labelWidth = len(e.label)
		}
	}

	for _, e := range entries {
		bars := 0
		if max > 0 && e.value > 0 {
			bars = int(e.value / max * chartWidth)
			if bars == 0 {
				bars = 1
			}
		}
		fmt.Fprintf(out, "  %-*s %s %s\n",
			labelWidth, e.label, strings.Repeat("█", bars), format(e.value))
	}
	fmt.Fprintln(out)
}

// renderGauge draws a single percentage as a filled gauge.
func renderGauge(out io.Writer, title string, percent float64) {
	fmt.Fprintln(out, title)

	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * chartWidth)
	fmt.Fprintf(out, "  [%s%s] %.1f%%\n\n",
		strings.Repeat("█", filled), strings.Repeat("░", chartWidth-filled), percent)
}
