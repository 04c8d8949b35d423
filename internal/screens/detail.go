package screens

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"go.uber.org/zap"

	"paydash/internal/api"
)

// PaymentDetail fetches one payment by id and renders it. A missing or
// invalid id and any non-success response render the not-found state rather
// than failing hard.
func PaymentDetail(ctx context.Context, deps Deps, idArg string) error {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil || id <= 0 {
		fmt.Fprintln(deps.Out, "Payment not found.")
		return ErrBlocked
	}

	token := deps.Session.Token()
	if token == "" {
		fmt.Fprintln(deps.Out, "You are not logged in.")
		return ErrBlocked
	}

	payment, err := deps.Client.GetPayment(ctx, token, id)
	if err != nil {
		var apiErr *api.Error
		switch {
		case errors.Is(err, api.ErrNotFound):
			fmt.Fprintln(deps.Out, "Payment not found.")
		case errors.As(err, &apiErr):
			message := apiErr.Message
			if message == "" {
				message = "Failed to fetch payment details."
			}
			fmt.Fprintln(deps.Out, message)
			fmt.Fprintln(deps.Out, "Payment not found.")
		default:
			deps.Logger.Error("failed to fetch payment", zap.Int64("id", id), zap.Error(err))
			fmt.Fprintln(deps.Out, "An unexpected error occurred.")
			fmt.Fprintln(deps.Out, "Payment not found.")
		}
		return err
	}

	fmt.Fprintln(deps.Out, "Payment Details")
	w := tabwriter.NewWriter(deps.Out, 2, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Amount:\t$%s\n", payment.Amount.StringFixed(2))
	fmt.Fprintf(w, "Receiver:\t%s\n", payment.Receiver)
	fmt.Fprintf(w, "Method:\t%s\n", payment.Method)
	fmt.Fprintf(w, "Status:\t%s\n", payment.Status)
	fmt.Fprintf(w, "Date:\t%s\n", payment.CreatedAt.Local().Format("Jan 2, 2006"))
	w.Flush()
	return nil
}
