package screens

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"paydash/internal/api"
)

type paymentForm struct {
	Receiver string `validate:"required"`
	Method   string `validate:"required,oneof=card upi bank_transfer"`
}

// MakePayment validates the form and submits a new payment. Validation and a
// missing token both block the action before any request is sent. On failure
// the entered values are echoed back so the user can correct and resubmit.
func MakePayment(ctx context.Context, deps Deps, amountArg, receiver, method string) error {
	if method == "" {
		method = string(api.MethodCard)
	}
	method = normalizeOption(method)

	if amountArg == "" || receiver == "" {
		fmt.Fprintln(deps.Out, "Please fill in all fields.")
		return ErrBlocked
	}

	amount, err := decimal.NewFromString(amountArg)
	if err != nil {
		fmt.Fprintln(deps.Out, "Amount must be a number.")
		return ErrBlocked
	}
	if !amount.IsPositive() {
		fmt.Fprintln(deps.Out, "Amount must be greater than zero.")
		return ErrBlocked
	}

	form := paymentForm{Receiver: receiver, Method: method}
	if err := validate.Struct(form); err != nil {
		fmt.Fprintf(deps.Out, "Method must be one of: %s, %s, %s.\n",
			api.MethodCard, api.MethodUPI, api.MethodBankTransfer)
		return ErrBlocked
	}

	token := deps.Session.Token()
	user := deps.Session.User()
	if token == "" || user == nil {
		fmt.Fprintln(deps.Out, "You are not logged in.")
		return ErrBlocked
	}

	req := api.CreatePaymentRequest{
		Amount:   amount.InexactFloat64(),
		Receiver: receiver,
		Method:   method,
		UserID:   user.ID,
	}
	if err := deps.Client.CreatePayment(ctx, token, req); err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			message := apiErr.Message
			if message == "" {
				message = "An error occurred."
			}
			fmt.Fprintf(deps.Out, "Payment failed: %s\n", message)
		} else {
			deps.Logger.Error("payment request failed", zap.Error(err))
			fmt.Fprintln(deps.Out, "Payment failed: An unexpected error occurred.")
		}
		fmt.Fprintf(deps.Out, "Entered: amount=%s receiver=%s method=%s\n",
			amount.StringFixed(2), receiver, method)
		return err
	}

	fmt.Fprintf(deps.Out, "Payment successful: $%s to %s via %s.\n",
		amount.StringFixed(2), receiver, method)
	return nil
}
