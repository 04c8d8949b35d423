package screens

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"paydash/internal/api"
)

var (
	statusOptions = []string{"Pending", "Success", "Failed"}
	methodOptions = []string{"Card", "UPI", "Bank Transfer"}
)

// PaymentsList is the payments list screen. Filtering is entirely
// server-side: every filter change or reload re-issues the request.
type PaymentsList struct {
	deps     Deps
	status   *string
	method   *string
	guard    fetchGuard
	payments []api.Payment
}

// NewPaymentsList builds the screen with the initial filter selection. Nil
// filter values mean "no filter".
func NewPaymentsList(deps Deps, status, method *string) *PaymentsList {
	return &PaymentsList{deps: deps, status: status, method: method}
}

// Show fetches once and renders the table.
func (s *PaymentsList) Show(ctx context.Context) error {
	if err := s.fetch(ctx); err != nil {
		fmt.Fprintln(s.deps.Out, "Failed to fetch payments.")
		return err
	}
	renderPaymentsTable(s.deps.Out, s.payments)
	return nil
}

// Browse renders the table and then reads commands in a loop: reload, change
// a filter, open a payment by id, log out, or quit.
func (s *PaymentsList) Browse(ctx context.Context) error {
	if err := s.Show(ctx); err != nil {
		return err
	}

	scanner := bufio.NewScanner(s.deps.In)
	for {
		fmt.Fprint(s.deps.Out, "\n[r]eload  [s]tatus filter  [m]ethod filter  <id> details  [l]ogout  [q]uit\n> ")
		if !scanner.Scan() {
			return nil
		}
		input := strings.TrimSpace(strings.ToLower(scanner.Text()))

		switch input {
		case "q", "":
			return nil
		case "r":
			s.refresh(ctx)
		case "s":
			if value, chosen := pickFilter(scanner, s.deps.Out, "Filter by Status", statusOptions); chosen {
				s.status = value
				s.refresh(ctx)
			}
		case "m":
			if value, chosen := pickFilter(scanner, s.deps.Out, "Filter by Method", methodOptions); chosen {
				s.method = value
				s.refresh(ctx)
			}
		case "l":
			if err := s.deps.Session.Logout(); err != nil {
				s.deps.Logger.Warn("logout failed", zap.Error(err))
			}
			fmt.Fprintln(s.deps.Out, "Logged out.")
			return nil
		default:
			id, err := strconv.ParseInt(input, 10, 64)
			if err != nil {
				fmt.Fprintln(s.deps.Out, "Unknown command.")
				continue
			}
			if err := PaymentDetail(ctx, s.deps, strconv.FormatInt(id, 10)); err != nil {
				s.deps.Logger.Debug("payment detail failed", zap.Error(err))
			}
		}
	}
}

func (s *PaymentsList) refresh(ctx context.Context) {
	if err := s.fetch(ctx); err != nil {
		fmt.Fprintln(s.deps.Out, "Failed to fetch payments.")
		return
	}
	renderPaymentsTable(s.deps.Out, s.payments)
}

func (s *PaymentsList) fetch(ctx context.Context) error {
	token := s.deps.Session.Token()
	if token == "" {
		fmt.Fprintln(s.deps.Out, "You are not logged in.")
		return ErrBlocked
	}

	gen := s.guard.next()
	payments, err := s.deps.Client.ListPayments(ctx, token, api.PaymentFilter{
		Status: s.status,
		Method: s.method,
	})
	if err != nil {
		s.deps.Logger.Error("failed to fetch payments", zap.Error(err))
		return err
	}
	if !s.guard.latest(gen) {
		// A newer fetch has started; this response is stale.
		return nil
	}

	s.payments = payments
	return nil
}
