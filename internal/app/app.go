package app

import (
	"context"
	"flag"
	"fmt"
	"io"

	"go.uber.org/zap"

	"paydash/internal/api"
	appconfig "paydash/internal/config"
	"paydash/internal/screens"
	"paydash/internal/session"
)

// App wires dependencies for the client.
type App struct {
	client   *api.Client
	session  *session.Manager
	resolver *session.Resolver
	logger   *zap.Logger
}

// New builds the application graph.
func New(cfg *appconfig.Config, logger *zap.Logger) (*App, error) {
	store, err := session.NewFileStore(cfg.Store.Path, cfg.Store.Secret)
	if err != nil {
		return nil, err
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, logger)
	manager := session.NewManager(store, logger)
	resolver := session.NewResolver(manager, client, logger)

	return &App{
		client:   client,
		session:  manager,
		resolver: resolver,
		logger:   logger,
	}, nil
}

const usage = `Usage: paydash <command> [flags]

Commands:
  login      log in with email and password
  logout     log out and clear the stored session
  whoami     show the current user
  payments   list payments, optionally filtered
  payment    show one payment by id
  pay        submit a new payment
  stats      show the payments dashboard
`

// Run dispatches a subcommand. Protected commands resolve the stored session
// first and refuse to run unauthenticated.
func (a *App) Run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return fmt.Errorf("app: no command")
	}

	deps := screens.Deps{
		Client:  a.client,
		Session: a.session,
		Logger:  a.logger,
		In:      in,
		Out:     out,
	}

	command, rest := args[0], args[1:]
	switch command {
	case "login":
		fs := flag.NewFlagSet("login", flag.ContinueOnError)
		fs.SetOutput(out)
		email := fs.String("email", "", "Account email")
		password := fs.String("password", "", "Password (prompted when omitted)")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		a.session.Initialize()
		return screens.Login(ctx, deps, *email, *password)

	case "logout":
		a.session.Initialize()
		if err := a.session.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(out, "Logged out.")
		return nil

	case "whoami":
		if err := a.requireAuth(ctx, out); err != nil {
			return err
		}
		user := a.session.User()
		fmt.Fprintf(out, "%s (%s), id %d\n", user.Username, user.Email, user.ID)
		return nil

	case "payments":
		fs := flag.NewFlagSet("payments", flag.ContinueOnError)
		fs.SetOutput(out)
		status := fs.String("status", "", "Filter by status (pending|success|failed)")
		method := fs.String("method", "", "Filter by method (card|upi|bank_transfer)")
		browse := fs.Bool("browse", false, "Interactive mode: reload, filter, open details")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if err := a.requireAuth(ctx, out); err != nil {
			return err
		}
		list := screens.NewPaymentsList(deps, optional(*status), optional(*method))
		if *browse {
			return list.Browse(ctx)
		}
		return list.Show(ctx)

	case "payment":
		if err := a.requireAuth(ctx, out); err != nil {
			return err
		}
		if len(rest) == 0 {
			fmt.Fprintln(out, "Payment not found.")
			return fmt.Errorf("app: payment id is required")
		}
		return screens.PaymentDetail(ctx, deps, rest[0])

	case "pay":
		fs := flag.NewFlagSet("pay", flag.ContinueOnError)
		fs.SetOutput(out)
		amount := fs.String("amount", "", "Amount to pay")
		receiver := fs.String("receiver", "", "Receiver name")
		method := fs.String("method", "card", "Payment method (card|upi|bank_transfer)")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if err := a.requireAuth(ctx, out); err != nil {
			return err
		}
		return screens.MakePayment(ctx, deps, *amount, *receiver, *method)

	case "stats":
		if err := a.requireAuth(ctx, out); err != nil {
			return err
		}
		return screens.Dashboard(ctx, deps)

	default:
		fmt.Fprint(out, usage)
		return fmt.Errorf("app: unknown command %q", command)
	}
}

// requireAuth runs the startup resolution once and rejects protected commands
// when it ends unauthenticated.
func (a *App) requireAuth(ctx context.Context, out io.Writer) error {
	if a.resolver.Resolve(ctx) != session.StateAuthenticated {
		fmt.Fprintln(out, "You are not logged in. Run 'paydash login'.")
		return fmt.Errorf("app: not authenticated")
	}
	return nil
}

// optional maps an empty flag value to "no filter".
func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
