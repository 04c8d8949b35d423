package screens

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"paydash/internal/api"
)

// ErrBlocked marks an action stopped before any request was sent: failed
// input validation or a missing token on a protected action.
var ErrBlocked = errors.New("screens: action blocked")

type loginForm struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// Login validates credentials, exchanges them with the backend and persists
// the resulting session. An empty password is prompted for interactively.
// Session state is untouched on any failure so the user can simply retry.
func Login(ctx context.Context, deps Deps, email, password string) error {
	if password == "" && email != "" {
		fmt.Fprint(deps.Out, "Password: ")
		read, err := readPassword(deps.In)
		fmt.Fprintln(deps.Out)
		if err == nil {
			password = read
		}
	}

	form := loginForm{Email: email, Password: password}
	if err := validate.Struct(form); err != nil {
		fmt.Fprintln(deps.Out, "Please fill in all fields.")
		return ErrBlocked
	}

	user, token, err := deps.Client.Login(ctx, email, password)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			message := apiErr.Message
			if message == "" {
				message = "An error occurred."
			}
			fmt.Fprintf(deps.Out, "Login failed: %s\n", message)
		} else {
			deps.Logger.Error("login request failed", zap.Error(err))
			fmt.Fprintln(deps.Out, "Login failed: An unexpected error occurred.")
		}
		return err
	}

	if err := deps.Session.Login(user, token); err != nil {
		deps.Logger.Error("failed to persist session", zap.Error(err))
		fmt.Fprintln(deps.Out, "Login failed: could not save session.")
		return err
	}

	fmt.Fprintf(deps.Out, "Logged in as %s (%s).\n", user.Username, user.Email)
	return nil
}
