package screens

import (
	"bufio"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/term"

	"paydash/internal/api"
	"paydash/internal/session"
)

// Deps are the collaborators every screen needs. Screens own their local
// request/loading/error handling; the session manager is the only shared
// state between them.
type Deps struct {
	Client  *api.Client
	Session *session.Manager
	Logger  *zap.Logger
	In      io.Reader
	Out     io.Writer
}

var validate = validator.New()

// readPassword reads a password without echo when stdin is a terminal, and
// falls back to a line read for pipes and tests.
func readPassword(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}

	scanner := bufio.NewScanner(in)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
