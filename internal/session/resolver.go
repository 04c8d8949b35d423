package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"paydash/internal/api"
)

// State is the startup resolution outcome.
type State int

const (
	StateChecking State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "checking"
	}
}

// Identity resolution against the backend; satisfied by *api.Client.
type identityAPI interface {
	Me(ctx context.Context, token string) (api.User, error)
}

// Resolver decides once per process whether a stored session is still usable.
// Order: an in-memory user wins outright; otherwise a stored token is
// validated against the who-am-I endpoint; no token means unauthenticated
// without any network call.
type Resolver struct {
	session *Manager
	client  identityAPI
	logger  *zap.Logger

	once  sync.Once
	state State
}

// NewResolver wires the resolver; it starts in the checking state.
func NewResolver(session *Manager, client identityAPI, logger *zap.Logger) *Resolver {
	return &Resolver{
		session: session,
		client:  client,
		logger:  logger,
		state:   StateChecking,
	}
}

// Resolve runs the startup check exactly once and returns the cached outcome
// on every later call.
func (r *Resolver) Resolve(ctx context.Context) State {
	r.once.Do(func() {
		r.state = r.resolve(ctx)
	})
	return r.state
}

func (r *Resolver) resolve(ctx context.Context) State {
	if r.session.Loading() {
		r.session.Initialize()
	}

	if r.session.User() != nil {
		return StateAuthenticated
	}

	token := r.session.Token()
	if token == "" {
		return StateUnauthenticated
	}

	// A token that is provably expired cannot pass the who-am-I check, so
	// skip the round-trip. Opaque tokens and tokens without exp go through.
	if expired(token) {
		r.logger.Debug("stored token is expired")
		return StateUnauthenticated
	}

	user, err := r.client.Me(ctx, token)
	if err != nil {
		r.logger.Warn("stored token failed validation", zap.Error(err))
		return StateUnauthenticated
	}

	if err := r.session.Login(user, token); err != nil {
		r.logger.Warn("failed to persist revalidated session", zap.Error(err))
		return StateUnauthenticated
	}
	return StateAuthenticated
}

// expired reports whether the token is a JWT whose exp claim is in the past.
// The signature is not checked here; the backend remains the authority.
func expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
