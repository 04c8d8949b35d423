package session

import (
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"paydash/internal/api"
)

// Manager owns the process-wide session state: the current user and bearer
// token. It is the only writer of the secure store's token and user entries.
// Consumers must treat a nil user with loading finished as "must log in".
type Manager struct {
	mu      sync.Mutex
	store   Store
	logger  *zap.Logger
	user    *api.User
	token   string
	loading bool
}

// NewManager returns a manager in the loading state; call Initialize before
// reading the session.
func NewManager(store Store, logger *zap.Logger) *Manager {
	return &Manager{
		store:   store,
		logger:  logger,
		loading: true,
	}
}

// Initialize rehydrates the session from the store. A missing or corrupt
// stored value means "no session"; Initialize never fails. The loading flag is
// cleared on completion regardless of outcome.
func (m *Manager) Initialize() {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer func() { m.loading = false }()

	token, err := m.store.Get(KeyToken)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			m.logger.Debug("session token read failed", zap.Error(err))
		}
		return
	}

	userJSON, err := m.store.Get(KeyUser)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			m.logger.Debug("session user read failed", zap.Error(err))
		}
		m.token = token
		return
	}

	var user api.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		m.logger.Debug("stored user is corrupt, treating as no session", zap.Error(err))
		m.token = token
		return
	}

	m.token = token
	m.user = &user
}

// Login sets the session user and persists token and serialized user. The
// network call that produced the token happens in the caller.
func (m *Manager) Login(user api.User, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	userJSON, err := json.Marshal(user)
	if err != nil {
		return err
	}

	if err := m.store.Set(KeyToken, token); err != nil {
		return err
	}
	if err := m.store.Set(KeyUser, string(userJSON)); err != nil {
		return err
	}

	m.user = &user
	m.token = token
	return nil
}

// Logout clears the session and deletes both store entries. Idempotent.
func (m *Manager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.user = nil
	m.token = ""

	if err := m.store.Delete(KeyToken); err != nil {
		return err
	}
	return m.store.Delete(KeyUser)
}

// User returns the current user, or nil when no session is active.
func (m *Manager) User() *api.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Token returns the current bearer token, empty when absent.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Loading reports whether rehydration has not completed yet. It distinguishes
// "unknown yet" from "known absent".
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}
