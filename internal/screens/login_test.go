package screens

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paydash/internal/session"
)

func TestLoginEmptyFieldsBlockedBeforeNetwork(t *testing.T) {
	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "pw"},
		{"empty both", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			counter := &countingHandler{}
			deps, out, manager := testDeps(t, counter)

			err := Login(context.Background(), deps, tc.email, tc.password)
			require.ErrorIs(t, err, ErrBlocked)

			assert.Zero(t, counter.requests, "validation failures must not reach the network")
			assert.Contains(t, out.String(), "Please fill in all fields.")
			assert.Nil(t, manager.User())
		})
	}
}

func TestLoginEmptyPasswordPromptsThenValidates(t *testing.T) {
	counter := &countingHandler{}
	deps, out, _ := testDeps(t, counter)
	deps.In = strings.NewReader("\n") // user submits an empty password

	err := Login(context.Background(), deps, "a@b.c", "")
	require.ErrorIs(t, err, ErrBlocked)
	assert.Zero(t, counter.requests)
	assert.Contains(t, out.String(), "Please fill in all fields.")
}

func TestLoginSuccessPersistsSession(t *testing.T) {
	deps, out, manager := testDeps(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"user":  map[string]any{"id": 7, "email": "a@b.c", "username": "alice"},
			"token": "tok-123",
		})
	}))

	err := Login(context.Background(), deps, "a@b.c", "pw")
	require.NoError(t, err)

	require.NotNil(t, manager.User())
	assert.Equal(t, "alice", manager.User().Username)
	assert.Equal(t, "tok-123", manager.Token())
	assert.Contains(t, out.String(), "Logged in as alice")
}

func TestLoginBackendRejectionSurfacesMessage(t *testing.T) {
	deps, out, manager := testDeps(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
	}))

	err := Login(context.Background(), deps, "a@b.c", "bad")
	require.Error(t, err)

	assert.Contains(t, out.String(), "invalid credentials")
	assert.Nil(t, manager.User(), "session must stay untouched on failure")
	assert.Empty(t, manager.Token())
}

func TestLoginTransportFailureShowsGenericError(t *testing.T) {
	deps, out, manager := testDeps(t, nil)
	// Point the client at a closed port.
	deps.Client = newDeadClient(t)

	err := Login(context.Background(), deps, "a@b.c", "pw")
	require.Error(t, err)

	assert.Contains(t, out.String(), "An unexpected error occurred.")
	assert.Nil(t, manager.User())
	_, storeErr := sessionStoreToken(manager)
	assert.Error(t, storeErr)
}

// sessionStoreToken reads the token the way a restart would see it.
func sessionStoreToken(m *session.Manager) (string, error) {
	if token := m.Token(); token != "" {
		return token, nil
	}
	return "", session.ErrNotFound
}
