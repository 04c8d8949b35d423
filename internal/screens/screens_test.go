package screens

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"paydash/internal/api"
	"paydash/internal/session"
)

// testDeps wires a screen against a fake backend and an in-memory session.
func testDeps(t *testing.T, handler http.Handler) (Deps, *bytes.Buffer, *session.Manager) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	manager := session.NewManager(session.NewMemoryStore(), zap.NewNop())
	manager.Initialize()

	out := &bytes.Buffer{}
	deps := Deps{
		Client:  api.NewClient(server.URL, 2*time.Second, zap.NewNop()),
		Session: manager,
		Logger:  zap.NewNop(),
		In:      strings.NewReader(""),
		Out:     out,
	}
	return deps, out, manager
}

// newDeadClient returns a client pointed at a port nothing listens on.
func newDeadClient(t *testing.T) *api.Client {
	t.Helper()
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	return api.NewClient(server.URL, time.Second, zap.NewNop())
}

// countingHandler records how many requests reached the fake backend.
type countingHandler struct {
	requests int
	inner    http.Handler
}

func (h *countingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.requests++
	if h.inner != nil {
		h.inner.ServeHTTP(w, r)
	}
}
