package screens

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statsBody = `{
	"counts": {"success": 12, "failed": 3, "pending": 5},
	"amounts": {"totalRevenue": 1000.5, "averageAmount": 50.02, "minAmount": 1, "maxAmount": 400},
	"methods": {"card": 10, "upi": 6, "bank_transfer": 4},
	"successRate": 60
}`

func TestDashboardRendersFourVisualizations(t *testing.T) {
	deps, out, manager := testDeps(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/payments/stats", r.URL.Path)
		w.Write([]byte(statsBody))
	}))
	loggedIn(t, manager)

	err := Dashboard(context.Background(), deps)
	require.NoError(t, err)

	rendered := out.String()
	assert.Contains(t, rendered, "Payment Status")
	assert.Contains(t, rendered, "Payment Amounts")
	assert.Contains(t, rendered, "Payment Methods")
	assert.Contains(t, rendered, "Success Rate")
	assert.Contains(t, rendered, "$1000.50")
	assert.Contains(t, rendered, "60.0%")
}

func TestDashboardWithoutTokenSkipsFetch(t *testing.T) {
	counter := &countingHandler{}
	deps, out, _ := testDeps(t, counter)

	err := Dashboard(context.Background(), deps)
	require.ErrorIs(t, err, ErrBlocked)

	assert.Zero(t, counter.requests, "no token means no request")
	assert.Contains(t, out.String(), "No stats available.")
}

func TestDashboardFetchFailureShowsNoStats(t *testing.T) {
	deps, out, manager := testDeps(t, nil)
	loggedIn(t, manager)
	deps.Client = newDeadClient(t)

	err := Dashboard(context.Background(), deps)
	require.Error(t, err)
	assert.Contains(t, out.String(), "No stats available.")
}

func TestDashboardBackendRejectionShowsNoStats(t *testing.T) {
	deps, out, manager := testDeps(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	loggedIn(t, manager)

	err := Dashboard(context.Background(), deps)
	require.Error(t, err)
	assert.Contains(t, out.String(), "No stats available.")
}
