package screens

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakePaymentNonNumericAmountBlocked(t *testing.T) {
	counter := &countingHandler{}
	deps, out, manager := testDeps(t, counter)
	loggedIn(t, manager)

	err := MakePayment(context.Background(), deps, "abc", "bob", "card")
	require.ErrorIs(t, err, ErrBlocked)

	assert.Zero(t, counter.requests, "no POST may be issued for a non-numeric amount")
	assert.Contains(t, out.String(), "Amount must be a number.")
}

func TestMakePaymentEmptyFieldsBlocked(t *testing.T) {
	cases := []struct {
		name     string
		amount   string
		receiver string
	}{
		{"empty amount", "", "bob"},
		{"empty receiver", "10", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			counter := &countingHandler{}
			deps, out, manager := testDeps(t, counter)
			loggedIn(t, manager)

			err := MakePayment(context.Background(), deps, tc.amount, tc.receiver, "card")
			require.ErrorIs(t, err, ErrBlocked)
			assert.Zero(t, counter.requests)
			assert.Contains(t, out.String(), "Please fill in all fields.")
		})
	}
}

func TestMakePaymentNegativeAmountBlocked(t *testing.T) {
	counter := &countingHandler{}
	deps, out, manager := testDeps(t, counter)
	loggedIn(t, manager)

	err := MakePayment(context.Background(), deps, "-5", "bob", "card")
	require.ErrorIs(t, err, ErrBlocked)
	assert.Zero(t, counter.requests)
	assert.Contains(t, out.String(), "greater than zero")
}

func TestMakePaymentUnknownMethodBlocked(t *testing.T) {
	counter := &countingHandler{}
	deps, out, manager := testDeps(t, counter)
	loggedIn(t, manager)

	err := MakePayment(context.Background(), deps, "10", "bob", "crypto")
	require.ErrorIs(t, err, ErrBlocked)
	assert.Zero(t, counter.requests)
	assert.Contains(t, out.String(), "Method must be one of")
}

func TestMakePaymentWithoutTokenBlocked(t *testing.T) {
	counter := &countingHandler{}
	deps, out, _ := testDeps(t, counter)

	err := MakePayment(context.Background(), deps, "10", "bob", "card")
	require.ErrorIs(t, err, ErrBlocked)
	assert.Zero(t, counter.requests)
	assert.Contains(t, out.String(), "You are not logged in.")
}

func TestMakePaymentSuccess(t *testing.T) {
	var gotBody map[string]any
	deps, out, manager := testDeps(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
	}))
	loggedIn(t, manager)

	err := MakePayment(context.Background(), deps, "99.95", "bob", "Bank Transfer")
	require.NoError(t, err)

	assert.Equal(t, 99.95, gotBody["amount"])
	assert.Equal(t, "bob", gotBody["receiver"])
	assert.Equal(t, "bank_transfer", gotBody["method"], "display labels normalize to wire values")
	assert.Equal(t, float64(7), gotBody["userId"], "the current user's id rides along")
	assert.Contains(t, out.String(), "Payment successful")
}

func TestMakePaymentFailurePreservesEnteredValues(t *testing.T) {
	deps, out, manager := testDeps(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"message": "insufficient funds"})
	}))
	loggedIn(t, manager)

	err := MakePayment(context.Background(), deps, "10", "bob", "card")
	require.Error(t, err)

	rendered := out.String()
	assert.Contains(t, rendered, "insufficient funds")
	assert.Contains(t, rendered, "amount=10.00 receiver=bob method=card")
}

func TestMakePaymentTransportFailureGenericMessage(t *testing.T) {
	deps, out, manager := testDeps(t, nil)
	loggedIn(t, manager)
	deps.Client = newDeadClient(t)

	err := MakePayment(context.Background(), deps, "10", "bob", "card")
	require.Error(t, err)
	assert.Contains(t, out.String(), "An unexpected error occurred.")
}
