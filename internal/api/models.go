package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus enumerates payment lifecycle states as reported by the backend.
type PaymentStatus string

const (
	StatusPending PaymentStatus = "pending"
	StatusSuccess PaymentStatus = "success"
	StatusFailed  PaymentStatus = "failed"
)

// PaymentMethod enumerates supported payment instruments.
type PaymentMethod string

const (
	MethodCard         PaymentMethod = "card"
	MethodUPI          PaymentMethod = "upi"
	MethodBankTransfer PaymentMethod = "bank_transfer"
)

// User identifies the signed-in principal.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Payment is a single payment record, read-only from the client's perspective.
type Payment struct {
	ID        int64           `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Receiver  string          `json:"receiver"`
	Status    PaymentStatus   `json:"status"`
	Method    PaymentMethod   `json:"method"`
	CreatedAt time.Time       `json:"createdAt"`
}

// PaymentFilter narrows the payments list. Nil fields mean "no filter" and the
// corresponding query parameter is omitted entirely.
type PaymentFilter struct {
	Status *string
	Method *string
}

// CreatePaymentRequest is the POST payments body. Amount is a plain JSON
// number on the wire.
type CreatePaymentRequest struct {
	Amount   float64 `json:"amount"`
	Receiver string  `json:"receiver"`
	Method   string  `json:"method"`
	UserID   int64   `json:"userId"`
}

// StatsSnapshot holds server-computed aggregates consumed as-is by the
// dashboard. Field names follow the backend's JSON contract.
type StatsSnapshot struct {
	Counts struct {
		Success int `json:"success"`
		Failed  int `json:"failed"`
		Pending int `json:"pending"`
	} `json:"counts"`
	Amounts struct {
		TotalRevenue  float64 `json:"totalRevenue"`
		AverageAmount float64 `json:"averageAmount"`
		MinAmount     float64 `json:"minAmount"`
		MaxAmount     float64 `json:"maxAmount"`
	} `json:"amounts"`
	Methods struct {
		Card         int `json:"card"`
		UPI          int `json:"upi"`
		BankTransfer int `json:"bank_transfer"`
	} `json:"methods"`
	SuccessRate float64 `json:"successRate"`
}

// LoginResponse is the credential-exchange success payload.
type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
