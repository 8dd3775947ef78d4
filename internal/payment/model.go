package payment

import (
	"time"

	"allyoucangym/internal/subscription"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusPending Status = "pending"
)

// Payment records are append-only.
type Payment struct {
	ID            string                  `db:"id" json:"id"`
	TransactionID string                  `db:"transaction_id" json:"transactionId"`
	Status        Status                  `db:"status" json:"status"`
	AmountCents   int64                   `db:"amount_cents" json:"amount"`
	UserID        string                  `db:"user_id" json:"userId"`
	PackageID     *subscription.PackageID `db:"package_id" json:"packageId,omitempty"`
	CreatedAt     time.Time               `db:"created_at" json:"createdAt"`
}

// CheckoutRequest carries the card details. Any amount sent by the client is
// ignored; the price always comes from the package catalog.
type CheckoutRequest struct {
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
	CVV        string `json:"cvv"`
}

type CheckoutInput struct {
	UserID     string
	PackageKey subscription.PackageKey
	CardNumber string
	ExpiryDate string
	CVV        string
}

type CheckoutResult struct {
	TransactionID string                     `json:"transactionId"`
	Status        Status                     `json:"status"`
	Amount        int64                      `json:"amount"`
	Subscription  *subscription.Subscription `json:"subscription,omitempty"`
	Warning       string                     `json:"warning,omitempty"`
}
