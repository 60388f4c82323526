// Package payment creates checkout links for charges owed by clients.
package payment

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var ErrDisabled = errors.New("payment: gateway not configured")

type ChargeRequest struct {
	// Reference ties the charge back to our record, e.g. an appointment id.
	Reference   string
	Title       string
	Description string
	Amount      decimal.Decimal
	PayerEmail  string
}

type Charge struct {
	ID          string `json:"id"`
	Reference   string `json:"reference"`
	CheckoutURL string `json:"checkout_url"`
}

type Gateway interface {
	CreateCharge(ctx context.Context, req ChargeRequest) (*Charge, error)
}
