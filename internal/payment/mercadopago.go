package payment

import (
	"context"
	"fmt"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

const currencyBRL = "BRL"

// MercadoPago issues a checkout preference per charge.
type MercadoPago struct {
	client          preference.Client
	notificationURL string
}

var _ Gateway = (*MercadoPago)(nil)

func NewMercadoPago(accessToken, notificationURL string) (*MercadoPago, error) {
	if accessToken == "" {
		return nil, ErrDisabled
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPago{
		client:          preference.NewClient(cfg),
		notificationURL: notificationURL,
	}, nil
}

func (m *MercadoPago) CreateCharge(ctx context.Context, req ChargeRequest) (*Charge, error) {
	body := buildPreference(req, m.notificationURL)

	res, err := m.client.Create(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("mercadopago create preference: %w", err)
	}

	return &Charge{
		ID:          res.ID,
		Reference:   req.Reference,
		CheckoutURL: res.InitPoint,
	}, nil
}

func buildPreference(req ChargeRequest, notificationURL string) preference.Request {
	body := preference.Request{
		Items: []preference.ItemRequest{
			{
				ID:          req.Reference,
				Title:       req.Title,
				Description: req.Description,
				Quantity:    1,
				CurrencyID:  currencyBRL,
				UnitPrice:   req.Amount.Round(2).InexactFloat64(),
			},
		},
		ExternalReference: req.Reference,
		NotificationURL:   notificationURL,
	}

	if req.PayerEmail != "" {
		body.Payer = &preference.PayerRequest{Email: req.PayerEmail}
	}
	return body
}
