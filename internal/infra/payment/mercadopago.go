package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	domain "github.com/BruksfildServices01/saloon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/saloon-scheduler/internal/models"
)

const currencyBRL = "BRL"

var ErrNotConfigured = errors.New("payment gateway not configured")

// preferenceCreator is the slice of the Mercado Pago client we use.
type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

// MercadoPagoGateway opens a Checkout Pro preference per appointment. The
// appointment id is the external reference so webhooks can be matched back.
type MercadoPagoGateway struct {
	client          preferenceCreator
	notificationURL string
}

func NewMercadoPagoGateway(accessToken, notificationURL string) (*MercadoPagoGateway, error) {
	if accessToken == "" {
		return nil, ErrNotConfigured
	}
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPagoGateway{
		client:          preference.NewClient(cfg),
		notificationURL: notificationURL,
	}, nil
}

func (g *MercadoPagoGateway) CreateCheckout(
	ctx context.Context,
	ap *models.Appointment,
	title string,
) (domain.Checkout, error) {

	req := preference.Request{
		ExternalReference: ap.ID.String(),
		NotificationURL:   g.notificationURL,
		Items: []preference.ItemRequest{{
			ID:         ap.ID.String(),
			Title:      title,
			Quantity:   1,
			UnitPrice:  ap.TotalPrice,
			CurrencyID: currencyBRL,
		}},
	}

	res, err := g.client.Create(ctx, req)
	if err != nil {
		return domain.Checkout{}, fmt.Errorf("create preference: %w", err)
	}

	return domain.Checkout{
		Reference: res.ID,
		URL:       res.InitPoint,
	}, nil
}

var _ domain.PaymentGateway = (*MercadoPagoGateway)(nil)
