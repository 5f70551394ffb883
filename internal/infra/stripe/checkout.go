package stripeclient

import (
	"context"
	"time"

	"car-sharing-app/internal/domain/payments"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
)

const createAttempts = 3

// Client implements payments.Checkout over Stripe Checkout. Session
// creation retries a bounded number of times under one idempotency key,
// so a retry after a half-failed attempt cannot open a second session.
type Client struct{}

func New(secretKey string) *Client {
	stripe.Key = secretKey
	return &Client{}
}

func (c *Client) CreateSession(ctx context.Context, name string, amountCents int64, successURL, cancelURL string) (payments.Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyUSD)),
					UnitAmount: stripe.Int64(amountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(name),
					},
				},
			},
		},
	}
	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())

	var (
		sess *stripe.CheckoutSession
		err  error
	)
	for attempt := 0; attempt < createAttempts; attempt++ {
		sess, err = checkoutsession.New(params)
		if err == nil {
			break
		}
		select {
		case <-ctx.Done():
			return payments.Session{}, ctx.Err()
		case <-time.After(time.Duration(attempt+1) * 200 * time.Millisecond):
		}
	}
	if err != nil {
		return payments.Session{}, err
	}
	return payments.Session{ID: sess.ID, URL: sess.URL}, nil
}

// ExpireSession closes an upstream session whose local record was lost.
func (c *Client) ExpireSession(ctx context.Context, sessionID string) error {
	params := &stripe.CheckoutSessionExpireParams{}
	params.Context = ctx
	_, err := checkoutsession.Expire(sessionID, params)
	return err
}
