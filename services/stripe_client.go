package services

import (
	"context"
	"math"

	"github.com/brightBediako/farmlink-api/models"
	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"
)

// PaymentProvider creates hosted checkout sessions for orders.
type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, order *models.Order) (string, error)
}

// StripeService implements PaymentProvider against Stripe Checkout.
type StripeService struct {
	successURL string
	cancelURL  string
	currency   string
}

func NewStripeService(secretKey, successURL, cancelURL string) *StripeService {
	stripe.Key = secretKey
	if successURL == "" {
		successURL = "http://localhost:3000/success"
	}
	if cancelURL == "" {
		cancelURL = "http://localhost:3000/cancel"
	}
	return &StripeService{
		successURL: successURL,
		cancelURL:  cancelURL,
		currency:   "usd",
	}
}

// CreateCheckoutSession converts the order items into Stripe line items
// (unit amounts in cents) and returns the hosted checkout URL.
func (s *StripeService) CreateCheckoutSession(ctx context.Context, order *models.Order) (string, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(s.currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(item.Name),
					Description: stripe.String(item.Description),
				},
				UnitAmount: stripe.Int64(toCents(item.Price)),
			},
			Quantity: stripe.Int64(int64(item.Qty)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		LineItems:  lineItems,
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(s.successURL),
		CancelURL:  stripe.String(s.cancelURL),
	}
	params.Context = ctx
	params.AddMetadata("order_id", order.ID.String())
	params.AddMetadata("user_id", order.UserID.String())

	sess, err := session.New(params)
	if err != nil {
		return "", err
	}
	return sess.URL, nil
}

// toCents rounds to the nearest cent; plain truncation drops a cent on
// prices like 19.99 whose float form sits just below the exact value.
func toCents(price float64) int64 {
	return int64(math.Round(price * 100))
}
