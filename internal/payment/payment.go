package payment

import (
	"context"
	"net/http"
)

// Gateway abstracts the hosted-checkout payment provider. The order id is
// attached as correlation metadata so webhook notifications can be matched
// back to the originating order.
type Gateway interface {
	CreateCheckoutSession(
		ctx context.Context,
		orderID int64,
		customerEmail string,
		items []LineItem,
	) (*CheckoutSession, error)
	VerifyWebhook(r *http.Request) error
}
