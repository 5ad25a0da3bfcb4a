package storefront

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
)

// Order is the terminal result of a successful checkout
type Order struct {
	ID         int64 `json:"id"`
	TotalCents int64 `json:"totalCents"`
}

// IntentKeyer supplies a stable key for the current checkout intent and
// observes each attempt's outcome. See extensions/idempotency for the
// uuid-backed implementation.
type IntentKeyer interface {
	// IntentKey returns the key to attach to the next checkout request
	IntentKey() string
	// Outcome reports how the attempt resolved (nil on success)
	Outcome(err error)
}

// Checkout issues the order-creation intent. Order creation is not
// idempotent, so each invocation sends exactly one request and never
// retries on its own.
type Checkout struct {
	client *Client
	cart   *Cart
	status StatusSink
	keys   IntentKeyer
}

// CheckoutOption configures the orchestrator
type CheckoutOption func(*Checkout)

// WithIntentKeys attaches an idempotency-key source to checkout requests
func WithIntentKeys(keys IntentKeyer) CheckoutOption {
	return func(c *Checkout) {
		c.keys = keys
	}
}

// NewCheckout wires the checkout orchestrator. cart may be nil when no
// cart rendering should be refreshed after an order.
func NewCheckout(client *Client, cart *Cart, status StatusSink, opts ...CheckoutOption) *Checkout {
	if status == nil {
		status = NopStatusSink
	}
	c := &Checkout{
		client: client,
		cart:   cart,
		status: status,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Checkout sends the order intent and reports the outcome. The order id
// and total come from the server alone; the client never computes or
// guesses a total. On success the cart is refreshed, since the server
// is expected to have emptied it; on failure the cart rendering is left
// untouched.
func (c *Checkout) Checkout(ctx context.Context) (Order, error) {
	var headers map[string]string
	if c.keys != nil {
		headers = map[string]string{"Idempotency-Key": c.keys.IntentKey()}
	}

	raw, err := c.client.CallWithHeaders(ctx, "POST", "/api/checkout", nil, headers)
	if c.keys != nil {
		c.keys.Outcome(err)
	}
	if err != nil {
		observeAuthFailure(c.client.Tokens(), err)
		c.status.Failure("Checkout failed: " + errMessage(err))
		return Order{}, err
	}

	id := gjson.GetBytes(raw, "ID")
	total := gjson.GetBytes(raw, "TotalCents")
	if id.Type != gjson.Number || total.Type != gjson.Number {
		shapeErr := NewError(KindUnexpectedShape, "order response missing ID or TotalCents")
		c.status.Failure("Checkout failed: " + errMessage(shapeErr))
		return Order{}, shapeErr
	}

	order := Order{ID: id.Int(), TotalCents: total.Int()}
	c.status.Success(fmt.Sprintf("Order #%d placed — total %s", order.ID, FormatPrice(order.TotalCents)))

	if c.cart != nil {
		// refresh reports its own outcome through the cart renderer
		_, _ = c.cart.Refresh(ctx)
	}

	return order, nil
}
