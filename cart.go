package storefront

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/dukkan/storefront-go/types"
)

// Line is one rendered cart row. LineTotalCents is always recomputed
// from the authoritative qty and unit price, never carried over from an
// earlier client-side state.
type Line struct {
	Product        Product `json:"product"`
	Qty            int     `json:"qty"`
	LineTotalCents int64   `json:"lineTotalCents"`
}

// Cart keeps a locally rendered cart consistent with the
// server-authoritative state. Every mutation is followed by a full
// refresh; when refreshes triggered by rapid successive adds race, the
// last response to arrive wins the rendered state. That weak ordering
// is accepted: no coalescing, no cancellation.
type Cart struct {
	client   *Client
	renderer CartRenderer
	status   StatusSink
}

// NewCart wires the cart synchronizer
func NewCart(client *Client, renderer CartRenderer, status StatusSink) *Cart {
	if status == nil {
		status = NopStatusSink
	}
	return &Cart{
		client:   client,
		renderer: renderer,
		status:   status,
	}
}

// AddItem issues an optimistic add, then unconditionally refreshes so
// the rendered cart reflects what the server actually holds. The
// returned error is the add outcome; the refresh reports its own state
// through the renderer.
func (c *Cart) AddItem(ctx context.Context, productID int64, qty int) error {
	if qty < 1 {
		err := NewError(KindValidation, "quantity must be at least 1")
		c.status.Failure("Could not add to cart: " + errMessage(err))
		return err
	}

	_, addErr := c.client.Call(ctx, "POST", "/api/cart/add", types.CartAddRequest{
		ProductID: productID,
		Qty:       qty,
	})

	if addErr != nil {
		observeAuthFailure(c.client.Tokens(), addErr)
		// The usual cause is a missing session, but that is a guess,
		// not something the client can assert.
		c.status.Failure("Could not add to cart: " + errMessage(addErr) + " (you may need to sign in)")
	} else {
		c.status.Success("Added to cart")
	}

	// Refresh regardless of the add outcome
	_, _ = c.Refresh(ctx)

	return addErr
}

// Refresh fetches the authoritative cart and renders it. An empty cart
// renders as empty lines; a failed fetch renders as unavailable. The
// two are never conflated.
func (c *Cart) Refresh(ctx context.Context) ([]Line, error) {
	raw, err := c.client.Call(ctx, "GET", "/api/cart", nil)
	if err != nil {
		observeAuthFailure(c.client.Tokens(), err)
		c.renderer.RenderUnavailable("Cart unavailable: " + errMessage(err))
		return nil, err
	}

	if err := validateShape(cartListSchema, raw); err != nil {
		c.renderer.RenderUnavailable("Cart unavailable: " + errMessage(err))
		return nil, err
	}

	var lines []Line
	for _, entry := range gjson.ParseBytes(raw).Array() {
		qty := int(entry.Get("Qty").Int())
		if qty < 1 {
			// a non-positive qty can never form a valid line
			continue
		}
		product := NormalizeProduct([]byte(entry.Get("Product").Raw))
		lines = append(lines, Line{
			Product:        product,
			Qty:            qty,
			LineTotalCents: int64(qty) * product.PriceCents,
		})
	}

	c.renderer.RenderLines(lines)
	return lines, nil
}
