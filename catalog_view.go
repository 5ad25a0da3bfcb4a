package storefront

import (
	"context"

	"github.com/tidwall/gjson"
)

// Catalog fetches and renders the product list
type Catalog struct {
	client   *Client
	cart     *Cart
	renderer CatalogRenderer
	status   StatusSink
}

// NewCatalog wires the catalog view. cart may be nil when no add-to-cart
// action should be offered.
func NewCatalog(client *Client, cart *Cart, renderer CatalogRenderer, status StatusSink) *Catalog {
	if status == nil {
		status = NopStatusSink
	}
	return &Catalog{
		client:   client,
		cart:     cart,
		renderer: renderer,
		status:   status,
	}
}

// Load fetches the product list, normalizes every record and hands the
// result to the renderer together with the add-to-cart binding. On
// failure the renderer is not invoked, so a previously rendered list
// stays on screen instead of being replaced by a blank one.
func (v *Catalog) Load(ctx context.Context) ([]Product, error) {
	raw, err := v.client.Call(ctx, "GET", "/api/products", nil)
	if err != nil {
		observeAuthFailure(v.client.Tokens(), err)
		v.status.Failure("Could not load products: " + errMessage(err))
		return nil, err
	}

	if err := validateShape(productListSchema, raw); err != nil {
		v.status.Failure("Could not load products: " + errMessage(err))
		return nil, err
	}

	var products []Product
	for _, record := range gjson.ParseBytes(raw).Array() {
		products = append(products, NormalizeProduct([]byte(record.Raw)))
	}

	v.renderer.RenderCatalog(products, v.addToCart())
	return products, nil
}

// addToCart binds each rendered item's action to the cart synchronizer
func (v *Catalog) addToCart() AddToCartFunc {
	if v.cart == nil {
		return nil
	}
	return func(ctx context.Context, productID int64) error {
		return v.cart.AddItem(ctx, productID, 1)
	}
}
