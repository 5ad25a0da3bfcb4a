package storefront

import "context"

// AddToCartFunc is the per-item action a catalog renderer binds to its
// "add to cart" affordance. The renderer decides when to invoke it; the
// core never generates executable markup or wires events itself.
type AddToCartFunc func(ctx context.Context, productID int64) error

// CatalogRenderer turns a normalized product sequence into visual output.
// Implementations receive only validated data: every ImageRef has already
// resolved to an absolute URL, a canonical asset path, or the placeholder.
type CatalogRenderer interface {
	RenderCatalog(products []Product, addToCart AddToCartFunc)
}

// CartRenderer displays cart contents. RenderLines with an empty slice
// means "cart is empty"; RenderUnavailable means "cart could not be
// fetched". The two states must stay visually distinct.
type CartRenderer interface {
	RenderLines(lines []Line)
	RenderUnavailable(reason string)
}

// StatusSink receives user-visible outcome messages
type StatusSink interface {
	Success(msg string)
	Failure(msg string)
}

// Navigator performs a full redirect to a target path
type Navigator interface {
	Navigate(path string)
}

// NopStatusSink is a safe default when callers do not surface messages
var NopStatusSink StatusSink = nopStatus{}

type nopStatus struct{}

func (nopStatus) Success(string) {}
func (nopStatus) Failure(string) {}

// NopNavigator is a safe default when callers do not navigate
var NopNavigator Navigator = nopNavigator{}

type nopNavigator struct{}

func (nopNavigator) Navigate(string) {}
