// Package types holds the wire-level request and response shapes of the
// storefront HTTP API.
package types

// RegisterRequest creates an account
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest authenticates an account
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token; the session cookie is set
// alongside it by the server.
type LoginResponse struct {
	Token string `json:"token,omitempty"`
	OK    bool   `json:"ok,omitempty"`
}

// VerifyCodeRequest submits an emailed verification code
type VerifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// ResendCodeRequest asks for a fresh verification code
type ResendCodeRequest struct {
	Email string `json:"email"`
}

// CartAddRequest adds qty units of a product to the caller's cart
type CartAddRequest struct {
	ProductID int64 `json:"product_id"`
	Qty       int   `json:"qty"`
}

// CartEntry is one server-side cart row. Product stays loosely typed on
// the wire; the client normalizes it through the catalog normalizer.
type CartEntry struct {
	Product map[string]any `json:"Product"`
	Qty     int            `json:"Qty"`
}

// OrderResponse is the payload of a successful checkout
type OrderResponse struct {
	ID         int64 `json:"ID"`
	TotalCents int64 `json:"TotalCents"`
}
