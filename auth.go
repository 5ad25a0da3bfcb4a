package storefront

import (
	"context"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/dukkan/storefront-go/types"
)

// Default navigation targets after auth transitions
const (
	CatalogPath = "/"
	LoginPath   = "/auth"
)

// Auth drives the register/verify/login/logout workflows.
// State machine: Anonymous -> Registered(unverified) -> Authenticated ->
// Anonymous again on logout. The server remains the source of truth for
// authorization; success is only ever inferred from its responses.
type Auth struct {
	client *Client
	tokens TokenStore
	nav    Navigator
	status StatusSink
	cart   *Cart
}

// NewAuth wires the auth flows. The token store is taken from the
// client so both always observe the same session. nav and cart may be
// nil when no navigation or cart refresh should follow a transition.
func NewAuth(client *Client, nav Navigator, status StatusSink, cart *Cart) *Auth {
	if nav == nil {
		nav = NopNavigator
	}
	if status == nil {
		status = NopStatusSink
	}
	return &Auth{
		client: client,
		tokens: client.Tokens(),
		nav:    nav,
		status: status,
		cart:   cart,
	}
}

// Register creates an account. No session is established; the user is
// told to complete out-of-band verification.
func (a *Auth) Register(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		err := NewError(KindValidation, "email and password are required")
		a.status.Failure(errMessage(err))
		return err
	}

	_, err := a.client.Call(ctx, "POST", "/api/auth/register", types.RegisterRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		a.status.Failure("Registration failed: " + errMessage(err))
		return err
	}

	a.status.Success("Registration successful. Check your email for the verification link or code.")
	return nil
}

// VerifyCode submits an emailed verification code. On success the
// server has established the session, so navigation goes straight to
// the catalog.
func (a *Auth) VerifyCode(ctx context.Context, email, code string) error {
	email = strings.TrimSpace(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		err := NewError(KindValidation, "email and code are required")
		a.status.Failure(errMessage(err))
		return err
	}

	_, err := a.client.Call(ctx, "POST", "/api/auth/verify-code", types.VerifyCodeRequest{
		Email: email,
		Code:  code,
	})
	if err != nil {
		a.status.Failure("Verification failed: " + errMessage(err))
		return err
	}

	a.nav.Navigate(CatalogPath)
	return nil
}

// ResendCode asks for a fresh verification code. The server answers
// success regardless of account state to avoid leaking which emails
// exist, and the flow reports it the same way.
func (a *Auth) ResendCode(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		err := NewError(KindValidation, "email is required")
		a.status.Failure(errMessage(err))
		return err
	}

	_, err := a.client.Call(ctx, "POST", "/api/auth/resend-code", types.ResendCodeRequest{Email: email})
	if err != nil {
		a.status.Failure("Could not resend code: " + errMessage(err))
		return err
	}

	a.status.Success("Verification code sent.")
	return nil
}

// Login authenticates, stores the returned bearer token (the cookie is
// set by the server alongside it) and navigates to the requested
// redirect target or the catalog. On failure the session stays
// Anonymous.
func (a *Auth) Login(ctx context.Context, email, password, redirect string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		err := NewError(KindValidation, "email and password are required")
		a.status.Failure(errMessage(err))
		return err
	}

	raw, err := a.client.Call(ctx, "POST", "/api/auth/login", types.LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		a.status.Failure("Login failed: " + errMessage(err))
		return err
	}

	if token := gjson.GetBytes(raw, "token"); token.Type == gjson.String && token.Str != "" {
		a.tokens.Set(token.Str)
	}

	a.status.Success("Signed in.")

	target := redirect
	if target == "" {
		target = CatalogPath
	}
	a.nav.Navigate(target)

	if a.cart != nil {
		_, _ = a.cart.Refresh(ctx)
	}
	return nil
}

// Logout ends the session. The local token is always cleared, even when
// the network call fails: the user's intent is to stop acting as this
// session, and that much is locally satisfiable.
func (a *Auth) Logout(ctx context.Context) error {
	if _, err := a.client.Call(ctx, "POST", "/api/auth/logout", nil); err != nil {
		a.client.log.Debug().Err(err).Msg("logout request failed, clearing local session anyway")
	}

	a.tokens.Clear()
	a.status.Success("Signed out.")
	return nil
}

// EnsureAuthenticated probes the session and redirects to the login
// page when the server rejects it. It returns whether the session is
// currently accepted.
func (a *Auth) EnsureAuthenticated(ctx context.Context) (bool, error) {
	_, err := a.client.Call(ctx, "GET", "/api/me", nil)
	if err == nil {
		return true, nil
	}
	if StatusOf(err) == 401 {
		a.tokens.Clear()
		a.nav.Navigate(LoginPath + "?redirect=" + CatalogPath)
		return false, nil
	}
	return false, err
}
