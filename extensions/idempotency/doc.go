// Package idempotency provides checkout intent keys as an opt-in extension.
//
// # Overview
//
// Order creation is not idempotent and the SDK never retries it. What
// the SDK cannot distinguish on its own is a brand-new checkout intent
// from a user re-submitting the same intent after a network failure
// left the first attempt's fate unknown. This package closes that gap
// by tagging every checkout request with an Idempotency-Key header.
//
// # Why an Extension?
//
// The core checkout orchestrator stays header-free so it works against
// any server. Deployments whose API deduplicates on the key opt in:
//
//	keys := idempotency.NewKeys()
//	checkout := storefront.NewCheckout(client, cart, status,
//	    storefront.WithIntentKeys(keys),
//	)
//
// Keys are reused across attempts only while the previous attempt ended
// in a network error; any definite server answer rotates the key, so
// distinct intents never share one.
package idempotency
