package idempotency

import (
	"sync"

	"github.com/google/uuid"

	storefront "github.com/dukkan/storefront-go"
)

// Keys implements storefront.IntentKeyer with uuid keys held in memory.
//
// A key identifies one checkout intent, not one request. The key is
// minted lazily, reused while the previous attempt's outcome is unknown
// (a network error means the order may or may not exist server-side),
// and rotated as soon as the server gives a definite answer in either
// direction. Servers that ignore the Idempotency-Key header lose
// nothing; servers that honor it can collapse a re-submitted intent
// into the original order.
type Keys struct {
	mu      sync.Mutex
	current string
	newKey  func() string
}

// NewKeys creates a key source backed by random uuids
func NewKeys() *Keys {
	return &Keys{newKey: uuid.NewString}
}

// IntentKey returns the key for the current checkout intent, minting
// one if none is pending.
func (k *Keys) IntentKey() string {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.current == "" {
		k.current = k.newKey()
	}
	return k.current
}

// Outcome observes how the attempt resolved. Only a network error keeps
// the key alive: the intent's fate is unknown, so a user-initiated retry
// must present the same key. Success and definite server rejections both
// close the intent.
func (k *Keys) Outcome(err error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if err != nil && storefront.KindOf(err) == storefront.KindNetwork {
		return
	}
	k.current = ""
}
