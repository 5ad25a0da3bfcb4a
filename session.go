package storefront

import (
	"net/http"
	"sync"
)

// TokenStore holds the bearer token for the current session.
// The token lives in memory only; the session cookie is managed by the
// HTTP client's cookie jar and survives independently of this store.
type TokenStore interface {
	// Get returns the current token and whether one is set
	Get() (string, bool)
	// Set replaces the current token
	Set(token string)
	// Clear drops the current token
	Clear()
}

// MemoryTokenStore is the default process-lifetime TokenStore.
// AuthFlows is the only writer, but the store is still safe for
// concurrent use so readers on other goroutines never see torn state.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryTokenStore creates an empty in-memory token store
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// Get returns the stored token, if any
func (s *MemoryTokenStore) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Set stores a token, replacing any previous one
func (s *MemoryTokenStore) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Clear empties the store
func (s *MemoryTokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// observeAuthFailure clears the stored token when a call came back
// 401. The server has rejected the credential, so there is no point
// sending it again. The session cookie is left alone; the server owns
// its lifetime.
func observeAuthFailure(tokens TokenStore, err error) {
	if StatusOf(err) == http.StatusUnauthorized {
		tokens.Clear()
	}
}
