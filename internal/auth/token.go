// Package auth provides crm.TokenAccessor implementations. None of them
// acquire credentials on their own; they hand out tokens obtained elsewhere.
package auth

import (
	"context"
	"sync"
	"time"
)

// expiryBuffer treats tokens that expire within this window as already expired.
const expiryBuffer = 30 * time.Second

// Token is a bearer token with an optional expiry.
type Token struct {
	AccessToken string    `json:"access_token"         yaml:"access_token"`
	TokenType   string    `json:"token_type,omitempty" yaml:"token_type,omitempty"`
	ExpiresAt   time.Time `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

// Valid returns true if the token is present and not about to expire.
// A zero ExpiresAt means the expiry is unknown and the token is used as is.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return time.Now().Add(expiryBuffer).Before(t.ExpiresAt)
}

// TokenStore holds one token in memory. It is safe for concurrent use and
// implements crm.TokenAccessor.
type TokenStore struct {
	mu    sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the stored token, or nil.
func (s *TokenStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// Set replaces the stored token.
func (s *TokenStore) Set(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

// Clear removes the stored token.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
}

// Token implements crm.TokenAccessor. Expired tokens are reported as absent.
func (s *TokenStore) Token(ctx context.Context) (string, bool, error) {
	token := s.Get()
	if !token.Valid() {
		return "", false, nil
	}

	return token.AccessToken, true, nil
}
