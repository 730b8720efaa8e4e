package auth

import (
	"context"
	"errors"
	"fmt"
)

// Static errors for err113 compliance.
var (
	ErrNoTokenLoader = errors.New("no token loader configured")
)

// TokenLoader reads the token saved for an API endpoint, e.g. from the CLI config file.
// It returns nil when nothing is saved.
type TokenLoader interface {
	LoadAPIToken(apiDomain string) (*Token, error)
}

// ConfigTokenAccessor reads the saved token on every call, so a token written
// by another process (crm login) is picked up without restarting.
type ConfigTokenAccessor struct {
	loader    TokenLoader
	apiDomain string
}

// NewConfigTokenAccessor creates an accessor for apiDomain backed by loader.
func NewConfigTokenAccessor(loader TokenLoader, apiDomain string) *ConfigTokenAccessor {
	return &ConfigTokenAccessor{
		loader:    loader,
		apiDomain: apiDomain,
	}
}

// Token implements crm.TokenAccessor. Missing and expired tokens are reported as absent.
func (a *ConfigTokenAccessor) Token(ctx context.Context) (string, bool, error) {
	if a.loader == nil {
		return "", false, ErrNoTokenLoader
	}

	token, err := a.loader.LoadAPIToken(a.apiDomain)
	if err != nil {
		return "", false, fmt.Errorf("failed to load API token: %w", err)
	}

	if !token.Valid() {
		return "", false, nil
	}

	return token.AccessToken, true, nil
}
