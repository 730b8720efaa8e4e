// Package crmclient provides the main entry point for creating CRM API clients
package crmclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fivetwenty-io/crm-client/internal/client"
	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// New creates a new CRM API client. config is copied; the caller's value is
// not modified.
func New(ctx context.Context, config *crm.Config) (crm.Client, error) {
	if config == nil {
		return nil, crm.ErrConfigRequired
	}

	if strings.TrimSpace(config.APIEndpoint) == "" {
		return nil, crm.ErrAPIEndpointRequired
	}

	normalized := *config
	normalized.APIEndpoint = NormalizeEndpoint(config.APIEndpoint)

	if err := validate.Struct(&normalized); err != nil {
		return nil, fmt.Errorf("%w: %w", crm.ErrInvalidConfig, err)
	}

	crmClient, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return crmClient, nil
}

// NormalizeEndpoint trims trailing slashes and defaults the scheme to https.
func NormalizeEndpoint(endpoint string) string {
	apiEndpoint := strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if !strings.HasPrefix(apiEndpoint, "http://") && !strings.HasPrefix(apiEndpoint, "https://") {
		apiEndpoint = "https://" + apiEndpoint
	}

	return apiEndpoint
}

// NewWithEndpoint creates a new client with just an API endpoint. Every
// operation on it fails with crm.ErrUnauthenticated.
func NewWithEndpoint(ctx context.Context, endpoint string) (crm.Client, error) {
	return New(ctx, &crm.Config{
		APIEndpoint: endpoint,
	})
}

// NewWithToken creates a new client with an API endpoint and access token.
func NewWithToken(ctx context.Context, endpoint, token string) (crm.Client, error) {
	return New(ctx, &crm.Config{
		APIEndpoint: endpoint,
		AccessToken: token,
	})
}

// NewWithTokenAccessor creates a new client that asks accessor for a token on every call.
func NewWithTokenAccessor(ctx context.Context, endpoint string, accessor crm.TokenAccessor) (crm.Client, error) {
	return New(ctx, &crm.Config{
		APIEndpoint:   endpoint,
		TokenAccessor: accessor,
	})
}

// NewWithClientCredentials creates a new client using the OAuth2 client_credentials grant.
func NewWithClientCredentials(ctx context.Context, endpoint, tokenURL, clientID, clientSecret string, scopes ...string) (crm.Client, error) {
	return New(ctx, &crm.Config{
		APIEndpoint:  endpoint,
		TokenURL:     tokenURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scopes:       scopes,
	})
}
