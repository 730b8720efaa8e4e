package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Static errors for err113 compliance.
var (
	ErrTokenSourceFailed = errors.New("token source failed")
)

// TokenSourceAccessor adapts an oauth2.TokenSource to crm.TokenAccessor.
// Expiry and refresh stay with the token source.
type TokenSourceAccessor struct {
	source oauth2.TokenSource
}

// NewTokenSourceAccessor wraps source.
func NewTokenSourceAccessor(source oauth2.TokenSource) *TokenSourceAccessor {
	return &TokenSourceAccessor{source: source}
}

// Token implements crm.TokenAccessor.
func (a *TokenSourceAccessor) Token(ctx context.Context) (string, bool, error) {
	if a.source == nil {
		return "", false, nil
	}

	token, err := a.source.Token()
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrTokenSourceFailed, err)
	}

	if !token.Valid() {
		return "", false, nil
	}

	return token.AccessToken, true, nil
}

// ClientCredentialsConfig configures the OAuth2 client_credentials grant.
type ClientCredentialsConfig struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	Scopes       []string
	// HTTPClient is used for token requests; nil uses http.DefaultClient.
	HTTPClient *http.Client
}

// ClientCredentialsAccessor fetches tokens with the client_credentials
// grant using the context of each call. A token is reused until it expires.
type ClientCredentialsAccessor struct {
	config     *clientcredentials.Config
	httpClient *http.Client

	mu    sync.Mutex
	token *oauth2.Token
}

// NewClientCredentialsAccessor returns an accessor backed by the
// client_credentials grant.
func NewClientCredentialsAccessor(config *ClientCredentialsConfig) *ClientCredentialsAccessor {
	return &ClientCredentialsAccessor{
		config: &clientcredentials.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			TokenURL:     config.TokenURL,
			Scopes:       config.Scopes,
			AuthStyle:    oauth2.AuthStyleAutoDetect,
		},
		httpClient: config.HTTPClient,
	}
}

// Token implements crm.TokenAccessor.
func (a *ClientCredentialsAccessor) Token(ctx context.Context) (string, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.token.Valid() {
		return a.token.AccessToken, true, nil
	}

	if a.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, a.httpClient)
	}

	token, err := a.config.Token(ctx)
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrTokenSourceFailed, err)
	}

	if !token.Valid() {
		return "", false, nil
	}

	a.token = token

	return token.AccessToken, true, nil
}
