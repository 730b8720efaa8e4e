package commands

import (
	"fmt"
	"sync"

	"github.com/fivetwenty-io/crm-client/internal/auth"
	"github.com/fivetwenty-io/crm-client/internal/constants"
)

// ConfigPersister stores API tokens in the CLI config file. It implements
// auth.TokenLoader.
type ConfigPersister struct {
	mutex sync.Mutex
	path  string
}

// NewConfigPersister creates a persister for the config file at path.
func NewConfigPersister(path string) *ConfigPersister {
	return &ConfigPersister{path: path}
}

// LoadAPIToken returns the token saved for apiDomain, or nil.
func (p *ConfigPersister) LoadAPIToken(apiDomain string) (*auth.Token, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config, err := loadConfigFile(p.path)
	if err != nil {
		return nil, err
	}

	api, exists := config.APIs[apiDomain]
	if !exists || api.Token == "" {
		return nil, nil //nolint:nilnil // absence is not an error for a token loader
	}

	token := &auth.Token{AccessToken: api.Token, TokenType: "bearer"}
	if api.TokenExpiresAt != nil {
		token.ExpiresAt = *api.TokenExpiresAt
	}

	return token, nil
}

// SaveAPIToken stores token for apiDomain and makes it the current API.
func (p *ConfigPersister) SaveAPIToken(apiDomain, endpoint string, token *auth.Token) error {
	if token == nil || token.AccessToken == "" {
		return constants.ErrEmptyToken
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	config, err := loadConfigFile(p.path)
	if err != nil {
		return err
	}

	api, exists := config.APIs[apiDomain]
	if !exists {
		api = &APIConfig{}
		config.APIs[apiDomain] = api
	}

	api.Endpoint = endpoint
	api.Token = token.AccessToken
	api.TokenExpiresAt = nil

	if !token.ExpiresAt.IsZero() {
		expiresAt := token.ExpiresAt
		api.TokenExpiresAt = &expiresAt
	}

	config.CurrentAPI = apiDomain

	return saveConfigFile(p.path, config)
}

// ClearAPIToken removes the token saved for apiDomain. The endpoint is kept.
func (p *ConfigPersister) ClearAPIToken(apiDomain string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config, err := loadConfigFile(p.path)
	if err != nil {
		return err
	}

	api, exists := config.APIs[apiDomain]
	if !exists {
		return fmt.Errorf("%w: %s", constants.ErrAPIConfigNotFound, apiDomain)
	}

	api.Token = ""
	api.TokenExpiresAt = nil

	return saveConfigFile(p.path, config)
}
