package auth

import "context"

// StaticTokenAccessor hands out a fixed token.
type StaticTokenAccessor struct {
	token string
}

// NewStaticTokenAccessor creates an accessor for token. An empty token is
// reported as absent.
func NewStaticTokenAccessor(token string) *StaticTokenAccessor {
	return &StaticTokenAccessor{token: token}
}

// Token implements crm.TokenAccessor.
func (a *StaticTokenAccessor) Token(ctx context.Context) (string, bool, error) {
	if a.token == "" {
		return "", false, nil
	}

	return a.token, true, nil
}
