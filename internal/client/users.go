package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/crm-client/internal/http"
	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

var _ crm.UsersClient = (*UsersClient)(nil)

// UsersClient implements crm.UsersClient.
type UsersClient struct {
	*ResourceClient[crm.ApplicationUser, string]
}

// NewUsersClient creates a new users client.
func NewUsersClient(httpClient *http.Client) *UsersClient {
	return &UsersClient{
		ResourceClient: NewResourceClient[crm.ApplicationUser](httpClient, crm.ResourceUser, FormatStringKey),
	}
}

// GetWithRoles implements crm.UsersClient.GetWithRoles.
func (c *UsersClient) GetWithRoles(ctx context.Context, id string) (*crm.ApplicationUserWithRoles, error) {
	return getRecord[crm.ApplicationUserWithRoles](ctx, c.httpClient, c.keyPath(id), c.resource.EntitySet)
}

// ModifyRoles implements crm.UsersClient.ModifyRoles.
func (c *UsersClient) ModifyRoles(ctx context.Context, id string, roles []string) error {
	if roles == nil {
		roles = []string{}
	}

	resp, err := c.httpClient.Put(ctx, c.keyPath(id)+"/roles", roles)
	if err != nil {
		return fmt.Errorf("modifying user roles: %w", err)
	}

	err = http.Classify(resp).Err()
	if err != nil {
		return fmt.Errorf("modifying user roles: %w", err)
	}

	return nil
}
