package client

import (
	"context"

	"github.com/fivetwenty-io/crm-client/internal/auth"
	"github.com/fivetwenty-io/crm-client/internal/http"
	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

var _ crm.Client = (*Client)(nil)

// Client implements the crm.Client interface.
type Client struct {
	httpClient    *http.Client
	tokenAccessor crm.TokenAccessor
	baseURL       string
	logger        crm.Logger

	// Resource clients
	users             *UsersClient
	customers         *ResourceClient[crm.Customer, int64]
	addresses         *ResourceClient[crm.Address, int64]
	contacts          *ResourceClient[crm.Contact, int64]
	opportunities     *ResourceClient[crm.Opportunity, int64]
	leads             *ResourceClient[crm.Lead, int64]
	sales             *ResourceClient[crm.Sale, int64]
	rewards           *ResourceClient[crm.Reward, int64]
	productCategories *ResourceClient[crm.ProductCategory, int64]
	serviceCategories *ResourceClient[crm.ServiceCategory, int64]
	products          *ResourceClient[crm.Product, int64]
	services          *ResourceClient[crm.Service, int64]
	vendors           *ResourceClient[crm.Vendor, int64]
	supportCases      *ResourceClient[crm.SupportCase, int64]
	todoTasks         *ResourceClient[crm.TodoTask, int64]
}

// createTokenAccessor picks the token source based on config.
// A nil result means every call fails with crm.ErrUnauthenticated.
func createTokenAccessor(config *crm.Config) crm.TokenAccessor {
	if config.TokenAccessor != nil {
		return config.TokenAccessor
	}

	if config.AccessToken != "" {
		return auth.NewStaticTokenAccessor(config.AccessToken)
	}

	if config.ClientID != "" && config.ClientSecret != "" {
		return auth.NewClientCredentialsAccessor(&auth.ClientCredentialsConfig{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			TokenURL:     config.TokenURL,
			Scopes:       config.Scopes,
		})
	}

	return nil
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *crm.Config) []http.Option {
	var httpOpts []http.Option

	if len(config.Headers) > 0 {
		httpOpts = append(httpOpts, http.WithRequestInterceptor(crm.HeaderInterceptor(config.Headers)))
	}

	if config.RateLimit > 0 {
		httpOpts = append(httpOpts, http.WithRequestInterceptor(crm.RateLimitInterceptor(config.RateLimit, config.RateBurst)))
	}

	if config.Logger != nil {
		httpOpts = append(httpOpts,
			http.WithLogger(config.Logger),
			http.WithRequestInterceptor(crm.LoggingInterceptor(config.Logger)),
			http.WithResponseInterceptor(crm.LoggingResponseInterceptor(config.Logger)),
		)
	}

	if config.Metrics != nil {
		httpOpts = append(httpOpts,
			http.WithRequestInterceptor(crm.MetricsRequestInterceptor(config.Metrics)),
			http.WithResponseInterceptor(crm.MetricsResponseInterceptor(config.Metrics)),
		)
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	return httpOpts
}

// New creates a CRM client from an already normalised config. Token requests
// run under the context of each operation.
func New(ctx context.Context, config *crm.Config) (*Client, error) {
	if config == nil {
		return nil, crm.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, crm.ErrAPIEndpointRequired
	}

	return NewWithTokenAccessor(config, createTokenAccessor(config)), nil
}

// NewWithTokenAccessor creates a client that takes tokens from tokenAccessor,
// ignoring the credential fields of config.
func NewWithTokenAccessor(config *crm.Config, tokenAccessor crm.TokenAccessor, opts ...http.Option) *Client {
	httpOpts := append(createHTTPClientOptions(config), opts...)

	client := &Client{
		httpClient:    http.NewClient(config.APIEndpoint, tokenAccessor, httpOpts...),
		tokenAccessor: tokenAccessor,
		baseURL:       config.APIEndpoint,
		logger:        config.Logger,
	}

	client.initializeResourceClients()

	return client
}

// GetTokenAccessor returns the token accessor for this client.
func (c *Client) GetTokenAccessor() crm.TokenAccessor {
	return c.tokenAccessor
}

// BaseURL returns the API endpoint requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) initializeResourceClients() {
	c.users = NewUsersClient(c.httpClient)
	c.customers = NewResourceClient[crm.Customer](c.httpClient, crm.ResourceCustomer, FormatInt64Key)
	c.addresses = NewResourceClient[crm.Address](c.httpClient, crm.ResourceAddress, FormatInt64Key)
	c.contacts = NewResourceClient[crm.Contact](c.httpClient, crm.ResourceContact, FormatInt64Key)
	c.opportunities = NewResourceClient[crm.Opportunity](c.httpClient, crm.ResourceOpportunity, FormatInt64Key)
	c.leads = NewResourceClient[crm.Lead](c.httpClient, crm.ResourceLead, FormatInt64Key)
	c.sales = NewResourceClient[crm.Sale](c.httpClient, crm.ResourceSale, FormatInt64Key)
	c.rewards = NewResourceClient[crm.Reward](c.httpClient, crm.ResourceReward, FormatInt64Key)
	c.productCategories = NewResourceClient[crm.ProductCategory](c.httpClient, crm.ResourceProductCategory, FormatInt64Key)
	c.serviceCategories = NewResourceClient[crm.ServiceCategory](c.httpClient, crm.ResourceServiceCategory, FormatInt64Key)
	c.products = NewResourceClient[crm.Product](c.httpClient, crm.ResourceProduct, FormatInt64Key)
	c.services = NewResourceClient[crm.Service](c.httpClient, crm.ResourceService, FormatInt64Key)
	c.vendors = NewResourceClient[crm.Vendor](c.httpClient, crm.ResourceVendor, FormatInt64Key)
	c.supportCases = NewResourceClient[crm.SupportCase](c.httpClient, crm.ResourceSupportCase, FormatInt64Key)
	c.todoTasks = NewResourceClient[crm.TodoTask](c.httpClient, crm.ResourceTodoTask, FormatInt64Key)
}

// Users implements crm.Client.Users.
func (c *Client) Users() crm.UsersClient {
	return c.users
}

// Customers implements crm.Client.Customers.
func (c *Client) Customers() crm.ResourceClient[crm.Customer, int64] {
	return c.customers
}

// Addresses implements crm.Client.Addresses.
func (c *Client) Addresses() crm.ResourceClient[crm.Address, int64] {
	return c.addresses
}

// Contacts implements crm.Client.Contacts.
func (c *Client) Contacts() crm.ResourceClient[crm.Contact, int64] {
	return c.contacts
}

// Opportunities implements crm.Client.Opportunities.
func (c *Client) Opportunities() crm.ResourceClient[crm.Opportunity, int64] {
	return c.opportunities
}

// Leads implements crm.Client.Leads.
func (c *Client) Leads() crm.ResourceClient[crm.Lead, int64] {
	return c.leads
}

// Sales implements crm.Client.Sales.
func (c *Client) Sales() crm.ResourceClient[crm.Sale, int64] {
	return c.sales
}

// Rewards implements crm.Client.Rewards.
func (c *Client) Rewards() crm.ResourceClient[crm.Reward, int64] {
	return c.rewards
}

// ProductCategories implements crm.Client.ProductCategories.
func (c *Client) ProductCategories() crm.ResourceClient[crm.ProductCategory, int64] {
	return c.productCategories
}

// ServiceCategories implements crm.Client.ServiceCategories.
func (c *Client) ServiceCategories() crm.ResourceClient[crm.ServiceCategory, int64] {
	return c.serviceCategories
}

// Products implements crm.Client.Products.
func (c *Client) Products() crm.ResourceClient[crm.Product, int64] {
	return c.products
}

// Services implements crm.Client.Services.
func (c *Client) Services() crm.ResourceClient[crm.Service, int64] {
	return c.services
}

// Vendors implements crm.Client.Vendors.
func (c *Client) Vendors() crm.ResourceClient[crm.Vendor, int64] {
	return c.vendors
}

// SupportCases implements crm.Client.SupportCases.
func (c *Client) SupportCases() crm.ResourceClient[crm.SupportCase, int64] {
	return c.supportCases
}

// TodoTasks implements crm.Client.TodoTasks.
func (c *Client) TodoTasks() crm.ResourceClient[crm.TodoTask, int64] {
	return c.todoTasks
}
