package crm

import (
	"context"
	"time"
)

// Key is the set of key types a resource can be addressed by.
type Key interface {
	~int64 | ~string
}

// ResourceClient is the uniform List/Get/Update/Insert/Delete contract every
// resource kind exposes.
type ResourceClient[T any, K Key] interface {
	// List runs an OData collection query. 401 and 404 are returned as
	// ErrUnauthorized and ErrNotFound.
	List(ctx context.Context, opts *QueryOptions) (*PagedResult[T], error)
	// Get fetches one record. A 404 yields (nil, nil).
	Get(ctx context.Context, key K) (*T, error)
	// Update replaces the record stored under key.
	Update(ctx context.Context, key K, data *T) error
	// Insert creates a record and returns the server's representation.
	Insert(ctx context.Context, data *T) (*T, error)
	// Delete removes the record. A 404 is returned as ErrNotFound.
	Delete(ctx context.Context, key K) error
}

// UsersClient adds the role operations of the user resource.
type UsersClient interface {
	ResourceClient[ApplicationUser, string]

	// GetWithRoles fetches one user including role names. A 404 yields (nil, nil).
	GetWithRoles(ctx context.Context, id string) (*ApplicationUserWithRoles, error)
	// ModifyRoles replaces the user's role set.
	ModifyRoles(ctx context.Context, id string, roles []string) error
}

// SalesClients groups the commercial resources.
type SalesClients interface {
	Customers() ResourceClient[Customer, int64]
	Addresses() ResourceClient[Address, int64]
	Contacts() ResourceClient[Contact, int64]
	Opportunities() ResourceClient[Opportunity, int64]
	Leads() ResourceClient[Lead, int64]
	Sales() ResourceClient[Sale, int64]
	Rewards() ResourceClient[Reward, int64]
}

// CatalogClients groups the product and service catalog resources.
type CatalogClients interface {
	ProductCategories() ResourceClient[ProductCategory, int64]
	ServiceCategories() ResourceClient[ServiceCategory, int64]
	Products() ResourceClient[Product, int64]
	Services() ResourceClient[Service, int64]
	Vendors() ResourceClient[Vendor, int64]
}

// WorkClients groups the support and task resources.
type WorkClients interface {
	SupportCases() ResourceClient[SupportCase, int64]
	TodoTasks() ResourceClient[TodoTask, int64]
}

// Client provides access to every resource client.
type Client interface {
	SalesClients
	CatalogClients
	WorkClients

	Users() UsersClient
}

// TokenAccessor supplies the current bearer token. ok is false when no token
// is available; err reports a failure of the accessor itself. The client
// calls it once per operation and never caches the result.
type TokenAccessor interface {
	Token(ctx context.Context) (token string, ok bool, err error)
}

// TokenAccessorFunc adapts a function to TokenAccessor.
type TokenAccessorFunc func(ctx context.Context) (string, bool, error)

// Token implements TokenAccessor.
func (f TokenAccessorFunc) Token(ctx context.Context) (string, bool, error) {
	return f(ctx)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a crm.Client.
//
// # Authentication
//
// Exactly one token source is used, in this order:
//  1. TokenAccessor, when set.
//  2. AccessToken: sent as a static Bearer token.
//  3. ClientID/ClientSecret with TokenURL: tokens come from the OAuth2
//     client_credentials grant (golang.org/x/oauth2 handles caching and expiry).
//  4. None: every operation fails with ErrUnauthenticated before any request.
//
// # Timeouts and retries
//
// Per-request deadlines come from the context passed to each call. HTTPTimeout
// only bounds the transport. Requests are never retried.
type Config struct {
	// APIEndpoint: base URL of the CRM API (e.g., "https://crm.example.com").
	APIEndpoint string `validate:"required,url"`

	// TokenAccessor overrides every other authentication option.
	TokenAccessor TokenAccessor
	// AccessToken: if set, used directly as a Bearer token.
	AccessToken string
	// ClientID: OAuth2 client ID for the client_credentials grant.
	ClientID string `validate:"required_with=ClientSecret"`
	// ClientSecret: OAuth2 client secret used with ClientID.
	ClientSecret string `validate:"required_with=ClientID"`
	// TokenURL: OAuth2 token endpoint, required with ClientID.
	TokenURL string `validate:"required_with=ClientID,omitempty,url"`
	// Scopes requested with the client_credentials grant.
	Scopes []string

	// HTTPTimeout bounds each round trip at the transport. Zero uses the default.
	HTTPTimeout time.Duration `validate:"gte=0"`
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Headers are added to every request.
	Headers map[string]string
	// RateLimit caps outgoing requests per second. Zero disables limiting.
	RateLimit float64 `validate:"gte=0"`
	// RateBurst is the limiter burst; defaults to 1 when RateLimit is set.
	RateBurst int `validate:"gte=0"`
	// Debug enables request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
	// Metrics, when set, records per-endpoint request counts and latency.
	Metrics *MetricsCollector
}
