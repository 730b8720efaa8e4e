package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/fivetwenty-io/crm-client/internal/http"
	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

var _ crm.ResourceClient[crm.Customer, int64] = (*ResourceClient[crm.Customer, int64])(nil)

// KeyFormatter renders a key as a single path segment.
type KeyFormatter[K crm.Key] func(key K) string

// FormatInt64Key renders integer keys in base 10.
func FormatInt64Key(key int64) string {
	return strconv.FormatInt(key, 10)
}

// FormatStringKey path-escapes string keys.
func FormatStringKey(key string) string {
	return url.PathEscape(key)
}

// ResourceClient provides List/Get/Update/Insert/Delete for one resource kind.
type ResourceClient[T any, K crm.Key] struct {
	httpClient *http.Client
	resource   crm.ResourceDescriptor
	formatKey  KeyFormatter[K]
}

// NewResourceClient creates a generic resource client.
func NewResourceClient[T any, K crm.Key](httpClient *http.Client, resource crm.ResourceDescriptor, formatKey KeyFormatter[K]) *ResourceClient[T, K] {
	return &ResourceClient[T, K]{
		httpClient: httpClient,
		resource:   resource,
		formatKey:  formatKey,
	}
}

// Resource returns the descriptor this client addresses.
func (c *ResourceClient[T, K]) Resource() crm.ResourceDescriptor {
	return c.resource
}

func (c *ResourceClient[T, K]) keyPath(key K) string {
	return c.resource.RESTPath() + "/" + c.formatKey(key)
}

// List runs an OData query against the entity set.
func (c *ResourceClient[T, K]) List(ctx context.Context, opts *crm.QueryOptions) (*crm.PagedResult[T], error) {
	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method:   "GET",
		Path:     c.resource.ODataPath(),
		RawQuery: opts.Encode(),
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", c.resource.EntitySet, err)
	}

	err = http.Classify(resp).Err()
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", c.resource.EntitySet, err)
	}

	page, err := crm.DecodePage[T](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s list response: %w", c.resource.EntitySet, err)
	}

	return page, nil
}

// Get fetches a single record. It returns (nil, nil) when the server reports 404.
func (c *ResourceClient[T, K]) Get(ctx context.Context, key K) (*T, error) {
	return getRecord[T](ctx, c.httpClient, c.keyPath(key), c.resource.EntitySet)
}

// Update replaces the record stored under key.
func (c *ResourceClient[T, K]) Update(ctx context.Context, key K, data *T) error {
	resp, err := c.httpClient.Put(ctx, c.keyPath(key), data)
	if err != nil {
		return fmt.Errorf("updating %s: %w", c.resource.EntitySet, err)
	}

	err = http.Classify(resp).Err()
	if err != nil {
		return fmt.Errorf("updating %s: %w", c.resource.EntitySet, err)
	}

	return nil
}

// Insert creates a record and returns the server's representation of it.
func (c *ResourceClient[T, K]) Insert(ctx context.Context, data *T) (*T, error) {
	resp, err := c.httpClient.Post(ctx, c.resource.RESTPath(), data)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", c.resource.EntitySet, err)
	}

	err = http.Classify(resp).Err()
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", c.resource.EntitySet, err)
	}

	created, err := decodeRecord[T](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", c.resource.EntitySet, err)
	}

	return created, nil
}

// Delete removes the record stored under key.
func (c *ResourceClient[T, K]) Delete(ctx context.Context, key K) error {
	resp, err := c.httpClient.Delete(ctx, c.keyPath(key))
	if err != nil {
		return fmt.Errorf("deleting %s: %w", c.resource.EntitySet, err)
	}

	err = http.Classify(resp).Err()
	if err != nil {
		return fmt.Errorf("deleting %s: %w", c.resource.EntitySet, err)
	}

	return nil
}

func getRecord[R any](ctx context.Context, httpClient *http.Client, path, entitySet string) (*R, error) {
	resp, err := httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", entitySet, err)
	}

	result := http.Classify(resp)
	if result.Outcome == http.OutcomeNotFound {
		return nil, nil //nolint:nilnil // absent record is not an error
	}

	err = result.Err()
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", entitySet, err)
	}

	record, err := decodeRecord[R](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", entitySet, err)
	}

	return record, nil
}

func decodeRecord[R any](body []byte) (*R, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, &crm.MalformedError{Reason: "empty record body"}
	}

	var record R

	err := json.Unmarshal(trimmed, &record)
	if err != nil {
		return nil, &crm.MalformedError{Reason: "decoding record", Err: err}
	}

	return &record, nil
}
