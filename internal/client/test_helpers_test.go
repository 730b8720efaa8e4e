package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalhttp "github.com/fivetwenty-io/crm-client/internal/http"
	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

const testToken = "test-token"

// RecordedRequest captures what the test server received.
type RecordedRequest struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	ContentType   string
	Body          string
}

// RecordingServer answers every request with a fixed status and body.
type RecordingServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
}

// NewRecordingServer starts a server replying with status and body.
func NewRecordingServer(t *testing.T, status int, body string) *RecordingServer {
	t.Helper()

	recorder := &RecordingServer{}
	recorder.Server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		payload, _ := io.ReadAll(request.Body)

		recorder.mu.Lock()
		recorder.requests = append(recorder.requests, RecordedRequest{
			Method:        request.Method,
			Path:          request.URL.EscapedPath(),
			RawQuery:      request.URL.RawQuery,
			Authorization: request.Header.Get("Authorization"),
			ContentType:   request.Header.Get("Content-Type"),
			Body:          string(payload),
		})
		recorder.mu.Unlock()

		if body != "" {
			writer.Header().Set("Content-Type", "application/json")
		}

		writer.WriteHeader(status)
		_, _ = writer.Write([]byte(body))
	}))
	t.Cleanup(recorder.Close)

	return recorder
}

// Requests returns a copy of the recorded requests.
func (s *RecordingServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]RecordedRequest(nil), s.requests...)
}

// Last returns the single recorded request, failing if there was not exactly one.
func (s *RecordingServer) Last(t *testing.T) RecordedRequest {
	t.Helper()

	requests := s.Requests()
	require.Len(t, requests, 1)

	return requests[0]
}

// NewTestHTTPClient creates an HTTP client that always has testToken.
func NewTestHTTPClient(baseURL string) *internalhttp.Client {
	return internalhttp.NewClient(baseURL, crm.TokenAccessorFunc(func(ctx context.Context) (string, bool, error) {
		return testToken, true, nil
	}))
}

// NewUnauthenticatedHTTPClient creates an HTTP client whose accessor has no token.
func NewUnauthenticatedHTTPClient(baseURL string) *internalhttp.Client {
	return internalhttp.NewClient(baseURL, crm.TokenAccessorFunc(func(ctx context.Context) (string, bool, error) {
		return "", false, nil
	}))
}

// TestGetOperation represents a generic get operation test case.
type TestGetOperation[T any, K crm.Key] struct {
	Name         string
	Key          K
	ExpectedPath string
	StatusCode   int
	Body         string
	WantNil      bool
	WantErr      error
	Check        func(t *testing.T, record *T)
}

// RunGetTests runs a series of get operation tests.
func RunGetTests[T any, K crm.Key](
	t *testing.T,
	tests []TestGetOperation[T, K],
	newClient func(*internalhttp.Client) crm.ResourceClient[T, K],
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			server := NewRecordingServer(t, testCase.StatusCode, testCase.Body)
			resources := newClient(NewTestHTTPClient(server.URL))

			record, err := resources.Get(context.Background(), testCase.Key)

			request := server.Last(t)
			assert.Equal(t, http.MethodGet, request.Method)
			assert.Equal(t, testCase.ExpectedPath, request.Path)
			assert.Equal(t, "Bearer "+testToken, request.Authorization)

			if testCase.WantErr != nil {
				require.ErrorIs(t, err, testCase.WantErr)
				assert.Nil(t, record)

				return
			}

			require.NoError(t, err)

			if testCase.WantNil {
				assert.Nil(t, record)

				return
			}

			require.NotNil(t, record)

			if testCase.Check != nil {
				testCase.Check(t, record)
			}
		})
	}
}

// TestDeleteOperation represents a delete operation test case.
type TestDeleteOperation[K crm.Key] struct {
	Name         string
	Key          K
	ExpectedPath string
	StatusCode   int
	Body         string
	WantErr      error
}

// RunDeleteTests runs a series of delete operation tests.
func RunDeleteTests[T any, K crm.Key](
	t *testing.T,
	tests []TestDeleteOperation[K],
	newClient func(*internalhttp.Client) crm.ResourceClient[T, K],
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			server := NewRecordingServer(t, testCase.StatusCode, testCase.Body)
			resources := newClient(NewTestHTTPClient(server.URL))

			err := resources.Delete(context.Background(), testCase.Key)

			request := server.Last(t)
			assert.Equal(t, http.MethodDelete, request.Method)
			assert.Equal(t, testCase.ExpectedPath, request.Path)

			if testCase.WantErr != nil {
				require.ErrorIs(t, err, testCase.WantErr)

				return
			}

			require.NoError(t, err)
		})
	}
}
