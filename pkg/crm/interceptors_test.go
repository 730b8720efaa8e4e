package crm_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

var errRejected = errors.New("rejected")

func TestInterceptorChain_RequestInterceptors(t *testing.T) {
	t.Parallel()

	chain := crm.NewInterceptorChain()
	ctx := context.Background()

	var executionOrder []string

	chain.AddRequestInterceptor(func(ctx context.Context, req *crm.Request) error {
		executionOrder = append(executionOrder, "first")

		return nil
	})

	chain.AddRequestInterceptor(func(ctx context.Context, req *crm.Request) error {
		executionOrder = append(executionOrder, "second")

		return nil
	})

	err := chain.ExecuteRequestInterceptors(ctx, &crm.Request{Method: "GET", Path: "/odata/Lead"})
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, executionOrder)
}

func TestInterceptorChain_StopsOnError(t *testing.T) {
	t.Parallel()

	chain := crm.NewInterceptorChain()

	called := false

	chain.AddRequestInterceptor(func(ctx context.Context, req *crm.Request) error {
		return errRejected
	})

	chain.AddRequestInterceptor(func(ctx context.Context, req *crm.Request) error {
		called = true

		return nil
	})

	err := chain.ExecuteRequestInterceptors(context.Background(), &crm.Request{})
	require.ErrorIs(t, err, errRejected)
	assert.False(t, called)
}

func TestInterceptorChain_ResponseInterceptors(t *testing.T) {
	t.Parallel()

	chain := crm.NewInterceptorChain()

	var executionOrder []string

	chain.AddResponseInterceptor(func(ctx context.Context, req *crm.Request, resp *crm.Response) error {
		executionOrder = append(executionOrder, "first")

		return nil
	})

	chain.AddResponseInterceptor(func(ctx context.Context, req *crm.Request, resp *crm.Response) error {
		executionOrder = append(executionOrder, "second")

		return nil
	})

	err := chain.ExecuteResponseInterceptors(context.Background(),
		&crm.Request{Method: "GET", Path: "/odata/Lead"},
		&crm.Response{StatusCode: http.StatusOK},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, executionOrder)
}

func TestHeaderInterceptor(t *testing.T) {
	t.Parallel()

	interceptor := crm.HeaderInterceptor(map[string]string{
		"X-Custom-Header": "custom-value",
		"X-Tenant":        "north",
	})

	req := &crm.Request{Method: "GET", Path: "/odata/Customer"}

	err := interceptor(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "custom-value", req.Headers.Get("X-Custom-Header"))
	assert.Equal(t, "north", req.Headers.Get("X-Tenant"))
}

func TestRequestIDInterceptor(t *testing.T) {
	t.Parallel()

	interceptor := crm.RequestIDInterceptor()

	first := &crm.Request{}
	second := &crm.Request{}

	require.NoError(t, interceptor(context.Background(), first))
	require.NoError(t, interceptor(context.Background(), second))

	assert.Len(t, first.Headers.Get(crm.RequestIDHeader), 36)
	assert.NotEqual(t, first.Headers.Get(crm.RequestIDHeader), second.Headers.Get(crm.RequestIDHeader))

	preset := &crm.Request{Headers: http.Header{}}
	preset.Headers.Set(crm.RequestIDHeader, "keep-me")
	require.NoError(t, interceptor(context.Background(), preset))
	assert.Equal(t, "keep-me", preset.Headers.Get(crm.RequestIDHeader))
}

func TestRateLimitInterceptor(t *testing.T) {
	t.Parallel()

	t.Run("burst passes immediately", func(t *testing.T) {
		t.Parallel()

		interceptor := crm.RateLimitInterceptor(1, 3)

		start := time.Now()

		for range 3 {
			require.NoError(t, interceptor(context.Background(), &crm.Request{}))
		}

		assert.Less(t, time.Since(start), 500*time.Millisecond)
	})

	t.Run("canceled context stops waiting", func(t *testing.T) {
		t.Parallel()

		interceptor := crm.RateLimitInterceptor(0.001, 1)
		require.NoError(t, interceptor(context.Background(), &crm.Request{}))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		err := interceptor(ctx, &crm.Request{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate limiter")
	})
}

type capturingLogger struct {
	entries []string
}

func (l *capturingLogger) Debug(msg string, fields map[string]interface{}) {
	l.entries = append(l.entries, "debug:"+msg)
}

func (l *capturingLogger) Info(msg string, fields map[string]interface{}) {
	l.entries = append(l.entries, "info:"+msg)
}

func (l *capturingLogger) Warn(msg string, fields map[string]interface{}) {
	l.entries = append(l.entries, "warn:"+msg)
}

func (l *capturingLogger) Error(msg string, fields map[string]interface{}) {
	l.entries = append(l.entries, "error:"+msg)
}

func TestLoggingInterceptors(t *testing.T) {
	t.Parallel()

	logger := &capturingLogger{}
	req := &crm.Request{Method: "GET", Path: "/odata/Lead", Headers: http.Header{}}

	require.NoError(t, crm.LoggingInterceptor(logger)(context.Background(), req))
	require.NoError(t, crm.LoggingResponseInterceptor(logger)(context.Background(), req, &crm.Response{StatusCode: http.StatusOK}))
	require.NoError(t, crm.LoggingResponseInterceptor(logger)(context.Background(), req, &crm.Response{Error: errRejected}))

	assert.Equal(t, []string{"debug:API Request", "debug:API Response", "error:API Response Error"}, logger.entries)
}

func TestMetricsCollector(t *testing.T) {
	t.Parallel()

	collector := crm.NewMetricsCollector()

	var (
		notifiedEndpoint string
		notifiedMetrics  crm.Metrics
	)

	collector.SetOnChange(func(endpoint string, metrics crm.Metrics) {
		notifiedEndpoint = endpoint
		notifiedMetrics = metrics
	})

	requestInterceptor := crm.MetricsRequestInterceptor(collector)
	responseInterceptor := crm.MetricsResponseInterceptor(collector)

	ctx := context.Background()
	req := &crm.Request{Method: "GET", Path: "/odata/Customer"}

	require.NoError(t, requestInterceptor(ctx, req))

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, responseInterceptor(ctx, req, &crm.Response{StatusCode: http.StatusOK}))

	assert.Equal(t, "GET /odata/Customer", notifiedEndpoint)
	assert.Equal(t, int64(1), notifiedMetrics.TotalRequests)
	assert.Equal(t, int64(0), notifiedMetrics.TotalErrors)
	assert.Positive(t, notifiedMetrics.AverageLatency)

	// No start time recorded for this one.
	req2 := &crm.Request{Method: "GET", Path: "/odata/Customer"}
	require.NoError(t, responseInterceptor(ctx, req2, &crm.Response{StatusCode: http.StatusInternalServerError}))

	metrics, ok := collector.GetMetrics("GET /odata/Customer")
	require.True(t, ok)
	assert.Equal(t, int64(2), metrics.TotalRequests)
	assert.Equal(t, int64(1), metrics.TotalErrors)

	_, ok = collector.GetMetrics("DELETE /api/customer")
	assert.False(t, ok)
}

func TestMetricsResponseInterceptor_GroupsRecordKeys(t *testing.T) {
	t.Parallel()

	collector := crm.NewMetricsCollector()
	interceptor := crm.MetricsResponseInterceptor(collector)

	for _, path := range []string{"/api/customer/1", "/api/customer/2", "/api/customer/42"} {
		req := &crm.Request{Method: "DELETE", Path: path}
		require.NoError(t, interceptor(context.Background(), req, &crm.Response{StatusCode: http.StatusNoContent}))
	}

	roles := &crm.Request{Method: "PUT", Path: "/api/user/u1/roles"}
	require.NoError(t, interceptor(context.Background(), roles, &crm.Response{StatusCode: http.StatusNoContent}))

	deleted, ok := collector.GetMetrics("DELETE /api/customer")
	require.True(t, ok)
	assert.Equal(t, int64(3), deleted.TotalRequests)

	_, ok = collector.GetMetrics("DELETE /api/customer/42")
	assert.False(t, ok)

	modified, ok := collector.GetMetrics("PUT /api/user/roles")
	require.True(t, ok)
	assert.Equal(t, int64(1), modified.TotalRequests)
}
