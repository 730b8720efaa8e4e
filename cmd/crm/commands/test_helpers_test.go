package commands

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// resetViper isolates viper state and points the config file at a temp dir.
// Tests using it must not run in parallel.
func resetViper(t *testing.T) string {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "config.yml")
	viper.SetConfigFile(path)

	return path
}

// executeCommand runs a fresh command tree and returns its stdout.
func executeCommand(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()

	root := &cobra.Command{Use: "crm", SilenceUsage: true, SilenceErrors: true}
	root.AddCommand(NewVersionCommand("1.2.3", "abc123", "2026-01-01"))
	root.AddCommand(NewLoginCommand())
	root.AddCommand(NewLogoutCommand())
	root.AddCommand(NewConfigCommand())
	root.AddCommand(NewResourceCommands()...)

	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(io.Discard)

	if stdin == nil {
		stdin = strings.NewReader("")
	}

	root.SetIn(stdin)
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

type apiRequest struct {
	Method   string
	Path     string
	RawQuery string
	Auth     string
	Body     string
}

// fakeAPI answers every request with one canned response and records what it saw.
type fakeAPI struct {
	*httptest.Server

	mu       sync.Mutex
	requests []apiRequest
	status   int
	body     string
}

func newFakeAPI(t *testing.T, status int, body string) *fakeAPI {
	t.Helper()

	api := &fakeAPI{status: status, body: body}
	api.Server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		data, _ := io.ReadAll(request.Body)

		api.mu.Lock()
		api.requests = append(api.requests, apiRequest{
			Method:   request.Method,
			Path:     request.URL.EscapedPath(),
			RawQuery: request.URL.RawQuery,
			Auth:     request.Header.Get("Authorization"),
			Body:     string(data),
		})
		api.mu.Unlock()

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(api.status)
		_, _ = writer.Write([]byte(api.body))
	}))
	t.Cleanup(api.Close)

	return api
}

func (f *fakeAPI) Requests() []apiRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]apiRequest(nil), f.requests...)
}

func (f *fakeAPI) Last() apiRequest {
	requests := f.Requests()
	if len(requests) == 0 {
		return apiRequest{}
	}

	return requests[len(requests)-1]
}
