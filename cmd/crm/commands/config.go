package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/crm-client/internal/auth"
	"github.com/fivetwenty-io/crm-client/internal/constants"
	"github.com/fivetwenty-io/crm-client/pkg/crm"
	"github.com/fivetwenty-io/crm-client/pkg/crmclient"
)

const (
	configKeyAPI    = "api"
	configKeyOutput = "output"
	configKeyToken  = "token"
)

// Config represents the CLI configuration file.
type Config struct {
	APIs       map[string]*APIConfig `json:"apis,omitempty"        yaml:"apis,omitempty"`
	CurrentAPI string                `json:"current_api,omitempty" yaml:"current_api,omitempty"`
	Output     string                `json:"output,omitempty"      yaml:"output,omitempty"`
}

// APIConfig represents configuration for a single CRM API endpoint.
type APIConfig struct {
	Endpoint       string     `json:"endpoint"                   yaml:"endpoint"`
	Token          string     `json:"token,omitempty"            yaml:"token,omitempty"`
	TokenExpiresAt *time.Time `json:"token_expires_at,omitempty" yaml:"token_expires_at,omitempty"`
}

// current returns the targeted API, or nil.
func (c *Config) current() *APIConfig {
	if c.CurrentAPI == "" {
		return nil
	}

	return c.APIs[c.CurrentAPI]
}

// masked returns a copy safe to print.
func (c *Config) masked() *Config {
	out := &Config{
		APIs:       make(map[string]*APIConfig, len(c.APIs)),
		CurrentAPI: c.CurrentAPI,
		Output:     c.Output,
	}

	for domain, api := range c.APIs {
		copied := *api
		if copied.Token != "" {
			copied.Token = constants.MaskedSecret
		}

		out.APIs[domain] = &copied
	}

	return out
}

// configFilePath returns the config file in use, falling back to ~/.crm/config.yml.
func configFilePath() (string, error) {
	if path := viper.ConfigFileUsed(); path != "" {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, constants.ConfigDirName, constants.ConfigFileName+"."+constants.ConfigFileType), nil
}

// loadConfigFile reads path. A missing file yields an empty config.
func loadConfigFile(path string) (*Config, error) {
	config := &Config{APIs: map[string]*APIConfig{}}

	// #nosec G304 -- path is the CLI's own config file
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if config.APIs == nil {
		config.APIs = map[string]*APIConfig{}
	}

	return config, nil
}

// saveConfigFile writes config to path with owner-only permissions.
func saveConfigFile(path string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func loadConfig() (*Config, string, error) {
	path, err := configFilePath()
	if err != nil {
		return nil, "", err
	}

	config, err := loadConfigFile(path)
	if err != nil {
		return nil, "", err
	}

	return config, path, nil
}

// extractDomainFromEndpoint returns the host[:port] an endpoint is saved under.
func extractDomainFromEndpoint(endpoint string) string {
	parsed, err := url.Parse(crmclient.NormalizeEndpoint(endpoint))
	if err != nil {
		return ""
	}

	return parsed.Host
}

// resolveAPI picks the endpoint from --api / CRM_API, then the current API.
func resolveAPI(config *Config) (string, string, error) {
	if api := strings.TrimSpace(viper.GetString(configKeyAPI)); api != "" {
		endpoint := crmclient.NormalizeEndpoint(api)

		domain := extractDomainFromEndpoint(endpoint)
		if domain == "" {
			return "", "", fmt.Errorf("%w: %s", constants.ErrNoDomainForAPI, api)
		}

		return endpoint, domain, nil
	}

	if current := config.current(); current != nil && current.Endpoint != "" {
		return current.Endpoint, config.CurrentAPI, nil
	}

	return "", "", constants.ErrNoAPIConfigured
}

// newClient builds the client used by resource commands.
var newClient = createClient

func createClient(ctx context.Context) (crm.Client, error) {
	config, path, err := loadConfig()
	if err != nil {
		return nil, err
	}

	endpoint, domain, err := resolveAPI(config)
	if err != nil {
		return nil, err
	}

	clientConfig := &crm.Config{APIEndpoint: endpoint}

	if token := viper.GetString(configKeyToken); token != "" {
		clientConfig.AccessToken = token
	} else {
		clientConfig.TokenAccessor = auth.NewConfigTokenAccessor(NewConfigPersister(path), domain)
	}

	if viper.GetBool("verbose") {
		clientConfig.Logger = NewStderrLogger(os.Stderr)
		clientConfig.Debug = true
	}

	return crmclient.New(ctx, clientConfig)
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "View and change the CRM CLI configuration stored in ~/.crm/config.yml",
	}

	cmd.AddCommand(newConfigViewCommand())
	cmd.AddCommand(newConfigGetCommand())
	cmd.AddCommand(newConfigSetCommand())

	return cmd
}

func newConfigViewCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "view",
		Aliases: []string{"show"},
		Short:   "Show current configuration",
		Long:    "Display the current CLI configuration with tokens masked",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, _, err := loadConfig()
			if err != nil {
				return err
			}

			format, err := outputFormat()
			if err != nil {
				return err
			}

			masked := config.masked()

			if done, err := writeStructured(cmd.OutOrStdout(), format, masked); done {
				return err
			}

			return displayConfigTable(cmd.OutOrStdout(), masked)
		},
	}
}

func displayConfigTable(out io.Writer, config *Config) error {
	properties := [][]string{
		{"Current API", valueOrNA(config.CurrentAPI)},
		{"Output", valueOrNA(config.Output)},
	}

	for _, domain := range slices.Sorted(maps.Keys(config.APIs)) {
		api := config.APIs[domain]

		properties = append(properties,
			[]string{domain + " endpoint", api.Endpoint},
			[]string{domain + " token", valueOrNA(api.Token)},
		)

		if api.TokenExpiresAt != nil {
			properties = append(properties, []string{domain + " token expires", api.TokenExpiresAt.Format(time.RFC3339)})
		}
	}

	return renderProperties(out, properties)
}

func newConfigGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Get a configuration value",
		Long:  "Print one configuration value. Keys: api, output, token (masked)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, _, err := loadConfig()
			if err != nil {
				return err
			}

			value, err := getConfigValue(config, args[0])
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), value)

			return nil
		},
	}
}

func getConfigValue(config *Config, key string) (string, error) {
	switch key {
	case configKeyAPI:
		if current := config.current(); current != nil {
			return current.Endpoint, nil
		}

		return "", nil
	case configKeyOutput:
		return config.Output, nil
	case configKeyToken:
		if current := config.current(); current != nil && current.Token != "" {
			return constants.MaskedSecret, nil
		}

		return "", nil
	default:
		return "", fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Keys: api (also makes it the current API), output",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, path, err := loadConfig()
			if err != nil {
				return err
			}

			if err := setConfigValue(config, args[0], args[1]); err != nil {
				return err
			}

			if err := saveConfigFile(path, config); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s\n", args[0], args[1])

			return nil
		},
	}
}

func setConfigValue(config *Config, key, value string) error {
	switch key {
	case configKeyAPI:
		endpoint := crmclient.NormalizeEndpoint(value)

		domain := extractDomainFromEndpoint(endpoint)
		if domain == "" {
			return fmt.Errorf("%w: %s", constants.ErrNoDomainForAPI, value)
		}

		api, exists := config.APIs[domain]
		if !exists || api.Endpoint != endpoint {
			config.APIs[domain] = &APIConfig{Endpoint: endpoint}
		}

		config.CurrentAPI = domain

		return nil
	case configKeyOutput:
		switch value {
		case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
			config.Output = value

			return nil
		default:
			return fmt.Errorf("%w: %q", constants.ErrInvalidOutputFormat, value)
		}
	case configKeyToken:
		return constants.ErrTokenKeyNotSettable
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}
}

func valueOrNA(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}
