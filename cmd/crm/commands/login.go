package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/crm-client/internal/auth"
	"github.com/fivetwenty-io/crm-client/internal/constants"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var expiresIn time.Duration

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Save an access token for a CRM API",
		Long: `Save a bearer token for a CRM API endpoint.

The endpoint comes from --api, CRM_API or the current API. The token comes
from --token, CRM_TOKEN or is read from the terminal without echo.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, path, err := loadConfig()
			if err != nil {
				return err
			}

			endpoint, domain, err := resolveAPI(config)
			if err != nil {
				return err
			}

			accessToken := viper.GetString(configKeyToken)
			if accessToken == "" {
				accessToken, err = readToken(cmd.InOrStdin(), cmd.ErrOrStderr())
				if err != nil {
					return err
				}
			}

			token := &auth.Token{AccessToken: accessToken, TokenType: "bearer"}
			if expiresIn > 0 {
				token.ExpiresAt = time.Now().Add(expiresIn)
			}

			if err := NewConfigPersister(path).SaveAPIToken(domain, endpoint, token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s\n", endpoint)

			return nil
		},
	}

	cmd.Flags().DurationVar(&expiresIn, "expires-in", 0, "token lifetime; the saved token is ignored once it expires")

	return cmd
}

// readToken prompts on a terminal and reads a line otherwise.
func readToken(in io.Reader, prompt io.Writer) (string, error) {
	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		_, _ = fmt.Fprint(prompt, "Access token: ")

		raw, err := term.ReadPassword(int(file.Fd()))

		_, _ = fmt.Fprintln(prompt)

		if err != nil {
			return "", fmt.Errorf("failed to read token: %w", err)
		}

		return validToken(string(raw))
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	return validToken(line)
}

func validToken(raw string) (string, error) {
	token := strings.TrimSpace(raw)
	if token == "" {
		return "", constants.ErrEmptyToken
	}

	return token, nil
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the saved access token",
		Long:  "Remove the token saved for the current (or --api) CRM endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, path, err := loadConfig()
			if err != nil {
				return err
			}

			endpoint, domain, err := resolveAPI(config)
			if err != nil {
				return err
			}

			if err := NewConfigPersister(path).ClearAPIToken(domain); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged out of %s\n", endpoint)

			return nil
		},
	}
}
