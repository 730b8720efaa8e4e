package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/crm-client/internal/constants"
)

var userColumns = []string{"id", "userName", "email", "firstName", "lastName", "roles"}

func newUsersRolesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "roles USER_ID ROLE...",
		Short: "Replace a user's roles",
		Long:  "Replace the full role set of a user with the given role names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseStringKey(args[0])
			if err != nil {
				return err
			}

			roles := args[1:]
			if len(roles) == 0 {
				return constants.ErrRolesRequired
			}

			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			if err := client.Users().ModifyRoles(cmd.Context(), id, roles); err != nil {
				return fmt.Errorf("failed to modify roles of user %s: %w", id, err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated roles of user %s\n", id)

			return nil
		},
	}
}

func newUsersGetRolesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get-roles USER_ID",
		Short: "Get a user with roles",
		Long:  "Display one user including the names of its roles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseStringKey(args[0])
			if err != nil {
				return err
			}

			format, err := outputFormat()
			if err != nil {
				return err
			}

			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			user, err := client.Users().GetWithRoles(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get user %s: %w", id, err)
			}

			if user == nil {
				return fmt.Errorf("user %s: %w", id, constants.ErrResourceNotFound)
			}

			return outputRecord(cmd.OutOrStdout(), format, userColumns, user)
		},
	}
}
