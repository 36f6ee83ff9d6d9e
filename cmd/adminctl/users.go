package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/tenant-admin/internal/domain/entity"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user records",
}

var usersPromoteCmd = &cobra.Command{
	Use:   "promote <uid>",
	Short: "Give an existing user record the admin role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, _, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		role := entity.RoleAdmin
		u, err := app.UserUC.Update(cmd.Context(), args[0], entity.UserPatch{Role: &role})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) is now %s\n", u.UID, u.Email, u.Role)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersPromoteCmd)
}
