package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sidebarToken string

var sidebarCmd = &cobra.Command{
	Use:   "sidebar",
	Short: "Inspect and change the shared sidebar configuration",
}

var sidebarToggleCmd = &cobra.Command{
	Use:   "toggle <menu-item-id>",
	Short: "Enable the item if disabled, disable it if enabled",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, _, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		authHeader := ""
		if sidebarToken != "" {
			authHeader = "Bearer " + sidebarToken
		}
		res, err := app.SidebarUC.Toggle(cmd.Context(), authHeader, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "toggled %s (version %v)\n", args[0], res["version"])
		return nil
	},
}

func init() {
	sidebarToggleCmd.Flags().StringVar(&sidebarToken, "token", "", "bearer token forwarded to the partner API")
	rootCmd.AddCommand(sidebarCmd)
	sidebarCmd.AddCommand(sidebarToggleCmd)
}
