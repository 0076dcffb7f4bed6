package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// logoutCmd clears the persisted session. Running it while signed out
// is harmless.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the persisted session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.state.Logout(); err != nil {
			return err
		}
		fmt.Println("signed out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
