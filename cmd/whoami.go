package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errNotSignedIn = errors.New("not signed in, run \"openclassroom login\"")

// whoamiCmd prints the profile of the persisted session, hydrating it
// from the stored token first.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.state.Hydrate(cmd.Context()); err != nil {
			return fmt.Errorf("%s", app.state.Snapshot().Error)
		}

		snap := app.state.Snapshot()
		if !snap.Authenticated() {
			return errNotSignedIn
		}

		user := snap.User
		fmt.Printf("%s (%s)\n", user.FullName(), user.Username)
		fmt.Printf("  email: %s\n", user.Email)
		fmt.Printf("  roles: %s\n", rolesString(user.Roles))
		if user.CurrentInstitute != "" {
			fmt.Printf("  institute: %s\n", user.CurrentInstitute)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
