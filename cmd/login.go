package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/openclassroom/client/types"
	"github.com/spf13/cobra"
)

var loginUsername string
var loginPassword string

// loginCmd signs in and persists the session for later commands.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and persist the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		username := loginUsername
		password := loginPassword
		reader := bufio.NewReader(os.Stdin)
		if username == "" {
			fmt.Print("Username: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			username = strings.TrimSpace(line)
		}
		if password == "" {
			fmt.Print("Password: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			password = strings.TrimSpace(line)
		}

		creds := types.Credentials{Username: username, Password: password}
		if err := app.state.Login(cmd.Context(), creds); err != nil {
			return fmt.Errorf("%s", app.state.Snapshot().Error)
		}

		user := app.state.Snapshot().User
		fmt.Printf("signed in as %s (%s)\n", user.Username, rolesString(user.Roles))
		return nil
	},
}

func rolesString(roles []types.Role) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "login username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "login password (prompted when omitted)")
}
