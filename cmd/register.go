package cmd

import (
	"fmt"

	"github.com/openclassroom/client/types"
	"github.com/spf13/cobra"
)

var registerInput types.Registration
var registerRole string

// registerCmd creates a new account. It does not sign the caller in.
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		role := types.Role(registerRole)
		if role != types.RoleStudent && role != types.RoleTeacher {
			return fmt.Errorf("role must be %s or %s", types.RoleStudent, types.RoleTeacher)
		}
		registerInput.Roles = []types.Role{role}

		user, err := app.state.Register(cmd.Context(), registerInput)
		if err != nil {
			return fmt.Errorf("%s", app.state.Snapshot().Error)
		}
		fmt.Printf("account %q created (id %d), sign in with \"openclassroom login\"\n", user.Username, user.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVar(&registerInput.FirstName, "first-name", "", "first name")
	registerCmd.Flags().StringVar(&registerInput.LastName, "last-name", "", "last name")
	registerCmd.Flags().StringVar(&registerInput.Username, "username", "", "login username")
	registerCmd.Flags().StringVar(&registerInput.Email, "email", "", "email address")
	registerCmd.Flags().StringVar(&registerInput.Password, "password", "", "password")
	registerCmd.Flags().StringVar(&registerRole, "role", string(types.RoleStudent), "account role (STUDENT or TEACHER)")
	registerCmd.MarkFlagRequired("first-name")
	registerCmd.MarkFlagRequired("last-name")
	registerCmd.MarkFlagRequired("username")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("password")
}
