package cmd

import (
	"errors"
	"fmt"

	"github.com/khrees2412/resumatch/internal/auth"
	"github.com/spf13/cobra"
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	Example: `  resumatch signup --user alice --password 'correct horse'
  RESUMATCH_PASSWORD='correct horse' resumatch signup --user alice`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}

		username, password := credentials(cmd)
		err = application.Auth.Signup(cmd.Context(), username, password)
		if errors.Is(err, auth.ErrUserExists) {
			return fmt.Errorf("username %q is already taken", username)
		}
		if err != nil {
			return err
		}

		cmd.Printf("✓ Account created: %s\n", username)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Check account credentials",
	Long:  "Verify a username and password. Commands that need an account take the same --user and --password flags.",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}

		user, err := currentUser(cmd.Context(), cmd, application)
		if err != nil {
			return err
		}

		cmd.Printf("✓ Logged in as %s (member since %s)\n", user.Username, user.CreatedAt.Format("Jan 2, 2006"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(loginCmd)
}
