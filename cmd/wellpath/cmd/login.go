package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jcarver/wellpath/client"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and persist the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		username := loginUsername
		if username == "" {
			if username, err = promptLine(cmd, "Username: "); err != nil {
				return err
			}
		}
		password := loginPassword
		if password == "" {
			if password, err = promptLine(cmd, "Password: "); err != nil {
				return err
			}
		}

		e.manager.BeginLogin()
		result, err := e.client.Login(cmd.Context(), username, password)
		if err != nil {
			e.manager.FailLogin()
			var loginErr *client.LoginFailedError
			if errors.As(err, &loginErr) {
				return fmt.Errorf("login rejected (check username and password)")
			}
			return err
		}
		if err := e.manager.Login(cmd.Context(), result.Session); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s %s (session expires %s)\n",
			result.User.FirstName, result.User.LastName,
			result.Session.Expires.Local().Format("2006-01-02 15:04"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username (prompted when omitted)")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (prompted when omitted)")
}
