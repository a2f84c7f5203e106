// cmd/collecta/commands/auth.go
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Annany2002/collecta-backend/client"
	"github.com/Annany2002/collecta-backend/cmd/collecta/output"
)

var (
	// Register / login flags
	regName     string
	regUsername string
	regEmail    string
	regDOB      string
	password    string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()
		name := regName
		if name == "" {
			name = regUsername
		}
		u, err := newClient().Register(ctx, client.RegisterRequest{
			Name: name, Username: regUsername, Email: regEmail, Password: password, DateOfBirth: regDOB,
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			return output.JSON(u)
		}
		output.Success("Registered %s (id %d)", u.Username, u.ID)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <email-or-username>",
	Short: "Log in and print a bearer token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()
		c := newClient()
		u, err := c.Login(ctx, args[0], password)
		if err != nil {
			return err
		}
		if jsonOutput {
			return output.JSON(map[string]any{"token": c.Token(), "user": u})
		}
		output.Success("Logged in as %s", u.Username)
		fmt.Fprintln(output.Out, c.Token())
		return nil
	},
}

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the logged in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()
		u, err := newClient().Me(ctx)
		if err != nil {
			return err
		}
		if jsonOutput {
			return output.JSON(u)
		}
		output.Table([]string{"ID", "USERNAME", "NAME", "EMAIL", "BORN"}, [][]string{
			{fmt.Sprint(u.ID), u.Username, u.Name, u.Email, orDash(u.DateOfBirth)},
		})
		return nil
	},
}

func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}

func init() {
	rootCmd.AddCommand(registerCmd, loginCmd, meCmd)

	registerCmd.Flags().StringVar(&regName, "name", "", "Display name (defaults to the username)")
	registerCmd.Flags().StringVar(&regUsername, "username", "", "Username")
	registerCmd.Flags().StringVar(&regEmail, "email", "", "Email address")
	registerCmd.Flags().StringVar(&regDOB, "dob", "", "Date of birth (YYYY-MM-DD)")
	registerCmd.Flags().StringVarP(&password, "password", "p", "", "Password")
	_ = registerCmd.MarkFlagRequired("username")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")

	loginCmd.Flags().StringVarP(&password, "password", "p", "", "Password")
	_ = loginCmd.MarkFlagRequired("password")
}
