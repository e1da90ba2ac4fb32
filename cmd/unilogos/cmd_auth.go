package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/unilogos/internal/controller"
)

func init() {
	rootCmd.AddCommand(loginCmd, signupCmd, logoutCmd, whoamiCmd)
}

// promptCredentials reads an email and password from stdin unless both
// were provided as arguments.
func promptCredentials(args []string) (string, string) {
	scanner := bufio.NewScanner(os.Stdin)

	email := ""
	if len(args) > 0 {
		email = args[0]
	} else {
		fmt.Print("Email: ")
		if scanner.Scan() {
			email = strings.TrimSpace(scanner.Text())
		}
	}

	fmt.Print("Password: ")
	password := ""
	if scanner.Scan() {
		password = scanner.Text()
	}
	return email, password
}

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Sign in to the poster service",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		setupLogging(cfg)
		ctrl := newController(cfg)

		email, password := promptCredentials(args)
		if err := ctrl.Events().Dispatch(cmd.Context(), "login", controller.Credentials{
			Email:    email,
			Password: password,
		}); err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Signed in as %s\n", email)
		return nil
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup [email]",
	Short: "Create an account and sign in",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		setupLogging(cfg)
		ctrl := newController(cfg)

		email, password := promptCredentials(args)
		fmt.Print("Confirm password: ")
		confirm := ""
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			confirm = scanner.Text()
		}

		if err := ctrl.Events().Dispatch(cmd.Context(), "signup", controller.SignupForm{
			Email:    email,
			Password: password,
			Confirm:  confirm,
		}); err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Account created, signed in as %s\n", email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		setupLogging(cfg)
		ctrl := newController(cfg)

		if err := ctrl.Events().Dispatch(cmd.Context(), "logout", nil); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Signed out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		setupLogging(cfg)
		ctrl := newController(cfg)

		session := ctrl.Session()
		if session == nil {
			fmt.Fprintln(os.Stdout, "Not signed in.")
			return nil
		}
		fmt.Fprintf(os.Stdout, "%s (%s)\n", session.Email, session.UserID)
		return nil
	},
}
