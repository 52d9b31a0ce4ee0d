package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gywan/gywan-site/internal/auth"
	"github.com/gywan/gywan-site/internal/daemon"
)

func init() { //nolint: gochecknoinits
	for _, c := range []*cobra.Command{userCreateCmd, userPasswordCmd} {
		c.Flags().StringVar(&userOpts.username, "username", "", "Login name")
		c.Flags().StringVar(&userOpts.password, "password", "", "Password, read from stdin when empty")
		_ = c.MarkFlagRequired("username")
	}

	userCreateCmd.Flags().StringVar(&userOpts.email, "email", "", "Email address")

	userCmd.AddCommand(userCreateCmd, userPasswordCmd)
	rootCmd.AddCommand(userCmd)
}

var (
	userOpts struct {
		username, email, password string
	}

	userCmd = &cobra.Command{
		Use:   "user",
		Short: "Manage admin accounts",
	}

	userCreateCmd = &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			provider, password, err := userSetup(cmd)
			if err != nil {
				return err
			}

			u, err := provider.CreateUser(userOpts.username, userOpts.email, password)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "user %s created\n", u.Username)

			return err
		},
	}

	userPasswordCmd = &cobra.Command{
		Use:   "password",
		Short: "Set the password of an admin account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			provider, password, err := userSetup(cmd)
			if err != nil {
				return err
			}

			if err := provider.ResetPassword(userOpts.username, password); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "password of %s changed\n", userOpts.username)

			return err
		},
	}
)

func userSetup(cmd *cobra.Command) (*auth.LocalProvider, string, error) {
	password := userOpts.password
	if password == "" {
		var err error

		if password, err = readPassword(cmd.InOrStdin(), cmd.ErrOrStderr()); err != nil {
			return nil, "", err
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, "", err
	}

	db, err := daemon.OpenDB(cfg)
	if err != nil {
		return nil, "", err
	}

	return auth.NewLocalProvider(db), password, nil
}

// readPassword reads one line from in after printing a prompt to out.
func readPassword(in io.Reader, out io.Writer) (string, error) {
	_, _ = fmt.Fprint(out, "Password: ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", auth.ErrEmptyCredentials
	}

	return password, nil
}
