package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lendsqr-admin/internal/domain"
	"lendsqr-admin/pkg/utils"
)

func newLoginCmd(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" {
				email = a.cfg.Admin.Email
			}
			if password == "" {
				password = os.Getenv("ADMIN_PASSWORD")
			}
			if password == "" {
				fmt.Fprint(cmd.ErrOrStderr(), "password: ")
				line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				password = strings.TrimSpace(line)
			}
			res, err := a.api.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", res.Email)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "admin email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (or $ADMIN_PASSWORD)")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.api.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show user totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.api.Stats(cmd.Context())
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), s)
			return nil
		},
	}
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for admin.passwordhash",
		Args:  cobra.ExactArgs(1),
		// 不需要配置与会话
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := utils.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}
}

func parseStatusArg(s string) (domain.Status, error) {
	st, err := domain.ParseStatus(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q (one of inactive, blacklisted, pending, active)", err, s)
	}
	return st, nil
}
