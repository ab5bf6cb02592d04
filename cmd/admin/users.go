package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lendsqr-admin/internal/client"
	"lendsqr-admin/internal/query"
)

func newUsersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List and manage users",
	}
	cmd.AddCommand(
		newUsersListCmd(a),
		newUsersGetCmd(a),
		newUsersStatusCmd(a),
		newUsersActionCmd(a, "toggle", "Flip a user between active and inactive"),
		newUsersActionCmd(a, "activate", "Activate a user"),
		newUsersActionCmd(a, "blacklist", "Blacklist a user"),
		newUsersDeleteCmd(a),
		newFiltersCmd(a),
	)
	return cmd
}

func newUsersListCmd(a *app) *cobra.Command {
	var (
		raw      string
		page     int
		pageSize int
		search   string
		sortBy   string
		sortDir  string
		f        query.Filters
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users with search, filters, sort and paging",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if pageSize != 0 && !query.IsAllowedPageSize(pageSize) {
				return fmt.Errorf("page size must be one of %v", query.AllowedPageSizes)
			}
			store := query.NewStore(raw)
			updates := map[string]string{}
			set := func(flag, key, val string) {
				if cmd.Flags().Changed(flag) {
					updates[key] = val
				}
			}
			set("search", query.KeySearch, search)
			set("sort-by", query.KeySortBy, sortBy)
			set("sort-dir", query.KeySortDir, sortDir)
			set("org", query.KeyOrganization, f.Organization)
			set("username", query.KeyUserName, f.UserName)
			set("email", query.KeyEmailAddress, f.EmailAddress)
			set("phone", query.KeyPhoneNumber, f.PhoneNumber)
			set("status", query.KeyStatus, f.Status)
			set("date", query.KeyDate, f.Date)
			set("page-size", query.KeyPageSize, strconv.Itoa(pageSize))
			// 改动筛选条件会回到第一页，显式 --page 优先
			set("page", query.KeyPage, strconv.Itoa(page))
			store.SetMany(updates)

			snap, err := client.NewLoader(a.api, a.log).Load(cmd.Context(), store.State())
			if err != nil {
				return err
			}
			if snap.ListErr != nil {
				return snap.ListErr
			}
			out := cmd.OutOrStdout()
			if snap.StatsErr == nil {
				printStats(out, snap.Stats)
				fmt.Fprintln(out)
			}
			printUsers(out, snap.List.Data)
			printFooter(out, snap.List)
			fmt.Fprintf(out, "query: %s\n", query.Encode(store.State()))
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&raw, "query", "", "start from an encoded query string, e.g. 'page=2&status=active'")
	fl.IntVar(&page, "page", 0, "page number")
	fl.IntVar(&pageSize, "page-size", 0, "rows per page (10, 20 or 50)")
	fl.StringVarP(&search, "search", "s", "", "free text search")
	fl.StringVar(&sortBy, "sort-by", "", "field to sort by, e.g. createdAt")
	fl.StringVar(&sortDir, "sort-dir", "", "asc or desc")
	fl.StringVar(&f.Organization, "org", "", "organization (exact, case-insensitive)")
	fl.StringVar(&f.UserName, "username", "", "username contains")
	fl.StringVar(&f.EmailAddress, "email", "", "email contains")
	fl.StringVar(&f.PhoneNumber, "phone", "", "phone number contains")
	fl.StringVar(&f.Status, "status", "", "status (exact)")
	fl.StringVar(&f.Date, "date", "", "joined on day YYYY-MM-DD")
	return cmd
}

func newUsersGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a user's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.api.GetUser(cmd.Context(), args[0])
			if err != nil {
				if client.IsNotFound(err) {
					return fmt.Errorf("user %s not found", args[0])
				}
				return err
			}
			printUser(cmd.OutOrStdout(), u)
			return nil
		},
	}
}

func newUsersStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Set a user's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := parseStatusArg(args[1])
			if err != nil {
				return err
			}
			u, err := a.api.UpdateStatus(cmd.Context(), args[0], st)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", u.UserName, u.Status)
			return nil
		},
	}
}

func newUsersActionCmd(a *app, name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var fn = a.api.ToggleStatus
			switch name {
			case "activate":
				fn = a.api.Activate
			case "blacklist":
				fn = a.api.Blacklist
			}
			u, err := fn(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", u.UserName, u.Status)
			return nil
		},
	}
}

func newUsersDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.api.DeleteUser(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func newFiltersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "Show organization and status options",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := a.api.Filters(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "organizations:")
			for _, o := range f.Organizations {
				fmt.Fprintln(out, "  "+o)
			}
			fmt.Fprintln(out, "statuses:")
			for _, s := range f.Statuses {
				fmt.Fprintln(out, "  "+s)
			}
			return nil
		},
	}
}
