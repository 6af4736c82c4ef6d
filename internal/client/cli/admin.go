package cli

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/dmitrijs2005/dessertcatalog/internal/client/models"
	"github.com/spf13/cobra"
)

func newUsersCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage accounts (administrators only)",
	}

	var q models.UserQuery
	list := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := rt.app
			res, err := a.users.List(cmd.Context(), q)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(res.Users))
			for _, u := range res.Users {
				rows = append(rows, []string{
					fmt.Sprint(u.ID), u.Username, u.Email,
					yesNo(u.IsActive), yesNo(u.IsAdmin), yesNo(u.IsModerator), str(u.CompanyName),
				})
			}
			a.table([]string{"id", "username", "email", "active", "admin", "moderator", "company"}, rows)
			a.printf("%d of %d account(s)\n", len(res.Users), res.Total)
			return nil
		},
	}
	list.Flags().StringVarP(&q.Search, "search", "s", "", "match username or email")
	list.Flags().IntVar(&q.Skip, "skip", 0, "skip this many accounts")
	list.Flags().IntVar(&q.Limit, "limit", 100, "page size")

	var (
		email, company, contact, description string
		active, admin, moderator             bool
	)
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var upd models.UserUpdate
			fs := cmd.Flags()
			if fs.Changed("email") {
				upd.Email = &email
			}
			if fs.Changed("active") {
				upd.IsActive = &active
			}
			if fs.Changed("admin") {
				upd.IsAdmin = &admin
			}
			if fs.Changed("moderator") {
				upd.IsModerator = &moderator
			}
			if fs.Changed("company") {
				upd.CompanyName = &company
			}
			if fs.Changed("contact") {
				upd.ManagerContact = &contact
			}
			if fs.Changed("description") {
				upd.CatalogDescription = &description
			}
			if upd == (models.UserUpdate{}) {
				return errors.New("nothing to change")
			}

			a := rt.app
			u, err := a.users.Update(cmd.Context(), id, upd)
			if err != nil {
				return err
			}
			a.success("Updated %s", u.Username)
			return nil
		},
	}
	update.Flags().StringVar(&email, "email", "", "email")
	update.Flags().BoolVar(&active, "active", true, "account may log in")
	update.Flags().BoolVar(&admin, "admin", false, "administrator role")
	update.Flags().BoolVar(&moderator, "moderator", false, "moderator role")
	update.Flags().StringVar(&company, "company", "", "company name")
	update.Flags().StringVar(&contact, "contact", "", "manager contact")
	update.Flags().StringVar(&description, "description", "", "catalog description")

	var yes bool
	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a := rt.app
			if !yes && !confirm(a.reader, fmt.Sprintf("Delete user #%d?", id), a.out) {
				a.warn("Cancelled")
				return nil
			}
			if err := a.users.Delete(cmd.Context(), id); err != nil {
				return err
			}
			a.success("Deleted user #%d", id)
			return nil
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	cmd.AddCommand(list, update, del)
	return cmd
}

func newLogsCmd(rt *runtime) *cobra.Command {
	var f models.LogFilter
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Browse the activity log (administrators only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := rt.app
			page, err := a.logs.List(cmd.Context(), f)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(page.Logs))
			for _, l := range page.Logs {
				entity := str(l.EntityType)
				if l.EntityID != nil {
					entity = fmt.Sprintf("%s #%d", entity, *l.EntityID)
				}
				rows = append(rows, []string{
					l.CreatedAt.Local().Format(time.DateTime), str(l.Username), l.Action, entity, str(l.Description),
				})
			}
			a.table([]string{"time", "user", "action", "entity", "description"}, rows)
			a.printf("%d of %d record(s)\n", len(page.Logs), page.Total)
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&f.Action, "action", "", "only this action, e.g. login")
	fs.StringVar(&f.EntityType, "entity", "", "only this entity type, e.g. dessert")
	fs.StringVar(&f.Username, "user", "", "only this username")
	fs.StringVarP(&f.Search, "search", "s", "", "search descriptions")
	fs.IntVar(&f.Days, "days", 0, "only the last N days")
	fs.IntVar(&f.Skip, "skip", 0, "skip this many records")
	fs.IntVar(&f.Limit, "limit", 100, "page size")

	var days int
	summary := &cobra.Command{
		Use:   "summary",
		Short: "Summarise recent activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := rt.app
			s, err := a.logs.Summary(cmd.Context(), days)
			if err != nil {
				return err
			}
			a.heading("Activity over the last %d day(s): %d record(s)", s.PeriodDays, s.TotalLogs)
			a.counts("action", s.Actions)
			a.counts("entity", s.Entities)

			rows := make([][]string, 0, len(s.TopUsers))
			for _, u := range s.TopUsers {
				rows = append(rows, []string{u.Username, fmt.Sprint(u.Count)})
			}
			a.table([]string{"top user", "records"}, rows)
			return nil
		},
	}
	summary.Flags().IntVar(&days, "days", 7, "period in days")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one activity record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := rt.app
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			l, err := a.logs.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			entity := str(l.EntityType)
			if l.EntityID != nil {
				entity = fmt.Sprintf("%s #%d", entity, *l.EntityID)
			}
			a.heading("Record #%d", l.ID)
			a.fields([][2]string{
				{"Time", l.CreatedAt.Local().Format(time.DateTime)},
				{"User", str(l.Username)},
				{"Action", l.Action},
				{"Entity", entity},
				{"Description", str(l.Description)},
				{"IP address", str(l.IPAddress)},
				{"User agent", str(l.UserAgent)},
			})
			return nil
		},
	}

	cmd.AddCommand(summary, show)
	return cmd
}

// counts prints m as a two-column table sorted by key.
func (a *App) counts(label string, m map[string]int) {
	rows := make([][]string, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		rows = append(rows, []string{k, fmt.Sprint(m[k])})
	}
	a.table([]string{label, "records"}, rows)
}
