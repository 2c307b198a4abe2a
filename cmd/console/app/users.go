package app

import (
	"github.com/jrsteele09/go-auth-console/internal/output"
	"github.com/jrsteele09/go-auth-console/users"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// newUsersCmd manages the users of one tenant. Tenant users always act on their own
// tenant and --tenant is ignored for them.
func (a *app) newUsersCmd() *cobra.Command {
	var tenantID string
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage the users of a tenant",
	}
	cmd.PersistentFlags().StringVar(&tenantID, "tenant", "", "Tenant the users belong to (required for system admins)")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the users of a tenant",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			list, err := c.Users().List(cmd.Context(), tenantID)
			if err != nil {
				return err
			}
			return a.printer.Print(list, usersTable(list))
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			user, err := c.Users().Get(cmd.Context(), tenantID, args[0])
			if err != nil {
				return err
			}
			return a.printer.Print(user, userTable(user))
		}),
	})
	cmd.AddCommand(a.newUsersCreateCmd(&tenantID))
	cmd.AddCommand(a.newUsersUpdateCmd(&tenantID))
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			if err := c.Users().Delete(cmd.Context(), tenantID, args[0]); err != nil {
				return err
			}
			a.printer.Message("User %s deleted", args[0])
			return nil
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset-password <id>",
		Short: "Reset a user's password to a temporary one",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			reset, err := c.Users().ResetPassword(cmd.Context(), tenantID, args[0])
			if err != nil {
				return err
			}
			return a.printer.Print(reset, passwordResetTable(reset))
		}),
	})
	return cmd
}

type userFlags struct {
	username  string
	email     string
	password  string
	firstName string
	lastName  string
	active    bool
	admin     bool
}

func (f *userFlags) register(fs *pflag.FlagSet, withPassword bool) {
	fs.StringVar(&f.username, "username", "", "Username")
	fs.StringVar(&f.email, "email", "", "Email address")
	fs.StringVar(&f.firstName, "first-name", "", "First name")
	fs.StringVar(&f.lastName, "last-name", "", "Last name")
	fs.BoolVar(&f.active, "active", true, "Whether the user can sign in")
	fs.BoolVar(&f.admin, "admin", false, "Whether the user administers the tenant")
	if withPassword {
		fs.StringVar(&f.password, "password", "", "Initial password")
	}
}

func (f *userFlags) apply(fs *pflag.FlagSet, u *users.TenantUser) {
	if fs.Changed("username") {
		u.Username = f.username
	}
	if fs.Changed("email") {
		u.Email = f.email
	}
	if fs.Changed("password") {
		u.Password = f.password
	}
	if fs.Changed("first-name") {
		u.FirstName = f.firstName
	}
	if fs.Changed("last-name") {
		u.LastName = f.lastName
	}
	if fs.Changed("active") {
		u.IsActive = f.active
	}
	if fs.Changed("admin") {
		u.IsAdmin = f.admin
	}
}

func (a *app) newUsersCreateCmd(tenantID *string) *cobra.Command {
	var flags userFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a user to a tenant",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			user := &users.TenantUser{IsActive: true}
			flags.apply(cmd.Flags(), user)

			created, err := c.Users().Create(cmd.Context(), *tenantID, user)
			if err != nil {
				return err
			}
			return a.printer.Print(created, userTable(created))
		}),
	}
	flags.register(cmd.Flags(), true)
	return cmd
}

func (a *app) newUsersUpdateCmd(tenantID *string) *cobra.Command {
	var flags userFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a user",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			user, err := c.Users().Get(cmd.Context(), *tenantID, args[0])
			if err != nil {
				return err
			}
			flags.apply(cmd.Flags(), user)

			updated, err := c.Users().Update(cmd.Context(), *tenantID, user)
			if err != nil {
				return err
			}
			return a.printer.Print(updated, userTable(updated))
		}),
	}
	flags.register(cmd.Flags(), false)
	return cmd
}

func (a *app) newAdminsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "admins",
		Aliases: []string{"admin"},
		Short:   "Manage system admin accounts (system admins only)",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List system admins",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			list, err := c.SystemAdmins().List(cmd.Context())
			if err != nil {
				return err
			}
			t := output.Table{
				Headers: []string{"ID", "Username", "Email", "Active", "Last login"},
				Empty:   "No system admins found",
			}
			for _, admin := range list {
				t.Append(admin.ID, admin.Username, admin.Email, output.Bool(admin.IsActive), output.TimePtr(admin.LastLogin))
			}
			return a.printer.Print(list, t)
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one system admin",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			admin, err := c.SystemAdmins().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printer.Print(admin, output.KeyValue(
				[2]string{"ID", admin.ID},
				[2]string{"Username", admin.Username},
				[2]string{"Email", admin.Email},
				[2]string{"Active", output.Bool(admin.IsActive)},
				[2]string{"Created", output.Time(admin.CreatedAt)},
				[2]string{"Last login", output.TimePtr(admin.LastLogin)},
			))
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a system admin",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			if err := c.SystemAdmins().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.printer.Message("System admin %s deleted", args[0])
			return nil
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset-password <id>",
		Short: "Reset a system admin's password to a temporary one",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			reset, err := c.SystemAdmins().ResetPassword(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printer.Print(reset, passwordResetTable(reset))
		}),
	})
	return cmd
}

func (a *app) newProfileCmd() *cobra.Command {
	var update users.ProfileUpdate
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change your own account",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			var profile *users.Profile
			if update == (users.ProfileUpdate{}) {
				profile, err = c.Auth().Me(cmd.Context())
			} else {
				profile, err = c.Auth().UpdateProfile(cmd.Context(), update)
			}
			if err != nil {
				return err
			}
			return a.printer.Print(profile, output.KeyValue(
				[2]string{"ID", profile.ID},
				[2]string{"Username", profile.Username},
				[2]string{"Email", output.OrDash(profile.Email)},
				[2]string{"Name", output.OrDash(profile.FirstName + " " + profile.LastName)},
				[2]string{"Type", profile.UserType},
				[2]string{"Admin", output.Bool(profile.IsAdmin)},
			))
		}),
	}
	cmd.Flags().StringVar(&update.Email, "email", "", "New email address")
	cmd.Flags().StringVar(&update.FirstName, "first-name", "", "New first name")
	cmd.Flags().StringVar(&update.LastName, "last-name", "", "New last name")
	cmd.Flags().StringVar(&update.CurrentPassword, "current-password", "", "Current password, needed to set a new one")
	cmd.Flags().StringVar(&update.NewPassword, "new-password", "", "New password")
	return cmd
}

func usersTable(list []*users.TenantUser) output.Table {
	t := output.Table{
		Headers: []string{"ID", "Username", "Email", "Name", "Admin", "Active", "Created"},
		Empty:   "No users found",
	}
	for _, u := range list {
		t.Append(u.ID, u.Username, u.Email, u.DisplayName(), output.Bool(u.IsAdmin), output.Bool(u.IsActive), output.Time(u.CreatedAt))
	}
	return t
}

func userTable(u *users.TenantUser) output.Table {
	return output.KeyValue(
		[2]string{"ID", u.ID},
		[2]string{"Tenant", output.OrDash(u.TenantID)},
		[2]string{"Username", u.Username},
		[2]string{"Email", u.Email},
		[2]string{"Name", u.DisplayName()},
		[2]string{"Admin", output.Bool(u.IsAdmin)},
		[2]string{"Active", output.Bool(u.IsActive)},
		[2]string{"Created", output.Time(u.CreatedAt)},
		[2]string{"Last login", output.TimePtr(u.LastLogin)},
	)
}

func passwordResetTable(r *users.PasswordReset) output.Table {
	return output.KeyValue(
		[2]string{"Temporary password", output.OrDash(r.TemporaryPassword)},
		[2]string{"Message", output.OrDash(r.Message)},
	)
}
