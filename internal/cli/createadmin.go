package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rentalhub/rentalhub/internal/auth"
	"github.com/rentalhub/rentalhub/internal/errs"
	"github.com/rentalhub/rentalhub/internal/identity"
	"github.com/rentalhub/rentalhub/internal/user"
)

func newCreateAdminCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-admin",
		Short: "Create or reset the admin account",
		Long:  "Create the admin account from RH_ADMIN_EMAIL and RH_ADMIN_PASSWORD. If the account already exists its password is reset.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreateAdmin()
		},
	}
}

func runCreateAdmin() error {
	cfg := auth.ConfigFromEnv()

	database, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(database)

	users := user.NewStore(database)
	existing, err := users.GetByEmail(cfg.AdminEmail)
	if err != nil && errs.ErrorCode(err) != errs.ENotFound {
		return err
	}
	if existing != nil {
		if err := users.SetPassword(existing.ID, cfg.AdminPassword); err != nil {
			return err
		}
		fmt.Printf("Reset password for admin %s\n", cfg.AdminEmail)
		return nil
	}

	u, err := users.Create(user.NewUser{
		Email:     cfg.AdminEmail,
		Password:  cfg.AdminPassword,
		FirstName: "Admin",
		LastName:  "User",
		Role:      identity.RoleAdmin,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created admin %s (id %d)\n", u.Email, u.ID)
	return nil
}
