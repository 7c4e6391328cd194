package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"budgetmate/internal/config"
	"budgetmate/internal/model"
	"budgetmate/internal/repository/mysql"
	"budgetmate/internal/service"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "budgetmate-admin",
		Short:         "Administrative tasks for the BudgetMate database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newPromoteCmd(), newSeedCmd())
	return root
}

func openDB() (*gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	db, err := mysql.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := mysql.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func newPromoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote <email>",
		Short: "Give an existing user the admin role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			u, err := promote(cmd.Context(), db, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) is now an admin\n", u.Name, u.Email)
			return nil
		},
	}
}

func promote(ctx context.Context, db *gorm.DB, email string) (*model.User, error) {
	return service.NewAuthService(db, nil, nil, nil).Promote(ctx, email)
}

func newSeedCmd() *cobra.Command {
	var adminEmail string
	cmd := &cobra.Command{
		Use:       "seed <articles|jobs>",
		Short:     "Insert the default catalog entries that are missing",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"articles", "jobs"},
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			n, err := seed(cmd.Context(), db, args[0], adminEmail)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d %s\n", n, args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&adminEmail, "admin", "", "email of the admin recorded as author")
	_ = cmd.MarkFlagRequired("admin")
	return cmd
}

var errNotAdmin = errors.New("seed author must be an admin")

func seed(ctx context.Context, db *gorm.DB, kind, adminEmail string) (int, error) {
	users := &mysql.UserRepository{DB: db}
	admin, err := users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(adminEmail)))
	if err != nil {
		return 0, fmt.Errorf("find admin %s: %w", adminEmail, err)
	}
	if !admin.Role.IsAdmin() {
		return 0, errNotAdmin
	}
	switch kind {
	case "articles":
		return service.NewArticleService(db).SeedDefaults(ctx, admin.ID)
	case "jobs":
		return service.NewJobService(db).SeedDefaults(ctx, admin.ID)
	default:
		return 0, fmt.Errorf("unknown catalog %q", kind)
	}
}
