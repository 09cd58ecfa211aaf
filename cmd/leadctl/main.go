// Command leadctl runs operator tasks against the configured database.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/forgeline/leaddesk/internal/config"
	"github.com/forgeline/leaddesk/internal/database"
	"github.com/forgeline/leaddesk/internal/services"
	"github.com/forgeline/leaddesk/internal/utils"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "leadctl: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leadctl",
		Short: "leaddesk operator CLI",
		Long: `leadctl prepares the leaddesk database: it creates the schema, adds admin
accounts and seeds the default email templates. Settings come from the same
environment variables (and .env file) as the server.`,
		SilenceUsage: true,
	}
	cmd.AddCommand(
		newMigrateCmd(),
		newCreateAdminCmd(),
		newSeedTemplatesCmd(),
	)
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database (MySQL) and every table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), func(_ *config.Config, _ *gorm.DB) error {
				fmt.Fprintln(cmd.OutOrStdout(), "schema ready")
				return nil
			})
		},
	}
}

func newCreateAdminCmd() *cobra.Command {
	var username, email, password, role string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), func(cfg *config.Config, db *gorm.DB) error {
				auth := services.NewAuthService(db, cfg.Auth)
				user, err := auth.CreateAdmin(cmd.Context(), username, email, password, role)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created %s %q (id %d)\n", user.Role, user.Username, user.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "Login name")
	cmd.Flags().StringVar(&email, "email", "", "Email address, also accepted at login")
	cmd.Flags().StringVar(&password, "password", "", "Password, at least 8 characters")
	cmd.Flags().StringVar(&role, "role", "admin", "Role stored on the account")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newSeedTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-templates",
		Short: "Insert the default email templates when none exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), func(_ *config.Config, db *gorm.DB) error {
				n, err := services.NewTemplateService(db).Seed(cmd.Context())
				if err != nil {
					return err
				}
				if n == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "templates already present, nothing seeded")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d templates\n", n)
				return nil
			})
		},
	}
}

// withDB loads configuration, bootstraps the schema and hands the pool to fn
func withDB(ctx context.Context, fn func(*config.Config, *gorm.DB) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	utils.InitLog(cfg.IsProduction())

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	if err := database.Bootstrap(ctx, cfg, db); err != nil {
		var dbErr *database.Error
		if errors.As(err, &dbErr) {
			return fmt.Errorf("%w\n%s", err, dbErr.Hint())
		}
		return err
	}

	return fn(cfg, db)
}
