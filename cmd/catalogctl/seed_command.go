package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"streamhub-backend/internal/domains/user"
	"streamhub-backend/internal/seed"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminEmail    = "admin@streamhub.example.com"
)

func newSeedCommand(ctx *commandContext) *cobra.Command {
	var username, password, email string
	var allowProduction bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the admin account and a sample catalog (idempotent)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if ctx.cfg.IsProduction() && !allowProduction {
				return fmt.Errorf("refusing to seed a production environment (use --allow-production)")
			}
			if password == "" {
				return fmt.Errorf("admin password is required (--admin-password or SEED_ADMIN_PASSWORD)")
			}

			s, closeFn, err := ctx.openStores(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			users, lifecycle := ctx.services(s)
			result, err := seed.New(users, lifecycle).Run(cmd.Context(), user.CreateAdminInput{
				Username: username,
				Password: password,
				Email:    email,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.AdminCreated {
				fmt.Fprintf(out, "Created admin %q (id %d)\n", username, result.AdminID)
			} else {
				fmt.Fprintf(out, "Admin %q already exists (id %d)\n", username, result.AdminID)
			}
			if result.CatalogSkipped {
				fmt.Fprintln(out, "Catalog already has content, sample data skipped")
			} else {
				fmt.Fprintf(out, "Seeded %d series and %d episodes\n", result.SeriesCreated, result.EpisodesAdded)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "admin-username", envOr("SEED_ADMIN_USERNAME", defaultAdminUsername), "Admin username")
	cmd.Flags().StringVar(&password, "admin-password", os.Getenv("SEED_ADMIN_PASSWORD"), "Admin password")
	cmd.Flags().StringVar(&email, "admin-email", envOr("SEED_ADMIN_EMAIL", defaultAdminEmail), "Admin email")
	cmd.Flags().BoolVar(&allowProduction, "allow-production", false, "Allow seeding when APP_ENV=production")

	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
