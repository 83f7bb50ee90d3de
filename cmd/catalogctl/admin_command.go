package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"streamhub-backend/internal/domains/user"
)

func newAdminCommand(ctx *commandContext) *cobra.Command {
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin account utilities",
	}

	adminCmd.AddCommand(newAdminCreateCommand(ctx))

	return adminCmd
}

func newAdminCreateCommand(ctx *commandContext) *cobra.Command {
	var in user.CreateAdminInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeFn, err := ctx.openStores(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			users, _ := ctx.services(s)
			created, err := users.CreateAdmin(cmd.Context(), in)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created admin %q (id %d)\n", created.Username, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Username, "username", "", "Username")
	cmd.Flags().StringVar(&in.Password, "password", "", "Password")
	cmd.Flags().StringVar(&in.Email, "email", "", "Email")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
