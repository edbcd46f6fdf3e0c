package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	intconfig "tours/internal/config"
	intdb "tours/internal/db"
	"tours/internal/services"
)

var migrateSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return intdb.MigrateUp(env.DB.DSNString())
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateSteps < 1 {
			return fmt.Errorf("--steps must be at least 1")
		}
		return intdb.MigrateDown(env.DB.DSNString(), migrateSteps)
	},
}

var (
	adminEmail    string
	adminPassword string
)

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create the admin account or reset its password",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := intconfig.ConnectDB(env.DB)
		if err != nil {
			return err
		}
		defer intconfig.CloseDB()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()
		svc := services.AuthService{DB: db, RequestID: "cli"}
		if err := svc.SeedAdmin(ctx, adminEmail, adminPassword); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "admin %s ready\n", adminEmail)
		return nil
	},
}

func init() {
	migrateDownCmd.Flags().IntVar(&migrateSteps, "steps", 1, "number of migrations to roll back")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)

	seedAdminCmd.Flags().StringVar(&adminEmail, "email", "admin@tours.local", "admin email")
	seedAdminCmd.Flags().StringVar(&adminPassword, "password", "", "admin password (min 6 characters)")
	_ = seedAdminCmd.MarkFlagRequired("password")
}
