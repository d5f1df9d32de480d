package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/storehub/app/services"
	"github.com/shashiranjanraj/storehub/config"
	"github.com/shashiranjanraj/storehub/database/seeders"
	"github.com/shashiranjanraj/storehub/pkg/database"
	"github.com/shashiranjanraj/storehub/pkg/migration"
)

// bootDB loads config and opens the database connection.
func bootDB() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return database.Connect()
}

// storehub migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		n, err := migration.New(database.DB, cmd.OutOrStdout()).Run()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d migration(s) applied\n", n)
		return nil
	},
}

// storehub migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Roll back the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		n, err := migration.New(database.DB, cmd.OutOrStdout()).Rollback()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d migration(s) rolled back\n", n)
		return nil
	},
}

// storehub migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		states, err := migration.New(database.DB, cmd.OutOrStdout()).Status()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "MIGRATION\tRAN\tBATCH")
		for _, s := range states {
			batch := "-"
			if s.Ran {
				batch = fmt.Sprint(s.Batch)
			}
			fmt.Fprintf(w, "%s\t%v\t%s\n", s.Name, s.Ran, batch)
		}
		return w.Flush()
	},
}

// storehub seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
		return seeders.RunAll(cmd.Context(), database.DB, cmd.OutOrStdout())
	},
}

var (
	rootUsername string
	rootPassword string
)

// storehub user:create-root
var createRootCmd = &cobra.Command{
	Use:   "user:create-root",
	Short: "Create a ROOT account (no-op when it exists)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		if rootPassword == "" {
			rootPassword = os.Getenv("ROOT_PASSWORD")
		}
		created, err := services.NewStoreService(database.DB).EnsureRootUser(cmd.Context(), rootUsername, rootPassword)
		if err != nil {
			var v *services.ValidationError
			if errors.As(err, &v) {
				w := tabwriter.NewWriter(cmd.ErrOrStderr(), 0, 0, 2, ' ', 0)
				for field, msg := range v.Fields {
					fmt.Fprintf(w, "  %s:\t%s\n", field, msg)
				}
				w.Flush() //nolint:errcheck
			}
			return err
		}
		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "ROOT user %q created\n", rootUsername)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "ROOT user %q already exists\n", rootUsername)
		}
		return nil
	},
}

func init() {
	createRootCmd.Flags().StringVar(&rootUsername, "username", "root", "login name")
	createRootCmd.Flags().StringVar(&rootPassword, "password", "", "password (default $ROOT_PASSWORD)")
}
