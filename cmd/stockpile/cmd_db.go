package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/stockpile/app/repositories"
	"github.com/shashiranjanraj/stockpile/database/seeders"
	"github.com/shashiranjanraj/stockpile/internal/server"
	"github.com/shashiranjanraj/stockpile/pkg/database"
	"github.com/shashiranjanraj/stockpile/pkg/migration"
)

// stockpile migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := server.OpenSQL()
		if err != nil {
			return err
		}
		defer database.Close(db) //nolint:errcheck

		fmt.Fprintln(cmd.OutOrStdout(), "Running migrations…")
		n, err := migration.New(db, cmd.OutOrStdout()).Run()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d migration(s) applied\n", n)
		return nil
	},
}

// stockpile migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := server.OpenSQL()
		if err != nil {
			return err
		}
		defer database.Close(db) //nolint:errcheck

		fmt.Fprintln(cmd.OutOrStdout(), "Rolling back last batch…")
		n, err := migration.New(db, cmd.OutOrStdout()).Rollback()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d migration(s) rolled back\n", n)
		return nil
	},
}

// stockpile migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := server.OpenSQL()
		if err != nil {
			return err
		}
		defer database.Close(db) //nolint:errcheck

		rows, err := migration.New(db, nil).Status()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "MIGRATION\tRAN\tBATCH")
		for _, row := range rows {
			ran, batch := "No", "-"
			if row.Ran {
				ran, batch = "Yes", fmt.Sprint(row.Batch)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", row.Name, ran, batch)
		}
		return w.Flush()
	},
}

// stockpile seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the stores with an admin account and a sample catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, err := server.OpenSQL()
		if err != nil {
			return err
		}
		defer database.Close(db) //nolint:errcheck

		docs, err := server.OpenDocuments(ctx)
		if err != nil {
			return err
		}
		defer docs.Close(context.Background()) //nolint:errcheck

		fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
		return seeders.RunAll(ctx, seeders.Stores{
			Users:     repositories.NewUserRepository(db),
			Products:  repositories.NewProductRepository(docs.DB),
			Suppliers: repositories.NewSupplierRepository(docs.DB),
		}, cmd.OutOrStdout())
	},
}
