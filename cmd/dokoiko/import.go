package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/neexbeast/dokoiko/internal/destination"
	"github.com/neexbeast/dokoiko/internal/storage"
)

// catalogWriter is the part of storage.Repository the import needs.
type catalogWriter interface {
	ReplaceCatalog(ctx context.Context, catalog *destination.Catalog) (int64, error)
	CountByDeparture(ctx context.Context, departure string) (int, error)
}

func newImportCmd(logger func(*cobra.Command) *slog.Logger) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Validate a catalog file and make Postgres hold exactly its records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := logger(cmd)
			databaseURL := v.GetString("database-url")
			if databaseURL == "" {
				return errors.New("--database-url or DATABASE_URL is required")
			}

			catalog, err := destination.LoadFile(v.GetString("catalog"))
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			pool, err := storage.Connect(ctx, databaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := storage.RunMigrations(ctx, pool, storage.Migrations()); err != nil {
				return fmt.Errorf("running migrations: %w", err)
			}

			repo := storage.NewRepository(pool)
			if err := importCatalog(ctx, repo, catalog, log); err != nil {
				return err
			}
			return reportCoverage(ctx, cmd.OutOrStdout(), repo, destination.DefaultDepartures())
		},
	}

	f := cmd.Flags()
	f.String("catalog", "data/destinations.json", "Catalog JSON file")
	f.String("database-url", "", "Postgres connection URL (defaults to $DATABASE_URL)")
	_ = v.BindPFlag("catalog", f.Lookup("catalog"))
	_ = v.BindPFlag("database-url", f.Lookup("database-url"))
	_ = v.BindEnv("database-url", "DATABASE_URL")

	return cmd
}

// importCatalog replaces the stored catalog with catalog.
func importCatalog(ctx context.Context, w catalogWriter, catalog *destination.Catalog, log *slog.Logger) error {
	removed, err := w.ReplaceCatalog(ctx, catalog)
	if err != nil {
		return fmt.Errorf("importing catalog: %w", err)
	}
	log.Info("catalog imported", "records", catalog.Len(), "removed", removed)
	return nil
}

// reportCoverage prints how many stored records each departure reaches.
func reportCoverage(ctx context.Context, out io.Writer, w catalogWriter, departures *destination.DepartureTable) error {
	for _, d := range departures.All() {
		n, err := w.CountByDeparture(ctx, d.Name)
		if err != nil {
			return err
		}
		if n == 0 && d.NearestHub != "" {
			fmt.Fprintf(out, "%s\t0\t(via %s)\n", d.Name, d.NearestHub)
			continue
		}
		fmt.Fprintf(out, "%s\t%d\n", d.Name, n)
	}
	return nil
}
