package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/99minutos/landed-cost/internal/core/ports"
	mongostore "github.com/99minutos/landed-cost/internal/infrastructure/db/mongo"
	"github.com/99minutos/landed-cost/internal/infrastructure/db/sqlite"
	"github.com/99minutos/landed-cost/internal/infrastructure/refdata"
	"github.com/99minutos/landed-cost/internal/pkg/config"
)

var (
	seedBackend    string
	seedSQLitePath string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the default duty and tax reference data",
	Long: `Upsert the built-in duty and tax reference rates into MongoDB or SQLite.
Existing rows with the same key are overwritten; other rows are kept.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedBackend, "backend", "", "mongo or sqlite (default REFERENCE_BACKEND)")
	seedCmd.Flags().StringVar(&seedSQLitePath, "sqlite-path", "", "SQLite file (default SQLITE_PATH)")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	backend := strings.ToLower(seedBackend)
	if backend == "" {
		backend = cfg.ReferenceBackend
	}

	var (
		duty ports.DutyRateWriter
		tax  ports.TaxRateWriter
	)
	switch backend {
	case config.BackendMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			Timeout:  cfg.Mongo.Timeout,
		})
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(ctx) }()

		dutyRepo, taxRepo := mongostore.NewDutyRepository(db), mongostore.NewTaxRepository(db)
		if err := dutyRepo.EnsureIndexes(ctx); err != nil {
			return err
		}
		if err := taxRepo.EnsureIndexes(ctx); err != nil {
			return err
		}
		duty, tax = dutyRepo, taxRepo

	case config.BackendSQLite:
		path := seedSQLitePath
		if path == "" {
			path = cfg.SQLite.Path
		}
		store, err := sqlite.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()
		duty, tax = store, store

	default:
		return fmt.Errorf("seed: backend must be %q or %q, got %q", config.BackendMongo, config.BackendSQLite, backend)
	}

	dutyRows, taxRows, err := refdata.Seed(ctx, duty, tax)
	if err != nil {
		return err
	}
	log.Info().
		Str("backend", backend).
		Int("duty_rates", dutyRows).
		Int("tax_rates", taxRows).
		Msg("reference data seeded")
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d duty rates and %d tax rates into %s\n", dutyRows, taxRows, backend)
	return nil
}
