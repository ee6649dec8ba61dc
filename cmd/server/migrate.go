package main

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/vedran77/chirp/internal/config"
	"github.com/vedran77/chirp/internal/database"
	mongorepo "github.com/vedran77/chirp/internal/repository/mongo"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations (postgres) or create indexes (mongo) and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := opts.setup()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			switch cfg.StoreDriver {
			case config.DriverPostgres:
				pool, err := database.Connect(ctx, cfg)
				if err != nil {
					return err
				}
				defer pool.Close()
				if err := database.Migrate(ctx, pool); err != nil {
					return err
				}
			case config.DriverMongo:
				client, db, err := database.ConnectMongo(ctx, cfg)
				if err != nil {
					return err
				}
				defer client.Disconnect(ctx)
				if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
					return err
				}
			default:
				return errors.New("the memory store has no schema to migrate")
			}

			log.Info().Str("driver", cfg.StoreDriver).Msg("migrations applied")
			return nil
		},
	}
}
