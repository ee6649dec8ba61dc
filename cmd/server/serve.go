package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/vedran77/chirp/internal/config"
	"github.com/vedran77/chirp/internal/database"
	"github.com/vedran77/chirp/internal/repository"
	"github.com/vedran77/chirp/internal/repository/memory"
	mongorepo "github.com/vedran77/chirp/internal/repository/mongo"
	postgresrepo "github.com/vedran77/chirp/internal/repository/postgres"
	"github.com/vedran77/chirp/internal/server"
	"github.com/vedran77/chirp/internal/service"
	"github.com/vedran77/chirp/internal/transport/ws"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := opts.setup()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, log)
		},
	}
}

type store struct {
	users  repository.UserRepository
	tweets repository.TweetRepository
	pinger repository.Pinger
	close  func()
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := database.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := database.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
		}
		log.Info().Str("host", cfg.DBHost).Str("database", cfg.DBName).Msg("connected to postgres")
		return &store{
			users:  postgresrepo.NewUserRepo(pool),
			tweets: postgresrepo.NewTweetRepo(pool),
			pinger: pool,
			close:  pool.Close,
		}, nil

	case config.DriverMongo:
		client, db, err := database.ConnectMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
				_ = client.Disconnect(context.Background())
				return nil, err
			}
		}
		log.Info().Str("database", cfg.MongoDatabase).Msg("connected to mongo")
		return &store{
			users:  mongorepo.NewUserRepo(db),
			tweets: mongorepo.NewTweetRepo(db),
			pinger: database.MongoPinger{Client: client},
			close: func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = client.Disconnect(ctx)
			},
		}, nil

	default:
		log.Warn().Msg("using in-memory store; data is lost on restart")
		mem := memory.NewStore()
		return &store{
			users:  mem.Users(),
			tweets: mem.Tweets(),
			pinger: mem,
			close:  func() {},
		}, nil
	}
}

func serve(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	authService := service.NewAuthService(st.users, cfg.TokenCacheSize, cfg.TokenCacheTTL)
	tweetService := service.NewTweetService(st.tweets, authService)

	hub := ws.NewHub(log)
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go hub.Run(hubCtx)
	tweetService.SetNotifier(ws.NewHubNotifier(hub))

	srv := &http.Server{
		Addr: fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: server.NewRouter(server.Deps{
			Logger:      log,
			Auth:        authService,
			Tweets:      tweetService,
			Store:       st.pinger,
			Hub:         hub,
			CORSOrigins: cfg.CORSOrigins,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("driver", cfg.StoreDriver).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	// Websocket connections are hijacked and ignored by Shutdown, so the hub
	// closes them first.
	stopHub()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
