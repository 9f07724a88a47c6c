package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/evcraddock/golden-profile/internal/comment"
	"github.com/evcraddock/golden-profile/internal/config"
	"github.com/evcraddock/golden-profile/internal/db"
	"github.com/evcraddock/golden-profile/internal/directory"
	"github.com/evcraddock/golden-profile/internal/feed"
	"github.com/evcraddock/golden-profile/internal/logging"
	"github.com/evcraddock/golden-profile/internal/persona"
	"github.com/evcraddock/golden-profile/internal/submission"
	"github.com/evcraddock/golden-profile/internal/web"
)

func newServeCmd() *cobra.Command {
	var port int
	var envFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI",
		Long:  "Start an HTTP server for Golden's profile site and its JSON API. Settings come from the environment and an optional .env file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), port, envFile)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "port to listen on (default: GOLDEN_PORT or 8080)")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	return cmd
}

func runServe(ctx context.Context, port int, envFile string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Port = port
	}
	if flagDB != "" {
		cfg.DBPath = flagDB
	}

	log, err := logging.Setup(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	gateway, closeStore, err := buildGateway(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	fd := feed.New(gateway, cfg.FeedInterval, log)
	boards := submission.NewBoards(gateway, cfg.BoardTTL, submission.WithOnPosted(func(*comment.Comment) {
		fd.Nudge()
	}))

	if cfg.OpenAIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY is not set; chat requests will fail")
	}

	srv, err := web.NewServer(web.Deps{
		Comments: gateway,
		Feed:     fd,
		Boards:   boards,
		Persona: persona.NewClient(persona.Config{
			APIKey:  cfg.OpenAIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
			Timeout: cfg.HTTPTimeout,
		}),
		Directory:    directory.NewClient(cfg.RandomUserURL, cfg.HTTPTimeout),
		Logger:       log,
		PollInterval: cfg.FeedInterval,
	})
	if err != nil {
		return fmt.Errorf("creating web server: %w", err)
	}

	fmt.Printf("Starting web UI on http://localhost:%d\n", cfg.Port)
	return srv.Run(ctx, cfg.Addr())
}

// buildGateway opens the comment store selected by cfg. A store without
// its settings yields comment.Unconfigured so the site still serves.
func buildGateway(ctx context.Context, cfg *config.Config, log zerolog.Logger) (comment.Gateway, func(), error) {
	noop := func() {}

	if !cfg.StoreConfigured() {
		log.Warn().Str("store", cfg.Store).Msg("comment store is not configured; comments are disabled")
		return comment.Unconfigured{}, noop, nil
	}

	switch cfg.Store {
	case config.StorePostgres:
		pool, err := db.OpenPostgres(ctx, db.PostgresConfig{
			DSN:         cfg.DatabaseURL,
			Table:       cfg.Table,
			AutoMigrate: cfg.AutoMigrate,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("opening postgres: %w", err)
		}
		store, err := comment.NewPostgresStore(pool, cfg.Table)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info().Str("store", cfg.Store).Str("table", cfg.Table).Msg("comment store ready")
		return store, pool.Close, nil

	case config.StoreREST:
		log.Info().Str("store", cfg.Store).Str("url", cfg.SupabaseURL).Str("table", cfg.Table).Msg("comment store ready")
		return comment.NewRESTStore(cfg.SupabaseURL, cfg.SupabaseKey, cfg.Table, cfg.HTTPTimeout), noop, nil

	default:
		path := cfg.DBPath
		if path == "" {
			var err error
			path, err = db.DefaultPath()
			if err != nil {
				return nil, nil, err
			}
		}
		database, err := db.Open(path, cfg.Table)
		if err != nil {
			return nil, nil, err
		}
		store, err := comment.NewSQLiteStore(database, cfg.Table)
		if err != nil {
			closeDB(database, log)
			return nil, nil, err
		}
		log.Info().Str("store", cfg.Store).Str("path", path).Str("table", cfg.Table).Msg("comment store ready")
		return store, func() { closeDB(database, log) }, nil
	}
}

// closeDB closes the database, logging any error.
func closeDB(database interface{ Close() error }, log zerolog.Logger) {
	if err := database.Close(); err != nil {
		log.Warn().Err(err).Msg("closing database")
	}
}
