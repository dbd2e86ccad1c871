package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feud-service/internal/app"
	"feud-service/internal/catalog"
	"feud-service/internal/config"
	"feud-service/internal/game"
	"feud-service/internal/infra/file"
	"feud-service/internal/infra/memory"
	pgloader "feud-service/internal/infra/postgres"
	redisstore "feud-service/internal/infra/redis"
	transport "feud-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 30*time.Minute)

	var loader memory.CategoryLoader = file.NewCategoryLoader(cfg.DataDir())
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		loader = pgloader.NewCategoryLoader(pool)
	}

	categoryTTL := config.TTLDuration(cfg.Category.TTL, 10*time.Minute)
	var categories app.CategoryRepository
	if redisClient != nil {
		categories = redisstore.NewCategoryRepository(redisClient, loader, categoryTTL)
	} else {
		categories = memory.NewCategoryRepository(loader, categoryTTL)
	}

	// Every category must load before the first game starts.
	loaded, err := catalog.Preload(ctx, categories, cfg.CategoryIDs())
	if err != nil {
		log.Printf("failed to load category data: %v", err)
		return err
	}
	log.Printf("loaded %d categories", len(loaded))

	var store app.SessionRepository
	if redisClient != nil {
		store = redisstore.NewSessionStore(redisClient, redisTTL)
	} else {
		store = memory.NewSessionStore()
	}
	service := app.NewGameService(store, loaded, cfg.CategoryIDs(), game.Options{
		Rounds:  cfg.Game.Rounds,
		Guesses: cfg.Game.Guesses,
	})

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      transport.NewRouter(service),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting feud service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
