package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tilereveal/tilereveal/internal/auth"
	"github.com/tilereveal/tilereveal/internal/bank"
	"github.com/tilereveal/tilereveal/internal/catalog"
	"github.com/tilereveal/tilereveal/internal/config"
	"github.com/tilereveal/tilereveal/internal/db/repository"
	"github.com/tilereveal/tilereveal/internal/leaderboard"
	"github.com/tilereveal/tilereveal/internal/logging"
	"github.com/tilereveal/tilereveal/internal/puzzle"
	"github.com/tilereveal/tilereveal/internal/scoring"
	"github.com/tilereveal/tilereveal/internal/server"
	"github.com/tilereveal/tilereveal/internal/session"
	"github.com/tilereveal/tilereveal/pkg/http/ws"
)

// App owns every long-lived dependency of the game service.
type App struct {
	cfg    *config.App
	logger zerolog.Logger

	pool   *pgxpool.Pool
	redis  *redis.Client
	server *server.Server

	broadcaster    *leaderboard.Broadcaster
	snapshotWorker *leaderboard.SnapshotWorker
}

// New wires the full service from configuration.
func New(ctx context.Context, cfg *config.App) (*App, error) {
	logger := logging.New(cfg.Name, cfg.Env)

	pool, err := pgxpool.New(ctx, postgresDSN(cfg.Postgres))
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	puzzleRepo := repository.NewPuzzleRepo(pool)
	solveRepo := repository.NewSolveRepo(pool)
	snapshotRepo := repository.NewSnapshotRepo(pool)

	questions := bank.Build()
	selector := puzzle.NewSelector(questions)
	engine := scoring.NewEngine(scoring.DefaultConfig())
	logger.Info().Int("questions", len(questions)).Msg("question bank built")

	stateManager := session.NewStateManager(redisClient, cfg.Game.SessionTTL, logger)
	lbService := leaderboard.NewService(redisClient, logger)
	sessionService := session.NewService(
		stateManager, lbService, puzzleRepo, solveRepo,
		selector, engine, cfg.Game.DailySeedSalt, logger,
	)

	hub := ws.NewHub(logger)
	verifier := auth.NewVerifier([]byte(cfg.Security.PlatformJWTSecret), cfg.Security.PlatformIssuer)

	srv := server.New(cfg.HTTPAddr, server.Deps{
		Verifier:    verifier,
		Sessions:    session.NewHandler(sessionService, logger),
		Leaderboard: leaderboard.NewHandler(lbService, snapshotRepo, logger),
		Catalog:     catalog.NewHandler(puzzleRepo, logger),
		Hub:         hub,
	}, logger)

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		redis:          redisClient,
		server:         srv,
		broadcaster:    leaderboard.NewBroadcaster(redisClient, hub, logger),
		snapshotWorker: leaderboard.NewSnapshotWorker(lbService, snapshotRepo, cfg.Leaderboard.SnapshotInterval, cfg.Leaderboard.SnapshotTopN, logger),
	}, nil
}

// Run starts background workers and the HTTP server, then blocks until a
// shutdown signal arrives.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go a.broadcaster.Run(ctx)
	go a.snapshotWorker.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer shutdownCancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown failed")
	}

	a.redis.Close()
	a.pool.Close()
	a.logger.Info().Msg("shutdown complete")
	return nil
}

func postgresDSN(pg config.Postgres) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		pg.User, pg.Password, pg.Host, pg.Port, pg.Database, pg.SSLMode)
}
