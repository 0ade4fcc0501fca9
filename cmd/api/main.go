package main

import (
	"context"
	"database/sql"
	"net/http"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	server "yisu_hotel/internal/adapters/http_server"
	"yisu_hotel/internal/adapters/observability"
	redisad "yisu_hotel/internal/adapters/redis"
	"yisu_hotel/internal/app"
	"yisu_hotel/internal/domain"
	"yisu_hotel/internal/shared"
	"yisu_hotel/internal/storage/memory"
	mysqlstore "yisu_hotel/internal/storage/mysql"
	"yisu_hotel/internal/storage/snapshot"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "api")

	observability.Serve()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// repository: in-memory collection over the configured snapshot backend
	store := memory.New(snapshotStore(ctx, cfg))
	if err := store.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("dataset load failed")
	}
	log.Info().Str("backend", cfg.SnapshotBackend).Msg("dataset loaded")

	sessions := sessionStore(cfg)
	auth := app.NewAuthService(store, sessions, cfg.BcryptCost)
	search := app.NewSearchService(store)
	listings := app.NewListingService(store)
	moderation := app.NewModerationService(store)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Auth:       auth,
		Search:     search,
		Listings:   listings,
		Moderation: moderation,
		LoginRPS:   cfg.LoginRPS,
	})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		return httpSrv.Shutdown(context.Background())
	})
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

func snapshotStore(ctx context.Context, cfg shared.Config) domain.SnapshotStore {
	switch cfg.SnapshotBackend {
	case "redis":
		return redisad.NewSnapshotStore(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		st := mysqlstore.New(db)
		if err := st.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("snapshot schema failed")
		}
		return st
	default:
		return snapshot.NewFileStore(cfg.SnapshotPath)
	}
}

func sessionStore(cfg shared.Config) domain.SessionStore {
	if cfg.SessionBackend == "redis" {
		return redisad.NewSessions(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	}
	return memory.NewSessions()
}
