package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"pennypet/internal/catalog"
	"pennypet/internal/config"
	"pennypet/internal/gamestate"
	"pennypet/internal/serverapp"
)

func main() {
	_ = godotenv.Load()

	logger := log.Default()

	rt, err := config.ParseRuntime()
	if err != nil {
		logger.Fatalf("parse runtime: %v", err)
	}

	cfg, err := config.Load(rt.ConfigPath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Fatalf("load config: %v", err)
		}
		cfg = config.DefaultConfig()
	}
	if rt.Addr != "" {
		cfg.Server.Addr = rt.Addr
	}
	if rt.DataDir != "" {
		cfg.Data.Dir = rt.DataDir
	}

	balance := config.FromEnv()

	cat := catalog.Default()
	if cfg.Catalog.Path != "" {
		loaded, err := catalog.Load(cfg.Catalog.Path)
		if err != nil {
			logger.Fatalf("load catalog: %v", err)
		}
		cat = *loaded
	}

	persister, closeStorage, err := buildPersister(rt, cfg)
	if err != nil {
		logger.Fatalf("open save storage: %v", err)
	}
	defer closeStorage()

	app, err := serverapp.NewApp(serverapp.Options{
		Config:     cfg,
		Balance:    balance,
		Catalog:    &cat,
		Persister:  persister,
		CORSOrigin: os.Getenv("PENNYPET_CORS_ORIGIN"),
		Logger:     logger,
	})
	if err != nil {
		logger.Fatalf("build server: %v", err)
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go app.Engine.Run(ctx)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           app.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Printf("listening on http://localhost%s (storage=%s)", cfg.Server.Addr, rt.Storage)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Print("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("shutdown: %v", err)
	}
}

func buildPersister(rt config.Runtime, cfg *config.Config) (gamestate.Persister, func(), error) {
	switch strings.ToLower(strings.TrimSpace(rt.Storage)) {
	case "", "file":
		fs, err := gamestate.NewFileStore(cfg.Data.Dir)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() {}, nil
	case "sqlite":
		path := rt.SQLitePath
		if path == "" {
			path = filepath.Join(cfg.Data.Dir, "pennypet.sqlite")
		}
		st, err := gamestate.OpenSQLStore(gamestate.DialectSQLite, path)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { _ = st.Close() }, nil
	case "postgres":
		if rt.PostgresDSN == "" {
			return nil, nil, fmt.Errorf("postgres storage needs PENNYPET_POSTGRES_DSN or DATABASE_URL")
		}
		st, err := gamestate.OpenSQLStore(gamestate.DialectPostgres, rt.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { _ = st.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", rt.Storage)
	}
}
