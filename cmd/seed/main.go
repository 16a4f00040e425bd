package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/draft-league/internal/app"
	"github.com/riskibarqy/draft-league/internal/config"
	"github.com/riskibarqy/draft-league/internal/domain/player"
	"github.com/riskibarqy/draft-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/draft-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/draft-league/internal/platform/logging"
)

func main() {
	file := flag.String("file", "db/seed/players.yaml", "player catalog YAML to upsert")
	dryRun := flag.Bool("dry-run", false, "validate the catalog without writing")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := logging.New(cfg.AppEnv, cfg.LogLevel).Named("seed")
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, *file, *dryRun); err != nil {
		logger.Error("seed failed", "file", *file, "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *logging.Logger, path string, dryRun bool) error {
	players, err := loadCatalog(path)
	if err != nil {
		return err
	}
	logger.Info("player catalog loaded", "file", path, "players", len(players))
	if dryRun {
		return nil
	}

	db, err := app.OpenDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := postgres.NewPlayerRepository(db)
	tx := postgres.NewTxManager(db, cfg.DBTxMaxRetries, logger)
	if err := tx.WithinTx(ctx, func(ctx context.Context) error {
		return repo.Upsert(ctx, players)
	}); err != nil {
		return fmt.Errorf("upsert players: %w", err)
	}

	logger.Info("player catalog upserted", "players", len(players))
	return nil
}

func loadCatalog(path string) ([]player.Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	players, err := memory.LoadPlayers(f)
	if err != nil {
		return nil, err
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("catalog %s has no players", path)
	}
	return players, nil
}
