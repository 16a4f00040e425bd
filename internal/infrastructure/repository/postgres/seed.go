package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/draft-league/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the bundled player catalog into an empty players
// table. A table that already has rows is left alone.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	repo := NewPlayerRepository(db)
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count players for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	players, err := memory.SeedPlayers()
	if err != nil {
		return fmt.Errorf("load seed players: %w", err)
	}
	if err := repo.Upsert(ctx, players); err != nil {
		return fmt.Errorf("seed players: %w", err)
	}
	return nil
}
