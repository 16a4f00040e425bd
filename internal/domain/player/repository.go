package player

import "context"

// Repository describes player catalog access from use cases.
type Repository interface {
	// List orders by rank (unranked last), then name.
	List(ctx context.Context, filter Filter) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
	Upsert(ctx context.Context, players []Player) error
}
