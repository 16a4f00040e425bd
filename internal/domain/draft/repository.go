package draft

import "context"

// Repository describes draft board persistence needs from use cases.
type Repository interface {
	InsertBoard(ctx context.Context, picks []Pick) error
	DeleteByLeague(ctx context.Context, leagueID string) error
	// ListByLeague orders by overall pick.
	ListByLeague(ctx context.Context, leagueID string) ([]Pick, error)
	GetByOverall(ctx context.Context, leagueID string, overall int) (Pick, bool, error)
	CountMade(ctx context.Context, leagueID string) (int, error)
	IsPlayerDrafted(ctx context.Context, leagueID, playerID string) (bool, error)
	ListDraftedPlayerIDs(ctx context.Context, leagueID string) ([]string, error)
	// Assign writes the player only while the pick is still empty and still
	// the league's current pick. It reports false when either check fails.
	Assign(ctx context.Context, a Assignment) (bool, error)
}
