package membership

import "context"

// Repository describes membership persistence needs from use cases.
type Repository interface {
	// Insert ignores the write when the (league, user) pair already exists,
	// so an existing commissioner row is never downgraded.
	Insert(ctx context.Context, m Membership) error
	Get(ctx context.Context, leagueID, userID string) (Membership, bool, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Membership, error)
	UpdateRole(ctx context.Context, leagueID, userID string, role Role) error
	Delete(ctx context.Context, leagueID, userID string) error
}
