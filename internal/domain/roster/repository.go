package roster

import "context"

// Repository describes roster persistence needs from use cases.
type Repository interface {
	Insert(ctx context.Context, e Entry) error
	ListByTeam(ctx context.Context, teamID string) ([]Entry, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Entry, error)
	DeleteByTeam(ctx context.Context, teamID string) error
	DeleteByLeague(ctx context.Context, leagueID string) error
}
