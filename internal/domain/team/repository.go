package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, t Team) error
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	GetByOwner(ctx context.Context, leagueID, userID string) (Team, bool, error)
	// ListByLeague orders teams by creation time, oldest first.
	ListByLeague(ctx context.Context, leagueID string) ([]Team, error)
	CountClaimed(ctx context.Context, leagueID string) (int, error)
	UpdateRecord(ctx context.Context, teamID string, record Record) error
	ResetRecords(ctx context.Context, leagueID string) error
	Delete(ctx context.Context, teamID string) error
}
