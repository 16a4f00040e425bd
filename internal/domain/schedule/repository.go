package schedule

import "context"

// Repository describes week and matchup persistence needs from use cases.
type Repository interface {
	InsertWeeks(ctx context.Context, weeks []Week) error
	InsertMatchups(ctx context.Context, matchups []Matchup) error
	// ListWeeks orders by week number.
	ListWeeks(ctx context.Context, leagueID string) ([]Week, error)
	CountWeeks(ctx context.Context, leagueID string) (int, error)
	ListMatchups(ctx context.Context, leagueID string) ([]Matchup, error)
	ListMatchupsByWeek(ctx context.Context, leagueID string, weekNumber int) ([]Matchup, error)
	GetMatchup(ctx context.Context, matchupID string) (Matchup, bool, error)
	UpdateMatchupScore(ctx context.Context, matchupID string, home, away float64) error
	MarkWeekComplete(ctx context.Context, leagueID string, weekNumber int) (bool, error)
	// DeleteByLeague removes matchups first, then weeks.
	DeleteByLeague(ctx context.Context, leagueID string) error
}
