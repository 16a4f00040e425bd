package postgres

import (
	"database/sql"

	"github.com/riskibarqy/draft-league/internal/domain/schedule"
)

type weekTableModel struct {
	ID         int64        `db:"id"`
	PublicID   string       `db:"public_id"`
	LeagueID   string       `db:"league_public_id"`
	Number     int          `db:"number"`
	Label      string       `db:"label"`
	StartsAt   sql.NullTime `db:"starts_at"`
	IsComplete bool         `db:"is_complete"`
}

type matchupTableModel struct {
	ID         int64   `db:"id"`
	PublicID   string  `db:"public_id"`
	LeagueID   string  `db:"league_public_id"`
	WeekID     string  `db:"week_public_id"`
	WeekNumber int     `db:"week_number"`
	HomeTeamID string  `db:"home_team_public_id"`
	AwayTeamID string  `db:"away_team_public_id"`
	HomeScore  float64 `db:"home_score"`
	AwayScore  float64 `db:"away_score"`
}

type weekInsertModel struct {
	PublicID   string       `db:"public_id"`
	LeagueID   string       `db:"league_public_id"`
	Number     int          `db:"number"`
	Label      string       `db:"label"`
	StartsAt   sql.NullTime `db:"starts_at"`
	IsComplete bool         `db:"is_complete"`
}

type matchupInsertModel struct {
	PublicID   string  `db:"public_id"`
	LeagueID   string  `db:"league_public_id"`
	WeekID     string  `db:"week_public_id"`
	WeekNumber int     `db:"week_number"`
	HomeTeamID string  `db:"home_team_public_id"`
	AwayTeamID string  `db:"away_team_public_id"`
	HomeScore  float64 `db:"home_score"`
	AwayScore  float64 `db:"away_score"`
}

func weekFromRow(row weekTableModel) schedule.Week {
	w := schedule.Week{
		ID:        row.PublicID,
		LeagueID:  row.LeagueID,
		Number:    row.Number,
		Label:     row.Label,
		Completed: row.IsComplete,
	}
	if row.StartsAt.Valid {
		w.StartsAt = row.StartsAt.Time.UTC()
	}
	return w
}

func matchupFromRow(row matchupTableModel) schedule.Matchup {
	return schedule.Matchup{
		ID:         row.PublicID,
		LeagueID:   row.LeagueID,
		WeekID:     row.WeekID,
		WeekNumber: row.WeekNumber,
		HomeTeamID: row.HomeTeamID,
		AwayTeamID: row.AwayTeamID,
		HomeScore:  row.HomeScore,
		AwayScore:  row.AwayScore,
	}
}
