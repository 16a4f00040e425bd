package postgres

import (
	"time"

	"github.com/riskibarqy/draft-league/internal/domain/roster"
)

type rosterEntryTableModel struct {
	ID         int64     `db:"id"`
	PublicID   string    `db:"public_id"`
	LeagueID   string    `db:"league_public_id"`
	TeamID     string    `db:"team_public_id"`
	PlayerID   string    `db:"player_public_id"`
	Slot       string    `db:"slot"`
	AcquiredAt time.Time `db:"acquired_at"`
}

type rosterEntryInsertModel struct {
	PublicID   string    `db:"public_id"`
	LeagueID   string    `db:"league_public_id"`
	TeamID     string    `db:"team_public_id"`
	PlayerID   string    `db:"player_public_id"`
	Slot       string    `db:"slot"`
	AcquiredAt time.Time `db:"acquired_at"`
}

func rosterEntryFromRow(row rosterEntryTableModel) roster.Entry {
	return roster.Entry{
		ID:         row.PublicID,
		LeagueID:   row.LeagueID,
		TeamID:     row.TeamID,
		PlayerID:   row.PlayerID,
		Slot:       roster.Slot(row.Slot),
		AcquiredAt: row.AcquiredAt,
	}
}
