package postgres

import (
	"database/sql"

	"github.com/riskibarqy/draft-league/internal/domain/draft"
)

type draftPickTableModel struct {
	LeagueID    string         `db:"league_public_id"`
	Overall     int            `db:"overall"`
	Round       int            `db:"round"`
	PickInRound int            `db:"pick_in_round"`
	TeamID      string         `db:"team_public_id"`
	PlayerID    sql.NullString `db:"player_public_id"`
	PickedBy    sql.NullString `db:"picked_by"`
	Authority   sql.NullString `db:"authority"`
	PickedAt    sql.NullTime   `db:"picked_at"`
}

// draftPickInsertModel is an empty board slot.
type draftPickInsertModel struct {
	LeagueID    string `db:"league_public_id"`
	Overall     int    `db:"overall"`
	Round       int    `db:"round"`
	PickInRound int    `db:"pick_in_round"`
	TeamID      string `db:"team_public_id"`
}

var draftPickSelectColumns = []string{
	"league_public_id",
	"overall",
	"round",
	"pick_in_round",
	"team_public_id",
	"player_public_id",
	"picked_by",
	"authority",
	"picked_at",
}

func draftPickFromRow(row draftPickTableModel) draft.Pick {
	p := draft.Pick{
		LeagueID:    row.LeagueID,
		Overall:     row.Overall,
		Round:       row.Round,
		PickInRound: row.PickInRound,
		TeamID:      row.TeamID,
		PlayerID:    row.PlayerID.String,
		PickedBy:    row.PickedBy.String,
		Authority:   draft.Authority(row.Authority.String),
	}
	if row.PickedAt.Valid {
		at := row.PickedAt.Time
		p.PickedAt = &at
	}
	return p
}
