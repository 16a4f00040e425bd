package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/draft-league/internal/domain/team"
)

type teamTableModel struct {
	ID            int64          `db:"id"`
	PublicID      string         `db:"public_id"`
	LeagueID      string         `db:"league_public_id"`
	OwnerUserID   sql.NullString `db:"owner_user_id"`
	Name          string         `db:"name"`
	Claimed       bool           `db:"claimed"`
	Wins          int            `db:"wins"`
	Losses        int            `db:"losses"`
	Ties          int            `db:"ties"`
	PointsFor     float64        `db:"points_for"`
	PointsAgainst float64        `db:"points_against"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

type teamInsertModel struct {
	PublicID    string         `db:"public_id"`
	LeagueID    string         `db:"league_public_id"`
	OwnerUserID sql.NullString `db:"owner_user_id"`
	Name        string         `db:"name"`
	Claimed     bool           `db:"claimed"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:          row.PublicID,
		LeagueID:    row.LeagueID,
		OwnerUserID: row.OwnerUserID.String,
		Name:        row.Name,
		Claimed:     row.Claimed,
		Record: team.Record{
			Wins:          row.Wins,
			Losses:        row.Losses,
			Ties:          row.Ties,
			PointsFor:     row.PointsFor,
			PointsAgainst: row.PointsAgainst,
		},
		CreatedAt: row.CreatedAt,
	}
}
