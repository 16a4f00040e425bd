package postgres

import (
	"time"

	"github.com/riskibarqy/draft-league/internal/domain/player"
)

type playerTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	Name      string    `db:"name"`
	Position  string    `db:"position"`
	ProTeam   string    `db:"pro_team"`
	Rank      int       `db:"rank"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

var playerSelectColumns = []string{
	"id",
	"public_id",
	"name",
	"position",
	"pro_team",
	"rank",
	"is_active",
	"created_at",
	"updated_at",
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:       row.PublicID,
		Name:     row.Name,
		Position: player.Position(row.Position),
		ProTeam:  row.ProTeam,
		Rank:     row.Rank,
		Active:   row.IsActive,
	}
}
