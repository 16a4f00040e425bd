package postgres

import (
	"time"

	"github.com/riskibarqy/draft-league/internal/domain/league"
)

type leagueTableModel struct {
	ID          int64     `db:"id"`
	PublicID    string    `db:"public_id"`
	Name        string    `db:"name"`
	Season      int       `db:"season"`
	JoinCode    string    `db:"join_code"`
	MaxTeams    int       `db:"max_teams"`
	Visibility  string    `db:"visibility"`
	Status      string    `db:"status"`
	DraftType   string    `db:"draft_type"`
	DraftStatus string    `db:"draft_status"`
	CurrentPick int       `db:"current_pick"`
	BotCounter  int       `db:"bot_counter"`
	CreatedBy   string    `db:"created_by"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type leagueInsertModel struct {
	PublicID    string    `db:"public_id"`
	Name        string    `db:"name"`
	Season      int       `db:"season"`
	JoinCode    string    `db:"join_code"`
	MaxTeams    int       `db:"max_teams"`
	Visibility  string    `db:"visibility"`
	Status      string    `db:"status"`
	DraftType   string    `db:"draft_type"`
	DraftStatus string    `db:"draft_status"`
	CurrentPick int       `db:"current_pick"`
	BotCounter  int       `db:"bot_counter"`
	CreatedBy   string    `db:"created_by"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

var leagueSelectColumns = []string{
	"l.id",
	"l.public_id",
	"l.name",
	"l.season",
	"l.join_code",
	"l.max_teams",
	"l.visibility",
	"l.status",
	"l.draft_type",
	"l.draft_status",
	"l.current_pick",
	"l.bot_counter",
	"l.created_by",
	"l.created_at",
	"l.updated_at",
}

func leagueFromRow(row leagueTableModel) league.League {
	return league.League{
		ID:          row.PublicID,
		Name:        row.Name,
		Season:      row.Season,
		JoinCode:    row.JoinCode,
		MaxTeams:    row.MaxTeams,
		Visibility:  league.Visibility(row.Visibility),
		Status:      league.Status(row.Status),
		DraftType:   league.DraftType(row.DraftType),
		DraftStatus: league.DraftStatus(row.DraftStatus),
		CurrentPick: row.CurrentPick,
		BotCounter:  row.BotCounter,
		CreatedBy:   row.CreatedBy,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func leagueToInsertModel(l league.League) leagueInsertModel {
	return leagueInsertModel{
		PublicID:    l.ID,
		Name:        l.Name,
		Season:      l.Season,
		JoinCode:    l.JoinCode,
		MaxTeams:    l.MaxTeams,
		Visibility:  string(l.Visibility),
		Status:      string(l.Status),
		DraftType:   string(l.DraftType),
		DraftStatus: string(l.DraftStatus),
		CurrentPick: l.CurrentPick,
		BotCounter:  l.BotCounter,
		CreatedBy:   l.CreatedBy,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}
