package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/draft-league/internal/domain/roster"
	qb "github.com/riskibarqy/draft-league/internal/platform/querybuilder"
)

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) Insert(ctx context.Context, e roster.Entry) error {
	query, args, err := qb.InsertModel("roster_entries", rosterEntryInsertModel{
		PublicID:   e.ID,
		LeagueID:   e.LeagueID,
		TeamID:     e.TeamID,
		PlayerID:   e.PlayerID,
		Slot:       string(e.Slot),
		AcquiredAt: e.AcquiredAt,
	}, "")
	if err != nil {
		return errors.Wrap(err, "build insert roster entry query")
	}
	if _, err := conn(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, "") {
			return errors.Wrapf(err, "player %s already rostered in league %s", e.PlayerID, e.LeagueID)
		}
		return errors.Wrap(err, "insert roster entry")
	}
	return nil
}

func (r *RosterRepository) ListByTeam(ctx context.Context, teamID string) ([]roster.Entry, error) {
	return r.list(ctx, "list roster by team", qb.Eq("team_public_id", teamID))
}

func (r *RosterRepository) ListByLeague(ctx context.Context, leagueID string) ([]roster.Entry, error) {
	return r.list(ctx, "list roster by league", qb.Eq("league_public_id", leagueID))
}

func (r *RosterRepository) list(ctx context.Context, op string, condition qb.Condition) ([]roster.Entry, error) {
	query, args, err := qb.Select("*").From("roster_entries").
		Where(condition).
		OrderBy("acquired_at", "id").
		ToSQL()
	if err != nil {
		return nil, errors.Wrapf(err, "build %s query", op)
	}

	var rows []rosterEntryTableModel
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, op)
	}

	out := make([]roster.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, rosterEntryFromRow(row))
	}
	return out, nil
}

func (r *RosterRepository) DeleteByTeam(ctx context.Context, teamID string) error {
	return r.delete(ctx, "delete roster by team", qb.Eq("team_public_id", teamID))
}

func (r *RosterRepository) DeleteByLeague(ctx context.Context, leagueID string) error {
	return r.delete(ctx, "delete roster by league", qb.Eq("league_public_id", leagueID))
}

func (r *RosterRepository) delete(ctx context.Context, op string, condition qb.Condition) error {
	query, args, err := qb.DeleteFrom("roster_entries").Where(condition).ToSQL()
	if err != nil {
		return errors.Wrapf(err, "build %s query", op)
	}
	if _, err := conn(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, op)
	}
	return nil
}
