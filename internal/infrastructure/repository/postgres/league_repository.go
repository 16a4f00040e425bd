package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/draft-league/internal/domain/league"
	qb "github.com/riskibarqy/draft-league/internal/platform/querybuilder"
)

const activeJoinCodeConstraint = "leagues_active_join_code_key"

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) Create(ctx context.Context, l league.League) error {
	query, args, err := qb.InsertModel("leagues", leagueToInsertModel(l), "")
	if err != nil {
		return errors.Wrap(err, "build insert league query")
	}

	if _, err := conn(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, activeJoinCodeConstraint) {
			return errors.Wrapf(league.ErrDuplicateJoinCode, "insert league %s", l.ID)
		}
		return errors.Wrap(err, "insert league")
	}
	return nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	return r.getOne(ctx, "get league by id", false, qb.Eq("l.public_id", leagueID))
}

// LockByID takes a row lock; callers must be inside WithinTx for the lock
// to outlive the statement.
func (r *LeagueRepository) LockByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	return r.getOne(ctx, "lock league by id", true, qb.Eq("l.public_id", leagueID))
}

func (r *LeagueRepository) GetActiveByJoinCode(ctx context.Context, code string) (league.League, bool, error) {
	return r.getOne(ctx, "get league by join code", false,
		qb.Eq("l.join_code", code),
		qb.Eq("l.status", string(league.StatusActive)),
	)
}

func (r *LeagueRepository) getOne(ctx context.Context, op string, forUpdate bool, conditions ...qb.Condition) (league.League, bool, error) {
	builder := qb.Select(leagueSelectColumns...).From("leagues l").Where(conditions...)
	if forUpdate {
		builder = builder.ForUpdate()
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return league.League{}, false, errors.Wrapf(err, "build %s query", op)
	}

	var row leagueTableModel
	if err := conn(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, errors.Wrap(err, op)
	}
	return leagueFromRow(row), true, nil
}

func (r *LeagueRepository) JoinCodeInUse(ctx context.Context, code string) (bool, error) {
	query, args, err := qb.Select("COUNT(1)").From("leagues").
		Where(
			qb.Eq("join_code", code),
			qb.Eq("status", string(league.StatusActive)),
		).
		ToSQL()
	if err != nil {
		return false, errors.Wrap(err, "build join code in use query")
	}

	var count int
	if err := conn(ctx, r.db).GetContext(ctx, &count, query, args...); err != nil {
		return false, errors.Wrap(err, "count leagues by join code")
	}
	return count > 0, nil
}

func (r *LeagueRepository) Update(ctx context.Context, l league.League) error {
	query, args, err := qb.Update("leagues").
		Set("name", l.Name).
		Set("join_code", l.JoinCode).
		Set("max_teams", l.MaxTeams).
		Set("visibility", string(l.Visibility)).
		Set("status", string(l.Status)).
		Set("draft_status", string(l.DraftStatus)).
		Set("current_pick", l.CurrentPick).
		Set("bot_counter", l.BotCounter).
		Set("updated_at", l.UpdatedAt).
		Where(qb.Eq("public_id", l.ID)).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build update league query")
	}

	result, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, activeJoinCodeConstraint) {
			return errors.Wrapf(league.ErrDuplicateJoinCode, "update league %s", l.ID)
		}
		return errors.Wrap(err, "update league")
	}
	ok, err := affectedOne(result, "update league")
	if err != nil {
		return err
	}
	if !ok {
		return errors.Newf("update league: %s not found", l.ID)
	}
	return nil
}

func (r *LeagueRepository) AdvancePick(ctx context.Context, leagueID string, from, to int, status league.DraftStatus) (bool, error) {
	query, args, err := qb.Update("leagues").
		Set("current_pick", to).
		Set("draft_status", string(status)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", leagueID),
			qb.Eq("current_pick", from),
		).
		ToSQL()
	if err != nil {
		return false, errors.Wrap(err, "build advance pick query")
	}

	result, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return false, errors.Wrap(err, "advance pick")
	}
	return affectedOne(result, "advance pick")
}

// Delete relies on ON DELETE CASCADE for members, teams, picks, schedule
// and rosters.
func (r *LeagueRepository) Delete(ctx context.Context, leagueID string) error {
	query, args, err := qb.DeleteFrom("leagues").
		Where(qb.Eq("public_id", leagueID)).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build delete league query")
	}
	if _, err := conn(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "delete league")
	}
	return nil
}

func (r *LeagueRepository) ListByUser(ctx context.Context, userID string) ([]league.League, error) {
	query, args, err := qb.Select(leagueSelectColumns...).
		From("leagues l JOIN league_memberships m ON m.league_public_id = l.public_id").
		Where(qb.Eq("m.user_id", userID)).
		OrderBy("l.created_at", "l.id").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build list leagues by user query")
	}
	return r.selectMany(ctx, "list leagues by user", query, args)
}

func (r *LeagueRepository) ListPublic(ctx context.Context, limit int) ([]league.League, error) {
	query, args, err := qb.Select(leagueSelectColumns...).From("leagues l").
		Where(
			qb.Eq("l.status", string(league.StatusActive)),
			qb.Eq("l.visibility", string(league.VisibilityPublic)),
		).
		OrderBy("l.created_at DESC", "l.id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build list public leagues query")
	}
	return r.selectMany(ctx, "list public leagues", query, args)
}

func (r *LeagueRepository) selectMany(ctx context.Context, op, query string, args []any) ([]league.League, error) {
	var rows []leagueTableModel
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, op)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, leagueFromRow(row))
	}
	return out, nil
}
