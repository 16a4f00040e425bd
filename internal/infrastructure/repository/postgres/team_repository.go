package postgres

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/draft-league/internal/domain/team"
	qb "github.com/riskibarqy/draft-league/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) error {
	createdAt := t.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	query, args, err := qb.InsertModel("league_teams", teamInsertModel{
		PublicID:    t.ID,
		LeagueID:    t.LeagueID,
		OwnerUserID: nullString(t.OwnerUserID),
		Name:        t.Name,
		Claimed:     t.Claimed,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}, "")
	if err != nil {
		return errors.Wrap(err, "build insert team query")
	}

	if _, err := conn(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "insert team")
	}
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	return r.getOne(ctx, "get team by id", qb.Eq("public_id", teamID))
}

func (r *TeamRepository) GetByOwner(ctx context.Context, leagueID, userID string) (team.Team, bool, error) {
	return r.getOne(ctx, "get team by owner",
		qb.Eq("league_public_id", leagueID),
		qb.Eq("owner_user_id", userID),
	)
}

func (r *TeamRepository) getOne(ctx context.Context, op string, conditions ...qb.Condition) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("league_teams").Where(conditions...).ToSQL()
	if err != nil {
		return team.Team{}, false, errors.Wrapf(err, "build %s query", op)
	}

	var row teamTableModel
	if err := conn(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, errors.Wrap(err, op)
	}
	return teamFromRow(row), true, nil
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID string) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("league_teams").
		Where(qb.Eq("league_public_id", leagueID)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build select teams by league query")
	}

	var rows []teamTableModel
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select teams by league")
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func (r *TeamRepository) CountClaimed(ctx context.Context, leagueID string) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From("league_teams").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("claimed", true),
		).
		ToSQL()
	if err != nil {
		return 0, errors.Wrap(err, "build count claimed teams query")
	}

	var count int
	if err := conn(ctx, r.db).GetContext(ctx, &count, query, args...); err != nil {
		return 0, errors.Wrap(err, "count claimed teams")
	}
	return count, nil
}

func (r *TeamRepository) UpdateRecord(ctx context.Context, teamID string, record team.Record) error {
	query, args, err := qb.Update("league_teams").
		Set("wins", record.Wins).
		Set("losses", record.Losses).
		Set("ties", record.Ties).
		Set("points_for", record.PointsFor).
		Set("points_against", record.PointsAgainst).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", teamID)).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build update team record query")
	}

	result, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "update team record")
	}
	ok, err := affectedOne(result, "update team record")
	if err != nil {
		return err
	}
	if !ok {
		return errors.Newf("update team record: team %s not found", teamID)
	}
	return nil
}

func (r *TeamRepository) ResetRecords(ctx context.Context, leagueID string) error {
	query, args, err := qb.Update("league_teams").
		Set("wins", 0).
		Set("losses", 0).
		Set("ties", 0).
		Set("points_for", 0).
		Set("points_against", 0).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("league_public_id", leagueID)).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build reset team records query")
	}
	if _, err := conn(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "reset team records")
	}
	return nil
}

// Delete cascades to the team's picks, matchups and roster entries.
func (r *TeamRepository) Delete(ctx context.Context, teamID string) error {
	query, args, err := qb.DeleteFrom("league_teams").
		Where(qb.Eq("public_id", teamID)).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build delete team query")
	}
	if _, err := conn(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "delete team")
	}
	return nil
}
