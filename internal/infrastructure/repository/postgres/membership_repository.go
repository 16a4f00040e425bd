package postgres

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/draft-league/internal/domain/membership"
	qb "github.com/riskibarqy/draft-league/internal/platform/querybuilder"
)

type MembershipRepository struct {
	db *sqlx.DB
}

func NewMembershipRepository(db *sqlx.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) Insert(ctx context.Context, m membership.Membership) error {
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now().UTC()
	}
	query, args, err := qb.InsertInto("league_memberships").
		Columns("league_public_id", "user_id", "role", "joined_at").
		Values(m.LeagueID, m.UserID, string(m.Role), m.JoinedAt).
		Suffix("ON CONFLICT (league_public_id, user_id) DO NOTHING").
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build insert membership query")
	}
	if _, err := conn(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "insert membership")
	}
	return nil
}

func (r *MembershipRepository) Get(ctx context.Context, leagueID, userID string) (membership.Membership, bool, error) {
	query, args, err := qb.Select("league_public_id", "user_id", "role", "joined_at").
		From("league_memberships").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("user_id", userID),
		).
		ToSQL()
	if err != nil {
		return membership.Membership{}, false, errors.Wrap(err, "build get membership query")
	}

	var row membershipTableModel
	if err := conn(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return membership.Membership{}, false, nil
		}
		return membership.Membership{}, false, errors.Wrap(err, "get membership")
	}
	return membershipFromRow(row), true, nil
}

func (r *MembershipRepository) ListByLeague(ctx context.Context, leagueID string) ([]membership.Membership, error) {
	query, args, err := qb.Select("league_public_id", "user_id", "role", "joined_at").
		From("league_memberships").
		Where(qb.Eq("league_public_id", leagueID)).
		OrderBy("joined_at", "user_id").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build list memberships query")
	}

	var rows []membershipTableModel
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "list memberships")
	}

	out := make([]membership.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, membershipFromRow(row))
	}
	return out, nil
}

func (r *MembershipRepository) UpdateRole(ctx context.Context, leagueID, userID string, role membership.Role) error {
	query, args, err := qb.Update("league_memberships").
		Set("role", string(role)).
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("user_id", userID),
		).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build update membership role query")
	}

	result, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "update membership role")
	}
	ok, err := affectedOne(result, "update membership role")
	if err != nil {
		return err
	}
	if !ok {
		return errors.Newf("update membership role: %s is not in league %s", userID, leagueID)
	}
	return nil
}

func (r *MembershipRepository) Delete(ctx context.Context, leagueID, userID string) error {
	query, args, err := qb.DeleteFrom("league_memberships").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("user_id", userID),
		).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build delete membership query")
	}
	if _, err := conn(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "delete membership")
	}
	return nil
}
