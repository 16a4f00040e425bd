package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/draft-league/internal/domain/draft"
	qb "github.com/riskibarqy/draft-league/internal/platform/querybuilder"
)

const draftedPlayerConstraint = "draft_picks_league_player_key"

type DraftRepository struct {
	db *sqlx.DB
}

func NewDraftRepository(db *sqlx.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

func (r *DraftRepository) InsertBoard(ctx context.Context, picks []draft.Pick) error {
	if len(picks) == 0 {
		return nil
	}

	rows := make([]draftPickInsertModel, 0, len(picks))
	for _, p := range picks {
		rows = append(rows, draftPickInsertModel{
			LeagueID:    p.LeagueID,
			Overall:     p.Overall,
			Round:       p.Round,
			PickInRound: p.PickInRound,
			TeamID:      p.TeamID,
		})
	}
	query, args, err := qb.InsertModels("draft_picks", rows, "")
	if err != nil {
		return errors.Wrap(err, "build insert draft board query")
	}
	if _, err := conn(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "insert draft board")
	}
	return nil
}

func (r *DraftRepository) DeleteByLeague(ctx context.Context, leagueID string) error {
	query, args, err := qb.DeleteFrom("draft_picks").
		Where(qb.Eq("league_public_id", leagueID)).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build delete draft picks query")
	}
	if _, err := conn(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "delete draft picks")
	}
	return nil
}

func (r *DraftRepository) ListByLeague(ctx context.Context, leagueID string) ([]draft.Pick, error) {
	query, args, err := qb.Select(draftPickSelectColumns...).From("draft_picks").
		Where(qb.Eq("league_public_id", leagueID)).
		OrderBy("overall").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build list draft picks query")
	}

	var rows []draftPickTableModel
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "list draft picks")
	}

	out := make([]draft.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, draftPickFromRow(row))
	}
	return out, nil
}

func (r *DraftRepository) GetByOverall(ctx context.Context, leagueID string, overall int) (draft.Pick, bool, error) {
	query, args, err := qb.Select(draftPickSelectColumns...).From("draft_picks").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("overall", overall),
		).
		ToSQL()
	if err != nil {
		return draft.Pick{}, false, errors.Wrap(err, "build get draft pick query")
	}

	var row draftPickTableModel
	if err := conn(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return draft.Pick{}, false, nil
		}
		return draft.Pick{}, false, errors.Wrap(err, "get draft pick")
	}
	return draftPickFromRow(row), true, nil
}

func (r *DraftRepository) CountMade(ctx context.Context, leagueID string) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From("draft_picks").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.NotNull("player_public_id"),
		).
		ToSQL()
	if err != nil {
		return 0, errors.Wrap(err, "build count made picks query")
	}

	var count int
	if err := conn(ctx, r.db).GetContext(ctx, &count, query, args...); err != nil {
		return 0, errors.Wrap(err, "count made picks")
	}
	return count, nil
}

func (r *DraftRepository) IsPlayerDrafted(ctx context.Context, leagueID, playerID string) (bool, error) {
	query, args, err := qb.Select("COUNT(1)").From("draft_picks").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("player_public_id", playerID),
		).
		ToSQL()
	if err != nil {
		return false, errors.Wrap(err, "build drafted player query")
	}

	var count int
	if err := conn(ctx, r.db).GetContext(ctx, &count, query, args...); err != nil {
		return false, errors.Wrap(err, "check drafted player")
	}
	return count > 0, nil
}

func (r *DraftRepository) ListDraftedPlayerIDs(ctx context.Context, leagueID string) ([]string, error) {
	query, args, err := qb.Select("player_public_id").From("draft_picks").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.NotNull("player_public_id"),
		).
		OrderBy("overall").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build list drafted players query")
	}

	var ids []string
	if err := conn(ctx, r.db).SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, errors.Wrap(err, "list drafted players")
	}
	return ids, nil
}

// Assign is the pick compare-and-set: the row only changes while it is
// empty and its overall number is still the league's current pick.
func (r *DraftRepository) Assign(ctx context.Context, a draft.Assignment) (bool, error) {
	query, args, err := qb.Update("draft_picks").
		Set("player_public_id", a.PlayerID).
		Set("picked_by", nullString(a.PickedBy)).
		Set("authority", string(a.Authority)).
		Set("picked_at", a.PickedAt).
		Where(
			qb.Eq("league_public_id", a.LeagueID),
			qb.Eq("overall", a.Overall),
			qb.IsNull("player_public_id"),
			qb.Expr("overall = (SELECT current_pick FROM leagues WHERE public_id = ?)", a.LeagueID),
		).
		ToSQL()
	if err != nil {
		return false, errors.Wrap(err, "build assign draft pick query")
	}

	result, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, draftedPlayerConstraint) {
			return false, errors.Wrapf(draft.ErrPlayerAlreadyDrafted, "assign pick %d", a.Overall)
		}
		return false, errors.Wrap(err, "assign draft pick")
	}
	return affectedOne(result, "assign draft pick")
}
