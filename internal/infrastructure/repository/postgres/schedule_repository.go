package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/draft-league/internal/domain/schedule"
	qb "github.com/riskibarqy/draft-league/internal/platform/querybuilder"
)

type ScheduleRepository struct {
	db *sqlx.DB
}

func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) InsertWeeks(ctx context.Context, weeks []schedule.Week) error {
	if len(weeks) == 0 {
		return nil
	}

	rows := make([]weekInsertModel, 0, len(weeks))
	for _, w := range weeks {
		rows = append(rows, weekInsertModel{
			PublicID:   w.ID,
			LeagueID:   w.LeagueID,
			Number:     w.Number,
			Label:      w.Label,
			StartsAt:   nullTime(w.StartsAt),
			IsComplete: w.Completed,
		})
	}
	query, args, err := qb.InsertModels("league_weeks", rows, "")
	if err != nil {
		return errors.Wrap(err, "build insert weeks query")
	}
	if _, err := conn(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "insert weeks")
	}
	return nil
}

func (r *ScheduleRepository) InsertMatchups(ctx context.Context, matchups []schedule.Matchup) error {
	if len(matchups) == 0 {
		return nil
	}

	rows := make([]matchupInsertModel, 0, len(matchups))
	for _, m := range matchups {
		rows = append(rows, matchupInsertModel{
			PublicID:   m.ID,
			LeagueID:   m.LeagueID,
			WeekID:     m.WeekID,
			WeekNumber: m.WeekNumber,
			HomeTeamID: m.HomeTeamID,
			AwayTeamID: m.AwayTeamID,
			HomeScore:  m.HomeScore,
			AwayScore:  m.AwayScore,
		})
	}
	query, args, err := qb.InsertModels("league_matchups", rows, "")
	if err != nil {
		return errors.Wrap(err, "build insert matchups query")
	}
	if _, err := conn(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "insert matchups")
	}
	return nil
}

func (r *ScheduleRepository) ListWeeks(ctx context.Context, leagueID string) ([]schedule.Week, error) {
	query, args, err := qb.Select("*").From("league_weeks").
		Where(qb.Eq("league_public_id", leagueID)).
		OrderBy("number").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build list weeks query")
	}

	var rows []weekTableModel
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "list weeks")
	}

	out := make([]schedule.Week, 0, len(rows))
	for _, row := range rows {
		out = append(out, weekFromRow(row))
	}
	return out, nil
}

func (r *ScheduleRepository) CountWeeks(ctx context.Context, leagueID string) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From("league_weeks").
		Where(qb.Eq("league_public_id", leagueID)).
		ToSQL()
	if err != nil {
		return 0, errors.Wrap(err, "build count weeks query")
	}

	var count int
	if err := conn(ctx, r.db).GetContext(ctx, &count, query, args...); err != nil {
		return 0, errors.Wrap(err, "count weeks")
	}
	return count, nil
}

func (r *ScheduleRepository) ListMatchups(ctx context.Context, leagueID string) ([]schedule.Matchup, error) {
	return r.listMatchups(ctx, "list matchups", qb.Eq("league_public_id", leagueID))
}

func (r *ScheduleRepository) ListMatchupsByWeek(ctx context.Context, leagueID string, weekNumber int) ([]schedule.Matchup, error) {
	return r.listMatchups(ctx, "list matchups by week",
		qb.Eq("league_public_id", leagueID),
		qb.Eq("week_number", weekNumber),
	)
}

func (r *ScheduleRepository) listMatchups(ctx context.Context, op string, conditions ...qb.Condition) ([]schedule.Matchup, error) {
	query, args, err := qb.Select("*").From("league_matchups").
		Where(conditions...).
		OrderBy("week_number", "id").
		ToSQL()
	if err != nil {
		return nil, errors.Wrapf(err, "build %s query", op)
	}

	var rows []matchupTableModel
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, op)
	}

	out := make([]schedule.Matchup, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchupFromRow(row))
	}
	return out, nil
}

func (r *ScheduleRepository) GetMatchup(ctx context.Context, matchupID string) (schedule.Matchup, bool, error) {
	query, args, err := qb.Select("*").From("league_matchups").
		Where(qb.Eq("public_id", matchupID)).
		ToSQL()
	if err != nil {
		return schedule.Matchup{}, false, errors.Wrap(err, "build get matchup query")
	}

	var row matchupTableModel
	if err := conn(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return schedule.Matchup{}, false, nil
		}
		return schedule.Matchup{}, false, errors.Wrap(err, "get matchup")
	}
	return matchupFromRow(row), true, nil
}

func (r *ScheduleRepository) UpdateMatchupScore(ctx context.Context, matchupID string, home, away float64) error {
	query, args, err := qb.Update("league_matchups").
		Set("home_score", home).
		Set("away_score", away).
		Where(qb.Eq("public_id", matchupID)).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build update matchup score query")
	}

	result, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "update matchup score")
	}
	ok, err := affectedOne(result, "update matchup score")
	if err != nil {
		return err
	}
	if !ok {
		return errors.Newf("update matchup score: matchup %s not found", matchupID)
	}
	return nil
}

func (r *ScheduleRepository) MarkWeekComplete(ctx context.Context, leagueID string, weekNumber int) (bool, error) {
	query, args, err := qb.Update("league_weeks").
		Set("is_complete", true).
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("number", weekNumber),
		).
		ToSQL()
	if err != nil {
		return false, errors.Wrap(err, "build mark week complete query")
	}

	result, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return false, errors.Wrap(err, "mark week complete")
	}
	return affectedOne(result, "mark week complete")
}

func (r *ScheduleRepository) DeleteByLeague(ctx context.Context, leagueID string) error {
	for _, table := range []string{"league_matchups", "league_weeks"} {
		query, args, err := qb.DeleteFrom(table).
			Where(qb.Eq("league_public_id", leagueID)).
			ToSQL()
		if err != nil {
			return errors.Wrapf(err, "build delete %s query", table)
		}
		if _, err := conn(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
			return errors.Wrapf(err, "delete %s", table)
		}
	}
	return nil
}
