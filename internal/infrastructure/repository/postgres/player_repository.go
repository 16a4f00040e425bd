package postgres

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/draft-league/internal/domain/player"
	qb "github.com/riskibarqy/draft-league/internal/platform/querybuilder"
)

// playerOrder puts unranked (rank 0) players after every ranked one.
var playerOrder = []string{"(rank = 0)", "rank", "name", "public_id"}

const playerUpsertBatchSize = 500

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context, filter player.Filter) ([]player.Player, error) {
	conditions := make([]qb.Condition, 0, 4)
	if filter.ActiveOnly {
		conditions = append(conditions, qb.Eq("is_active", true))
	}
	if filter.Position != "" {
		conditions = append(conditions, qb.Eq("position", string(filter.Position)))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		conditions = append(conditions, qb.Expr("name ILIKE ?", "%"+escapeLike(search)+"%"))
	}
	if len(filter.ExcludeIDs) > 0 {
		conditions = append(conditions, qb.Expr("NOT (public_id = ANY(?))", pq.Array(filter.ExcludeIDs)))
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(conditions...).
		OrderBy(playerOrder...).
		Limit(filter.Limit).
		Offset(filter.Offset).
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build list players query")
	}
	return r.selectMany(ctx, "list players", query, args)
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Eq("public_id", playerID)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, errors.Wrap(err, "build get player query")
	}

	var row playerTableModel
	if err := conn(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, errors.Wrap(err, "get player")
	}
	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Expr("public_id = ANY(?)", pq.Array(playerIDs))).
		OrderBy(playerOrder...).
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build get players by ids query")
	}
	return r.selectMany(ctx, "get players by ids", query, args)
}

// Upsert writes the catalog in batches keyed by public id.
func (r *PlayerRepository) Upsert(ctx context.Context, players []player.Player) error {
	for start := 0; start < len(players); start += playerUpsertBatchSize {
		end := min(start+playerUpsertBatchSize, len(players))

		builder := qb.InsertInto("players").
			Columns("public_id", "name", "position", "pro_team", "rank", "is_active")
		for _, p := range players[start:end] {
			builder = builder.Values(p.ID, p.Name, string(p.Position), p.ProTeam, p.Rank, p.Active)
		}
		query, args, err := builder.Suffix(`ON CONFLICT (public_id) DO UPDATE SET
name = EXCLUDED.name,
position = EXCLUDED.position,
pro_team = EXCLUDED.pro_team,
rank = EXCLUDED.rank,
is_active = EXCLUDED.is_active,
updated_at = NOW()`).ToSQL()
		if err != nil {
			return errors.Wrap(err, "build upsert players query")
		}
		if _, err := conn(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
			return errors.Wrapf(err, "upsert players %d-%d", start, end)
		}
	}
	return nil
}

func (r *PlayerRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := conn(ctx, r.db).GetContext(ctx, &count, `SELECT COUNT(1) FROM players`); err != nil {
		return 0, errors.Wrap(err, "count players")
	}
	return count, nil
}

func (r *PlayerRepository) selectMany(ctx context.Context, op, query string, args []any) ([]player.Player, error) {
	var rows []playerTableModel
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, op)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

func escapeLike(v string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(v)
}
