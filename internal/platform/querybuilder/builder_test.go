package querybuilder

import (
	"reflect"
	"testing"
)

type sqlBuilder interface {
	ToSQL() (string, []any, error)
}

func TestToSQL(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		builder   sqlBuilder
		wantQuery string
		wantArgs  []any
	}{
		"select with null check and limit": {
			builder: Select("public_id", "name").From("teams").
				Where(Eq("league_public_id", "lg-1"), IsNull("deleted_at")).
				OrderBy("draft_slot").
				Limit(10),
			wantQuery: "SELECT public_id, name FROM teams WHERE league_public_id = $1 AND deleted_at IS NULL ORDER BY draft_slot LIMIT 10",
			wantArgs:  []any{"lg-1"},
		},
		"select paged": {
			builder:   Select("*").From("players").Where(NotNull("rank")).OrderBy("rank", "id").Limit(20).Offset(40),
			wantQuery: "SELECT * FROM players WHERE rank IS NOT NULL ORDER BY rank, id LIMIT 20 OFFSET 40",
		},
		"select for update": {
			builder:   Select("public_id", "current_pick").From("leagues").Where(Eq("public_id", "lg-1")).ForUpdate(),
			wantQuery: "SELECT public_id, current_pick FROM leagues WHERE public_id = $1 FOR UPDATE",
			wantArgs:  []any{"lg-1"},
		},
		"insert returning": {
			builder:   InsertInto("leagues").Columns("public_id", "name").Values("lg-1", "Sunday").Suffix("RETURNING id"),
			wantQuery: "INSERT INTO leagues (public_id, name) VALUES ($1, $2) RETURNING id",
			wantArgs:  []any{"lg-1", "Sunday"},
		},
		"insert two rows": {
			builder:   InsertInto("weeks").Columns("league_public_id", "week").Values("lg-1", 1).Values("lg-1", 2),
			wantQuery: "INSERT INTO weeks (league_public_id, week) VALUES ($1, $2), ($3, $4)",
			wantArgs:  []any{"lg-1", 1, "lg-1", 2},
		},
		"update with expression": {
			builder:   Update("leagues").Set("name", "new").SetExpr("updated_at", "NOW()").Where(Eq("public_id", "lg-1")),
			wantQuery: "UPDATE leagues SET name = $1, updated_at = NOW() WHERE public_id = $2",
			wantArgs:  []any{"new", "lg-1"},
		},
		"update with bound expression": {
			builder:   Update("teams").SetExpr("wins", "wins + ?", 1).Where(Eq("public_id", "t1")),
			wantQuery: "UPDATE teams SET wins = wins + $1 WHERE public_id = $2",
			wantArgs:  []any{1, "t1"},
		},
		"conditional pick assignment": {
			builder: Update("draft_picks").
				Set("player_id", "p-9").
				Where(
					Eq("league_public_id", "lg-1"),
					IsNull("player_id"),
					Expr("overall_pick = (SELECT current_pick FROM leagues WHERE public_id = ?)", "lg-1"),
				),
			wantQuery: "UPDATE draft_picks SET player_id = $1 WHERE league_public_id = $2 AND player_id IS NULL AND overall_pick = (SELECT current_pick FROM leagues WHERE public_id = $3)",
			wantArgs:  []any{"p-9", "lg-1", "lg-1"},
		},
		"delete": {
			builder:   DeleteFrom("matchups").Where(Eq("league_public_id", "lg-1")),
			wantQuery: "DELETE FROM matchups WHERE league_public_id = $1",
			wantArgs:  []any{"lg-1"},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			query, args, err := tc.builder.ToSQL()
			if err != nil {
				t.Fatalf("build query: %v", err)
			}
			if query != tc.wantQuery {
				t.Fatalf("unexpected query:\n got %s\nwant %s", query, tc.wantQuery)
			}
			if len(args) != len(tc.wantArgs) || (len(args) > 0 && !reflect.DeepEqual(args, tc.wantArgs)) {
				t.Fatalf("unexpected args: %#v", args)
			}
		})
	}
}

func TestToSQL_Rejects(t *testing.T) {
	t.Parallel()

	cases := map[string]sqlBuilder{
		"select without columns": Select().From("leagues"),
		"select without table":   Select("id"),
		"insert without rows":    InsertInto("leagues").Columns("id"),
		"insert short row":       InsertInto("leagues").Columns("id", "name").Values("lg-1"),
		"update without sets":    Update("leagues").Where(Eq("id", 1)),
		"unscoped delete":        DeleteFrom("matchups"),
	}
	for name, builder := range cases {
		if _, _, err := builder.ToSQL(); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestExprLeavesUnboundMarkers(t *testing.T) {
	t.Parallel()

	query, args, err := Select("id").From("players").Where(Expr("tags ? 'rookie' AND team = ?")).ToSQL()
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	if query != "SELECT id FROM players WHERE tags ? 'rookie' AND team = ?" || len(args) != 0 {
		t.Fatalf("unexpected query %q args %#v", query, args)
	}
}

func TestInsertModelSkipsUntaggedFields(t *testing.T) {
	t.Parallel()

	type row struct {
		PublicID string `db:"public_id"`
		Name     string `db:"name"`
		internal string
		Skipped  string `db:"-"`
	}

	query, args, err := InsertModel("teams", row{PublicID: "t1", Name: "Alpha", internal: "x", Skipped: "y"}, "ON CONFLICT DO NOTHING")
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}

	want := "INSERT INTO teams (public_id, name) VALUES ($1, $2) ON CONFLICT DO NOTHING"
	if query != want {
		t.Fatalf("unexpected query:\n got %s\nwant %s", query, want)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %#v", args)
	}
}
