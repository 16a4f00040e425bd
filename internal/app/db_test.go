package app

import (
	"strings"
	"testing"
)

func TestNormalizeDBURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		disable bool
		want    string
	}{
		{
			name:    "adds flag",
			in:      "postgres://u:p@localhost:5432/league?sslmode=disable",
			disable: true,
			want:    "postgres://u:p@localhost:5432/league?disable_prepared_binary_result=yes&sslmode=disable",
		},
		{
			name:    "keeps explicit value",
			in:      "postgres://u:p@localhost:5432/league?disable_prepared_binary_result=no",
			disable: true,
			want:    "postgres://u:p@localhost:5432/league?disable_prepared_binary_result=no",
		},
		{
			name:    "toggle off",
			in:      "postgres://u:p@localhost:5432/league",
			disable: false,
			want:    "postgres://u:p@localhost:5432/league",
		},
		{
			name:    "key value dsn untouched",
			in:      "host=localhost dbname=league",
			disable: true,
			want:    "host=localhost dbname=league",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := normalizeDBURL(tc.in, tc.disable); got != tc.want {
				t.Fatalf("normalizeDBURL(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestDBNameFromURL(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"postgres://u:p@localhost:5432/draft_league?sslmode=disable": "draft_league",
		"postgres://u:p@localhost:5432":                              "",
		"host=localhost dbname='draft_league' sslmode=disable":       "draft_league",
		"host=localhost":                                             "",
	}
	for in, want := range cases {
		if got := dbNameFromURL(in); got != want {
			t.Fatalf("dbNameFromURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatDBQueryForTrace(t *testing.T) {
	t.Parallel()

	got := formatDBQueryForTrace("  SELECT *\n\tFROM leagues\n WHERE join_code = 'AB12CD' AND name = 'it''s'  ")
	want := "SELECT * FROM leagues WHERE join_code = '?' AND name = '?'"
	if got != want {
		t.Fatalf("unexpected formatted query:\n got %q\nwant %q", got, want)
	}

	long := "SELECT " + strings.Repeat("x, ", 400) + "y FROM players"
	got = formatDBQueryForTrace(long)
	if len(got) != maxTracedQueryLength+len("...") || !strings.HasSuffix(got, "...") {
		t.Fatalf("expected truncated query, got length %d", len(got))
	}

	if got := formatDBQueryForTrace("   "); got != "" {
		t.Fatalf("expected empty query, got %q", got)
	}
}
