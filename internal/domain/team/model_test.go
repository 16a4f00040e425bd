package team

import "testing"

func TestParseBotNumber(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		n  int
		ok bool
	}{
		"CPU Team 3":    {n: 3, ok: true},
		" CPU Team 12 ": {n: 12, ok: true},
		"CPU Team":      {},
		"CPU Team x":    {},
		"CPU Team 0":    {},
		"cpu team 4":    {},
		"Gridiron Gang": {},
	}
	for name, want := range cases {
		n, ok := ParseBotNumber(name)
		if n != want.n || ok != want.ok {
			t.Fatalf("ParseBotNumber(%q)=(%d,%t) want (%d,%t)", name, n, ok, want.n, want.ok)
		}
	}
}

func TestNextBotNumber(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		names   []string
		claimed int
		counter int
		want    int
	}{
		{name: "no bots falls back to claimed count", names: []string{"Alpha", "Bravo"}, claimed: 2, want: 3},
		{name: "highest bot wins", names: []string{"Alpha", "CPU Team 2", "CPU Team 7"}, claimed: 3, want: 8},
		{name: "counter survives deleted bots", names: []string{"Alpha"}, claimed: 1, counter: 5, want: 6},
		{name: "scan beats stale counter", names: []string{"CPU Team 9"}, claimed: 1, counter: 4, want: 10},
	}
	for _, tc := range cases {
		if got := NextBotNumber(tc.names, tc.claimed, tc.counter); got != tc.want {
			t.Fatalf("%s: got %d want %d", tc.name, got, tc.want)
		}
	}
}

func TestBotNameRoundTrip(t *testing.T) {
	t.Parallel()

	n, ok := ParseBotNumber(BotName(4))
	if !ok || n != 4 {
		t.Fatalf("round trip failed: %d %t", n, ok)
	}
}

func TestRecordGamesPlayed(t *testing.T) {
	t.Parallel()

	if got := (Record{Wins: 3, Losses: 1, Ties: 1}).GamesPlayed(); got != 5 {
		t.Fatalf("unexpected games played: %d", got)
	}
}
