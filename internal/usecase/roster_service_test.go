package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/draft-league/internal/domain/player"
	"github.com/riskibarqy/draft-league/internal/domain/roster"
)

func TestRosterService_TeamRoster_AfterAutoDraft(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, testPlayers(40))
	ctx := context.Background()
	created := env.createLeague(t, "owner-1", 2)
	env.join(t, created.League, "user-2")
	if _, err := env.drafts.InitializeDraft(ctx, "owner-1", created.League.ID); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := env.drafts.AutoCompleteDraft(ctx, "owner-1", created.League.ID); err != nil {
		t.Fatalf("auto complete: %v", err)
	}

	out, err := env.rosters.TeamRoster(ctx, "user-2", created.League.ID, created.Team.ID)
	if err != nil {
		t.Fatalf("team roster: %v", err)
	}
	if got := len(out.Starters) + len(out.Bench); got != 15 {
		t.Fatalf("expected 15 rostered players, got %d", got)
	}
	if len(out.Starters) > len(roster.StartingSlots) {
		t.Fatalf("too many starters: %d", len(out.Starters))
	}

	used := map[roster.Slot]bool{}
	for _, s := range out.Starters {
		if !s.Entry.Slot.IsStarter() || used[s.Entry.Slot] {
			t.Fatalf("bad starter slot %s", s.Entry.Slot)
		}
		used[s.Entry.Slot] = true
		if s.Player.ID != s.Entry.PlayerID {
			t.Fatalf("starter missing player details: %+v", s)
		}
		if !s.Entry.Slot.Accepts(s.Player.Position) {
			t.Fatalf("slot %s does not accept %s", s.Entry.Slot, s.Player.Position)
		}
	}
	for _, s := range out.Bench {
		if s.Entry.Slot != roster.SlotBench {
			t.Fatalf("expected bench slot, got %s", s.Entry.Slot)
		}
	}
}

func TestRosterService_TeamRoster_ForeignTeam(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	ctx := context.Background()
	first := env.createLeague(t, "owner-1", 2)
	second := env.createLeague(t, "owner-2", 2)

	if _, err := env.rosters.TeamRoster(ctx, "owner-1", first.League.ID, second.Team.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected team from another league to be not found, got %v", err)
	}
	if _, err := env.rosters.TeamRoster(ctx, "owner-2", first.League.ID, first.Team.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected private league roster to be hidden, got %v", err)
	}
}

func TestRosterService_PlayerPool(t *testing.T) {
	t.Parallel()

	players := testPlayers(24)
	players[8].Active = false // pl-009, a QB
	env := newTestEnv(t, players)
	ctx := context.Background()
	created := env.createLeague(t, "owner-1", 2)
	env.join(t, created.League, "user-2")
	if _, err := env.drafts.InitializeDraft(ctx, "owner-1", created.League.ID); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := env.drafts.MakeDraftPick(ctx, MakeDraftPickInput{UserID: "owner-1", LeagueID: created.League.ID, PlayerID: "pl-001"}); err != nil {
		t.Fatalf("pick: %v", err)
	}

	pool := func(in PlayerPoolInput) []PoolPlayer {
		t.Helper()
		in.UserID = "user-2"
		in.LeagueID = created.League.ID
		out, err := env.rosters.PlayerPool(ctx, in)
		if err != nil {
			t.Fatalf("player pool: %v", err)
		}
		return out
	}

	qbs := pool(PlayerPoolInput{Position: "qb"})
	if len(qbs) != 2 {
		t.Fatalf("expected two active QBs, got %d", len(qbs))
	}
	for _, p := range qbs {
		if p.Player.Position != player.PositionQB {
			t.Fatalf("expected only QBs, got %s", p.Player.Position)
		}
	}
	if qbs[0].Player.ID != "pl-001" || qbs[0].Available() || qbs[0].OwnerTeamID != created.Team.ID || qbs[0].OwnerTeamName != "owner-1 FC" {
		t.Fatalf("expected drafted QB annotated with owner, got %+v", qbs[0])
	}
	if !qbs[1].Available() {
		t.Fatalf("expected undrafted QB to be available")
	}

	available := pool(PlayerPoolInput{Position: "QB", AvailableOnly: true})
	if len(available) != 1 || available[0].Player.ID != "pl-017" {
		t.Fatalf("expected only pl-017 available, got %+v", available)
	}

	page := pool(PlayerPoolInput{Limit: 5, Offset: 1})
	if len(page) != 5 || page[0].Player.ID != "pl-002" {
		t.Fatalf("unexpected page: %+v", page)
	}
	for _, p := range page {
		if !p.Player.Active {
			t.Fatalf("inactive player listed: %s", p.Player.ID)
		}
	}

	// Player 020 through Player 024.
	if search := pool(PlayerPoolInput{Search: "player 02"}); len(search) != 5 {
		t.Fatalf("expected five search hits, got %d", len(search))
	}

	if _, err := env.rosters.PlayerPool(ctx, PlayerPoolInput{UserID: "user-2", LeagueID: created.League.ID, Position: "LB"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected unknown position to be invalid, got %v", err)
	}
}
