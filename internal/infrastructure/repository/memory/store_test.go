package memory

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/draft-league/internal/domain/draft"
	"github.com/riskibarqy/draft-league/internal/domain/league"
	"github.com/riskibarqy/draft-league/internal/domain/membership"
	"github.com/riskibarqy/draft-league/internal/domain/player"
	"github.com/riskibarqy/draft-league/internal/domain/roster"
	"github.com/riskibarqy/draft-league/internal/domain/team"
)

func newTestLeague(id, code string) league.League {
	return league.League{
		ID:          id,
		Name:        "League " + id,
		Season:      2026,
		JoinCode:    code,
		MaxTeams:    4,
		Visibility:  league.VisibilityPrivate,
		Status:      league.StatusActive,
		DraftType:   league.DraftTypeLive,
		DraftStatus: league.DraftStatusPending,
		CreatedBy:   "user-1",
	}
}

func TestWithinTxRollsBackOnError(t *testing.T) {
	store := NewStore(nil)
	leagues := NewLeagueRepository(store)
	ctx := context.Background()

	boom := errors.New("boom")
	err := store.WithinTx(ctx, func(ctx context.Context) error {
		if err := leagues.Create(ctx, newTestLeague("lg-1", "ABC123")); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	if _, exists, _ := leagues.GetByID(ctx, "lg-1"); exists {
		t.Fatalf("expected league insert to be rolled back")
	}
}

func TestWithinTxNestedJoinsOuter(t *testing.T) {
	store := NewStore(nil)
	leagues := NewLeagueRepository(store)
	ctx := context.Background()

	err := store.WithinTx(ctx, func(ctx context.Context) error {
		return store.WithinTx(ctx, func(ctx context.Context) error {
			return leagues.Create(ctx, newTestLeague("lg-1", "ABC123"))
		})
	})
	if err != nil {
		t.Fatalf("nested tx: %v", err)
	}
	if _, exists, _ := leagues.GetByID(ctx, "lg-1"); !exists {
		t.Fatalf("expected league to be committed")
	}
}

func TestJoinCodeUniqueAmongActiveLeaguesOnly(t *testing.T) {
	store := NewStore(nil)
	leagues := NewLeagueRepository(store)
	ctx := context.Background()

	first := newTestLeague("lg-1", "ABC123")
	if err := leagues.Create(ctx, first); err != nil {
		t.Fatalf("create first: %v", err)
	}
	if err := leagues.Create(ctx, newTestLeague("lg-2", "ABC123")); !errors.Is(err, league.ErrDuplicateJoinCode) {
		t.Fatalf("expected duplicate join code, got %v", err)
	}

	first.Status = league.StatusArchived
	first.JoinCode = league.ArchivedJoinCode(first.JoinCode, time.Unix(1700000000, 0))
	if err := leagues.Update(ctx, first); err != nil {
		t.Fatalf("archive first: %v", err)
	}
	if err := leagues.Create(ctx, newTestLeague("lg-2", "ABC123")); err != nil {
		t.Fatalf("expected code to be reusable after archive, got %v", err)
	}
	inUse, _ := leagues.JoinCodeInUse(ctx, "ABC123")
	if !inUse {
		t.Fatalf("expected ABC123 to be in use by lg-2")
	}
}

func TestDraftAssignIsCompareAndSet(t *testing.T) {
	store := NewStore(nil)
	leagues := NewLeagueRepository(store)
	picks := NewDraftRepository(store)
	ctx := context.Background()

	l := newTestLeague("lg-1", "ABC123")
	l.DraftStatus = league.DraftStatusInProgress
	l.CurrentPick = 1
	if err := leagues.Create(ctx, l); err != nil {
		t.Fatalf("create league: %v", err)
	}
	board, err := draft.GenerateSnakeBoard(l.ID, []string{"t1", "t2"}, 2)
	if err != nil {
		t.Fatalf("generate board: %v", err)
	}
	if err := picks.InsertBoard(ctx, board); err != nil {
		t.Fatalf("insert board: %v", err)
	}

	assign := func(overall int, playerID string) (bool, error) {
		return picks.Assign(ctx, draft.Assignment{
			LeagueID:  l.ID,
			Overall:   overall,
			PlayerID:  playerID,
			PickedBy:  "user-1",
			Authority: draft.AuthorityOwner,
			PickedAt:  time.Now(),
		})
	}

	if ok, err := assign(2, "p1"); err != nil || ok {
		t.Fatalf("expected pick 2 to be refused while pick 1 is current, ok=%v err=%v", ok, err)
	}
	if ok, err := assign(1, "p1"); err != nil || !ok {
		t.Fatalf("expected pick 1 to be assigned, ok=%v err=%v", ok, err)
	}
	if ok, err := assign(1, "p2"); err != nil || ok {
		t.Fatalf("expected second write to pick 1 to be refused, ok=%v err=%v", ok, err)
	}

	if ok, _ := leagues.AdvancePick(ctx, l.ID, 1, 2, league.DraftStatusInProgress); !ok {
		t.Fatalf("expected pointer to advance")
	}
	if ok, _ := leagues.AdvancePick(ctx, l.ID, 1, 2, league.DraftStatusInProgress); ok {
		t.Fatalf("expected stale advance to be refused")
	}
	if _, err := assign(2, "p1"); !errors.Is(err, draft.ErrPlayerAlreadyDrafted) {
		t.Fatalf("expected duplicate player error, got %v", err)
	}

	made, _ := picks.CountMade(ctx, l.ID)
	if made != 1 {
		t.Fatalf("expected 1 made pick, got %d", made)
	}
}

func TestLeagueDeleteCascades(t *testing.T) {
	store := NewStore(nil)
	leagues := NewLeagueRepository(store)
	members := NewMembershipRepository(store)
	teams := NewTeamRepository(store)
	rosters := NewRosterRepository(store)
	ctx := context.Background()

	l := newTestLeague("lg-1", "ABC123")
	if err := leagues.Create(ctx, l); err != nil {
		t.Fatalf("create league: %v", err)
	}
	if err := members.Insert(ctx, membership.Membership{LeagueID: l.ID, UserID: "user-1", Role: membership.RoleCommissioner}); err != nil {
		t.Fatalf("insert membership: %v", err)
	}
	if err := teams.Create(ctx, team.Team{ID: "t1", LeagueID: l.ID, OwnerUserID: "user-1", Name: "Alpha", Claimed: true}); err != nil {
		t.Fatalf("create team: %v", err)
	}
	if err := rosters.Insert(ctx, roster.Entry{ID: "r1", LeagueID: l.ID, TeamID: "t1", PlayerID: "p1", Slot: roster.SlotQB}); err != nil {
		t.Fatalf("insert roster: %v", err)
	}

	if err := leagues.Delete(ctx, l.ID); err != nil {
		t.Fatalf("delete league: %v", err)
	}

	if _, exists, _ := members.Get(ctx, l.ID, "user-1"); exists {
		t.Fatalf("expected membership to be deleted")
	}
	if _, exists, _ := teams.GetByID(ctx, "t1"); exists {
		t.Fatalf("expected team to be deleted")
	}
	if entries, _ := rosters.ListByLeague(ctx, l.ID); len(entries) != 0 {
		t.Fatalf("expected roster to be deleted, got %d", len(entries))
	}
}

func TestMembershipInsertIgnoresDuplicates(t *testing.T) {
	store := NewStore(nil)
	leagues := NewLeagueRepository(store)
	members := NewMembershipRepository(store)
	ctx := context.Background()

	if err := leagues.Create(ctx, newTestLeague("lg-1", "ABC123")); err != nil {
		t.Fatalf("create league: %v", err)
	}
	_ = members.Insert(ctx, membership.Membership{LeagueID: "lg-1", UserID: "user-1", Role: membership.RoleCommissioner})
	_ = members.Insert(ctx, membership.Membership{LeagueID: "lg-1", UserID: "user-1", Role: membership.RoleMember})

	m, _, _ := members.Get(ctx, "lg-1", "user-1")
	if m.Role != membership.RoleCommissioner {
		t.Fatalf("expected commissioner row to be kept, got %s", m.Role)
	}
}

func TestPlayerListFiltersAndOrders(t *testing.T) {
	store := NewStore([]player.Player{
		{ID: "p1", Name: "Zed Unranked", Position: player.PositionWR, Active: true},
		{ID: "p2", Name: "Amy Second", Position: player.PositionWR, Rank: 2, Active: true},
		{ID: "p3", Name: "Bo First", Position: player.PositionQB, Rank: 1, Active: true},
		{ID: "p4", Name: "Cy Retired", Position: player.PositionWR, Rank: 3, Active: false},
	})
	players := NewPlayerRepository(store)
	ctx := context.Background()

	all, _ := players.List(ctx, player.Filter{ActiveOnly: true})
	got := make([]string, 0, len(all))
	for _, p := range all {
		got = append(got, p.ID)
	}
	if strings.Join(got, ",") != "p3,p2,p1" {
		t.Fatalf("unexpected order: %v", got)
	}

	wr, _ := players.List(ctx, player.Filter{Position: player.PositionWR, ActiveOnly: true, ExcludeIDs: []string{"p2"}})
	if len(wr) != 1 || wr[0].ID != "p1" {
		t.Fatalf("unexpected filtered players: %+v", wr)
	}

	search, _ := players.List(ctx, player.Filter{Search: "bo f"})
	if len(search) != 1 || search[0].ID != "p3" {
		t.Fatalf("unexpected search result: %+v", search)
	}
}

func TestSeedPlayersLoadsBundledCatalog(t *testing.T) {
	players, err := SeedPlayers()
	if err != nil {
		t.Fatalf("seed players: %v", err)
	}
	if len(players) < 60 {
		t.Fatalf("expected a catalog large enough for a 4-team draft, got %d", len(players))
	}
	positions := map[player.Position]int{}
	for _, p := range players {
		positions[p.Position]++
	}
	for pos := range player.AllPositions {
		if positions[pos] == 0 {
			t.Fatalf("expected at least one %s in catalog", pos)
		}
	}
}

func TestLoadPlayersRejectsBadRows(t *testing.T) {
	_, err := LoadPlayers(strings.NewReader("players:\n  - id: x\n    name: X\n    position: LB\n"))
	if err == nil {
		t.Fatalf("expected invalid position to fail")
	}

	players, err := LoadPlayers(strings.NewReader("players:\n  - id: x\n    name: X\n    position: qb\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !players[0].Active || players[0].Position != player.PositionQB {
		t.Fatalf("unexpected player: %+v", players[0])
	}
}
