package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/draft-league/internal/domain/league"
	"github.com/riskibarqy/draft-league/internal/domain/player"
	"github.com/riskibarqy/draft-league/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/draft-league/internal/platform/id"
	"github.com/riskibarqy/draft-league/internal/platform/logging"
)

var testNow = time.Date(2026, time.October, 16, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	store     *memory.Store
	repos     Repositories
	clock     *clockwork.FakeClock
	members   *MembershipService
	leagues   *LeagueService
	drafts    *DraftService
	schedules *ScheduleService
	standings *StandingsService
	rosters   *RosterService
}

func newTestEnv(t *testing.T, players []player.Player) *testEnv {
	t.Helper()

	store := memory.NewStore(players)
	repos := Repositories{
		Leagues:  memory.NewLeagueRepository(store),
		Members:  memory.NewMembershipRepository(store),
		Teams:    memory.NewTeamRepository(store),
		Players:  memory.NewPlayerRepository(store),
		Picks:    memory.NewDraftRepository(store),
		Schedule: memory.NewScheduleRepository(store),
		Rosters:  memory.NewRosterRepository(store),
	}
	return newTestEnvWithRepos(t, store, repos)
}

func newTestEnvWithRepos(t *testing.T, store *memory.Store, repos Repositories) *testEnv {
	t.Helper()

	if err := repos.Validate(); err != nil {
		t.Fatalf("validate repositories: %v", err)
	}
	logger := logging.NewNop()
	ids := idgen.NewSequenceGenerator("id")
	clock := clockwork.NewFakeClockAt(testNow)

	members := NewMembershipService(repos, store, logger)
	leagues := NewLeagueService(repos, members, store, ids, logger)
	drafts := NewDraftService(repos, members, store, ids, 0, logger)
	standings := NewStandingsService(repos, members, 2, logger)
	schedules := NewScheduleService(repos, members, drafts, standings, store, ids, 0, logger)
	rosters := NewRosterService(repos, members, logger)

	leagues.clock = clock
	drafts.clock = clock
	schedules.clock = clock
	standings.clock = clock

	return &testEnv{
		store:     store,
		repos:     repos,
		clock:     clock,
		members:   members,
		leagues:   leagues,
		drafts:    drafts,
		schedules: schedules,
		standings: standings,
		rosters:   rosters,
	}
}

// testPlayers returns n active players cycling through every position,
// ranked 1..n.
func testPlayers(n int) []player.Player {
	positions := []player.Position{
		player.PositionQB, player.PositionRB, player.PositionRB, player.PositionWR,
		player.PositionWR, player.PositionTE, player.PositionK, player.PositionDEF,
	}
	out := make([]player.Player, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, player.Player{
			ID:       fmt.Sprintf("pl-%03d", i),
			Name:     fmt.Sprintf("Player %03d", i),
			Position: positions[(i-1)%len(positions)],
			ProTeam:  "KC",
			Rank:     i,
			Active:   true,
		})
	}
	return out
}

func (e *testEnv) createLeague(t *testing.T, userID string, maxTeams int) LeagueTeam {
	t.Helper()

	out, err := e.leagues.CreateLeague(context.Background(), CreateLeagueInput{
		UserID:   userID,
		Name:     "Sunday League",
		TeamName: userID + " FC",
		MaxTeams: maxTeams,
	})
	if err != nil {
		t.Fatalf("create league: %v", err)
	}
	return out
}

func (e *testEnv) join(t *testing.T, l league.League, userID string) LeagueTeam {
	t.Helper()

	out, err := e.leagues.JoinLeague(context.Background(), JoinLeagueInput{
		UserID:   userID,
		JoinCode: l.JoinCode,
		TeamName: userID + " FC",
	})
	if err != nil {
		t.Fatalf("join league as %s: %v", userID, err)
	}
	return out
}

func (e *testEnv) league(t *testing.T, leagueID string) league.League {
	t.Helper()

	l, exists, err := e.repos.Leagues.GetByID(context.Background(), leagueID)
	if err != nil || !exists {
		t.Fatalf("get league %s: exists=%v err=%v", leagueID, exists, err)
	}
	return l
}

// sequenceCodes returns a join code generator that replays codes in order.
func sequenceCodes(codes ...string) func() (string, error) {
	i := 0
	return func() (string, error) {
		if i >= len(codes) {
			return codes[len(codes)-1], nil
		}
		code := codes[i]
		i++
		return code, nil
	}
}
