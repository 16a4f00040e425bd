package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/draft-league/internal/domain/team"
)

func TestStandingsService_LeagueOverview(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, testPlayers(10))
	ctx := context.Background()
	l := fourTeamLeague(t, env)

	before, err := env.standings.LeagueOverview(ctx, "user-2", l.ID)
	if err != nil {
		t.Fatalf("overview before start: %v", err)
	}
	if before.CurrentWeek != 0 || before.Week != nil || len(before.Matchups) != 0 {
		t.Fatalf("expected no current week before start, got %+v", before)
	}
	if len(before.TopStandings) != 4 || len(before.TeamNames) != 4 {
		t.Fatalf("expected four teams in the overview, got %d/%d", len(before.TopStandings), len(before.TeamNames))
	}

	if _, err := env.schedules.StartLeague(ctx, "owner-1", l.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	now, err := env.standings.LeagueOverview(ctx, "user-2", l.ID)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if now.CurrentWeek != 1 || now.Week == nil || now.Week.Number != 1 || len(now.Matchups) != 2 {
		t.Fatalf("expected week 1 with two games, got week=%d matchups=%d", now.CurrentWeek, len(now.Matchups))
	}

	env.clock.Advance(8 * 24 * time.Hour)
	later, err := env.standings.LeagueOverview(ctx, "user-2", l.ID)
	if err != nil {
		t.Fatalf("overview later: %v", err)
	}
	if later.CurrentWeek != 2 {
		t.Fatalf("expected week 2 after eight days, got %d", later.CurrentWeek)
	}
	for _, m := range later.Matchups {
		if m.WeekNumber != 2 {
			t.Fatalf("expected week 2 matchups, got %+v", m)
		}
	}

	if _, err := env.standings.LeagueOverview(ctx, "stranger", l.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected private league to hide from strangers, got %v", err)
	}
}

func TestStandingsService_TopStandingsCapsAtFour(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	ctx := context.Background()
	l := env.createLeague(t, "owner-1", 6).League
	for i := 0; i < 5; i++ {
		if _, err := env.leagues.AddPlaceholderTeam(ctx, "owner-1", l.ID); err != nil {
			t.Fatalf("add bot: %v", err)
		}
	}

	out, err := env.standings.LeagueOverview(ctx, "owner-1", l.ID)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if len(out.TopStandings) != 4 {
		t.Fatalf("expected top four, got %d", len(out.TopStandings))
	}
	if len(out.TeamNames) != 6 {
		t.Fatalf("expected every team name, got %d", len(out.TeamNames))
	}
}

func TestStandingsService_RecomputeRecords(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, testPlayers(10))
	ctx := context.Background()
	l := startedLeague(t, env)

	week1, _ := env.repos.Schedule.ListMatchupsByWeek(ctx, l.ID, 1)
	for _, m := range week1 {
		if _, err := env.schedules.RecordMatchupScore(ctx, RecordMatchupScoreInput{
			UserID: "owner-1", LeagueID: l.ID, MatchupID: m.ID, HomeScore: 100, AwayScore: 50,
		}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	if err := env.schedules.CompleteWeek(ctx, "owner-1", l.ID, 1); err != nil {
		t.Fatalf("complete: %v", err)
	}

	winner := week1[0].HomeTeamID
	if err := env.repos.Teams.UpdateRecord(ctx, winner, team.Record{Wins: 9, PointsFor: 999}); err != nil {
		t.Fatalf("corrupt record: %v", err)
	}

	if _, err := env.standings.RecomputeRecords(ctx, "user-2", l.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected member recompute to be refused, got %v", err)
	}
	updated, err := env.standings.RecomputeRecords(ctx, "owner-1", l.ID)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if updated != 4 {
		t.Fatalf("expected four teams rewritten, got %d", updated)
	}

	got, _, _ := env.repos.Teams.GetByID(ctx, winner)
	if got.Wins != 1 || got.PointsFor != 100 || got.PointsAgainst != 50 {
		t.Fatalf("expected record rebuilt from week 1, got %+v", got.Record)
	}

	// Rebuilding twice gives the same answer.
	if _, err := env.standings.RecomputeRecords(ctx, "owner-1", l.ID); err != nil {
		t.Fatalf("second recompute: %v", err)
	}
	again, _, _ := env.repos.Teams.GetByID(ctx, winner)
	if again.Record != got.Record {
		t.Fatalf("expected idempotent rebuild, got %+v vs %+v", again.Record, got.Record)
	}
}

// limitedPool runs tasks on their own goroutines and refuses any submission
// past accept.
type limitedPool struct {
	accept    int
	submitted int
}

func (p *limitedPool) Submit(task func()) error {
	if p.submitted == p.accept {
		return errors.New("pool overloaded")
	}
	p.submitted++
	go func() {
		time.Sleep(20 * time.Millisecond)
		task()
	}()
	return nil
}

func TestSubmitAll_WaitsForAcceptedTasksOnRefusal(t *testing.T) {
	t.Parallel()

	var done atomic.Int32
	tasks := make([]func(), 5)
	for i := range tasks {
		tasks[i] = func() { done.Add(1) }
	}

	pool := &limitedPool{accept: 3}
	if err := submitAll(pool, tasks); err == nil {
		t.Fatalf("expected refused submission to be reported")
	}
	if got := done.Load(); got != 3 {
		t.Fatalf("expected the 3 accepted tasks to finish before return, got %d", got)
	}

	done.Store(0)
	if err := submitAll(&limitedPool{accept: len(tasks)}, tasks); err != nil {
		t.Fatalf("submit all: %v", err)
	}
	if got := done.Load(); got != int32(len(tasks)) {
		t.Fatalf("expected %d tasks run, got %d", len(tasks), got)
	}
}
