package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/draft-league/internal/domain/league"
	"github.com/riskibarqy/draft-league/internal/domain/schedule"
)

func startedLeague(t *testing.T, env *testEnv) league.League {
	t.Helper()

	l := fourTeamLeague(t, env)
	if _, err := env.schedules.StartLeague(context.Background(), "owner-1", l.ID); err != nil {
		t.Fatalf("start league: %v", err)
	}
	return env.league(t, l.ID)
}

func TestScheduleService_StartLeague_WritesSeason(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, testPlayers(10))
	ctx := context.Background()
	l := fourTeamLeague(t, env)

	if _, err := env.schedules.StartLeague(ctx, "user-2", l.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected member start to be refused, got %v", err)
	}

	out, err := env.schedules.StartLeague(ctx, "owner-1", l.ID)
	if err != nil {
		t.Fatalf("start league: %v", err)
	}
	if out.Weeks != schedule.DefaultWeeks || out.Matchups != schedule.DefaultWeeks*2 {
		t.Fatalf("unexpected season size: weeks=%d matchups=%d", out.Weeks, out.Matchups)
	}

	weeks, err := env.schedules.Schedule(ctx, "user-3", l.ID)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	firstWeek := time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC)
	for i, ws := range weeks {
		if ws.Week.Number != i+1 || ws.Week.Label != schedule.WeekLabel(i+1) {
			t.Fatalf("week %d: unexpected number or label %+v", i, ws.Week)
		}
		if want := firstWeek.AddDate(0, 0, 7*i); !ws.Week.StartsAt.Equal(want) {
			t.Fatalf("week %d: starts %s, want %s", i+1, ws.Week.StartsAt, want)
		}
		playing := map[string]int{}
		for _, m := range ws.Matchups {
			playing[m.HomeTeamID]++
			playing[m.AwayTeamID]++
		}
		if len(playing) != 4 {
			t.Fatalf("week %d: expected all four teams to play, got %v", i+1, playing)
		}
		for teamID, games := range playing {
			if games != 1 {
				t.Fatalf("week %d: team %s plays %d games", i+1, teamID, games)
			}
		}
	}

	if _, err := env.schedules.StartLeague(ctx, "owner-1", l.ID); !errors.Is(err, ErrPrecondition) {
		t.Fatalf("expected second start to fail, got %v", err)
	}
	if n, _ := env.repos.Schedule.CountWeeks(ctx, l.ID); n != schedule.DefaultWeeks {
		t.Fatalf("expected schedule to be untouched, got %d weeks", n)
	}
}

func TestScheduleService_StartLeague_KeepsRunningDraft(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, testPlayers(10))
	ctx := context.Background()
	l := fourTeamLeague(t, env)
	if _, err := env.drafts.InitializeDraft(ctx, "owner-1", l.ID); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := env.drafts.MakeDraftPick(ctx, MakeDraftPickInput{UserID: "owner-1", LeagueID: l.ID, PlayerID: "pl-001"}); err != nil {
		t.Fatalf("pick: %v", err)
	}

	out, err := env.schedules.StartLeague(ctx, "owner-1", l.ID)
	if err != nil {
		t.Fatalf("start league: %v", err)
	}
	if out.DraftInitialized {
		t.Fatalf("expected running draft to be left alone")
	}
	if out.League.CurrentPick != 2 {
		t.Fatalf("expected pointer 2, got %d", out.League.CurrentPick)
	}
}

func TestScheduleService_StartLeague_ArchivedLeague(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	ctx := context.Background()
	l := fourTeamLeague(t, env)
	if _, err := env.leagues.ArchiveLeague(ctx, "owner-1", l.ID); err != nil {
		t.Fatalf("archive: %v", err)
	}
	if _, err := env.schedules.StartLeague(ctx, "owner-1", l.ID); !errors.Is(err, ErrPrecondition) {
		t.Fatalf("expected archived league start to fail, got %v", err)
	}
}

func TestScheduleService_RecordScoresAndCompleteWeek(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, testPlayers(10))
	ctx := context.Background()
	l := startedLeague(t, env)

	week1, err := env.repos.Schedule.ListMatchupsByWeek(ctx, l.ID, 1)
	if err != nil || len(week1) != 2 {
		t.Fatalf("week 1 matchups: %v (%d)", err, len(week1))
	}
	win, tie := week1[0], week1[1]

	record := func(m schedule.Matchup, home, away float64) error {
		_, err := env.schedules.RecordMatchupScore(ctx, RecordMatchupScoreInput{
			UserID:    "owner-1",
			LeagueID:  l.ID,
			MatchupID: m.ID,
			HomeScore: home,
			AwayScore: away,
		})
		return err
	}
	if err := record(win, 110.5, 70); err != nil {
		t.Fatalf("record win: %v", err)
	}
	if err := record(tie, 80, 80); err != nil {
		t.Fatalf("record tie: %v", err)
	}
	if err := record(win, -1, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected negative score to be rejected, got %v", err)
	}
	if err := record(schedule.Matchup{ID: "missing"}, 1, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected unknown matchup, got %v", err)
	}

	// Scores alone do not move records until the week is final.
	rows, _ := env.standings.Standings(ctx, "owner-1", l.ID)
	for _, r := range rows {
		if r.Team.GamesPlayed() != 0 {
			t.Fatalf("expected no games before completion, got %+v", r.Team.Record)
		}
	}

	if err := env.schedules.CompleteWeek(ctx, "user-2", l.ID, 1); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected member completion to be refused, got %v", err)
	}
	if err := env.schedules.CompleteWeek(ctx, "owner-1", l.ID, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected unknown week, got %v", err)
	}
	if err := env.schedules.CompleteWeek(ctx, "owner-1", l.ID, 1); err != nil {
		t.Fatalf("complete week: %v", err)
	}

	rows, err = env.standings.Standings(ctx, "owner-1", l.ID)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if rows[0].Team.ID != win.HomeTeamID || rows[0].WinPct != "1.000" || rows[0].Team.PointsFor != 110.5 {
		t.Fatalf("unexpected leader: %+v", rows[0])
	}
	if rows[3].Team.ID != win.AwayTeamID || rows[3].Team.Losses != 1 || rows[3].WinPct != ".000" {
		t.Fatalf("unexpected last place: %+v", rows[3])
	}
	for _, r := range rows[1:3] {
		if r.Team.Ties != 1 || r.WinPct != ".500" {
			t.Fatalf("expected tied teams in the middle, got %+v", r)
		}
	}

	if err := record(win, 1, 2); !errors.Is(err, ErrPrecondition) {
		t.Fatalf("expected final week to reject scores, got %v", err)
	}
}

type failingRebuilder struct{}

func (failingRebuilder) rebuildRecords(context.Context, string) (int, error) {
	return 0, errors.New("records unavailable")
}

func TestScheduleService_CompleteWeek_RollsBackWhenRebuildFails(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, testPlayers(10))
	ctx := context.Background()
	l := startedLeague(t, env)

	env.schedules.records = failingRebuilder{}
	if err := env.schedules.CompleteWeek(ctx, "owner-1", l.ID, 1); err == nil {
		t.Fatalf("expected rebuild failure to surface")
	}

	weeks, err := env.repos.Schedule.ListWeeks(ctx, l.ID)
	if err != nil {
		t.Fatalf("list weeks: %v", err)
	}
	for _, w := range weeks {
		if w.Completed {
			t.Fatalf("week %d left completed after failed rebuild", w.Number)
		}
	}

	env.schedules.records = env.standings
	if err := env.schedules.CompleteWeek(ctx, "owner-1", l.ID, 1); err != nil {
		t.Fatalf("complete week after recovery: %v", err)
	}
}
