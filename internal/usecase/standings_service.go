package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/jonboulle/clockwork"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/draft-league/internal/domain/league"
	"github.com/riskibarqy/draft-league/internal/domain/schedule"
	"github.com/riskibarqy/draft-league/internal/domain/standings"
	"github.com/riskibarqy/draft-league/internal/domain/team"
	"github.com/riskibarqy/draft-league/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const (
	defaultStandingsWorkers = 4
	overviewTopTeams        = 4
)

type StandingsService struct {
	repos   Repositories
	members *MembershipService
	workers int
	clock   clockwork.Clock
	logger  *logging.Logger
}

func NewStandingsService(repos Repositories, members *MembershipService, workers int, logger *logging.Logger) *StandingsService {
	if workers <= 0 {
		workers = defaultStandingsWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &StandingsService{
		repos:   repos,
		members: members,
		workers: workers,
		clock:   clockwork.NewRealClock(),
		logger:  logger,
	}
}

func (s *StandingsService) Standings(ctx context.Context, userID, leagueID string) ([]standings.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Standings")
	defer span.End()

	l, err := loadLeague(ctx, s.repos.Leagues, leagueID)
	if err != nil {
		return nil, err
	}
	if _, err := s.members.RequireViewer(ctx, l, userID); err != nil {
		return nil, err
	}

	teams, err := s.repos.Teams.ListByLeague(ctx, l.ID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return standings.Build(teams), nil
}

// Overview is the league landing view.
type Overview struct {
	League       league.League
	CurrentWeek  int
	Week         *schedule.Week
	Matchups     []schedule.Matchup
	TopStandings []standings.Row
	TeamNames    map[string]string
}

func (s *StandingsService) LeagueOverview(ctx context.Context, userID, leagueID string) (Overview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.LeagueOverview")
	defer span.End()

	l, err := loadLeague(ctx, s.repos.Leagues, leagueID)
	if err != nil {
		return Overview{}, err
	}
	if _, err := s.members.RequireViewer(ctx, l, userID); err != nil {
		return Overview{}, err
	}

	var (
		teams []team.Team
		weeks []schedule.Week
	)
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		items, err := s.repos.Teams.ListByLeague(ctx, l.ID)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
		teams = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.repos.Schedule.ListWeeks(ctx, l.ID)
		if err != nil {
			return fmt.Errorf("list weeks: %w", err)
		}
		weeks = items
		return nil
	})
	if err := p.Wait(); err != nil {
		return Overview{}, err
	}

	out := Overview{
		League:       l,
		TopStandings: standings.Top(standings.Build(teams), overviewTopTeams),
		TeamNames:    make(map[string]string, len(teams)),
	}
	for _, t := range teams {
		out.TeamNames[t.ID] = t.Name
	}
	if len(weeks) == 0 {
		return out, nil
	}

	out.CurrentWeek = standings.CurrentWeek(weeks, s.clock.Now())
	for i := range weeks {
		if weeks[i].Number == out.CurrentWeek {
			out.Week = &weeks[i]
			break
		}
	}
	matchups, err := s.repos.Schedule.ListMatchupsByWeek(ctx, l.ID, out.CurrentWeek)
	if err != nil {
		return Overview{}, fmt.Errorf("list matchups: %w", err)
	}
	out.Matchups = matchups
	return out, nil
}

// RecomputeRecords rebuilds every team's record from completed weeks and
// returns the number of teams written.
func (s *StandingsService) RecomputeRecords(ctx context.Context, userID, leagueID string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.RecomputeRecords")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if err := s.members.RequireCommissioner(ctx, leagueID, userID); err != nil {
		return 0, err
	}
	if _, err := loadLeague(ctx, s.repos.Leagues, leagueID); err != nil {
		return 0, err
	}
	return s.rebuildRecords(ctx, leagueID)
}

// rebuildRecords is idempotent: records are derived from scratch, so each
// team row is written independently through a bounded worker pool.
func (s *StandingsService) rebuildRecords(ctx context.Context, leagueID string) (int, error) {
	teams, err := s.repos.Teams.ListByLeague(ctx, leagueID)
	if err != nil {
		return 0, fmt.Errorf("list teams: %w", err)
	}
	weeks, err := s.repos.Schedule.ListWeeks(ctx, leagueID)
	if err != nil {
		return 0, fmt.Errorf("list weeks: %w", err)
	}
	matchups, err := s.repos.Schedule.ListMatchups(ctx, leagueID)
	if err != nil {
		return 0, fmt.Errorf("list matchups: %w", err)
	}

	teamIDs := make([]string, 0, len(teams))
	for _, t := range teams {
		teamIDs = append(teamIDs, t.ID)
	}
	records := standings.Recompute(teamIDs, weeks, matchups)

	workerCount := s.workers
	if workerCount > len(teamIDs) {
		workerCount = len(teamIDs)
	}
	if workerCount == 0 {
		return 0, nil
	}
	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return 0, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var (
		updated atomic.Int32
		mu      sync.Mutex
		errs    []error
	)
	tasks := make([]func(), 0, len(teamIDs))
	for _, teamID := range teamIDs {
		record := records[teamID]
		tasks = append(tasks, func() {
			if err := s.repos.Teams.UpdateRecord(ctx, teamID, record); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("update record team=%s: %w", teamID, err))
				mu.Unlock()
				return
			}
			updated.Add(1)
		})
	}
	if err := submitAll(workerPool, tasks); err != nil {
		return int(updated.Load()), err
	}

	if len(errs) > 0 {
		s.logger.WarnContext(ctx, "team record rebuild incomplete",
			"league_id", leagueID,
			"updated", updated.Load(),
			"failed", len(errs),
		)
		return int(updated.Load()), errors.Join(errs...)
	}

	s.logger.InfoContext(ctx, "team records rebuilt", "league_id", leagueID, "teams", updated.Load())
	return int(updated.Load()), nil
}

// taskPool is the part of *ants.Pool the record rebuild uses.
type taskPool interface {
	Submit(task func()) error
}

// submitAll hands every task to pool and waits for them to finish. A refused
// submission stops the loop, but tasks already accepted still run to
// completion before submitAll returns.
func submitAll(pool taskPool, tasks []func()) error {
	var workers sync.WaitGroup
	defer workers.Wait()

	for _, task := range tasks {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			task()
		}); err != nil {
			workers.Done()
			return fmt.Errorf("submit record update to worker pool: %w", err)
		}
	}
	return nil
}
