package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/draft-league/internal/domain/league"
	"github.com/riskibarqy/draft-league/internal/domain/schedule"
	idgen "github.com/riskibarqy/draft-league/internal/platform/id"
	"github.com/riskibarqy/draft-league/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// recordRebuilder recomputes stored team records after results change.
type recordRebuilder interface {
	rebuildRecords(ctx context.Context, leagueID string) (int, error)
}

type ScheduleService struct {
	repos   Repositories
	members *MembershipService
	drafts  *DraftService
	records recordRebuilder
	tx      Transactor
	ids     idgen.Generator
	weeks   int
	clock   clockwork.Clock
	logger  *logging.Logger
}

func NewScheduleService(
	repos Repositories,
	members *MembershipService,
	drafts *DraftService,
	records recordRebuilder,
	tx Transactor,
	ids idgen.Generator,
	weeks int,
	logger *logging.Logger,
) *ScheduleService {
	if tx == nil {
		tx = NoTx
	}
	if weeks <= 0 {
		weeks = schedule.DefaultWeeks
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ScheduleService{
		repos:   repos,
		members: members,
		drafts:  drafts,
		records: records,
		tx:      tx,
		ids:     ids,
		weeks:   weeks,
		clock:   clockwork.NewRealClock(),
		logger:  logger,
	}
}

type StartLeagueResult struct {
	League           league.League
	Weeks            int
	Matchups         int
	DraftInitialized bool
}

// StartLeague moves a league from setup into play: it initializes the draft
// if that has not happened and writes the full season schedule.
func (s *ScheduleService) StartLeague(ctx context.Context, userID, leagueID string) (StartLeagueResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.StartLeague", attribute.String("league_id", leagueID))
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if err := s.members.RequireCommissioner(ctx, leagueID, userID); err != nil {
		return StartLeagueResult{}, err
	}

	var out StartLeagueResult
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		l, err := lockLeague(ctx, s.repos.Leagues, leagueID)
		if err != nil {
			return err
		}
		if !l.IsActive() {
			return fmt.Errorf("%w: league is archived", ErrPrecondition)
		}
		existing, err := s.repos.Schedule.CountWeeks(ctx, l.ID)
		if err != nil {
			return fmt.Errorf("count weeks: %w", err)
		}
		if existing > 0 {
			return fmt.Errorf("%w: league already started", ErrPrecondition)
		}

		teams, err := s.repos.Teams.ListByLeague(ctx, l.ID)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
		if len(teams) < league.MinTeams {
			return fmt.Errorf("%w: need at least %d teams", ErrPrecondition, league.MinTeams)
		}

		if l.DraftStatus == league.DraftStatusPending {
			if l, _, err = s.drafts.initializeBoard(ctx, l); err != nil {
				return err
			}
			out.DraftInitialized = true
		}

		teamIDs := make([]string, 0, len(teams))
		for _, t := range teams {
			teamIDs = append(teamIDs, t.ID)
		}
		plan, err := schedule.Plan(teamIDs, s.weeks, schedule.FirstWeekStart(s.clock.Now()))
		if err != nil {
			return fmt.Errorf("plan schedule: %w", err)
		}

		weeks, matchups, err := s.materialize(l.ID, plan)
		if err != nil {
			return err
		}
		if err := s.repos.Schedule.InsertWeeks(ctx, weeks); err != nil {
			return fmt.Errorf("insert weeks: %w", err)
		}
		if err := s.repos.Schedule.InsertMatchups(ctx, matchups); err != nil {
			return fmt.Errorf("insert matchups: %w", err)
		}

		out.League = l
		out.Weeks = len(weeks)
		out.Matchups = len(matchups)
		return nil
	})
	if err != nil {
		return StartLeagueResult{}, err
	}

	s.logger.InfoContext(ctx, "league started",
		"league_id", leagueID,
		"user_id", userID,
		"weeks", out.Weeks,
		"matchups", out.Matchups,
		"draft_initialized", out.DraftInitialized,
	)
	return out, nil
}

func (s *ScheduleService) materialize(leagueID string, plan []schedule.WeekPlan) ([]schedule.Week, []schedule.Matchup, error) {
	weeks := make([]schedule.Week, 0, len(plan))
	var matchups []schedule.Matchup
	for _, wp := range plan {
		weekID, err := s.ids.NewID()
		if err != nil {
			return nil, nil, fmt.Errorf("generate week id: %w", err)
		}
		weeks = append(weeks, schedule.Week{
			ID:       weekID,
			LeagueID: leagueID,
			Number:   wp.Number,
			Label:    wp.Label,
			StartsAt: wp.StartsAt,
		})
		for _, pairing := range wp.Pairings {
			matchupID, err := s.ids.NewID()
			if err != nil {
				return nil, nil, fmt.Errorf("generate matchup id: %w", err)
			}
			matchups = append(matchups, schedule.Matchup{
				ID:         matchupID,
				LeagueID:   leagueID,
				WeekID:     weekID,
				WeekNumber: wp.Number,
				HomeTeamID: pairing.HomeTeamID,
				AwayTeamID: pairing.AwayTeamID,
			})
		}
	}
	return weeks, matchups, nil
}

// WeekSchedule is one week with its games.
type WeekSchedule struct {
	Week     schedule.Week
	Matchups []schedule.Matchup
}

func (s *ScheduleService) Schedule(ctx context.Context, userID, leagueID string) ([]WeekSchedule, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Schedule")
	defer span.End()

	l, err := loadLeague(ctx, s.repos.Leagues, leagueID)
	if err != nil {
		return nil, err
	}
	if _, err := s.members.RequireViewer(ctx, l, userID); err != nil {
		return nil, err
	}

	weeks, err := s.repos.Schedule.ListWeeks(ctx, l.ID)
	if err != nil {
		return nil, fmt.Errorf("list weeks: %w", err)
	}
	matchups, err := s.repos.Schedule.ListMatchups(ctx, l.ID)
	if err != nil {
		return nil, fmt.Errorf("list matchups: %w", err)
	}

	byWeek := make(map[int][]schedule.Matchup, len(weeks))
	for _, m := range matchups {
		byWeek[m.WeekNumber] = append(byWeek[m.WeekNumber], m)
	}
	out := make([]WeekSchedule, 0, len(weeks))
	for _, w := range weeks {
		out = append(out, WeekSchedule{Week: w, Matchups: byWeek[w.Number]})
	}
	return out, nil
}

type RecordMatchupScoreInput struct {
	UserID    string
	LeagueID  string
	MatchupID string
	HomeScore float64
	AwayScore float64
}

// RecordMatchupScore stores an imported result. Scores of a completed week
// are final.
func (s *ScheduleService) RecordMatchupScore(ctx context.Context, input RecordMatchupScoreInput) (schedule.Matchup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.RecordMatchupScore")
	defer span.End()

	leagueID := strings.TrimSpace(input.LeagueID)
	matchupID := strings.TrimSpace(input.MatchupID)
	if matchupID == "" {
		return schedule.Matchup{}, fmt.Errorf("%w: matchup id is required", ErrInvalidInput)
	}
	if input.HomeScore < 0 || input.AwayScore < 0 {
		return schedule.Matchup{}, fmt.Errorf("%w: scores must not be negative", ErrInvalidInput)
	}
	if err := s.members.RequireCommissioner(ctx, leagueID, input.UserID); err != nil {
		return schedule.Matchup{}, err
	}

	var out schedule.Matchup
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		m, exists, err := s.repos.Schedule.GetMatchup(ctx, matchupID)
		if err != nil {
			return fmt.Errorf("get matchup: %w", err)
		}
		if !exists || m.LeagueID != leagueID {
			return fmt.Errorf("%w: matchup=%s", ErrNotFound, matchupID)
		}

		weeks, err := s.repos.Schedule.ListWeeks(ctx, leagueID)
		if err != nil {
			return fmt.Errorf("list weeks: %w", err)
		}
		for _, w := range weeks {
			if w.Number == m.WeekNumber && w.Completed {
				return fmt.Errorf("%w: %s is already final", ErrPrecondition, w.Label)
			}
		}

		if err := s.repos.Schedule.UpdateMatchupScore(ctx, m.ID, input.HomeScore, input.AwayScore); err != nil {
			return fmt.Errorf("update matchup score: %w", err)
		}
		m.HomeScore = input.HomeScore
		m.AwayScore = input.AwayScore
		out = m
		return nil
	})
	return out, err
}

// CompleteWeek marks a week final and folds its results into team records.
func (s *ScheduleService) CompleteWeek(ctx context.Context, userID, leagueID string, weekNumber int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.CompleteWeek")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if weekNumber <= 0 {
		return fmt.Errorf("%w: week number must be positive", ErrInvalidInput)
	}
	if err := s.members.RequireCommissioner(ctx, leagueID, userID); err != nil {
		return err
	}

	var updated int
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		ok, err := s.repos.Schedule.MarkWeekComplete(ctx, leagueID, weekNumber)
		if err != nil {
			return fmt.Errorf("mark week complete: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: week %d", ErrNotFound, weekNumber)
		}

		updated, err = s.records.rebuildRecords(ctx, leagueID)
		return err
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "week completed",
		"league_id", leagueID,
		"week", weekNumber,
		"teams_updated", updated,
	)
	return nil
}
