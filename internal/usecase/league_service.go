package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/draft-league/internal/domain/league"
	"github.com/riskibarqy/draft-league/internal/domain/membership"
	"github.com/riskibarqy/draft-league/internal/domain/team"
	idgen "github.com/riskibarqy/draft-league/internal/platform/id"
	"github.com/riskibarqy/draft-league/internal/platform/logging"
	"github.com/riskibarqy/draft-league/internal/platform/retry"
)

const (
	maxLeagueNameLength      = 60
	defaultJoinCodeAttempts  = 5
	defaultPublicLeagueLimit = 50
	maxPublicLeagueLimit     = 200
)

type LeagueService struct {
	repos        Repositories
	members      *MembershipService
	tx           Transactor
	ids          idgen.Generator
	newJoinCode  func() (string, error)
	codeAttempts uint
	clock        clockwork.Clock
	logger       *logging.Logger
}

func NewLeagueService(
	repos Repositories,
	members *MembershipService,
	tx Transactor,
	ids idgen.Generator,
	logger *logging.Logger,
) *LeagueService {
	if tx == nil {
		tx = NoTx
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LeagueService{
		repos:        repos,
		members:      members,
		tx:           tx,
		ids:          ids,
		newJoinCode:  league.GenerateJoinCode,
		codeAttempts: defaultJoinCodeAttempts,
		clock:        clockwork.NewRealClock(),
		logger:       logger,
	}
}

type CreateLeagueInput struct {
	UserID     string
	Name       string
	TeamName   string
	MaxTeams   int
	Visibility string
	DraftType  string
	JoinCode   string
}

// LeagueTeam is a league together with the caller's team in it.
type LeagueTeam struct {
	League league.League
	Team   team.Team
}

// CreateLeague inserts the league, the creator's commissioner membership and
// the creator's team in one transaction. Without a custom code, colliding
// random codes are retried a bounded number of times.
func (s *LeagueService) CreateLeague(ctx context.Context, input CreateLeagueInput) (LeagueTeam, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.CreateLeague")
	defer span.End()

	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return LeagueTeam{}, ErrUnauthenticated
	}
	name, err := normalizeLeagueName(input.Name)
	if err != nil {
		return LeagueTeam{}, err
	}
	teamName, err := normalizeTeamName(input.TeamName)
	if err != nil {
		return LeagueTeam{}, err
	}
	if input.MaxTeams < league.MinTeams || input.MaxTeams > league.MaxTeams {
		return LeagueTeam{}, fmt.Errorf("%w: max teams must be between %d and %d", ErrInvalidInput, league.MinTeams, league.MaxTeams)
	}
	visibility, err := league.ParseVisibility(input.Visibility)
	if err != nil {
		return LeagueTeam{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	draftType, err := league.ParseDraftType(input.DraftType)
	if err != nil {
		return LeagueTeam{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.clock.Now().UTC()
	base := league.League{
		Name:        name,
		Season:      league.SeasonYear(now),
		MaxTeams:    input.MaxTeams,
		Visibility:  visibility,
		Status:      league.StatusActive,
		DraftType:   draftType,
		DraftStatus: league.DraftStatusPending,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var out LeagueTeam
	if custom := strings.TrimSpace(input.JoinCode); custom != "" {
		code := league.NormalizeJoinCode(custom)
		if err := league.ValidateJoinCode(code); err != nil {
			return LeagueTeam{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		out, err = s.createWithCode(ctx, base, code, teamName)
		if errors.Is(err, league.ErrDuplicateJoinCode) {
			return LeagueTeam{}, fmt.Errorf("%w: join code %s is already taken", ErrConflict, code)
		}
	} else {
		out, err = retry.Value(ctx, retry.Immediate(s.codeAttempts), isDuplicateJoinCode,
			func(ctx context.Context) (LeagueTeam, error) {
				code, err := s.newJoinCode()
				if err != nil {
					return LeagueTeam{}, fmt.Errorf("generate join code: %w", err)
				}
				return s.createWithCode(ctx, base, code, teamName)
			},
			func(err error, attempt uint, _ time.Duration) {
				s.logger.WarnContext(ctx, "join code collision, retrying",
					"user_id", userID,
					"attempt", attempt,
					"error", err,
				)
			},
		)
		if errors.Is(err, league.ErrDuplicateJoinCode) {
			return LeagueTeam{}, fmt.Errorf("%w: could not allocate a unique join code", ErrConflict)
		}
	}
	if err != nil {
		return LeagueTeam{}, err
	}

	s.logger.InfoContext(ctx, "league created",
		"league_id", out.League.ID,
		"user_id", userID,
		"season", out.League.Season,
		"max_teams", out.League.MaxTeams,
	)
	return out, nil
}

func (s *LeagueService) createWithCode(ctx context.Context, base league.League, code, teamName string) (LeagueTeam, error) {
	var out LeagueTeam
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		inUse, err := s.repos.Leagues.JoinCodeInUse(ctx, code)
		if err != nil {
			return fmt.Errorf("check join code: %w", err)
		}
		if inUse {
			return league.ErrDuplicateJoinCode
		}

		leagueID, err := s.ids.NewID()
		if err != nil {
			return fmt.Errorf("generate league id: %w", err)
		}
		l := base
		l.ID = leagueID
		l.JoinCode = code
		if err := l.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if err := s.repos.Leagues.Create(ctx, l); err != nil {
			return fmt.Errorf("create league: %w", err)
		}

		if err := s.members.EnsureMember(ctx, l.ID, l.CreatedBy, membership.RoleCommissioner); err != nil {
			return err
		}

		t, err := s.insertOwnedTeam(ctx, l.ID, l.CreatedBy, teamName)
		if err != nil {
			return err
		}

		out = LeagueTeam{League: l, Team: t}
		return nil
	})
	return out, err
}

func (s *LeagueService) insertOwnedTeam(ctx context.Context, leagueID, userID, name string) (team.Team, error) {
	teamID, err := s.ids.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}
	t := team.Team{
		ID:          teamID,
		LeagueID:    leagueID,
		OwnerUserID: userID,
		Name:        name,
		Claimed:     true,
		CreatedAt:   s.clock.Now().UTC(),
	}
	if err := t.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.repos.Teams.Create(ctx, t); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}
	return t, nil
}

type JoinLeagueInput struct {
	UserID   string
	JoinCode string
	TeamName string
}

// JoinLeague admits the caller into the active league holding the code. A
// caller who already belongs to the league gets their existing team back.
func (s *LeagueService) JoinLeague(ctx context.Context, input JoinLeagueInput) (LeagueTeam, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.JoinLeague")
	defer span.End()

	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return LeagueTeam{}, ErrUnauthenticated
	}
	code := league.NormalizeJoinCode(input.JoinCode)
	if err := league.ValidateJoinCode(code); err != nil {
		return LeagueTeam{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	teamName, err := normalizeTeamName(input.TeamName)
	if err != nil {
		return LeagueTeam{}, err
	}

	var (
		out     LeagueTeam
		already bool
	)
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		found, exists, err := s.repos.Leagues.GetActiveByJoinCode(ctx, code)
		if err != nil {
			return fmt.Errorf("get league by join code: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: no active league with join code %s", ErrNotFound, code)
		}
		l, err := s.lockLeague(ctx, found.ID)
		if err != nil {
			return err
		}

		role, err := s.members.RoleOf(ctx, l.ID, userID)
		if err != nil {
			return err
		}
		if role.IsMember() {
			existing, hasTeam, err := s.repos.Teams.GetByOwner(ctx, l.ID, userID)
			if err != nil {
				return fmt.Errorf("get existing team: %w", err)
			}
			if !hasTeam {
				return fmt.Errorf("%w: member %s has no team in league %s", ErrNotFound, userID, l.ID)
			}
			out = LeagueTeam{League: l, Team: existing}
			already = true
			return nil
		}

		if err := s.ensureCapacity(ctx, l); err != nil {
			return err
		}
		if l.DraftStatus != league.DraftStatusPending {
			return fmt.Errorf("%w: league has already started drafting", ErrPrecondition)
		}

		if err := s.members.EnsureMember(ctx, l.ID, userID, membership.RoleMember); err != nil {
			return err
		}
		t, err := s.insertOwnedTeam(ctx, l.ID, userID, teamName)
		if err != nil {
			return err
		}
		out = LeagueTeam{League: l, Team: t}
		return nil
	})
	if err != nil {
		return LeagueTeam{}, err
	}

	if !already {
		s.logger.InfoContext(ctx, "league joined",
			"league_id", out.League.ID,
			"user_id", userID,
			"team_id", out.Team.ID,
		)
	}
	return out, nil
}

// RegenerateJoinCode replaces the league's code with a fresh random one that
// differs from the old code. The old code stops working immediately.
func (s *LeagueService) RegenerateJoinCode(ctx context.Context, userID, leagueID string) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.RegenerateJoinCode")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if err := s.members.RequireCommissioner(ctx, leagueID, userID); err != nil {
		return "", err
	}

	code, err := retry.Value(ctx, retry.Immediate(s.codeAttempts), isDuplicateJoinCode,
		func(ctx context.Context) (string, error) {
			var code string
			err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
				l, err := s.lockLeague(ctx, leagueID)
				if err != nil {
					return err
				}
				if !l.IsActive() {
					return fmt.Errorf("%w: archived leagues cannot change join code", ErrPrecondition)
				}

				code, err = s.freshJoinCode(l.JoinCode)
				if err != nil {
					return err
				}
				inUse, err := s.repos.Leagues.JoinCodeInUse(ctx, code)
				if err != nil {
					return fmt.Errorf("check join code: %w", err)
				}
				if inUse {
					return league.ErrDuplicateJoinCode
				}

				l.JoinCode = code
				l.UpdatedAt = s.clock.Now().UTC()
				if err := s.repos.Leagues.Update(ctx, l); err != nil {
					return fmt.Errorf("update league: %w", err)
				}
				return nil
			})
			return code, err
		}, nil)
	if errors.Is(err, league.ErrDuplicateJoinCode) {
		return "", fmt.Errorf("%w: could not allocate a unique join code", ErrConflict)
	}
	if err != nil {
		return "", err
	}

	s.logger.InfoContext(ctx, "join code regenerated", "league_id", leagueID, "user_id", userID)
	return code, nil
}

func (s *LeagueService) freshJoinCode(previous string) (string, error) {
	for i := 0; i < 16; i++ {
		code, err := s.newJoinCode()
		if err != nil {
			return "", fmt.Errorf("generate join code: %w", err)
		}
		if code != previous {
			return code, nil
		}
	}
	return "", league.ErrDuplicateJoinCode
}

type UpdateLeagueDetailsInput struct {
	UserID     string
	LeagueID   string
	Name       *string
	Visibility *string
}

func (s *LeagueService) UpdateLeagueDetails(ctx context.Context, input UpdateLeagueDetailsInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.UpdateLeagueDetails")
	defer span.End()

	leagueID := strings.TrimSpace(input.LeagueID)
	if err := s.members.RequireCommissioner(ctx, leagueID, input.UserID); err != nil {
		return league.League{}, err
	}
	if input.Name == nil && input.Visibility == nil {
		return league.League{}, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	var out league.League
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		l, err := s.lockLeague(ctx, leagueID)
		if err != nil {
			return err
		}
		if input.Name != nil {
			name, err := normalizeLeagueName(*input.Name)
			if err != nil {
				return err
			}
			l.Name = name
		}
		if input.Visibility != nil {
			visibility, err := league.ParseVisibility(*input.Visibility)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			l.Visibility = visibility
		}
		l.UpdatedAt = s.clock.Now().UTC()
		if err := s.repos.Leagues.Update(ctx, l); err != nil {
			return fmt.Errorf("update league: %w", err)
		}
		out = l
		return nil
	})
	return out, err
}

// UpdateMaxTeams changes the capacity; it may not drop below the number of
// teams already claimed.
func (s *LeagueService) UpdateMaxTeams(ctx context.Context, userID, leagueID string, maxTeams int) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.UpdateMaxTeams")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if err := s.members.RequireCommissioner(ctx, leagueID, userID); err != nil {
		return league.League{}, err
	}
	if maxTeams < league.MinTeams || maxTeams > league.MaxTeams {
		return league.League{}, fmt.Errorf("%w: max teams must be between %d and %d", ErrInvalidInput, league.MinTeams, league.MaxTeams)
	}

	var out league.League
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		l, err := s.lockLeague(ctx, leagueID)
		if err != nil {
			return err
		}
		claimed, err := s.repos.Teams.CountClaimed(ctx, l.ID)
		if err != nil {
			return fmt.Errorf("count claimed teams: %w", err)
		}
		if maxTeams < claimed {
			return fmt.Errorf("%w: max teams cannot be below the current team count (%d)", ErrInvalidInput, claimed)
		}
		l.MaxTeams = maxTeams
		l.UpdatedAt = s.clock.Now().UTC()
		if err := s.repos.Leagues.Update(ctx, l); err != nil {
			return fmt.Errorf("update league: %w", err)
		}
		out = l
		return nil
	})
	return out, err
}

// AddPlaceholderTeam inserts an unowned "CPU Team N" team. N comes from the
// league's bot counter so numbers are never reused.
func (s *LeagueService) AddPlaceholderTeam(ctx context.Context, userID, leagueID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.AddPlaceholderTeam")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if err := s.members.RequireCommissioner(ctx, leagueID, userID); err != nil {
		return team.Team{}, err
	}

	var out team.Team
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		l, err := s.lockLeague(ctx, leagueID)
		if err != nil {
			return err
		}
		if err := s.ensureCapacity(ctx, l); err != nil {
			return err
		}
		if l.DraftStatus != league.DraftStatusPending {
			return fmt.Errorf("%w: league has already started drafting", ErrPrecondition)
		}

		teams, err := s.repos.Teams.ListByLeague(ctx, l.ID)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
		names := make([]string, 0, len(teams))
		claimed := 0
		for _, t := range teams {
			names = append(names, t.Name)
			if t.Claimed {
				claimed++
			}
		}
		n := team.NextBotNumber(names, claimed, l.BotCounter)

		teamID, err := s.ids.NewID()
		if err != nil {
			return fmt.Errorf("generate team id: %w", err)
		}
		now := s.clock.Now().UTC()
		bot := team.Team{
			ID:        teamID,
			LeagueID:  l.ID,
			Name:      team.BotName(n),
			Claimed:   true,
			CreatedAt: now,
		}
		if err := s.repos.Teams.Create(ctx, bot); err != nil {
			return fmt.Errorf("create placeholder team: %w", err)
		}

		l.BotCounter = n
		l.UpdatedAt = now
		if err := s.repos.Leagues.Update(ctx, l); err != nil {
			return fmt.Errorf("update bot counter: %w", err)
		}
		out = bot
		return nil
	})
	if err != nil {
		return team.Team{}, err
	}

	s.logger.InfoContext(ctx, "placeholder team added",
		"league_id", leagueID,
		"team_id", out.ID,
		"team_name", out.Name,
	)
	return out, nil
}

// DeleteTeam removes a team and its owner's membership. Commissioners cannot
// remove their own team.
func (s *LeagueService) DeleteTeam(ctx context.Context, userID, leagueID, teamID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.DeleteTeam")
	defer span.End()

	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if err := s.members.RequireCommissioner(ctx, leagueID, userID); err != nil {
		return err
	}

	var removed team.Team
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		l, err := s.lockLeague(ctx, leagueID)
		if err != nil {
			return err
		}
		t, exists, err := s.repos.Teams.GetByID(ctx, teamID)
		if err != nil {
			return fmt.Errorf("get team: %w", err)
		}
		if !exists || t.LeagueID != l.ID {
			return fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
		}
		if t.OwnedBy(userID) {
			return fmt.Errorf("%w: you cannot remove your own team; delete the league instead", ErrPrecondition)
		}
		if l.DraftStatus != league.DraftStatusPending {
			return fmt.Errorf("%w: reset the league before removing teams", ErrPrecondition)
		}

		if err := s.removeTeam(ctx, t); err != nil {
			return err
		}
		removed = t
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "team removed",
		"league_id", leagueID,
		"team_id", removed.ID,
		"owner_user_id", removed.OwnerUserID,
		"user_id", userID,
	)
	return nil
}

func (s *LeagueService) removeTeam(ctx context.Context, t team.Team) error {
	if err := s.repos.Rosters.DeleteByTeam(ctx, t.ID); err != nil {
		return fmt.Errorf("delete roster: %w", err)
	}
	if err := s.repos.Teams.Delete(ctx, t.ID); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	if t.IsBot() {
		return nil
	}
	if err := s.repos.Members.Delete(ctx, t.LeagueID, t.OwnerUserID); err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	return nil
}

// LeaveLeague removes the caller's own team and membership. The commissioner
// has to hand the role over (or delete the league) first.
func (s *LeagueService) LeaveLeague(ctx context.Context, userID, leagueID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.LeaveLeague")
	defer span.End()

	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	role, err := s.members.RequireMember(ctx, leagueID, userID)
	if err != nil {
		return err
	}
	if role.IsCommissioner() {
		return fmt.Errorf("%w: the commissioner cannot leave; transfer the role or delete the league", ErrPrecondition)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		l, err := s.lockLeague(ctx, leagueID)
		if err != nil {
			return err
		}
		if l.DraftStatus != league.DraftStatusPending {
			return fmt.Errorf("%w: cannot leave a league once drafting has started", ErrPrecondition)
		}

		t, exists, err := s.repos.Teams.GetByOwner(ctx, l.ID, userID)
		if err != nil {
			return fmt.Errorf("get team: %w", err)
		}
		if exists {
			return s.removeTeam(ctx, t)
		}
		if err := s.repos.Members.Delete(ctx, l.ID, userID); err != nil {
			return fmt.Errorf("delete membership: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "league left", "league_id", leagueID, "user_id", userID)
	return nil
}

// ArchiveLeague freezes the league and frees its join code for reuse.
func (s *LeagueService) ArchiveLeague(ctx context.Context, userID, leagueID string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ArchiveLeague")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if err := s.members.RequireCommissioner(ctx, leagueID, userID); err != nil {
		return league.League{}, err
	}

	var out league.League
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		l, err := s.lockLeague(ctx, leagueID)
		if err != nil {
			return err
		}
		if !l.IsActive() {
			return fmt.Errorf("%w: league is already archived", ErrPrecondition)
		}

		now := s.clock.Now().UTC()
		l.JoinCode = league.ArchivedJoinCode(l.JoinCode, now)
		l.Status = league.StatusArchived
		l.UpdatedAt = now
		if err := s.repos.Leagues.Update(ctx, l); err != nil {
			return fmt.Errorf("archive league: %w", err)
		}
		out = l
		return nil
	})
	if err != nil {
		return league.League{}, err
	}

	s.logger.InfoContext(ctx, "league archived", "league_id", leagueID, "user_id", userID)
	return out, nil
}

// DeleteLeague hard-deletes the league; the store cascades to everything the
// league owns.
func (s *LeagueService) DeleteLeague(ctx context.Context, userID, leagueID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.DeleteLeague")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if err := s.members.RequireCommissioner(ctx, leagueID, userID); err != nil {
		return err
	}
	if err := s.repos.Leagues.Delete(ctx, leagueID); err != nil {
		return fmt.Errorf("delete league: %w", err)
	}

	s.logger.InfoContext(ctx, "league deleted", "league_id", leagueID, "user_id", userID)
	return nil
}

// ResetLeague wipes the schedule, the draft board and all rosters so the
// league can be drafted and started again. Teams and memberships stay.
func (s *LeagueService) ResetLeague(ctx context.Context, userID, leagueID string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ResetLeague")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if err := s.members.RequireCommissioner(ctx, leagueID, userID); err != nil {
		return league.League{}, err
	}

	var out league.League
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		l, err := s.lockLeague(ctx, leagueID)
		if err != nil {
			return err
		}
		if err := s.repos.Schedule.DeleteByLeague(ctx, l.ID); err != nil {
			return fmt.Errorf("delete schedule: %w", err)
		}
		if err := s.repos.Picks.DeleteByLeague(ctx, l.ID); err != nil {
			return fmt.Errorf("delete draft picks: %w", err)
		}
		if err := s.repos.Rosters.DeleteByLeague(ctx, l.ID); err != nil {
			return fmt.Errorf("delete rosters: %w", err)
		}
		if err := s.repos.Teams.ResetRecords(ctx, l.ID); err != nil {
			return fmt.Errorf("reset team records: %w", err)
		}

		l.DraftStatus = league.DraftStatusPending
		l.CurrentPick = 0
		l.UpdatedAt = s.clock.Now().UTC()
		if err := s.repos.Leagues.Update(ctx, l); err != nil {
			return fmt.Errorf("update league: %w", err)
		}
		out = l
		return nil
	})
	if err != nil {
		return league.League{}, err
	}

	s.logger.InfoContext(ctx, "league reset", "league_id", leagueID, "user_id", userID)
	return out, nil
}

// LeagueDetails is a league as seen by one user.
type LeagueDetails struct {
	League league.League
	Role   membership.Role
	Teams  []team.Team
}

func (s *LeagueService) GetLeague(ctx context.Context, userID, leagueID string) (LeagueDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetLeague")
	defer span.End()

	l, err := s.getLeague(ctx, leagueID)
	if err != nil {
		return LeagueDetails{}, err
	}
	role, err := s.members.RequireViewer(ctx, l, userID)
	if err != nil {
		return LeagueDetails{}, err
	}
	teams, err := s.repos.Teams.ListByLeague(ctx, l.ID)
	if err != nil {
		return LeagueDetails{}, fmt.Errorf("list teams: %w", err)
	}
	return LeagueDetails{League: l, Role: role, Teams: teams}, nil
}

func (s *LeagueService) ListMyLeagues(ctx context.Context, userID string) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListMyLeagues")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	items, err := s.repos.Leagues.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list leagues by user: %w", err)
	}
	return items, nil
}

func (s *LeagueService) ListPublicLeagues(ctx context.Context, limit int) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListPublicLeagues")
	defer span.End()

	switch {
	case limit <= 0:
		limit = defaultPublicLeagueLimit
	case limit > maxPublicLeagueLimit:
		limit = maxPublicLeagueLimit
	}
	items, err := s.repos.Leagues.ListPublic(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list public leagues: %w", err)
	}
	return items, nil
}

func (s *LeagueService) getLeague(ctx context.Context, leagueID string) (league.League, error) {
	return loadLeague(ctx, s.repos.Leagues, leagueID)
}

func (s *LeagueService) lockLeague(ctx context.Context, leagueID string) (league.League, error) {
	return lockLeague(ctx, s.repos.Leagues, leagueID)
}

func (s *LeagueService) ensureCapacity(ctx context.Context, l league.League) error {
	claimed, err := s.repos.Teams.CountClaimed(ctx, l.ID)
	if err != nil {
		return fmt.Errorf("count claimed teams: %w", err)
	}
	if claimed >= l.MaxTeams {
		return fmt.Errorf("%w: %d of %d teams claimed", ErrCapacity, claimed, l.MaxTeams)
	}
	return nil
}

func loadLeague(ctx context.Context, repo league.Repository, leagueID string) (league.League, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	l, exists, err := repo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	return l, nil
}

func lockLeague(ctx context.Context, repo league.Repository, leagueID string) (league.League, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	l, exists, err := repo.LockByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("lock league: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	return l, nil
}

func normalizeLeagueName(v string) (string, error) {
	name := strings.TrimSpace(v)
	if name == "" {
		return "", fmt.Errorf("%w: league name is required", ErrInvalidInput)
	}
	if len([]rune(name)) > maxLeagueNameLength {
		return "", fmt.Errorf("%w: league name must be at most %d characters", ErrInvalidInput, maxLeagueNameLength)
	}
	return name, nil
}

func normalizeTeamName(v string) (string, error) {
	name := strings.TrimSpace(v)
	if name == "" {
		return "", fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if len([]rune(name)) > team.MaxNameLength {
		return "", fmt.Errorf("%w: team name must be at most %d characters", ErrInvalidInput, team.MaxNameLength)
	}
	return name, nil
}

func isDuplicateJoinCode(err error) bool {
	return errors.Is(err, league.ErrDuplicateJoinCode)
}
