package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/draft-league/internal/domain/player"
	"github.com/riskibarqy/draft-league/internal/domain/roster"
	"github.com/riskibarqy/draft-league/internal/domain/team"
	"github.com/riskibarqy/draft-league/internal/platform/logging"
)

const (
	defaultPlayerPoolLimit = 50
	maxPlayerPoolLimit     = 200
)

type RosterService struct {
	repos   Repositories
	members *MembershipService
	logger  *logging.Logger
}

func NewRosterService(repos Repositories, members *MembershipService, logger *logging.Logger) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RosterService{
		repos:   repos,
		members: members,
		logger:  logger,
	}
}

// RosterSlot is a roster entry joined with its player.
type RosterSlot struct {
	Entry  roster.Entry
	Player player.Player
}

type TeamRoster struct {
	Team     team.Team
	Starters []RosterSlot
	Bench    []RosterSlot
}

func (s *RosterService) TeamRoster(ctx context.Context, userID, leagueID, teamID string) (TeamRoster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.TeamRoster")
	defer span.End()

	l, err := loadLeague(ctx, s.repos.Leagues, leagueID)
	if err != nil {
		return TeamRoster{}, err
	}
	if _, err := s.members.RequireViewer(ctx, l, userID); err != nil {
		return TeamRoster{}, err
	}

	teamID = strings.TrimSpace(teamID)
	t, exists, err := s.repos.Teams.GetByID(ctx, teamID)
	if err != nil {
		return TeamRoster{}, fmt.Errorf("get team: %w", err)
	}
	if !exists || t.LeagueID != l.ID {
		return TeamRoster{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	entries, err := s.repos.Rosters.ListByTeam(ctx, t.ID)
	if err != nil {
		return TeamRoster{}, fmt.Errorf("list roster: %w", err)
	}
	playerIDs := make([]string, 0, len(entries))
	for _, e := range entries {
		playerIDs = append(playerIDs, e.PlayerID)
	}
	players, err := s.repos.Players.GetByIDs(ctx, playerIDs)
	if err != nil {
		return TeamRoster{}, fmt.Errorf("get roster players: %w", err)
	}
	byID := make(map[string]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	starters, bench := roster.Split(entries)
	out := TeamRoster{Team: t}
	for _, e := range starters {
		out.Starters = append(out.Starters, RosterSlot{Entry: e, Player: byID[e.PlayerID]})
	}
	for _, e := range bench {
		out.Bench = append(out.Bench, RosterSlot{Entry: e, Player: byID[e.PlayerID]})
	}
	return out, nil
}

type PlayerPoolInput struct {
	UserID        string
	LeagueID      string
	Position      string
	Search        string
	AvailableOnly bool
	Limit         int
	Offset        int
}

// PoolPlayer is a catalog player annotated with the league team that
// drafted them, if any.
type PoolPlayer struct {
	Player        player.Player
	OwnerTeamID   string
	OwnerTeamName string
}

func (p PoolPlayer) Available() bool {
	return p.OwnerTeamID == ""
}

func (s *RosterService) PlayerPool(ctx context.Context, input PlayerPoolInput) ([]PoolPlayer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.PlayerPool")
	defer span.End()

	l, err := loadLeague(ctx, s.repos.Leagues, input.LeagueID)
	if err != nil {
		return nil, err
	}
	if _, err := s.members.RequireViewer(ctx, l, input.UserID); err != nil {
		return nil, err
	}

	filter := player.Filter{
		Search:     strings.TrimSpace(input.Search),
		ActiveOnly: true,
		Limit:      input.Limit,
		Offset:     input.Offset,
	}
	if raw := strings.TrimSpace(input.Position); raw != "" {
		pos, err := player.ParsePosition(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Position = pos
	}
	switch {
	case filter.Limit <= 0:
		filter.Limit = defaultPlayerPoolLimit
	case filter.Limit > maxPlayerPoolLimit:
		filter.Limit = maxPlayerPoolLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	entries, err := s.repos.Rosters.ListByLeague(ctx, l.ID)
	if err != nil {
		return nil, fmt.Errorf("list league rosters: %w", err)
	}
	ownerByPlayer := make(map[string]string, len(entries))
	for _, e := range entries {
		ownerByPlayer[e.PlayerID] = e.TeamID
	}
	if input.AvailableOnly {
		filter.ExcludeIDs = make([]string, 0, len(ownerByPlayer))
		for playerID := range ownerByPlayer {
			filter.ExcludeIDs = append(filter.ExcludeIDs, playerID)
		}
	}

	players, err := s.repos.Players.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	teams, err := s.repos.Teams.ListByLeague(ctx, l.ID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	teamNames := make(map[string]string, len(teams))
	for _, t := range teams {
		teamNames[t.ID] = t.Name
	}

	out := make([]PoolPlayer, 0, len(players))
	for _, p := range players {
		row := PoolPlayer{Player: p}
		if teamID, ok := ownerByPlayer[p.ID]; ok {
			row.OwnerTeamID = teamID
			row.OwnerTeamName = teamNames[teamID]
		}
		out = append(out, row)
	}
	return out, nil
}
