package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/draft-league/internal/domain/draft"
	"github.com/riskibarqy/draft-league/internal/domain/league"
	"github.com/riskibarqy/draft-league/internal/domain/player"
	"github.com/riskibarqy/draft-league/internal/domain/roster"
	"github.com/riskibarqy/draft-league/internal/domain/team"
	idgen "github.com/riskibarqy/draft-league/internal/platform/id"
	"github.com/riskibarqy/draft-league/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// DraftService runs the snake draft: board generation, picks and bulk
// completion. Every mutation holds the league row lock for its whole
// transaction.
type DraftService struct {
	repos   Repositories
	members *MembershipService
	tx      Transactor
	ids     idgen.Generator
	rounds  int
	clock   clockwork.Clock
	logger  *logging.Logger
}

func NewDraftService(
	repos Repositories,
	members *MembershipService,
	tx Transactor,
	ids idgen.Generator,
	rounds int,
	logger *logging.Logger,
) *DraftService {
	if tx == nil {
		tx = NoTx
	}
	if rounds <= 0 {
		rounds = draft.DefaultRounds
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &DraftService{
		repos:   repos,
		members: members,
		tx:      tx,
		ids:     ids,
		rounds:  rounds,
		clock:   clockwork.NewRealClock(),
		logger:  logger,
	}
}

// InitializeDraft (re)generates the board and puts pick 1 on the clock. It
// refuses once any pick has been made.
func (s *DraftService) InitializeDraft(ctx context.Context, userID, leagueID string) ([]draft.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.InitializeDraft", attribute.String("league_id", leagueID))
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if err := s.members.RequireCommissioner(ctx, leagueID, userID); err != nil {
		return nil, err
	}

	var board []draft.Pick
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		l, err := lockLeague(ctx, s.repos.Leagues, leagueID)
		if err != nil {
			return err
		}
		_, board, err = s.initializeBoard(ctx, l)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "draft initialized",
		"league_id", leagueID,
		"user_id", userID,
		"picks", len(board),
	)
	return board, nil
}

// initializeBoard must run inside a transaction holding the league lock.
func (s *DraftService) initializeBoard(ctx context.Context, l league.League) (league.League, []draft.Pick, error) {
	if !l.IsActive() {
		return l, nil, fmt.Errorf("%w: league is archived", ErrPrecondition)
	}
	if l.DraftStatus == league.DraftStatusComplete {
		return l, nil, fmt.Errorf("%w: draft is complete; reset the league to draft again", ErrPrecondition)
	}
	made, err := s.repos.Picks.CountMade(ctx, l.ID)
	if err != nil {
		return l, nil, fmt.Errorf("count made picks: %w", err)
	}
	if made > 0 {
		return l, nil, fmt.Errorf("%w: draft already has %d picks; reset the league to start over", ErrPrecondition, made)
	}

	if err := s.repos.Picks.DeleteByLeague(ctx, l.ID); err != nil {
		return l, nil, fmt.Errorf("delete draft picks: %w", err)
	}

	teams, err := s.repos.Teams.ListByLeague(ctx, l.ID)
	if err != nil {
		return l, nil, fmt.Errorf("list teams: %w", err)
	}
	teamIDs := make([]string, 0, len(teams))
	for _, t := range teams {
		teamIDs = append(teamIDs, t.ID)
	}

	board, err := draft.GenerateSnakeBoard(l.ID, teamIDs, s.rounds)
	if errors.Is(err, draft.ErrTooFewTeams) {
		return l, nil, fmt.Errorf("%w: %v", ErrPrecondition, err)
	}
	if err != nil {
		return l, nil, fmt.Errorf("generate draft board: %w", err)
	}
	if err := s.repos.Picks.InsertBoard(ctx, board); err != nil {
		return l, nil, fmt.Errorf("insert draft board: %w", err)
	}

	l.DraftStatus = league.DraftStatusInProgress
	l.CurrentPick = board[0].Overall
	l.UpdatedAt = s.clock.Now().UTC()
	if err := s.repos.Leagues.Update(ctx, l); err != nil {
		return l, nil, fmt.Errorf("update league draft state: %w", err)
	}
	return l, board, nil
}

type MakeDraftPickInput struct {
	UserID   string
	LeagueID string
	PlayerID string
}

// DraftPickResult is a made pick and where the player landed on the roster.
type DraftPickResult struct {
	Pick   draft.Pick
	Slot   roster.Slot
	League league.League
}

// MakeDraftPick writes a player onto the pick on the clock. The write is a
// compare-and-set on "still empty and still current"; losing that race is a
// precondition failure, never a silent success.
func (s *DraftService) MakeDraftPick(ctx context.Context, input MakeDraftPickInput) (DraftPickResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.MakeDraftPick",
		attribute.String("league_id", input.LeagueID),
		attribute.String("player_id", input.PlayerID),
	)
	defer span.End()

	userID := strings.TrimSpace(input.UserID)
	leagueID := strings.TrimSpace(input.LeagueID)
	playerID := strings.TrimSpace(input.PlayerID)
	if userID == "" {
		return DraftPickResult{}, ErrUnauthenticated
	}
	if playerID == "" {
		return DraftPickResult{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	role, err := s.members.RequireMember(ctx, leagueID, userID)
	if err != nil {
		return DraftPickResult{}, err
	}
	p, err := s.draftablePlayer(ctx, playerID)
	if err != nil {
		return DraftPickResult{}, err
	}

	var out DraftPickResult
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		l, err := lockLeague(ctx, s.repos.Leagues, leagueID)
		if err != nil {
			return err
		}
		if l.DraftStatus != league.DraftStatusInProgress {
			return fmt.Errorf("%w: draft is not in progress", ErrPrecondition)
		}

		picks, err := s.repos.Picks.ListByLeague(ctx, l.ID)
		if err != nil {
			return fmt.Errorf("list draft picks: %w", err)
		}
		current, ok := pickAt(picks, l.CurrentPick)
		if !ok || current.IsMade() {
			return fmt.Errorf("%w: not your turn anymore", ErrPrecondition)
		}

		onClock, exists, err := s.repos.Teams.GetByID(ctx, current.TeamID)
		if err != nil {
			return fmt.Errorf("get team on the clock: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: team on the clock no longer exists", ErrPrecondition)
		}
		authority, err := draft.ResolveAuthority(role, onClock, userID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPrecondition, err)
		}

		drafted, err := s.repos.Picks.IsPlayerDrafted(ctx, l.ID, p.ID)
		if err != nil {
			return fmt.Errorf("check drafted player: %w", err)
		}
		if drafted {
			return fmt.Errorf("%w: %v", ErrConflict, draft.ErrPlayerAlreadyDrafted)
		}

		now := s.clock.Now().UTC()
		made, err := s.assign(ctx, l, current, p, userID, authority, now)
		if err != nil {
			return err
		}
		l, err = s.advance(ctx, l, picks, current.Overall)
		if err != nil {
			return err
		}
		slot, err := s.placeOnRoster(ctx, nil, made.TeamID, l.ID, p, now)
		if err != nil {
			return err
		}

		out = DraftPickResult{Pick: made, Slot: slot, League: l}
		return nil
	})
	if err != nil {
		return DraftPickResult{}, err
	}

	s.logger.InfoContext(ctx, "draft pick made",
		"league_id", leagueID,
		"overall", out.Pick.Overall,
		"round", out.Pick.Round,
		"team_id", out.Pick.TeamID,
		"player_id", out.Pick.PlayerID,
		"user_id", userID,
		"authority", string(out.Pick.Authority),
	)
	if out.League.DraftStatus == league.DraftStatusComplete {
		s.logger.InfoContext(ctx, "draft complete", "league_id", leagueID)
	}
	return out, nil
}

type AutoCompleteResult struct {
	Assigned int
	League   league.League
}

// AutoCompleteDraft fills every open pick, in overall order, with the best
// ranked active player nobody in the league has drafted yet.
func (s *DraftService) AutoCompleteDraft(ctx context.Context, userID, leagueID string) (AutoCompleteResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.AutoCompleteDraft", attribute.String("league_id", leagueID))
	defer span.End()

	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	if err := s.members.RequireCommissioner(ctx, leagueID, userID); err != nil {
		return AutoCompleteResult{}, err
	}

	var out AutoCompleteResult
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		l, err := lockLeague(ctx, s.repos.Leagues, leagueID)
		if err != nil {
			return err
		}
		switch l.DraftStatus {
		case league.DraftStatusInProgress:
		case league.DraftStatusComplete:
			return fmt.Errorf("%w: draft is already complete", ErrPrecondition)
		case league.DraftStatusPending:
			return fmt.Errorf("%w: draft has not started", ErrPrecondition)
		default:
			return fmt.Errorf("%w: unknown draft status %q", ErrPrecondition, l.DraftStatus)
		}

		picks, err := s.repos.Picks.ListByLeague(ctx, l.ID)
		if err != nil {
			return fmt.Errorf("list draft picks: %w", err)
		}
		var (
			open    []draft.Pick
			drafted []string
		)
		for _, p := range picks {
			if p.IsMade() {
				drafted = append(drafted, p.PlayerID)
				continue
			}
			open = append(open, p)
		}

		available, err := s.repos.Players.List(ctx, player.Filter{ActiveOnly: true, ExcludeIDs: drafted})
		if err != nil {
			return fmt.Errorf("list available players: %w", err)
		}
		if len(available) < len(open) {
			return fmt.Errorf("%w: only %d players available for %d open picks", ErrPrecondition, len(available), len(open))
		}

		rosters := make(map[string][]roster.Entry)
		now := s.clock.Now().UTC()
		for i, pick := range open {
			p := available[i]
			if _, err := s.assign(ctx, l, pick, p, userID, draft.AuthorityAuto, now); err != nil {
				return err
			}
			if l, err = s.advance(ctx, l, picks, pick.Overall); err != nil {
				return err
			}
			if _, err := s.placeOnRoster(ctx, rosters, pick.TeamID, l.ID, p, now); err != nil {
				return err
			}
		}

		out = AutoCompleteResult{Assigned: len(open), League: l}
		return nil
	})
	if err != nil {
		return AutoCompleteResult{}, err
	}

	s.logger.InfoContext(ctx, "draft auto-completed",
		"league_id", leagueID,
		"user_id", userID,
		"assigned", out.Assigned,
		"authority", string(draft.AuthorityAuto),
	)
	return out, nil
}

// DraftBoard is the board grouped by round plus the caller's view of the
// pick on the clock.
type DraftBoard struct {
	League      league.League
	Rounds      []draft.Round
	OnClock     *draft.Pick
	OnClockTeam *team.Team
	CanPick     bool
	Teams       map[string]team.Team
	Players     map[string]player.Player
}

func (s *DraftService) DraftBoard(ctx context.Context, userID, leagueID string) (DraftBoard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.DraftBoard")
	defer span.End()

	l, err := loadLeague(ctx, s.repos.Leagues, leagueID)
	if err != nil {
		return DraftBoard{}, err
	}
	role, err := s.members.RequireViewer(ctx, l, userID)
	if err != nil {
		return DraftBoard{}, err
	}

	picks, err := s.repos.Picks.ListByLeague(ctx, l.ID)
	if err != nil {
		return DraftBoard{}, fmt.Errorf("list draft picks: %w", err)
	}
	teams, err := s.repos.Teams.ListByLeague(ctx, l.ID)
	if err != nil {
		return DraftBoard{}, fmt.Errorf("list teams: %w", err)
	}
	playerIDs := make([]string, 0, len(picks))
	for _, p := range picks {
		if p.IsMade() {
			playerIDs = append(playerIDs, p.PlayerID)
		}
	}
	players, err := s.repos.Players.GetByIDs(ctx, playerIDs)
	if err != nil {
		return DraftBoard{}, fmt.Errorf("get drafted players: %w", err)
	}

	out := DraftBoard{
		League:  l,
		Rounds:  draft.GroupByRound(picks),
		Teams:   make(map[string]team.Team, len(teams)),
		Players: make(map[string]player.Player, len(players)),
	}
	for _, t := range teams {
		out.Teams[t.ID] = t
	}
	for _, p := range players {
		out.Players[p.ID] = p
	}

	if l.DraftStatus == league.DraftStatusInProgress {
		current, exists, err := s.repos.Picks.GetByOverall(ctx, l.ID, l.CurrentPick)
		if err != nil {
			return DraftBoard{}, fmt.Errorf("get pick on the clock: %w", err)
		}
		if exists {
			out.OnClock = &current
			if t, ok := out.Teams[current.TeamID]; ok {
				out.OnClockTeam = &t
				out.CanPick = draft.OnTheClock(role, t, strings.TrimSpace(userID))
			}
		}
	}
	return out, nil
}

func (s *DraftService) draftablePlayer(ctx context.Context, playerID string) (player.Player, error) {
	p, exists, err := s.repos.Players.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	if !p.Active {
		return player.Player{}, fmt.Errorf("%w: player %s is not active", ErrInvalidInput, p.Name)
	}
	return p, nil
}

func (s *DraftService) assign(
	ctx context.Context,
	l league.League,
	pick draft.Pick,
	p player.Player,
	userID string,
	authority draft.Authority,
	at time.Time,
) (draft.Pick, error) {
	a := draft.Assignment{
		LeagueID:  l.ID,
		Overall:   pick.Overall,
		PlayerID:  p.ID,
		PickedBy:  userID,
		Authority: authority,
		PickedAt:  at,
	}
	if err := a.Validate(); err != nil {
		return draft.Pick{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	ok, err := s.repos.Picks.Assign(ctx, a)
	if errors.Is(err, draft.ErrPlayerAlreadyDrafted) {
		return draft.Pick{}, fmt.Errorf("%w: %v", ErrConflict, err)
	}
	if err != nil {
		return draft.Pick{}, fmt.Errorf("assign draft pick: %w", err)
	}
	if !ok {
		return draft.Pick{}, fmt.Errorf("%w: not your turn anymore", ErrPrecondition)
	}

	pick.PlayerID = p.ID
	pick.PickedBy = userID
	pick.Authority = authority
	pick.PickedAt = &at
	return pick, nil
}

// advance moves the pointer past overall. After the last pick the pointer
// rests one past the board and the draft is complete.
func (s *DraftService) advance(ctx context.Context, l league.League, picks []draft.Pick, overall int) (league.League, error) {
	status := league.DraftStatusInProgress
	to := overall + 1
	if next, ok := draft.NextOpen(picks, overall); ok {
		to = next.Overall
	} else {
		status = league.DraftStatusComplete
		if n := len(picks); n > 0 {
			to = picks[n-1].Overall + 1
		}
	}

	ok, err := s.repos.Leagues.AdvancePick(ctx, l.ID, overall, to, status)
	if err != nil {
		return l, fmt.Errorf("advance pick pointer: %w", err)
	}
	if !ok {
		return l, fmt.Errorf("%w: not your turn anymore", ErrPrecondition)
	}
	l.CurrentPick = to
	l.DraftStatus = status
	return l, nil
}

// placeOnRoster drops the player into the first open starting slot for
// their position, or the bench. cache may be nil.
func (s *DraftService) placeOnRoster(
	ctx context.Context,
	cache map[string][]roster.Entry,
	teamID, leagueID string,
	p player.Player,
	at time.Time,
) (roster.Slot, error) {
	current, cached := cache[teamID]
	if !cached {
		entries, err := s.repos.Rosters.ListByTeam(ctx, teamID)
		if err != nil {
			return "", fmt.Errorf("list roster: %w", err)
		}
		current = entries
	}

	entryID, err := s.ids.NewID()
	if err != nil {
		return "", fmt.Errorf("generate roster entry id: %w", err)
	}
	entry := roster.Entry{
		ID:         entryID,
		LeagueID:   leagueID,
		TeamID:     teamID,
		PlayerID:   p.ID,
		Slot:       roster.AssignSlot(p.Position, current),
		AcquiredAt: at,
	}
	if err := s.repos.Rosters.Insert(ctx, entry); err != nil {
		return "", fmt.Errorf("insert roster entry: %w", err)
	}
	if cache != nil {
		cache[teamID] = append(current, entry)
	}
	return entry.Slot, nil
}

func pickAt(picks []draft.Pick, overall int) (draft.Pick, bool) {
	for _, p := range picks {
		if p.Overall == overall {
			return p, true
		}
	}
	return draft.Pick{}, false
}
