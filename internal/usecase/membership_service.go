package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/draft-league/internal/domain/league"
	"github.com/riskibarqy/draft-league/internal/domain/membership"
	"github.com/riskibarqy/draft-league/internal/platform/logging"
)

// MembershipService answers "who may do what" inside a league. Every
// privileged operation goes through RequireCommissioner so a missing or
// unreadable membership always fails closed.
type MembershipService struct {
	repos  Repositories
	tx     Transactor
	logger *logging.Logger
}

func NewMembershipService(repos Repositories, tx Transactor, logger *logging.Logger) *MembershipService {
	if tx == nil {
		tx = NoTx
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &MembershipService{
		repos:  repos,
		tx:     tx,
		logger: logger,
	}
}

// RoleOf returns RoleNone when the user has no membership row.
func (s *MembershipService) RoleOf(ctx context.Context, leagueID, userID string) (membership.Role, error) {
	leagueID = strings.TrimSpace(leagueID)
	userID = strings.TrimSpace(userID)
	if leagueID == "" || userID == "" {
		return membership.RoleNone, nil
	}

	m, exists, err := s.repos.Members.Get(ctx, leagueID, userID)
	if err != nil {
		return membership.RoleNone, fmt.Errorf("get membership: %w", err)
	}
	if !exists {
		return membership.RoleNone, nil
	}
	return m.Role, nil
}

// RequireCommissioner returns ErrUnauthorized unless userID is the league's
// commissioner. Lookup failures are reported as ErrUnauthorized too.
func (s *MembershipService) RequireCommissioner(ctx context.Context, leagueID, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrUnauthenticated
	}

	role, err := s.RoleOf(ctx, leagueID, userID)
	if err != nil {
		s.logger.WarnContext(ctx, "commissioner check failed",
			"league_id", leagueID,
			"user_id", userID,
			"error", err,
		)
		return fmt.Errorf("%w: could not verify commissioner role", ErrUnauthorized)
	}
	if !role.IsCommissioner() {
		return fmt.Errorf("%w: only the commissioner can do that", ErrUnauthorized)
	}
	return nil
}

// RequireMember returns the caller's role, or ErrUnauthorized when they do
// not belong to the league.
func (s *MembershipService) RequireMember(ctx context.Context, leagueID, userID string) (membership.Role, error) {
	if strings.TrimSpace(userID) == "" {
		return membership.RoleNone, ErrUnauthenticated
	}

	role, err := s.RoleOf(ctx, leagueID, userID)
	if err != nil {
		return membership.RoleNone, err
	}
	if !role.IsMember() {
		return membership.RoleNone, fmt.Errorf("%w: you are not a member of this league", ErrUnauthorized)
	}
	return role, nil
}

// RequireViewer allows anyone signed in to read a public league and only
// members to read a private one.
func (s *MembershipService) RequireViewer(ctx context.Context, l league.League, userID string) (membership.Role, error) {
	if strings.TrimSpace(userID) == "" {
		return membership.RoleNone, ErrUnauthenticated
	}

	role, err := s.RoleOf(ctx, l.ID, userID)
	if err != nil {
		return membership.RoleNone, err
	}
	if l.Visibility == league.VisibilityPrivate && !role.IsMember() {
		return membership.RoleNone, fmt.Errorf("%w: this league is private", ErrUnauthorized)
	}
	return role, nil
}

// EnsureMember inserts a member row unless one exists. An existing
// commissioner row is left untouched.
func (s *MembershipService) EnsureMember(ctx context.Context, leagueID, userID string, role membership.Role) error {
	m := membership.Membership{
		LeagueID: strings.TrimSpace(leagueID),
		UserID:   strings.TrimSpace(userID),
		Role:     role,
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.repos.Members.Insert(ctx, m); err != nil {
		return fmt.Errorf("insert membership: %w", err)
	}
	return nil
}

func (s *MembershipService) ListMembers(ctx context.Context, leagueID, userID string) ([]membership.Membership, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MembershipService.ListMembers")
	defer span.End()

	if _, err := s.RequireMember(ctx, leagueID, userID); err != nil {
		return nil, err
	}

	items, err := s.repos.Members.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	return items, nil
}

type TransferCommissionerInput struct {
	UserID       string
	LeagueID     string
	TargetUserID string
}

// TransferCommissioner hands the commissioner role to another member. The
// caller becomes a plain member in the same transaction.
func (s *MembershipService) TransferCommissioner(ctx context.Context, input TransferCommissionerInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MembershipService.TransferCommissioner")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.TargetUserID = strings.TrimSpace(input.TargetUserID)
	if input.TargetUserID == "" {
		return fmt.Errorf("%w: target user id is required", ErrInvalidInput)
	}
	if err := s.RequireCommissioner(ctx, input.LeagueID, input.UserID); err != nil {
		return err
	}
	if input.TargetUserID == input.UserID {
		return fmt.Errorf("%w: you are already the commissioner", ErrInvalidInput)
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		target, exists, err := s.repos.Members.Get(ctx, input.LeagueID, input.TargetUserID)
		if err != nil {
			return fmt.Errorf("get target membership: %w", err)
		}
		if !exists || !target.Role.IsMember() {
			return fmt.Errorf("%w: target user is not a member of this league", ErrNotFound)
		}
		if err := s.repos.Members.UpdateRole(ctx, input.LeagueID, input.UserID, membership.RoleMember); err != nil {
			return fmt.Errorf("demote commissioner: %w", err)
		}
		if err := s.repos.Members.UpdateRole(ctx, input.LeagueID, input.TargetUserID, membership.RoleCommissioner); err != nil {
			return fmt.Errorf("promote commissioner: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "commissioner transferred",
		"league_id", input.LeagueID,
		"from_user_id", input.UserID,
		"to_user_id", input.TargetUserID,
	)
	return nil
}
