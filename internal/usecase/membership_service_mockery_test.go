package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/riskibarqy/draft-league/internal/domain/league"
	"github.com/riskibarqy/draft-league/internal/domain/membership"
	leaguemock "github.com/riskibarqy/draft-league/internal/mocks/domain/league"
	membershipmock "github.com/riskibarqy/draft-league/internal/mocks/domain/membership"
	idgen "github.com/riskibarqy/draft-league/internal/platform/id"
	"github.com/riskibarqy/draft-league/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func TestMembershipService_RequireCommissioner_LookupErrorFailsClosedUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	memberRepo := membershipmock.NewRepository(t)
	service := NewMembershipService(Repositories{Members: memberRepo}, nil, logging.NewNop())

	memberRepo.
		On("Get", mock.Anything, "lg-1", "user-1").
		Return(membership.Membership{}, false, errors.New("connection reset")).
		Once()

	err := service.RequireCommissioner(ctx, "lg-1", "user-1")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if strings.Contains(err.Error(), "connection reset") {
		t.Fatalf("expected store error to stay out of the caller-facing message, got %v", err)
	}
}

func TestMembershipService_RequireCommissioner_MemberIsRejectedUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	memberRepo := membershipmock.NewRepository(t)
	service := NewMembershipService(Repositories{Members: memberRepo}, nil, logging.NewNop())

	memberRepo.
		On("Get", mock.Anything, "lg-1", "user-2").
		Return(membership.Membership{LeagueID: "lg-1", UserID: "user-2", Role: membership.RoleMember}, true, nil).
		Once()

	err := service.RequireCommissioner(ctx, "lg-1", "user-2")
	if !errors.Is(err, ErrUnauthorized) || !strings.Contains(err.Error(), "only the commissioner can do that") {
		t.Fatalf("expected commissioner rejection, got %v", err)
	}
}

func TestMembershipService_TransferCommissioner_SwapsRolesUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	memberRepo := membershipmock.NewRepository(t)
	var txCalls int
	tx := TransactorFunc(func(ctx context.Context, fn func(ctx context.Context) error) error {
		txCalls++
		return fn(ctx)
	})
	service := NewMembershipService(Repositories{Members: memberRepo}, tx, logging.NewNop())

	memberRepo.
		On("Get", mock.Anything, "lg-1", "owner").
		Return(membership.Membership{LeagueID: "lg-1", UserID: "owner", Role: membership.RoleCommissioner}, true, nil).
		Once()
	memberRepo.
		On("Get", mock.Anything, "lg-1", "heir").
		Return(membership.Membership{LeagueID: "lg-1", UserID: "heir", Role: membership.RoleMember}, true, nil).
		Once()
	memberRepo.
		On("UpdateRole", mock.Anything, "lg-1", "owner", membership.RoleMember).
		Return(nil).
		Once()
	memberRepo.
		On("UpdateRole", mock.Anything, "lg-1", "heir", membership.RoleCommissioner).
		Return(nil).
		Once()

	err := service.TransferCommissioner(ctx, TransferCommissionerInput{UserID: "owner", LeagueID: "lg-1", TargetUserID: "heir"})
	if err != nil {
		t.Fatalf("transfer commissioner: %v", err)
	}
	if txCalls != 1 {
		t.Fatalf("expected one transaction, got %d", txCalls)
	}
}

func TestMembershipService_TransferCommissioner_TargetNotMemberUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	memberRepo := membershipmock.NewRepository(t)
	service := NewMembershipService(Repositories{Members: memberRepo}, nil, logging.NewNop())

	memberRepo.
		On("Get", mock.Anything, "lg-1", "owner").
		Return(membership.Membership{LeagueID: "lg-1", UserID: "owner", Role: membership.RoleCommissioner}, true, nil).
		Once()
	memberRepo.
		On("Get", mock.Anything, "lg-1", "stranger").
		Return(membership.Membership{}, false, nil).
		Once()

	err := service.TransferCommissioner(ctx, TransferCommissionerInput{UserID: "owner", LeagueID: "lg-1", TargetUserID: "stranger"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	memberRepo.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLeagueService_GetLeague_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagueRepo := leaguemock.NewRepository(t)
	memberRepo := membershipmock.NewRepository(t)
	repos := Repositories{Leagues: leagueRepo, Members: memberRepo}
	members := NewMembershipService(repos, nil, logging.NewNop())
	service := NewLeagueService(repos, members, nil, idgen.NewSequenceGenerator("id"), logging.NewNop())

	leagueRepo.
		On("GetByID", mock.Anything, "missing-league").
		Return(league.League{}, false, nil).
		Once()

	_, err := service.GetLeague(ctx, "user-1", "missing-league")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLeagueService_ListMyLeagues_RepositoryErrorUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagueRepo := leaguemock.NewRepository(t)
	repos := Repositories{Leagues: leagueRepo}
	service := NewLeagueService(repos, NewMembershipService(repos, nil, logging.NewNop()), nil, idgen.NewSequenceGenerator("id"), logging.NewNop())

	storeErr := errors.New("statement timeout")
	leagueRepo.
		On("ListByUser", mock.Anything, "user-1").
		Return(nil, storeErr).
		Once()

	_, err := service.ListMyLeagues(ctx, "user-1")
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}
