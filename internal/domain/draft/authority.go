package draft

import (
	"github.com/riskibarqy/draft-league/internal/domain/membership"
	"github.com/riskibarqy/draft-league/internal/domain/team"
)

// ResolveAuthority decides whether userID may pick for the team on the
// clock. The team owner picks as AuthorityOwner. A commissioner acting for
// any other team, bots included, picks as AuthorityCommissionerOverride.
func ResolveAuthority(role membership.Role, onClock team.Team, userID string) (Authority, error) {
	if onClock.OwnedBy(userID) && role.IsMember() {
		return AuthorityOwner, nil
	}

	switch role {
	case membership.RoleCommissioner:
		return AuthorityCommissionerOverride, nil
	case membership.RoleMember, membership.RoleNone:
		return "", ErrNotOnClock
	default:
		return "", ErrNotOnClock
	}
}

// OnTheClock is the display form of ResolveAuthority.
func OnTheClock(role membership.Role, onClock team.Team, userID string) bool {
	_, err := ResolveAuthority(role, onClock, userID)
	return err == nil
}
