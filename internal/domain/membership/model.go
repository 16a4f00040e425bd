package membership

import (
	"fmt"
	"strings"
	"time"
)

// Role is what a user is allowed to do inside one league.
type Role string

const (
	RoleNone         Role = ""
	RoleMember       Role = "member"
	RoleCommissioner Role = "commissioner"
)

func ParseRole(v string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(v))) {
	case RoleMember:
		return RoleMember, nil
	case RoleCommissioner:
		return RoleCommissioner, nil
	default:
		return RoleNone, fmt.Errorf("invalid membership role: %q", v)
	}
}

func (r Role) String() string {
	switch r {
	case RoleCommissioner:
		return "commissioner"
	case RoleMember:
		return "member"
	case RoleNone:
		return "none"
	default:
		return string(r)
	}
}

func (r Role) IsCommissioner() bool {
	return r == RoleCommissioner
}

func (r Role) IsMember() bool {
	switch r {
	case RoleMember, RoleCommissioner:
		return true
	case RoleNone:
		return false
	default:
		return false
	}
}

// Membership is the (league, user) pair. A user holds at most one per league.
type Membership struct {
	LeagueID string
	UserID   string
	Role     Role
	JoinedAt time.Time
}

func (m Membership) Validate() error {
	if m.LeagueID == "" {
		return fmt.Errorf("membership league id is required")
	}
	if m.UserID == "" {
		return fmt.Errorf("membership user id is required")
	}
	if !m.Role.IsMember() {
		return fmt.Errorf("invalid membership role: %q", m.Role)
	}
	return nil
}
