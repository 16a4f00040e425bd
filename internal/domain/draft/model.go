package draft

import (
	"errors"
	"fmt"
	"time"
)

// DefaultRounds is the number of rounds a board is generated with.
const DefaultRounds = 15

var (
	// ErrPlayerAlreadyDrafted is returned by stores when the player already
	// sits on another pick of the same league.
	ErrPlayerAlreadyDrafted = errors.New("player already drafted in this league")
	ErrTooFewTeams          = errors.New("need at least 2 teams")
	ErrNotOnClock           = errors.New("you are not on the clock")
)

// Authority records on whose behalf a pick was made.
type Authority string

const (
	AuthorityOwner                Authority = "owner"
	AuthorityCommissionerOverride Authority = "commissioner_override"
	AuthorityAuto                 Authority = "auto"
)

// Pick is one slot of the draft board. PlayerID is empty until the pick is
// made; after that the slot is only cleared by regenerating the board.
type Pick struct {
	LeagueID    string
	Overall     int
	Round       int
	PickInRound int
	TeamID      string
	PlayerID    string
	PickedBy    string
	Authority   Authority
	PickedAt    *time.Time
}

func (p Pick) IsMade() bool {
	return p.PlayerID != ""
}

// Assignment is a request to write a player onto the pick on the clock.
type Assignment struct {
	LeagueID  string
	Overall   int
	PlayerID  string
	PickedBy  string
	Authority Authority
	PickedAt  time.Time
}

func (a Assignment) Validate() error {
	if a.LeagueID == "" {
		return fmt.Errorf("assignment league id is required")
	}
	if a.Overall <= 0 {
		return fmt.Errorf("assignment overall pick must be positive")
	}
	if a.PlayerID == "" {
		return fmt.Errorf("assignment player id is required")
	}
	switch a.Authority {
	case AuthorityOwner, AuthorityCommissionerOverride, AuthorityAuto:
		return nil
	default:
		return fmt.Errorf("invalid pick authority: %q", a.Authority)
	}
}

// Round groups the picks of one draft round in pick order.
type Round struct {
	Number int
	Picks  []Pick
}
