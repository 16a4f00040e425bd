package player

import (
	"fmt"
	"strings"
)

// Position is a fantasy football roster position.
type Position string

const (
	PositionQB  Position = "QB"
	PositionRB  Position = "RB"
	PositionWR  Position = "WR"
	PositionTE  Position = "TE"
	PositionK   Position = "K"
	PositionDEF Position = "DEF"
)

var AllPositions = map[Position]struct{}{
	PositionQB:  {},
	PositionRB:  {},
	PositionWR:  {},
	PositionTE:  {},
	PositionK:   {},
	PositionDEF: {},
}

func ParsePosition(v string) (Position, error) {
	p := Position(strings.ToUpper(strings.TrimSpace(v)))
	if _, ok := AllPositions[p]; !ok {
		return "", fmt.Errorf("invalid player position: %q", v)
	}
	return p, nil
}

// Player is an entry of the read-only player catalog.
type Player struct {
	ID       string
	Name     string
	Position Position
	ProTeam  string
	// Rank orders the pool for auto picks; lower is better, zero is unranked.
	Rank   int
	Active bool
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.Rank < 0 {
		return fmt.Errorf("player rank must not be negative")
	}

	return nil
}

// Filter narrows catalog listings. Zero values mean "no constraint".
type Filter struct {
	Position   Position
	Search     string
	ActiveOnly bool
	ExcludeIDs []string
	Limit      int
	Offset     int
}
