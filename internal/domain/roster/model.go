package roster

import (
	"time"

	"github.com/riskibarqy/draft-league/internal/domain/player"
)

// Slot is a roster position label. Everything except SlotBench is a starter.
type Slot string

const (
	SlotQB    Slot = "QB"
	SlotRB1   Slot = "RB1"
	SlotRB2   Slot = "RB2"
	SlotWR1   Slot = "WR1"
	SlotWR2   Slot = "WR2"
	SlotTE    Slot = "TE"
	SlotFlex  Slot = "FLEX"
	SlotK     Slot = "K"
	SlotDEF   Slot = "DEF"
	SlotBench Slot = "BN"
)

// StartingSlots is the lineup in display order.
var StartingSlots = []Slot{SlotQB, SlotRB1, SlotRB2, SlotWR1, SlotWR2, SlotTE, SlotFlex, SlotK, SlotDEF}

func (s Slot) IsStarter() bool {
	return s != SlotBench && s != ""
}

// Accepts reports whether a player at position p may start in slot s.
func (s Slot) Accepts(p player.Position) bool {
	switch s {
	case SlotQB:
		return p == player.PositionQB
	case SlotRB1, SlotRB2:
		return p == player.PositionRB
	case SlotWR1, SlotWR2:
		return p == player.PositionWR
	case SlotTE:
		return p == player.PositionTE
	case SlotFlex:
		return p == player.PositionRB || p == player.PositionWR || p == player.PositionTE
	case SlotK:
		return p == player.PositionK
	case SlotDEF:
		return p == player.PositionDEF
	case SlotBench:
		return true
	default:
		return false
	}
}

// Entry places one drafted player on one team.
type Entry struct {
	ID         string
	LeagueID   string
	TeamID     string
	PlayerID   string
	Slot       Slot
	AcquiredAt time.Time
}

// AssignSlot returns the first open starting slot that accepts the position,
// or the bench when the lineup has no room for it.
func AssignSlot(pos player.Position, current []Entry) Slot {
	taken := make(map[Slot]struct{}, len(current))
	for _, e := range current {
		if e.Slot.IsStarter() {
			taken[e.Slot] = struct{}{}
		}
	}
	for _, slot := range StartingSlots {
		if _, ok := taken[slot]; ok {
			continue
		}
		if slot.Accepts(pos) {
			return slot
		}
	}
	return SlotBench
}

// Split partitions entries into starters (lineup order) and bench.
func Split(entries []Entry) (starters, bench []Entry) {
	bySlot := make(map[Slot]Entry, len(entries))
	for _, e := range entries {
		if e.Slot.IsStarter() {
			bySlot[e.Slot] = e
			continue
		}
		bench = append(bench, e)
	}
	for _, slot := range StartingSlots {
		if e, ok := bySlot[slot]; ok {
			starters = append(starters, e)
		}
	}
	return starters, bench
}
