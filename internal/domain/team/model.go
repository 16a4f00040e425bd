package team

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	botNamePrefix = "CPU Team "

	MaxNameLength = 60
)

// Record is a team's cumulative result line for the season.
type Record struct {
	Wins          int
	Losses        int
	Ties          int
	PointsFor     float64
	PointsAgainst float64
}

func (r Record) GamesPlayed() int {
	return r.Wins + r.Losses + r.Ties
}

// Team is one fantasy team inside a league. Teams without an owner are
// placeholder (bot) teams.
type Team struct {
	ID          string
	LeagueID    string
	OwnerUserID string
	Name        string
	Claimed     bool
	Record
	CreatedAt time.Time
}

func (t Team) IsBot() bool {
	return t.OwnerUserID == ""
}

func (t Team) OwnedBy(userID string) bool {
	return userID != "" && t.OwnerUserID == userID
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.LeagueID == "" {
		return fmt.Errorf("team league id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if len([]rune(t.Name)) > MaxNameLength {
		return fmt.Errorf("team name must be at most %d characters", MaxNameLength)
	}
	return nil
}

func BotName(n int) string {
	return botNamePrefix + strconv.Itoa(n)
}

// ParseBotNumber extracts N from "CPU Team N".
func ParseBotNumber(name string) (int, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(name), botNamePrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// NextBotNumber picks the number for the next placeholder team. The highest
// existing "CPU Team N" wins; with no bots yet it falls back to
// claimedCount+1. The league's persisted counter keeps numbers monotonic even
// after bots are deleted.
func NextBotNumber(names []string, claimedCount, counter int) int {
	highest := 0
	for _, name := range names {
		if n, ok := ParseBotNumber(name); ok && n > highest {
			highest = n
		}
	}

	next := claimedCount + 1
	if highest > 0 {
		next = highest + 1
	}
	if counter >= next {
		next = counter + 1
	}
	return next
}
