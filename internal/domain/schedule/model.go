package schedule

import (
	"strconv"
	"time"
)

// DefaultWeeks is the regular season length used when none is configured.
const DefaultWeeks = 14

// Week is one scoring period of a league season. StartsAt is zero when the
// week has no start date.
type Week struct {
	ID        string
	LeagueID  string
	Number    int
	Label     string
	StartsAt  time.Time
	Completed bool
}

// Matchup pits a home team against an away team in one week.
type Matchup struct {
	ID         string
	LeagueID   string
	WeekID     string
	WeekNumber int
	HomeTeamID string
	AwayTeamID string
	HomeScore  float64
	AwayScore  float64
}

// Involves reports whether teamID plays in the matchup.
func (m Matchup) Involves(teamID string) bool {
	return m.HomeTeamID == teamID || m.AwayTeamID == teamID
}

func WeekLabel(n int) string {
	return "Week " + strconv.Itoa(n)
}
