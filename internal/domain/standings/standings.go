package standings

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/draft-league/internal/domain/schedule"
	"github.com/riskibarqy/draft-league/internal/domain/team"
)

// Row is one line of the standings table.
type Row struct {
	Rank   int
	Team   team.Team
	WinPct string
}

// Order sorts teams by wins desc, points for desc, losses asc. Name and id
// only make the order deterministic; head-to-head is not considered.
func Order(teams []team.Team) []team.Team {
	out := append([]team.Team(nil), teams...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.PointsFor != b.PointsFor {
			return a.PointsFor > b.PointsFor
		}
		if a.Losses != b.Losses {
			return a.Losses < b.Losses
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	return out
}

func Build(teams []team.Team) []Row {
	ordered := Order(teams)
	rows := make([]Row, 0, len(ordered))
	for i, t := range ordered {
		rows = append(rows, Row{
			Rank:   i + 1,
			Team:   t,
			WinPct: WinPercentage(t.Record),
		})
	}
	return rows
}

// Top returns at most n leading rows.
func Top(rows []Row, n int) []Row {
	if n < 0 || n >= len(rows) {
		return rows
	}
	return rows[:n]
}

// WinPercentage renders (W + T/2) / G with three decimals and no leading
// zero, ".000" when no games were played.
func WinPercentage(r team.Record) string {
	games := r.GamesPlayed()
	if games == 0 {
		return ".000"
	}
	pct := (float64(r.Wins) + 0.5*float64(r.Ties)) / float64(games)
	return strings.TrimPrefix(strconv.FormatFloat(pct, 'f', 3, 64), "0")
}

// CurrentWeek is the highest week that has started by now, falling back to
// week 1 when none has (or none has a start date).
func CurrentWeek(weeks []schedule.Week, now time.Time) int {
	current := 0
	for _, w := range weeks {
		if w.StartsAt.IsZero() || w.StartsAt.After(now) {
			continue
		}
		if w.Number > current {
			current = w.Number
		}
	}
	if current == 0 {
		return 1
	}
	return current
}

// Recompute rebuilds every team's record from the matchups of completed
// weeks. Teams without games get a zero record.
func Recompute(teamIDs []string, weeks []schedule.Week, matchups []schedule.Matchup) map[string]team.Record {
	completed := make(map[int]struct{}, len(weeks))
	for _, w := range weeks {
		if w.Completed {
			completed[w.Number] = struct{}{}
		}
	}

	records := make(map[string]team.Record, len(teamIDs))
	for _, id := range teamIDs {
		records[id] = team.Record{}
	}
	for _, m := range matchups {
		if _, ok := completed[m.WeekNumber]; !ok {
			continue
		}
		home := records[m.HomeTeamID]
		away := records[m.AwayTeamID]
		home.PointsFor += m.HomeScore
		home.PointsAgainst += m.AwayScore
		away.PointsFor += m.AwayScore
		away.PointsAgainst += m.HomeScore
		switch {
		case m.HomeScore > m.AwayScore:
			home.Wins++
			away.Losses++
		case m.HomeScore < m.AwayScore:
			home.Losses++
			away.Wins++
		default:
			home.Ties++
			away.Ties++
		}
		records[m.HomeTeamID] = home
		records[m.AwayTeamID] = away
	}
	return records
}
