package schedule

import (
	"fmt"
	"time"
)

// Pairing is one home/away game in a generated week.
type Pairing struct {
	HomeTeamID string
	AwayTeamID string
}

// WeekPlan is a generated week before ids are assigned.
type WeekPlan struct {
	Number    int
	Label     string
	StartsAt  time.Time
	Pairings  []Pairing
	ByeTeamID string
}

// RoundRobin pairs teams with the circle method: one team stays fixed while
// the rest rotate, so every team meets every other team once per cycle of
// T-1 weeks (T rounded up to even). With an odd team count one team per week
// gets a bye. Cycles alternate orientation, so a game hosted by A in one
// cycle is hosted by B in the next. Over the returned weeks no team's home
// and away counts differ by more than one, including partial cycles.
func RoundRobin(teamIDs []string, weeks int) ([][]Pairing, []string, error) {
	if len(teamIDs) < 2 {
		return nil, nil, fmt.Errorf("need at least 2 teams")
	}
	if weeks <= 0 {
		return nil, nil, fmt.Errorf("weeks must be positive")
	}

	slots := append([]string(nil), teamIDs...)
	if len(slots)%2 == 1 {
		slots = append(slots, "")
	}
	n := len(slots)
	roundsPerCycle := n - 1

	schedule := make([][]Pairing, 0, weeks)
	byes := make([]string, 0, weeks)
	for w := 0; w < weeks; w++ {
		round := w % roundsPerCycle
		mirrored := (w/roundsPerCycle)%2 == 1
		order := rotation(slots, round)

		pairings := make([]Pairing, 0, n/2)
		bye := ""
		for i := 0; i < n/2; i++ {
			a, b := order[i], order[n-1-i]
			if a == "" || b == "" {
				bye = a + b
				continue
			}
			home, away := orient(a, b, i, round)
			if mirrored {
				home, away = away, home
			}
			pairings = append(pairings, Pairing{HomeTeamID: home, AwayTeamID: away})
		}
		schedule = append(schedule, pairings)
		byes = append(byes, bye)
	}

	balanceHomeAway(schedule, teamIDs)
	return schedule, byes, nil
}

type gameRef struct {
	week, index int
}

type chainStep struct {
	from string
	game gameRef
}

// balanceHomeAway evens out hosting over the whole season. A team with two
// or more surplus home games hands one to a team short of home games by
// flipping every game along a home->away chain between them; teams inside
// the chain keep their counts. Late weeks are tried first so full cycles
// keep their rotation pattern.
func balanceHomeAway(weeks [][]Pairing, teamIDs []string) {
	diff := make(map[string]int, len(teamIDs))
	for _, games := range weeks {
		for _, g := range games {
			diff[g.HomeTeamID]++
			diff[g.AwayTeamID]--
		}
	}

	for {
		start, hosting := "", true
		for _, id := range teamIDs {
			if diff[id] >= 2 {
				start = id
				break
			}
		}
		if start == "" {
			hosting = false
			for _, id := range teamIDs {
				if diff[id] <= -2 {
					start = id
					break
				}
			}
		}
		if start == "" || !flipChain(weeks, diff, start, hosting) {
			return
		}
	}
}

// flipChain searches breadth first from start along games start hosts
// (hosting) or visits (!hosting) for a team with the opposite surplus, then
// reverses every game on that chain.
func flipChain(weeks [][]Pairing, diff map[string]int, start string, hosting bool) bool {
	prev := map[string]chainStep{start: {}}
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for w := len(weeks) - 1; w >= 0; w-- {
			for i, g := range weeks[w] {
				var next string
				switch {
				case hosting && g.HomeTeamID == cur:
					next = g.AwayTeamID
				case !hosting && g.AwayTeamID == cur:
					next = g.HomeTeamID
				default:
					continue
				}
				if _, seen := prev[next]; seen {
					continue
				}
				prev[next] = chainStep{from: cur, game: gameRef{week: w, index: i}}

				if (hosting && diff[next] < 0) || (!hosting && diff[next] > 0) {
					for t := next; t != start; t = prev[t].from {
						p := &weeks[prev[t].game.week][prev[t].game.index]
						p.HomeTeamID, p.AwayTeamID = p.AwayTeamID, p.HomeTeamID
					}
					shift := 2
					if !hosting {
						shift = -2
					}
					diff[start] -= shift
					diff[next] += shift
					return true
				}
				queue = append(queue, next)
			}
		}
	}
	return false
}

// rotation keeps slots[0] in place and rotates the rest right by round.
func rotation(slots []string, round int) []string {
	n := len(slots)
	out := make([]string, n)
	out[0] = slots[0]
	for i := 1; i < n; i++ {
		src := 1 + ((i-1-round)%(n-1)+(n-1))%(n-1)
		out[i] = slots[src]
	}
	return out
}

// orient alternates hosting by round for the fixed seat and by seat parity
// for the rotating seats, so most teams alternate home and away week to
// week. balanceHomeAway corrects what this leaves uneven.
func orient(a, b string, seat, round int) (string, string) {
	if seat == 0 {
		if round%2 == 0 {
			return a, b
		}
		return b, a
	}
	if seat%2 == 1 {
		return a, b
	}
	return b, a
}

// Plan builds a full season: weekly start dates one week apart from
// firstWeek, labels, and pairings.
func Plan(teamIDs []string, weeks int, firstWeek time.Time) ([]WeekPlan, error) {
	pairings, byes, err := RoundRobin(teamIDs, weeks)
	if err != nil {
		return nil, err
	}

	out := make([]WeekPlan, 0, weeks)
	for i, games := range pairings {
		number := i + 1
		out = append(out, WeekPlan{
			Number:    number,
			Label:     WeekLabel(number),
			StartsAt:  firstWeek.AddDate(0, 0, 7*i),
			Pairings:  games,
			ByeTeamID: byes[i],
		})
	}
	return out, nil
}

// FirstWeekStart anchors week 1 at midnight UTC of the day the league starts.
func FirstWeekStart(startedAt time.Time) time.Time {
	u := startedAt.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
