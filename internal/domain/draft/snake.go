package draft

import "fmt"

// GenerateSnakeBoard lays out rounds*len(teamIDs) empty picks. Odd rounds use
// teamIDs as given, even rounds the reverse; overall numbers run 1..N.
func GenerateSnakeBoard(leagueID string, teamIDs []string, rounds int) ([]Pick, error) {
	if len(teamIDs) < 2 {
		return nil, ErrTooFewTeams
	}
	if rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive")
	}

	seen := make(map[string]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		if id == "" {
			return nil, fmt.Errorf("team id is required")
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("duplicate team id in draft order: %s", id)
		}
		seen[id] = struct{}{}
	}

	teamCount := len(teamIDs)
	picks := make([]Pick, 0, rounds*teamCount)
	overall := 1
	for round := 1; round <= rounds; round++ {
		reversed := round%2 == 0
		for i := 0; i < teamCount; i++ {
			idx := i
			if reversed {
				idx = teamCount - 1 - i
			}
			picks = append(picks, Pick{
				LeagueID:    leagueID,
				Overall:     overall,
				Round:       round,
				PickInRound: i + 1,
				TeamID:      teamIDs[idx],
			})
			overall++
		}
	}

	return picks, nil
}

// GroupByRound splits a board ordered by overall pick into rounds.
func GroupByRound(picks []Pick) []Round {
	var out []Round
	for _, p := range picks {
		if len(out) == 0 || out[len(out)-1].Number != p.Round {
			out = append(out, Round{Number: p.Round})
		}
		last := &out[len(out)-1]
		last.Picks = append(last.Picks, p)
	}
	return out
}

// NextOpen returns the first unmade pick after overall, if any.
func NextOpen(picks []Pick, overall int) (Pick, bool) {
	for _, p := range picks {
		if p.Overall > overall && !p.IsMade() {
			return p, true
		}
	}
	return Pick{}, false
}
