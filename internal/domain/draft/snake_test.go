package draft

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func teamIDs(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("team-%02d", i+1)
	}
	return out
}

func TestGenerateSnakeBoardShape(t *testing.T) {
	t.Parallel()

	for teamCount := 2; teamCount <= 12; teamCount++ {
		teams := teamIDs(teamCount)
		picks, err := GenerateSnakeBoard("lg-1", teams, DefaultRounds)
		if err != nil {
			t.Fatalf("teams=%d: generate board: %v", teamCount, err)
		}
		if len(picks) != teamCount*DefaultRounds {
			t.Fatalf("teams=%d: expected %d picks, got %d", teamCount, teamCount*DefaultRounds, len(picks))
		}

		for i, p := range picks {
			if p.Overall != i+1 {
				t.Fatalf("teams=%d: overall numbers must be contiguous, pick %d has %d", teamCount, i, p.Overall)
			}
			if p.IsMade() {
				t.Fatalf("teams=%d: generated pick %d already has a player", teamCount, p.Overall)
			}
			if p.PickInRound < 1 || p.PickInRound > teamCount {
				t.Fatalf("teams=%d: pick in round out of range: %d", teamCount, p.PickInRound)
			}
		}

		rounds := GroupByRound(picks)
		if len(rounds) != DefaultRounds {
			t.Fatalf("teams=%d: expected %d rounds, got %d", teamCount, DefaultRounds, len(rounds))
		}
		for _, r := range rounds {
			order := make([]string, 0, teamCount)
			for _, p := range r.Picks {
				order = append(order, p.TeamID)
			}
			want := teams
			if r.Number%2 == 0 {
				want = reversed(teams)
			}
			if !reflect.DeepEqual(order, want) {
				t.Fatalf("teams=%d round=%d: order %v want %v", teamCount, r.Number, order, want)
			}
		}
	}
}

func TestGenerateSnakeBoardEvenRoundReversesPrevious(t *testing.T) {
	t.Parallel()

	picks, err := GenerateSnakeBoard("lg-1", []string{"a", "b", "c", "d"}, 4)
	if err != nil {
		t.Fatalf("generate board: %v", err)
	}

	rounds := GroupByRound(picks)
	for i := 1; i < len(rounds); i += 2 {
		prev := rounds[i-1].Picks
		cur := rounds[i].Picks
		for j := range cur {
			if cur[j].TeamID != prev[len(prev)-1-j].TeamID {
				t.Fatalf("round %d is not the reverse of round %d", rounds[i].Number, rounds[i-1].Number)
			}
		}
	}

	// the team picking last in round 1 picks first in round 2
	if picks[3].TeamID != "d" || picks[4].TeamID != "d" {
		t.Fatalf("expected d to pick 4th and 5th overall, got %s and %s", picks[3].TeamID, picks[4].TeamID)
	}
}

func TestGenerateSnakeBoardIsDeterministic(t *testing.T) {
	t.Parallel()

	teams := teamIDs(6)
	first, err := GenerateSnakeBoard("lg-1", teams, DefaultRounds)
	if err != nil {
		t.Fatalf("first board: %v", err)
	}
	second, err := GenerateSnakeBoard("lg-1", teams, DefaultRounds)
	if err != nil {
		t.Fatalf("second board: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("boards differ for identical input")
	}
}

func TestGenerateSnakeBoardRejectsBadInput(t *testing.T) {
	t.Parallel()

	if _, err := GenerateSnakeBoard("lg-1", []string{"solo"}, DefaultRounds); !errors.Is(err, ErrTooFewTeams) {
		t.Fatalf("expected ErrTooFewTeams, got %v", err)
	}
	if _, err := GenerateSnakeBoard("lg-1", []string{"a", "a"}, DefaultRounds); err == nil {
		t.Fatalf("expected error for duplicate team")
	}
	if _, err := GenerateSnakeBoard("lg-1", []string{"a", "b"}, 0); err == nil {
		t.Fatalf("expected error for zero rounds")
	}
}

func TestNextOpen(t *testing.T) {
	t.Parallel()

	picks, _ := GenerateSnakeBoard("lg-1", []string{"a", "b"}, 2)
	picks[1].PlayerID = "p2"

	next, ok := NextOpen(picks, 1)
	if !ok || next.Overall != 3 {
		t.Fatalf("expected pick 3 to be next open, got %+v ok=%t", next, ok)
	}
	if _, ok := NextOpen(picks, 4); ok {
		t.Fatalf("expected no open pick after the last one")
	}
}

func reversed(in []string) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}
