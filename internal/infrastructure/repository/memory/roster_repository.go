package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/riskibarqy/draft-league/internal/domain/roster"
)

type RosterRepository struct {
	store *Store
}

func NewRosterRepository(store *Store) *RosterRepository {
	return &RosterRepository{store: store}
}

func (r *RosterRepository) Insert(ctx context.Context, e roster.Entry) error {
	return r.store.update(ctx, func(st *state) error {
		t, exists := st.teams[e.TeamID]
		if !exists {
			return fmt.Errorf("team not found: %s", e.TeamID)
		}
		if t.LeagueID != e.LeagueID {
			return fmt.Errorf("team %s is not in league %s", e.TeamID, e.LeagueID)
		}
		if slices.ContainsFunc(st.rosters, func(existing roster.Entry) bool {
			return existing.LeagueID == e.LeagueID && existing.PlayerID == e.PlayerID
		}) {
			return fmt.Errorf("player %s already rostered in league %s", e.PlayerID, e.LeagueID)
		}
		st.rosters = append(st.rosters, e)
		return nil
	})
}

func (r *RosterRepository) ListByTeam(_ context.Context, teamID string) ([]roster.Entry, error) {
	var out []roster.Entry
	r.store.view(func(st *state) {
		for _, e := range st.rosters {
			if e.TeamID == teamID {
				out = append(out, e)
			}
		}
	})
	return out, nil
}

func (r *RosterRepository) ListByLeague(_ context.Context, leagueID string) ([]roster.Entry, error) {
	var out []roster.Entry
	r.store.view(func(st *state) {
		for _, e := range st.rosters {
			if e.LeagueID == leagueID {
				out = append(out, e)
			}
		}
	})
	return out, nil
}

func (r *RosterRepository) DeleteByTeam(ctx context.Context, teamID string) error {
	return r.store.update(ctx, func(st *state) error {
		st.rosters = slices.DeleteFunc(st.rosters, func(e roster.Entry) bool { return e.TeamID == teamID })
		return nil
	})
}

func (r *RosterRepository) DeleteByLeague(ctx context.Context, leagueID string) error {
	return r.store.update(ctx, func(st *state) error {
		st.rosters = slices.DeleteFunc(st.rosters, func(e roster.Entry) bool { return e.LeagueID == leagueID })
		return nil
	})
}
