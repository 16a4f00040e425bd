package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/riskibarqy/draft-league/internal/domain/draft"
	"github.com/riskibarqy/draft-league/internal/domain/roster"
	"github.com/riskibarqy/draft-league/internal/domain/schedule"
	"github.com/riskibarqy/draft-league/internal/domain/team"
)

type TeamRepository struct {
	store *Store
}

func NewTeamRepository(store *Store) *TeamRepository {
	return &TeamRepository{store: store}
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) error {
	return r.store.update(ctx, func(st *state) error {
		if _, exists := st.leagues[t.LeagueID]; !exists {
			return fmt.Errorf("league not found: %s", t.LeagueID)
		}
		if _, exists := st.teams[t.ID]; exists {
			return fmt.Errorf("team already exists: %s", t.ID)
		}
		st.teams[t.ID] = t
		st.teamOrder = append(st.teamOrder, t.ID)
		return nil
	})
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	var (
		out team.Team
		ok  bool
	)
	r.store.view(func(st *state) {
		out, ok = st.teams[teamID]
	})
	return out, ok, nil
}

func (r *TeamRepository) GetByOwner(_ context.Context, leagueID, userID string) (team.Team, bool, error) {
	var (
		out team.Team
		ok  bool
	)
	r.store.view(func(st *state) {
		for _, id := range st.teamOrder {
			t := st.teams[id]
			if t.LeagueID == leagueID && t.OwnedBy(userID) {
				out, ok = t, true
				return
			}
		}
	})
	return out, ok, nil
}

func (r *TeamRepository) ListByLeague(_ context.Context, leagueID string) ([]team.Team, error) {
	var out []team.Team
	r.store.view(func(st *state) {
		for _, id := range st.teamOrder {
			if t := st.teams[id]; t.LeagueID == leagueID {
				out = append(out, t)
			}
		}
	})
	return out, nil
}

func (r *TeamRepository) CountClaimed(_ context.Context, leagueID string) (int, error) {
	count := 0
	r.store.view(func(st *state) {
		for _, t := range st.teams {
			if t.LeagueID == leagueID && t.Claimed {
				count++
			}
		}
	})
	return count, nil
}

func (r *TeamRepository) UpdateRecord(ctx context.Context, teamID string, record team.Record) error {
	return r.store.update(ctx, func(st *state) error {
		t, exists := st.teams[teamID]
		if !exists {
			return fmt.Errorf("team not found: %s", teamID)
		}
		t.Record = record
		st.teams[teamID] = t
		return nil
	})
}

func (r *TeamRepository) ResetRecords(ctx context.Context, leagueID string) error {
	return r.store.update(ctx, func(st *state) error {
		for id, t := range st.teams {
			if t.LeagueID == leagueID {
				t.Record = team.Record{}
				st.teams[id] = t
			}
		}
		return nil
	})
}

// Delete also drops the team's picks and matchups, mirroring the cascade.
func (r *TeamRepository) Delete(ctx context.Context, teamID string) error {
	return r.store.update(ctx, func(st *state) error {
		t, exists := st.teams[teamID]
		if !exists {
			return nil
		}
		delete(st.teams, teamID)
		st.teamOrder = slices.DeleteFunc(st.teamOrder, func(id string) bool { return id == teamID })
		st.picks[t.LeagueID] = slices.DeleteFunc(st.picks[t.LeagueID], func(p draft.Pick) bool { return p.TeamID == teamID })
		st.matchups[t.LeagueID] = slices.DeleteFunc(st.matchups[t.LeagueID], func(m schedule.Matchup) bool { return m.Involves(teamID) })
		st.rosters = slices.DeleteFunc(st.rosters, func(e roster.Entry) bool { return e.TeamID == teamID })
		return nil
	})
}
