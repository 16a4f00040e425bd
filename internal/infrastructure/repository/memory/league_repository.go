package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/riskibarqy/draft-league/internal/domain/league"
	"github.com/riskibarqy/draft-league/internal/domain/roster"
)

type LeagueRepository struct {
	store *Store
}

func NewLeagueRepository(store *Store) *LeagueRepository {
	return &LeagueRepository{store: store}
}

func (r *LeagueRepository) Create(ctx context.Context, l league.League) error {
	return r.store.update(ctx, func(st *state) error {
		if _, exists := st.leagues[l.ID]; exists {
			return fmt.Errorf("league already exists: %s", l.ID)
		}
		if l.IsActive() && activeCodeHolder(st, l.JoinCode, l.ID) {
			return league.ErrDuplicateJoinCode
		}
		st.leagues[l.ID] = l
		st.leagueOrder = append(st.leagueOrder, l.ID)
		return nil
	})
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	var (
		out league.League
		ok  bool
	)
	r.store.view(func(st *state) {
		out, ok = st.leagues[leagueID]
	})
	return out, ok, nil
}

// LockByID needs no row lock here: transactions are already serialized.
func (r *LeagueRepository) LockByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	return r.GetByID(ctx, leagueID)
}

func (r *LeagueRepository) GetActiveByJoinCode(_ context.Context, code string) (league.League, bool, error) {
	var (
		out league.League
		ok  bool
	)
	r.store.view(func(st *state) {
		for _, id := range st.leagueOrder {
			l := st.leagues[id]
			if l.IsActive() && l.JoinCode == code {
				out, ok = l, true
				return
			}
		}
	})
	return out, ok, nil
}

func (r *LeagueRepository) JoinCodeInUse(_ context.Context, code string) (bool, error) {
	var inUse bool
	r.store.view(func(st *state) {
		inUse = activeCodeHolder(st, code, "")
	})
	return inUse, nil
}

func (r *LeagueRepository) Update(ctx context.Context, l league.League) error {
	return r.store.update(ctx, func(st *state) error {
		if _, exists := st.leagues[l.ID]; !exists {
			return fmt.Errorf("league not found: %s", l.ID)
		}
		if l.IsActive() && activeCodeHolder(st, l.JoinCode, l.ID) {
			return league.ErrDuplicateJoinCode
		}
		st.leagues[l.ID] = l
		return nil
	})
}

func (r *LeagueRepository) AdvancePick(ctx context.Context, leagueID string, from, to int, status league.DraftStatus) (bool, error) {
	var advanced bool
	err := r.store.update(ctx, func(st *state) error {
		l, exists := st.leagues[leagueID]
		if !exists || l.CurrentPick != from {
			return nil
		}
		l.CurrentPick = to
		l.DraftStatus = status
		st.leagues[leagueID] = l
		advanced = true
		return nil
	})
	return advanced, err
}

// Delete cascades to everything the league owns, like the foreign keys do
// in Postgres.
func (r *LeagueRepository) Delete(ctx context.Context, leagueID string) error {
	return r.store.update(ctx, func(st *state) error {
		if _, exists := st.leagues[leagueID]; !exists {
			return nil
		}
		delete(st.leagues, leagueID)
		st.leagueOrder = slices.DeleteFunc(st.leagueOrder, func(id string) bool { return id == leagueID })

		st.memberOrder = slices.DeleteFunc(st.memberOrder, func(k memberKey) bool {
			if k.leagueID != leagueID {
				return false
			}
			delete(st.members, k)
			return true
		})
		st.teamOrder = slices.DeleteFunc(st.teamOrder, func(id string) bool {
			if st.teams[id].LeagueID != leagueID {
				return false
			}
			delete(st.teams, id)
			return true
		})
		delete(st.picks, leagueID)
		delete(st.weeks, leagueID)
		delete(st.matchups, leagueID)
		st.rosters = slices.DeleteFunc(st.rosters, func(e roster.Entry) bool { return e.LeagueID == leagueID })
		return nil
	})
}

func (r *LeagueRepository) ListByUser(_ context.Context, userID string) ([]league.League, error) {
	var out []league.League
	r.store.view(func(st *state) {
		for _, id := range st.leagueOrder {
			if _, member := st.members[memberKey{leagueID: id, userID: userID}]; member {
				out = append(out, st.leagues[id])
			}
		}
	})
	return out, nil
}

// ListPublic returns active public leagues, newest first.
func (r *LeagueRepository) ListPublic(_ context.Context, limit int) ([]league.League, error) {
	var out []league.League
	r.store.view(func(st *state) {
		for i := len(st.leagueOrder) - 1; i >= 0; i-- {
			l := st.leagues[st.leagueOrder[i]]
			if !l.IsActive() || l.Visibility != league.VisibilityPublic {
				continue
			}
			out = append(out, l)
			if limit > 0 && len(out) == limit {
				return
			}
		}
	})
	return out, nil
}

func activeCodeHolder(st *state, code, exceptID string) bool {
	for id, l := range st.leagues {
		if id != exceptID && l.IsActive() && l.JoinCode == code {
			return true
		}
	}
	return false
}
