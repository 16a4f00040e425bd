package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/riskibarqy/draft-league/internal/domain/draft"
)

type DraftRepository struct {
	store *Store
}

func NewDraftRepository(store *Store) *DraftRepository {
	return &DraftRepository{store: store}
}

func (r *DraftRepository) InsertBoard(ctx context.Context, picks []draft.Pick) error {
	if len(picks) == 0 {
		return nil
	}
	return r.store.update(ctx, func(st *state) error {
		leagueID := picks[0].LeagueID
		if _, exists := st.leagues[leagueID]; !exists {
			return fmt.Errorf("league not found: %s", leagueID)
		}
		board := slices.Clone(st.picks[leagueID])
		for _, p := range picks {
			if p.LeagueID != leagueID {
				return fmt.Errorf("draft board spans leagues: %s, %s", leagueID, p.LeagueID)
			}
			if slices.ContainsFunc(board, func(existing draft.Pick) bool { return existing.Overall == p.Overall }) {
				return fmt.Errorf("duplicate overall pick %d in league %s", p.Overall, leagueID)
			}
			board = append(board, p)
		}
		slices.SortFunc(board, func(a, b draft.Pick) int { return a.Overall - b.Overall })
		st.picks[leagueID] = board
		return nil
	})
}

func (r *DraftRepository) DeleteByLeague(ctx context.Context, leagueID string) error {
	return r.store.update(ctx, func(st *state) error {
		delete(st.picks, leagueID)
		return nil
	})
}

func (r *DraftRepository) ListByLeague(_ context.Context, leagueID string) ([]draft.Pick, error) {
	var out []draft.Pick
	r.store.view(func(st *state) {
		out = slices.Clone(st.picks[leagueID])
	})
	return out, nil
}

func (r *DraftRepository) GetByOverall(_ context.Context, leagueID string, overall int) (draft.Pick, bool, error) {
	var (
		out draft.Pick
		ok  bool
	)
	r.store.view(func(st *state) {
		for _, p := range st.picks[leagueID] {
			if p.Overall == overall {
				out, ok = p, true
				return
			}
		}
	})
	return out, ok, nil
}

func (r *DraftRepository) CountMade(_ context.Context, leagueID string) (int, error) {
	count := 0
	r.store.view(func(st *state) {
		for _, p := range st.picks[leagueID] {
			if p.IsMade() {
				count++
			}
		}
	})
	return count, nil
}

func (r *DraftRepository) IsPlayerDrafted(_ context.Context, leagueID, playerID string) (bool, error) {
	var drafted bool
	r.store.view(func(st *state) {
		drafted = playerOnBoard(st.picks[leagueID], playerID)
	})
	return drafted, nil
}

func (r *DraftRepository) ListDraftedPlayerIDs(_ context.Context, leagueID string) ([]string, error) {
	var out []string
	r.store.view(func(st *state) {
		for _, p := range st.picks[leagueID] {
			if p.IsMade() {
				out = append(out, p.PlayerID)
			}
		}
	})
	return out, nil
}

func (r *DraftRepository) Assign(ctx context.Context, a draft.Assignment) (bool, error) {
	var assigned bool
	err := r.store.update(ctx, func(st *state) error {
		l, exists := st.leagues[a.LeagueID]
		if !exists || l.CurrentPick != a.Overall {
			return nil
		}
		board := st.picks[a.LeagueID]
		idx := slices.IndexFunc(board, func(p draft.Pick) bool { return p.Overall == a.Overall })
		if idx < 0 || board[idx].IsMade() {
			return nil
		}
		if playerOnBoard(board, a.PlayerID) {
			return draft.ErrPlayerAlreadyDrafted
		}

		pickedAt := a.PickedAt
		board[idx].PlayerID = a.PlayerID
		board[idx].PickedBy = a.PickedBy
		board[idx].Authority = a.Authority
		board[idx].PickedAt = &pickedAt
		assigned = true
		return nil
	})
	return assigned, err
}

func playerOnBoard(board []draft.Pick, playerID string) bool {
	return slices.ContainsFunc(board, func(p draft.Pick) bool { return p.PlayerID == playerID })
}
