package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/riskibarqy/draft-league/internal/domain/player"
)

type PlayerRepository struct {
	store *Store
}

func NewPlayerRepository(store *Store) *PlayerRepository {
	return &PlayerRepository{store: store}
}

func (r *PlayerRepository) List(_ context.Context, filter player.Filter) ([]player.Player, error) {
	excluded := make(map[string]struct{}, len(filter.ExcludeIDs))
	for _, id := range filter.ExcludeIDs {
		excluded[id] = struct{}{}
	}
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	var out []player.Player
	r.store.view(func(st *state) {
		for _, p := range st.players {
			if filter.ActiveOnly && !p.Active {
				continue
			}
			if filter.Position != "" && p.Position != filter.Position {
				continue
			}
			if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
				continue
			}
			if _, skip := excluded[p.ID]; skip {
				continue
			}
			out = append(out, p)
		}
	})

	slices.SortFunc(out, comparePlayers)
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// comparePlayers orders by rank with unranked players last, then name, then
// id so listings are stable.
func comparePlayers(a, b player.Player) int {
	switch {
	case a.Rank == b.Rank:
	case a.Rank == 0:
		return 1
	case b.Rank == 0:
		return -1
	case a.Rank < b.Rank:
		return -1
	default:
		return 1
	}
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	var (
		out player.Player
		ok  bool
	)
	r.store.view(func(st *state) {
		out, ok = st.players[playerID]
	})
	return out, ok, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	out := make([]player.Player, 0, len(playerIDs))
	r.store.view(func(st *state) {
		for _, id := range playerIDs {
			if p, ok := st.players[id]; ok {
				out = append(out, p)
			}
		}
	})
	return out, nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, players []player.Player) error {
	return r.store.update(ctx, func(st *state) error {
		for _, p := range players {
			st.players[p.ID] = p
		}
		return nil
	})
}
