package cache

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/riskibarqy/draft-league/internal/domain/player"
	basecache "github.com/riskibarqy/draft-league/internal/platform/cache"
)

const playerKeyPrefix = "player:"

// PlayerRepository caches the player catalog. The catalog only changes via
// Upsert, which drops every cached player key.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context, filter player.Filter) ([]player.Player, error) {
	items, err := basecache.GetOrLoadAs(ctx, r.cache, playerListKey(filter), func(ctx context.Context) ([]player.Player, error) {
		items, err := r.next.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	cached, err := basecache.GetOrLoadAs(ctx, r.cache, playerKeyPrefix+"id:"+playerID, func(ctx context.Context) (cachedPlayerByID, error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		if err != nil {
			return cachedPlayerByID{}, err
		}
		return cachedPlayerByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}
	return cached.value, cached.exists, nil
}

type cachedPlayerByID struct {
	value  player.Player
	exists bool
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	ids := append([]string(nil), playerIDs...)
	sort.Strings(ids)
	key := playerKeyPrefix + "ids:" + strings.Join(ids, ",")
	items, err := basecache.GetOrLoadAs(ctx, r.cache, key, func(ctx context.Context) ([]player.Player, error) {
		items, err := r.next.GetByIDs(ctx, playerIDs)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, players []player.Player) error {
	if err := r.next.Upsert(ctx, players); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, playerKeyPrefix)
	return nil
}

func playerListKey(filter player.Filter) string {
	excluded := append([]string(nil), filter.ExcludeIDs...)
	sort.Strings(excluded)

	var b strings.Builder
	b.WriteString(playerKeyPrefix)
	b.WriteString("list:")
	b.WriteString(string(filter.Position))
	b.WriteString("|")
	b.WriteString(strings.ToLower(filter.Search))
	b.WriteString("|")
	b.WriteString(strconv.FormatBool(filter.ActiveOnly))
	b.WriteString("|")
	b.WriteString(strconv.Itoa(filter.Limit))
	b.WriteString("|")
	b.WriteString(strconv.Itoa(filter.Offset))
	b.WriteString("|")
	b.WriteString(strings.Join(excluded, ","))
	return b.String()
}
