package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/riskibarqy/draft-league/internal/domain/draft"
	"github.com/riskibarqy/draft-league/internal/domain/league"
	"github.com/riskibarqy/draft-league/internal/domain/membership"
	"github.com/riskibarqy/draft-league/internal/domain/player"
	"github.com/riskibarqy/draft-league/internal/domain/roster"
	"github.com/riskibarqy/draft-league/internal/domain/schedule"
	"github.com/riskibarqy/draft-league/internal/domain/team"
)

type memberKey struct {
	leagueID string
	userID   string
}

type state struct {
	leagues     map[string]league.League
	leagueOrder []string
	members     map[memberKey]membership.Membership
	memberOrder []memberKey
	teams       map[string]team.Team
	teamOrder   []string
	players     map[string]player.Player
	picks       map[string][]draft.Pick
	weeks       map[string][]schedule.Week
	matchups    map[string][]schedule.Matchup
	rosters     []roster.Entry
}

func newState() *state {
	return &state{
		leagues:  make(map[string]league.League),
		members:  make(map[memberKey]membership.Membership),
		teams:    make(map[string]team.Team),
		players:  make(map[string]player.Player),
		picks:    make(map[string][]draft.Pick),
		weeks:    make(map[string][]schedule.Week),
		matchups: make(map[string][]schedule.Matchup),
	}
}

// clone copies every map and slice so a rollback cannot observe writes made
// after the snapshot.
func (st *state) clone() *state {
	out := &state{
		leagues:     maps.Clone(st.leagues),
		leagueOrder: slices.Clone(st.leagueOrder),
		members:     maps.Clone(st.members),
		memberOrder: slices.Clone(st.memberOrder),
		teams:       maps.Clone(st.teams),
		teamOrder:   slices.Clone(st.teamOrder),
		players:     maps.Clone(st.players),
		picks:       make(map[string][]draft.Pick, len(st.picks)),
		weeks:       make(map[string][]schedule.Week, len(st.weeks)),
		matchups:    make(map[string][]schedule.Matchup, len(st.matchups)),
		rosters:     slices.Clone(st.rosters),
	}
	for k, v := range st.picks {
		out.picks[k] = slices.Clone(v)
	}
	for k, v := range st.weeks {
		out.weeks[k] = slices.Clone(v)
	}
	for k, v := range st.matchups {
		out.matchups[k] = slices.Clone(v)
	}
	return out
}

type txKey struct{}

// Store is the in-process state shared by every memory repository. It gives
// the same transactional guarantees the service layer expects from
// Postgres: WithinTx is serialized and rolled back on error, and writes
// outside a transaction never interleave with one.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	data *state
}

func NewStore(players []player.Player) *Store {
	data := newState()
	for _, p := range players {
		data.players[p.ID] = p
	}
	return &Store{data: data}
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// WithinTx runs fn with exclusive write access; nested calls join the outer
// transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) view(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data)
}

func (s *Store) update(ctx context.Context, fn func(st *state) error) error {
	if !s.inTx(ctx) {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}
