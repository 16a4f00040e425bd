package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/riskibarqy/draft-league/internal/domain/membership"
)

type MembershipRepository struct {
	store *Store
}

func NewMembershipRepository(store *Store) *MembershipRepository {
	return &MembershipRepository{store: store}
}

func (r *MembershipRepository) Insert(ctx context.Context, m membership.Membership) error {
	return r.store.update(ctx, func(st *state) error {
		if _, exists := st.leagues[m.LeagueID]; !exists {
			return fmt.Errorf("league not found: %s", m.LeagueID)
		}
		key := memberKey{leagueID: m.LeagueID, userID: m.UserID}
		if _, exists := st.members[key]; exists {
			return nil
		}
		st.members[key] = m
		st.memberOrder = append(st.memberOrder, key)
		return nil
	})
}

func (r *MembershipRepository) Get(_ context.Context, leagueID, userID string) (membership.Membership, bool, error) {
	var (
		out membership.Membership
		ok  bool
	)
	r.store.view(func(st *state) {
		out, ok = st.members[memberKey{leagueID: leagueID, userID: userID}]
	})
	return out, ok, nil
}

func (r *MembershipRepository) ListByLeague(_ context.Context, leagueID string) ([]membership.Membership, error) {
	var out []membership.Membership
	r.store.view(func(st *state) {
		for _, key := range st.memberOrder {
			if key.leagueID == leagueID {
				out = append(out, st.members[key])
			}
		}
	})
	return out, nil
}

func (r *MembershipRepository) UpdateRole(ctx context.Context, leagueID, userID string, role membership.Role) error {
	return r.store.update(ctx, func(st *state) error {
		key := memberKey{leagueID: leagueID, userID: userID}
		m, exists := st.members[key]
		if !exists {
			return fmt.Errorf("membership not found: league=%s user=%s", leagueID, userID)
		}
		m.Role = role
		st.members[key] = m
		return nil
	})
}

func (r *MembershipRepository) Delete(ctx context.Context, leagueID, userID string) error {
	return r.store.update(ctx, func(st *state) error {
		key := memberKey{leagueID: leagueID, userID: userID}
		delete(st.members, key)
		st.memberOrder = slices.DeleteFunc(st.memberOrder, func(k memberKey) bool { return k == key })
		return nil
	})
}
