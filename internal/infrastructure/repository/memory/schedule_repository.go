package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/riskibarqy/draft-league/internal/domain/schedule"
)

type ScheduleRepository struct {
	store *Store
}

func NewScheduleRepository(store *Store) *ScheduleRepository {
	return &ScheduleRepository{store: store}
}

func (r *ScheduleRepository) InsertWeeks(ctx context.Context, weeks []schedule.Week) error {
	return r.store.update(ctx, func(st *state) error {
		for _, w := range weeks {
			if _, exists := st.leagues[w.LeagueID]; !exists {
				return fmt.Errorf("league not found: %s", w.LeagueID)
			}
			if slices.ContainsFunc(st.weeks[w.LeagueID], func(existing schedule.Week) bool { return existing.Number == w.Number }) {
				return fmt.Errorf("duplicate week %d in league %s", w.Number, w.LeagueID)
			}
			st.weeks[w.LeagueID] = append(st.weeks[w.LeagueID], w)
		}
		for leagueID := range st.weeks {
			slices.SortFunc(st.weeks[leagueID], func(a, b schedule.Week) int { return a.Number - b.Number })
		}
		return nil
	})
}

func (r *ScheduleRepository) InsertMatchups(ctx context.Context, matchups []schedule.Matchup) error {
	return r.store.update(ctx, func(st *state) error {
		for _, m := range matchups {
			if !slices.ContainsFunc(st.weeks[m.LeagueID], func(w schedule.Week) bool { return w.ID == m.WeekID }) {
				return fmt.Errorf("week not found: %s", m.WeekID)
			}
			st.matchups[m.LeagueID] = append(st.matchups[m.LeagueID], m)
		}
		return nil
	})
}

func (r *ScheduleRepository) ListWeeks(_ context.Context, leagueID string) ([]schedule.Week, error) {
	var out []schedule.Week
	r.store.view(func(st *state) {
		out = slices.Clone(st.weeks[leagueID])
	})
	return out, nil
}

func (r *ScheduleRepository) CountWeeks(_ context.Context, leagueID string) (int, error) {
	count := 0
	r.store.view(func(st *state) {
		count = len(st.weeks[leagueID])
	})
	return count, nil
}

func (r *ScheduleRepository) ListMatchups(_ context.Context, leagueID string) ([]schedule.Matchup, error) {
	var out []schedule.Matchup
	r.store.view(func(st *state) {
		out = slices.Clone(st.matchups[leagueID])
	})
	return out, nil
}

func (r *ScheduleRepository) ListMatchupsByWeek(_ context.Context, leagueID string, weekNumber int) ([]schedule.Matchup, error) {
	var out []schedule.Matchup
	r.store.view(func(st *state) {
		for _, m := range st.matchups[leagueID] {
			if m.WeekNumber == weekNumber {
				out = append(out, m)
			}
		}
	})
	return out, nil
}

func (r *ScheduleRepository) GetMatchup(_ context.Context, matchupID string) (schedule.Matchup, bool, error) {
	var (
		out schedule.Matchup
		ok  bool
	)
	r.store.view(func(st *state) {
		for _, items := range st.matchups {
			for _, m := range items {
				if m.ID == matchupID {
					out, ok = m, true
					return
				}
			}
		}
	})
	return out, ok, nil
}

func (r *ScheduleRepository) UpdateMatchupScore(ctx context.Context, matchupID string, home, away float64) error {
	return r.store.update(ctx, func(st *state) error {
		for _, items := range st.matchups {
			for i := range items {
				if items[i].ID == matchupID {
					items[i].HomeScore = home
					items[i].AwayScore = away
					return nil
				}
			}
		}
		return fmt.Errorf("matchup not found: %s", matchupID)
	})
}

func (r *ScheduleRepository) MarkWeekComplete(ctx context.Context, leagueID string, weekNumber int) (bool, error) {
	var marked bool
	err := r.store.update(ctx, func(st *state) error {
		weeks := st.weeks[leagueID]
		for i := range weeks {
			if weeks[i].Number == weekNumber {
				weeks[i].Completed = true
				marked = true
				return nil
			}
		}
		return nil
	})
	return marked, err
}

func (r *ScheduleRepository) DeleteByLeague(ctx context.Context, leagueID string) error {
	return r.store.update(ctx, func(st *state) error {
		delete(st.matchups, leagueID)
		delete(st.weeks, leagueID)
		return nil
	})
}
