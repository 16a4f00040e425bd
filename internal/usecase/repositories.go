package usecase

import (
	"fmt"

	"github.com/riskibarqy/draft-league/internal/domain/draft"
	"github.com/riskibarqy/draft-league/internal/domain/league"
	"github.com/riskibarqy/draft-league/internal/domain/membership"
	"github.com/riskibarqy/draft-league/internal/domain/player"
	"github.com/riskibarqy/draft-league/internal/domain/roster"
	"github.com/riskibarqy/draft-league/internal/domain/schedule"
	"github.com/riskibarqy/draft-league/internal/domain/team"
)

// Repositories bundles the stores a league service graph reads and writes.
type Repositories struct {
	Leagues  league.Repository
	Members  membership.Repository
	Teams    team.Repository
	Players  player.Repository
	Picks    draft.Repository
	Schedule schedule.Repository
	Rosters  roster.Repository
}

// Validate reports the first missing repository.
func (r Repositories) Validate() error {
	switch {
	case r.Leagues == nil:
		return fmt.Errorf("league repository is required")
	case r.Members == nil:
		return fmt.Errorf("membership repository is required")
	case r.Teams == nil:
		return fmt.Errorf("team repository is required")
	case r.Players == nil:
		return fmt.Errorf("player repository is required")
	case r.Picks == nil:
		return fmt.Errorf("draft repository is required")
	case r.Schedule == nil:
		return fmt.Errorf("schedule repository is required")
	case r.Rosters == nil:
		return fmt.Errorf("roster repository is required")
	}
	return nil
}
