package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/draft-league/internal/usecase"
)

func (h *Handler) GetTeamRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamRoster")
	defer span.End()

	caller, err := principal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	teamID := strings.TrimSpace(r.PathValue("teamID"))

	roster, err := h.rosters.TeamRoster(ctx, caller.UserID, leagueID, teamID)
	if err != nil {
		h.fail(ctx, w, "get team roster", err, "league_id", leagueID, "team_id", teamID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamRosterDTO{
		Team:     teamToDTO(roster.Team),
		Starters: rosterSlotsToDTO(roster.Starters),
		Bench:    rosterSlotsToDTO(roster.Bench),
	})
}

func (h *Handler) ListPlayerPool(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerPool")
	defer span.End()

	caller, err := principal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	availableOnly, err := queryBool(r, "available")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	query := r.URL.Query()
	players, err := h.rosters.PlayerPool(ctx, usecase.PlayerPoolInput{
		UserID:        caller.UserID,
		LeagueID:      leagueID,
		Position:      query.Get("position"),
		Search:        query.Get("search"),
		AvailableOnly: availableOnly,
		Limit:         limit,
		Offset:        offset,
	})
	if err != nil {
		h.fail(ctx, w, "list player pool", err, "league_id", leagueID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, poolToDTO(players))
}
