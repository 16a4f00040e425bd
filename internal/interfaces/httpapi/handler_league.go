package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/draft-league/internal/usecase"
)

func (h *Handler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateLeague")
	defer span.End()

	caller, err := principal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req createLeagueRequest
	if err := h.decodeJSON(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.leagues.CreateLeague(ctx, usecase.CreateLeagueInput{
		UserID:     caller.UserID,
		Name:       req.Name,
		TeamName:   req.TeamName,
		MaxTeams:   req.MaxTeams,
		Visibility: req.Visibility,
		DraftType:  req.DraftType,
		JoinCode:   req.JoinCode,
	})
	if err != nil {
		h.fail(ctx, w, "create league", err, "user_id", caller.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, leagueTeamDTO{
		League: leagueToDTO(created.League, true),
		Team:   teamToDTO(created.Team),
	})
}

func (h *Handler) JoinLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinLeague")
	defer span.End()

	caller, err := principal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req joinLeagueRequest
	if err := h.decodeJSON(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	joined, err := h.leagues.JoinLeague(ctx, usecase.JoinLeagueInput{
		UserID:   caller.UserID,
		JoinCode: req.JoinCode,
		TeamName: req.TeamName,
	})
	if err != nil {
		h.fail(ctx, w, "join league", err, "user_id", caller.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueTeamDTO{
		League: leagueToDTO(joined.League, true),
		Team:   teamToDTO(joined.Team),
	})
}

func (h *Handler) ListMyLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyLeagues")
	defer span.End()

	caller, err := principal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagues, err := h.leagues.ListMyLeagues(ctx, caller.UserID)
	if err != nil {
		h.fail(ctx, w, "list my leagues", err, "user_id", caller.UserID)
		return
	}

	items := make([]leagueDTO, 0, len(leagues))
	for _, l := range leagues {
		items = append(items, leagueToDTO(l, true))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListPublicLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPublicLeagues")
	defer span.End()

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagues, err := h.leagues.ListPublicLeagues(ctx, limit)
	if err != nil {
		h.fail(ctx, w, "list public leagues", err)
		return
	}

	items := make([]leagueDTO, 0, len(leagues))
	for _, l := range leagues {
		items = append(items, leagueToDTO(l, false))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	caller, err := principal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	details, err := h.leagues.GetLeague(ctx, caller.UserID, leagueID)
	if err != nil {
		h.fail(ctx, w, "get league", err, "league_id", leagueID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, leagueDetailsToDTO(details))
}

func (h *Handler) UpdateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateLeague")
	defer span.End()

	caller, err := principal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	var req updateLeagueRequest
	if err := h.decodeJSON(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.leagues.UpdateLeagueDetails(ctx, usecase.UpdateLeagueDetailsInput{
		UserID:     caller.UserID,
		LeagueID:   leagueID,
		Name:       req.Name,
		Visibility: req.Visibility,
	})
	if err != nil {
		h.fail(ctx, w, "update league", err, "league_id", leagueID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(updated, true))
}

func (h *Handler) UpdateMaxTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMaxTeams")
	defer span.End()

	caller, err := principal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	var req updateMaxTeamsRequest
	if err := h.decodeJSON(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.leagues.UpdateMaxTeams(ctx, caller.UserID, leagueID, req.MaxTeams)
	if err != nil {
		h.fail(ctx, w, "update max teams", err, "league_id", leagueID, "max_teams", req.MaxTeams)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(updated, true))
}

func (h *Handler) RegenerateJoinCode(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegenerateJoinCode")
	defer span.End()

	caller, err := principal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	code, err := h.leagues.RegenerateJoinCode(ctx, caller.UserID, leagueID)
	if err != nil {
		h.fail(ctx, w, "regenerate join code", err, "league_id", leagueID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]string{"join_code": code})
}

func (h *Handler) ArchiveLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ArchiveLeague")
	defer span.End()

	caller, err := principal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	archived, err := h.leagues.ArchiveLeague(ctx, caller.UserID, leagueID)
	if err != nil {
		h.fail(ctx, w, "archive league", err, "league_id", leagueID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(archived, true))
}

func (h *Handler) ResetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetLeague")
	defer span.End()

	caller, err := principal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	reset, err := h.leagues.ResetLeague(ctx, caller.UserID, leagueID)
	if err != nil {
		h.fail(ctx, w, "reset league", err, "league_id", leagueID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(reset, true))
}

func (h *Handler) DeleteLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteLeague")
	defer span.End()

	caller, err := principal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	if err := h.leagues.DeleteLeague(ctx, caller.UserID, leagueID); err != nil {
		h.fail(ctx, w, "delete league", err, "league_id", leagueID)
		return
	}
	writeNoContent(w)
}

func (h *Handler) LeaveLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LeaveLeague")
	defer span.End()

	caller, err := principal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	if err := h.leagues.LeaveLeague(ctx, caller.UserID, leagueID); err != nil {
		h.fail(ctx, w, "leave league", err, "league_id", leagueID)
		return
	}
	writeNoContent(w)
}

func (h *Handler) AddPlaceholderTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddPlaceholderTeam")
	defer span.End()

	caller, err := principal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	created, err := h.leagues.AddPlaceholderTeam(ctx, caller.UserID, leagueID)
	if err != nil {
		h.fail(ctx, w, "add placeholder team", err, "league_id", leagueID)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(created))
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTeam")
	defer span.End()

	caller, err := principal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	teamID := strings.TrimSpace(r.PathValue("teamID"))

	if err := h.leagues.DeleteTeam(ctx, caller.UserID, leagueID, teamID); err != nil {
		h.fail(ctx, w, "delete team", err, "league_id", leagueID, "team_id", teamID)
		return
	}
	writeNoContent(w)
}
