package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/draft-league/internal/usecase"
)

func (h *Handler) StartLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartLeague")
	defer span.End()

	caller, err := principal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	result, err := h.schedules.StartLeague(ctx, caller.UserID, leagueID)
	if err != nil {
		h.fail(ctx, w, "start league", err, "league_id", leagueID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, startLeagueDTO{
		League:           leagueToDTO(result.League, true),
		Weeks:            result.Weeks,
		Matchups:         result.Matchups,
		DraftInitialized: result.DraftInitialized,
	})
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSchedule")
	defer span.End()

	caller, err := principal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	weeks, err := h.schedules.Schedule(ctx, caller.UserID, leagueID)
	if err != nil {
		h.fail(ctx, w, "get schedule", err, "league_id", leagueID)
		return
	}

	items := make([]weekDTO, 0, len(weeks))
	for _, ws := range weeks {
		items = append(items, weekToDTO(ws.Week, ws.Matchups))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) RecordMatchupScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordMatchupScore")
	defer span.End()

	caller, err := principal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	matchupID := strings.TrimSpace(r.PathValue("matchupID"))
	var req recordMatchupScoreRequest
	if err := h.decodeJSON(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.schedules.RecordMatchupScore(ctx, usecase.RecordMatchupScoreInput{
		UserID:    caller.UserID,
		LeagueID:  leagueID,
		MatchupID: matchupID,
		HomeScore: *req.HomeScore,
		AwayScore: *req.AwayScore,
	})
	if err != nil {
		h.fail(ctx, w, "record matchup score", err, "league_id", leagueID, "matchup_id", matchupID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, matchupToDTO(updated))
}

func (h *Handler) CompleteWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CompleteWeek")
	defer span.End()

	caller, err := principal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	week, err := pathInt(r, "week")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.schedules.CompleteWeek(ctx, caller.UserID, leagueID, week); err != nil {
		h.fail(ctx, w, "complete week", err, "league_id", leagueID, "week", week)
		return
	}
	writeNoContent(w)
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	caller, err := principal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	rows, err := h.standings.Standings(ctx, caller.UserID, leagueID)
	if err != nil {
		h.fail(ctx, w, "get standings", err, "league_id", leagueID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(rows))
}

func (h *Handler) RecomputeStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecomputeStandings")
	defer span.End()

	caller, err := principal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	updated, err := h.standings.RecomputeRecords(ctx, caller.UserID, leagueID)
	if err != nil {
		h.fail(ctx, w, "recompute standings", err, "league_id", leagueID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]int{"teams_updated": updated})
}

func (h *Handler) GetLeagueOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueOverview")
	defer span.End()

	caller, err := principal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	overview, err := h.standings.LeagueOverview(ctx, caller.UserID, leagueID)
	if err != nil {
		h.fail(ctx, w, "get league overview", err, "league_id", leagueID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, overviewToDTO(overview))
}
