package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/draft-league/internal/usecase"
)

func (h *Handler) InitializeDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InitializeDraft")
	defer span.End()

	caller, err := principal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	picks, err := h.drafts.InitializeDraft(ctx, caller.UserID, leagueID)
	if err != nil {
		h.fail(ctx, w, "initialize draft", err, "league_id", leagueID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, picksToDTO(picks))
}

func (h *Handler) GetDraftBoard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraftBoard")
	defer span.End()

	caller, err := principal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	board, err := h.drafts.DraftBoard(ctx, caller.UserID, leagueID)
	if err != nil {
		h.fail(ctx, w, "get draft board", err, "league_id", leagueID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, draftBoardToDTO(board))
}

func (h *Handler) MakeDraftPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MakeDraftPick")
	defer span.End()

	caller, err := principal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	var req makeDraftPickRequest
	if err := h.decodeJSON(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.drafts.MakeDraftPick(ctx, usecase.MakeDraftPickInput{
		UserID:   caller.UserID,
		LeagueID: leagueID,
		PlayerID: req.PlayerID,
	})
	if err != nil {
		h.fail(ctx, w, "make draft pick", err, "league_id", leagueID, "player_id", req.PlayerID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, draftPickResultDTO{
		Pick:        pickToDTO(result.Pick, nil, nil),
		Slot:        string(result.Slot),
		DraftStatus: string(result.League.DraftStatus),
		CurrentPick: result.League.CurrentPick,
	})
}

func (h *Handler) AutoCompleteDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AutoCompleteDraft")
	defer span.End()

	caller, err := principal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	result, err := h.drafts.AutoCompleteDraft(ctx, caller.UserID, leagueID)
	if err != nil {
		h.fail(ctx, w, "auto complete draft", err, "league_id", leagueID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, autoCompleteDTO{
		Assigned:    result.Assigned,
		DraftStatus: string(result.League.DraftStatus),
		CurrentPick: result.League.CurrentPick,
	})
}
