package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/draft-league/internal/usecase"
)

func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMembers")
	defer span.End()

	caller, err := principal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	items, err := h.members.ListMembers(ctx, leagueID, caller.UserID)
	if err != nil {
		h.fail(ctx, w, "list members", err, "league_id", leagueID)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, membersToDTO(items))
}

func (h *Handler) TransferCommissioner(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TransferCommissioner")
	defer span.End()

	caller, err := principal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	var req transferCommissionerRequest
	if err := h.decodeJSON(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.members.TransferCommissioner(ctx, usecase.TransferCommissionerInput{
		UserID:       caller.UserID,
		LeagueID:     leagueID,
		TargetUserID: req.UserID,
	}); err != nil {
		h.fail(ctx, w, "transfer commissioner", err, "league_id", leagueID, "target_user_id", req.UserID)
		return
	}
	writeNoContent(w)
}
