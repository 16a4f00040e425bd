package httpapi

import (
	"net/http"

	"github.com/riskibarqy/draft-league/internal/platform/logging"
)

// NewRouter wires every route onto a ServeMux and wraps it in the shared
// middleware chain: tracing, request logging, CORS, panic recovery.
func NewRouter(
	handler *Handler,
	verifier TokenVerifier,
	logger *logging.Logger,
	corsAllowedOrigins []string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	r := routes{mux: http.NewServeMux(), verifier: verifier}

	r.open("GET /healthz", handler.Healthz)
	r.open("GET /v1/leagues/public", handler.ListPublicLeagues)

	r.authed("GET /v1/leagues", handler.ListMyLeagues)
	r.authed("POST /v1/leagues", handler.CreateLeague)
	r.authed("POST /v1/leagues/join", handler.JoinLeague)

	const lg = "/v1/leagues/{leagueID}"
	r.authed("GET "+lg, handler.GetLeague)
	r.authed("PATCH "+lg, handler.UpdateLeague)
	r.authed("DELETE "+lg, handler.DeleteLeague)
	r.authed("GET "+lg+"/overview", handler.GetLeagueOverview)
	r.authed("PUT "+lg+"/max-teams", handler.UpdateMaxTeams)
	r.authed("POST "+lg+"/join-code", handler.RegenerateJoinCode)
	r.authed("POST "+lg+"/archive", handler.ArchiveLeague)
	r.authed("POST "+lg+"/reset", handler.ResetLeague)
	r.authed("POST "+lg+"/leave", handler.LeaveLeague)
	r.authed("GET "+lg+"/members", handler.ListMembers)
	r.authed("PUT "+lg+"/commissioner", handler.TransferCommissioner)
	r.authed("POST "+lg+"/teams", handler.AddPlaceholderTeam)
	r.authed("DELETE "+lg+"/teams/{teamID}", handler.DeleteTeam)
	r.authed("GET "+lg+"/teams/{teamID}/roster", handler.GetTeamRoster)
	r.authed("GET "+lg+"/players", handler.ListPlayerPool)

	r.authed("GET "+lg+"/draft", handler.GetDraftBoard)
	r.authed("POST "+lg+"/draft", handler.InitializeDraft)
	r.authed("POST "+lg+"/draft/picks", handler.MakeDraftPick)
	r.authed("POST "+lg+"/draft/auto-complete", handler.AutoCompleteDraft)

	r.authed("POST "+lg+"/start", handler.StartLeague)
	r.authed("GET "+lg+"/schedule", handler.GetSchedule)
	r.authed("PUT "+lg+"/matchups/{matchupID}/score", handler.RecordMatchupScore)
	r.authed("POST "+lg+"/weeks/{week}/complete", handler.CompleteWeek)
	r.authed("GET "+lg+"/standings", handler.GetStandings)
	r.authed("POST "+lg+"/standings/recompute", handler.RecomputeStandings)

	var h http.Handler = r.mux
	h = recoverPanic(logger, h)
	h = CORS(corsAllowedOrigins, h)
	h = RequestLogging(logger, h)
	return RequestTracing(h)
}

type routes struct {
	mux      *http.ServeMux
	verifier TokenVerifier
}

func (r routes) open(pattern string, fn http.HandlerFunc) {
	r.mux.Handle(pattern, fn)
}

func (r routes) authed(pattern string, fn http.HandlerFunc) {
	r.mux.Handle(pattern, RequireAuth(r.verifier, fn))
}
