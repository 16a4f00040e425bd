package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/draft-league/internal/domain/user"
	"github.com/riskibarqy/draft-league/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/draft-league/internal/platform/id"
	"github.com/riskibarqy/draft-league/internal/platform/logging"
	"github.com/riskibarqy/draft-league/internal/usecase"
)

// tokenVerifier accepts "tok-<user>" and returns <user>.
type tokenVerifier struct{}

func (tokenVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	userID, ok := strings.CutPrefix(token, "tok-")
	if !ok || userID == "" {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthenticated)
	}
	return user.Principal{UserID: userID}, nil
}

type testEnvelope[T any] struct {
	APIVersion string           `json:"apiVersion"`
	Data       T                `json:"data"`
	Error      *errorBody `json:"error"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	players, err := memory.SeedPlayers()
	if err != nil {
		t.Fatalf("load seed players: %v", err)
	}
	store := memory.NewStore(players)
	repos := usecase.Repositories{
		Leagues:  memory.NewLeagueRepository(store),
		Members:  memory.NewMembershipRepository(store),
		Teams:    memory.NewTeamRepository(store),
		Players:  memory.NewPlayerRepository(store),
		Picks:    memory.NewDraftRepository(store),
		Schedule: memory.NewScheduleRepository(store),
		Rosters:  memory.NewRosterRepository(store),
	}
	logger := logging.NewNop()
	ids := idgen.NewSequenceGenerator("id")

	members := usecase.NewMembershipService(repos, store, logger)
	leagues := usecase.NewLeagueService(repos, members, store, ids, logger)
	drafts := usecase.NewDraftService(repos, members, store, ids, 0, logger)
	standings := usecase.NewStandingsService(repos, members, 2, logger)
	schedules := usecase.NewScheduleService(repos, members, drafts, standings, store, ids, 0, logger)
	rosters := usecase.NewRosterService(repos, members, logger)

	handler := NewHandler(leagues, members, drafts, schedules, standings, rosters, logger)
	return NewRouter(handler, tokenVerifier{}, logger, []string{"*"})
}

func doRequest(t *testing.T, router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope[T any](t *testing.T, rec *httptest.ResponseRecorder) testEnvelope[T] {
	t.Helper()

	var out testEnvelope[T]
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal response body %q: %v", rec.Body.String(), err)
	}
	return out
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/healthz", "", "")
	expectStatus(t, rec, http.StatusOK)
}

func TestRouter_RequiresBearerToken(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		name   string
		header string
	}{
		{name: "missing", header: ""},
		{name: "wrong scheme", header: "Basic abc"},
		{name: "unknown token", header: "Bearer nope"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/leagues", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			expectStatus(t, rec, http.StatusUnauthorized)
			env := decodeEnvelope[any](t, rec)
			if env.Error == nil || env.Error.Status != "UNAUTHENTICATED" {
				t.Fatalf("expected UNAUTHENTICATED error, got %+v", env.Error)
			}
		})
	}
}

func TestRouter_CreateLeague_RejectsInvalidBody(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/leagues", "tok-alice", `{"name":"Crew","max_teams":4,"extra":true}`)
	expectStatus(t, rec, http.StatusBadRequest)

	rec = doRequest(t, router, http.MethodPost, "/v1/leagues", "tok-alice", `{"name":"Crew","max_teams":40}`)
	expectStatus(t, rec, http.StatusBadRequest)

	rec = doRequest(t, router, http.MethodPost, "/v1/leagues", "tok-alice", `{"name":"Crew","max_teams":4,"join_code":"AB-12!"}`)
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestRouter_LeagueLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/leagues", "tok-alice",
		`{"name":"Sunday Crew","team_name":"Alice FC","max_teams":4,"visibility":"public"}`)
	expectStatus(t, rec, http.StatusCreated)
	created := decodeEnvelope[leagueTeamDTO](t, rec)
	leagueID := created.Data.League.ID
	joinCode := created.Data.League.JoinCode
	if leagueID == "" || len(joinCode) != 6 {
		t.Fatalf("unexpected created league: %+v", created.Data.League)
	}
	if created.Data.Team.OwnerUserID != "alice" {
		t.Fatalf("expected alice to own the first team, got %q", created.Data.Team.OwnerUserID)
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/leagues/join", "tok-bob", fmt.Sprintf(`{"join_code":%q,"team_name":"Bob United"}`, joinCode))
	expectStatus(t, rec, http.StatusOK)
	joined := decodeEnvelope[leagueTeamDTO](t, rec)
	if joined.Data.League.ID != leagueID || joined.Data.Team.OwnerUserID != "bob" {
		t.Fatalf("unexpected join result: %+v", joined.Data)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/leagues/public", "", "")
	expectStatus(t, rec, http.StatusOK)
	public := decodeEnvelope[[]leagueDTO](t, rec)
	if len(public.Data) != 1 || public.Data[0].JoinCode != "" {
		t.Fatalf("expected one public league without join code, got %+v", public.Data)
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/leagues/"+leagueID+"/start", "tok-bob", "")
	expectStatus(t, rec, http.StatusForbidden)

	rec = doRequest(t, router, http.MethodPost, "/v1/leagues/"+leagueID+"/start", "tok-alice", "")
	expectStatus(t, rec, http.StatusOK)
	started := decodeEnvelope[startLeagueDTO](t, rec)
	if !started.Data.DraftInitialized || started.Data.Weeks == 0 || started.Data.Matchups == 0 {
		t.Fatalf("unexpected start result: %+v", started.Data)
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/leagues/"+leagueID+"/start", "tok-alice", "")
	expectStatus(t, rec, http.StatusPreconditionFailed)

	rec = doRequest(t, router, http.MethodGet, "/v1/leagues/"+leagueID+"/draft", "tok-bob", "")
	expectStatus(t, rec, http.StatusOK)
	board := decodeEnvelope[draftBoardDTO](t, rec)
	if board.Data.CurrentPick != 1 || len(board.Data.Rounds) != 15 || board.Data.OnClock == nil {
		t.Fatalf("unexpected draft board: pick=%d rounds=%d", board.Data.CurrentPick, len(board.Data.Rounds))
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/leagues/"+leagueID+"/draft/auto-complete", "tok-alice", "")
	expectStatus(t, rec, http.StatusOK)
	auto := decodeEnvelope[autoCompleteDTO](t, rec)
	if auto.Data.Assigned != 30 || auto.Data.DraftStatus != "complete" {
		t.Fatalf("unexpected auto complete result: %+v", auto.Data)
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/leagues/"+leagueID+"/draft/picks", "tok-alice", `{"player_id":"qb-11"}`)
	expectStatus(t, rec, http.StatusPreconditionFailed)

	rec = doRequest(t, router, http.MethodGet, "/v1/leagues/"+leagueID+"/standings", "tok-bob", "")
	expectStatus(t, rec, http.StatusOK)
	rows := decodeEnvelope[[]standingDTO](t, rec)
	if len(rows.Data) != 2 || rows.Data[0].Rank != 1 {
		t.Fatalf("unexpected standings: %+v", rows.Data)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/leagues/"+leagueID+"/players?available=true&limit=20", "tok-bob", "")
	expectStatus(t, rec, http.StatusOK)
	pool := decodeEnvelope[[]poolPlayerDTO](t, rec)
	if len(pool.Data) == 0 {
		t.Fatalf("expected undrafted players in the pool")
	}
	for _, p := range pool.Data {
		if !p.Available {
			t.Fatalf("expected only available players, got %+v", p)
		}
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/leagues/"+leagueID+"/teams/"+joined.Data.Team.ID+"/roster", "tok-alice", "")
	expectStatus(t, rec, http.StatusOK)
	roster := decodeEnvelope[teamRosterDTO](t, rec)
	if got := len(roster.Data.Starters) + len(roster.Data.Bench); got != 15 {
		t.Fatalf("expected 15 rostered players, got %d", got)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/leagues/"+leagueID+"/members", "tok-carol", "")
	expectStatus(t, rec, http.StatusForbidden)
}
