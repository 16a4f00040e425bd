package httpapi

import (
	"time"

	"github.com/riskibarqy/draft-league/internal/domain/draft"
	"github.com/riskibarqy/draft-league/internal/domain/league"
	"github.com/riskibarqy/draft-league/internal/domain/membership"
	"github.com/riskibarqy/draft-league/internal/domain/player"
	"github.com/riskibarqy/draft-league/internal/domain/schedule"
	"github.com/riskibarqy/draft-league/internal/domain/standings"
	"github.com/riskibarqy/draft-league/internal/domain/team"
	"github.com/riskibarqy/draft-league/internal/usecase"
)

type createLeagueRequest struct {
	Name       string `json:"name" validate:"required,max=60"`
	TeamName   string `json:"team_name" validate:"omitempty,max=60"`
	MaxTeams   int    `json:"max_teams" validate:"required,min=2,max=20"`
	Visibility string `json:"visibility" validate:"omitempty,oneof=public private"`
	DraftType  string `json:"draft_type" validate:"omitempty,oneof=auto live"`
	JoinCode   string `json:"join_code" validate:"omitempty,len=6,alphanum"`
}

type joinLeagueRequest struct {
	JoinCode string `json:"join_code" validate:"required,len=6,alphanum"`
	TeamName string `json:"team_name" validate:"omitempty,max=60"`
}

type updateLeagueRequest struct {
	Name       *string `json:"name" validate:"omitempty,max=60"`
	Visibility *string `json:"visibility" validate:"omitempty,oneof=public private"`
}

type updateMaxTeamsRequest struct {
	MaxTeams int `json:"max_teams" validate:"required,min=2,max=20"`
}

type transferCommissionerRequest struct {
	UserID string `json:"user_id" validate:"required,max=128"`
}

type makeDraftPickRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=64"`
}

type recordMatchupScoreRequest struct {
	HomeScore *float64 `json:"home_score" validate:"required,gte=0"`
	AwayScore *float64 `json:"away_score" validate:"required,gte=0"`
}

type leagueDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Season      int       `json:"season"`
	JoinCode    string    `json:"join_code,omitempty"`
	MaxTeams    int       `json:"max_teams"`
	Visibility  string    `json:"visibility"`
	Status      string    `json:"status"`
	DraftType   string    `json:"draft_type"`
	DraftStatus string    `json:"draft_status"`
	CurrentPick int       `json:"current_pick"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// leagueToDTO hides the join code unless withCode is set; public listings
// must not hand out codes to strangers.
func leagueToDTO(l league.League, withCode bool) leagueDTO {
	out := leagueDTO{
		ID:          l.ID,
		Name:        l.Name,
		Season:      l.Season,
		MaxTeams:    l.MaxTeams,
		Visibility:  string(l.Visibility),
		Status:      string(l.Status),
		DraftType:   string(l.DraftType),
		DraftStatus: string(l.DraftStatus),
		CurrentPick: l.CurrentPick,
		CreatedAt:   l.CreatedAt,
	}
	if withCode {
		out.JoinCode = l.JoinCode
		out.CreatedBy = l.CreatedBy
	}
	return out
}

type teamDTO struct {
	ID            string  `json:"id"`
	LeagueID      string  `json:"league_id"`
	Name          string  `json:"name"`
	OwnerUserID   string  `json:"owner_user_id,omitempty"`
	Claimed       bool    `json:"claimed"`
	IsBot         bool    `json:"is_bot"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	PointsFor     float64 `json:"points_for"`
	PointsAgainst float64 `json:"points_against"`
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{
		ID:            t.ID,
		LeagueID:      t.LeagueID,
		Name:          t.Name,
		OwnerUserID:   t.OwnerUserID,
		Claimed:       t.Claimed,
		IsBot:         t.IsBot(),
		Wins:          t.Wins,
		Losses:        t.Losses,
		Ties:          t.Ties,
		PointsFor:     t.PointsFor,
		PointsAgainst: t.PointsAgainst,
	}
}

func teamsToDTO(teams []team.Team) []teamDTO {
	out := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		out = append(out, teamToDTO(t))
	}
	return out
}

type leagueTeamDTO struct {
	League leagueDTO `json:"league"`
	Team   teamDTO   `json:"team"`
}

type leagueDetailsDTO struct {
	League leagueDTO `json:"league"`
	Role   string    `json:"role"`
	Teams  []teamDTO `json:"teams"`
}

func leagueDetailsToDTO(d usecase.LeagueDetails) leagueDetailsDTO {
	return leagueDetailsDTO{
		League: leagueToDTO(d.League, d.Role.IsMember()),
		Role:   string(d.Role),
		Teams:  teamsToDTO(d.Teams),
	}
}

type memberDTO struct {
	UserID   string    `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

func membersToDTO(items []membership.Membership) []memberDTO {
	out := make([]memberDTO, 0, len(items))
	for _, m := range items {
		out = append(out, memberDTO{UserID: m.UserID, Role: string(m.Role), JoinedAt: m.JoinedAt})
	}
	return out
}

type playerDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	ProTeam  string `json:"pro_team,omitempty"`
	Rank     int    `json:"rank,omitempty"`
	Active   bool   `json:"active"`
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:       p.ID,
		Name:     p.Name,
		Position: string(p.Position),
		ProTeam:  p.ProTeam,
		Rank:     p.Rank,
		Active:   p.Active,
	}
}

type pickDTO struct {
	Overall     int        `json:"overall"`
	Round       int        `json:"round"`
	PickInRound int        `json:"pick_in_round"`
	TeamID      string     `json:"team_id"`
	TeamName    string     `json:"team_name,omitempty"`
	PlayerID    string     `json:"player_id,omitempty"`
	PlayerName  string     `json:"player_name,omitempty"`
	PickedBy    string     `json:"picked_by,omitempty"`
	Authority   string     `json:"authority,omitempty"`
	PickedAt    *time.Time `json:"picked_at,omitempty"`
}

func pickToDTO(p draft.Pick, teams map[string]team.Team, players map[string]player.Player) pickDTO {
	out := pickDTO{
		Overall:     p.Overall,
		Round:       p.Round,
		PickInRound: p.PickInRound,
		TeamID:      p.TeamID,
		PlayerID:    p.PlayerID,
		PickedBy:    p.PickedBy,
		Authority:   string(p.Authority),
		PickedAt:    p.PickedAt,
	}
	if t, ok := teams[p.TeamID]; ok {
		out.TeamName = t.Name
	}
	if pl, ok := players[p.PlayerID]; ok {
		out.PlayerName = pl.Name
	}
	return out
}

func picksToDTO(picks []draft.Pick) []pickDTO {
	out := make([]pickDTO, 0, len(picks))
	for _, p := range picks {
		out = append(out, pickToDTO(p, nil, nil))
	}
	return out
}

type roundDTO struct {
	Number int       `json:"number"`
	Picks  []pickDTO `json:"picks"`
}

type draftBoardDTO struct {
	LeagueID    string     `json:"league_id"`
	DraftStatus string     `json:"draft_status"`
	CurrentPick int        `json:"current_pick"`
	Rounds      []roundDTO `json:"rounds"`
	OnClock     *pickDTO   `json:"on_clock,omitempty"`
	OnClockTeam *teamDTO   `json:"on_clock_team,omitempty"`
	CanPick     bool       `json:"can_pick"`
}

func draftBoardToDTO(b usecase.DraftBoard) draftBoardDTO {
	out := draftBoardDTO{
		LeagueID:    b.League.ID,
		DraftStatus: string(b.League.DraftStatus),
		CurrentPick: b.League.CurrentPick,
		Rounds:      make([]roundDTO, 0, len(b.Rounds)),
		CanPick:     b.CanPick,
	}
	for _, r := range b.Rounds {
		round := roundDTO{Number: r.Number, Picks: make([]pickDTO, 0, len(r.Picks))}
		for _, p := range r.Picks {
			round.Picks = append(round.Picks, pickToDTO(p, b.Teams, b.Players))
		}
		out.Rounds = append(out.Rounds, round)
	}
	if b.OnClock != nil {
		p := pickToDTO(*b.OnClock, b.Teams, b.Players)
		out.OnClock = &p
	}
	if b.OnClockTeam != nil {
		t := teamToDTO(*b.OnClockTeam)
		out.OnClockTeam = &t
	}
	return out
}

type draftPickResultDTO struct {
	Pick        pickDTO `json:"pick"`
	Slot        string  `json:"slot"`
	DraftStatus string  `json:"draft_status"`
	CurrentPick int     `json:"current_pick"`
}

type autoCompleteDTO struct {
	Assigned    int    `json:"assigned"`
	DraftStatus string `json:"draft_status"`
	CurrentPick int    `json:"current_pick"`
}

type startLeagueDTO struct {
	League           leagueDTO `json:"league"`
	Weeks            int       `json:"weeks"`
	Matchups         int       `json:"matchups"`
	DraftInitialized bool      `json:"draft_initialized"`
}

type matchupDTO struct {
	ID         string  `json:"id"`
	WeekNumber int     `json:"week_number"`
	HomeTeamID string  `json:"home_team_id"`
	AwayTeamID string  `json:"away_team_id"`
	HomeScore  float64 `json:"home_score"`
	AwayScore  float64 `json:"away_score"`
}

func matchupToDTO(m schedule.Matchup) matchupDTO {
	return matchupDTO{
		ID:         m.ID,
		WeekNumber: m.WeekNumber,
		HomeTeamID: m.HomeTeamID,
		AwayTeamID: m.AwayTeamID,
		HomeScore:  m.HomeScore,
		AwayScore:  m.AwayScore,
	}
}

func matchupsToDTO(items []schedule.Matchup) []matchupDTO {
	out := make([]matchupDTO, 0, len(items))
	for _, m := range items {
		out = append(out, matchupToDTO(m))
	}
	return out
}

type weekDTO struct {
	ID        string       `json:"id"`
	Number    int          `json:"number"`
	Label     string       `json:"label"`
	StartsAt  *time.Time   `json:"starts_at,omitempty"`
	Completed bool         `json:"completed"`
	Matchups  []matchupDTO `json:"matchups,omitempty"`
}

func weekToDTO(w schedule.Week, matchups []schedule.Matchup) weekDTO {
	out := weekDTO{
		ID:        w.ID,
		Number:    w.Number,
		Label:     w.Label,
		Completed: w.Completed,
	}
	if !w.StartsAt.IsZero() {
		startsAt := w.StartsAt
		out.StartsAt = &startsAt
	}
	if matchups != nil {
		out.Matchups = matchupsToDTO(matchups)
	}
	return out
}

type standingDTO struct {
	Rank   int     `json:"rank"`
	Team   teamDTO `json:"team"`
	WinPct string  `json:"win_pct"`
}

func standingsToDTO(rows []standings.Row) []standingDTO {
	out := make([]standingDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, standingDTO{Rank: r.Rank, Team: teamToDTO(r.Team), WinPct: r.WinPct})
	}
	return out
}

type overviewDTO struct {
	League       leagueDTO         `json:"league"`
	CurrentWeek  int               `json:"current_week"`
	Week         *weekDTO          `json:"week,omitempty"`
	Matchups     []matchupDTO      `json:"matchups"`
	TopStandings []standingDTO     `json:"top_standings"`
	TeamNames    map[string]string `json:"team_names"`
}

func overviewToDTO(o usecase.Overview) overviewDTO {
	out := overviewDTO{
		League:       leagueToDTO(o.League, true),
		CurrentWeek:  o.CurrentWeek,
		Matchups:     matchupsToDTO(o.Matchups),
		TopStandings: standingsToDTO(o.TopStandings),
		TeamNames:    o.TeamNames,
	}
	if o.Week != nil {
		w := weekToDTO(*o.Week, nil)
		out.Week = &w
	}
	return out
}

type rosterSlotDTO struct {
	Slot       string    `json:"slot"`
	Player     playerDTO `json:"player"`
	AcquiredAt time.Time `json:"acquired_at"`
}

type teamRosterDTO struct {
	Team     teamDTO         `json:"team"`
	Starters []rosterSlotDTO `json:"starters"`
	Bench    []rosterSlotDTO `json:"bench"`
}

func rosterSlotsToDTO(slots []usecase.RosterSlot) []rosterSlotDTO {
	out := make([]rosterSlotDTO, 0, len(slots))
	for _, s := range slots {
		out = append(out, rosterSlotDTO{
			Slot:       string(s.Entry.Slot),
			Player:     playerToDTO(s.Player),
			AcquiredAt: s.Entry.AcquiredAt,
		})
	}
	return out
}

type poolPlayerDTO struct {
	playerDTO
	Available     bool   `json:"available"`
	OwnerTeamID   string `json:"owner_team_id,omitempty"`
	OwnerTeamName string `json:"owner_team_name,omitempty"`
}

func poolToDTO(items []usecase.PoolPlayer) []poolPlayerDTO {
	out := make([]poolPlayerDTO, 0, len(items))
	for _, p := range items {
		out = append(out, poolPlayerDTO{
			playerDTO:     playerToDTO(p.Player),
			Available:     p.Available(),
			OwnerTeamID:   p.OwnerTeamID,
			OwnerTeamName: p.OwnerTeamName,
		})
	}
	return out
}
