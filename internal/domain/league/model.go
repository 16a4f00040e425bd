package league

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of a league row.
type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

func ParseStatus(v string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(v))) {
	case StatusActive:
		return StatusActive, nil
	case StatusArchived:
		return StatusArchived, nil
	default:
		return "", fmt.Errorf("invalid league status: %q", v)
	}
}

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

func ParseVisibility(v string) (Visibility, error) {
	switch Visibility(strings.ToLower(strings.TrimSpace(v))) {
	case VisibilityPublic:
		return VisibilityPublic, nil
	case VisibilityPrivate, "":
		return VisibilityPrivate, nil
	default:
		return "", fmt.Errorf("invalid league visibility: %q", v)
	}
}

// DraftType is fixed at creation and independent of DraftStatus.
type DraftType string

const (
	DraftTypeAuto DraftType = "auto"
	DraftTypeLive DraftType = "live"
)

func ParseDraftType(v string) (DraftType, error) {
	switch DraftType(strings.ToLower(strings.TrimSpace(v))) {
	case DraftTypeLive, "":
		return DraftTypeLive, nil
	case DraftTypeAuto:
		return DraftTypeAuto, nil
	default:
		return "", fmt.Errorf("invalid draft type: %q", v)
	}
}

// DraftStatus moves pending -> in_progress -> complete. A reset moves it back
// to pending.
type DraftStatus string

const (
	DraftStatusPending    DraftStatus = "pending"
	DraftStatusInProgress DraftStatus = "in_progress"
	DraftStatusComplete   DraftStatus = "complete"
)

func ParseDraftStatus(v string) (DraftStatus, error) {
	switch DraftStatus(strings.ToLower(strings.TrimSpace(v))) {
	case DraftStatusPending:
		return DraftStatusPending, nil
	case DraftStatusInProgress:
		return DraftStatusInProgress, nil
	case DraftStatusComplete:
		return DraftStatusComplete, nil
	default:
		return "", fmt.Errorf("invalid draft status: %q", v)
	}
}

const (
	MinTeams = 2
	MaxTeams = 20

	// seasonRolloverMonth is the last month still counted toward the
	// current calendar year's season.
	seasonRolloverMonth = time.September
)

// League is a fantasy league: a set of teams drafting from one player pool
// and playing a weekly schedule.
type League struct {
	ID          string
	Name        string
	Season      int
	JoinCode    string
	MaxTeams    int
	Visibility  Visibility
	Status      Status
	DraftType   DraftType
	DraftStatus DraftStatus
	// CurrentPick is the overall number of the pick on the clock. Zero
	// before the board exists, rounds*teams+1 once the draft is complete.
	CurrentPick int
	// BotCounter is the highest "CPU Team N" number ever issued.
	BotCounter int
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("league name is required")
	}
	if l.MaxTeams < MinTeams || l.MaxTeams > MaxTeams {
		return fmt.Errorf("max teams must be between %d and %d", MinTeams, MaxTeams)
	}
	if err := ValidateJoinCode(l.JoinCode); err != nil && l.Status == StatusActive {
		return err
	}
	if l.CreatedBy == "" {
		return fmt.Errorf("league creator is required")
	}

	return nil
}

func (l League) IsActive() bool {
	return l.Status == StatusActive
}

// SeasonYear returns the season a league created at t belongs to. Leagues
// created after September play next year's season.
func SeasonYear(t time.Time) int {
	if t.Month() > seasonRolloverMonth {
		return t.Year() + 1
	}
	return t.Year()
}
