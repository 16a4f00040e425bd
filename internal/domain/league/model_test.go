package league

import (
	"testing"
	"time"
)

func TestSeasonYear(t *testing.T) {
	t.Parallel()

	cases := []struct {
		at   time.Time
		want int
	}{
		{at: time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC), want: 2026},
		{at: time.Date(2026, time.September, 30, 23, 0, 0, 0, time.UTC), want: 2026},
		{at: time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC), want: 2027},
		{at: time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC), want: 2027},
	}
	for _, tc := range cases {
		if got := SeasonYear(tc.at); got != tc.want {
			t.Fatalf("SeasonYear(%s)=%d want %d", tc.at.Format(time.DateOnly), got, tc.want)
		}
	}
}

func TestParseEnums(t *testing.T) {
	t.Parallel()

	if v, err := ParseVisibility(""); err != nil || v != VisibilityPrivate {
		t.Fatalf("empty visibility should default to private, got %q err=%v", v, err)
	}
	if _, err := ParseVisibility("secret"); err == nil {
		t.Fatalf("expected error for unknown visibility")
	}
	if v, err := ParseDraftType("AUTO"); err != nil || v != DraftTypeAuto {
		t.Fatalf("unexpected draft type %q err=%v", v, err)
	}
	if _, err := ParseDraftStatus("paused"); err == nil {
		t.Fatalf("expected error for unknown draft status")
	}
	if v, err := ParseStatus(" Archived "); err != nil || v != StatusArchived {
		t.Fatalf("unexpected status %q err=%v", v, err)
	}
}

func TestLeagueValidate(t *testing.T) {
	t.Parallel()

	valid := League{ID: "lg-1", Name: "Sunday Crew", MaxTeams: 10, JoinCode: "ABC123", Status: StatusActive, CreatedBy: "u1"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tooSmall := valid
	tooSmall.MaxTeams = 1
	if err := tooSmall.Validate(); err == nil {
		t.Fatalf("expected error for max teams below minimum")
	}

	archived := valid
	archived.Status = StatusArchived
	archived.JoinCode = ArchivedJoinCode(valid.JoinCode, time.Unix(0, 0))
	if err := archived.Validate(); err != nil {
		t.Fatalf("archived league with suffixed code should validate: %v", err)
	}
}
