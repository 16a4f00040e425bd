package postgres

import (
	"time"

	"github.com/riskibarqy/draft-league/internal/domain/membership"
)

type membershipTableModel struct {
	LeagueID string    `db:"league_public_id"`
	UserID   string    `db:"user_id"`
	Role     string    `db:"role"`
	JoinedAt time.Time `db:"joined_at"`
}

func membershipFromRow(row membershipTableModel) membership.Membership {
	return membership.Membership{
		LeagueID: row.LeagueID,
		UserID:   row.UserID,
		Role:     membership.Role(row.Role),
		JoinedAt: row.JoinedAt,
	}
}
