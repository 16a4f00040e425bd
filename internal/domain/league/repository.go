package league

import (
	"context"
	"errors"
)

// ErrDuplicateJoinCode is returned by stores when an active league already
// holds the join code being written.
var ErrDuplicateJoinCode = errors.New("join code already in use")

// Repository describes league persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, l League) error
	GetByID(ctx context.Context, leagueID string) (League, bool, error)
	// LockByID reads the league and holds a row lock until the surrounding
	// transaction ends.
	LockByID(ctx context.Context, leagueID string) (League, bool, error)
	GetActiveByJoinCode(ctx context.Context, code string) (League, bool, error)
	JoinCodeInUse(ctx context.Context, code string) (bool, error)
	Update(ctx context.Context, l League) error
	// AdvancePick moves the pick pointer only if it still equals from.
	AdvancePick(ctx context.Context, leagueID string, from, to int, status DraftStatus) (bool, error)
	Delete(ctx context.Context, leagueID string) error
	ListByUser(ctx context.Context, userID string) ([]League, error)
	ListPublic(ctx context.Context, limit int) ([]League, error)
}
