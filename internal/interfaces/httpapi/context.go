package httpapi

import (
	"context"
	"fmt"

	"github.com/riskibarqy/draft-league/internal/domain/user"
	"github.com/riskibarqy/draft-league/internal/usecase"
)

type principalKey struct{}

func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// principal returns the caller RequireAuth stored on ctx.
func principal(ctx context.Context) (user.Principal, error) {
	p, ok := ctx.Value(principalKey{}).(user.Principal)
	if !ok || p.UserID == "" {
		return user.Principal{}, fmt.Errorf("%w: no authenticated caller on request", usecase.ErrUnauthenticated)
	}
	return p, nil
}
