package httpapi

import (
	"context"
	"fmt"

	"github.com/riskibarqy/squadup/internal/domain/user"
	"github.com/riskibarqy/squadup/internal/usecase"
)

type contextKey string

const principalContextKey contextKey = "auth_principal"

func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(user.Principal)
	return p, ok
}

// mustPrincipal is used by handlers mounted behind RequireAuth.
func mustPrincipal(ctx context.Context) (user.Principal, error) {
	p, ok := principalFromContext(ctx)
	if !ok || p.UserID == "" {
		return user.Principal{}, fmt.Errorf("%w: missing auth principal", usecase.ErrUnauthorized)
	}
	return p, nil
}
