// Package identity supplies the opaque stable WebID of the caller. It is
// the only authentication surface the catalog knows about; session and
// login flows live outside the module.
package identity

import (
	"context"
	"errors"
)

var ErrNotAuthenticated = errors.New("not authenticated")

// Resolver reports the WebID of the current caller.
type Resolver interface {
	CurrentIdentity(ctx context.Context) (string, error)
}

type ctxKeyToken struct{}

// ContextWithToken attaches the caller's raw bearer token for resolvers
// that verify per-request credentials.
func ContextWithToken(ctx context.Context, rawToken string) context.Context {
	return context.WithValue(ctx, ctxKeyToken{}, rawToken)
}

func tokenFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKeyToken{}).(string)
	return v, ok && v != ""
}

// Static resolves every call to a fixed WebID. Used in dev mode and tests.
type Static struct {
	WebID string
}

func (s Static) CurrentIdentity(ctx context.Context) (string, error) {
	if s.WebID == "" {
		return "", ErrNotAuthenticated
	}
	return s.WebID, nil
}
