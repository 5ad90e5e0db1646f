package tenant

import (
	"context"
	"errors"
)

var ErrNoTenant = errors.New("no tenant context for this operation")

// Context identifies the tenant and the acting user for one request.
// It is carried explicitly through every persistence call; there is no
// ambient/global tenant state.
type Context struct {
	TenantID int64
	Actor    string
}

// Valid reports whether the context can be used for tenant-scoped work.
func (c Context) Valid() bool {
	return c.TenantID > 0
}

type ctxKey struct{}

// NewContext attaches tc to ctx so that persistence hooks can reach it.
func NewContext(ctx context.Context, tc Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, tc)
}

// FromContext extracts the tenant context placed by NewContext.
func FromContext(ctx context.Context) (Context, bool) {
	tc, ok := ctx.Value(ctxKey{}).(Context)
	return tc, ok
}

// System returns an operator context for administrative tooling that runs
// outside a request (seeders, CLIs). It still names a tenant.
func System(tenantID int64) Context {
	return Context{TenantID: tenantID, Actor: "system"}
}
