// Package auth carries the already-resolved identity of a request. Token
// verification and tenant membership live at the HTTP edge; everything
// below it receives a RequestContext by value and trusts it.
package auth

import "context"

// RequestContext identifies the acting user and the tenant scope of a
// request. TenantID zero means no tenant was resolved.
type RequestContext struct {
	TenantID int64
	UserID   int64
	Role     string
}

type ctxKey struct{}

// WithRequestContext returns a context carrying rc.
func WithRequestContext(ctx context.Context, rc RequestContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, rc)
}

// FromContext extracts the RequestContext set by the auth middleware.
func FromContext(ctx context.Context) (RequestContext, bool) {
	rc, ok := ctx.Value(ctxKey{}).(RequestContext)
	return rc, ok
}
