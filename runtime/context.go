package runtime

import "context"

// Context is the explicit runtime handle every task carries, replacing any
// package-level runtime/pool singleton. It is threaded through a
// context.Context value rather than referenced as ambient global state.
type Context struct {
	Provider Provider
}

// New creates a Context around the given Provider.
func New(p Provider) *Context {
	return &Context{Provider: p}
}

// NewStandard creates a Context backed by the default goroutine/netpoller
// Provider.
func NewStandard() *Context {
	return New(NewStandardProvider())
}

// NewMockContext creates a Context backed by the synchronous mock Provider,
// for deterministic tests.
func NewMockContext() *Context {
	return New(NewMock())
}

type contextKey struct{}

// WithContext attaches rc to ctx, retrievable later via FromContext.
func WithContext(ctx context.Context, rc *Context) context.Context {
	return context.WithValue(ctx, contextKey{}, rc)
}

// FromContext retrieves the Context attached to ctx, if any.
func FromContext(ctx context.Context) (*Context, bool) {
	rc, ok := ctx.Value(contextKey{}).(*Context)
	return rc, ok
}
