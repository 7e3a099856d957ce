package trace

import "context"

// ctxKey is the key type for storing Logger in context.
type ctxKey struct{}

// FromContext extracts the Logger from context.
// If not found, returns Nop logger.
func FromContext(ctx context.Context) Logger {
	if ctx == nil {
		return Nop
	}
	if l, ok := ctx.Value(ctxKey{}).(Logger); ok {
		return l
	}
	return Nop
}

// WithLogger attaches a Logger to context.
func WithLogger(ctx context.Context, l Logger) context.Context {
	if l == nil {
		l = Nop
	}
	return context.WithValue(ctx, ctxKey{}, l)
}
