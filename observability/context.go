package observability

import "context"

// contextKey is a private type for context keys to avoid collisions.
type contextKey int

const (
	spanContextKey contextKey = iota
	observerContextKey
)

// SpanFromContext extracts a Span from the context.
// Returns nil if no span is present.
func SpanFromContext(ctx context.Context) Span {
	if ctx == nil {
		return nil
	}
	span, _ := ctx.Value(spanContextKey).(Span)
	return span
}

// ContextWithSpan returns a new context with the given span attached.
func ContextWithSpan(ctx context.Context, span Span) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, spanContextKey, span)
}

// ObserverFromContext extracts a Provider from the context.
// Returns nil if no provider is present.
func ObserverFromContext(ctx context.Context) Provider {
	if ctx == nil {
		return nil
	}
	provider, _ := ctx.Value(observerContextKey).(Provider)
	return provider
}

// ContextWithObserver returns a new context with the given provider attached.
func ContextWithObserver(ctx context.Context, provider Provider) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, observerContextKey, provider)
}
