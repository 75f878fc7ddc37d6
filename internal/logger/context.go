package logger

import (
	"context"

	"go.uber.org/zap"
)

type requestIDKey struct{}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// FromCtx returns the global logger tagged with the request id, so every
// log line of one storefront request can be correlated.
func FromCtx(ctx context.Context) *zap.Logger {
	reqID := RequestIDFrom(ctx)
	if reqID == "" {
		return L()
	}
	return L().With(zap.String("request_id", reqID))
}
