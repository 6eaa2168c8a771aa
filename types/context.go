package types

import "context"

// contextKey is used for storing values in context.Context.
type contextKey string

const (
	keySessionID contextKey = "session_id"
	keyCallerID  contextKey = "caller_id"
)

// WithSessionID tags ctx with the conversation session every provider call
// belongs to. Invokers log it and attach it to their spans.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, keySessionID, sessionID)
}

// SessionID extracts session ID from context.
func SessionID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(keySessionID).(string)
	return v, ok && v != ""
}

// WithCallerID adds the identity of the calling application (CLI, service name).
func WithCallerID(ctx context.Context, callerID string) context.Context {
	return context.WithValue(ctx, keyCallerID, callerID)
}

// CallerID extracts caller ID from context.
func CallerID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(keyCallerID).(string)
	return v, ok && v != ""
}
