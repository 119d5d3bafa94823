// Package auth carries the implicit chat identity through request contexts.
package auth

import "context"

type chatIDKey struct{}

// WithChatID returns a context tagged with the chat that triggered the action.
func WithChatID(ctx context.Context, chatID int64) context.Context {
	return context.WithValue(ctx, chatIDKey{}, chatID)
}

// GetChatID returns the chat id set by WithChatID, or 0 when the action did
// not originate from a chat (for example a stock event from Kafka).
func GetChatID(ctx context.Context) int64 {
	if val, ok := ctx.Value(chatIDKey{}).(int64); ok {
		return val
	}
	return 0
}
