package port

import (
	"context"
	"metahub/internal/core/domain"
)

type Messenger interface {
	// SendEphemeral posts a message visible only to one user in a channel.
	SendEphemeral(ctx context.Context, channelID, userID, text string) error
	// SendMessage posts a chat message on behalf of a module.
	SendMessage(ctx context.Context, message *domain.ChatMessage) error
}

// PlatformCaller invokes a named chat-platform API method with an arbitrary
// payload. Implementations must reject methods outside their allow-list with
// domain-level errors rather than forwarding them.
type PlatformCaller interface {
	Call(ctx context.Context, method string, payload map[string]any) (map[string]any, error)
}
