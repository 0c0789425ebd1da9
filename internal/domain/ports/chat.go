package ports

import "context"

// ConversationHandler produces replies for the commands a chat transport routes.
type ConversationHandler interface {
	Start(ctx context.Context) string
	Help(ctx context.Context) string
	Answer(ctx context.Context, text string) string
}

// ChatTransport delivers inbound messages to a handler and sends its replies.
// Listen blocks until ctx is cancelled.
type ChatTransport interface {
	Listen(ctx context.Context, handler ConversationHandler) error
}
