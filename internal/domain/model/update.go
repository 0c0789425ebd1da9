package model

// Update is an inbound chat message as seen by the transport.
type Update struct {
	ChatID    int64
	MessageID int64
	Text      string
}
