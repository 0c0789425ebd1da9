package telegram

import "fmt"

// Bot API payloads, trimmed to the fields the bot reads.

type apiResponse[T any] struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
	Result      T      `json:"result"`
}

func (r *apiResponse[T]) failure() error {
	if r.OK {
		return nil
	}
	return fmt.Errorf("telegram API error %d: %s", r.ErrorCode, r.Description)
}

type user struct {
	ID       int64  `json:"id"`
	IsBot    bool   `json:"is_bot"`
	Username string `json:"username"`
}

type chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

type message struct {
	MessageID int64  `json:"message_id"`
	From      *user  `json:"from,omitempty"`
	ViaBot    *user  `json:"via_bot,omitempty"`
	Chat      chat   `json:"chat"`
	Text      string `json:"text"`
}

type update struct {
	UpdateID int64    `json:"update_id"`
	Message  *message `json:"message,omitempty"`
}

type sendMessageRequest struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}
