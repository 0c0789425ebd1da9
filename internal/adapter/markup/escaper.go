package markup

import (
	"golang.org/x/net/html"

	"newsbot/internal/domain/ports"
)

// HTMLEscaper makes plain text safe for Telegram's HTML parse mode.
// <, >, & and quotes are entity-escaped, nothing is dropped.
type HTMLEscaper struct{}

var _ ports.Escaper = (*HTMLEscaper)(nil)

func NewHTMLEscaper() *HTMLEscaper {
	return &HTMLEscaper{}
}

// Escape returns text with HTML special characters replaced by entities.
func (e *HTMLEscaper) Escape(text string) string {
	return html.EscapeString(text)
}
