package markup

import (
	"github.com/microcosm-cc/bluemonday"
)

// telegramTags are the formatting elements Telegram's HTML parse mode accepts without attributes.
var telegramTags = []string{"b", "strong", "i", "em", "u", "ins", "s", "strike", "del", "code", "pre"}

// ReplyPolicy drops markup Telegram would refuse before a reply is sent.
// Escaped text passes through unchanged.
type ReplyPolicy struct {
	policy *bluemonday.Policy
}

func NewReplyPolicy() *ReplyPolicy {
	p := bluemonday.NewPolicy()
	p.AllowElements(telegramTags...)
	return &ReplyPolicy{policy: p}
}

// Sanitize keeps the supported formatting tags and removes every other element.
func (p *ReplyPolicy) Sanitize(reply string) string {
	return p.policy.Sanitize(reply)
}
