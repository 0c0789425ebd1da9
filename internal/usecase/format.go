package usecase

import (
	"fmt"
	"strings"
	"unicode"

	"newsbot/internal/domain/model"
)

const (
	// DefaultDescriptionWidth is the longest description rendered before it is shortened.
	DefaultDescriptionWidth = 280
	// DefaultMessageLimit keeps replies below Telegram's 4096 character ceiling.
	DefaultMessageLimit = 3800

	ellipsis = " …"
)

// Formatter renders article lists as an HTML-flavored chat message.
type Formatter struct {
	DescriptionWidth int
	MessageLimit     int
	// Header returns the bold label placed before the title of the article at a 1-based index.
	Header          func(index int) string
	TruncatedNotice string
	// Escape is applied to titles, descriptions and links after shortening. Nil leaves them verbatim.
	Escape func(string) string
}

// NewFormatter returns a Formatter with English labels and the default limits.
func NewFormatter() Formatter {
	return Formatter{
		DescriptionWidth: DefaultDescriptionWidth,
		MessageLimit:     DefaultMessageLimit,
		Header: func(index int) string {
			return fmt.Sprintf("Article %d.", index)
		},
		TruncatedNotice: "…Output too long, part of it was cut.",
	}
}

// Format renders records as numbered blocks separated by a blank line.
func (f Formatter) Format(records []model.Article) string {
	blocks := make([]string, 0, len(records))
	for i, article := range records {
		blocks = append(blocks, f.formatArticle(i+1, article))
	}
	return f.capLength(strings.Join(blocks, "\n\n"))
}

func (f Formatter) formatArticle(index int, article model.Article) string {
	title := strings.TrimSpace(article.Title)
	description := shorten(strings.TrimSpace(article.Description), f.descriptionWidth())
	link := strings.TrimSpace(article.Link)

	header := "<b>" + f.header(index) + "</b>"
	if title != "" {
		header += " " + f.escape(title)
	}

	lines := []string{header}
	if description != "" {
		lines = append(lines, f.escape(description))
	}
	if link != "" {
		lines = append(lines, f.escape(link))
	}
	return strings.Join(lines, "\n")
}

func (f Formatter) capLength(text string) string {
	limit := f.MessageLimit
	if limit <= 0 {
		limit = DefaultMessageLimit
	}

	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return dropPartialMarkup(string(runes[:limit])) + "\n\n" + f.TruncatedNotice
}

// dropPartialMarkup removes a tag, entity or bold label left open by a cut so Telegram still accepts the reply.
func dropPartialMarkup(text string) string {
	if lt := strings.LastIndexByte(text, '<'); lt > strings.LastIndexByte(text, '>') {
		text = text[:lt]
	}
	if amp := strings.LastIndexByte(text, '&'); amp >= 0 && !strings.Contains(text[amp:], ";") {
		text = text[:amp]
	}
	if strings.Count(text, "<b>") > strings.Count(text, "</b>") {
		text = text[:strings.LastIndex(text, "<b>")]
	}
	return strings.TrimRightFunc(text, unicode.IsSpace)
}

func (f Formatter) header(index int) string {
	if f.Header == nil {
		return fmt.Sprintf("Article %d.", index)
	}
	return f.Header(index)
}

func (f Formatter) escape(text string) string {
	if f.Escape == nil {
		return text
	}
	return f.Escape(text)
}

func (f Formatter) descriptionWidth() int {
	if f.DescriptionWidth <= 0 {
		return DefaultDescriptionWidth
	}
	return f.DescriptionWidth
}

// shorten cuts text to at most width runes, preferring a word boundary, and marks the cut.
func shorten(text string, width int) string {
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}

	cut := runes[:width]
	for i := len(cut) - 1; i > 0; i-- {
		if unicode.IsSpace(cut[i]) {
			cut = cut[:i]
			break
		}
	}

	return strings.TrimRightFunc(string(cut), unicode.IsSpace) + ellipsis
}
