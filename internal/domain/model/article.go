package model

// Placeholders used when the provider omits a field.
const (
	NoTitle       = "No title"
	NoDescription = "No description"
	NoLink        = "No link"
)

// Article is a normalized news search result. Values are created per query and never mutated.
type Article struct {
	Title       string
	Description string
	Link        string
}

// NewArticle builds an Article, substituting placeholders for empty fields.
func NewArticle(title, description, link string) Article {
	if title == "" {
		title = NoTitle
	}
	if description == "" {
		description = NoDescription
	}
	if link == "" {
		link = NoLink
	}
	return Article{
		Title:       title,
		Description: description,
		Link:        link,
	}
}
