package ports

// Phrase identifiers understood by every Phrasebook.
const (
	PhraseStart         = "start"
	PhraseHelp          = "help"
	PhraseEmptyTopic    = "empty_topic"
	PhraseNothingFound  = "nothing_found"
	PhraseNetworkError  = "network_error"
	PhraseGenericError  = "generic_error"
	PhraseArticleHeader = "article_header"
	PhraseTruncated     = "truncated"
)

// Phrasebook renders user-facing texts by identifier.
type Phrasebook interface {
	Phrase(id string, data map[string]any) string
}

// Escaper makes arbitrary text safe for the transport's markup.
type Escaper interface {
	Escape(text string) string
}
