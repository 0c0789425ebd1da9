package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsbot/internal/domain/ports"
)

func TestEnglishPhrases(t *testing.T) {
	book, err := New("en")
	require.NoError(t, err)

	assert.Equal(t, "The topic cannot be empty.", book.Phrase(ports.PhraseEmptyTopic, nil))
	assert.Equal(t, "Article 2.", book.Phrase(ports.PhraseArticleHeader, map[string]any{"Index": 2}))
	assert.Equal(t, "Nothing found for «mars».", book.Phrase(ports.PhraseNothingFound, map[string]any{"Topic": "mars"}))
	assert.Equal(t, "Network error while contacting NewsAPI: dial tcp: refused",
		book.Phrase(ports.PhraseNetworkError, map[string]any{"Error": "dial tcp: refused"}))
}

func TestRussianPhrases(t *testing.T) {
	book, err := New("ru")
	require.NoError(t, err)

	assert.Equal(t, "Тема не может быть пустой.", book.Phrase(ports.PhraseEmptyTopic, nil))
	assert.Equal(t, "Новость 1.", book.Phrase(ports.PhraseArticleHeader, map[string]any{"Index": 1}))
	assert.Equal(t, "Произошла ошибка: boom", book.Phrase(ports.PhraseGenericError, map[string]any{"Error": "boom"}))
}

func TestUnknownLocaleFallsBackToEnglish(t *testing.T) {
	book, err := New("de")
	require.NoError(t, err)

	assert.Equal(t, "The topic cannot be empty.", book.Phrase(ports.PhraseEmptyTopic, nil))
}

func TestEveryPhraseIsTranslated(t *testing.T) {
	ids := []string{
		ports.PhraseStart,
		ports.PhraseHelp,
		ports.PhraseEmptyTopic,
		ports.PhraseNothingFound,
		ports.PhraseNetworkError,
		ports.PhraseGenericError,
		ports.PhraseArticleHeader,
		ports.PhraseTruncated,
	}
	for _, locale := range []string{"en", "ru"} {
		book, err := New(locale)
		require.NoError(t, err)
		for _, id := range ids {
			assert.NotEqual(t, id, book.Phrase(id, map[string]any{"Index": 1, "Topic": "t", "Error": "e"}), "%s/%s", locale, id)
		}
	}
}

func TestUnknownPhraseRendersID(t *testing.T) {
	book, err := New("en")
	require.NoError(t, err)

	assert.Equal(t, "missing_id", book.Phrase("missing_id", nil))
}
