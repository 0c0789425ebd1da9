package usecase

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"newsbot/internal/domain/model"
)

func TestFormatSingleArticle(t *testing.T) {
	out := NewFormatter().Format([]model.Article{
		{Title: "X", Description: "Y", Link: "https://a"},
	})
	assert.Equal(t, "<b>Article 1.</b> X\nY\nhttps://a", out)
}

func TestFormatNumbersAndSeparatesBlocks(t *testing.T) {
	out := NewFormatter().Format([]model.Article{
		{Title: "First", Description: "one", Link: "https://1"},
		{Title: "Second", Description: "two", Link: "https://2"},
	})
	assert.Equal(t, "<b>Article 1.</b> First\none\nhttps://1\n\n<b>Article 2.</b> Second\ntwo\nhttps://2", out)
}

func TestFormatOmitsEmptyLines(t *testing.T) {
	out := NewFormatter().Format([]model.Article{
		{Title: "  ", Description: " \n", Link: "https://a"},
		{Title: "Only title"},
	})
	assert.Equal(t, "<b>Article 1.</b>\nhttps://a\n\n<b>Article 2.</b> Only title", out)
}

func TestFormatKeepsShortDescriptionVerbatim(t *testing.T) {
	desc := strings.Repeat("a", DefaultDescriptionWidth)
	out := NewFormatter().Format([]model.Article{{Title: "T", Description: desc, Link: "L"}})

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, desc, lines[1])
}

func TestFormatShortensLongDescription(t *testing.T) {
	desc := strings.Repeat("word ", 100)
	out := NewFormatter().Format([]model.Article{{Title: "T", Description: desc, Link: "L"}})

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	rendered := lines[1]
	require.True(t, strings.HasSuffix(rendered, ellipsis))

	kept := strings.TrimSuffix(rendered, ellipsis)
	assert.LessOrEqual(t, utf8.RuneCountInString(kept), DefaultDescriptionWidth)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(desc), kept))
	assert.False(t, strings.HasSuffix(kept, " "))
}

func TestShortenCountsRunes(t *testing.T) {
	desc := strings.Repeat("я", 281)
	got := shorten(desc, DefaultDescriptionWidth)

	assert.Equal(t, strings.Repeat("я", 280)+ellipsis, got)
	assert.Equal(t, strings.Repeat("я", 280), shorten(strings.Repeat("я", 280), DefaultDescriptionWidth))
}

func TestShortenBacksOffToWordBoundary(t *testing.T) {
	assert.Equal(t, "hello"+ellipsis, shorten("hello world", 8))
	assert.Equal(t, "helloworl"+ellipsis, shorten("helloworld", 9))
}

func TestFormatCapsTotalLength(t *testing.T) {
	records := make([]model.Article, 0, 30)
	for i := 0; i < 30; i++ {
		records = append(records, model.Article{
			Title:       fmt.Sprintf("Title %d", i),
			Description: strings.Repeat("d", 250),
			Link:        fmt.Sprintf("https://example.com/%d", i),
		})
	}

	f := NewFormatter()
	full := strings.Join(func() []string {
		blocks := make([]string, 0, len(records))
		for i, r := range records {
			blocks = append(blocks, f.formatArticle(i+1, r))
		}
		return blocks
	}(), "\n\n")
	require.Greater(t, utf8.RuneCountInString(full), DefaultMessageLimit)

	out := f.Format(records)
	suffix := "\n\n" + f.TruncatedNotice
	require.True(t, strings.HasSuffix(out, suffix))

	content := strings.TrimSuffix(out, suffix)
	assert.LessOrEqual(t, utf8.RuneCountInString(content), DefaultMessageLimit)
	assert.Greater(t, utf8.RuneCountInString(content), DefaultMessageLimit-40)
	assert.True(t, strings.HasPrefix(full, content))
	assert.Equal(t, strings.Count(content, "<b>"), strings.Count(content, "</b>"))
}

func truncatingFormatter(limit int) Formatter {
	return Formatter{
		MessageLimit:    limit,
		Header:          func(int) string { return "H" },
		TruncatedNotice: "cut",
		Escape:          html.EscapeString,
	}
}

func TestFormatCapKeepsExactPrefixInPlainText(t *testing.T) {
	out := truncatingFormatter(10).Format([]model.Article{{Title: "abcdefghijkl"}})
	assert.Equal(t, "<b>H</b> a\n\ncut", out)
}

func TestFormatCapDoesNotSplitEntity(t *testing.T) {
	// "<b>H</b> a&amp;b" cut after "&a"
	out := truncatingFormatter(12).Format([]model.Article{{Title: "a&b"}})
	assert.Equal(t, "<b>H</b> a\n\ncut", out)

	out = truncatingFormatter(15).Format([]model.Article{{Title: "a&b"}})
	assert.Equal(t, "<b>H</b> a&amp;\n\ncut", out)
}

func TestFormatCapDoesNotSplitTag(t *testing.T) {
	// cut inside the opening "<b>"
	out := truncatingFormatter(2).Format([]model.Article{{Title: "title"}})
	assert.Equal(t, "\n\ncut", out)

	// cut inside the second block's label
	out = truncatingFormatter(22).Format([]model.Article{{Title: "title"}, {Title: "next"}})
	assert.Equal(t, "<b>H</b> title\n\ncut", out)

	// cut right after the label
	out = truncatingFormatter(9).Format([]model.Article{{Title: "title"}})
	assert.Equal(t, "<b>H</b>\n\ncut", out)
}

func TestFormatUsesHooks(t *testing.T) {
	f := NewFormatter()
	f.Header = func(index int) string { return fmt.Sprintf("Новость %d.", index) }
	f.Escape = func(s string) string { return strings.ReplaceAll(s, "<", "&lt;") }

	out := f.Format([]model.Article{{Title: "a<b", Description: "c", Link: "https://x"}})
	assert.Equal(t, "<b>Новость 1.</b> a&lt;b\nc\nhttps://x", out)
}
