package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsbot/internal/domain/model"
	"newsbot/internal/domain/ports"
)

type stubSearcher struct {
	articles []model.Article
	err      error
	topic    string
	calls    int
}

func (s *stubSearcher) Search(_ context.Context, topic, _ string, _ int) ([]model.Article, error) {
	s.calls++
	s.topic = topic
	return s.articles, s.err
}

func newSession(searcher ports.ArticleSearcher, input string) (*session, *bytes.Buffer) {
	color.NoColor = true
	out := &bytes.Buffer{}
	return &session{
		searcher: searcher,
		in:       strings.NewReader(input),
		out:      out,
		language: "ru",
		limit:    5,
	}, out
}

func TestSessionPromptsForTopic(t *testing.T) {
	searcher := &stubSearcher{articles: []model.Article{{Title: "X", Description: "Y", Link: "https://a"}}}
	s, out := newSession(searcher, "  climate change \n")

	require.NoError(t, s.run(context.Background(), "", true))

	assert.Equal(t, "climate change", searcher.topic)
	assert.Equal(t,
		"Enter a topic to search news for: \nArticle 1:\nTitle: X\nDescription: Y\nLink: https://a\n",
		out.String())
}

func TestSessionUsesArgumentTopic(t *testing.T) {
	searcher := &stubSearcher{}
	s, out := newSession(searcher, "")

	require.NoError(t, s.run(context.Background(), "mars", false))

	assert.Equal(t, "mars", searcher.topic)
	assert.Equal(t, "Nothing found for 'mars'.\n", out.String())
}

func TestSessionRejectsEmptyTopic(t *testing.T) {
	searcher := &stubSearcher{}
	s, _ := newSession(searcher, "   \n")

	err := s.run(context.Background(), "", true)
	require.ErrorIs(t, err, errEmptyTopic)
	assert.Zero(t, searcher.calls)
}

func TestSessionDistinguishesNetworkErrors(t *testing.T) {
	searcher := &stubSearcher{err: &ports.NetworkError{Err: errors.New("dial tcp: refused")}}
	s, _ := newSession(searcher, "")

	err := s.run(context.Background(), "markets", false)
	require.Error(t, err)
	assert.Equal(t, "could not connect to the API: dial tcp: refused", err.Error())

	searcher.err = errors.New("newsapi rateLimited (status 429): slow down")
	err = s.run(context.Background(), "markets", false)
	require.Error(t, err)
	assert.Equal(t, "search failed: newsapi rateLimited (status 429): slow down", err.Error())
}
