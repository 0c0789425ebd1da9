package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"newsbot/internal/domain/ports"
)

// NewsQuery turns chat input into news replies.
type NewsQuery struct {
	searcher  ports.ArticleSearcher
	phrases   ports.Phrasebook
	escaper   ports.Escaper
	recorder  ports.QueryRecorder
	logger    ports.Logger
	formatter Formatter
	language  string
	limit     int
}

// NewsQueryConfig controls the provider parameters used for every query.
type NewsQueryConfig struct {
	Language string
	Limit    int
}

var _ ports.ConversationHandler = (*NewsQuery)(nil)

// NewNewsQuery constructs a NewsQuery use case.
func NewNewsQuery(
	searcher ports.ArticleSearcher,
	phrases ports.Phrasebook,
	escaper ports.Escaper,
	recorder ports.QueryRecorder,
	logger ports.Logger,
	cfg NewsQueryConfig,
) *NewsQuery {
	formatter := NewFormatter()
	formatter.Header = func(index int) string {
		return phrases.Phrase(ports.PhraseArticleHeader, map[string]any{"Index": index})
	}
	formatter.TruncatedNotice = phrases.Phrase(ports.PhraseTruncated, nil)
	if escaper != nil {
		formatter.Escape = escaper.Escape
	}

	return &NewsQuery{
		searcher:  searcher,
		phrases:   phrases,
		escaper:   escaper,
		recorder:  recorder,
		logger:    logger,
		formatter: formatter,
		language:  cfg.Language,
		limit:     cfg.Limit,
	}
}

// Start greets a new user.
func (q *NewsQuery) Start(_ context.Context) string {
	return q.phrases.Phrase(ports.PhraseStart, nil)
}

// Help explains how to use the bot.
func (q *NewsQuery) Help(_ context.Context) string {
	return q.phrases.Phrase(ports.PhraseHelp, nil)
}

// Answer searches news for the topic in text and renders the reply.
func (q *NewsQuery) Answer(ctx context.Context, text string) string {
	topic := strings.TrimSpace(text)
	if topic == "" {
		q.observe(ports.OutcomeEmptyTopic, 0)
		return q.phrases.Phrase(ports.PhraseEmptyTopic, nil)
	}

	requestID := uuid.NewString()
	start := time.Now()
	articles, err := q.searcher.Search(ctx, topic, q.language, q.limit)
	elapsed := time.Since(start)

	if err != nil {
		var netErr *ports.NetworkError
		if errors.As(err, &netErr) {
			q.logError(ctx, "news search network failure", requestID, topic, err)
			q.observe(ports.OutcomeNetworkError, elapsed)
			return q.phrases.Phrase(ports.PhraseNetworkError, map[string]any{"Error": q.escape(err.Error())})
		}

		q.logError(ctx, "news search failed", requestID, topic, err)
		q.observe(ports.OutcomeError, elapsed)
		return q.phrases.Phrase(ports.PhraseGenericError, map[string]any{"Error": q.escape(err.Error())})
	}

	if len(articles) == 0 {
		q.logInfo(ctx, "news search found nothing", requestID, topic, elapsed)
		q.observe(ports.OutcomeNotFound, elapsed)
		return q.phrases.Phrase(ports.PhraseNothingFound, map[string]any{"Topic": q.escape(topic)})
	}

	q.logInfo(ctx, "news search answered", requestID, topic, elapsed, "articles", len(articles))
	q.observe(ports.OutcomeOK, elapsed)
	return q.formatter.Format(articles)
}

func (q *NewsQuery) escape(text string) string {
	if q.escaper == nil {
		return text
	}
	return q.escaper.Escape(text)
}

func (q *NewsQuery) observe(outcome string, elapsed time.Duration) {
	if q.recorder == nil {
		return
	}
	q.recorder.ObserveQuery(outcome, elapsed)
}

func (q *NewsQuery) logInfo(ctx context.Context, msg, requestID, topic string, elapsed time.Duration, args ...any) {
	if q.logger == nil {
		return
	}
	fields := append([]any{"request_id", requestID, "topic", topic, "duration", elapsed}, args...)
	q.logger.Info(ctx, msg, fields...)
}

func (q *NewsQuery) logError(ctx context.Context, msg, requestID, topic string, err error) {
	if q.logger == nil {
		return
	}
	q.logger.Error(ctx, msg, "request_id", requestID, "topic", topic, "error", err)
}
