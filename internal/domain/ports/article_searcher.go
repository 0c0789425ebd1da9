package ports

import (
	"context"

	"newsbot/internal/domain/model"
)

// ArticleSearcher looks up news articles for a free-text topic.
type ArticleSearcher interface {
	Search(ctx context.Context, topic, language string, limit int) ([]model.Article, error)
}

// NetworkError reports a transport-level failure while talking to the search provider.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
