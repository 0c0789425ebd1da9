package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"newsbot/internal/domain/ports"
)

var (
	errEmptyTopic = errors.New("the topic cannot be empty")

	headingColor = color.New(color.FgCyan, color.Bold)
	labelColor   = color.New(color.Bold)
)

// session performs one interactive lookup.
type session struct {
	searcher ports.ArticleSearcher
	in       io.Reader
	out      io.Writer
	language string
	limit    int
}

func (s *session) run(ctx context.Context, topic string, prompt bool) error {
	if prompt {
		fmt.Fprint(s.out, "Enter a topic to search news for: ")
		line, err := bufio.NewReader(s.in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read topic: %w", err)
		}
		topic = line
	}

	topic = strings.TrimSpace(topic)
	if topic == "" {
		return errEmptyTopic
	}

	articles, err := s.searcher.Search(ctx, topic, s.language, s.limit)
	if err != nil {
		var netErr *ports.NetworkError
		if errors.As(err, &netErr) {
			return fmt.Errorf("could not connect to the API: %w", err)
		}
		return fmt.Errorf("search failed: %w", err)
	}

	if len(articles) == 0 {
		fmt.Fprintf(s.out, "Nothing found for '%s'.\n", topic)
		return nil
	}

	for i, article := range articles {
		fmt.Fprintf(s.out, "\n%s\n", headingColor.Sprintf("Article %d:", i+1))
		fmt.Fprintf(s.out, "%s %s\n", labelColor.Sprint("Title:"), article.Title)
		fmt.Fprintf(s.out, "%s %s\n", labelColor.Sprint("Description:"), article.Description)
		fmt.Fprintf(s.out, "%s %s\n", labelColor.Sprint("Link:"), article.Link)
	}
	return nil
}
