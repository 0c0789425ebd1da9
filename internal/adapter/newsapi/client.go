package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"newsbot/internal/domain/model"
	"newsbot/internal/domain/ports"
)

const (
	everythingPath = "/v2/everything"
	sortRelevancy  = "relevancy"
	maxPageSize    = 100
	maxBodyBytes   = 4 * 1024 * 1024
)

// ErrEmptyTopic is returned when Search is called without a topic.
var ErrEmptyTopic = errors.New("topic is empty")

// APIError is a failure reported by NewsAPI itself.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("newsapi status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("newsapi %s (status %d): %s", e.Code, e.StatusCode, e.Message)
}

// Client implements ArticleSearcher using the NewsAPI everything endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     ports.Logger
}

var _ ports.ArticleSearcher = (*Client)(nil)

// New creates a NewsAPI client.
func New(apiKey, baseURL string, timeout time.Duration, logger ports.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		logger:     logger,
	}
}

type everythingResponse struct {
	Status       string `json:"status"`
	Code         string `json:"code"`
	Message      string `json:"message"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
	} `json:"articles"`
}

// Search requests relevancy-sorted articles for topic and returns at most limit of them.
// Transport failures are reported as *ports.NetworkError.
func (c *Client) Search(ctx context.Context, topic, language string, limit int) ([]model.Article, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrEmptyTopic
	}
	limit = clampPageSize(limit)

	endpoint, err := c.endpoint(topic, language, limit)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "newsbot/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ports.NetworkError{Err: fmt.Errorf("perform request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &ports.NetworkError{Err: fmt.Errorf("read response: %w", err)}
	}

	var payload everythingResponse
	decodeErr := json.Unmarshal(body, &payload)

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode, Code: payload.Code, Message: payload.Message}
		if decodeErr != nil || apiErr.Message == "" {
			apiErr.Message = snippet(body)
		}
		return nil, apiErr
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("decode response: %w", decodeErr)
	}

	if payload.Status == "error" {
		return nil, &APIError{StatusCode: resp.StatusCode, Code: payload.Code, Message: payload.Message}
	}

	items := payload.Articles
	if len(items) > limit {
		items = items[:limit]
	}

	articles := make([]model.Article, 0, len(items))
	for _, item := range items {
		articles = append(articles, model.NewArticle(
			cleanText(item.Title),
			cleanText(item.Description),
			strings.TrimSpace(item.URL),
		))
	}

	if c.logger != nil {
		c.logger.Info(ctx, "newsapi search completed",
			"language", language,
			"total_results", payload.TotalResults,
			"returned", len(articles))
	}

	return articles, nil
}

func (c *Client) endpoint(topic, language string, limit int) (string, error) {
	u, err := url.Parse(c.baseURL + everythingPath)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	q := u.Query()
	q.Set("q", topic)
	if language != "" {
		q.Set("language", language)
	}
	q.Set("sortBy", sortRelevancy)
	q.Set("pageSize", strconv.Itoa(limit))
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func clampPageSize(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}

func snippet(body []byte) string {
	const limit = 512
	text := strings.TrimSpace(string(body))
	if len(text) > limit {
		text = text[:limit]
	}
	return text
}

// cleanText strips markup some publishers embed in titles and descriptions and collapses whitespace.
// Entities are decoded; tag-shaped text that is not an HTML element is kept as written.
func cleanText(input string) string {
	if strings.ContainsAny(input, "<&") {
		input = htmlToText(input)
	}
	return strings.Join(strings.Fields(input), " ")
}

func htmlToText(input string) string {
	z := html.NewTokenizer(strings.NewReader(input))

	var builder strings.Builder
	skip := 0
	for {
		tt := z.Next()
		raw := string(z.Raw())

		switch tt {
		case html.ErrorToken:
			// an unterminated tag at the end of input is still text
			if skip == 0 {
				builder.WriteString(raw)
			}
			return builder.String()
		case html.TextToken:
			if skip == 0 {
				builder.Write(z.Text())
			}
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch atom.Lookup(name) {
			case 0:
				if skip == 0 {
					builder.WriteString(raw)
				}
			case atom.Script, atom.Style:
				if tt == html.StartTagToken {
					skip++
				} else if tt == html.EndTagToken && skip > 0 {
					skip--
				}
			default:
				builder.WriteRune(' ')
			}
		}
	}
}
