package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"newsbot/internal/domain/model"
	"newsbot/internal/domain/ports"
)

const (
	defaultPollTimeout = 30 * time.Second
	defaultRetryDelay  = 5 * time.Second
	handlerTimeout     = 2 * time.Minute
	parseModeHTML      = "HTML"

	// Telegram allows roughly 30 outgoing messages per second per bot.
	sendRate  = 30
	sendBurst = 5
)

// Option configures a Bot.
type Option func(*Bot)

// WithPollTimeout sets the long-poll timeout passed to getUpdates.
func WithPollTimeout(d time.Duration) Option {
	return func(b *Bot) { b.pollTimeout = d }
}

// WithRetryDelay sets the pause after a failed getUpdates call.
func WithRetryDelay(d time.Duration) Option {
	return func(b *Bot) { b.retryDelay = d }
}

// WithReplyFilter sets a function applied to every handler reply before it is sent.
func WithReplyFilter(filter func(string) string) Option {
	return func(b *Bot) { b.filter = filter }
}

// Bot is a Telegram Bot API transport using long polling.
type Bot struct {
	token       string
	baseURL     string
	client      *http.Client
	logger      ports.Logger
	recorder    ports.QueryRecorder
	limiter     *rate.Limiter
	pollTimeout time.Duration
	retryDelay  time.Duration
	filter      func(string) string

	offset   int64
	username string
}

var _ ports.ChatTransport = (*Bot)(nil)

// New creates a Bot for token. recorder may be nil.
func New(token, baseURL string, logger ports.Logger, recorder ports.QueryRecorder, opts ...Option) *Bot {
	b := &Bot{
		token:       token,
		baseURL:     strings.TrimRight(baseURL, "/"),
		logger:      logger,
		recorder:    recorder,
		limiter:     rate.NewLimiter(rate.Limit(sendRate), sendBurst),
		pollTimeout: defaultPollTimeout,
		retryDelay:  defaultRetryDelay,
	}
	for _, o := range opts {
		o(b)
	}
	b.client = &http.Client{Timeout: b.pollTimeout + 30*time.Second}
	return b
}

// Listen polls for updates and dispatches each one on its own goroutine.
// It returns once ctx is cancelled and in-flight updates are answered.
func (b *Bot) Listen(ctx context.Context, handler ports.ConversationHandler) error {
	if me, err := b.getMe(ctx); err == nil {
		b.username = me
		b.logInfo(ctx, "telegram bot identified", "username", me)
	} else {
		b.logWarn(ctx, "telegram getMe failed, commands addressed to other bots are not filtered", "error", err)
	}

	var inflight errgroup.Group
	defer func() { _ = inflight.Wait() }()

	b.logInfo(ctx, "telegram polling started")
	for {
		if ctx.Err() != nil {
			b.logInfo(context.Background(), "telegram polling stopped")
			return nil
		}

		updates, err := b.getUpdates(ctx)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			b.logWarn(ctx, "telegram getUpdates failed", "error", err)
			select {
			case <-ctx.Done():
			case <-time.After(b.retryDelay):
			}
			continue
		}

		for _, u := range updates {
			if u.UpdateID >= b.offset {
				b.offset = u.UpdateID + 1
			}
			msg, ok := toUpdate(u)
			if !ok {
				continue
			}
			inflight.Go(func() error {
				hctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), handlerTimeout)
				defer cancel()
				b.dispatch(hctx, handler, msg)
				return nil
			})
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, handler ports.ConversationHandler, msg model.Update) {
	var reply string
	switch commandName(msg.Text, b.username) {
	case "start":
		reply = handler.Start(ctx)
	case "help":
		reply = handler.Help(ctx)
	default:
		reply = handler.Answer(ctx, msg.Text)
	}
	if b.filter != nil {
		reply = b.filter(reply)
	}

	err := b.Send(ctx, msg.ChatID, reply)
	if b.recorder != nil {
		b.recorder.ObserveReply(err)
	}
	if err != nil {
		b.logError(ctx, "telegram reply failed", "chat_id", msg.ChatID, "message_id", msg.MessageID, "error", err)
	}
}

// Send delivers an HTML-formatted message to a chat.
func (b *Bot) Send(ctx context.Context, chatID int64, text string) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait for send slot: %w", err)
	}

	payload, err := json.Marshal(sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: parseModeHTML,
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.method("sendMessage"), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var result apiResponse[json.RawMessage]
	if err := b.do(req, &result); err != nil {
		return fmt.Errorf("sendMessage: %w", err)
	}
	return nil
}

// commandName returns "start" or "help" when text is that bot command, otherwise "".
// Commands addressed to another bot ("/help@other_bot") are not ours.
func commandName(text, username string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return ""
	}

	name := strings.TrimPrefix(fields[0], "/")
	if at := strings.Index(name, "@"); at >= 0 {
		mention := name[at+1:]
		name = name[:at]
		if username != "" && !strings.EqualFold(mention, username) {
			return ""
		}
	}

	switch strings.ToLower(name) {
	case "start", "help":
		return strings.ToLower(name)
	default:
		return ""
	}
}

func toUpdate(u update) (model.Update, bool) {
	if u.Message == nil || u.Message.Text == "" || u.Message.ViaBot != nil {
		return model.Update{}, false
	}
	return model.Update{
		ChatID:    u.Message.Chat.ID,
		MessageID: u.Message.MessageID,
		Text:      u.Message.Text,
	}, true
}

func (b *Bot) getMe(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.method("getMe"), http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	var result apiResponse[user]
	if err := b.do(req, &result); err != nil {
		return "", err
	}
	if result.Result.Username == "" {
		return "", fmt.Errorf("getMe returned no username")
	}
	return result.Result.Username, nil
}

func (b *Bot) getUpdates(ctx context.Context) ([]update, error) {
	q := url.Values{}
	q.Set("offset", strconv.FormatInt(b.offset, 10))
	q.Set("timeout", strconv.Itoa(int(b.pollTimeout/time.Second)))
	q.Set("allowed_updates", `["message"]`)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.method("getUpdates")+"?"+q.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	var result apiResponse[[]update]
	if err := b.do(req, &result); err != nil {
		return nil, err
	}
	return result.Result, nil
}

func (b *Bot) do(req *http.Request, out interface{ failure() error }) error {
	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10*1024*1024))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("telegram API error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}
		return fmt.Errorf("unmarshal response: %w", err)
	}

	if err := out.failure(); err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error %d", resp.StatusCode)
	}
	return nil
}

func (b *Bot) method(name string) string {
	return fmt.Sprintf("%s/bot%s/%s", b.baseURL, b.token, name)
}

func (b *Bot) logInfo(ctx context.Context, msg string, args ...any) {
	if b.logger != nil {
		b.logger.Info(ctx, msg, args...)
	}
}

func (b *Bot) logWarn(ctx context.Context, msg string, args ...any) {
	if b.logger != nil {
		b.logger.Warn(ctx, msg, args...)
	}
}

func (b *Bot) logError(ctx context.Context, msg string, args ...any) {
	if b.logger != nil {
		b.logger.Error(ctx, msg, args...)
	}
}
