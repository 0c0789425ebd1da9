package di

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"newsbot/internal/adapter/locale"
	"newsbot/internal/adapter/logging"
	"newsbot/internal/adapter/markup"
	"newsbot/internal/adapter/metrics"
	"newsbot/internal/adapter/newsapi"
	"newsbot/internal/adapter/telegram"
	"newsbot/internal/app"
	"newsbot/internal/config"
	"newsbot/internal/domain/ports"
	"newsbot/internal/usecase"
)

// SearchTool bundles what the command line tool needs to query the provider.
type SearchTool struct {
	Searcher ports.ArticleSearcher
	Language string
	Limit    int
	Timeout  time.Duration
}

func provideSlogLogger(cfg *config.Config) *slog.Logger {
	return logging.NewJSON(os.Stdout, cfg.LogLevel)
}

// The CLI prints results on stdout, so only warnings and errors are logged, to stderr.
func provideCLISlogLogger() *slog.Logger {
	return logging.NewJSON(os.Stderr, "warn")
}

func provideSearcher(cfg *config.Config, logger ports.Logger) ports.ArticleSearcher {
	return newsapi.New(cfg.NewsAPIKey, cfg.NewsAPIURL, cfg.RequestTimeout, logger)
}

func providePhrasebook(cfg *config.Config) (ports.Phrasebook, error) {
	return locale.New(cfg.ReplyLocale)
}

func provideQueryConfig(cfg *config.Config) usecase.NewsQueryConfig {
	return usecase.NewsQueryConfig{
		Language: cfg.NewsLanguage,
		Limit:    cfg.NewsLimit,
	}
}

func provideTransport(cfg *config.Config, logger ports.Logger, recorder ports.QueryRecorder, policy *markup.ReplyPolicy) ports.ChatTransport {
	return telegram.New(cfg.BotToken, cfg.TelegramAPIURL, logger, recorder, telegram.WithReplyFilter(policy.Sanitize))
}

func provideAppOptions(cfg *config.Config, collector *metrics.Collector) app.Options {
	opts := app.Options{HeartbeatSchedule: cfg.HeartbeatCron}
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		opts.MetricsServer = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
	}
	return opts
}

func provideSearchTool(cfg *config.Config, searcher ports.ArticleSearcher) *SearchTool {
	return &SearchTool{
		Searcher: searcher,
		Language: cfg.NewsLanguage,
		Limit:    cfg.NewsLimit,
		Timeout:  cfg.RequestTimeout,
	}
}
