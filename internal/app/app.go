package app

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/robfig/cron/v3"

	"newsbot/internal/domain/ports"
)

// QueryStats exposes running query totals for the heartbeat log.
type QueryStats interface {
	Totals() map[string]float64
}

// App manages the lifecycle of the chat transport, the heartbeat scheduler and the metrics server.
type App struct {
	cron      *cron.Cron
	transport ports.ChatTransport
	handler   ports.ConversationHandler
	stats     QueryStats
	metrics   *http.Server
	logger    ports.Logger
	schedule  string
	started   time.Time
}

// Options holds the optional parts of the lifecycle.
type Options struct {
	HeartbeatSchedule string
	// MetricsServer is started alongside the bot when non-nil.
	MetricsServer *http.Server
}

// New constructs an App instance.
func New(transport ports.ChatTransport, handler ports.ConversationHandler, stats QueryStats, logger ports.Logger, opts Options) *App {
	return &App{
		cron:      cron.New(),
		transport: transport,
		handler:   handler,
		stats:     stats,
		metrics:   opts.MetricsServer,
		logger:    logger,
		schedule:  opts.HeartbeatSchedule,
	}
}

// Run serves chat updates until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.started = time.Now()

	if a.schedule != "" {
		if err := a.scheduleHeartbeat(); err != nil {
			return err
		}
		a.logger.Info(ctx, "starting scheduler", "cron", a.schedule)
		a.cron.Start()
	}

	metricsErr := a.serveMetrics(ctx)

	err := a.transport.Listen(ctx, a.handler)

	stopCtx := a.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
	}
	a.logger.Info(context.Background(), "scheduler stopped")

	if a.metrics != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := a.metrics.Shutdown(shutdownCtx); shutdownErr != nil {
			a.logger.Error(context.Background(), "metrics server shutdown failed", "error", shutdownErr)
		}
		if serveErr := <-metricsErr; serveErr != nil {
			a.logger.Error(context.Background(), "metrics server failed", "error", serveErr)
		}
	}

	return err
}

func (a *App) serveMetrics(ctx context.Context) <-chan error {
	errCh := make(chan error, 1)
	if a.metrics == nil {
		close(errCh)
		return errCh
	}

	a.logger.Info(ctx, "serving metrics", "addr", a.metrics.Addr)
	go func() {
		defer close(errCh)
		if err := a.metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	return errCh
}

func (a *App) scheduleHeartbeat() error {
	_, err := a.cron.AddFunc(a.schedule, func() {
		a.heartbeat(context.Background())
	})
	if err != nil {
		return err
	}
	return nil
}

func (a *App) heartbeat(ctx context.Context) {
	args := []any{"uptime", time.Since(a.started).Round(time.Second).String()}
	if a.stats != nil {
		totals := a.stats.Totals()
		outcomes := make([]string, 0, len(totals))
		for outcome := range totals {
			outcomes = append(outcomes, outcome)
		}
		sort.Strings(outcomes)
		for _, outcome := range outcomes {
			args = append(args, "queries_"+outcome, totals[outcome])
		}
	}
	a.logger.Info(ctx, "heartbeat", args...)
}
