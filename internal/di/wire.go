//go:build wireinject

package di

import (
	"github.com/google/wire"

	"newsbot/internal/adapter/logging"
	"newsbot/internal/adapter/markup"
	"newsbot/internal/adapter/metrics"
	"newsbot/internal/app"
	"newsbot/internal/config"
	"newsbot/internal/domain/ports"
	"newsbot/internal/usecase"
)

// InitializeApp wires the chat bot together.
func InitializeApp() (*app.App, error) {
	wire.Build(
		config.Load,
		provideSlogLogger,
		logging.New,
		wire.Bind(new(ports.Logger), new(*logging.SLogger)),
		metrics.NewCollector,
		wire.Bind(new(ports.QueryRecorder), new(*metrics.Collector)),
		wire.Bind(new(app.QueryStats), new(*metrics.Collector)),
		provideSearcher,
		providePhrasebook,
		markup.NewHTMLEscaper,
		wire.Bind(new(ports.Escaper), new(*markup.HTMLEscaper)),
		provideQueryConfig,
		usecase.NewNewsQuery,
		wire.Bind(new(ports.ConversationHandler), new(*usecase.NewsQuery)),
		markup.NewReplyPolicy,
		provideTransport,
		provideAppOptions,
		app.New,
	)
	return nil, nil
}

// InitializeSearchTool wires the provider client used by the command line tool.
func InitializeSearchTool() (*SearchTool, error) {
	wire.Build(
		config.LoadSearch,
		provideCLISlogLogger,
		logging.New,
		wire.Bind(new(ports.Logger), new(*logging.SLogger)),
		provideSearcher,
		provideSearchTool,
	)
	return nil, nil
}
