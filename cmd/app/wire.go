//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/Hitarth-ai/ZodiAI/internal/bootstrap"
	"github.com/Hitarth-ai/ZodiAI/internal/domain/chat"
	"github.com/Hitarth-ai/ZodiAI/internal/domain/horoscope"
	"github.com/Hitarth-ai/ZodiAI/internal/infra/astrology"
	"github.com/Hitarth-ai/ZodiAI/internal/infra/config"
	"github.com/Hitarth-ai/ZodiAI/internal/infra/llm/chatgpt"
	httpiface "github.com/Hitarth-ai/ZodiAI/internal/interface/http"
	"github.com/Hitarth-ai/ZodiAI/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideChatGPTClient,
		provideAstrologyClient,
		providePrimaryGeocoder,
		provideSecondaryGeocoder,
		provideOffsetProvider,
		provideTimezoneResolver,
		provideChatConfig,
		provideSessionConfig,
		provideTokenCounter,
		provideHistoryStore,
		provideInvocationLog,
		provideInvocationRecorder,
		provideInvocationReader,
		horoscope.NewGeoResolver,
		horoscope.NewOrchestrator,
		horoscope.NewToolAdapter,
		chat.NewService,
		chat.NewSessionService,
		wire.Bind(new(horoscope.ChartComputer), new(*astrology.Client)),
		wire.Bind(new(chat.ChatClient), new(*chatgpt.Client)),
		wire.Bind(new(chat.ModerationGate), new(*chatgpt.Client)),
		wire.Bind(new(chat.ToolInvoker), new(*horoscope.ToolAdapter)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
