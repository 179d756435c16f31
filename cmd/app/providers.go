package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/Hitarth-ai/ZodiAI/internal/domain/chat"
	"github.com/Hitarth-ai/ZodiAI/internal/domain/horoscope"
	"github.com/Hitarth-ai/ZodiAI/internal/infra/astrology"
	"github.com/Hitarth-ai/ZodiAI/internal/infra/chathistory"
	"github.com/Hitarth-ai/ZodiAI/internal/infra/config"
	"github.com/Hitarth-ai/ZodiAI/internal/infra/geo/geodetail"
	"github.com/Hitarth-ai/ZodiAI/internal/infra/geo/nominatim"
	"github.com/Hitarth-ai/ZodiAI/internal/infra/llm/chatgpt"
	"github.com/Hitarth-ai/ZodiAI/internal/infra/llm/tokenizer"
	"github.com/Hitarth-ai/ZodiAI/internal/infra/querylog"
	"github.com/Hitarth-ai/ZodiAI/internal/infra/timezone"
	httpiface "github.com/Hitarth-ai/ZodiAI/internal/interface/http"
)

func provideChatGPTClient(cfg *config.Config) (*chatgpt.Client, error) {
	return chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
}

func provideAstrologyClient(cfg *config.Config) (*astrology.Client, error) {
	return astrology.NewClient(
		cfg.Astrology.BaseURL,
		cfg.Astrology.UserID,
		cfg.Astrology.APIKey,
		astrology.WithTimeout(cfg.Astrology.Timeout),
		astrology.WithEndpoints(cfg.Astrology.ChartDetailsEndpoint, cfg.Astrology.DailyPredictionEndpoint),
	)
}

func providePrimaryGeocoder(cfg *config.Config) horoscope.PrimaryGeocoder {
	return nominatim.NewClient(cfg.Geo.PrimaryBaseURL, cfg.Geo.UserAgent, cfg.Geo.Timeout)
}

func provideSecondaryGeocoder(cfg *config.Config, astro *astrology.Client) horoscope.SecondaryGeocoder {
	if !cfg.Geo.SecondaryEnabled {
		return nil
	}
	return geodetail.NewClient(astro)
}

func provideOffsetProvider(astro *astrology.Client) horoscope.OffsetProvider {
	return timezone.NewClient(astro)
}

func provideTimezoneResolver(cfg *config.Config, provider horoscope.OffsetProvider, logger *slog.Logger) *horoscope.TimezoneResolver {
	return horoscope.NewTimezoneResolver(provider, horoscope.TimezoneStrategy(cfg.Timezone.Strategy), cfg.Timezone.DefaultOffset, logger)
}

func provideChatConfig(cfg *config.Config) chat.Config {
	return chat.Config{
		Model:           cfg.LLM.Model,
		Temperature:     cfg.LLM.Temperature,
		Persona:         cfg.Chat.Persona,
		MaxHistoryTurns: cfg.Chat.MaxHistoryTurns,
		ModerationOn:    cfg.Chat.ModerationEnabled,
		HistoryTTL:      cfg.History.TTL,
	}
}

func provideSessionConfig(cfg *config.Config) chat.SessionConfig {
	return chat.SessionConfig{
		Secret: cfg.Session.Secret,
		TTL:    cfg.Session.TTL,
	}
}

func provideTokenCounter(cfg *config.Config) chat.TokenCounter {
	return tokenizer.NewCounter(cfg.LLM.Model)
}

func provideHistoryStore(cfg *config.Config, logger *slog.Logger) chat.HistoryStore {
	if cfg.History.ValkeyEnabled {
		opt, err := buildValkeyOptions(cfg.History.ValkeyAddr)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory history", "error", err)
			return chathistory.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory history", "error", err)
			return chathistory.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory history", "error", err)
		} else {
			logger.Info("valkey chat history enabled", "addr", cfg.History.ValkeyAddr)
			return chathistory.NewValkeyStore(client, "zodiai")
		}
	}
	return chathistory.NewMemoryStore()
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func provideInvocationLog(cfg *config.Config, logger *slog.Logger) querylog.Log {
	fallback := querylog.NewMemoryRecorder()
	dsn := strings.TrimSpace(cfg.QueryLog.PostgresDSN)
	if dsn == "" {
		logger.Info("querylog postgres dsn not set, using memory recorder")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory recorder", "error", err)
		return fallback
	}
	if cfg.QueryLog.MaxConns > 0 {
		poolConfig.MaxConns = cfg.QueryLog.MaxConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory recorder", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory recorder", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("querylog postgres recorder enabled")
	return querylog.NewPostgresRecorder(pool)
}

func provideInvocationRecorder(log querylog.Log) chat.InvocationRecorder {
	return log
}

func provideInvocationReader(log querylog.Log) httpiface.InvocationReader {
	return log
}
