package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	LLM       LLMConfig       `yaml:"llm"`
	Chat      ChatConfig      `yaml:"chat"`
	Astrology AstrologyConfig `yaml:"astrology"`
	Geo       GeoConfig       `yaml:"geo"`
	Timezone  TimezoneConfig  `yaml:"timezone"`
	Session   SessionConfig   `yaml:"session"`
	History   HistoryConfig   `yaml:"history"`
	QueryLog  QueryLogConfig  `yaml:"queryLog"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// LLMConfig contains ChatGPT/OpenAI settings.
type LLMConfig struct {
	APIKey      string  `yaml:"apiKey"`
	BaseURL     string  `yaml:"baseUrl"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
}

// ChatConfig controls the conversation loop.
type ChatConfig struct {
	Persona           string `yaml:"persona"`
	MaxHistoryTurns   int    `yaml:"maxHistoryTurns"`
	ModerationEnabled bool   `yaml:"moderationEnabled"`
}

// AstrologyConfig holds compute provider connection settings. UserID and
// APIKey come from the environment only; a missing credential fails Load.
type AstrologyConfig struct {
	BaseURL                 string        `yaml:"baseUrl"`
	UserID                  string        `yaml:"-"`
	APIKey                  string        `yaml:"-"`
	Timeout                 time.Duration `yaml:"timeout"`
	ChartDetailsEndpoint    string        `yaml:"chartDetailsEndpoint"`
	DailyPredictionEndpoint string        `yaml:"dailyPredictionEndpoint"`
}

// GeoConfig controls the place resolution chain.
type GeoConfig struct {
	PrimaryBaseURL   string        `yaml:"primaryBaseUrl"`
	UserAgent        string        `yaml:"userAgent"`
	Timeout          time.Duration `yaml:"timeout"`
	SecondaryEnabled bool          `yaml:"secondaryEnabled"`
}

// TimezoneConfig selects the offset resolution strategy.
type TimezoneConfig struct {
	// Strategy is either "zone" (lookup by timezone identifier) or
	// "coordinates" (DST aware lookup by latitude/longitude/date).
	Strategy      string  `yaml:"strategy"`
	DefaultOffset float64 `yaml:"defaultOffset"`
}

// SessionConfig drives guest session token issuance.
type SessionConfig struct {
	Secret string        `yaml:"secret"`
	TTL    time.Duration `yaml:"ttl"`
}

// HistoryConfig configures conversation transcript storage.
type HistoryConfig struct {
	ValkeyEnabled bool          `yaml:"valkeyEnabled"`
	ValkeyAddr    string        `yaml:"valkeyAddr"`
	TTL           time.Duration `yaml:"ttl"`
}

// QueryLogConfig configures the tool invocation audit log.
type QueryLogConfig struct {
	PostgresDSN string `yaml:"postgresDsn"`
	MaxConns    int32  `yaml:"maxConns"`
}

// Load reads configuration from an optional .env file, a YAML file and
// environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitAndTrim(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = isTruthy(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("CHAT_PERSONA"); v != "" {
		cfg.Chat.Persona = v
	}
	if v := os.Getenv("CHAT_MAX_HISTORY_TURNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Chat.MaxHistoryTurns = parsed
		}
	}
	if v := os.Getenv("CHAT_MODERATION_ENABLED"); v != "" {
		cfg.Chat.ModerationEnabled = isTruthy(v)
	}
	if v := os.Getenv("ASTROLOGY_BASE_URL"); v != "" {
		cfg.Astrology.BaseURL = v
	}
	if v := os.Getenv("ASTROLOGY_USER_ID"); v != "" {
		cfg.Astrology.UserID = v
	}
	if v := os.Getenv("ASTROLOGY_API_KEY"); v != "" {
		cfg.Astrology.APIKey = v
	}
	if v := os.Getenv("ASTROLOGY_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Astrology.Timeout = parsed
		}
	}
	if v := os.Getenv("GEO_PRIMARY_BASE_URL"); v != "" {
		cfg.Geo.PrimaryBaseURL = v
	}
	if v := os.Getenv("GEO_USER_AGENT"); v != "" {
		cfg.Geo.UserAgent = v
	}
	if v := os.Getenv("GEO_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Geo.Timeout = parsed
		}
	}
	if v := os.Getenv("GEO_SECONDARY_ENABLED"); v != "" {
		cfg.Geo.SecondaryEnabled = isTruthy(v)
	}
	if v := os.Getenv("TIMEZONE_STRATEGY"); v != "" {
		cfg.Timezone.Strategy = v
	}
	if v := os.Getenv("TIMEZONE_DEFAULT_OFFSET"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Timezone.DefaultOffset = parsed
		}
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		cfg.Session.Secret = v
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Session.TTL = parsed
		}
	}
	if v := os.Getenv("HISTORY_VALKEY_ENABLED"); v != "" {
		cfg.History.ValkeyEnabled = isTruthy(v)
	}
	if v := os.Getenv("HISTORY_VALKEY_ADDR"); v != "" {
		cfg.History.ValkeyAddr = v
	}
	if v := os.Getenv("HISTORY_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.History.TTL = parsed
		}
	}
	if v := os.Getenv("QUERYLOG_POSTGRES_DSN"); v != "" {
		cfg.QueryLog.PostgresDSN = v
	}
	if v := os.Getenv("QUERYLOG_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.QueryLog.MaxConns = int32(parsed)
		}
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		LLM: LLMConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0.7,
		},
		Chat: ChatConfig{
			Persona:           "You are ZodiAI, a warm and insightful vedic astrology guide. Answer astrology questions conversationally. When the user supplies birth details, call the matching astrology tool and ground your reading in its data. If tool data is unavailable, keep the conversation going using general astrological knowledge and say the computed chart could not be fetched.",
			MaxHistoryTurns:   20,
			ModerationEnabled: true,
		},
		Astrology: AstrologyConfig{
			BaseURL:                 "https://json.astrologyapi.com/v1",
			Timeout:                 15 * time.Second,
			ChartDetailsEndpoint:    "horo_chart_details",
			DailyPredictionEndpoint: "sun_sign_prediction/daily",
		},
		Geo: GeoConfig{
			PrimaryBaseURL:   "https://nominatim.openstreetmap.org",
			UserAgent:        "zodiai/1.0 (astrology chart lookup)",
			Timeout:          8 * time.Second,
			SecondaryEnabled: true,
		},
		Timezone: TimezoneConfig{
			Strategy:      "coordinates",
			DefaultOffset: 5.5,
		},
		Session: SessionConfig{
			TTL: 24 * time.Hour,
		},
		History: HistoryConfig{
			TTL: 12 * time.Hour,
		},
		QueryLog: QueryLogConfig{
			MaxConns: 4,
		},
	}
}

// Validate ensures the configuration is safe to use. Missing astrology
// credentials are a deployment fault and abort startup.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if strings.TrimSpace(c.Astrology.BaseURL) == "" {
		return errors.New("astrology.baseUrl cannot be empty")
	}
	if strings.TrimSpace(c.Astrology.UserID) == "" {
		return errors.New("ASTROLOGY_USER_ID is not set")
	}
	if strings.TrimSpace(c.Astrology.APIKey) == "" {
		return errors.New("ASTROLOGY_API_KEY is not set")
	}
	if strings.TrimSpace(c.Astrology.ChartDetailsEndpoint) == "" {
		return errors.New("astrology.chartDetailsEndpoint cannot be empty")
	}
	if strings.TrimSpace(c.Astrology.DailyPredictionEndpoint) == "" {
		return errors.New("astrology.dailyPredictionEndpoint cannot be empty")
	}
	if strings.TrimSpace(c.Geo.PrimaryBaseURL) == "" {
		return errors.New("geo.primaryBaseUrl cannot be empty")
	}
	if strings.TrimSpace(c.Geo.UserAgent) == "" {
		return errors.New("geo.userAgent cannot be empty")
	}
	switch c.Timezone.Strategy {
	case "zone", "coordinates":
	default:
		return fmt.Errorf("timezone.strategy must be zone or coordinates, got %q", c.Timezone.Strategy)
	}
	if c.Timezone.DefaultOffset < -12 || c.Timezone.DefaultOffset > 14 {
		return errors.New("timezone.defaultOffset must be within [-12, 14]")
	}
	if strings.TrimSpace(c.Chat.Persona) == "" {
		return errors.New("chat.persona cannot be empty")
	}
	if c.Chat.MaxHistoryTurns <= 0 {
		return errors.New("chat.maxHistoryTurns must be positive")
	}
	if c.Session.TTL <= 0 {
		return errors.New("session.ttl must be positive")
	}
	if c.History.ValkeyEnabled && strings.TrimSpace(c.History.ValkeyAddr) == "" {
		return errors.New("history.valkeyAddr cannot be empty when valkey is enabled")
	}
	if c.History.TTL < 0 {
		return errors.New("history.ttl cannot be negative")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	return nil
}

func isTruthy(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitAndTrim(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
