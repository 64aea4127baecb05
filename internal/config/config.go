package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv              string
	Port                string
	DataDir             string
	DiscordClientID     string
	DiscordClientSecret string
	DiscordRedirectURI  string
	SessionSecret       string
	TokenEncryptionKey  string
	TwitchClientID      string
	TwitchClientSecret  string
	StreamPollInterval  time.Duration
	LogLevel            string
	LogFormat           string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:              getEnv("APP_ENV", "development"),
		Port:                getEnv("PORT", "8080"),
		DataDir:             getEnv("DATA_DIR", "data"),
		DiscordClientID:     getEnv("DISCORD_CLIENT_ID", ""),
		DiscordClientSecret: getEnv("DISCORD_CLIENT_SECRET", ""),
		DiscordRedirectURI:  getEnv("DISCORD_REDIRECT_URI", ""),
		SessionSecret:       getEnv("SESSION_SECRET", ""),
		TokenEncryptionKey:  getEnv("TOKEN_ENCRYPTION_KEY", ""),
		TwitchClientID:      getEnv("TWITCH_CLIENT_ID", ""),
		TwitchClientSecret:  getEnv("TWITCH_CLIENT_SECRET", ""),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "text"),
	}

	if cfg.DiscordClientID == "" {
		return nil, fmt.Errorf("DISCORD_CLIENT_ID is required")
	}
	if cfg.DiscordClientSecret == "" {
		return nil, fmt.Errorf("DISCORD_CLIENT_SECRET is required")
	}
	if cfg.DiscordRedirectURI == "" {
		return nil, fmt.Errorf("DISCORD_REDIRECT_URI is required")
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}

	// Twitch config is optional, but both halves must be set together
	if (cfg.TwitchClientID == "") != (cfg.TwitchClientSecret == "") {
		return nil, fmt.Errorf("TWITCH_CLIENT_ID and TWITCH_CLIENT_SECRET must be set together")
	}

	interval, err := time.ParseDuration(getEnv("STREAM_POLL_INTERVAL", "2m"))
	if err != nil {
		return nil, fmt.Errorf("STREAM_POLL_INTERVAL must be a valid duration: %w", err)
	}
	if interval < 30*time.Second {
		return nil, fmt.Errorf("STREAM_POLL_INTERVAL must be at least 30s, got %s", interval)
	}
	cfg.StreamPollInterval = interval

	if cfg.TokenEncryptionKey != "" {
		keyBytes, err := hex.DecodeString(cfg.TokenEncryptionKey)
		if err != nil {
			return nil, fmt.Errorf("TOKEN_ENCRYPTION_KEY must be valid hex: %w", err)
		}
		if len(keyBytes) != 32 {
			return nil, fmt.Errorf("TOKEN_ENCRYPTION_KEY must be exactly 64 hex characters (32 bytes), got %d bytes", len(keyBytes))
		}
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
