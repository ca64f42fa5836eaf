package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port          string
	MaxUploadSize int
}

type DatabaseConfig struct {
	DSN string
}

type AuthConfig struct {
	JWTSecret string
	JWTTTL    time.Duration
}

type MediaConfig struct {
	BaseURL string
	APIKey  string
}

type LoggingConfig struct {
	Level string
}

type AppConfig struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Media    MediaConfig
	Logging  LoggingConfig
}

func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "3000")
	viper.SetDefault("DATABASE_DSN", "data/tradeflow.db")
	viper.SetDefault("JWT_TTL", "24h")
	viper.SetDefault("MAX_UPLOAD_SIZE", 16*1024*1024)
	viper.SetDefault("LOG_LEVEL", "info")

	ttl, err := time.ParseDuration(viper.GetString("JWT_TTL"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}

	cfg := &AppConfig{
		Server: ServerConfig{
			Port:          viper.GetString("SERVER_PORT"),
			MaxUploadSize: viper.GetInt("MAX_UPLOAD_SIZE"),
		},
		Database: DatabaseConfig{
			DSN: viper.GetString("DATABASE_DSN"),
		},
		Auth: AuthConfig{
			JWTSecret: viper.GetString("JWT_SECRET"),
			JWTTTL:    ttl,
		},
		Media: MediaConfig{
			BaseURL: viper.GetString("MEDIA_BASE_URL"),
			APIKey:  viper.GetString("MEDIA_API_KEY"),
		},
		Logging: LoggingConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("DATABASE_DSN is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Media.BaseURL == "" {
		return nil, fmt.Errorf("MEDIA_BASE_URL is required")
	}
	if cfg.Server.MaxUploadSize <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_SIZE must be positive")
	}

	return cfg, nil
}
