package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds the application's configuration
type Config struct {
	AgentAPIBaseURL     string        `mapstructure:"AGENT_API_BASE_URL"`
	OfflineFallback     bool          `mapstructure:"OFFLINE_FALLBACK"`
	WebPort             int           `mapstructure:"WEB_PORT"`
	LogLevel            string        `mapstructure:"LOG_LEVEL"`
	LogFile             string        `mapstructure:"LOG_FILE"`
	AgentRequestTimeout time.Duration `mapstructure:"AGENT_REQUEST_TIMEOUT"`

	RecentCacheSize int `mapstructure:"RECENT_CACHE_SIZE"`

	CleanupEnabled      bool          `mapstructure:"CLEANUP_ENABLED"`
	CleanupInterval     time.Duration `mapstructure:"CLEANUP_INTERVAL"`
	SessionRetentionAge time.Duration `mapstructure:"SESSION_RETENTION_AGE"`

	RateLimitMessagesPerMin int `mapstructure:"RATE_LIMIT_MESSAGES_PER_MIN"`
	RateLimitUploadsPerHour int `mapstructure:"RATE_LIMIT_UPLOADS_PER_HOUR"`

	MaxUploadFiles  int   `mapstructure:"MAX_UPLOAD_FILES"`
	MaxUploadSizeMB int64 `mapstructure:"MAX_UPLOAD_SIZE_MB"`
	PDFPreviewRunes int   `mapstructure:"PDF_PREVIEW_RUNES"`

	AuthUserPoolID       string `mapstructure:"AUTH_USER_POOL_ID"`
	AuthUserPoolClientID string `mapstructure:"AUTH_USER_POOL_CLIENT_ID"`
	AuthDomain           string `mapstructure:"AUTH_DOMAIN"`
	AuthRegion           string `mapstructure:"AUTH_REGION"`
	JWTSecret            string `mapstructure:"JWT_SECRET"`
}

func Load(logger *zap.Logger) *Config {
	var config Config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")        // For running locally
	viper.AddConfigPath("../")      // For running from docker subdir
	viper.AddConfigPath("./config") // Common config folder
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("AGENT_API_BASE_URL", "http://localhost:3001/api")
	viper.SetDefault("OFFLINE_FALLBACK", false)
	viper.SetDefault("WEB_PORT", 8080)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FILE", "")
	viper.SetDefault("AGENT_REQUEST_TIMEOUT", 30)
	viper.SetDefault("RECENT_CACHE_SIZE", 256)
	viper.SetDefault("CLEANUP_ENABLED", true)
	viper.SetDefault("CLEANUP_INTERVAL", 24)
	viper.SetDefault("SESSION_RETENTION_AGE", 168)
	viper.SetDefault("RATE_LIMIT_MESSAGES_PER_MIN", 20)
	viper.SetDefault("RATE_LIMIT_UPLOADS_PER_HOUR", 10)
	viper.SetDefault("MAX_UPLOAD_FILES", 5)
	viper.SetDefault("MAX_UPLOAD_SIZE_MB", 10)
	viper.SetDefault("PDF_PREVIEW_RUNES", 280)
	viper.SetDefault("AUTH_REGION", "us-east-1")

	if err := viper.ReadInConfig(); err != nil {
		if logger != nil {
			logger.Warn("Could not read config file, using defaults/env vars", zap.Error(err))
		}
	}

	if err := viper.Unmarshal(&config); err != nil {
		// Config unmarshaling is critical - fail fast during bootstrap
		if logger != nil {
			logger.Fatal("Unable to decode config into struct", zap.Error(err))
		} else {
			fmt.Fprintf(os.Stderr, "FATAL: Unable to decode config into struct: %v\n", err)
			os.Exit(1)
		}
	}

	config.AgentAPIBaseURL = strings.TrimRight(strings.TrimSpace(config.AgentAPIBaseURL), "/")

	// Convert seconds to proper time.Duration
	config.AgentRequestTimeout = config.AgentRequestTimeout * time.Second

	// Convert hours to proper time.Duration
	config.CleanupInterval = config.CleanupInterval * time.Hour
	config.SessionRetentionAge = config.SessionRetentionAge * time.Hour

	return &config
}

// AuthConfigComplete reports whether every identity-provider value the
// browser needs is present. The auth config endpoint never serves a
// partial configuration.
func (c *Config) AuthConfigComplete() bool {
	return c.AuthUserPoolID != "" && c.AuthUserPoolClientID != "" && c.AuthDomain != "" && c.AuthRegion != ""
}
