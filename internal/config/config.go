// internal/config/config.go

package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	NATS        NATSConfig
	Scan        ScanConfig
	Sources     SourcesConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
	FeederSecret    string
}

// DatabaseConfig holds scan-history database configuration. The store is
// optional: an empty URL disables persistence entirely.
type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
	MinIdleConns int
	MaxLifetime  time.Duration
}

// NATSConfig holds event-bus configuration. Optional like the database:
// an empty URL disables event publishing.
type NATSConfig struct {
	URL            string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
	EventsTopic    string
}

// ScanConfig holds pipeline tuning knobs
type ScanConfig struct {
	MaxAgeHours   float64
	MaxResults    int
	ScanTimeout   time.Duration
	SourceTimeout time.Duration
	SupplementTTL time.Duration
}

// SourcesConfig holds per-source credentials and switches. Sources with
// missing credentials are simply not registered.
type SourcesConfig struct {
	ConfigPath string

	TwitterBearerToken    string
	TwitterConsumerKey    string
	TwitterConsumerSecret string
	TwitterAccessToken    string
	TwitterAccessSecret   string

	YouTubeAPIKey     string
	ShortVideoBaseURL string
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 45*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("SERVER_CORS_ORIGINS", []string{"*"}),
			FeederSecret:    getEnv("FEEDER_SECRET", ""),
		},
		Database: DatabaseConfig{
			URL:          getEnv("DATABASE_URL", ""),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MinIdleConns: getEnvAsInt("DB_MIN_IDLE_CONNS", 2),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 5*time.Minute),
		},
		NATS: NATSConfig{
			URL:            getEnv("NATS_URL", ""),
			MaxReconnects:  getEnvAsInt("NATS_MAX_RECONNECTS", 10),
			ReconnectWait:  getEnvAsDuration("NATS_RECONNECT_WAIT", 1*time.Second),
			ConnectTimeout: getEnvAsDuration("NATS_CONNECT_TIMEOUT", 2*time.Second),
			EventsTopic:    getEnv("NATS_EVENTS_TOPIC", "scan"),
		},
		Scan: ScanConfig{
			MaxAgeHours:   getEnvAsFloat("SCAN_MAX_AGE_HOURS", 48),
			MaxResults:    getEnvAsInt("SCAN_MAX_RESULTS", 25),
			ScanTimeout:   getEnvAsDuration("SCAN_TIMEOUT", 30*time.Second),
			SourceTimeout: getEnvAsDuration("SCAN_SOURCE_TIMEOUT", 15*time.Second),
			SupplementTTL: getEnvAsDuration("SUPPLEMENT_TTL", 6*time.Hour),
		},
		Sources: SourcesConfig{
			ConfigPath:            getEnv("SOURCES_CONFIG_PATH", ""),
			TwitterBearerToken:    getEnv("TWITTER_BEARER_TOKEN", ""),
			TwitterConsumerKey:    getEnv("TWITTER_CONSUMER_KEY", ""),
			TwitterConsumerSecret: getEnv("TWITTER_CONSUMER_SECRET", ""),
			TwitterAccessToken:    getEnv("TWITTER_ACCESS_TOKEN", ""),
			TwitterAccessSecret:   getEnv("TWITTER_ACCESS_SECRET", ""),
			YouTubeAPIKey:         getEnv("YOUTUBE_API_KEY", ""),
			ShortVideoBaseURL:     getEnv("SHORT_VIDEO_BASE_URL", ""),
		},
	}

	return config, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
