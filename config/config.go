package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	// Amadeus provider credentials. The sandbox base URL is the default;
	// production deployments override AMADEUS_API_BASE.
	AmadeusAPIKey    string `mapstructure:"AMADEUS_API_KEY"`
	AmadeusAPISecret string `mapstructure:"AMADEUS_API_SECRET"`
	AmadeusAPIBase   string `mapstructure:"AMADEUS_API_BASE"`

	// Gemini API key for intent detection and reply composition.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`

	// Query cache tuning.
	CacheTTLSeconds int `mapstructure:"CACHE_TTL_SECONDS"`
	CacheMaxEntries int `mapstructure:"CACHE_MAX_ENTRIES"`

	// Provider call timeout in seconds.
	ProviderTimeoutSeconds int `mapstructure:"PROVIDER_TIMEOUT_SECONDS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("AMADEUS_API_BASE", "https://test.api.amadeus.com")
	viper.SetDefault("CACHE_TTL_SECONDS", 300)
	viper.SetDefault("CACHE_MAX_ENTRIES", 1000)
	viper.SetDefault("PROVIDER_TIMEOUT_SECONDS", 30)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// GetEnv returns the application environment.
func GetEnv() string {
	return AppConfig.Env
}

// IsProduction checks if the environment is production.
func IsProduction() bool {
	return GetEnv() == "production"
}
