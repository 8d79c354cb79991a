package config

import (
	"encoding/json"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// OrderNumberPrefix is the document prefix of purchase order numbers
	// (PREFIX-YYYYMMDD-NNNN).
	OrderNumberPrefix string

	// PosRouting maps point-of-sale handles to warehouse codes. Loaded from
	// the POS_ROUTING env var as a JSON object; empty keeps the built-in map.
	PosRouting map[string]string

	// RateLimit is the API rate limit in ulule/limiter notation, e.g. "300-M".
	RateLimit string

	// CORSAllowedOrigins is the allowed origin list; "*" allows all.
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("ORDER_NUMBER_PREFIX", "CMD")
	viper.SetDefault("POS_ROUTING", "")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.OrderNumberPrefix = viper.GetString("ORDER_NUMBER_PREFIX")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = viper.GetStringSlice("CORS_ALLOWED_ORIGINS")

	if routingJSON := viper.GetString("POS_ROUTING"); routingJSON != "" {
		routing := map[string]string{}
		if err := json.Unmarshal([]byte(routingJSON), &routing); err != nil {
			log.Printf("Warning: Invalid JSON in POS_ROUTING (%v). Using built-in routing.\n", err)
		} else {
			cfg.PosRouting = routing
		}
	}

	return cfg, nil
}
