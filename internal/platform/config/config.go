package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
	StorageMemory   = "memory"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	StorageDriver string
	DatabaseURL   string
	SQLitePath    string
	EnableDBCheck bool

	JWTSecret string
	JWTIssuer string

	// Membership oracle
	MembershipRosterFile string
	MembershipCacheTTL   time.Duration
	MembershipCacheSize  int

	RateLimit          string
	CORSAllowedOrigins []string

	// BalancesExcludeCancelled drops CANCELLED entries from member balances.
	BalancesExcludeCancelled bool

	PosthogAPIKey   string
	PosthogEndpoint string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("STORAGE_DRIVER", StoragePostgres)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("SQLITE_PATH", "data/ledger.db")
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ISSUER", "household-ledger")
	v.SetDefault("MEMBERSHIP_ROSTER_FILE", "")
	v.SetDefault("MEMBERSHIP_CACHE_TTL", "30s")
	v.SetDefault("MEMBERSHIP_CACHE_SIZE", 1024)
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("LEDGER_BALANCES_EXCLUDE_CANCELLED", false)
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:                     v.GetString("PORT"),
		IsProduction:             v.GetBool("IS_PRODUCTION"),
		StorageDriver:            strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		DatabaseURL:              v.GetString("PGSQL_URL"),
		SQLitePath:               v.GetString("SQLITE_PATH"),
		EnableDBCheck:            v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:                v.GetString("JWT_SECRET"),
		JWTIssuer:                v.GetString("JWT_ISSUER"),
		MembershipRosterFile:     v.GetString("MEMBERSHIP_ROSTER_FILE"),
		MembershipCacheSize:      v.GetInt("MEMBERSHIP_CACHE_SIZE"),
		RateLimit:                v.GetString("RATE_LIMIT"),
		CORSAllowedOrigins:       splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		BalancesExcludeCancelled: v.GetBool("LEDGER_BALANCES_EXCLUDE_CANCELLED"),
		PosthogAPIKey:            v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:          v.GetString("POSTHOG_ENDPOINT"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	ttlStr := v.GetString("MEMBERSHIP_CACHE_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid MEMBERSHIP_CACHE_TTL %q: %w", ttlStr, err)
	}
	cfg.MembershipCacheTTL = ttl

	if cfg.MembershipCacheSize <= 0 {
		return nil, fmt.Errorf("MEMBERSHIP_CACHE_SIZE must be positive, got %d", cfg.MembershipCacheSize)
	}

	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORAGE_DRIVER is %s", StoragePostgres)
		}
	case StorageSQLite, StorageMemory:
		if cfg.MembershipRosterFile == "" {
			return nil, fmt.Errorf("MEMBERSHIP_ROSTER_FILE is required when STORAGE_DRIVER is %s", cfg.StorageDriver)
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	return cfg, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
