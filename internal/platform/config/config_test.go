package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(overrides map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newTestViper(map[string]any{"PGSQL_URL": "postgres://localhost/ledger"}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, 30*time.Second, cfg.MembershipCacheTTL)
	assert.Equal(t, 1024, cfg.MembershipCacheSize)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.BalancesExcludeCancelled)
}

func TestFromViper_Overrides(t *testing.T) {
	cfg, err := fromViper(newTestViper(map[string]any{
		"STORAGE_DRIVER":                    " SQLite ",
		"MEMBERSHIP_ROSTER_FILE":            "roster.yaml",
		"CORS_ALLOWED_ORIGINS":              "https://a.example, https://b.example,",
		"LEDGER_BALANCES_EXCLUDE_CANCELLED": "true",
		"MEMBERSHIP_CACHE_TTL":              "2m",
	}))
	require.NoError(t, err)

	assert.Equal(t, StorageSQLite, cfg.StorageDriver)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.BalancesExcludeCancelled)
	assert.Equal(t, 2*time.Minute, cfg.MembershipCacheTTL)
}

func TestFromViper_Errors(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
		wantErr   string
	}{
		{name: "postgres without url", overrides: map[string]any{}, wantErr: "PGSQL_URL is required"},
		{name: "memory without roster", overrides: map[string]any{"STORAGE_DRIVER": "memory"}, wantErr: "MEMBERSHIP_ROSTER_FILE is required"},
		{name: "unknown driver", overrides: map[string]any{"STORAGE_DRIVER": "mongo"}, wantErr: "unknown STORAGE_DRIVER"},
		{name: "bad ttl", overrides: map[string]any{"PGSQL_URL": "x", "MEMBERSHIP_CACHE_TTL": "soon"}, wantErr: "invalid MEMBERSHIP_CACHE_TTL"},
		{name: "bad cache size", overrides: map[string]any{"PGSQL_URL": "x", "MEMBERSHIP_CACHE_SIZE": 0}, wantErr: "MEMBERSHIP_CACHE_SIZE must be positive"},
		{name: "default secret in production", overrides: map[string]any{"PGSQL_URL": "x", "IS_PRODUCTION": true}, wantErr: "JWT_SECRET must be set"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fromViper(newTestViper(tt.overrides))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
