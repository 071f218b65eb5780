package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnv = []string{
	"HOST", "PORT", "ENV", "LOG_LEVEL", "DB_DRIVER", "DATABASE_DSN", "SECRET",
	"TOKEN_TTL_SECONDS", "CORS_ALLOWED_ORIGINS", "DBHOST", "DBPORT", "DATABASE",
	"DBUSER", "DBPASSWORD",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnv {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Host)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, devSecret, cfg.JWTSecret)
	assert.Equal(t, time.Hour, cfg.JWTExpiry)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Contains(t, cfg.DatabaseDSN, "root@tcp(127.0.0.1:3306)/userauth")
	assert.Contains(t, cfg.DatabaseDSN, "parseTime=true")
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("PORT", "9000")
	t.Setenv("SECRET", "s3cr3t")
	t.Setenv("TOKEN_TTL_SECONDS", "1440")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())
	assert.Equal(t, "s3cr3t", cfg.JWTSecret)
	assert.Equal(t, 24*time.Minute, cfg.JWTExpiry)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
}

func TestLoadInvalidTTL(t *testing.T) {
	for _, v := range []string{"abc", "0", "-5"} {
		t.Run(v, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("TOKEN_TTL_SECONDS", v)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadProductionRequiresSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("SECRET", "real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "real-secret", cfg.JWTSecret)
}

func TestComposeDSN(t *testing.T) {
	tests := []struct {
		name   string
		driver string
		env    map[string]string
		want   string
	}{
		{
			name:   "mysql with credentials",
			driver: "mysql",
			env:    map[string]string{"DBHOST": "db", "DBPORT": "3307", "DATABASE": "users", "DBUSER": "app", "DBPASSWORD": "pw"},
			want:   "app:pw@tcp(db:3307)/users?parseTime=true",
		},
		{
			name:   "postgres",
			driver: "postgres",
			env:    map[string]string{"DBHOST": "db", "DATABASE": "users", "DBUSER": "app", "DBPASSWORD": "p@ss"},
			want:   "postgres://app:p%40ss@db:5432/users?sslmode=disable",
		},
		{
			name:   "postgres without user",
			driver: "postgres",
			env:    map[string]string{},
			want:   "postgres://127.0.0.1:5432/userauth?sslmode=disable",
		},
		{
			name:   "sqlite file",
			driver: "sqlite",
			env:    map[string]string{"DATABASE": "data/users"},
			want:   "data/users.db?_time_format=sqlite",
		},
		{
			name:   "sqlite memory",
			driver: "sqlite",
			env:    map[string]string{"DATABASE": ":memory:"},
			want:   ":memory:?_time_format=sqlite",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			got, err := composeDSN(tt.driver)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadUnsupportedDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "mongodb")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DATABASE_DSN", "mongodb://localhost")
	cfg, err := Load()
	require.NoError(t, err, "an explicit DSN skips composition")
	assert.Equal(t, "mongodb://localhost", cfg.DatabaseDSN)
}
