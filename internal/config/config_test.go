package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("PORT", "")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "")
	t.Setenv("JWT_LEEWAY_SECONDS", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, time.Duration(0), cfg.JWTLeeway)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "file::memory:", cfg.DSN())
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/todo")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "5")
	t.Setenv("JWT_LEEWAY_SECONDS", "10")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, ,https://admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 10*time.Second, cfg.JWTLeeway)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSAllowedOrigins)
}

func TestValidate_RejectsUnknownDriver(t *testing.T) {
	cfg := &Config{
		JWTSecret:      "secret",
		AccessTokenTTL: time.Minute,
		BcryptCost:     10,
		DBDriver:       "oracle",
	}
	require.Error(t, cfg.Validate())
}

func TestValidate_PostgresRequiresURL(t *testing.T) {
	cfg := &Config{
		JWTSecret:      "secret",
		AccessTokenTTL: time.Minute,
		BcryptCost:     10,
		DBDriver:       DriverPostgres,
		DBSSLMode:      "require",
	}
	require.ErrorIs(t, cfg.Validate(), ErrMissingDatabaseURL)

	cfg.DatabaseURL = "postgres://u:p@db:5432/todo"
	require.NoError(t, cfg.Validate())
}

func TestLoad_PostgresWithoutURL(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_DRIVER", "postgres")

	_, err := Load()
	require.ErrorIs(t, err, ErrMissingDatabaseURL)
}

func TestDSN_PostgresSSLMode(t *testing.T) {
	tests := []struct {
		name string
		url  string
		mode string
		want string
	}{
		{"appends", "postgres://u:p@h/db", "require", "postgres://u:p@h/db?sslmode=require"},
		{"appends to query", "postgres://u:p@h/db?connect_timeout=5", "require", "postgres://u:p@h/db?connect_timeout=5&sslmode=require"},
		{"keeps existing", "postgres://u:p@h/db?sslmode=disable", "require", "postgres://u:p@h/db?sslmode=disable"},
		{"no mode", "postgres://u:p@h/db", "", "postgres://u:p@h/db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{DBDriver: DriverPostgres, DatabaseURL: tt.url, DBSSLMode: tt.mode}
			assert.Equal(t, tt.want, cfg.DSN())
		})
	}
}

func TestDSN_MySQLFromParts(t *testing.T) {
	cfg := &Config{
		DBDriver:   DriverMySQL,
		DBUser:     "todo",
		DBPassword: "pw",
		DBHost:     "db",
		DBPort:     "3306",
		DBName:     "tasks",
	}
	assert.Equal(t, "todo:pw@tcp(db:3306)/tasks?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true", cfg.DSN())
}
