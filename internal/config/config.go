package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/constants"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

var (
	ErrMissingJWTSecret   = errors.New("JWT_SECRET must be set")
	ErrMissingDatabaseURL = errors.New("DATABASE_URL must be set for the postgres driver")
)

type Config struct {
	AppEnv  string
	Port    string
	GinMode string

	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	JWTSecret      string
	AccessTokenTTL time.Duration
	JWTLeeway      time.Duration
	BcryptCost     int

	CORSAllowedOrigins []string
}

// Load reads configuration from the environment. Values found in .env files
// are applied first without overriding variables that are already set.
func Load() (*Config, error) {
	loadEnvFiles()

	cfg := &Config{
		AppEnv:  getEnv("APP_ENV", "dev"),
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),

		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", "")),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "3306"),
		DBUser:      getEnv("DB_USER", "todo"),
		DBPassword:  getEnv("DB_PASSWORD", "todo"),
		DBName:      getEnv("DB_NAME", "todo"),
		DBSSLMode:   getEnv("DB_SSLMODE", "require"),

		JWTSecret:      getEnv("JWT_SECRET", ""),
		AccessTokenTTL: time.Duration(getEnvAsInt("ACCESS_TOKEN_EXPIRE_MINUTES", int(constants.DefaultAccessTokenTTL/time.Minute))) * time.Minute,
		JWTLeeway:      time.Duration(getEnvAsInt("JWT_LEEWAY_SECONDS", 0)) * time.Second,
		BcryptCost:     getEnvAsInt("BCRYPT_COST", bcrypt.DefaultCost),

		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")),
	}

	if cfg.DBDriver == "" {
		cfg.DBDriver = detectDriver(cfg.DatabaseURL)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the values the process cannot start without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	if c.JWTLeeway < 0 {
		return fmt.Errorf("JWT_LEEWAY_SECONDS must not be negative")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	switch c.DBDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return ErrMissingDatabaseURL
		}
	case DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	return nil
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	switch c.DBDriver {
	case DriverPostgres:
		return withSSLMode(c.DatabaseURL, c.DBSSLMode)
	case DriverMySQL:
		if c.DatabaseURL != "" {
			return c.DatabaseURL
		}
		// clientFoundRows makes RowsAffected count matched rows, as postgres does.
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true",
			c.DBUser,
			c.DBPassword,
			c.DBHost,
			c.DBPort,
			c.DBName,
		)
	default:
		if c.DatabaseURL != "" {
			return c.DatabaseURL
		}
		return "file::memory:"
	}
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func loadEnvFiles() {
	for _, path := range []string{".env.local", ".env"} {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
		}
	}
}

func detectDriver(databaseURL string) string {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return DriverPostgres
	case databaseURL == "":
		return DriverSQLite
	default:
		return DriverMySQL
	}
}

// withSSLMode appends sslmode to a postgres URL that does not carry one.
func withSSLMode(databaseURL, mode string) string {
	if mode == "" || strings.Contains(databaseURL, "sslmode=") {
		return databaseURL
	}
	if strings.Contains(databaseURL, "?") {
		return databaseURL + "&sslmode=" + mode
	}
	return databaseURL + "?sslmode=" + mode
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
