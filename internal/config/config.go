package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

const devSecret = "dev-secret-change-in-production"

// Config holds runtime configuration sourced from environment variables.
type Config struct {
	Host        string
	Port        string
	Env         string
	LogLevel    string
	DBDriver    string
	DatabaseDSN string
	JWTSecret   string
	JWTExpiry   time.Duration
	CORSOrigins []string
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Host:        getEnv("HOST", ""),
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		JWTSecret:   getEnv("SECRET", devSecret),
		CORSOrigins: parseCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	ttl, err := strconv.Atoi(getEnv("TOKEN_TTL_SECONDS", "3600"))
	if err != nil || ttl <= 0 {
		return Config{}, fmt.Errorf("TOKEN_TTL_SECONDS must be a positive integer, got %q", os.Getenv("TOKEN_TTL_SECONDS"))
	}
	cfg.JWTExpiry = time.Duration(ttl) * time.Second

	cfg.DatabaseDSN = os.Getenv("DATABASE_DSN")
	if cfg.DatabaseDSN == "" {
		dsn, err := composeDSN(cfg.DBDriver)
		if err != nil {
			return Config{}, err
		}
		cfg.DatabaseDSN = dsn
	}

	if cfg.Env == "production" && cfg.JWTSecret == devSecret {
		return Config{}, errors.New("SECRET must be set in production environment")
	}

	return cfg, nil
}

// Addr returns the host:port pair for the HTTP server to bind to.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// composeDSN builds a driver DSN from DBHOST, DBPORT, DATABASE, DBUSER and DBPASSWORD.
func composeDSN(driver string) (string, error) {
	host := getEnv("DBHOST", "127.0.0.1")
	name := getEnv("DATABASE", "userauth")
	user := os.Getenv("DBUSER")
	password := os.Getenv("DBPASSWORD")

	switch driver {
	case "mysql":
		mc := mysql.NewConfig()
		mc.User = getEnv("DBUSER", "root")
		mc.Passwd = password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(host, getEnv("DBPORT", "3306"))
		mc.DBName = name
		mc.ParseTime = true
		return mc.FormatDSN(), nil
	case "postgres":
		u := url.URL{
			Scheme:   "postgres",
			Host:     net.JoinHostPort(host, getEnv("DBPORT", "5432")),
			Path:     "/" + name,
			RawQuery: "sslmode=disable",
		}
		if user != "" {
			u.User = url.UserPassword(user, password)
		}
		return u.String(), nil
	case "sqlite":
		if name != ":memory:" && !strings.HasSuffix(name, ".db") {
			name += ".db"
		}
		return name + "?_time_format=sqlite", nil
	default:
		return "", fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseCSV(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
