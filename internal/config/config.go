package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	JWT      JWTConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from the environment once at startup.
// A missing JWT secret is a configuration error: the process must not
// come up able to issue unsigned tokens.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Port: getenv("SERVER_PORT", "8080"),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:   strings.TrimSpace(os.Getenv("JWT_SECRET")),
			Issuer:   getenv("JWT_ISSUER", "mybookshelf-api"),
			Audience: getenv("JWT_AUDIENCE", "mybookshelf-client"),
			TTL:      ttlFromEnv(),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseCSV(getenv("CORS_ALLOWED_ORIGINS", "http://localhost:4200")),
		},
	}

	if cfg.JWT.Secret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

func (c Config) HTTPAddress() string {
	return ":" + c.Server.Port
}

func ttlFromEnv() time.Duration {
	minutes, err := strconv.Atoi(getenv("JWT_TTL_MINUTES", "60"))
	if err != nil || minutes <= 0 {
		minutes = 60
	}
	return time.Duration(minutes) * time.Minute
}

func parseCSV(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getenv(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
