package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported values of DATA_SOURCE.
const (
	SourceJSON     = "json"
	SourceCSV      = "csv"
	SourceXLSX     = "xlsx"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
	SourceRedis    = "redis"
)

type Config struct {
	Port        string
	DataSource  string
	DataFile    string
	StaticDir   string
	IndexPage   string
	CORSOrigins []string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	SQLitePath string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	ShutdownTimeout time.Duration
	LoadTimeout     time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// godotenv never overrides variables that are already set.
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		} else if err == nil {
			log.Printf("Loaded environment from %s", f)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables, applying defaults.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "3010"),
		DataSource:    strings.ToLower(getEnv("DATA_SOURCE", SourceJSON)),
		DataFile:      getEnv("DATA_FILE", "data.json"),
		StaticDir:     getEnv("STATIC_DIR", "static"),
		IndexPage:     getEnv("INDEX_PAGE", "pages/index.html"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "*")),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        getEnv("DB_NAME", "studentdb"),
		DBPort:        getEnv("DB_PORT", "5432"),
		SQLitePath:    getEnv("SQLITE_PATH", "students.db"),
		RedisAddr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	if _, err := strconv.ParseUint(cfg.Port, 10, 16); err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", cfg.Port, err)
	}

	switch cfg.DataSource {
	case SourceJSON, SourceCSV, SourceXLSX, SourceSQLite, SourcePostgres, SourceRedis:
	default:
		return nil, fmt.Errorf("unsupported DATA_SOURCE %q", cfg.DataSource)
	}

	var err error
	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	if cfg.ShutdownTimeout, err = time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "5s")); err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}
	if cfg.LoadTimeout, err = time.ParseDuration(getEnv("LOAD_TIMEOUT", "10s")); err != nil {
		return nil, fmt.Errorf("invalid LOAD_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// PostgresDSN assembles the connection string from the DB_* variables.
func (c *Config) PostgresDSN() string {
	return "host=" + c.DBHost + " user=" + c.DBUser + " password=" + c.DBPassword + " dbname=" + c.DBName + " port=" + c.DBPort + " sslmode=disable"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
