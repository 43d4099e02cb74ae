package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/random"
)

// Config holds the process settings read from the environment.
type Config struct {
	Port        int
	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	GigImageBucket string

	JWTSecret   string
	JWKSURL     string
	AuthIssuer  string
	AuthAdmins  []string // Subjects allowed to force a reseed; empty means any signed-in user
	JWKSRefresh time.Duration

	CatalogFile           string
	CatalogCacheTTL       time.Duration
	CatalogEnsureInterval time.Duration
	ReseedRateLimit       int
	ReseedRateWindow      time.Duration

	MigrateOnStart bool
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("DEBUG: no .env file loaded: %v", err)
	}

	cfg := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinioUseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		GigImageBucket: getEnv("GIG_IMAGE_BUCKET", "gig-images"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWKSURL:        os.Getenv("AUTH_JWKS_URL"),
		AuthIssuer:     os.Getenv("AUTH_ISSUER"),
		AuthAdmins:     splitList(os.Getenv("AUTH_ADMIN_SUBJECTS")),
		CatalogFile:    os.Getenv("CATALOG_FILE"),
		MigrateOnStart: getEnv("MIGRATE_ON_START", "true") == "true",
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	var err error
	if cfg.Port, err = getInt("PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.ReseedRateLimit, err = getInt("RESEED_RATE_LIMIT", 5); err != nil {
		return nil, err
	}
	if cfg.ReseedRateWindow, err = getDuration("RESEED_RATE_WINDOW", time.Minute); err != nil {
		return nil, err
	}
	if cfg.CatalogCacheTTL, err = getDuration("CATALOG_CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.CatalogEnsureInterval, err = getDuration("CATALOG_ENSURE_INTERVAL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.JWKSRefresh, err = getDuration("AUTH_JWKS_REFRESH", time.Hour); err != nil {
		return nil, err
	}

	if cfg.JWKSURL == "" && cfg.JWTSecret == "" {
		cfg.JWTSecret = random.String(32) // Generate random secret for development
		log.Printf("WARN: neither AUTH_JWKS_URL nor JWT_SECRET set, using a generated HMAC secret")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
