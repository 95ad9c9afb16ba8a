package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseDSN string
	CORSOrigin  string

	JWTSecret   string
	ResetSecret string
	JWTTTL      time.Duration

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	ResetLinkBase string
}

// Load reads configuration from the environment, with .env as a fallback
// for local development. The JWT secret has no default on purpose.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		fmt.Println("no .env file, using environment variables")
	}

	cfg := &Config{
		Port:           getEnv("PORT", "3000"),
		DatabaseDSN:    os.Getenv("DATABASE_URL"),
		CORSOrigin:     getEnv("CORS_ORIGIN", "http://localhost:4200"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		ResetSecret:    os.Getenv("JWT_RESET_SECRET"),
		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    getEnv("MINIO_BUCKET", "artwork"),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),
		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPassword:   os.Getenv("SMTP_PASSWORD"),
		ResetLinkBase:  getEnv("RESET_LINK_BASE", "http://localhost:4200/reset-password"),
	}

	if cfg.DatabaseDSN == "" {
		host := getEnv("DB_HOST", "localhost")
		port := getEnv("DB_PORT", "5432")
		user := getEnv("DB_USER", "postgres")
		pass := os.Getenv("DB_PASSWORD")
		name := getEnv("DB_NAME", "stickify")
		cfg.DatabaseDSN = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, user, pass, name)
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	if cfg.ResetSecret == "" {
		cfg.ResetSecret = cfg.JWTSecret + "-reset"
	}

	ttl := getEnv("JWT_TTL", "1h")
	d, err := time.ParseDuration(ttl)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL %q: %w", ttl, err)
	}
	cfg.JWTTTL = d

	if p := os.Getenv("SMTP_PORT"); p != "" {
		cfg.SMTPPort, err = strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT %q: %w", p, err)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
