package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr        string
	GinMode        string
	LogLevel       string
	MigrateOnStart bool

	DB DBConfig

	JWTSecret string
	// JWTSecretGenerated is set when JWT_SECRET was empty outside release
	// mode and a random per-process secret was used instead.
	JWTSecretGenerated bool
	JWTTTL             time.Duration
	CORSOrigins        []string

	SMTP SMTPConfig
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	// DSN overrides the fields above when set.
	DSN string
}

type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

// Enabled reports whether outgoing mail is configured.
func (s SMTPConfig) Enabled() bool { return strings.TrimSpace(s.Host) != "" }

// ErrMissingJWTSecret stops a release build from starting without a signing key.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set when GIN_MODE=release")

func LoadEnv() Env {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	e := Env{
		AppAddr:        env("APP_ADDR", ":8080"),
		GinMode:        strings.TrimSpace(os.Getenv("GIN_MODE")),
		LogLevel:       env("LOG_LEVEL", "info"),
		MigrateOnStart: envBool("MIGRATE_ON_START", false),
		DB: DBConfig{
			Host:     env("DB_HOST", "127.0.0.1"),
			Port:     env("DB_PORT", "3306"),
			User:     env("DB_USER", "root"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     env("DB_NAME", "tours_travels"),
			DSN:      strings.TrimSpace(os.Getenv("DATABASE_DSN")),
		},
		JWTSecret:   strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTTTL:      envDuration("JWT_TTL", 24*time.Hour),
		CORSOrigins: envList("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		SMTP: SMTPConfig{
			Host:     strings.TrimSpace(os.Getenv("SMTP_HOST")),
			Port:     env("SMTP_PORT", "587"),
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     env("SMTP_FROM", "no-reply@tours.local"),
		},
	}
	if e.JWTSecret == "" && e.GinMode != "release" {
		e.JWTSecret = randomSecret()
		e.JWTSecretGenerated = true
	}
	return e
}

// Validate reports settings the server cannot run without.
func (e Env) Validate() error {
	if e.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

// randomSecret keeps development tokens unforgeable; they stop verifying
// after a restart.
func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return hex.EncodeToString(b)
}

func env(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func envList(key, fallbackCSV string) []string {
	v := env(key, fallbackCSV)
	out := []string{}
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
