// Package config loads application settings from the environment.
// A .env file in the working directory is read first when present.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Fallbacks used when the corresponding variables are unset. They exist so a
// fresh checkout runs locally; production deployments must override both.
const (
	DevPassword  = "admin123"
	DevJWTSecret = "fallback-dev-secret-change-me"
)

// Config holds every non-database setting of the server.
type Config struct {
	Env               string
	Port              string
	LogLevel          string
	AdminUsername     string
	AdminPasswordHash string
	JWTSecret         string
	CORSOrigins       []string
	PublicBaseURL     string
}

// Load reads .env (if any) and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}
	return FromEnv(), nil
}

// FromEnv builds a Config from the current environment only.
func FromEnv() Config {
	return Config{
		Env:               getEnv("APP_ENV", "development"),
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		JWTSecret:         getEnv("ADMIN_JWT_SECRET", DevJWTSecret),
		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "*")),
		PublicBaseURL:     strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:3000"), "/"),
	}
}

// IsProduction reports whether APP_ENV is "production".
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// UsesDevPassword reports whether logins fall back to DevPassword.
func (c Config) UsesDevPassword() bool {
	return c.AdminPasswordHash == ""
}

// UsesDevSecret reports whether session tokens are signed with DevJWTSecret.
func (c Config) UsesDevSecret() bool {
	return c.JWTSecret == DevJWTSecret
}

// InvitationURL returns the guest-facing link for a group token.
func (c Config) InvitationURL(token string) string {
	return c.PublicBaseURL + "/?token=" + token
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
