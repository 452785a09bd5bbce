package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	// Checkout provider (hosted payment pages)
	CheckoutAPIKey       string
	CheckoutAPIBaseURL   string
	CheckoutWebhookToken string

	// Supabase Storage (gallery photos)
	SupabaseURL           string
	SupabaseServiceKey    string
	SupabaseStorageBucket string

	// Auth
	JWTSecret string

	// Database
	DatabaseURL string

	// Server
	Port           string
	Environment    string
	FrontendDir    string
	AllowedOrigins []string
}

func Load() (*Config, error) {
	cfg := &Config{
		CheckoutAPIKey:       getEnv("CHECKOUT_API_KEY", ""),
		CheckoutAPIBaseURL:   getEnv("CHECKOUT_API_BASE_URL", "https://api.checkout.example.com/v1/"),
		CheckoutWebhookToken: getEnv("CHECKOUT_WEBHOOK_TOKEN", ""),

		SupabaseURL:           getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey:    getEnv("SUPABASE_SERVICE_KEY", ""),
		SupabaseStorageBucket: getEnv("SUPABASE_STORAGE_BUCKET", "gallery-photos"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		FrontendDir:    getEnv("FRONTEND_DIR", ""),
		AllowedOrigins: splitEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabaseServiceKey == "" {
		return fmt.Errorf("SUPABASE_SERVICE_KEY is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitEnv(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
