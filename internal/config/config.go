package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kevin07696/netbilling-gateway/internal/adapters/ports"
)

// Config holds all application configuration
type Config struct {
	Gateway   GatewayConfig
	Transport TransportConfig
	Secrets   SecretsConfig
	Logger    LoggerConfig
}

// GatewayConfig holds NETbilling account configuration
type GatewayConfig struct {
	Login       string // NETbilling account id
	LoginSecret string // Secret path holding the account id, used when Login is empty
	SiteTag     string
	TestMode    bool
}

// TransportConfig holds HTTP settings for the gateway endpoint
type TransportConfig struct {
	URL                string
	Timeout            time.Duration
	MaxRetries         int
	RateLimit          float64 // requests per second, 0 = unlimited
	RateBurst          int
	InsecureSkipVerify bool
}

// SecretsConfig selects and configures the secret backend
type SecretsConfig struct {
	Provider   string // local, aws, vault
	LocalPath  string
	AWSRegion  string
	AWSProfile string
	AWSURL     string
	VaultAddr  string
	VaultToken string
	VaultMount string
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // debug, info, warn, error
	Environment string // development, production
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Gateway: GatewayConfig{
			Login:       getEnv("NETBILLING_LOGIN", ""),
			LoginSecret: getEnv("NETBILLING_LOGIN_SECRET", ""),
			SiteTag:     getEnv("NETBILLING_SITE_TAG", ""),
			TestMode:    getEnvAsBool("NETBILLING_TEST_MODE", false),
		},
		Transport: TransportConfig{
			URL:                getEnv("NETBILLING_URL", "https://secure.netbilling.com:1402/gw/sas/direct3.1"),
			Timeout:            getEnvAsDuration("NETBILLING_TIMEOUT", 60*time.Second),
			MaxRetries:         getEnvAsInt("NETBILLING_MAX_RETRIES", 0),
			RateLimit:          getEnvAsFloat("NETBILLING_RATE_LIMIT", 0),
			RateBurst:          getEnvAsInt("NETBILLING_RATE_BURST", 1),
			InsecureSkipVerify: getEnvAsBool("NETBILLING_INSECURE_SKIP_VERIFY", false),
		},
		Secrets: SecretsConfig{
			Provider:   getEnv("SECRET_PROVIDER", "local"),
			LocalPath:  getEnv("SECRETS_PATH", "./secrets"),
			AWSRegion:  getEnv("AWS_REGION", "us-east-1"),
			AWSProfile: getEnv("AWS_PROFILE", ""),
			AWSURL:     getEnv("AWS_ENDPOINT_URL", ""),
			VaultAddr:  getEnv("VAULT_ADDR", "http://127.0.0.1:8200"),
			VaultToken: getEnv("VAULT_TOKEN", ""),
			VaultMount: getEnv("VAULT_MOUNT", "secret"),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and value ranges
func (c *Config) Validate() error {
	if c.Gateway.Login == "" && c.Gateway.LoginSecret == "" {
		return fmt.Errorf("NETBILLING_LOGIN or NETBILLING_LOGIN_SECRET is required")
	}
	if c.Transport.URL == "" {
		return fmt.Errorf("NETBILLING_URL is required")
	}
	if c.Transport.MaxRetries < 0 {
		return fmt.Errorf("NETBILLING_MAX_RETRIES must not be negative")
	}
	switch c.Secrets.Provider {
	case "local", "aws", "vault":
	default:
		return fmt.Errorf("unsupported SECRET_PROVIDER: %s", c.Secrets.Provider)
	}
	return nil
}

// ResolveLogin fills Gateway.Login from the secret backend when only
// LoginSecret was configured
func (c *Config) ResolveLogin(ctx context.Context, secrets ports.SecretManagerAdapter) error {
	if c.Gateway.Login != "" {
		return nil
	}
	secret, err := secrets.GetSecret(ctx, c.Gateway.LoginSecret)
	if err != nil {
		return fmt.Errorf("resolve NETbilling login: %w", err)
	}
	login := strings.TrimSpace(secret.Value)
	if login == "" {
		return fmt.Errorf("secret %s is empty", c.Gateway.LoginSecret)
	}
	c.Gateway.Login = login
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration accepts Go durations ("45s") or whole seconds ("45")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if seconds, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(seconds) * time.Second
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
