// Package config loads service configuration from the environment.
// Each binary reads only the keys it needs; Load never fails, Validate
// reports every problem at once.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP server
	Port string

	// Store
	StoreBackend  string // "postgres" or "memory"
	DatabaseURL   string
	DBMaxConns    int
	DBIdleTimeout time.Duration
	QueryTimeout  time.Duration

	// Auth
	JWTSecret string

	// Gateway targets
	AccountServiceURL      string
	TransactionServiceURL  string
	CategoryServiceURL     string
	AnalyticsServiceURL    string
	PlaidServiceURL        string
	SubscriptionServiceURL string
	ProxyTimeout           time.Duration

	// Change events (optional; empty AMQPURL disables publishing)
	AMQPURL      string
	AMQPExchange string
}

// Load reads configuration from the environment with development
// defaults. Production deployments supply every value explicitly.
func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "4000"),

		StoreBackend:  getEnv("STORE_BACKEND", "postgres"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		DBMaxConns:    getEnvInt("DB_MAX_CONNS", 20),
		DBIdleTimeout: getEnvDuration("DB_IDLE_TIMEOUT", 30*time.Second),
		QueryTimeout:  getEnvDuration("QUERY_TIMEOUT", 5*time.Second),

		JWTSecret: getEnv("JWT_SECRET", ""),

		AccountServiceURL:      getEnv("ACCOUNT_SERVICE_URL", "http://account-service:4002"),
		TransactionServiceURL:  getEnv("TRANSACTION_SERVICE_URL", "http://transaction-service:4003"),
		CategoryServiceURL:     getEnv("CATEGORY_SERVICE_URL", "http://category-service:4004"),
		AnalyticsServiceURL:    getEnv("ANALYTICS_SERVICE_URL", "http://analytics-service:4005"),
		PlaidServiceURL:        getEnv("PLAID_SERVICE_URL", "http://plaid-service:4006"),
		SubscriptionServiceURL: getEnv("SUBSCRIPTION_SERVICE_URL", "http://subscription-service:4007"),
		ProxyTimeout:           getEnvDuration("PROXY_TIMEOUT", 15*time.Second),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "finhub.events"),
	}
}

// Validate checks the configuration for a resource or analytics
// service and returns all problems at once.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port %q: must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.StoreBackend {
	case "postgres":
		if c.DatabaseURL == "" {
			errs = append(errs, "DATABASE_URL is required with the postgres backend")
		}
	case "memory":
	default:
		errs = append(errs, fmt.Sprintf("invalid store backend %q: must be postgres or memory", c.StoreBackend))
	}

	if c.JWTSecret == "" {
		errs = append(errs, "JWT_SECRET is required")
	}

	if c.DBMaxConns < 1 {
		errs = append(errs, fmt.Sprintf("invalid DB_MAX_CONNS %d: must be at least 1", c.DBMaxConns))
	}
	if c.QueryTimeout < 100*time.Millisecond {
		errs = append(errs, fmt.Sprintf("invalid QUERY_TIMEOUT %v: must be at least 100ms", c.QueryTimeout))
	}

	if err := c.validateAMQP(); err != nil {
		errs = append(errs, err.Error())
	}

	return combine(errs)
}

// ValidateGateway checks the configuration the gateway needs: listen
// port, backend base URLs and the proxy timeout. The gateway touches
// neither the store nor token verification.
func (c *Config) ValidateGateway() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port %q: must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	targets := map[string]string{
		"ACCOUNT_SERVICE_URL":      c.AccountServiceURL,
		"TRANSACTION_SERVICE_URL":  c.TransactionServiceURL,
		"CATEGORY_SERVICE_URL":     c.CategoryServiceURL,
		"ANALYTICS_SERVICE_URL":    c.AnalyticsServiceURL,
		"PLAID_SERVICE_URL":        c.PlaidServiceURL,
		"SUBSCRIPTION_SERVICE_URL": c.SubscriptionServiceURL,
	}
	for name, target := range targets {
		u, err := url.Parse(target)
		if err != nil || u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
			errs = append(errs, fmt.Sprintf("invalid %s %q: must be an http(s) base URL", name, target))
		}
	}

	if c.ProxyTimeout < time.Second {
		errs = append(errs, fmt.Sprintf("invalid PROXY_TIMEOUT %v: must be at least 1 second", c.ProxyTimeout))
	}

	return combine(errs)
}

func (c *Config) validateAMQP() error {
	if c.AMQPURL == "" {
		return nil
	}
	u, err := url.Parse(c.AMQPURL)
	if err != nil {
		return fmt.Errorf("invalid AMQP URL %q: %v", c.AMQPURL, err)
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return fmt.Errorf("invalid AMQP URL scheme %q: must be amqp or amqps", u.Scheme)
	}
	if c.AMQPExchange == "" {
		return fmt.Errorf("AMQP exchange name cannot be empty when AMQP URL is provided")
	}
	return nil
}

func combine(errs []string) error {
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
