// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Upload   UploadConfig
	Report   ReportConfig
	Schema   SchemaConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading the request body (default: 30s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"30s"`

	// WriteTimeout is the maximum duration for writing the response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// UploadConfig holds workbook upload settings.
type UploadConfig struct {
	// MaxFileSize is the maximum allowed file size in bytes (default: 10 MiB)
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"10485760"`

	// MaxConcurrent is the maximum number of workbooks decoded at once (default: 4)
	MaxConcurrent int `env:"UPLOAD_MAX_CONCURRENT" default:"4"`

	// MaxWaitTime is how long to wait for a decode slot (default: 30s)
	MaxWaitTime time.Duration `env:"UPLOAD_MAX_WAIT_TIME" default:"30s"`

	// SessionTTL is how long an upload stays available for reports (default: 1h)
	SessionTTL time.Duration `env:"UPLOAD_SESSION_TTL" default:"1h"`

	// MaxSessions is the number of uploads kept in memory (default: 64)
	MaxSessions int `env:"UPLOAD_MAX_SESSIONS" default:"64"`
}

// ReportConfig holds derived-view settings.
type ReportConfig struct {
	// LowStockDefault is the initial low-stock threshold (default: 10)
	LowStockDefault int `env:"REPORT_LOW_STOCK_DEFAULT" default:"10"`

	// LowStockMin is the smallest selectable threshold (default: 1)
	LowStockMin int `env:"REPORT_LOW_STOCK_MIN" default:"1"`

	// LowStockMax is the largest selectable threshold (default: 100)
	LowStockMax int `env:"REPORT_LOW_STOCK_MAX" default:"100"`

	// ExpiryWindowDays is how far ahead the expiring view looks (default: 30)
	ExpiryWindowDays int `env:"REPORT_EXPIRY_WINDOW_DAYS" default:"30"`

	// InactivityWindowDays is how far back the inactive view looks (default: 30)
	InactivityWindowDays int `env:"REPORT_INACTIVITY_WINDOW_DAYS" default:"30"`

	// PreviewRows is how many rows a collapsed view shows (default: 2)
	PreviewRows int `env:"REPORT_PREVIEW_ROWS" default:"2"`
}

// SchemaConfig selects the canonical header set.
type SchemaConfig struct {
	// Headers is the header language: en or pt (default: en)
	Headers string `env:"SCHEMA_HEADERS" default:"en"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`

	// UploadLimit is requests per minute for the upload endpoint (default: 10)
	UploadLimit int `env:"RATE_LIMIT_UPLOAD" default:"10"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ExpiryWindow returns the expiring-soon window as a duration.
func (c *ReportConfig) ExpiryWindow() time.Duration {
	return time.Duration(c.ExpiryWindowDays) * 24 * time.Hour
}

// InactivityWindow returns the inactivity window as a duration.
func (c *ReportConfig) InactivityWindow() time.Duration {
	return time.Duration(c.InactivityWindowDays) * 24 * time.Hour
}
