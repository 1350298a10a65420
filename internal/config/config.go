package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/noah-isme/toko-till/internal/catalog"
	"github.com/noah-isme/toko-till/internal/pricing"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration

	LogFormat            string
	LogLevel             string
	MetricsNamespace     string
	MetricsBucketsMS     []float64
	PrometheusEnabled    bool
	TracingEnabled       bool
	TracingExporter      string
	OTLPEndpoint         string
	TracingSamplingRatio float64
	PprofEnabled         bool
	PprofUser            string
	PprofPass            string
	SecureHeaders        bool
	SecureHSTS           bool

	Rounding           pricing.Rounding
	Limits             catalog.Limits
	QuoteMaxBodyBytes  int64
	RateLimitPerMinute int
}

// Load reads configuration from environment variables and optional .env files.
// Every key has a default; only malformed values are rejected.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),
		ShutdownTimeout:    parseDuration(k.String("SHUTDOWN_TIMEOUT"), "10s"),

		LogFormat:         valueOrDefault(k.String("OBS_LOG_FORMAT"), "json"),
		LogLevel:          valueOrDefault(k.String("OBS_LOG_LEVEL"), "info"),
		MetricsNamespace:  valueOrDefault(k.String("OBS_METRICS_NAMESPACE"), "till"),
		PrometheusEnabled: parseBool(k.String("OBS_ENABLE_PROMETHEUS"), true),
		TracingEnabled:    parseBool(k.String("OBS_ENABLE_TRACING"), false),
		TracingExporter:   valueOrDefault(k.String("OBS_TRACING_EXPORTER"), "otlp"),
		OTLPEndpoint:      strings.TrimSpace(k.String("OBS_OTLP_ENDPOINT")),
		PprofEnabled:      parseBool(k.String("OBS_ENABLE_PPROF"), false),
		PprofUser:         strings.TrimSpace(k.String("SECURE_PPROF_BASIC_AUTH_USER")),
		PprofPass:         strings.TrimSpace(k.String("SECURE_PPROF_BASIC_AUTH_PASS")),
		SecureHeaders:     parseBool(k.String("SECURE_HEADERS_ENABLED"), true),
		SecureHSTS:        parseBool(k.String("SECURE_HSTS_ENABLED"), false),
	}

	var err error
	if cfg.MetricsBucketsMS, err = parseBuckets(k.String("OBS_METRICS_BUCKETS_MS")); err != nil {
		return nil, err
	}
	if cfg.TracingSamplingRatio, err = parseFloat("OBS_TRACING_SAMPLING_RATIO", k.String("OBS_TRACING_SAMPLING_RATIO"), 1.0); err != nil {
		return nil, err
	}
	if cfg.TracingSamplingRatio < 0 || cfg.TracingSamplingRatio > 1 {
		return nil, fmt.Errorf("OBS_TRACING_SAMPLING_RATIO must be within [0, 1], got %v", cfg.TracingSamplingRatio)
	}
	if cfg.Rounding, err = pricing.ParseRounding(k.String("PRICING_ROUNDING")); err != nil {
		return nil, fmt.Errorf("PRICING_ROUNDING: %w", err)
	}

	limits := catalog.DefaultLimits()
	if limits.MaxLineQuantity, err = parseInt("PRICING_MAX_LINE_QUANTITY", k.String("PRICING_MAX_LINE_QUANTITY"), limits.MaxLineQuantity); err != nil {
		return nil, err
	}
	if limits.MaxNameLength, err = parseInt("PRICING_MAX_NAME_LENGTH", k.String("PRICING_MAX_NAME_LENGTH"), limits.MaxNameLength); err != nil {
		return nil, err
	}
	if raw := strings.TrimSpace(k.String("PRICING_MAX_UNIT_PRICE")); raw != "" {
		ceiling, perr := pricing.Parse(raw)
		if perr != nil || ceiling.IsZero() {
			return nil, fmt.Errorf("PRICING_MAX_UNIT_PRICE: invalid amount %q", raw)
		}
		limits.MaxUnitPrice = ceiling
	}
	if limits.MaxLineQuantity <= 0 || limits.MaxNameLength <= 0 {
		return nil, fmt.Errorf("pricing limits must be positive: %+v", limits)
	}
	cfg.Limits = limits

	bodyBytes, err := parseInt("QUOTE_MAX_BODY_BYTES", k.String("QUOTE_MAX_BODY_BYTES"), 1<<20)
	if err != nil {
		return nil, err
	}
	cfg.QuoteMaxBodyBytes = int64(bodyBytes)
	if cfg.RateLimitPerMinute, err = parseInt("RATE_LIMIT_PER_MINUTE", k.String("RATE_LIMIT_PER_MINUTE"), 120); err != nil {
		return nil, err
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseBool(value string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "t", "true", "yes", "on":
		return true
	case "0", "f", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func parseInt(key, value string, fallback int) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, trimmed)
	}
	return n, nil
}

func parseFloat(key, value string, fallback float64) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q", key, trimmed)
	}
	return f, nil
}

func parseBuckets(value string) ([]float64, error) {
	parts := splitAndTrim(value)
	if len(parts) == 0 {
		return nil, nil
	}
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("OBS_METRICS_BUCKETS_MS: invalid bucket %q", part)
		}
		out = append(out, v)
	}
	return out, nil
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
