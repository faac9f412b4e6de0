package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/northcourt/club-api/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	DBURL              string
	CORSAllowedOrigins []string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	LogLevel           logging.Level

	AuthTokenSecret string
	AdminEmail      string
	AdminPassword   string
	SessionTTL      time.Duration

	Currency string

	// NotifyAdminEmail receives a copy of every registration alert;
	// empty disables the admin copy.
	NotifyAdminEmail string

	MailEnabled bool
	MailBaseURL string
	MailAPIKey  string
	MailFrom    string
	MailTimeout time.Duration

	PaygateEnabled             bool
	PaygateBaseURL             string
	PaygateAccountID           string
	PaygateAPIToken            string
	PaygateTimeout             time.Duration
	PaygateCircuitEnabled      bool
	PaygateCircuitFailureCount int
	PaygateCircuitOpenTimeout  time.Duration

	BlobEnabled   bool
	BlobBaseURL   string
	BlobBucket    string
	BlobAccessKey string
	BlobTimeout   time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("SERVICE_NAME", "club-api"),
		ServiceVersion: getEnv("SERVICE_VERSION", "dev"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
	}

	cfg.DBURL = strings.TrimSpace(getEnv("DB_URL", ""))
	if cfg.DBURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required")
	}

	cfg.AuthTokenSecret = strings.TrimSpace(getEnv("AUTH_TOKEN_SECRET", ""))
	if cfg.AuthTokenSecret == "" {
		return Config{}, fmt.Errorf("AUTH_TOKEN_SECRET is required")
	}

	cfg.AdminEmail = strings.TrimSpace(getEnv("ADMIN_EMAIL", ""))
	cfg.AdminPassword = getEnv("ADMIN_PASSWORD", "")

	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "12h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SESSION_TTL: %w", err)
	}
	if sessionTTL <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL must be > 0")
	}
	cfg.SessionTTL = sessionTTL

	cfg.Currency = strings.ToUpper(strings.TrimSpace(getEnv("CURRENCY", "CAD")))
	if len(cfg.Currency) != 3 {
		return Config{}, fmt.Errorf("CURRENCY must be a 3-letter code, got %q", cfg.Currency)
	}

	cfg.NotifyAdminEmail = strings.TrimSpace(getEnv("NOTIFY_ADMIN_EMAIL", ""))

	cfg.CORSAllowedOrigins = splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*"))

	readTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_READ_TIMEOUT: %w", err)
	}
	if readTimeout <= 0 {
		return Config{}, fmt.Errorf("HTTP_READ_TIMEOUT must be > 0")
	}
	cfg.ReadTimeout = readTimeout

	writeTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_WRITE_TIMEOUT: %w", err)
	}
	if writeTimeout <= 0 {
		return Config{}, fmt.Errorf("HTTP_WRITE_TIMEOUT must be > 0")
	}
	cfg.WriteTimeout = writeTimeout

	if err := loadMail(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadPaygate(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadBlob(&cfg); err != nil {
		return Config{}, err
	}

	cfg.LogLevel = parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	return cfg, nil
}

func loadMail(cfg *Config) error {
	enabled, err := strconv.ParseBool(getEnv("MAIL_ENABLED", "false"))
	if err != nil {
		return fmt.Errorf("parse MAIL_ENABLED: %w", err)
	}
	cfg.MailEnabled = enabled
	cfg.MailBaseURL = strings.TrimSpace(getEnv("MAIL_BASE_URL", ""))
	cfg.MailAPIKey = strings.TrimSpace(getEnv("MAIL_API_KEY", ""))
	cfg.MailFrom = strings.TrimSpace(getEnv("MAIL_FROM", ""))
	if enabled && (cfg.MailBaseURL == "" || cfg.MailAPIKey == "" || cfg.MailFrom == "") {
		return fmt.Errorf("MAIL_BASE_URL, MAIL_API_KEY and MAIL_FROM are required when MAIL_ENABLED=true")
	}

	timeout, err := time.ParseDuration(getEnv("MAIL_TIMEOUT", "10s"))
	if err != nil {
		return fmt.Errorf("parse MAIL_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return fmt.Errorf("MAIL_TIMEOUT must be > 0")
	}
	cfg.MailTimeout = timeout

	return nil
}

func loadPaygate(cfg *Config) error {
	enabled, err := strconv.ParseBool(getEnv("PAYGATE_ENABLED", "false"))
	if err != nil {
		return fmt.Errorf("parse PAYGATE_ENABLED: %w", err)
	}
	cfg.PaygateEnabled = enabled
	cfg.PaygateBaseURL = strings.TrimSpace(getEnv("PAYGATE_BASE_URL", ""))
	cfg.PaygateAccountID = strings.TrimSpace(getEnv("PAYGATE_ACCOUNT_ID", ""))
	cfg.PaygateAPIToken = strings.TrimSpace(getEnv("PAYGATE_API_TOKEN", ""))
	if enabled && (cfg.PaygateBaseURL == "" || cfg.PaygateAccountID == "" || cfg.PaygateAPIToken == "") {
		return fmt.Errorf("PAYGATE_BASE_URL, PAYGATE_ACCOUNT_ID and PAYGATE_API_TOKEN are required when PAYGATE_ENABLED=true")
	}

	timeout, err := time.ParseDuration(getEnv("PAYGATE_TIMEOUT", "10s"))
	if err != nil {
		return fmt.Errorf("parse PAYGATE_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return fmt.Errorf("PAYGATE_TIMEOUT must be > 0")
	}
	cfg.PaygateTimeout = timeout

	circuitEnabled, err := strconv.ParseBool(getEnv("PAYGATE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return fmt.Errorf("parse PAYGATE_CIRCUIT_ENABLED: %w", err)
	}
	cfg.PaygateCircuitEnabled = circuitEnabled

	failureCount, err := getEnvAsInt("PAYGATE_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return fmt.Errorf("parse PAYGATE_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if failureCount < 1 {
		return fmt.Errorf("PAYGATE_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	cfg.PaygateCircuitFailureCount = failureCount

	openTimeout, err := time.ParseDuration(getEnv("PAYGATE_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return fmt.Errorf("parse PAYGATE_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if openTimeout <= 0 {
		return fmt.Errorf("PAYGATE_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	cfg.PaygateCircuitOpenTimeout = openTimeout

	return nil
}

func loadBlob(cfg *Config) error {
	enabled, err := strconv.ParseBool(getEnv("BLOB_ENABLED", "false"))
	if err != nil {
		return fmt.Errorf("parse BLOB_ENABLED: %w", err)
	}
	cfg.BlobEnabled = enabled
	cfg.BlobBaseURL = strings.TrimSpace(getEnv("BLOB_BASE_URL", ""))
	cfg.BlobBucket = strings.TrimSpace(getEnv("BLOB_BUCKET", ""))
	cfg.BlobAccessKey = strings.TrimSpace(getEnv("BLOB_ACCESS_KEY", ""))
	if enabled && (cfg.BlobBaseURL == "" || cfg.BlobBucket == "" || cfg.BlobAccessKey == "") {
		return fmt.Errorf("BLOB_BASE_URL, BLOB_BUCKET and BLOB_ACCESS_KEY are required when BLOB_ENABLED=true")
	}

	timeout, err := time.ParseDuration(getEnv("BLOB_TIMEOUT", "30s"))
	if err != nil {
		return fmt.Errorf("parse BLOB_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return fmt.Errorf("BLOB_TIMEOUT must be > 0")
	}
	cfg.BlobTimeout = timeout

	return nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}
