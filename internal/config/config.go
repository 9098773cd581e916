package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ferdiebergado/hireloop/internal/pkg/env"
	timex "github.com/ferdiebergado/hireloop/internal/pkg/time"
)

const minKeyLength = 32

type App struct {
	Env      string `json:"env,omitempty" env:"ENV"`
	Key      string `json:"-" env:"APP_KEY"`
	LogLevel string `json:"log_level,omitempty" env:"LOG_LEVEL"`
}

func (a *App) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("env", a.Env),
		slog.String("log_level", a.LogLevel),
	)
}

type Server struct {
	URL             string         `json:"url,omitempty" env:"SERVER_URL"`
	Port            int            `json:"port,omitempty" env:"PORT"`
	ReadTimeout     timex.Duration `json:"read_timeout,omitempty"`
	WriteTimeout    timex.Duration `json:"write_timeout,omitempty"`
	IdleTimeout     timex.Duration `json:"idle_timeout,omitempty"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout,omitempty"`
	MaxBodyBytes    int64          `json:"max_body_bytes,omitempty"`
}

type DB struct {
	Driver          string         `json:"driver,omitempty"`
	Host            string         `json:"host,omitempty" env:"DB_HOST"`
	Port            int            `json:"port,omitempty" env:"DB_PORT"`
	User            string         `json:"-" env:"DB_USER"`
	Password        string         `json:"-" env:"DB_PASS"`
	Name            string         `json:"name,omitempty" env:"DB_NAME"`
	SSLMode         string         `json:"ssl_mode,omitempty" env:"DB_SSLMODE"`
	MaxOpenConns    int            `json:"max_open_conns,omitempty"`
	MaxIdleConns    int            `json:"max_idle_conns,omitempty"`
	ConnMaxIdleTime timex.Duration `json:"conn_max_idle_time,omitempty"`
	ConnMaxLifetime timex.Duration `json:"conn_max_lifetime,omitempty"`
	PingTimeout     timex.Duration `json:"ping_timeout,omitempty"`
}

func (d *DB) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("driver", d.Driver),
		slog.String("host", d.Host),
		slog.Int("port", d.Port),
		slog.String("name", d.Name),
		slog.String("ssl_mode", d.SSLMode),
		slog.Int("max_open_conns", d.MaxOpenConns),
		slog.Int("max_idle_conns", d.MaxIdleConns),
	)
}

type JWT struct {
	JTILength  uint32         `json:"jti_length,omitempty"`
	Issuer     string         `json:"issuer,omitempty"`
	TTL        timex.Duration `json:"ttl,omitempty"`
	RefreshTTL timex.Duration `json:"refresh_ttl,omitempty"`
}

type Cookie struct {
	Name   string         `json:"name,omitempty"`
	MaxAge timex.Duration `json:"max_age,omitempty"`
}

type CSRF struct {
	CookieName string         `json:"cookie_name,omitempty"`
	HeaderName string         `json:"header_name,omitempty"`
	TokenLen   uint32         `json:"token_len,omitempty"`
	MaxAge     timex.Duration `json:"max_age,omitempty"`
}

type Email struct {
	Templates string         `json:"templates,omitempty"`
	Layout    string         `json:"layout,omitempty"`
	Sender    string         `json:"sender,omitempty" env:"EMAIL_SENDER"`
	VerifyTTL timex.Duration `json:"verify_ttl,omitempty"`
	ResetTTL  timex.Duration `json:"reset_ttl,omitempty"`
}

type SMTP struct {
	Host     string `json:"host,omitempty" env:"SMTP_HOST"`
	Port     int    `json:"port,omitempty" env:"SMTP_PORT"`
	User     string `json:"-" env:"SMTP_USER"`
	Password string `json:"-" env:"SMTP_PASS"`
}

func (s *SMTP) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("host", s.Host),
		slog.Int("port", s.Port),
	)
}

type Argon2 struct {
	Memory     uint32 `json:"memory,omitempty"`
	Iterations uint32 `json:"iterations,omitempty"`
	Threads    uint8  `json:"threads,omitempty"`
	SaltLength uint32 `json:"salt_length,omitempty"`
	KeyLength  uint32 `json:"key_length,omitempty"`
}

type APIKey struct {
	Header         string  `json:"header,omitempty"`
	SecretLength   uint32  `json:"secret_length,omitempty"`
	RateLimit      float64 `json:"rate_limit,omitempty" env:"API_KEY_RATE_LIMIT"`
	Burst          int     `json:"burst,omitempty" env:"API_KEY_BURST"`
	LimiterMaxKeys int     `json:"limiter_max_keys,omitempty"`
}

type Webhook struct {
	PollInterval       timex.Duration `json:"poll_interval,omitempty"`
	BatchSize          int            `json:"batch_size,omitempty"`
	Concurrency        int            `json:"concurrency,omitempty"`
	Timeout            timex.Duration `json:"timeout,omitempty"`
	MaxAttempts        int            `json:"max_attempts,omitempty"`
	BaseBackoff        timex.Duration `json:"base_backoff,omitempty"`
	MaxBackoff         timex.Duration `json:"max_backoff,omitempty"`
	Lease              timex.Duration `json:"lease,omitempty"`
	SignatureTolerance timex.Duration `json:"signature_tolerance,omitempty"`
	SecretLength       uint32         `json:"secret_length,omitempty"`
	MaxPayloadBytes    int64          `json:"max_payload_bytes,omitempty"`
	AllowInsecure      bool           `json:"allow_insecure,omitempty" env:"WEBHOOK_ALLOW_INSECURE"`
	Disabled           bool           `json:"disabled,omitempty" env:"WEBHOOK_DISPATCHER_DISABLED"`
}

type Search struct {
	DefaultLimit int `json:"default_limit,omitempty"`
	MaxLimit     int `json:"max_limit,omitempty"`
	Window       int `json:"window,omitempty"`
}

type CORS struct {
	AllowedOrigins []string `json:"allowed_origins,omitempty" env:"CORS_ALLOWED_ORIGINS"`
	AllowedHeaders []string `json:"allowed_headers,omitempty"`
}

type Config struct {
	App     *App     `json:"app,omitempty"`
	Server  *Server  `json:"server,omitempty"`
	DB      *DB      `json:"db,omitempty"`
	JWT     *JWT     `json:"jwt,omitempty"`
	Cookie  *Cookie  `json:"cookie,omitempty"`
	CSRF    *CSRF    `json:"csrf,omitempty"`
	Email   *Email   `json:"email,omitempty"`
	SMTP    *SMTP    `json:"smtp,omitempty"`
	Argon2  *Argon2  `json:"argon2,omitempty"`
	APIKey  *APIKey  `json:"api_key,omitempty"`
	Webhook *Webhook `json:"webhook,omitempty"`
	Search  *Search  `json:"search,omitempty"`
	CORS    *CORS    `json:"cors,omitempty"`
}

func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("app", c.App),
		slog.Any("server", c.Server),
		slog.Any("db", c.DB),
		slog.Any("jwt", c.JWT),
		slog.Any("cookie", c.Cookie),
		slog.Any("csrf", c.CSRF),
		slog.Any("email", c.Email),
		slog.Any("smtp", c.SMTP),
		slog.Any("argon2", c.Argon2),
		slog.Any("api_key", c.APIKey),
		slog.Any("webhook", c.Webhook),
		slog.Any("search", c.Search),
		slog.Any("cors", c.CORS),
	)
}

// Load reads the JSON config file, applies environment overrides and defaults, and validates the result.
func Load(cfgFile string) (*Config, error) {
	slog.Info("Loading config...")

	cfg, err := parseFile(cfgFile)
	if err != nil {
		return nil, err
	}

	if err := env.OverrideStruct(cfg); err != nil {
		return nil, fmt.Errorf("override config with env: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slog.Info("Config loaded.", "config_file", cfgFile, slog.Any("config", cfg))
	return cfg, nil
}

func parseFile(cfgFile string) (*Config, error) {
	cfgFile = filepath.Clean(cfgFile)
	contents, err := os.ReadFile(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", cfgFile, err)
	}

	var cfg Config
	if err := json.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("decode json config %s: %w", cfgFile, err)
	}

	return &cfg, nil
}

// Validate reports settings the server cannot run without.
func (c *Config) Validate() error {
	var errs []error

	if len(c.App.Key) < minKeyLength {
		errs = append(errs, fmt.Errorf("APP_KEY must be at least %d characters", minKeyLength))
	}

	if c.Webhook.BaseBackoff.Duration > c.Webhook.MaxBackoff.Duration {
		errs = append(errs, errors.New("webhook.base_backoff must not exceed webhook.max_backoff"))
	}

	if c.Search.DefaultLimit > c.Search.MaxLimit {
		errs = append(errs, errors.New("search.default_limit must not exceed search.max_limit"))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func setDefault[T comparable](field *T, val T) {
	var zero T
	if *field == zero {
		*field = val
	}
}

func setDefaultDuration(field *timex.Duration, val time.Duration) {
	if field.Duration == 0 {
		field.Duration = val
	}
}

func (c *Config) applyDefaults() {
	setDefault(&c.App.Env, "development")
	setDefault(&c.App.LogLevel, "info")

	setDefault(&c.Server.Port, 8888)
	setDefault(&c.Server.MaxBodyBytes, 1<<20)
	setDefaultDuration(&c.Server.ReadTimeout, 10*time.Second)
	setDefaultDuration(&c.Server.WriteTimeout, 10*time.Second)
	setDefaultDuration(&c.Server.IdleTimeout, time.Minute)
	setDefaultDuration(&c.Server.ShutdownTimeout, 10*time.Second)

	setDefault(&c.DB.Driver, "pgx")
	setDefault(&c.DB.SSLMode, "disable")
	setDefault(&c.DB.Port, 5432)
	setDefaultDuration(&c.DB.PingTimeout, 5*time.Second)

	setDefault(&c.JWT.JTILength, 8)
	setDefault(&c.JWT.Issuer, "hireloop")
	setDefaultDuration(&c.JWT.TTL, 15*time.Minute)
	setDefaultDuration(&c.JWT.RefreshTTL, 7*24*time.Hour)

	setDefault(&c.Cookie.Name, "refresh_token")
	setDefaultDuration(&c.Cookie.MaxAge, 7*24*time.Hour)

	setDefault(&c.CSRF.CookieName, "csrf_token")
	setDefault(&c.CSRF.HeaderName, "X-CSRF-Token")
	setDefault(&c.CSRF.TokenLen, 32)
	setDefaultDuration(&c.CSRF.MaxAge, 12*time.Hour)

	setDefault(&c.Email.Templates, "web/templates")
	setDefault(&c.Email.Layout, "layout.html")
	setDefaultDuration(&c.Email.VerifyTTL, 24*time.Hour)
	setDefaultDuration(&c.Email.ResetTTL, time.Hour)

	setDefault(&c.Argon2.Memory, 64*1024)
	setDefault(&c.Argon2.Iterations, 3)
	setDefault(&c.Argon2.Threads, 2)
	setDefault(&c.Argon2.SaltLength, 16)
	setDefault(&c.Argon2.KeyLength, 32)

	setDefault(&c.APIKey.Header, "X-API-Key")
	setDefault(&c.APIKey.SecretLength, 32)
	setDefault(&c.APIKey.RateLimit, 10)
	setDefault(&c.APIKey.Burst, 20)
	setDefault(&c.APIKey.LimiterMaxKeys, 10000)

	setDefaultDuration(&c.Webhook.PollInterval, 2*time.Second)
	setDefault(&c.Webhook.BatchSize, 50)
	setDefault(&c.Webhook.Concurrency, 8)
	setDefaultDuration(&c.Webhook.Timeout, 10*time.Second)
	setDefault(&c.Webhook.MaxAttempts, 8)
	setDefaultDuration(&c.Webhook.BaseBackoff, 30*time.Second)
	setDefaultDuration(&c.Webhook.MaxBackoff, 6*time.Hour)
	setDefaultDuration(&c.Webhook.Lease, 5*time.Minute)
	setDefaultDuration(&c.Webhook.SignatureTolerance, 5*time.Minute)
	setDefault(&c.Webhook.SecretLength, 32)
	setDefault(&c.Webhook.MaxPayloadBytes, 256<<10)

	setDefault(&c.Search.DefaultLimit, 20)
	setDefault(&c.Search.MaxLimit, 100)
	setDefault(&c.Search.Window, 1000)

	if len(c.CORS.AllowedHeaders) == 0 {
		c.CORS.AllowedHeaders = []string{"Content-Type", "Authorization", c.CSRF.HeaderName, c.APIKey.Header}
	}
}
