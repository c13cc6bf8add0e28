package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timeouts, cookie attributes, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	Cookie    CookieConfig
	Session   SessionConfig
	SMTP      SMTPConfig
	Stripe    StripeConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" default:"5000"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3001"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"false"`
	SameSite string `envconfig:"COOKIE_SAME_SITE" default:"Lax"`
}

type SessionConfig struct {
	// Lifetime of a freshly issued session.
	Lifetime time.Duration `envconfig:"SESSION_LIFETIME" default:"720h"`
	// Sessions expiring within this horizon are proactively replaced.
	RefreshHorizon time.Duration `envconfig:"SESSION_REFRESH_HORIZON" default:"168h"`
}

type SMTPConfig struct {
	Host     string        `envconfig:"SMTP_HOST" default:"localhost"`
	Port     int           `envconfig:"SMTP_PORT" default:"587"`
	User     string        `envconfig:"SMTP_USER" default:""`
	Password string        `envconfig:"SMTP_PASS" default:""`
	From     string        `envconfig:"SMTP_FROM" default:""`
	Timeout  time.Duration `envconfig:"SMTP_TIMEOUT" default:"10s"`
}

type StripeConfig struct {
	SecretKey string `envconfig:"STRIPE_SECRET_KEY" required:"true"`
	Currency  string `envconfig:"STRIPE_CURRENCY" default:"eur"`
}

type RateLimitConfig struct {
	// Requests per second allowed on credential endpoints, per client IP.
	LoginRPS   float64 `envconfig:"RATE_LIMIT_LOGIN_RPS" default:"1"`
	LoginBurst int     `envconfig:"RATE_LIMIT_LOGIN_BURST" default:"5"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func (c *SMTPConfig) FromAddress() string {
	if c.From != "" {
		return c.From
	}
	return c.User
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Cookie: CookieConfig{
			SameSite: "Lax",
		},
		Session: SessionConfig{
			Lifetime:       720 * time.Hour,
			RefreshHorizon: 168 * time.Hour,
		},
		Stripe: StripeConfig{
			SecretKey: "sk_test_dummy",
			Currency:  "eur",
		},
		RateLimit: RateLimitConfig{
			LoginRPS:   100,
			LoginBurst: 100,
		},
	}
}
