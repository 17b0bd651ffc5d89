package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config 保存服務的執行期設定，全部來自環境變數
type Config struct {
	AppEnv  string `envconfig:"APP_ENV" default:"development"`
	AppAddr string `envconfig:"APP_ADDR" default:":8080"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	RedisAddr     string `envconfig:"REDIS_ADDR" required:"true"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	JWTSecret           string        `envconfig:"JWT_SECRET" required:"true"`
	JWTExpiry           time.Duration `envconfig:"JWT_EXPIRY" default:"24h"`
	JWTCookieExpiryDays int           `envconfig:"JWT_COOKIE_EXPIRY_DAYS" default:"90"`

	RateLimitMax    int           `envconfig:"RATE_LIMIT_MAX" default:"25"`
	RateLimitWindow time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"15m"`

	SMTPHost     string `envconfig:"SMTP_HOST" default:"127.0.0.1"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"1025"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	SMTPFrom     string `envconfig:"SMTP_FROM" default:"no-reply@tourbase.local"`

	WorkerCount int `envconfig:"WORKER_COUNT" default:"4"`
}

// Load 從環境變數讀取設定
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsDevelopment 回報是否為開發模式
func (c *Config) IsDevelopment() bool {
	return c != nil && c.AppEnv == "development"
}
