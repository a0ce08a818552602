package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/shopspring/decimal"
)

type HTTPServer struct {
	Addr              string        `yaml:"address" env:"HTTP_ADDR" env-default:":3000"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env-default:"5s"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout" env-default:"5s"`
}

// StoreAPI locates the remote REST API that owns products, orders and users.
type StoreAPI struct {
	BaseURL            string        `yaml:"BASE_URL" env:"STORE_API_URL" env-default:"http://localhost:8080"`
	Timeout            time.Duration `yaml:"TIMEOUT" env:"STORE_API_TIMEOUT" env-default:"10s"`
	BreakerMaxFailures uint32        `yaml:"BREAKER_MAX_FAILURES" env:"STORE_API_BREAKER_MAX_FAILURES" env-default:"5"`
	BreakerOpenTimeout time.Duration `yaml:"BREAKER_OPEN_TIMEOUT" env:"STORE_API_BREAKER_OPEN_TIMEOUT" env-default:"30s"`
}

type Session struct {
	Secret       string        `yaml:"SESSION_SECRET" env:"SESSION_SECRET" env-required:"true"`
	TTL          time.Duration `yaml:"SESSION_TTL" env:"SESSION_TTL" env-default:"24h"`
	Capacity     int           `yaml:"SESSION_CAPACITY" env:"SESSION_CAPACITY" env-default:"10000"`
	CookieName   string        `yaml:"COOKIE_NAME" env:"SESSION_COOKIE_NAME" env-default:"storefront_session"`
	SecureCookie bool          `yaml:"SECURE_COOKIE" env:"SESSION_SECURE_COOKIE" env-default:"false"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type RateConfig struct {
	MaxAttempts int64         `yaml:"MAX_ATTEMPTS" env:"MAX_ATTEMPTS" env-default:"5"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"WINDOW_SIZE" env-default:"15m"`
}

type CacheConfig struct {
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
}

type Checkout struct {
	TaxRate     string `yaml:"TAX_RATE" env:"CHECKOUT_TAX_RATE" env-default:"0.10"`
	OffersLimit int    `yaml:"OFFERS_LIMIT" env:"CHECKOUT_OFFERS_LIMIT" env-default:"4"`
}

type SendGrid struct {
	APIKey    string `yaml:"API_KEY" env:"SENDGRID_API_KEY"`
	FromEmail string `yaml:"FROM_EMAIL" env:"SENDGRID_FROM_EMAIL"`
	FromName  string `yaml:"FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"Storefront"`
}

type OTel struct {
	Enabled          bool    `yaml:"ENABLED" env:"OTEL_ENABLED" env-default:"false"`
	ServiceName      string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"storefront"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"http://localhost:4318/v1/traces"`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1.0"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   `yaml:"http_server"`
	StoreAPI     StoreAPI     `yaml:"store_api"`
	Session      Session      `yaml:"session"`
	RedisConnect RedisConnect `yaml:"redis"`
	RateConfig   RateConfig   `yaml:"rateConfig"`
	Cache        CacheConfig  `yaml:"cache"`
	Checkout     Checkout     `yaml:"checkout"`
	SendGrid     SendGrid     `yaml:"sendgrid"`
	OTel         OTel         `yaml:"otel"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "path to the YAML config file")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			configPath = "./config/local.yaml"
		}

	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not load config: %s", err.Error())
	}

	return cfg

}

func LoadConfigFromPath(configPath string) (*Config, error) {

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("can not read config file: %w", err)
	}

	if _, err := cfg.Checkout.Rate(); err != nil {
		return nil, err
	}

	if cfg.Checkout.OffersLimit < 0 {
		return nil, fmt.Errorf("checkout offers limit must not be negative: %d", cfg.Checkout.OffersLimit)
	}

	return &cfg, nil
}

// Rate parses the configured tax rate, e.g. "0.10" for ten percent.
func (c Checkout) Rate() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(c.TaxRate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid checkout tax rate %q: %w", c.TaxRate, err)
	}
	if rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("checkout tax rate must not be negative: %s", c.TaxRate)
	}
	return rate, nil
}

func (r *RedisConnect) GetDSN() string {
	if r.Username == "" && r.Password == "" {
		return fmt.Sprintf("redis://%s:%s/%d", r.Host, r.Port, r.DB)
	}
	return fmt.Sprintf("redis://%s:%s@%s:%s/%d", r.Username, r.Password, r.Host, r.Port, r.DB)
}

func (s SendGrid) Enabled() bool {
	return s.APIKey != "" && s.FromEmail != ""
}
