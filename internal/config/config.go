// Package config provides configuration loading and validation.
package config

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Buyee     BuyeeConfig     `mapstructure:"buyee"`
	Ebay      EbayConfig      `mapstructure:"ebay"`
	Point130  Point130Config  `mapstructure:"point130"`
	FX        FXConfig        `mapstructure:"fx"`
	Arbitrage ArbitrageConfig `mapstructure:"arbitrage"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
}

// BuyeeConfig holds the listing collector configuration.
type BuyeeConfig struct {
	BaseURL           string `mapstructure:"base_url"`
	Category          string `mapstructure:"category"`
	MaxListings       int    `mapstructure:"max_listings"`
	Headless          bool   `mapstructure:"headless"`
	NavTimeoutSec     int    `mapstructure:"nav_timeout_sec"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute"`
}

// EbayConfig holds eBay Browse API credentials and limits. Empty
// credentials disable the provider.
type EbayConfig struct {
	ClientID          string `mapstructure:"client_id"`
	ClientSecret      string `mapstructure:"client_secret"`
	BaseURL           string `mapstructure:"base_url"`
	AuthURL           string `mapstructure:"auth_url"`
	MaxResults        int    `mapstructure:"max_results"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute"`
}

// Enabled reports whether the eBay provider can be used.
func (c *EbayConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// Point130Config holds the 130point sales lookup configuration.
type Point130Config struct {
	BaseURL           string `mapstructure:"base_url"`
	MaxResults        int    `mapstructure:"max_results"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute"`
}

// FXConfig holds exchange rate configuration. FallbackJPYUSD is used when
// the live rate endpoint is unreachable.
type FXConfig struct {
	RateURL        string  `mapstructure:"rate_url"`
	FallbackJPYUSD float64 `mapstructure:"fallback_jpy_usd"`
}

// FallbackJPYUSDDecimal returns the fallback rate as decimal.Decimal.
func (c *FXConfig) FallbackJPYUSDDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.FallbackJPYUSD)
}

// ArbitrageConfig holds scoring weights, cost assumptions and tier
// thresholds. These are loaded once and passed into the score engine as an
// immutable value; nothing reads them globally at scoring time.
type ArbitrageConfig struct {
	FeeRate     float64 `mapstructure:"fee_rate"`
	ShippingUSD float64 `mapstructure:"shipping_usd"`

	MarginWeight      float64 `mapstructure:"margin_weight"`
	ProfitWeight      float64 `mapstructure:"profit_weight"`
	ReliabilityWeight float64 `mapstructure:"reliability_weight"`
	RiskWeight        float64 `mapstructure:"risk_weight"`

	MarginSaturationPct float64 `mapstructure:"margin_saturation_pct"`
	ProfitSaturationUSD float64 `mapstructure:"profit_saturation_usd"`

	StrongBuyScore     float64 `mapstructure:"strong_buy_score"`
	StrongBuyMarginPct float64 `mapstructure:"strong_buy_margin_pct"`
	StrongBuyProfitUSD float64 `mapstructure:"strong_buy_profit_usd"`
	BuyScore           float64 `mapstructure:"buy_score"`
	BuyMarginPct       float64 `mapstructure:"buy_margin_pct"`
	BuyProfitUSD       float64 `mapstructure:"buy_profit_usd"`
	ConsiderScore      float64 `mapstructure:"consider_score"`
	ConsiderMarginPct  float64 `mapstructure:"consider_margin_pct"`
	ConsiderProfitUSD  float64 `mapstructure:"consider_profit_usd"`

	MinScreenScore int  `mapstructure:"min_screen_score"`
	Workers        int  `mapstructure:"workers"`
	TUIMode        bool `mapstructure:"-"` // Set at runtime, not from config file
}

// FeeRateDecimal returns the marketplace fee rate as decimal.Decimal.
func (c *ArbitrageConfig) FeeRateDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.FeeRate)
}

// ShippingUSDDecimal returns the flat shipping cost as decimal.Decimal.
func (c *ArbitrageConfig) ShippingUSDDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.ShippingUSD)
}

// StorageConfig holds result sink configuration. PostgresDSN empty
// disables the database sink; CSV export is always available.
type StorageConfig struct {
	OutputDir   string `mapstructure:"output_dir"`
	PostgresDSN string `mapstructure:"postgres_dsn"`
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	OTLPHeaders    string `mapstructure:"otlp_headers"`
	PrometheusPort int    `mapstructure:"prometheus_port"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("CARB")
	v.AutomaticEnv()

	// Bind env vars to config keys
	bindEnvVars(v)

	// Set defaults
	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.name", "CARB_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.environment", "CARB_ENVIRONMENT", "ENVIRONMENT")
	v.BindEnv("app.log_level", "CARB_LOG_LEVEL", "LOG_LEVEL")

	// Buyee
	v.BindEnv("buyee.base_url", "CARB_BUYEE_BASE_URL")
	v.BindEnv("buyee.max_listings", "CARB_BUYEE_MAX_LISTINGS")
	v.BindEnv("buyee.headless", "CARB_BUYEE_HEADLESS")

	// eBay
	v.BindEnv("ebay.client_id", "CARB_EBAY_CLIENT_ID", "EBAY_CLIENT_ID")
	v.BindEnv("ebay.client_secret", "CARB_EBAY_CLIENT_SECRET", "EBAY_CLIENT_SECRET")
	v.BindEnv("ebay.base_url", "CARB_EBAY_BASE_URL")

	// 130point
	v.BindEnv("point130.base_url", "CARB_POINT130_BASE_URL")

	// FX
	v.BindEnv("fx.rate_url", "CARB_FX_RATE_URL")
	v.BindEnv("fx.fallback_jpy_usd", "CARB_FX_FALLBACK_JPY_USD")

	// Arbitrage
	v.BindEnv("arbitrage.fee_rate", "CARB_FEE_RATE")
	v.BindEnv("arbitrage.shipping_usd", "CARB_SHIPPING_USD")
	v.BindEnv("arbitrage.workers", "CARB_WORKERS")

	// Storage
	v.BindEnv("storage.output_dir", "CARB_OUTPUT_DIR")
	v.BindEnv("storage.postgres_dsn", "CARB_POSTGRES_DSN", "DATABASE_URL")

	// Telemetry
	v.BindEnv("telemetry.enabled", "CARB_OTEL_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.service_name", "CARB_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
	v.BindEnv("telemetry.otlp_endpoint", "CARB_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "card-arbitrage")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	// Buyee defaults
	v.SetDefault("buyee.base_url", "https://buyee.jp")
	v.SetDefault("buyee.category", "2084229064") // Yahoo! Auctions trading cards
	v.SetDefault("buyee.max_listings", 20)
	v.SetDefault("buyee.headless", true)
	v.SetDefault("buyee.nav_timeout_sec", 45)
	v.SetDefault("buyee.requests_per_minute", 12)

	// eBay defaults
	v.SetDefault("ebay.base_url", "https://api.ebay.com")
	v.SetDefault("ebay.auth_url", "https://api.ebay.com/identity/v1/oauth2/token")
	v.SetDefault("ebay.max_results", 50)
	v.SetDefault("ebay.requests_per_minute", 30)

	// 130point defaults
	v.SetDefault("point130.base_url", "https://back.130point.com")
	v.SetDefault("point130.max_results", 50)
	v.SetDefault("point130.requests_per_minute", 10)

	// FX defaults
	v.SetDefault("fx.rate_url", "https://open.er-api.com/v6/latest/JPY")
	v.SetDefault("fx.fallback_jpy_usd", 0.0067)

	// Arbitrage defaults
	v.SetDefault("arbitrage.fee_rate", 0.15)
	v.SetDefault("arbitrage.shipping_usd", 5.0)
	v.SetDefault("arbitrage.margin_weight", 40)
	v.SetDefault("arbitrage.profit_weight", 30)
	v.SetDefault("arbitrage.reliability_weight", 20)
	v.SetDefault("arbitrage.risk_weight", 10)
	v.SetDefault("arbitrage.margin_saturation_pct", 50)
	v.SetDefault("arbitrage.profit_saturation_usd", 100)
	v.SetDefault("arbitrage.strong_buy_score", 70)
	v.SetDefault("arbitrage.strong_buy_margin_pct", 30)
	v.SetDefault("arbitrage.strong_buy_profit_usd", 50)
	v.SetDefault("arbitrage.buy_score", 50)
	v.SetDefault("arbitrage.buy_margin_pct", 20)
	v.SetDefault("arbitrage.buy_profit_usd", 25)
	v.SetDefault("arbitrage.consider_score", 30)
	v.SetDefault("arbitrage.consider_margin_pct", 10)
	v.SetDefault("arbitrage.consider_profit_usd", 10)
	v.SetDefault("arbitrage.min_screen_score", 15)
	v.SetDefault("arbitrage.workers", 4)

	// Storage defaults
	v.SetDefault("storage.output_dir", "./results")

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "card-arbitrage")
	v.SetDefault("telemetry.prometheus_port", 9090)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Buyee.BaseURL == "" {
		return fmt.Errorf("buyee.base_url is required")
	}
	if c.Buyee.MaxListings <= 0 {
		return fmt.Errorf("buyee.max_listings must be positive")
	}
	if c.FX.FallbackJPYUSD <= 0 {
		return fmt.Errorf("fx.fallback_jpy_usd must be positive")
	}
	if c.Arbitrage.FeeRate < 0 || c.Arbitrage.FeeRate >= 1 {
		return fmt.Errorf("arbitrage.fee_rate must be in [0, 1): %v", c.Arbitrage.FeeRate)
	}
	if c.Arbitrage.ShippingUSD < 0 {
		return fmt.Errorf("arbitrage.shipping_usd cannot be negative")
	}
	if c.Arbitrage.Workers < 1 {
		return fmt.Errorf("arbitrage.workers must be at least 1")
	}
	if c.Arbitrage.StrongBuyScore < c.Arbitrage.BuyScore || c.Arbitrage.BuyScore < c.Arbitrage.ConsiderScore {
		return fmt.Errorf("arbitrage tier score thresholds must be descending")
	}
	return nil
}
