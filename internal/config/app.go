package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// QuoteAPI points at the exchange's quote, market info and status endpoints.
type QuoteAPI struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

// Store selects the KeyedMetadataStore backend: "postgres" or "sqlite".
type Store struct {
	Driver     string `mapstructure:"driver"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

type Cache struct {
	MaxItems   int64 `mapstructure:"max_items"`
	RateTTLSec int   `mapstructure:"rate_ttl_sec"`
}

type Scheduler struct {
	PollIntervalSec int `mapstructure:"poll_interval_sec"`
}

// Ledger carries the hex encoded metadata key the wallet's trade ledger is stored under.
type Ledger struct {
	KeyHex string `mapstructure:"key_hex"`
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	DbServer   DbServer   `mapstructure:"db_server"`
	HTTPClient HTTPClient `mapstructure:"http_client"`
	QuoteAPI   QuoteAPI   `mapstructure:"quote_api"`
	Logging    Logging    `mapstructure:"logging"`
	Store      Store      `mapstructure:"store"`
	Cache      Cache      `mapstructure:"cache"`
	Scheduler  Scheduler  `mapstructure:"scheduler"`
	Ledger     Ledger     `mapstructure:"ledger"`
}

func Init() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}
	return Load("config.yaml")
}

// Load reads the yaml file at path, applies defaults and environment overrides.
func Load(path string) (*AppConfig, error) {
	var cfg AppConfig

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetDefault("http_server.port", "8080")
	v.SetDefault("db_server.max_conns", 10)
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("quote_api.base_url", "https://shapeshift.io")
	v.SetDefault("logging.level", "info")
	v.SetDefault("store.driver", "postgres")
	v.SetDefault("store.sqlite_path", "tradeledger.db")
	v.SetDefault("cache.max_items", 1000)
	v.SetDefault("cache.rate_ttl_sec", 30)
	v.SetDefault("scheduler.poll_interval_sec", 30)

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// http env vars
	_ = v.BindEnv("http_server.port", "HTTP_PORT")
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	// exchange and wallet secrets
	_ = v.BindEnv("quote_api.base_url", "QUOTE_API_BASE_URL")
	_ = v.BindEnv("quote_api.api_key", "QUOTE_API_KEY")
	_ = v.BindEnv("ledger.key_hex", "LEDGER_KEY_HEX")

	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("store.driver", "STORE_DRIVER")
	_ = v.BindEnv("store.sqlite_path", "STORE_SQLITE_PATH")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if cfg.Store.Driver != "postgres" && cfg.Store.Driver != "sqlite" {
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}

	return &cfg, nil
}
