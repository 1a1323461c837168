package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config holds all configuration values
type Config struct {
	Addr         string        `yaml:"addr" validate:"required"`
	Store        string        `yaml:"store" validate:"oneof=memory sqlite"`
	DBPath       string        `yaml:"db_path" validate:"required_if=Store sqlite"`
	Seed         bool          `yaml:"seed"`
	LogLevel     string        `yaml:"log_level" validate:"oneof=trace debug info warn error"`
	LogPretty    bool          `yaml:"log_pretty"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
	CEP          CEPConfig     `yaml:"cep"`
	Redis        RedisConfig   `yaml:"redis"`

	Source string // where the config came from: "defaults" or the yaml path
}

// CEPConfig configures the postal code providers.
type CEPConfig struct {
	Timeout      time.Duration `yaml:"timeout" validate:"gt=0"`
	ViaCEPURL    string        `yaml:"viacep_url" validate:"required,url"`
	BrasilAPIURL string        `yaml:"brasilapi_url" validate:"required,url"`
	CacheTTL     time.Duration `yaml:"cache_ttl" validate:"gte=0"`
}

// RedisConfig enables the CEP cache when Addr is set.
type RedisConfig struct {
	Addr     string `yaml:"addr" validate:"omitempty,hostname_port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" validate:"gte=0"`
}

// Default returns the configuration used when nothing else is provided.
func Default() *Config {
	return &Config{
		Addr:         ":3004",
		Store:        StoreMemory,
		DBPath:       "file:brvalida?mode=memory&cache=shared",
		Seed:         true,
		LogLevel:     "info",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		CEP: CEPConfig{
			Timeout:      5 * time.Second,
			ViaCEPURL:    "https://viacep.com.br/ws",
			BrasilAPIURL: "https://brasilapi.com.br/api/cep/v1",
			CacheTTL:     24 * time.Hour,
		},
		Source: "defaults",
	}
}

// Load loads configuration from YAML file and overrides with env vars if present.
// A .env file in the working directory is read into the environment first.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	// Load from YAML if file exists
	if f, err := os.Open(path); err == nil {
		defer f.Close()
		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		cfg.Source = path
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Addr = ":" + v
	}
	if v := os.Getenv("STORE"); v != "" {
		cfg.Store = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("SEED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SEED: %w", err)
		}
		cfg.Seed = b
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOG_PRETTY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LOG_PRETTY: %w", err)
		}
		cfg.LogPretty = b
	}
	if v := os.Getenv("CEP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CEP_TIMEOUT: %w", err)
		}
		cfg.CEP.Timeout = d
	}
	if v := os.Getenv("VIACEP_URL"); v != "" {
		cfg.CEP.ViaCEPURL = v
	}
	if v := os.Getenv("BRASILAPI_URL"); v != "" {
		cfg.CEP.BrasilAPIURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	return nil
}
