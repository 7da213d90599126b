package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	authConfig "github.com/iurnickita/creditorder/internal/auth/config"
	connectivityConfig "github.com/iurnickita/creditorder/internal/connectivity/config"
	handlerConfig "github.com/iurnickita/creditorder/internal/handler/config"
	loggerConfig "github.com/iurnickita/creditorder/internal/logger/config"
	serviceConfig "github.com/iurnickita/creditorder/internal/service/config"
	storeConfig "github.com/iurnickita/creditorder/internal/store/config"
)

const (
	DefaultAPIURL     = "http://localhost:8080/api"
	DefaultTimeout    = 10 * time.Second
	DefaultConfigFile = "creditorder.yaml"
)

type Config struct {
	Handler      handlerConfig.Config      `yaml:"handler"`
	Service      serviceConfig.Config      `yaml:"service"`
	Auth         authConfig.Config         `yaml:"auth"`
	Store        storeConfig.Config        `yaml:"store"`
	Logger       loggerConfig.Config       `yaml:"logger"`
	Connectivity connectivityConfig.Config `yaml:"connectivity"`
}

func Default() Config {
	return Config{
		Handler: handlerConfig.Config{ServerAddr: ":3000"},
		Service: serviceConfig.Config{
			APIURL:   DefaultAPIURL,
			Timeout:  DefaultTimeout,
			ListSize: 1000,
		},
		Logger:       loggerConfig.Config{LogLevel: "info"},
		Connectivity: connectivityConfig.Config{ProbeInterval: 5 * time.Second},
	}
}

// GetConfig собирает конфигурацию: значения по умолчанию, затем YAML-файл,
// затем .env и переменные окружения.
func GetConfig() (Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := Default()

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = DefaultConfigFile
	}
	if err := loadFile(path, &cfg); err != nil {
		return Config{}, err
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("API_URL"); ok && v != "" {
		cfg.Service.APIURL = v
	}
	if v, ok := os.LookupEnv("API_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("API_TIMEOUT: %w", err)
		}
		cfg.Service.Timeout = d
	}
	if v, ok := os.LookupEnv("API_LIST_SIZE"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("API_LIST_SIZE: %w", err)
		}
		cfg.Service.ListSize = n
	}
	if v, ok := os.LookupEnv("API_TOKEN"); ok {
		cfg.Auth.Token = v
	}
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok && v != "" {
		cfg.Logger.LogLevel = v
	}
	if v, ok := os.LookupEnv("SERVER_ADDRESS"); ok && v != "" {
		cfg.Handler.ServerAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_URI"); ok {
		cfg.Store.DBDsn = v
	}
	if v, ok := os.LookupEnv("PROBE_INTERVAL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("PROBE_INTERVAL: %w", err)
		}
		cfg.Connectivity.ProbeInterval = d
	}
	return nil
}
