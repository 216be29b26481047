package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

type Config struct {
	DatabaseBusyTimeout       time.Duration `koanf:"database_busy_timeout"`
	DatabaseConnectRetryCount int           `koanf:"database_connect_retry_count"`
	DatabaseConnectRetryDelay time.Duration `koanf:"database_connect_retry_delay"`
	DatabaseDebug             bool          `koanf:"database_debug"`
	DatabaseFilePath          string        `koanf:"database_file_path"`
	DatabaseMaxRetries        int           `koanf:"database_max_retries"`
	Hostname                  string        `koanf:"-"`
	PodcastDirectoryURL       string        `koanf:"podcast_directory_url"`
	RadioDirectoryURL         string        `koanf:"radio_directory_url"`
	RemoteSearchTimeout       time.Duration `koanf:"remote_search_timeout"`
	ServerHost                string        `koanf:"server_host"`
	ServerPort                int           `koanf:"server_port"`
	WorkerProcesses           int           `koanf:"worker_processes"`

	UserConfig         *UserConfig `koanf:"-"`
	UserConfigFilePath string      `koanf:"-"`
}

const (
	environmentENV = "ENVIRONMENT"
	configFileENV  = "CONFIG_FILE"
)

// New loads configuration with the following precedence (lowest to highest):
// built-in defaults, the YAML file pointed at by CONFIG_FILE, environment
// variables.
func New() (*Config, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cfg := &Config{
		DatabaseBusyTimeout:       5 * time.Second,
		DatabaseConnectRetryCount: 5,
		DatabaseConnectRetryDelay: 2 * time.Second,
		DatabaseMaxRetries:        3,
		Hostname:                  hostname,
		PodcastDirectoryURL:       "https://itunes.apple.com",
		RadioDirectoryURL:         "https://de1.api.radio-browser.info/json",
		RemoteSearchTimeout:       10 * time.Second,
		ServerPort:                3689,
		WorkerProcesses:           2,
	}

	switch os.Getenv(environmentENV) {
	case "development", "":
		loadDevelopmentConfig(cfg)
	case "test":
		loadTestConfig(cfg)
	case "production":
		loadProductionConfig(cfg)
	}

	k := koanf.New(".")

	configFile := os.Getenv(configFileENV)
	if configFile == "" {
		configFile = "/config/harmonia.yaml"
	}
	if _, err := os.Stat(configFile); err == nil {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	// Environment variables override file values: DATABASE_FILE_PATH maps to
	// database_file_path.
	err = k.Load(env.Provider("", ".", strings.ToLower), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.WithStack(err)
	}

	if cfg.DatabaseFilePath == "" {
		return nil, errors.New(missingRequired("DATABASE_FILE_PATH", "database_file_path"))
	}

	userConfigPath := userConfigFilePath()
	userConfig, err := loadUserConfig(userConfigPath)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	cfg.UserConfig = userConfig
	cfg.UserConfigFilePath = userConfigPath

	return cfg, nil
}

func missingRequired(envName, fileKey string) string {
	return fmt.Sprintf("missing required config: set %s or %s in the config file", envName, fileKey)
}
