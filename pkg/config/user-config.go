package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// UserConfig holds the settings that can be changed at runtime through the
// API, persisted separately from the process-level config.
type UserConfig struct {
	SyncIntervalMinutes int  `json:"sync_interval_minutes"`
	RemoteSearchEnabled bool `json:"remote_search_enabled"`
}

// SyncInterval returns the catalog sync interval as a duration. Zero disables
// scheduled syncs.
func (uc *UserConfig) SyncInterval() time.Duration {
	if uc == nil {
		return 0
	}
	return time.Duration(uc.SyncIntervalMinutes) * time.Minute
}

func userConfigFilePath() string {
	configDir := os.Getenv("CONFIG_DIRECTORY")
	if configDir == "" {
		configDir = "/config"
	}

	return filepath.Join(configDir, "config.json")
}

func loadUserConfig(configFilePath string) (*UserConfig, error) {
	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// File doesn't exist, return defaults
			return loadDefaultUserConfig(), nil
		}
		return nil, errors.WithStack(err)
	}

	userConfig := loadDefaultUserConfig()
	if err := json.Unmarshal(data, userConfig); err != nil {
		return nil, errors.WithStack(err)
	}

	return userConfig, nil
}

func loadDefaultUserConfig() *UserConfig {
	return &UserConfig{
		SyncIntervalMinutes: 60, // 1 hour
		RemoteSearchEnabled: true,
	}
}

func saveUserConfigFile(userConfig *UserConfig, userConfigFilePath string) error {
	// Ensure config directory exists.
	if err := os.MkdirAll(filepath.Dir(userConfigFilePath), 0755); err != nil {
		return errors.WithStack(err)
	}

	data, err := json.MarshalIndent(userConfig, "", "  ")
	if err != nil {
		return errors.WithStack(err)
	}

	err = os.WriteFile(userConfigFilePath, data, 0644) //nolint:gosec
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}
