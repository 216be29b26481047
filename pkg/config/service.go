package config

import (
	"github.com/pkg/errors"
)

type Service struct {
	config *Config
}

type UpdateUserConfigOptions struct {
	UpdateFile bool
}

func NewService(cfg *Config) *Service {
	return &Service{config: cfg}
}

func (s *Service) RetrieveUserConfig() (*UserConfig, error) {
	return s.config.UserConfig, nil
}

// UpdateUserConfig persists the runtime settings back to disk. Callers set
// UpdateFile only when a value actually changed, so a no-op PATCH skips the
// write.
func (s *Service) UpdateUserConfig(userConfig *UserConfig, opts UpdateUserConfigOptions) error {
	if !opts.UpdateFile {
		return nil
	}

	return errors.WithStack(saveUserConfigFile(userConfig, s.config.UserConfigFilePath))
}
