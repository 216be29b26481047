package config

import "time"

func loadTestConfig(cfg *Config) {
	cfg.DatabaseConnectRetryCount = 1
	cfg.DatabaseConnectRetryDelay = 0
	cfg.ServerHost = "127.0.0.1"
	cfg.ServerPort = 0
	cfg.WorkerProcesses = 1
}

// NewForTest returns a config with sane defaults for tests, without reading
// files or the environment.
func NewForTest() *Config {
	return &Config{
		DatabaseBusyTimeout:       5 * time.Second,
		DatabaseConnectRetryCount: 1,
		DatabaseConnectRetryDelay: 0,
		DatabaseFilePath:          ":memory:",
		DatabaseMaxRetries:        3,
		RemoteSearchTimeout:       10 * time.Second,
		ServerHost:                "127.0.0.1",
		WorkerProcesses:           1,
		UserConfig:                loadDefaultUserConfig(),
	}
}
