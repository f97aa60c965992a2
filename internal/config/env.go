package config

import "os"

// loadFromEnv overrides config from TASKMAN_* environment variables.
func loadFromEnv(cfg *Config) {
	for _, b := range []struct {
		env    string
		target *string
	}{
		{"TASKMAN_NAME", &cfg.Name},
		{"TASKMAN_STORE", &cfg.Store},
		{"TASKMAN_DATA_DIR", &cfg.DataDir},
		{"TASKMAN_KEY", &cfg.Key},
		{"TASKMAN_THEME", &cfg.Theme},
		{"TASKMAN_LOG_LEVEL", &cfg.LogLevel},
		{"TASKMAN_LOG_FORMAT", &cfg.LogFormat},
		{"TASKMAN_LOG_FILE", &cfg.LogFile},
	} {
		if v := os.Getenv(b.env); v != "" {
			*b.target = v
		}
	}
}
