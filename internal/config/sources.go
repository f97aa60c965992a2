package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

func findUserConfigFile() string {
	p := filepath.Join(expandPath(DefaultDataDir), ConfigFileName)
	if fileExists(p) {
		return p
	}
	return ""
}

func findProjectConfigFile() string {
	for _, name := range []string{ConfigFileName, "." + ConfigFileName} {
		if fileExists(name) {
			return name
		}
	}
	return ""
}

// loadDotEnv exports variables from path without overriding ones already set.
// A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
