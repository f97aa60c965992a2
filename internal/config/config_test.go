package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the working directory at fresh temp dirs and
// clears TASKMAN_* variables for the duration of the test.
func isolate(t *testing.T) (home, wd string) {
	t.Helper()
	home, wd = t.TempDir(), t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{
		"TASKMAN_NAME", "TASKMAN_STORE", "TASKMAN_DATA_DIR", "TASKMAN_KEY",
		"TASKMAN_THEME", "TASKMAN_LOG_LEVEL", "TASKMAN_LOG_FORMAT", "TASKMAN_LOG_FILE",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(wd))
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return home, wd
}

func load(t *testing.T, args ...string) (*Config, *flag.FlagSet) {
	t.Helper()
	fs := flag.NewFlagSet("taskman", flag.ContinueOnError)
	cfg, err := Load(fs, args)
	require.NoError(t, err)
	return cfg, fs
}

func TestDefaults(t *testing.T) {
	home, _ := isolate(t)

	cfg, fs := load(t)

	assert.NotEmpty(t, cfg.Name)
	assert.Equal(t, StoreJSON, cfg.Store)
	assert.Equal(t, filepath.Join(home, ".taskman"), cfg.DataDir)
	assert.Equal(t, DefaultKey, cfg.Key)
	assert.Equal(t, DefaultTheme, cfg.Theme)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, filepath.Join(home, ".taskman", DefaultLogFile), cfg.LogPath())
	assert.Equal(t, filepath.Join(home, ".taskman", "taskman.db"), cfg.SQLitePath())
	assert.Empty(t, fs.Args())
}

func TestUserThenProjectFile(t *testing.T) {
	home, wd := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".taskman"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".taskman", ConfigFileName),
		[]byte("name = \"User File\"\ntheme = \"neon\"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(wd, ConfigFileName),
		[]byte("theme = \"mono\"\nstore = \"sqlite\"\ndata_dir = \"data\"\n"), 0o644))

	cfg, _ := load(t)
	cwd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, "User File", cfg.Name)
	assert.Equal(t, "mono", cfg.Theme)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, filepath.Join(cwd, "data"), cfg.DataDir)
}

func TestEnvOverridesFiles(t *testing.T) {
	_, wd := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(wd, ConfigFileName), []byte("name = \"File\"\n"), 0o644))
	t.Setenv("TASKMAN_NAME", "Env")
	t.Setenv("TASKMAN_KEY", "todo")

	cfg, _ := load(t)

	assert.Equal(t, "Env", cfg.Name)
	assert.Equal(t, "todo", cfg.Key)
}

func TestDotEnv(t *testing.T) {
	_, wd := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(wd, DotEnvFileName), []byte("TASKMAN_THEME=neon\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("TASKMAN_THEME") })

	cfg, _ := load(t)

	assert.Equal(t, "neon", cfg.Theme)
}

func TestFlagsOverrideEverything(t *testing.T) {
	isolate(t)
	t.Setenv("TASKMAN_STORE", "json")

	cfg, fs := load(t, "--store", "SQLite", "--name", "Flag", "--log-file", "-", "ls", "--group")

	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, "Flag", cfg.Name)
	assert.Equal(t, "", cfg.LogPath())
	assert.Equal(t, []string{"ls", "--group"}, fs.Args())
}

func TestInvalidValues(t *testing.T) {
	isolate(t)

	_, err := Load(flag.NewFlagSet("t", flag.ContinueOnError), []string{"--store", "redis"})
	assert.ErrorContains(t, err, "unknown store")

	_, err = Load(flag.NewFlagSet("t", flag.ContinueOnError), []string{"--key", "  "})
	assert.ErrorContains(t, err, "empty storage key")
}

func TestBlankNameFallsBack(t *testing.T) {
	isolate(t)
	cfg, _ := load(t, "--name", " ")
	assert.Equal(t, FallbackName, cfg.Name)
}

func TestLogPathAbsolute(t *testing.T) {
	cfg := &Config{DataDir: "/data", LogFile: "/var/log/taskman.log"}
	assert.Equal(t, "/var/log/taskman.log", cfg.LogPath())
	cfg.LogFile = ""
	assert.Equal(t, "", cfg.LogPath())
}
