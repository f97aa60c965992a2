package cli

import (
	"fmt"
	"os"

	"github.com/idilsaglam/taskman/internal/config"
	"github.com/idilsaglam/taskman/internal/store"
	"github.com/idilsaglam/taskman/internal/store/jsonstore"
	"github.com/idilsaglam/taskman/internal/store/sqlitestore"
)

// openBackend opens the storage medium named by cfg.Store.
func openBackend(cfg *config.Config) (store.Backend, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir: %w", err)
		}
		return sqlitestore.Open(cfg.SQLitePath())
	case config.StoreJSON, "":
		return jsonstore.New(cfg.DataDir)
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
