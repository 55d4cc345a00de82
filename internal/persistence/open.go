package persistence

import (
	"errors"
	"strings"

	"slbstore/internal/persistence/interfaces"
	"slbstore/internal/providers"
	"slbstore/internal/structures"
)

// NewPersister initializes the configured storage driver for the persisted
// image. Driver values:
//   - "file":   zstd-compressed JSON blob, atomic rename on every save
//   - "sqlite": SQLite database file
func NewPersister(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) (interfaces.PersisterInterface, error) {
	path := strings.TrimSpace(conf.Persistence.FilePath)
	if path == "" {
		return nil, errors.New("persistence.filePath is required")
	}

	driver := strings.ToLower(strings.TrimSpace(conf.Persistence.Driver))
	switch driver {
	case "", "file":
		return NewFileManager(path, compressor, logger), nil
	case "sqlite", "sqlite3":
		return openSQLite(path, logger)
	default:
		return nil, errors.New("unknown persistence driver: " + driver)
	}
}
