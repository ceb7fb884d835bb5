package store

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/MihkelHunter/kif/internal/config"
	"github.com/MihkelHunter/kif/internal/todo"
)

// Open returns the repository selected by cfg.Driver.
func Open(cfg config.Storage) (todo.Repository, error) {
	log.Debug().Str("driver", cfg.Driver).Str("path", cfg.Path).Msg("opening task storage")
	switch cfg.Driver {
	case config.DriverFile, "":
		fs, err := NewFile(cfg.Path)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case config.DriverSQLite:
		db, err := NewSQLite(cfg.Path)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
