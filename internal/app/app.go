// Package app wires configuration, storage and the command engine into a session.
package app

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/MihkelHunter/kif/internal/command"
	"github.com/MihkelHunter/kif/internal/config"
	"github.com/MihkelHunter/kif/internal/logging"
	"github.com/MihkelHunter/kif/internal/store"
	"github.com/MihkelHunter/kif/internal/todo"
)

// Session is an open task list behind a command engine.
type Session struct {
	Config config.Config
	Engine *command.Engine
}

// Open loads the config from v and cfgFile, then opens the configured store.
// The caller must Close the session.
func Open(v *viper.Viper, cfgFile string) (*Session, error) {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return nil, err
	}
	if cfg.Debug && !logging.DebugEnabled() {
		logging.Init(true)
	}
	return OpenConfig(cfg)
}

// OpenConfig opens a session for an already loaded config.
func OpenConfig(cfg config.Config) (*Session, error) {
	repo, err := store.Open(cfg.Storage)
	if err != nil {
		return nil, err
	}
	svc, err := todo.NewService(repo, todo.WithListClearsUndo(cfg.Undo.ListClears))
	if err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("open %s: %w", cfg.Storage.Path, err)
	}
	log.Debug().Str("driver", cfg.Storage.Driver).Str("path", cfg.Storage.Path).Msg("session opened")
	return &Session{Config: cfg, Engine: command.New(svc)}, nil
}

// Close releases the store.
func (s *Session) Close() {
	if err := s.Engine.Service().Close(); err != nil {
		log.Error().Err(err).Msg("close store")
	}
}
