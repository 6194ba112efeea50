package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v9"
	"github.com/gestasai/academy-tutor/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"TUTOR_RUNTIME_PATH" envDefault:".academy-tutor"`

	// Lesson the transports answer about until /lesson switches it
	DefaultLessonID string `env:"TUTOR_DEFAULT_LESSON"`

	// Transport flags
	EnableTelegram bool `env:"ENABLE_TELEGRAM" envDefault:"false"`
	EnableCLI      bool `env:"ENABLE_CLI" envDefault:"true"`

	// Conversation turns handed to the resolver per request
	HistoryWindowSize int `env:"TUTOR_HISTORY_WINDOW" envDefault:"20"`

	// Optional lexicon override (synonym clusters, keywords, negative phrases)
	LexiconPath string `env:"TUTOR_LEXICON_PATH"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "academy.db")
}
