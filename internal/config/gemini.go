package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/gestasai/academy-tutor/pkg/log"
)

// GeminiConfig seeds the settings store on first start. After that the
// persisted settings record is authoritative (the wizard and /model write it).
type GeminiConfig struct {
	APIKey string `env:"GEMINI_API_KEY"`
	Model  string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`
}

func NewGeminiConfig(ctx context.Context) *GeminiConfig {
	c := &GeminiConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Gemini config")
	}
	return c
}
