package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/gestasai/academy-tutor/internal/config"
	"github.com/gestasai/academy-tutor/internal/gateway"
	"github.com/gestasai/academy-tutor/internal/match"
	"github.com/gestasai/academy-tutor/internal/resolver"
	"github.com/gestasai/academy-tutor/internal/service/command"
	"github.com/gestasai/academy-tutor/internal/service/state"
	"github.com/gestasai/academy-tutor/internal/service/tutor"
	"github.com/gestasai/academy-tutor/internal/storage/sqlite"
	"github.com/gestasai/academy-tutor/internal/transport/cli"
	"github.com/gestasai/academy-tutor/internal/transport/telegram"
	"github.com/gestasai/academy-tutor/internal/vault"
	"github.com/gestasai/academy-tutor/pkg/log"
	"github.com/gestasai/academy-tutor/pkg/srv"
)

// engine bundles everything below the transports so one-shot commands
// (ask, models, lesson) can reuse the same wiring as the long-running bot.
type engine struct {
	appCfg *config.AppConfig
	db     *sql.DB

	vaultRepo    *sqlite.VaultRepo
	settingsRepo *sqlite.SettingsRepo
	lessonsRepo  *sqlite.LessonRepo
	messagesRepo *sqlite.MessagesRepo

	lexicon  *match.Lexicon
	gateway  *gateway.Client
	resolver *resolver.Resolver
	state    *state.TutorState
	tutor    *tutor.Tutor
}

func newEngine(ctx context.Context) (*engine, error) {
	logger := log.FromCtx(ctx)

	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		return nil, err
	}

	appCfg := config.NewAppConfig(ctx)

	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		return nil, err
	}

	e := &engine{
		appCfg:       appCfg,
		db:           db,
		vaultRepo:    sqlite.NewVaultRepo(db),
		settingsRepo: sqlite.NewSettingsRepo(db),
		lessonsRepo:  sqlite.NewLessonRepo(db),
		messagesRepo: sqlite.NewMessagesRepo(db),
	}

	if err := e.seedSettings(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to seed settings from environment")
	}

	e.lexicon = match.DefaultLexicon()
	if appCfg.LexiconPath != "" {
		lx, err := match.LoadLexicon(appCfg.LexiconPath)
		if err != nil {
			logger.Warn().Err(err).Str("path", appCfg.LexiconPath).
				Msg("failed to load lexicon override, using built-in")
		} else {
			e.lexicon = lx
		}
	}

	e.gateway = gateway.New(e.settingsRepo)
	e.resolver = resolver.New(
		match.NewMatcher(e.lexicon),
		vault.New(e.vaultRepo, e.lexicon.Similarity),
		e.gateway,
		e.lexicon,
	)
	e.state = state.New(e.settingsRepo, appCfg.DefaultLessonID)

	router := command.New(command.NewCommands(e.state, e.lessonsRepo))
	e.tutor = tutor.New(appCfg, e.resolver, e.lessonsRepo, e.messagesRepo, e.state, router)

	return e, nil
}

func (e *engine) Close() error {
	return e.db.Close()
}

// seedSettings copies the env-provided Gemini configuration into the
// settings record on first start. A persisted key always wins afterwards.
func (e *engine) seedSettings(ctx context.Context) error {
	current, err := e.settingsRepo.Get(ctx)
	if err != nil {
		return err
	}
	if current.GeminiAPIKey != "" {
		return nil
	}

	gemCfg := config.NewGeminiConfig(ctx)
	if gemCfg.APIKey == "" {
		return nil
	}

	current.GeminiAPIKey = gemCfg.APIKey
	if current.GeminiModel == "" {
		current.GeminiModel = gemCfg.Model
	}
	return e.settingsRepo.Save(ctx, current)
}

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	e, err := newEngine(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize tutor engine")
	}
	services = append(services, srv.NewCleanup(e.Close))

	transports, err := initTransports(ctx, e)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	if len(transports) == 0 {
		logger.Fatal().Msg("no transport enabled, set ENABLE_CLI or ENABLE_TELEGRAM")
	}
	services = append(services, transports...)

	return services
}

func initTransports(ctx context.Context, e *engine) ([]srv.Service, error) {
	var services []srv.Service

	if e.appCfg.EnableTelegram {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, e.tutor)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	if e.appCfg.EnableCLI {
		rl, err := cli.NewReadLine(e.tutor, e.appCfg)
		if err != nil {
			return nil, err
		}
		services = append(services, rl)
	}

	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
