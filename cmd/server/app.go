package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/lingo-review/internal/api"
	apiMiddleware "github.com/phrazzld/lingo-review/internal/api/middleware"
	"github.com/phrazzld/lingo-review/internal/config"
	"github.com/phrazzld/lingo-review/internal/content"
	"github.com/phrazzld/lingo-review/internal/domain/distractor"
	"github.com/phrazzld/lingo-review/internal/domain/srs"
	"github.com/phrazzld/lingo-review/internal/platform/sqlstore"
	"github.com/phrazzld/lingo-review/internal/scheduler"
	"github.com/phrazzld/lingo-review/internal/service/auth"
	"github.com/phrazzld/lingo-review/internal/service/quiz"
	"github.com/phrazzld/lingo-review/internal/service/review"
	"github.com/phrazzld/lingo-review/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sqlx.DB

	// Stores
	srsStore         store.SrsStore
	wrongAnswerStore store.WrongAnswerStore
	reviewLogStore   store.ReviewLogStore

	// Services
	srsService    srs.Service
	reviewService review.Service
	quizService   quiz.Service
	tokenService  auth.TokenService

	scheduler *scheduler.Scheduler // nil when the digest is disabled
	router    http.Handler
}

// newApplication wires stores, services, the scheduler and the router on top
// of an open database.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sqlx.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.tokenService, err = auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	app.srsStore = sqlstore.NewSrsStore(db, logger)
	app.wrongAnswerStore = sqlstore.NewWrongAnswerStore(db, logger)
	app.reviewLogStore = sqlstore.NewReviewLogStore(db, logger)

	app.srsService = srs.NewServiceWithParams(srsParams(cfg.SRS))
	app.reviewService = review.NewService(db, app.srsStore, app.reviewLogStore, app.srsService, logger)

	generator, err := buildGenerator(cfg.Quiz, logger)
	if err != nil {
		return nil, err
	}
	app.quizService = quiz.NewService(db, app.wrongAnswerStore, generator, logger,
		quiz.WithMasteryThreshold(cfg.Quiz.MasteryThreshold))

	if cfg.Scheduler.Enabled {
		app.scheduler = scheduler.New(app.reviewService, nil, cfg.Scheduler, logger)
	}

	app.router = api.NewRouter(api.RouterDeps{
		ReviewService: app.reviewService,
		QuizService:   app.quizService,
		TokenService:  app.tokenService,
		RateLimiter:   apiMiddleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		DB:            db,
		Logger:        logger,
	})

	return app, nil
}

// srsParams converts the srs config section into algorithm parameters.
func srsParams(cfg config.SRSConfig) *srs.Params {
	return srs.NewParams(srs.ParamsConfig{
		MinEaseFactor:     cfg.MinEaseFactor,
		InitialEaseFactor: cfg.InitialEaseFactor,
		FirstInterval:     cfg.FirstInterval,
		SecondInterval:    cfg.SecondInterval,
		FailureInterval:   cfg.FailureInterval,
		MaxInterval:       cfg.MaxInterval,
	})
}

// buildGenerator assembles the distractor generator from the quiz config,
// replacing the embedded bank and content pack when paths are configured.
func buildGenerator(cfg config.QuizConfig, logger *slog.Logger) (*distractor.Generator, error) {
	genCfg := distractor.DefaultConfig()
	genCfg.SameTypeOnly = cfg.SameTypeOnly
	if cfg.MinOptions > 0 {
		genCfg.MinOptions = cfg.MinOptions
	}
	if cfg.MaxPeerDistractors > 0 {
		genCfg.MaxPeerDistractors = cfg.MaxPeerDistractors
	}

	opts := []distractor.Option{distractor.WithConfig(genCfg)}

	if cfg.BankPath != "" {
		f, err := os.Open(cfg.BankPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open distractor bank: %w", err)
		}
		defer f.Close()

		bank, err := distractor.LoadBank(f)
		if err != nil {
			return nil, fmt.Errorf("failed to load distractor bank %s: %w", cfg.BankPath, err)
		}
		opts = append(opts, distractor.WithBank(bank))
		logger.Info("distractor bank loaded", slog.String("path", cfg.BankPath), slog.Int("words", bank.Size()))
	}

	index := content.DefaultIndex()
	if cfg.ContentPackPath != "" {
		f, err := os.Open(cfg.ContentPackPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open content pack: %w", err)
		}
		defer f.Close()

		index, err = content.LoadPack(f)
		if err != nil {
			return nil, fmt.Errorf("failed to load content pack %s: %w", cfg.ContentPackPath, err)
		}
		logger.Info("content pack loaded", slog.String("path", cfg.ContentPackPath), slog.Int("items", index.Len()))
	}
	opts = append(opts, distractor.WithIndex(index))

	return distractor.NewGenerator(opts...), nil
}
