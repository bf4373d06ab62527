package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/diabetes-risk-predictor/internal/cache"
	"github.com/iliyamo/diabetes-risk-predictor/internal/classifier"
	"github.com/iliyamo/diabetes-risk-predictor/internal/config"
	"github.com/iliyamo/diabetes-risk-predictor/internal/diet"
	"github.com/iliyamo/diabetes-risk-predictor/internal/handler"
	"github.com/iliyamo/diabetes-risk-predictor/internal/middleware"
	"github.com/iliyamo/diabetes-risk-predictor/internal/router"
	"github.com/iliyamo/diabetes-risk-predictor/internal/service"
	"github.com/iliyamo/diabetes-risk-predictor/internal/validation"
	"github.com/iliyamo/diabetes-risk-predictor/internal/view"
)

func main() {
	_ = godotenv.Load() // A missing .env is fine; the real environment wins anyway

	cfg, err := config.Load() // Load environment config
	if err != nil {
		panic(err)
	}
	log, err := config.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clf, err := loadClassifier(cfg)
	if err != nil {
		return err
	}
	log.Info("model loaded", zap.String("model", clf.Version()))

	rdb := config.NewRedisClient(log) // nil when Redis is off or unreachable
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}
	predictions := cache.NewPredictions(config.LoadCacheConfig(), rdb)

	var pub service.EventPublisher
	if cfg.EventsEnabled {
		pub = &service.AMQPPublisher{URL: cfg.AMQPURL, Log: log}
		log.Info("prediction events enabled")
	}

	var gen diet.Generator
	if cfg.GeminiAPIKey != "" {
		g, err := diet.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Warn("diet generator unavailable, using built-in plans", zap.Error(err))
		} else {
			gen = g
			log.Info("diet generator ready", zap.String("model", g.Model()))
		}
	} else {
		log.Info("no Gemini API key, diet plans use built-in suggestions")
	}

	renderer, err := view.New()
	if err != nil {
		return err
	}

	var cacheSvc service.PredictionCache
	if predictions != nil {
		cacheSvc = predictions
	}
	predict := handler.NewPredictHandler(service.NewPredictionService(clf, cacheSvc, pub, log), log)
	plans := handler.NewDietHandler(service.NewDietService(gen, cfg.GeminiTimeout, log))

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Validator = validation.New()
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(log))

	router.RegisterRoutes(e, predict, plans, middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, log))

	addr := ":" + cfg.Port
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return e.Shutdown(sctx)
	})
	return g.Wait()
}

func loadClassifier(cfg config.Config) (classifier.Classifier, error) {
	if cfg.ModelPath == "" {
		return classifier.Default()
	}
	return classifier.LoadFile(cfg.ModelPath)
}
