package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studybrief/internal/cache"
	"studybrief/internal/config"
	"studybrief/internal/quizgen"
	"studybrief/internal/service"
	"studybrief/internal/summarizer"
	"studybrief/internal/transport/rest"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "studybrief",
	})
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}

	if cfg.AI.IsEnabled() {
		logger.Info("summarization model configured",
			"summary", cfg.AI.SummaryModel, "refine", cfg.AI.RefineModel)
	} else {
		logger.Warn("GEMINI_API_KEY not set, using extractive fallback summaries")
	}

	ctx := context.Background()

	// Result cache is optional. Without Redis every request recomputes.
	results := cache.Noop()
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			logger.Fatal("failed to ping redis", "addr", cfg.RedisAddr, "error", err)
		}
		defer rdb.Close()
		results = cache.New(rdb, cfg.CacheTTL)
		logger.Info("connected to redis", "addr", cfg.RedisAddr)
	} else {
		logger.Warn("REDIS_ADDR not set, result caching disabled")
	}

	// Summarization pipeline
	client := summarizer.NewClient(&cfg.AI, cfg.ModelCharCeiling, logger)
	aggregator := summarizer.NewAggregator(
		client, client.CharCeiling(), cfg.Concurrency,
		cfg.SummaryMinWords, cfg.SummaryMaxWords, logger,
	)
	summarySvc := service.NewSummaryService(
		aggregator, results,
		cfg.MaxChunkSize, cfg.ModelCharCeiling, cfg.MaxDocumentChars, logger,
	)

	// Quiz pipeline. Refinement reuses the same model client; quizzes still
	// work without it.
	var refiner quizgen.Refiner
	if cfg.AI.IsEnabled() {
		refiner = client
	}
	assembler := quizgen.NewAssembler(
		quizgen.NewExtractor(),
		quizgen.NewSynthesizer(quizgen.DefaultTermBank()),
		refiner, logger,
	)
	quizSvc := service.NewQuizService(
		assembler, results,
		cfg.QuizQuestionCount, cfg.MaxDocumentChars, logger,
	)

	router := rest.NewRouter(&rest.Container{
		SummaryService: summarySvc,
		QuizService:    quizSvc,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen and serve", "error", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
