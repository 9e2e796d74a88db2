package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"ocean-predict/internal/config"
	"ocean-predict/internal/db"
	apihttp "ocean-predict/internal/http"
	"ocean-predict/internal/inference"
	"ocean-predict/internal/repository"
	"ocean-predict/internal/scoring"
	"ocean-predict/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	sqlDB := db.SQLDB(pool)
	defer sqlDB.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, sqlDB); err != nil {
			logger.Fatal("db migrate", zap.Error(err))
		}
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := client.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory limiter and cache", zap.Error(err))
			_ = client.Close()
		} else {
			redisClient = client
			defer redisClient.Close()
		}
		cancel()
	}

	items, err := scoring.SurveyItemsFor(cfg.SurveyKeying)
	if err != nil {
		logger.Fatal("survey keying", zap.Error(err))
	}
	engine := scoring.NewEngine(
		scoring.WithSurveyItems(items),
		scoring.WithMinWords(cfg.TextMinWords),
	)

	var provider inference.Provider
	if cfg.InferenceEnabled() {
		timeout := time.Duration(cfg.InferenceTimeoutSeconds) * time.Second
		models := append([]string{cfg.HFModelID}, cfg.HFFallbackModelIDs...)
		providers := make([]inference.Provider, 0, len(models))
		for _, model := range models {
			if model == "" {
				continue
			}
			providers = append(providers, inference.NewHTTPClient(cfg.HFBaseURL, cfg.HFAPIToken, model, timeout, logger))
		}
		provider = inference.NewFallbackProvider(logger, providers...)
		logger.Info("inference provider enabled", zap.Strings("models", models))
	} else {
		logger.Info("inference provider disabled, text uses lexicon scoring")
	}

	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}
	jwtSvc := service.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, 0)

	predictionRepo := repository.NewPgPredictionRepository(pool)
	profileRepo := repository.NewPgProfileRepository(pool)
	reportRepo := repository.NewSQLReportRepository(sqlDB)

	limiter := service.NewRateLimiter(
		redisClient,
		time.Duration(cfg.PredictRateWindowMinutes)*time.Minute,
		cfg.PredictRateLimit,
	)
	statsCache := service.NewStatsCache(redisClient)

	predictionSvc := service.NewPredictionService(logger, engine, provider, predictionRepo, profileRepo, limiter)
	profileSvc := service.NewProfileService(profileRepo)
	statsSvc := service.NewStatsService(logger, reportRepo, statsCache, time.Duration(cfg.StatsCacheTTLSeconds)*time.Second)
	exportSvc := service.NewExportService(statsSvc)

	router := apihttp.NewRouter(apihttp.RouterDeps{
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins,
		JWT:         jwtSvc,
		Profiles:    profileSvc,
		Predictions: apihttp.NewPredictionHandler(logger, predictionSvc),
		Public:      apihttp.NewPublicHandler(logger, predictionSvc),
		Admin:       apihttp.NewAdminHandler(logger, statsSvc, exportSvc),
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
