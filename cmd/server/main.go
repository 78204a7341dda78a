package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/tasklite/backend/api/handler"
	"github.com/tasklite/backend/internal/config"
	"github.com/tasklite/backend/internal/infrastructure/monitor"
	pgInfra "github.com/tasklite/backend/internal/infrastructure/postgres"
	redisInfra "github.com/tasklite/backend/internal/infrastructure/redis"
	"github.com/tasklite/backend/internal/middleware"
	"github.com/tasklite/backend/internal/router"
	"github.com/tasklite/backend/internal/services/lifecycle"
	"github.com/tasklite/backend/pkg/httpcontext"
	"github.com/tasklite/backend/pkg/logger"
	"github.com/tasklite/backend/repository/postgres"
	redisRepo "github.com/tasklite/backend/repository/redis"
	"github.com/tasklite/backend/usecase"
	taskUC "github.com/tasklite/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	var listCache usecase.ListCache
	var mon *monitor.Monitor
	if cfg.Cache.Enabled {
		redisClient, err := redisInfra.NewClient(cfg.Cache)
		if err != nil {
			zapLogger.Fatal("redis connection failed", zap.Error(err))
		}
		manager.Register("redis", func(ctx context.Context) error {
			return redisClient.Close()
		})
		listCache = redisRepo.NewTaskCache(redisClient, cfg.Cache.TTL)
		mon = monitor.New(pool, redisClient, 10*time.Second, zapLogger)
	} else {
		mon = monitor.New(pool, nil, 10*time.Second, zapLogger)
	}

	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	taskRepo := postgres.NewTaskRepository(pool)
	taskUseCase := taskUC.New(taskRepo, listCache, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Task:   apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	r := router.New(handlers, middleware.CORS(cfg.CORS.Origin))
	r.GlobalOPTIONS = middleware.CORSPreflight(cfg.CORS.Origin)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
