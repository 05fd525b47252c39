package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"artwalk-api/core/cache"
	"artwalk-api/core/config"
	"artwalk-api/core/database"
	"artwalk-api/core/logger"
	"artwalk-api/core/middleware"
	"artwalk-api/core/queue"
	"artwalk-api/modules/chat"
	"artwalk-api/modules/directchat"
	"artwalk-api/modules/event"
	"artwalk-api/modules/favorite"
	"artwalk-api/modules/invitation"
	"artwalk-api/modules/joinrequest"
	"artwalk-api/modules/membership"
	"artwalk-api/modules/notification"
	"artwalk-api/modules/notification/tasks"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Run wires configuration, storage, cache, queue and every feature module,
// then serves HTTP until interrupted.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.InitDB(database.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}

	// Cache and queue degrade gracefully: a missing redis only disables
	// event detail caching and background notification delivery.
	redisClient, err := cache.InitRedis(cache.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Warn("Redis unavailable, caching disabled", "error", err.Error())
		redisClient = nil
	}

	queueCfg := queue.QueueConfig{
		RedisAddr:     cfg.Redis.Addr,
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DB,
	}
	var dispatcher *tasks.Dispatcher
	if redisClient != nil {
		dispatcher = tasks.NewDispatcher(queue.InitQueue(queueCfg))
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RequestID())

	mw := middleware.NewMiddleware(cfg)

	api := e.Group("/api/v1")

	event.Init(api, db, mw, redisClient)
	membership.Init(api, db, mw)
	invitation.Init(api, db, mw, dispatcher)
	joinrequest.Init(api, db, mw, dispatcher)
	chat.Init(api, db, mw)
	directchat.Init(api, db, mw)
	favorite.Init(api, db, mw)
	notificationSvc := notification.Init(api, db, mw)

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	var worker *asynq.Server
	if redisClient != nil {
		worker = queue.NewServer(queueCfg)
		mux := asynq.NewServeMux()
		mux.Handle(tasks.TypeNotificationDeliver, tasks.NewHandler(notificationSvc))
		go func() {
			if err := worker.Run(mux); err != nil {
				logger.Error("Task worker stopped", err)
			}
		}()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server stopped", err)
		}
	}()
	logger.Info("Server started", "addr", addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	if worker != nil {
		worker.Shutdown()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(ctx)
}
