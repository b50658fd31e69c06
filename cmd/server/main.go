package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"push-server/internal/config"
	"push-server/internal/handler"
	"push-server/internal/service"
	"push-server/internal/store"
	sharedLogger "push-server/shared/logger"
	sharedMiddleware "push-server/shared/middleware"
	"push-server/shared/notifications"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	ginprometheus "github.com/zsais/go-gin-prometheus"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Setup (Используем shared/logger) ---
	logger, err := sharedLogger.New(sharedLogger.Config{
		Level:    cfg.Log.Level,
		Encoding: "json",
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	zap.ReplaceGlobals(logger)
	zap.L().Info("Logger initialized successfully", zap.String("logLevel", cfg.Log.Level))
	zap.L().Info("Configuration loaded",
		zap.Strings("event_types", notifications.KnownEventTypes()),
		zap.Bool("vapid_configured", cfg.WebPush.Configured()),
	)

	// --- Dependency Injection ---
	subscriptionStore := store.NewSubscriptionStore(logger)

	// Инициализируем отправителя: реальный Web Push, если настроены VAPID-ключи,
	// иначе заглушка (сервис остается рабочим для локальной разработки).
	pushSender, err := service.NewWebPushSender(cfg.WebPush, logger)
	if err != nil {
		zap.L().Fatal("Ошибка инициализации Web Push Sender", zap.Error(err))
	}
	if pushSender == nil {
		zap.L().Warn("Web Push Sender не инициализирован (VAPID-ключи отсутствуют?), используется заглушка.")
		pushSender = service.NewStubPushSender(logger)
	}

	dispatcher := service.NewDispatcher(subscriptionStore, pushSender, cfg.PushSendTimeout, logger)
	pushHandler := handler.NewPushHandler(dispatcher, cfg.WebPush.VAPIDPublicKey, logger)

	// --- HTTP Server Setup (Gin) ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(sharedMiddleware.GinZapLogger(logger))
	router.Use(gin.Recovery())

	// Configure CORS Middleware
	corsConfig := cors.DefaultConfig()
	if allowedOrigins := cfg.GetAllowedOrigins(); len(allowedOrigins) > 0 {
		corsConfig.AllowOrigins = allowedOrigins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
		zap.L().Info("CORSAllowedOrigins not set, allowing default", zap.String("origin", "http://localhost:3000"))
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Health Check Endpoint
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// Register Application Routes
	pushHandler.RegisterRoutes(router)

	// Статика installable-app: дескриптор приложения для браузера.
	router.StaticFile("/manifest.json", "./web/manifest.json")

	// Prometheus Middleware применяем после регистрации роутов.
	p := ginprometheus.NewPrometheus("gin")
	p.Use(router)

	// --- Start HTTP Server ---
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	zap.L().Info("Starting HTTP server", zap.String("port", cfg.ServerPort))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("HTTP Server listen error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP Server forced to shutdown", zap.Error(err))
	}

	zap.L().Info("Server exiting")
}
