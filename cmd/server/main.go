package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/faizanfirdousi/roast-my-gpa/common/id"
	"github.com/faizanfirdousi/roast-my-gpa/common/llm"
	"github.com/faizanfirdousi/roast-my-gpa/common/logger"
	"github.com/faizanfirdousi/roast-my-gpa/common/otel"
	"github.com/faizanfirdousi/roast-my-gpa/core/config"
	"github.com/faizanfirdousi/roast-my-gpa/internal/http/middleware"
	httprouter "github.com/faizanfirdousi/roast-my-gpa/internal/http/router"
	"github.com/faizanfirdousi/roast-my-gpa/internal/pdftext"
	"github.com/faizanfirdousi/roast-my-gpa/internal/service"
	"github.com/faizanfirdousi/roast-my-gpa/internal/store"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "roast-my-gpa starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	var cache store.RoastCache = store.NoopRoastCache{}
	if cfg.Cache.Enabled() {
		redisClient, err := store.NewRedisClient(ctx, cfg.Cache.RedisURL)
		if err != nil {
			slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
			os.Exit(1)
		}
		cache = store.NewRedisRoastCache(redisClient, cfg.Cache.KeyPrefix, cfg.Cache.TTL, slog.Default())
		slog.InfoContext(ctx, "roast cache enabled", "prefix", cfg.Cache.KeyPrefix, "ttl", cfg.Cache.TTL)
	} else {
		slog.InfoContext(ctx, "roast cache disabled (no REDIS_URL)")
	}
	defer cache.Close()

	llmClient, err := llm.New(llm.Config{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
		Model:    cfg.LLM.Model,
		Timeout:  cfg.LLM.Timeout,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create llm client", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "llm client ready", "provider", cfg.LLM.Provider, "model", llmClient.Model())

	services := service.NewServices(llmClient, cache, cfg.LLM)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, services *service.Services) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxUploadBytes

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger("/health"))
	router.Use(middleware.CORS(cfg.FrontendURL))

	httprouter.SetupRoutes(router, services, httprouter.RouterConfig{
		MaxUploadBytes: cfg.MaxUploadBytes,
		PDF:            pdftext.NewExtractor(),
	})

	return router
}

const banner = `
██████╗  ██████╗  █████╗ ███████╗████████╗    ███╗   ███╗██╗   ██╗     ██████╗ ██████╗  █████╗
██╔══██╗██╔═══██╗██╔══██╗██╔════╝╚══██╔══╝    ████╗ ████║╚██╗ ██╔╝    ██╔════╝ ██╔══██╗██╔══██╗
██████╔╝██║   ██║███████║███████╗   ██║       ██╔████╔██║ ╚████╔╝     ██║  ███╗██████╔╝███████║
██╔══██╗██║   ██║██╔══██║╚════██║   ██║       ██║╚██╔╝██║  ╚██╔╝      ██║   ██║██╔═══╝ ██╔══██║
██║  ██║╚██████╔╝██║  ██║███████║   ██║       ██║ ╚═╝ ██║   ██║       ╚██████╔╝██║     ██║  ██║
╚═╝  ╚═╝ ╚═════╝ ╚═╝  ╚═╝╚══════╝   ╚═╝       ╚═╝     ╚═╝   ╚═╝        ╚═════╝ ╚═╝     ╚═╝  ╚═╝
`
