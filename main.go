package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Cyprinus12138/otelgin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/sukarav/paynow-gateway/config"
	"github.com/sukarav/paynow-gateway/handler"
	"github.com/sukarav/paynow-gateway/observability"
	"github.com/sukarav/paynow-gateway/service"
)

const paynowTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		slog.InfoContext(ctx, "No .env file loaded, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "Invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	shutdown, err := observability.Setup(ctx, cfg.ServiceName)
	if err != nil {
		slog.ErrorContext(ctx, "Error setting up OpenTelemetry", slog.Any("error", err))
	}
	if shutdown != nil {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				slog.ErrorContext(ctx, "Error during telemetry shutdown", slog.Any("error", err))
			}
		}()
	}

	client := resty.New().
		SetTimeout(paynowTimeout).
		SetTransport(otelhttp.NewTransport(http.DefaultTransport))

	paynowService := service.NewPaynowService(cfg, client)
	orderHandler := handler.NewOrderHandler(cfg, paynowService)

	router := gin.Default()
	router.Use(otelgin.Middleware(cfg.ServiceName))
	router.Use(cors.New(corsConfig(cfg.CORSOrigin)))
	orderHandler.Register(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		slog.InfoContext(ctx, "HTTP server running", slog.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "HTTP server error", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP shutdown error", slog.Any("error", err))
	}
	slog.Info("Application shutdown complete")
}

func corsConfig(origin string) cors.Config {
	cfg := cors.DefaultConfig()
	if origin == "" || origin == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = []string{origin}
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	return cfg
}
