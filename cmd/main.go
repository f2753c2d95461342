package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smart_irrigation/internal/client"
	"smart_irrigation/internal/handlers"
	"smart_irrigation/internal/logger"
	"smart_irrigation/internal/server"
	"smart_irrigation/internal/service"
	"smart_irrigation/internal/store"

	"github.com/spf13/viper"
)

func main() {
	// load config.yml first so the log level is configurable
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(viper.GetString("log.level"))

	// wire dependencies
	telemetryStore := store.NewTelemetryStore()
	telemetryClient := client.NewTelemetryClient(
		viper.GetString("telemetry.base_url"),
		viper.GetString("telemetry.path"),
		viper.GetString("telemetry.irrigation_path"),
		durationMs("telemetry.timeout_ms", 10*time.Second),
	)
	weatherClient := client.NewWeatherClient(
		viper.GetString("weather.base_url"),
		viper.GetString("weather.path"),
		durationMs("weather.timeout_ms", 10*time.Second),
	)

	services, err := service.NewService(serviceConfig(), telemetryStore, telemetryClient, weatherClient, log)
	if err != nil {
		log.Fatalw("failed to wire services", "err", err)
	}
	apiHandler := handlers.NewHandler(services, log)

	// context for background pollers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	services.Telemetry.Start(ctx)
	services.Weather.Start(ctx)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, services, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	setDefaults()
	return viper.ReadInConfig()
}

func setDefaults() {
	viper.SetDefault("log.level", logger.InfoLevel)
	viper.SetDefault("telemetry.path", "/api/telemetry")
	viper.SetDefault("telemetry.irrigation_path", "/api/leituras/irrigacao-manual")
	viper.SetDefault("telemetry.poll_interval_ms", 10000)
	viper.SetDefault("weather.path", "/api/clima")
	viper.SetDefault("weather.poll_interval_ms", 600000)
	viper.SetDefault("weather.latitude", 2.9087)
	viper.SetDefault("weather.longitude", -61.3039)
	viper.SetDefault("freshness.threshold_minutes", 2)
	viper.SetDefault("status.policy", service.PolicyMoisture)
	viper.SetDefault("recommendation.variant", service.VariantDetailed)
}

func serviceConfig() service.Config {
	return service.Config{
		PollIntervalMs:        viper.GetInt("telemetry.poll_interval_ms"),
		WeatherIntervalMs:     viper.GetInt("weather.poll_interval_ms"),
		FreshnessMinutes:      viper.GetInt("freshness.threshold_minutes"),
		StatusPolicy:          viper.GetString("status.policy"),
		RecommendationVariant: viper.GetString("recommendation.variant"),
		Latitude:              viper.GetFloat64("weather.latitude"),
		Longitude:             viper.GetFloat64("weather.longitude"),
	}
}

// durationMs reads a millisecond config value with a fallback.
func durationMs(key string, def time.Duration) time.Duration {
	if ms := viper.GetInt(key); ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return def
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, services *service.Service, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop pollers; in-flight fetch completions become no-ops
	services.Telemetry.Stop()
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
