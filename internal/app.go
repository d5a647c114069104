package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sidebard/internal/controllers"
	"sidebard/internal/persistence"
	"sidebard/internal/persistence/interfaces"
	"sidebard/internal/providers"
	"sidebard/internal/services"
	"sidebard/internal/structures"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	WebServer *http.Server

	scheduler   interfaces.SchedulerInterface
	fileManager *persistence.FileManager
	statistics  services.StatisticServiceInterface
	takeover    services.TakeoverServiceInterface
	logger      providers.Logger

	shutdownTimeout time.Duration
}

// NewHandler mounts the sidebar routes behind the metrics middleware, next to
// the health and metrics endpoints.
func NewHandler(healthController *controllers.HealthController, conf *structures.Config, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) http.Handler {
	sidebarMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		sidebarMux.Handle(route.Url, route.Handler)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", providers.MetricsMiddleware(metrics, sidebarMux))
	return mux
}

// NewApp restores the chats snapshot, serves until SIGINT or SIGTERM and then
// shuts down.
func NewApp(handler http.Handler, scheduler interfaces.SchedulerInterface, fileManager *persistence.FileManager, statistics services.StatisticServiceInterface, takeover services.TakeoverServiceInterface, conf *structures.Config, logger providers.Logger) (*App, error) {
	logger.Infof(providers.TypeApp, "Starting %s (owner menu: %t)", conf.AppName, conf.Console.Owner)
	if err := scheduler.Restore(); err != nil {
		logger.Errorf(providers.TypeApp, "Restore error: %s", err)
	}

	app := &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      handler,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: conf.Upstream.Timeout + 10*time.Second,
			IdleTimeout:  60 * time.Second,
		},
		scheduler:   scheduler,
		fileManager: fileManager,
		statistics:  statistics,
		takeover:    takeover,
		logger:      logger,

		shutdownTimeout: drainTimeout(conf),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.serve(ctx); err != nil {
		scheduler.Stop()
		return nil, err
	}
	if err := app.shutdown(); err != nil {
		return nil, err
	}
	return app, nil
}

// drainTimeout lets an in-flight synchronous toggle finish its upstream call.
func drainTimeout(conf *structures.Config) time.Duration {
	if d := conf.Upstream.Timeout + time.Second; d > shutdownTimeout {
		return d
	}
	return shutdownTimeout
}

func (a *App) serve(ctx context.Context) error {
	a.scheduler.Init()

	serverErr := make(chan error, 1)
	go func() {
		a.logger.Infof(providers.TypeApp, "Listening HTTP clients on %s", a.WebServer.Addr)
		if err := a.WebServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Infof(providers.TypeApp, "Shutdown signal received")
		return nil
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}
}

// shutdown stops HTTP before the takeover workers drain, so no toggle is
// queued after Close. A drain that overruns shutdownTimeout is logged and the
// remaining steps still run.
func (a *App) shutdown() error {
	a.scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()
	var errs []error
	if err := a.WebServer.Shutdown(ctx); err != nil {
		a.logger.Errorf(providers.TypeApp, "HTTP shutdown: %s", err)
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}

	a.takeover.Close()
	a.statistics.Close()

	if err := a.scheduler.Persist(); err != nil {
		a.logger.Errorf(providers.TypeApp, "Final persist: %s", err)
		errs = append(errs, fmt.Errorf("final persist: %w", err))
	}
	a.fileManager.Close()

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	a.logger.Infof(providers.TypeApp, "gracefully stopped")
	return nil
}
