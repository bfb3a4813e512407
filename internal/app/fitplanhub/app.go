package fitplanhub

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/fitplanhub/internal/apiclient"
	"github.com/magabrotheeeer/fitplanhub/internal/config"
	"github.com/magabrotheeeer/fitplanhub/internal/controller"
	"github.com/magabrotheeeer/fitplanhub/internal/events"
	"github.com/magabrotheeeer/fitplanhub/internal/lib/sl"
	"github.com/magabrotheeeer/fitplanhub/internal/metrics"
	"github.com/magabrotheeeer/fitplanhub/internal/notify"
	"github.com/magabrotheeeer/fitplanhub/internal/session"
	"github.com/magabrotheeeer/fitplanhub/internal/storage"
	"github.com/magabrotheeeer/fitplanhub/internal/storage/filestore"
	"github.com/magabrotheeeer/fitplanhub/internal/storage/memstore"
	"github.com/magabrotheeeer/fitplanhub/internal/storage/redisstore"
	"github.com/magabrotheeeer/fitplanhub/internal/view"
)

// App клиент целиком: контроллер и HTTP-сервер локального фронтенда.
type App struct {
	server     *http.Server
	logger     *slog.Logger
	controller *controller.Controller
	closers    []io.Closer
}

// New собирает зависимости и открывает главную страницу.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.New"
	a := &App{logger: logger}

	store, err := a.openStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	m := metrics.New(registry)

	api, err := apiclient.NewClient(apiclient.Options{
		BaseURL:  cfg.BaseURL,
		Timeout:  cfg.TimeoutAPI,
		Logger:   logger,
		Recorder: m,
	})
	if err != nil {
		a.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	opts := controller.Options{
		API:      api,
		Sessions: session.NewManager(store, logger),
		Notifier: notify.New(cfg.Notifications.TTL, logger, m),
		Metrics:  m,
		Logger:   logger,
	}
	if cfg.AMQPURL != "" {
		publisher, err := a.openEvents(cfg.Events)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		opts.Events = publisher
	} else {
		logger.Info("event publishing disabled")
	}

	a.controller = controller.New(ctx, opts)
	if err := a.controller.Navigate(ctx, view.PageHome); err != nil {
		logger.Error("failed to open home page", sl.Err(err))
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		a.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	router := chi.NewRouter()
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	RegisterRoutes(router, logger, a.controller, renderer, limiter, registry)

	a.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return a, nil
}

func (a *App) openStore(ctx context.Context, cfg *config.Config) (session.Store, error) {
	switch cfg.Driver {
	case storage.DriverFile:
		return filestore.New(cfg.Path)
	case storage.DriverRedis:
		store, err := redisstore.New(ctx, cfg.RedisConnection, cfg.KeyPrefix)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store)
		return store, nil
	case storage.DriverMemory:
		return memstore.New(), nil
	default:
		return nil, fmt.Errorf("%w: %q", storage.ErrUnknownDriver, cfg.Driver)
	}
}

func (a *App) openEvents(cfg config.Events) (*events.Publisher, error) {
	conn, err := events.Connect(cfg.AMQPURL, cfg.Retries, cfg.RetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := events.SetupChannel(conn, cfg.Exchange)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	a.closers = append(a.closers, ch, conn)
	return events.NewPublisher(ch, cfg.Exchange, a.logger), nil
}

// Run запускает HTTP-сервер и останавливает его по отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Error("failed to close resource", sl.Err(err))
		}
	}
	a.closers = nil
}
