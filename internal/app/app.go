package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"itemsvc/internal/config"
	"itemsvc/internal/events"
	"itemsvc/internal/queue"
)

type App struct {
	cfg      *config.Config
	hub      *events.Hub
	consumer queue.Consumer
	pub      queue.Dispatcher
	server   *http.Server
	logger   *zap.Logger
	wg       sync.WaitGroup
}

func NewApp(
	cfg *config.Config,
	hub *events.Hub,
	consumer queue.Consumer,
	publisher queue.Dispatcher,
	router *gin.Engine,
	logger *zap.Logger,
) *App {
	return &App{
		cfg:      cfg,
		hub:      hub,
		consumer: consumer,
		pub:      publisher,
		server: &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: router,
		},
		logger: logger,
	}
}

// Run starts the event hub, change publisher and intake consumer, then serves
// HTTP until Shutdown.
func (a *App) Run(ctx context.Context) error {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.hub.Run(ctx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.pub.Start(ctx); err != nil && ctx.Err() == nil {
			a.logger.Error("change publisher stopped", zap.Error(err))
		}
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.consumer.Start(ctx); err != nil && ctx.Err() == nil {
			a.logger.Error("intake consumer stopped", zap.Error(err))
		}
	}()

	// Streaming requests end with the app context instead of holding up Shutdown.
	a.server.BaseContext = func(net.Listener) context.Context { return ctx }

	a.logger.Info("http server listening", zap.String("addr", a.cfg.HTTPAddr))
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("graceful shutdown started")
	shutdownErr := a.server.Shutdown(ctx)

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		a.logger.Info("graceful shutdown completed")
		return shutdownErr
	case <-ctx.Done():
		if shutdownErr != nil {
			return shutdownErr
		}
		return ctx.Err()
	}
}

func (a *App) Logger() *zap.Logger {
	return a.logger
}

func (a *App) Config() *config.Config {
	return a.cfg
}
