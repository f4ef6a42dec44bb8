//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"itemsvc/internal/app"
	"itemsvc/internal/config"
	"itemsvc/internal/events"
	"itemsvc/internal/http"
	"itemsvc/internal/http/controller"
	"itemsvc/internal/logging"
	"itemsvc/internal/metrics"
	"itemsvc/internal/queue"
	"itemsvc/internal/queue/rabbitmq"
	"itemsvc/internal/repository"
	"itemsvc/internal/service/catalog"
	"itemsvc/internal/store/memory"
)

var storeSet = wire.NewSet(
	memory.New,
	wire.Bind(new(repository.ItemRepository), new(*memory.Store)),
	wire.Bind(new(repository.UserRepository), new(*memory.Store)),
)

func InitializeApp() (*app.App, error) {
	wire.Build(
		config.New,
		logging.New,
		storeSet,
		events.NewHub,
		rabbitmq.NewPublisher,
		wire.Bind(new(queue.Publisher), new(queue.Dispatcher)),
		catalog.NewService,
		rabbitmq.NewConsumer,
		metrics.New,
		controller.NewHandler,
		http.NewRouter,
		app.NewApp,
	)
	return &app.App{}, nil
}
