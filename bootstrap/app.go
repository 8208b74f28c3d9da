package bootstrap

import (
	"context"

	"doc_processing_backend/config"
	"doc_processing_backend/pkg/logging"
)

type App struct {
	Cfg            *config.Config
	Infrastructure *Infrastructure
	Repositories   *Repositories
	Services       *Services
	Handlers       *Handlers
}

func NewApp(cfg *config.Config) (*App, error) {
	app := &App{Cfg: cfg}

	infra, err := NewInfrastructure(cfg)
	if err != nil {
		logging.Logger.Error("fail NewInfrastructure", "error", err)
		return nil, err
	}
	app.Infrastructure = infra

	repos := NewRepositories(infra.DB)
	app.Repositories = repos

	services := NewServices(cfg, repos, infra)
	app.Services = services

	app.Handlers = NewHandlers(services, infra)

	return app, nil
}

// StartArrivalWorker consumes the arrival queue until ctx is cancelled,
// running the processing pipeline for every delivered key.
func (a *App) StartArrivalWorker(ctx context.Context) {
	go a.Infrastructure.Arrivals.Listen(ctx, a.Services.DocService.Process)
}

func (a *App) Shutdown() error {
	if a == nil {
		return nil
	}
	if a.Infrastructure != nil {
		return a.Infrastructure.Shutdown()
	}
	return nil
}
