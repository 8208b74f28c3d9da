package bootstrap

import "doc_processing_backend/handlers"

type Handlers struct {
	DocHandler    *handlers.DocHandler
	HealthHandler *handlers.HealthHandler
}

func NewHandlers(services *Services, infra *Infrastructure) *Handlers {
	return &Handlers{
		DocHandler:    handlers.NewDocHandler(services.DocService),
		HealthHandler: handlers.NewHealthHandler(infra.DB),
	}
}
