package bootstrap

import (
	"doc_processing_backend/config"
	"doc_processing_backend/services"
)

type Services struct {
	DocService *services.DocumentService
}

func NewServices(cfg *config.Config, repos *Repositories, infra *Infrastructure) *Services {
	docService := services.NewDocumentService(
		repos.DocumentRepository,
		infra.Storage,
		infra.Extraction,
		infra.Arrivals,
		cfg,
	)
	return &Services{DocService: docService}
}
