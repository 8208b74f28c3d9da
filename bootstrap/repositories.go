package bootstrap

import (
	"doc_processing_backend/platform/database"
	"doc_processing_backend/repository"
)

type Repositories struct {
	DocumentRepository repository.DocumentRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		DocumentRepository: repository.NewDocumentRepository(db.GetDatabase()),
	}
}
