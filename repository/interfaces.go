package repository

import (
	"context"

	"doc_processing_backend/models"
)

type DocumentRepository interface {
	Insert(ctx context.Context, doc *models.Document) error
	GetByID(ctx context.Context, id string) (*models.Document, error)
	UpdateLocation(ctx context.Context, id, location string) error
	// MarkProcessed commits fields, status and location in one conditional
	// update guarded on the row still being Pending. It reports whether a
	// row actually transitioned, so a lost race surfaces as false.
	MarkProcessed(ctx context.Context, id, location, fields string) (bool, error)
	List(ctx context.Context, page, pageSize int) ([]models.Document, error)
}
