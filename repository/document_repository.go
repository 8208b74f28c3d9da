package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"doc_processing_backend/models"
	"doc_processing_backend/pkg/errs"
)

type documentRepository struct {
	DB *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{DB: db}
}

func (r *documentRepository) Insert(ctx context.Context, doc *models.Document) error {
	return r.DB.WithContext(ctx).Create(doc).Error
}

func (r *documentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	var doc models.Document
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &errs.NotFoundError{Resource: "document", ID: id}
		}
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) UpdateLocation(ctx context.Context, id, location string) error {
	return r.DB.WithContext(ctx).
		Model(&models.Document{}).
		Where("id = ?", id).
		Update("location", location).Error
}

func (r *documentRepository) MarkProcessed(ctx context.Context, id, location, fields string) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.Document{}).
		Where("id = ? AND status = ?", id, models.StatusPending).
		Updates(map[string]interface{}{
			"status":   models.StatusProcessed,
			"location": location,
			"fields":   fields,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *documentRepository) List(ctx context.Context, page, pageSize int) ([]models.Document, error) {
	var docs []models.Document
	err := r.DB.WithContext(ctx).
		Order("id asc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&docs).Error
	return docs, err
}
