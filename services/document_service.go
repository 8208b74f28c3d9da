package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"doc_processing_backend/config"
	"doc_processing_backend/models"
	"doc_processing_backend/pkg/errs"
	"doc_processing_backend/pkg/logging"
	"doc_processing_backend/repository"
	"doc_processing_backend/utils"
)

// DocumentService drives the processing pipeline: upload into the pending
// area, extraction on arrival, relocation to the processed area, and the
// signed read path.
type DocumentService struct {
	docRepo   repository.DocumentRepository
	store     ObjectStore
	extractor Extractor
	arrivals  ArrivalPublisher
	cfg       *config.Config
}

func NewDocumentService(
	docRepo repository.DocumentRepository,
	store ObjectStore,
	extractor Extractor,
	arrivals ArrivalPublisher,
	cfg *config.Config) *DocumentService {
	return &DocumentService{
		docRepo:   docRepo,
		store:     store,
		extractor: extractor,
		arrivals:  arrivals,
		cfg:       cfg,
	}
}

// Upload stages a new document: metadata row first, then the binary into the
// pending bucket, then the row's location. Returns the stored location.
// A storage failure after the insert leaves a Pending row with an empty
// location; that remnant is visible to an operator sweep and is not healed
// here.
func (s *DocumentService) Upload(ctx context.Context, fileName string, r io.Reader, size int64, contentType string) (string, error) {
	if size > s.cfg.MaxFileSize {
		return "", &errs.ValidationError{Field: "file", Value: fileName, Msg: "file exceeds the size limit"}
	}

	docID := uuid.New().String()
	doc := &models.Document{
		ID:        docID,
		Name:      fileName,
		Status:    models.StatusPending,
		CreatedAt: time.Now(),
	}
	if err := s.docRepo.Insert(ctx, doc); err != nil {
		logging.Logger.Error("fail Upload insert", "docID", docID, "error", err)
		return "", err
	}

	key := utils.BuildObjectKey(docID, fileName)
	location, err := s.store.Put(ctx, s.cfg.PendingBucket, key, r, size, contentType)
	if err != nil {
		logging.Logger.Error("fail Upload put, row left pending with empty location",
			"docID", docID, "key", key, "error", err)
		return "", err
	}

	if err := s.docRepo.UpdateLocation(ctx, docID, location); err != nil {
		logging.Logger.Error("fail Upload location update", "docID", docID, "error", err)
		return "", err
	}

	if err := s.arrivals.Publish(ctx, key); err != nil {
		// The upload itself succeeded; the document stays Pending until the
		// arrival is redelivered or replayed.
		logging.Logger.Error("fail Upload arrival publish", "docID", docID, "key", key, "error", err)
	}

	logging.Logger.Info("document uploaded", "docID", docID, "location", location)
	return location, nil
}

// Process runs the extraction pipeline for a pending object. It is safe to
// re-run for the same key from any point of failure: a duplicate delivery
// observes either the Processed row or the missing pending object and ends
// as a no-op.
func (s *DocumentService) Process(ctx context.Context, key string) error {
	docID, err := utils.ParseDocumentID(key)
	if err != nil {
		logging.Logger.Error("fail Process, malformed key", "key", key, "error", err)
		return err
	}

	doc, err := s.docRepo.GetByID(ctx, docID)
	if err != nil {
		logging.Logger.Error("fail Process, row lookup", "docID", docID, "error", err)
		return err
	}

	if doc.IsProcessed() {
		return s.finishDuplicate(ctx, docID, key)
	}

	readableURI, err := s.store.PresignedGet(ctx, s.cfg.PendingBucket, key, s.cfg.SignedURLTTL)
	if err != nil {
		return err
	}

	fields, err := s.extractor.Analyze(ctx, readableURI, s.cfg.ExtractionModelID)
	if err != nil {
		logging.Logger.Error("fail Process, analysis", "docID", docID, "error", err)
		return err
	}

	newLocation, err := s.relocate(ctx, docID, key)
	if err != nil {
		return err
	}

	serialized, err := json.Marshal(fields)
	if err != nil {
		return err
	}

	// Fields, status and location commit together, and only after the
	// relocation is confirmed. The update is conditional on the row still
	// being Pending so that concurrent invocations transition at most once.
	transitioned, err := s.docRepo.MarkProcessed(ctx, docID, newLocation, string(serialized))
	if err != nil {
		logging.Logger.Error("fail Process, update", "docID", docID, "error", err)
		return err
	}
	if !transitioned {
		logging.Logger.Info("document already transitioned by a concurrent invocation", "docID", docID)
		return nil
	}

	logging.Logger.Info("document processed", "docID", docID, "location", newLocation, "fields", len(fields))
	return nil
}

// finishDuplicate handles a redelivered trigger for an already-Processed
// document. A leftover pending copy means the previous run crashed between
// copy and delete; removing it completes that relocation.
func (s *DocumentService) finishDuplicate(ctx context.Context, docID, key string) error {
	pendingExists, err := s.store.Exists(ctx, s.cfg.PendingBucket, key)
	if err != nil {
		return err
	}
	if pendingExists {
		if err := s.store.Delete(ctx, s.cfg.PendingBucket, key); err != nil {
			return err
		}
		logging.Logger.Info("removed leftover pending copy", "docID", docID, "key", key)
	}
	logging.Logger.Info("duplicate trigger ignored, document already processed", "docID", docID)
	return nil
}

// relocate moves the object from the pending to the processed bucket with a
// copy-then-delete sequence. The destination is checked first so a retried
// invocation resumes instead of re-copying, and the source is only deleted
// once the destination is confirmed present.
func (s *DocumentService) relocate(ctx context.Context, docID, key string) (string, error) {
	processedExists, err := s.store.Exists(ctx, s.cfg.ProcessedBucket, key)
	if err != nil {
		return "", err
	}

	if !processedExists {
		pendingExists, err := s.store.Exists(ctx, s.cfg.PendingBucket, key)
		if err != nil {
			return "", err
		}
		if !pendingExists {
			logging.Logger.Error("fail Process, pending object missing", "docID", docID, "key", key)
			return "", &errs.NotFoundError{Resource: "pending object", ID: key}
		}

		if _, err := s.store.Copy(ctx, s.cfg.PendingBucket, s.cfg.ProcessedBucket, key); err != nil {
			return "", err
		}
		copied, err := s.store.Exists(ctx, s.cfg.ProcessedBucket, key)
		if err != nil {
			return "", err
		}
		if !copied {
			return "", &errs.StorageError{Op: "copy", Area: s.cfg.ProcessedBucket, Key: key,
				Err: fmt.Errorf("copied object not visible in processed area")}
		}
	}

	if err := s.deletePendingIfPresent(ctx, key); err != nil {
		return "", err
	}
	return s.store.ObjectURL(s.cfg.ProcessedBucket, key), nil
}

func (s *DocumentService) deletePendingIfPresent(ctx context.Context, key string) error {
	pendingExists, err := s.store.Exists(ctx, s.cfg.PendingBucket, key)
	if err != nil {
		return err
	}
	if !pendingExists {
		return nil
	}
	return s.store.Delete(ctx, s.cfg.PendingBucket, key)
}

// Get returns the read view of one document with a freshly signed URL.
func (s *DocumentService) Get(ctx context.Context, id string) (*models.DocumentView, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, &errs.ValidationError{Field: "document id", Value: id, Msg: "not a valid id"}
	}

	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &models.DocumentView{
		Name:   doc.Name,
		Status: doc.Status,
		URL:    doc.Location,
		Fields: doc.Fields,
	}
	if doc.Location == "" {
		// Upload crashed before the blob write; nothing to sign.
		return view, nil
	}

	bucket, key, err := utils.SplitLocation(doc.Location)
	if err != nil {
		return nil, err
	}
	signed, err := s.store.PresignedGet(ctx, bucket, key, s.cfg.SignedURLTTL)
	if err != nil {
		return nil, err
	}
	view.URL = signed
	return view, nil
}

// List pages through documents by ascending id. List results carry the bare
// stored location without a signed URL; only the single-document read mints
// one.
func (s *DocumentService) List(ctx context.Context, page, pageSize int) ([]models.DocumentView, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = s.cfg.DefaultPageSize
	}
	if pageSize > s.cfg.MaxPageSize {
		pageSize = s.cfg.MaxPageSize
	}

	docs, err := s.docRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	views := make([]models.DocumentView, 0, len(docs))
	for _, doc := range docs {
		views = append(views, models.DocumentView{
			Name:   doc.Name,
			Status: doc.Status,
			URL:    doc.Location,
			Fields: doc.Fields,
		})
	}
	return views, nil
}
