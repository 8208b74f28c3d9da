package errs_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"doc_processing_backend/pkg/errs"
)

func TestTaxonomyPredicates(t *testing.T) {
	validation := &errs.ValidationError{Field: "object key", Value: "x.pdf", Msg: "key stem is not a document id"}
	notFound := &errs.NotFoundError{Resource: "document", ID: "abc"}
	external := &errs.ExternalServiceError{Service: "document-understanding", Err: fmt.Errorf("boom")}
	storage := &errs.StorageError{Op: "copy", Area: "documents-processed", Key: "abc.pdf", Err: fmt.Errorf("boom")}

	require.True(t, errs.IsValidation(validation))
	require.True(t, errs.IsNotFound(notFound))
	require.True(t, errs.IsExternalService(external))
	require.True(t, errs.IsStorage(storage))

	require.False(t, errs.IsNotFound(validation))
	require.False(t, errs.IsValidation(notFound))
	require.False(t, errs.IsStorage(external))
	require.False(t, errs.IsExternalService(storage))
}

func TestPredicatesUnwrapWrappedErrors(t *testing.T) {
	inner := &errs.NotFoundError{Resource: "pending object", ID: "abc.pdf"}
	wrapped := fmt.Errorf("processing failed: %w", inner)
	require.True(t, errs.IsNotFound(wrapped))

	storage := &errs.StorageError{Op: "delete", Area: "documents-pending", Key: "abc.pdf", Err: fmt.Errorf("io")}
	require.True(t, errs.IsStorage(fmt.Errorf("relocation: %w", storage)))
}

func TestMessagesCarryContext(t *testing.T) {
	err := &errs.StorageError{Op: "copy", Area: "documents-processed", Key: "abc.pdf", Err: fmt.Errorf("timeout")}
	require.Contains(t, err.Error(), "copy")
	require.Contains(t, err.Error(), "documents-processed")
	require.Contains(t, err.Error(), "abc.pdf")

	nf := &errs.NotFoundError{Resource: "document", ID: "abc"}
	require.Contains(t, nf.Error(), "document")
	require.Contains(t, nf.Error(), "abc")
}
