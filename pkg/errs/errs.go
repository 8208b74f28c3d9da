package errs

import (
	"errors"
	"fmt"
)

// ValidationError indicates malformed input (bad document id, bad object key).
// Not retryable.
type ValidationError struct {
	Field string
	Value string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Msg)
}

// NotFoundError indicates a missing metadata row or storage object.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// ExternalServiceError wraps a failed call to the document-understanding
// service. The whole invocation is retryable; no state was mutated.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s call failed: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// StorageError wraps a failed object-storage operation (put/copy/delete/sign).
type StorageError struct {
	Op   string
	Area string
	Key  string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed for %s/%s: %v", e.Op, e.Area, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

func IsExternalService(err error) bool {
	var ese *ExternalServiceError
	return errors.As(err, &ese)
}

func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
