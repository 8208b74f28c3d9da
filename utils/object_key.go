package utils

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"doc_processing_backend/pkg/errs"
)

// BuildObjectKey derives the storage key for a document: the document id
// plus the original filename's extension. The id is the key stem, which is
// what ParseDocumentID recovers on the trigger path.
func BuildObjectKey(documentID, filename string) string {
	return documentID + strings.ToLower(filepath.Ext(filename))
}

// ParseDocumentID extracts the document id from an object key of the form
// {id}{ext}. Keys that do not carry a UUID stem are rejected.
func ParseDocumentID(key string) (string, error) {
	stem := strings.TrimSuffix(key, filepath.Ext(key))
	id, err := uuid.Parse(stem)
	if err != nil {
		return "", &errs.ValidationError{Field: "object key", Value: key, Msg: "key stem is not a document id"}
	}
	return id.String(), nil
}

// SplitLocation breaks a stored object URL into its bucket and key. The
// bucket is the second-to-last path segment, the key the last one.
func SplitLocation(location string) (bucket, key string, err error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", &errs.ValidationError{Field: "location", Value: location, Msg: "not a valid URL"}
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 || segments[len(segments)-2] == "" || segments[len(segments)-1] == "" {
		return "", "", &errs.ValidationError{Field: "location", Value: location, Msg: "missing bucket or key segment"}
	}
	return segments[len(segments)-2], segments[len(segments)-1], nil
}

// ObjectURL builds the canonical URL of an object, mirroring the layout
// SplitLocation expects.
func ObjectURL(endpoint string, useSSL bool, bucket, key string) string {
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, endpoint, bucket, key)
}
