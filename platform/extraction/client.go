package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"doc_processing_backend/pkg/errs"
	"doc_processing_backend/pkg/logging"
)

const serviceName = "document-understanding"

// Client calls the external document-understanding service. Analysis is a
// long-running operation: the submit returns an operation URL which is
// polled until the service reports a terminal status.
type Client struct {
	httpClient   *http.Client
	endpoint     string
	apiKey       string
	pollInterval time.Duration
}

type analyzeRequest struct {
	URLSource string `json:"urlSource"`
}

type analyzeField struct {
	Content string `json:"content"`
}

type analyzedDocument struct {
	DocType string                  `json:"docType"`
	Fields  map[string]analyzeField `json:"fields"`
}

type analyzeResult struct {
	ModelID   string             `json:"modelId"`
	Documents []analyzedDocument `json:"documents"`
}

type operationStatus struct {
	Status        string         `json:"status"`
	AnalyzeResult *analyzeResult `json:"analyzeResult"`
	Error         *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func NewClient(endpoint, apiKey string, pollInterval time.Duration) *Client {
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	return &Client{
		httpClient:   &http.Client{Timeout: 60 * time.Second},
		endpoint:     strings.TrimRight(endpoint, "/"),
		apiKey:       apiKey,
		pollInterval: pollInterval,
	}
}

// Analyze submits the readable URI for analysis with the given model and
// waits for completion. The returned map flattens every recognized field
// name to its textual content; it may be empty when the model finds nothing.
func (c *Client) Analyze(ctx context.Context, readableURI, modelID string) (map[string]string, error) {
	opURL, err := c.submit(ctx, readableURI, modelID)
	if err != nil {
		return nil, err
	}
	return c.await(ctx, opURL)
}

func (c *Client) submit(ctx context.Context, readableURI, modelID string) (string, error) {
	body, err := json.Marshal(analyzeRequest{URLSource: readableURI})
	if err != nil {
		return "", &errs.ExternalServiceError{Service: serviceName, Err: err}
	}

	submitURL := fmt.Sprintf("%s/documentModels/%s:analyze", c.endpoint, modelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, submitURL, bytes.NewReader(body))
	if err != nil {
		return "", &errs.ExternalServiceError{Service: serviceName, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &errs.ExternalServiceError{Service: serviceName, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &errs.ExternalServiceError{
			Service: serviceName,
			Err:     fmt.Errorf("submit returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))),
		}
	}

	opURL := resp.Header.Get("Operation-Location")
	if opURL == "" {
		return "", &errs.ExternalServiceError{
			Service: serviceName,
			Err:     fmt.Errorf("submit response missing Operation-Location header"),
		}
	}
	return opURL, nil
}

func (c *Client) await(ctx context.Context, opURL string) (map[string]string, error) {
	for {
		status, err := c.pollOnce(ctx, opURL)
		if err != nil {
			return nil, err
		}

		switch status.Status {
		case "succeeded":
			return flattenFields(status.AnalyzeResult), nil
		case "failed":
			msg := "analysis failed"
			if status.Error != nil {
				msg = fmt.Sprintf("analysis failed: %s: %s", status.Error.Code, status.Error.Message)
			}
			return nil, &errs.ExternalServiceError{Service: serviceName, Err: fmt.Errorf("%s", msg)}
		}

		logging.Logger.Debug("analysis still running", "status", status.Status)
		select {
		case <-ctx.Done():
			return nil, &errs.ExternalServiceError{Service: serviceName, Err: ctx.Err()}
		case <-time.After(c.pollInterval):
		}
	}
}

func (c *Client) pollOnce(ctx context.Context, opURL string) (*operationStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opURL, nil)
	if err != nil {
		return nil, &errs.ExternalServiceError{Service: serviceName, Err: err}
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &errs.ExternalServiceError{Service: serviceName, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &errs.ExternalServiceError{
			Service: serviceName,
			Err:     fmt.Errorf("poll returned status %d", resp.StatusCode),
		}
	}

	var status operationStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, &errs.ExternalServiceError{Service: serviceName, Err: err}
	}
	return &status, nil
}

func flattenFields(result *analyzeResult) map[string]string {
	fields := make(map[string]string)
	if result == nil {
		return fields
	}
	for _, doc := range result.Documents {
		for name, field := range doc.Fields {
			fields[name] = field.Content
		}
	}
	return fields
}
