package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
)

const UploadFieldName = "resume"

// ExtractionClient sends a document to the extraction service and returns its text.
type ExtractionClient interface {
	Extract(ctx context.Context, filename string, data []byte) (string, error)
}

// UploadError is returned for any failed upload. Message holds the
// server-provided error text when the service sent one.
type UploadError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *UploadError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("upload failed (%d): %s", e.StatusCode, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("upload failed: %v", e.Err)
	default:
		return fmt.Sprintf("upload failed with status %d", e.StatusCode)
	}
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

type extractionClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewExtractionClient(baseURL string, httpClient *http.Client) ExtractionClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &extractionClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// Extract implements ExtractionClient.
func (c *extractionClient) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile(UploadFieldName, filename)
	if err != nil {
		return "", &UploadError{Err: fmt.Errorf("failed to create form file: %w", err)}
	}
	if _, err := part.Write(data); err != nil {
		return "", &UploadError{Err: fmt.Errorf("failed to write form file: %w", err)}
	}
	if err := writer.Close(); err != nil {
		return "", &UploadError{Err: fmt.Errorf("failed to close multipart writer: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload-resume", &body)
	if err != nil {
		return "", &UploadError{Err: fmt.Errorf("failed to build request: %w", err)}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &UploadError{Err: err}
	}
	defer resp.Body.Close()

	var payload struct {
		ParsedText string `json:"parsedText"`
		Error      string `json:"error"`
	}
	decodeErr := json.NewDecoder(resp.Body).Decode(&payload)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &UploadError{StatusCode: resp.StatusCode, Message: payload.Error, Err: decodeErr}
	}
	if decodeErr != nil {
		return "", &UploadError{StatusCode: resp.StatusCode, Err: fmt.Errorf("invalid response body: %w", decodeErr)}
	}

	return payload.ParsedText, nil
}
