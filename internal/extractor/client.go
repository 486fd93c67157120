// Package extractor wraps the remote document extraction endpoint behind the
// DocumentExtractor contract. One multipart POST per file; any transport
// error, non-success status, or missing configuration collapses to
// ErrExtractionUnavailable. No retries, no partial results.
package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"sofhub/internal/config"
	"sofhub/internal/domain"
	"sofhub/internal/port"
)

// Client calls the document extraction service over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a DocumentExtractor from config. An empty base URL is
// legal here; Extract reports ErrExtractionUnavailable before any network
// call.
func NewClient(cfg *config.ExtractorConfig) port.DocumentExtractor {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// extractResponse is the success payload of the extraction endpoint. Every
// field is optional; events may be any JSON value and is dropped when it is
// not sequence-shaped.
type extractResponse struct {
	Vessel     string          `json:"vessel"`
	Cargo      string          `json:"cargo"`
	Port       string          `json:"port"`
	Operation  string          `json:"operation"`
	VoyageFrom string          `json:"voyage_from"`
	VoyageTo   string          `json:"voyage_to"`
	Events     json.RawMessage `json:"events"`
}

func (c *Client) Extract(ctx context.Context, filename string, content []byte) (*domain.ExtractionResult, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: extractor base URL not configured", domain.ErrExtractionUnavailable)
	}

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/extract", body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("extractor.Extract: transport error for %s: %v", filename, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrExtractionUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("extractor.Extract: service returned status %d for %s", resp.StatusCode, filename)
		return nil, fmt.Errorf("%w: status %d", domain.ErrExtractionUnavailable, resp.StatusCode)
	}

	var payload extractResponse
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", domain.ErrExtractionUnavailable, err)
	}

	return resultFromPayload(&payload, filename), nil
}

// resultFromPayload applies the contract's field-level defaults to a success
// payload.
func resultFromPayload(p *extractResponse, filename string) *domain.ExtractionResult {
	res := &domain.ExtractionResult{
		Vessel:      p.Vessel,
		Cargo:       p.Cargo,
		Port:        p.Port,
		Operation:   p.Operation,
		VoyageFrom:  p.VoyageFrom,
		VoyageTo:    p.VoyageTo,
		Events:      decodeEvents(p.Events),
		SourceFile:  filename,
		ExtractedAt: time.Now().UTC(),
	}
	if res.Vessel == "" {
		res.Vessel = "Unknown Vessel"
	}
	return res
}

// decodeEvents tolerates absent or malformed event sequences: anything that
// is not an array of events becomes an empty slice.
func decodeEvents(raw json.RawMessage) []domain.Event {
	if len(raw) == 0 {
		return []domain.Event{}
	}
	var events []domain.Event
	if err := json.Unmarshal(raw, &events); err != nil {
		return []domain.Event{}
	}
	return events
}
