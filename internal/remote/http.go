package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tradepost-hq/tradepost/internal/domain"
)

// HTTPBackend talks to the hosted REST API. Every call carries the account
// API key; per-call deadlines come from the caller's context on top of the
// client-level timeout.
type HTTPBackend struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPBackend creates a REST client for the hosted backend.
func NewHTTPBackend(baseURL, apiKey string) *HTTPBackend {
	return &HTTPBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: DefaultTimeout},
	}
}

// FetchAll downloads the full remote snapshot of one entity type.
func (b *HTTPBackend) FetchAll(ctx context.Context, storeName string) ([]domain.RawRecord, error) {
	body, err := b.do(ctx, http.MethodGet, b.storeURL(storeName), nil)
	if err != nil {
		return nil, err
	}

	var payloads []json.RawMessage
	if err := json.Unmarshal(body, &payloads); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrRemoteFailure, ErrMsgDecodeResponse, err)
	}

	records := make([]domain.RawRecord, 0, len(payloads))
	for _, payload := range payloads {
		rec, err := domain.NewRawRecord(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrRemoteFailure, ErrMsgDecodeResponse, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// Create stores a new record remotely.
func (b *HTTPBackend) Create(ctx context.Context, storeName string, rec domain.RawRecord) error {
	_, err := b.do(ctx, http.MethodPost, b.storeURL(storeName), []byte(rec.Data))
	return err
}

// Update replaces the record with a full snapshot.
func (b *HTTPBackend) Update(ctx context.Context, storeName, id string, data json.RawMessage) error {
	_, err := b.do(ctx, http.MethodPut, b.recordURL(storeName, id), []byte(data))
	return err
}

// Delete removes the record. A 404 is treated as success so replaying a
// delete stays idempotent.
func (b *HTTPBackend) Delete(ctx context.Context, storeName, id string) error {
	_, err := b.do(ctx, http.MethodDelete, b.recordURL(storeName, id), nil)
	if err != nil && isStatus(err, http.StatusNotFound) {
		return nil
	}
	return err
}

func (b *HTTPBackend) storeURL(storeName string) string {
	return b.baseURL + APIBasePath + "/" + storeName
}

func (b *HTTPBackend) recordURL(storeName, id string) string {
	return b.storeURL(storeName) + "/" + url.PathEscape(id)
}

// statusError carries the HTTP status of a failed call for idempotency
// decisions; it always matches domain.ErrRemoteFailure.
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%s: %s %d: %s", domain.ErrMsgRemoteFailure, ErrMsgUnexpectedStatus, e.status, e.body)
}

func (e *statusError) Is(target error) bool {
	return target == domain.ErrRemoteFailure
}

func isStatus(err error, status int) bool {
	se, ok := err.(*statusError)
	return ok && se.status == status
}

// do executes one request and returns the response body for 2xx statuses.
func (b *HTTPBackend) do(ctx context.Context, method, rawURL string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteFailure, err)
	}
	req.Header.Set(HeaderAPIKey, b.apiKey)
	if body != nil {
		req.Header.Set(HeaderContentType, ContentTypeJSON)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrRemoteFailure, ErrMsgRequestFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteFailure, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &statusError{status: resp.StatusCode, body: truncate(string(respBody), 200)}
	}

	return respBody, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
