// Package crm provides the HTTP client for the upstream contact-management
// API. The only operation the application consumes is upsert-by-matching-field:
// the upstream creates a contact when no record matches the identifying fields
// in the payload (email, phone), and merges the attributes into the first
// match otherwise. There is no upsert-by-id, no idempotency keys, and no
// explicit merge API.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"homesale_backend/platform/config"
	"homesale_backend/platform/logger"
)

const (
	apiVersion   = "2021-07-28"
	upsertPath   = "/contacts/upsert"
	maxBodyBytes = 64 << 10
)

// Client is the HTTP client for the CRM contacts API.
type Client struct {
	baseURL    string
	apiKey     string
	locationID string
	httpClient *http.Client
	log        *logger.Logger
}

// CustomField is a key/value attribute attached to a contact.
type CustomField struct {
	Key        string `json:"key"`
	FieldValue string `json:"field_value"`
}

// UpsertRequest carries the contact attributes for one upsert call. Whichever
// identifying fields are present (email, phone) double as the match keys;
// there is no separate match parameter.
type UpsertRequest struct {
	FirstName    string        `json:"firstName,omitempty"`
	LastName     string        `json:"lastName,omitempty"`
	Email        string        `json:"email,omitempty"`
	Phone        string        `json:"phone,omitempty"`
	Address1     string        `json:"address1,omitempty"`
	Tags         []string      `json:"tags,omitempty"`
	CustomFields []CustomField `json:"customFields,omitempty"`
	LocationID   string        `json:"locationId"`
}

// UpsertResult is the outcome of a successful upsert. ID is empty when the
// upstream answered 2xx with a body the client could not parse; Raw then
// carries the body text.
type UpsertResult struct {
	ID  string
	Raw string
}

// RequestError is a non-2xx response from the CRM. Status and Body are kept
// so callers can mirror the upstream failure.
type RequestError struct {
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("crm returned %d: %s", e.Status, e.Body)
}

// UnavailableError is a network-level failure or timeout reaching the CRM.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("crm unreachable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// NewClient creates a new CRM API client.
func NewClient(cfg config.CRMConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.GetCRMBaseURL(), "/"),
		apiKey:     cfg.GetCRMAPIKey(),
		locationID: cfg.GetCRMLocationID(),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

// Upsert issues one upsert call. Duplicate tags across calls are fine; the
// upstream treats tag sets as cumulative markers.
func (c *Client) Upsert(ctx context.Context, upsert UpsertRequest) (*UpsertResult, error) {
	upsert.LocationID = c.locationID

	payload, err := json.Marshal(upsert)
	if err != nil {
		return nil, fmt.Errorf("marshal upsert payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+upsertPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Version", apiVersion)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("crm request failed", "error", err)
		return nil, &UnavailableError{Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Error("crm upsert error", "status", resp.StatusCode, "body", strings.TrimSpace(string(body)))
		return nil, &RequestError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var parsed struct {
		Contact struct {
			ID string `json:"id"`
		} `json:"contact"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		// Tolerate non-JSON success bodies; the id is best-effort anyway.
		c.log.Warn("crm returned non-json body", "status", resp.StatusCode)
		return &UpsertResult{Raw: strings.TrimSpace(string(body))}, nil
	}

	return &UpsertResult{ID: parsed.Contact.ID, Raw: strings.TrimSpace(string(body))}, nil
}
