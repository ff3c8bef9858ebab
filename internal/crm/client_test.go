package crm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"homesale_backend/platform/config"
	"homesale_backend/platform/logger"
)

func newTestClient(baseURL string) *Client {
	cfg := &config.Config{
		CRMBaseURL:    baseURL,
		CRMAPIKey:     "test-key",
		CRMLocationID: "loc-1",
	}
	return NewClient(cfg, logger.New("development"))
}

func TestUpsert_Success(t *testing.T) {
	var got UpsertRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/contacts/upsert" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", auth)
		}
		if version := r.Header.Get("Version"); version != "2021-07-28" {
			t.Errorf("unexpected version header %q", version)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"contact":{"id":"abc123"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result, err := client.Upsert(context.Background(), UpsertRequest{
		FirstName: "Lead",
		Email:     "partial_42@placeholder.lead",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ID != "abc123" {
		t.Fatalf("expected contact id abc123, got %q", result.ID)
	}
	if got.LocationID != "loc-1" {
		t.Fatalf("expected locationId loc-1 in payload, got %q", got.LocationID)
	}
}

func TestUpsert_NonJSONBodyIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result, err := client.Upsert(context.Background(), UpsertRequest{Email: "a@b.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ID != "" {
		t.Fatalf("expected empty id, got %q", result.ID)
	}
	if result.Raw != "OK" {
		t.Fatalf("expected raw body OK, got %q", result.Raw)
	}
}

func TestUpsert_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid phone"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Upsert(context.Background(), UpsertRequest{Phone: "bad"})

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %v", err)
	}
	if reqErr.Status != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", reqErr.Status)
	}
	if reqErr.Body != `{"message":"invalid phone"}` {
		t.Fatalf("unexpected body %q", reqErr.Body)
	}
}

func TestUpsert_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(server.URL)
	_, err := client.Upsert(context.Background(), UpsertRequest{Email: "a@b.com"})

	var unavailable *UnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected *UnavailableError, got %v", err)
	}
}
