package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"homesale_backend/internal/crm"
	"homesale_backend/internal/lead/service"
	"homesale_backend/internal/lead/transport"
	"homesale_backend/platform/logger"
	"homesale_backend/platform/validator"
)

type testCRMConfig struct {
	configured bool
}

func (c testCRMConfig) GetCRMBaseURL() string    { return "https://crm.test" }
func (c testCRMConfig) GetCRMAPIKey() string     { return "key" }
func (c testCRMConfig) GetCRMLocationID() string { return "loc" }
func (c testCRMConfig) IsCRMConfigured() bool    { return c.configured }

type fakeUpserter struct {
	calls []crm.UpsertRequest
	errs  []error
	ids   []string
}

func (f *fakeUpserter) Upsert(_ context.Context, req crm.UpsertRequest) (*crm.UpsertResult, error) {
	i := len(f.calls)
	f.calls = append(f.calls, req)
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	id := "contact-1"
	if i < len(f.ids) {
		id = f.ids[i]
	}
	return &crm.UpsertResult{ID: id}, nil
}

func newTestRouter(upserter *fakeUpserter, configured bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.New(upserter, testCRMConfig{configured: configured}, validator.New(), logger.New("test"))
	r := gin.New()
	r.POST("/lead-sync", New(svc).Sync)
	return r
}

func doSync(t *testing.T, r *gin.Engine, body string) (*httptest.ResponseRecorder, transport.SyncResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/lead-sync", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp transport.SyncResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, w.Body.String())
	}
	return w, resp
}

func TestSyncInvalidAction(t *testing.T) {
	upserter := &fakeUpserter{}
	r := newTestRouter(upserter, true)

	w, resp := doSync(t, r, `{"action":"destroy"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if resp.Error != "Invalid action" {
		t.Errorf("error = %q", resp.Error)
	}
	if len(upserter.calls) != 0 {
		t.Errorf("CRM was called for invalid action")
	}
}

func TestSyncCreateSuccess(t *testing.T) {
	upserter := &fakeUpserter{ids: []string{"abc123"}}
	r := newTestRouter(upserter, true)

	w, resp := doSync(t, r, `{"action":"create","address":"123 Main St, Austin, TX 78701"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	if !resp.Success || resp.ContactID != "abc123" {
		t.Errorf("resp = %+v", resp)
	}
	if len(upserter.calls) != 1 {
		t.Fatalf("upsert calls = %d", len(upserter.calls))
	}
	if !strings.HasPrefix(upserter.calls[0].Email, "partial_") {
		t.Errorf("match key = %q, want placeholder email", upserter.calls[0].Email)
	}
}

func TestSyncCreateMissingAddress(t *testing.T) {
	upserter := &fakeUpserter{}
	r := newTestRouter(upserter, true)

	w, resp := doSync(t, r, `{"action":"create","address":"  "}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if resp.Error != "Address is required" {
		t.Errorf("error = %q", resp.Error)
	}
}

func TestSyncNotConfigured(t *testing.T) {
	upserter := &fakeUpserter{}
	r := newTestRouter(upserter, false)

	w, resp := doSync(t, r, `{"action":"create","address":"123 Main St"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if resp.Error != "Server configuration error" {
		t.Errorf("error = %q", resp.Error)
	}
	if len(upserter.calls) != 0 {
		t.Errorf("CRM was called without configuration")
	}
}

func TestSyncCompleteMissingFirstName(t *testing.T) {
	upserter := &fakeUpserter{}
	r := newTestRouter(upserter, true)

	w, resp := doSync(t, r, `{"action":"complete","address":"123 Main St"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if resp.Error != "First name required" {
		t.Errorf("error = %q", resp.Error)
	}
}

func TestSyncCompleteSuccess(t *testing.T) {
	upserter := &fakeUpserter{ids: []string{"c1", "c2"}}
	r := newTestRouter(upserter, true)

	w, resp := doSync(t, r, `{
		"action":"complete",
		"address":"123 Main St, Austin, TX 78701",
		"firstName":"Jane","lastName":"Doe",
		"phone":"(512) 555-0100","email":"jane@example.com",
		"zestimate":"450000"
	}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", w.Code, w.Body.String())
	}
	if !resp.Success {
		t.Errorf("resp = %+v", resp)
	}
	if len(upserter.calls) != 2 {
		t.Fatalf("upsert calls = %d, want 2", len(upserter.calls))
	}
}

func TestSyncCompleteMirrorsUpstreamStatus(t *testing.T) {
	upserter := &fakeUpserter{errs: []error{&crm.RequestError{
		Status: http.StatusUnprocessableEntity,
		Body:   `{"message":"invalid phone"}`,
	}}}
	r := newTestRouter(upserter, true)

	w, resp := doSync(t, r, `{"action":"complete","address":"123 Main St","firstName":"Jane"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	if resp.Error != "Failed to update contact" {
		t.Errorf("error = %q", resp.Error)
	}
	details, ok := resp.Details.(map[string]interface{})
	if !ok || details["message"] != "invalid phone" {
		t.Errorf("details = %#v", resp.Details)
	}
}

func TestSyncCompleteUnavailable(t *testing.T) {
	upserter := &fakeUpserter{errs: []error{&crm.UnavailableError{Err: http.ErrHandlerTimeout}}}
	r := newTestRouter(upserter, true)

	w, resp := doSync(t, r, `{"action":"complete","address":"123 Main St","firstName":"Jane"}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
	if resp.Error != "CRM service unavailable" {
		t.Errorf("error = %q", resp.Error)
	}
}

func TestSyncMalformedBody(t *testing.T) {
	r := newTestRouter(&fakeUpserter{}, true)

	w, resp := doSync(t, r, `{"action":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if resp.Error != "Invalid request body" {
		t.Errorf("error = %q", resp.Error)
	}
}
