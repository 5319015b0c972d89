package integration__test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/suinigeria/events-api/internal/config"
	"github.com/suinigeria/events-api/internal/domain/registration"
	apphttp "github.com/suinigeria/events-api/internal/http"
	"github.com/suinigeria/events-api/internal/notifications"
	"github.com/suinigeria/events-api/internal/observability"
	"github.com/suinigeria/events-api/internal/repo/memory"
)

func testConfig() config.Config {
	return config.Config{
		Env:                "test",
		Port:               0, // not used in tests
		AdminEmail:         "admin@suinigeria.io",
		CORSAllowedOrigins: []string{"http://localhost:3000"},
	}
}

func setupTestRouter(t *testing.T) (*gin.Engine, *notifications.Dispatcher) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	slog.SetDefault(log)

	cfg := testConfig()
	store := memory.NewRegistrationsRepo()
	sender := notifications.NewSender(notifications.NewLogMailer(log), log, cfg.AdminEmail, cfg.Production())
	dispatcher := notifications.NewDispatcher(log, time.Second, nil)
	prom := observability.NewProm()

	router := apphttp.NewRouter(log, store, sender, dispatcher, prom, func() error { return nil }, cfg)

	return router, dispatcher
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}

	req := httptest.NewRequest(method, path, reader)

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	req.Header.Set("User-Agent", "integration-test")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

type listResponse struct {
	Count         int                         `json:"count"`
	Registrations []registration.Registration `json:"registrations"`
}

func fetchRegistrations(t *testing.T, r *gin.Engine) listResponse {
	t.Helper()

	w := doJSON(t, r, http.MethodGet, "/api/admin/registrations", "")

	if w.Code != http.StatusOK {
		t.Fatalf("list: got status %d, body=%s", w.Code, w.Body.String())
	}

	var resp listResponse

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("list: unmarshal: %v", err)
	}

	return resp
}

func TestRegistrationLifecycle(t *testing.T) {
	router, dispatcher := setupTestRouter(t)

	const body = `{"fullName":"Ada Lovelace","email":"ada@example.com","event":"plateau-jan25","experienceLevel":"beginner"}`

	// register
	w := doJSON(t, router, http.MethodPost, "/api/register", body)

	if w.Code != http.StatusOK {
		t.Fatalf("register: got status %d, body=%s", w.Code, w.Body.String())
	}

	var created struct {
		Message        string `json:"message"`
		RegistrationID string `json:"registrationId"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("register: unmarshal: %v", err)
	}

	if created.Message != "Registration successful" || created.RegistrationID == "" {
		t.Fatalf("register: unexpected response: %+v", created)
	}

	dispatcher.Wait()

	// the admin surface sees the new registration immediately, pending
	list := fetchRegistrations(t, router)

	if list.Count != 1 {
		t.Fatalf("got %d registrations, want 1", list.Count)
	}

	reg := list.Registrations[0]

	if reg.ID != created.RegistrationID {
		t.Fatalf("listed id %q does not match created id %q", reg.ID, created.RegistrationID)
	}

	if reg.Status != registration.StatusPending {
		t.Fatalf("new registration should be pending, got %q", reg.Status)
	}

	if reg.UserAgent != "integration-test" {
		t.Fatalf("provenance not captured, got %q", reg.UserAgent)
	}

	// the same person cannot register twice for the same event
	w = doJSON(t, router, http.MethodPost, "/api/register", body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate: got status %d, body=%s", w.Code, w.Body.String())
	}

	var dup struct {
		Error string `json:"error"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &dup); err != nil {
		t.Fatalf("duplicate: unmarshal: %v", err)
	}

	if dup.Error != "You have already registered for this event" {
		t.Fatalf("duplicate: unexpected error %q", dup.Error)
	}

	// approve it
	w = doJSON(t, router, http.MethodPost, "/api/admin/update-status",
		`{"registrationId":"`+created.RegistrationID+`","status":"approved"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("update-status: got status %d, body=%s", w.Code, w.Body.String())
	}

	dispatcher.Wait()

	list = fetchRegistrations(t, router)

	if got := list.Registrations[0].Status; got != registration.StatusApproved {
		t.Fatalf("status not reflected in listing, got %q", got)
	}

	// out-of-vocabulary status is rejected before touching anything
	w = doJSON(t, router, http.MethodPost, "/api/admin/update-status",
		`{"registrationId":"`+created.RegistrationID+`","status":"archived"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid status: got %d, body=%s", w.Code, w.Body.String())
	}

	list = fetchRegistrations(t, router)

	if got := list.Registrations[0].Status; got != registration.StatusApproved {
		t.Fatalf("rejected update must not change the record, got %q", got)
	}
}

func TestRegister_RequiresJSONContentType(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/register",
		bytes.NewBufferString(`fullName=Ada`))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("got status %d, want 415, body=%s", w.Code, w.Body.String())
	}
}

func TestEventsCatalog(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/events", "")

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Count int `json:"count"`
		Items []struct {
			Slug  string `json:"slug"`
			Title string `json:"title"`
		} `json:"items"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if resp.Count == 0 || len(resp.Items) != resp.Count {
		t.Fatalf("unexpected catalog response: %s", w.Body.String())
	}
}

func TestHealthEndpoints(t *testing.T) {
	router, _ := setupTestRouter(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		w := doJSON(t, router, http.MethodGet, path, "")

		if w.Code != http.StatusOK {
			t.Fatalf("%s: got status %d", path, w.Code)
		}
	}
}
