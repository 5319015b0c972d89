package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/suinigeria/events-api/internal/domain/registration"
	"github.com/suinigeria/events-api/internal/http/handlers"
)

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name            string
		body            string
		updateErr       error
		wantStatus      int
		wantError       string
		wantMessage     string
		wantStoreCalled bool
	}{
		{
			name:            "approve succeeds",
			body:            `{"registrationId":"abc123","status":"approved"}`,
			wantStatus:      http.StatusOK,
			wantMessage:     "Status updated successfully",
			wantStoreCalled: true,
		},
		{
			name:            "back to pending is allowed",
			body:            `{"registrationId":"abc123","status":"pending"}`,
			wantStatus:      http.StatusOK,
			wantMessage:     "Status updated successfully",
			wantStoreCalled: true,
		},
		{
			name:       "missing both fields",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Missing required fields",
		},
		{
			name:       "missing status",
			body:       `{"registrationId":"abc123"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Missing required fields",
		},
		{
			name:       "unknown status value",
			body:       `{"registrationId":"abc123","status":"archived"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid status value",
		},
		{
			name:            "unknown id fails loudly",
			body:            `{"registrationId":"nope","status":"approved"}`,
			updateErr:       registration.ErrNotFound,
			wantStatus:      http.StatusInternalServerError,
			wantError:       "Failed to update status",
			wantStoreCalled: true,
		},
		{
			name:            "store outage",
			body:            `{"registrationId":"abc123","status":"approved"}`,
			updateErr:       errors.New("no reachable servers"),
			wantStatus:      http.StatusInternalServerError,
			wantError:       "Failed to update status",
			wantStoreCalled: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeStore{
				updateFn: func(ctx context.Context, id string, status registration.Status) (registration.Registration, error) {
					if tc.updateErr != nil {
						return registration.Registration{}, tc.updateErr
					}
					return registration.Registration{ID: id, Email: "ada@example.com", Status: status}, nil
				},
			}
			sender := &fakeSender{}
			dispatcher := newDispatcher()

			h := handlers.NewAdminHandler(store, sender, dispatcher, discardLogger())
			r := setupRouter(http.MethodPost, "/api/admin/update-status", h.UpdateStatus)

			w := postJSON(t, r, "/api/admin/update-status", tc.body)

			if w.Code != tc.wantStatus {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tc.wantStatus, w.Body.String())
			}

			var resp struct {
				Message string `json:"message"`
				Error   string `json:"error"`
			}

			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal response: %v", err)
			}

			if tc.wantMessage != "" && resp.Message != tc.wantMessage {
				t.Fatalf("got message %q, want %q", resp.Message, tc.wantMessage)
			}

			if tc.wantError != "" && resp.Error != tc.wantError {
				t.Fatalf("got error %q, want %q", resp.Error, tc.wantError)
			}

			if !tc.wantStoreCalled && store.updateCalls != 0 {
				t.Fatalf("store should not be touched, got %d calls", store.updateCalls)
			}

			dispatcher.Wait()

			wantEmails := 0
			if tc.wantStatus == http.StatusOK {
				wantEmails = 1
			}

			if got := len(sender.statusUpdates); got != wantEmails {
				t.Fatalf("got %d status emails, want %d", got, wantEmails)
			}
		})
	}
}

func TestAdminList(t *testing.T) {
	t1 := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)

	// the store contract returns newest first
	stored := []registration.Registration{
		{ID: "c", Email: "c@example.com", Event: "plateau-jan25", Status: registration.StatusPending, CreatedAt: t3},
		{ID: "b", Email: "b@example.com", Event: "plateau-jan25", Status: registration.StatusApproved, CreatedAt: t2},
		{ID: "a", Email: "a@example.com", Event: "enugu-jan29", Status: registration.StatusRejected, CreatedAt: t1},
	}

	store := &fakeStore{
		listFn: func(ctx context.Context) ([]registration.Registration, error) {
			return stored, nil
		},
	}

	h := handlers.NewAdminHandler(store, &fakeSender{}, newDispatcher(), discardLogger())
	r := setupRouter(http.MethodGet, "/api/admin/registrations", h.List)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/registrations", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Count         int                         `json:"count"`
		Registrations []registration.Registration `json:"registrations"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	if resp.Count != 3 {
		t.Fatalf("got count %d, want 3", resp.Count)
	}

	for i, wantID := range []string{"c", "b", "a"} {
		if resp.Registrations[i].ID != wantID {
			t.Fatalf("position %d: got %q, want %q", i, resp.Registrations[i].ID, wantID)
		}
	}

	// second fetch with the ETag is a cheap 304
	etag := w.Header().Get("ETag")

	if etag == "" {
		t.Fatalf("expected an ETag header")
	}

	req2 := httptest.NewRequest(http.MethodGet, "/api/admin/registrations", nil)
	req2.Header.Set("If-None-Match", etag)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req2)

	if w2.Code != http.StatusNotModified {
		t.Fatalf("got status %d, want 304", w2.Code)
	}
}

func TestAdminList_StoreFailure(t *testing.T) {
	store := &fakeStore{
		listFn: func(ctx context.Context) ([]registration.Registration, error) {
			return nil, errors.New("no reachable servers")
		},
	}

	h := handlers.NewAdminHandler(store, &fakeSender{}, newDispatcher(), discardLogger())
	r := setupRouter(http.MethodGet, "/api/admin/registrations", h.List)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/registrations", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("got status %d, want 500", w.Code)
	}

	var resp struct {
		Error string `json:"error"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	if resp.Error != "Failed to fetch registrations" {
		t.Fatalf("unexpected error: %q", resp.Error)
	}
}

func TestAdminTestEmail(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		sender := &fakeSender{testID: "re_123"}

		h := handlers.NewAdminHandler(&fakeStore{}, sender, newDispatcher(), discardLogger())
		r := setupRouter(http.MethodGet, "/api/admin/test-email", h.TestEmail)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/test-email", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("got status %d, want 200, body=%s", w.Code, w.Body.String())
		}

		var resp struct {
			Message string `json:"message"`
			ID      string `json:"id"`
		}

		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}

		if resp.ID != "re_123" {
			t.Fatalf("got id %q, want re_123", resp.ID)
		}
	})

	t.Run("provider failure", func(t *testing.T) {
		sender := &fakeSender{testErr: errors.New("unauthorized")}

		h := handlers.NewAdminHandler(&fakeStore{}, sender, newDispatcher(), discardLogger())
		r := setupRouter(http.MethodGet, "/api/admin/test-email", h.TestEmail)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/test-email", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("got status %d, want 500", w.Code)
		}
	})
}
