package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tourbeau/tourbot/internal/model"
	"github.com/tourbeau/tourbot/internal/service"
	"go.uber.org/zap"
)

type fakeUsers struct {
	result *service.UpsertResult
	user   *model.User
	err    error
}

func (f *fakeUsers) Upsert(ctx context.Context, input service.UpsertInput) (*service.UpsertResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeUsers) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

type fakeTrips struct {
	trips []model.Trip
	trip  *model.Trip
	err   error
}

func (f *fakeTrips) List(ctx context.Context) ([]model.Trip, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.trips, nil
}

func (f *fakeTrips) GetByID(ctx context.Context, id int64) (*model.Trip, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.trip, nil
}

type fakeDiagnostics struct {
	tables []string
	err    error
}

func (f *fakeDiagnostics) Tables(ctx context.Context) ([]string, error) {
	return f.tables, f.err
}

func newTestServer(users UserService, trips TripService, diag Diagnostics) *Server {
	return New(":0", users, trips, diag, "https://webapp.example", zap.NewNop())
}

func doRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)
	return w
}

func TestHandleRoot(t *testing.T) {
	s := newTestServer(&fakeUsers{}, &fakeTrips{}, &fakeDiagnostics{})

	w := doRequest(s, http.MethodGet, "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["message"] != "API is running" {
		t.Errorf("message = %q", resp["message"])
	}
}

func TestHandleTestDB(t *testing.T) {
	s := newTestServer(&fakeUsers{}, &fakeTrips{}, &fakeDiagnostics{tables: []string{"trips", "users"}})

	w := doRequest(s, http.MethodGet, "/api/test-db", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Status      string   `json:"status"`
		Collections []string `json:"collections"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != "success" || len(resp.Collections) != 2 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestHandleTestDB_ConnectionError(t *testing.T) {
	s := newTestServer(&fakeUsers{}, &fakeTrips{}, &fakeDiagnostics{err: errors.New("dial tcp: refused")})

	w := doRequest(s, http.MethodGet, "/api/test-db", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "detail") {
		t.Errorf("body = %s, want detail envelope", w.Body.String())
	}
}

func TestHandleSaveUser_Insert(t *testing.T) {
	id := "7"
	users := &fakeUsers{result: &service.UpsertResult{
		User:       &model.User{ID: 7, TelegramID: 42, FirstName: "Jane", Logins: []time.Time{time.Now()}},
		UpsertedID: &id,
	}}
	s := newTestServer(users, &fakeTrips{}, &fakeDiagnostics{})

	for _, path := range []string{"/api/users", "/api/save-user"} {
		w := doRequest(s, http.MethodPost, path, `{"telegram_id":42,"first_name":"Jane"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("POST %s status = %d, want 200", path, w.Code)
		}

		var resp saveUserResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp.Status != "success" || resp.UpsertedID == nil || *resp.UpsertedID != "7" {
			t.Errorf("resp = %+v", resp)
		}
		if resp.User == nil || resp.User.TelegramID != 42 {
			t.Errorf("user = %+v", resp.User)
		}
	}
}

func TestHandleSaveUser_ValidationError(t *testing.T) {
	users := &fakeUsers{err: model.NewError("user", model.ErrValidation)}
	s := newTestServer(users, &fakeTrips{}, &fakeDiagnostics{})

	w := doRequest(s, http.MethodPost, "/api/users", `{"telegram_id":0}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
}

func TestHandleSaveUser_BadJSON(t *testing.T) {
	s := newTestServer(&fakeUsers{}, &fakeTrips{}, &fakeDiagnostics{})

	w := doRequest(s, http.MethodPost, "/api/users", `{broken`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestHandleGetUser_NotFoundVsStorageError(t *testing.T) {
	s := newTestServer(&fakeUsers{err: model.NewError("user", model.ErrNotFound)}, &fakeTrips{}, &fakeDiagnostics{})

	w := doRequest(s, http.MethodGet, "/api/users/999999", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for unknown user", w.Code)
	}

	s = newTestServer(&fakeUsers{err: errors.New("connection reset")}, &fakeTrips{}, &fakeDiagnostics{})

	w = doRequest(s, http.MethodGet, "/api/users/999999", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500 for storage error", w.Code)
	}
}

func TestHandleGetUser_BadID(t *testing.T) {
	s := newTestServer(&fakeUsers{}, &fakeTrips{}, &fakeDiagnostics{})

	w := doRequest(s, http.MethodGet, "/api/users/abc", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestHandleListTrips_Aliases(t *testing.T) {
	trips := &fakeTrips{trips: []model.Trip{{ID: 1, Title: "Isfahan"}, {ID: 2, Title: "Shiraz"}}}
	s := newTestServer(&fakeUsers{}, trips, &fakeDiagnostics{})

	for _, path := range []string{"/api/trips", "/api/tours"} {
		w := doRequest(s, http.MethodGet, path, "")
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d, want 200", path, w.Code)
		}

		var got []model.Trip
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("GET %s returned %d trips, want 2", path, len(got))
		}
	}
}

func TestHandleGetTrip_NotFound(t *testing.T) {
	s := newTestServer(&fakeUsers{}, &fakeTrips{err: model.NewError("trip", model.ErrNotFound)}, &fakeDiagnostics{})

	w := doRequest(s, http.MethodGet, "/api/trips/999999", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Trip not found") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestHandleGetTrip_CamelCaseJSON(t *testing.T) {
	start := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	trip := &model.Trip{
		ID:             1,
		Title:          "Nowruz tour",
		StartDate:      &start,
		Category:       model.Category{Title: "Nature", Href: "/tours/nature"},
		ImageURL:       "https://cdn.example/1.jpg",
		Options:        []string{"hotel", "breakfast"},
		AvailableSlots: 5,
	}
	s := newTestServer(&fakeUsers{}, &fakeTrips{trip: trip}, &fakeDiagnostics{})

	w := doRequest(s, http.MethodGet, "/api/trips/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	body := w.Body.String()
	for _, key := range []string{`"startDate"`, `"imageUrl"`, `"availableSlots"`, `"category"`, `"href"`} {
		if !strings.Contains(body, key) {
			t.Errorf("body missing %s: %s", key, body)
		}
	}
}

func TestCORSHeaders(t *testing.T) {
	s := newTestServer(&fakeUsers{}, &fakeTrips{}, &fakeDiagnostics{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://webapp.example")
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://webapp.example" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}

	// Foreign origins are not allowed
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin for foreign origin = %q, want empty", got)
	}
}
