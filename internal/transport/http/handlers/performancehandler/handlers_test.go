package performancehandler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"hradmin/internal/domain/auth"
	"hradmin/internal/domain/performance"
	"hradmin/internal/transport/http/middleware"
)

type fakeStore struct {
	performance.StoreAPI
	rows   map[int64]performance.Review
	nextID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: map[int64]performance.Review{}, nextID: 1}
}

func (f *fakeStore) FindByID(_ context.Context, id int64) (performance.Review, error) {
	r, ok := f.rows[id]
	if !ok {
		return performance.Review{}, performance.ErrNotFound
	}
	return r, nil
}

func (f *fakeStore) Create(_ context.Context, data performance.Data) (int64, error) {
	id := f.nextID
	f.nextID++
	r := performance.Review{ID: id}
	apply(&r, data)
	f.rows[id] = r
	return id, nil
}

func (f *fakeStore) Update(_ context.Context, id int64, data performance.Data) (performance.Review, error) {
	r, ok := f.rows[id]
	if !ok {
		return performance.Review{}, performance.ErrNotFound
	}
	apply(&r, data)
	f.rows[id] = r
	return r, nil
}

func (f *fakeStore) Complete(_ context.Context, id int64, at time.Time) (performance.Review, error) {
	r := f.rows[id]
	r.Status = performance.StatusCompleted
	r.CompletedAt = &at
	f.rows[id] = r
	return r, nil
}

func apply(r *performance.Review, data performance.Data) {
	if v, ok := data.EmployeeID.Get(); ok {
		r.EmployeeID = v
	}
	if v, ok := data.ReviewerID.Get(); ok {
		r.ReviewerID = v
	}
	if v, ok := data.ReviewPeriod.Get(); ok {
		r.ReviewPeriod = v
	}
	if v, ok := data.ReviewDate.Get(); ok {
		r.ReviewDate = v
	}
	if v, ok := data.ReviewType.Get(); ok {
		r.ReviewType = v
	}
	if data.OverallRating.IsSet() {
		r.OverallRating = data.OverallRating.Ptr()
	}
	if v, ok := data.Strengths.Get(); ok {
		r.Strengths = v
	}
	if v, ok := data.Status.Get(); ok {
		r.Status = v
	}
	if data.DueDate.IsSet() {
		r.DueDate = data.DueDate.Ptr()
	}
	if data.CompletedAt.IsSet() {
		r.CompletedAt = data.CompletedAt.Ptr()
	}
}

func newRouter(store *fakeStore, role string) http.Handler {
	svc := performance.NewService(store)
	svc.Now = func() time.Time { return time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC) }
	h := NewHandler(svc, nil, nil, nil, auth.StaticPermissions{}, 15)
	r := chi.NewRouter()
	r.Use(middleware.Auth("", &auth.UserContext{UserID: 1, Role: role}))
	h.RegisterRoutes(r)
	return r
}

func send(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeResource(t *testing.T, rec *httptest.ResponseRecorder) Resource {
	t.Helper()
	var body struct {
		Data Resource `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return body.Data
}

func decodeErrors(t *testing.T, rec *httptest.ResponseRecorder) map[string][]string {
	t.Helper()
	var body struct {
		Errors map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return body.Errors
}

const quarterly = `{"employee_id":1,"reviewer_id":2,"review_period":"2026-Q2","review_date":"2026-06-20","review_type":"quarterly","overall_rating":4,"strengths":["Mentoring"," "],"due_date":"2026-06-30"}`

func TestStoreDefaultsToDraft(t *testing.T) {
	router := newRouter(newFakeStore(), auth.RoleHR)
	rec := send(router, http.MethodPost, "/performance-reviews", quarterly)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	got := decodeResource(t, rec)
	if got.Status != performance.StatusDraft {
		t.Fatalf("expected draft, got %q", got.Status)
	}
	if got.RatingDescription != "Exceeds Expectations" {
		t.Fatalf("unexpected rating description %q", got.RatingDescription)
	}
	if len(got.Strengths) != 1 || got.Strengths[0] != "Mentoring" {
		t.Fatalf("unexpected strengths %v", got.Strengths)
	}
	if got.DevelopmentPlan == nil {
		t.Fatal("expected empty development plan list, got null")
	}
	if !got.IsOverdue || got.IsDueSoon {
		t.Fatalf("expected overdue review, got overdue=%v due_soon=%v", got.IsOverdue, got.IsDueSoon)
	}
}

func TestStoreValidation(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"self review", `{"employee_id":3,"reviewer_id":3,"review_period":"2026","review_date":"2026-06-20","review_type":"annual"}`, "reviewer_id"},
		{"rating too high", `{"employee_id":1,"reviewer_id":2,"review_period":"2026","review_date":"2026-06-20","review_type":"annual","overall_rating":6}`, "overall_rating"},
		{"unknown type", `{"employee_id":1,"reviewer_id":2,"review_period":"2026","review_date":"2026-06-20","review_type":"weekly"}`, "review_type"},
		{"due before review", `{"employee_id":1,"reviewer_id":2,"review_period":"2026","review_date":"2026-06-20","review_type":"annual","due_date":"2026-06-01"}`, "due_date"},
		{"missing period", `{"employee_id":1,"reviewer_id":2,"review_date":"2026-06-20","review_type":"annual"}`, "review_period"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeStore()
			rec := send(newRouter(store, auth.RoleHR), http.MethodPost, "/performance-reviews", tc.body)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
			}
			if _, ok := decodeErrors(t, rec)[tc.field]; !ok {
				t.Fatalf("expected error on %s, got %s", tc.field, rec.Body.String())
			}
			if len(store.rows) != 0 {
				t.Fatal("expected nothing stored")
			}
		})
	}
}

func TestUpdateCannotMakeSelfReview(t *testing.T) {
	store := newFakeStore()
	router := newRouter(store, auth.RoleHR)
	send(router, http.MethodPost, "/performance-reviews", quarterly)

	rec := send(router, http.MethodPatch, "/performance-reviews/1", `{"reviewer_id":1}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	if store.rows[1].ReviewerID != 2 {
		t.Fatalf("expected reviewer untouched, got %d", store.rows[1].ReviewerID)
	}
}

func TestCompleteOnce(t *testing.T) {
	router := newRouter(newFakeStore(), auth.RoleHR)
	send(router, http.MethodPost, "/performance-reviews", quarterly)

	rec := send(router, http.MethodPost, "/performance-reviews/1/complete", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	got := decodeResource(t, rec)
	if !got.IsCompleted || got.CompletedAt == nil || got.IsOverdue {
		t.Fatalf("unexpected completed review %+v", got)
	}

	rec = send(router, http.MethodPost, "/performance-reviews/1/complete", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = send(router, http.MethodPost, "/performance-reviews/9/complete", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestViewerCannotComplete(t *testing.T) {
	store := newFakeStore()
	send(newRouter(store, auth.RoleHR), http.MethodPost, "/performance-reviews", quarterly)

	rec := send(newRouter(store, auth.RoleViewer), http.MethodPost, "/performance-reviews/1/complete", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if store.rows[1].Status != performance.StatusDraft {
		t.Fatalf("expected draft, got %q", store.rows[1].Status)
	}
}
