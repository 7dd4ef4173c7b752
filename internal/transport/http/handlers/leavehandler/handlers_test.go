package leavehandler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"hradmin/internal/domain/auth"
	"hradmin/internal/domain/leave"
	"hradmin/internal/platform/storage"
	"hradmin/internal/transport/http/middleware"
)

type fakeStore struct {
	leave.StoreAPI
	rows   map[int64]leave.Leave
	nextID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: map[int64]leave.Leave{}, nextID: 1}
}

func (f *fakeStore) FindByID(_ context.Context, id int64) (leave.Leave, error) {
	l, ok := f.rows[id]
	if !ok {
		return leave.Leave{}, leave.ErrNotFound
	}
	return l, nil
}

func (f *fakeStore) HasConflict(_ context.Context, employeeID int64, start, end time.Time, excludeID int64) (bool, error) {
	for id, l := range f.rows {
		if id == excludeID || l.EmployeeID != employeeID {
			continue
		}
		if l.Status != leave.StatusPending && l.Status != leave.StatusApproved {
			continue
		}
		if !l.StartDate.After(end) && !l.EndDate.Before(start) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) UsedDays(_ context.Context, employeeID int64, leaveType string, _ int) (float64, error) {
	return f.sum(employeeID, leaveType, leave.StatusApproved), nil
}

func (f *fakeStore) PendingDays(_ context.Context, employeeID int64, leaveType string, _ int) (float64, error) {
	return f.sum(employeeID, leaveType, leave.StatusPending), nil
}

func (f *fakeStore) sum(employeeID int64, leaveType, status string) float64 {
	total := 0.0
	for _, l := range f.rows {
		if l.EmployeeID == employeeID && l.LeaveType == leaveType && l.Status == status {
			total += l.DaysRequested
		}
	}
	return total
}

func (f *fakeStore) SetStatus(ctx context.Context, id int64, from []string, data leave.Data) (leave.Leave, error) {
	if !slices.Contains(from, f.rows[id].Status) {
		return leave.Leave{}, leave.ErrNotFound
	}
	return f.Update(ctx, id, data)
}

func (f *fakeStore) Create(_ context.Context, data leave.Data) (int64, error) {
	id := f.nextID
	f.nextID++
	l := leave.Leave{ID: id}
	apply(&l, data)
	f.rows[id] = l
	return id, nil
}

func (f *fakeStore) Update(_ context.Context, id int64, data leave.Data) (leave.Leave, error) {
	l, ok := f.rows[id]
	if !ok {
		return leave.Leave{}, leave.ErrNotFound
	}
	apply(&l, data)
	f.rows[id] = l
	return l, nil
}

func apply(l *leave.Leave, data leave.Data) {
	if v, ok := data.EmployeeID.Get(); ok {
		l.EmployeeID = v
	}
	if v, ok := data.LeaveType.Get(); ok {
		l.LeaveType = v
	}
	if v, ok := data.StartDate.Get(); ok {
		l.StartDate = v
	}
	if v, ok := data.EndDate.Get(); ok {
		l.EndDate = v
	}
	if v, ok := data.DaysRequested.Get(); ok {
		l.DaysRequested = v
	}
	if v, ok := data.Reason.Get(); ok {
		l.Reason = v
	}
	if v, ok := data.Status.Get(); ok {
		l.Status = v
	}
	if v, ok := data.IsHalfDay.Get(); ok {
		l.IsHalfDay = v
	}
	if data.HalfDayPeriod.IsSet() {
		l.HalfDayPeriod = data.HalfDayPeriod.Ptr()
	}
	if data.RejectionReason.IsSet() {
		l.RejectionReason = data.RejectionReason.Ptr()
	}
	if data.ApprovedAt.IsSet() {
		l.ApprovedAt = data.ApprovedAt.Ptr()
	}
	if v, ok := data.Attachments.Get(); ok {
		l.Attachments = v
	}
}

type memoryFiles struct {
	objects map[string][]byte
	types   map[string]string
}

func newMemoryFiles() *memoryFiles {
	return &memoryFiles{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memoryFiles) Put(_ context.Context, key string, body io.Reader, _ int64, contentType string) error {
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.objects[key] = b
	m.types[key] = contentType
	return nil
}

func (m *memoryFiles) Get(_ context.Context, key string) (storage.Object, error) {
	b, ok := m.objects[key]
	if !ok {
		return storage.Object{}, leave.ErrAttachmentNotFound
	}
	return storage.Object{Body: io.NopCloser(bytes.NewReader(b)), Size: int64(len(b)), ContentType: m.types[key]}, nil
}

func newRouter(store *fakeStore, files leave.AttachmentStore) http.Handler {
	svc := leave.NewService(store, files)
	svc.Now = func() time.Time { return time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC) }
	h := NewHandler(svc, nil, nil, auth.StaticPermissions{}, 15, 1<<20)
	r := chi.NewRouter()
	r.Use(middleware.Auth("", &auth.UserContext{UserID: 1, Role: auth.RoleHR}))
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

const annualLeave = `{"employee_id":1,"leave_type":"annual","start_date":"2026-05-11","end_date":"2026-05-15","reason":"Family trip"}`

func TestStoreComputesDaysAndLabels(t *testing.T) {
	router := newRouter(newFakeStore(), newMemoryFiles())
	rec := send(router, http.MethodPost, "/leaves", annualLeave)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	got := decodeResource(t, rec)
	if got.DaysRequested != 5 || got.Duration != "5 Days" {
		t.Fatalf("unexpected days %v %q", got.DaysRequested, got.Duration)
	}
	if got.Status != leave.StatusPending || got.StatusDisplay != "Pending Approval" || got.LeaveTypeDisplay != "Annual Leave" {
		t.Fatalf("unexpected labels %+v", got)
	}
	if got.AppliedDate != "2026-05-04" {
		t.Fatalf("expected applied date today, got %q", got.AppliedDate)
	}
}

func TestHalfDayIsAlwaysHalf(t *testing.T) {
	router := newRouter(newFakeStore(), newMemoryFiles())
	rec := send(router, http.MethodPost, "/leaves", `{"employee_id":1,"leave_type":"sick","start_date":"2026-05-11","end_date":"2026-05-13","reason":"Dentist","is_half_day":true,"half_day_period":"morning"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := decodeResource(t, rec); got.DaysRequested != 0.5 || got.Duration != "Half Day (morning)" {
		t.Fatalf("unexpected half day %v %q", got.DaysRequested, got.Duration)
	}

	rec = send(router, http.MethodPost, "/leaves", `{"employee_id":2,"leave_type":"sick","start_date":"2026-05-11","end_date":"2026-05-11","reason":"Dentist","is_half_day":true}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 without a period, got %d", rec.Code)
	}
}

func TestOverlapIsConflictAndNotPersisted(t *testing.T) {
	store := newFakeStore()
	router := newRouter(store, newMemoryFiles())
	send(router, http.MethodPost, "/leaves", annualLeave)

	rec := send(router, http.MethodPost, "/leaves", `{"employee_id":1,"leave_type":"sick","start_date":"2026-05-14","end_date":"2026-05-18","reason":"Flu"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if len(store.rows) != 1 {
		t.Fatalf("expected one stored leave, got %d", len(store.rows))
	}
}

func TestEndBeforeStartFails(t *testing.T) {
	router := newRouter(newFakeStore(), newMemoryFiles())
	rec := send(router, http.MethodPost, "/leaves", `{"employee_id":1,"leave_type":"annual","start_date":"2026-05-15","end_date":"2026-05-11","reason":"Trip"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var body struct {
		Errors map[string][]string `json:"errors"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if got := body.Errors["end_date"]; len(got) != 1 || got[0] != "End date must be after or equal to start date." {
		t.Fatalf("unexpected errors %v", body.Errors)
	}
}

func TestTransitions(t *testing.T) {
	router := newRouter(newFakeStore(), newMemoryFiles())
	send(router, http.MethodPost, "/leaves", annualLeave)

	if rec := send(router, http.MethodPost, "/leaves/1/reject", `{}`); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 without reason, got %d", rec.Code)
	}
	rec := send(router, http.MethodPost, "/leaves/1/reject", `{"rejection_reason":"Busy season"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := decodeResource(t, rec); got.Status != leave.StatusRejected || got.RejectionReason == nil {
		t.Fatalf("unexpected rejected leave %+v", got)
	}

	for _, tc := range []struct{ path, body string }{
		{"/leaves/1/approve", `{}`},
		{"/leaves/1/reject", `{"rejection_reason":"Again"}`},
		{"/leaves/1/reject", `{}`},
		{"/leaves/1/cancel", ``},
	} {
		rec := send(router, http.MethodPost, tc.path, tc.body)
		if rec.Code != http.StatusConflict {
			t.Fatalf("%s %s: expected 409, got %d", tc.path, tc.body, rec.Code)
		}
	}
}

func TestUpdateCannotReopenFinishedLeave(t *testing.T) {
	store := newFakeStore()
	router := newRouter(store, newMemoryFiles())
	send(router, http.MethodPost, "/leaves", annualLeave)
	send(router, http.MethodPost, "/leaves/1/cancel", "")
	if rec := send(router, http.MethodPost, "/leaves", annualLeave); rec.Code != http.StatusCreated {
		t.Fatalf("expected cancelled dates to be free, got %d", rec.Code)
	}

	rec := send(router, http.MethodPut, "/leaves/1", `{"status":"pending"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	if store.rows[1].Status != leave.StatusCancelled {
		t.Fatalf("expected cancelled leave unchanged, got %s", store.rows[1].Status)
	}
}

func TestApproveThenCancel(t *testing.T) {
	router := newRouter(newFakeStore(), newMemoryFiles())
	send(router, http.MethodPost, "/leaves", annualLeave)

	rec := send(router, http.MethodPost, "/leaves/1/approve", `{"approval_notes":"Enjoy"}`)
	if got := decodeResource(t, rec); rec.Code != http.StatusOK || got.Status != leave.StatusApproved || !got.IsUpcoming {
		t.Fatalf("unexpected approve response %d %s", rec.Code, rec.Body.String())
	}
	rec = send(router, http.MethodPost, "/leaves/1/cancel", "")
	if got := decodeResource(t, rec); rec.Code != http.StatusOK || got.Status != leave.StatusCancelled {
		t.Fatalf("unexpected cancel response %d %s", rec.Code, rec.Body.String())
	}
}

func TestBalance(t *testing.T) {
	router := newRouter(newFakeStore(), newMemoryFiles())
	send(router, http.MethodPost, "/leaves", annualLeave)

	rec := send(router, http.MethodGet, "/leaves/balance?employee_id=1&leave_type=annual&year=2026", "")
	var body struct {
		Data balanceResource `json:"data"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Data.Total != 21 || body.Data.Pending != 5 || body.Data.Remaining != 16 {
		t.Fatalf("unexpected balance %+v", body.Data)
	}
	if rec := send(router, http.MethodGet, "/leaves/balance?leave_type=annual", ""); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 without employee, got %d", rec.Code)
	}
}

func upload(router http.Handler, path string, content []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("file", "medical-note.PDF")
	part.Write(content)
	mw.Close()
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAttachmentRoundTrip(t *testing.T) {
	files := newMemoryFiles()
	router := newRouter(newFakeStore(), files)
	send(router, http.MethodPost, "/leaves", annualLeave)

	rec := upload(router, "/leaves/1/attachments", []byte("%PDF-1.4 note"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	got := decodeResource(t, rec)
	if len(got.Attachments) != 1 {
		t.Fatalf("expected one attachment, got %v", got.Attachments)
	}

	req := httptest.NewRequest(http.MethodGet, "/leaves/1/attachments/"+got.Attachments[0], nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "%PDF-1.4 note" {
		t.Fatalf("unexpected download %d %q", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/leaves/1/attachments/other.pdf", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown attachment, got %d", rec.Code)
	}
}

func TestAttachmentWithoutStorage(t *testing.T) {
	router := newRouter(newFakeStore(), &storage.ObjectStore{})
	send(router, http.MethodPost, "/leaves", annualLeave)

	if rec := upload(router, "/leaves/1/attachments", []byte("note")); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
