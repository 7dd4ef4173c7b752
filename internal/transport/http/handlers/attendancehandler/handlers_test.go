package attendancehandler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"hradmin/internal/domain/attendance"
	"hradmin/internal/domain/auth"
	"hradmin/internal/transport/http/middleware"
)

type fakeStore struct {
	attendance.StoreAPI
	rows   map[int64]attendance.Attendance
	nextID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: map[int64]attendance.Attendance{}, nextID: 1}
}

func (f *fakeStore) FindByID(_ context.Context, id int64) (attendance.Attendance, error) {
	a, ok := f.rows[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrNotFound
	}
	return a, nil
}

func (f *fakeStore) FindByEmployeeAndDate(_ context.Context, employeeID int64, date time.Time) (attendance.Attendance, error) {
	for _, a := range f.rows {
		if a.EmployeeID == employeeID && a.Date.Equal(date) {
			return a, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrNotFound
}

func (f *fakeStore) ListByEmployeeAndDateRange(_ context.Context, employeeID int64, start, end time.Time) ([]attendance.Attendance, error) {
	out := []attendance.Attendance{}
	for id := int64(1); id < f.nextID; id++ {
		a, ok := f.rows[id]
		if ok && a.EmployeeID == employeeID && !a.Date.Before(start) && !a.Date.After(end) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) MonthlySummary(_ context.Context, employeeID int64, year int, month time.Month) (attendance.MonthlySummary, error) {
	return attendance.MonthlySummary{EmployeeID: employeeID, Year: year, Month: int(month), DaysRecorded: 1, PresentDays: 1, WorkingDays: 22, TotalMinutes: 480}, nil
}

func (f *fakeStore) Create(_ context.Context, data attendance.Data) (int64, error) {
	id := f.nextID
	f.nextID++
	a := attendance.Attendance{ID: id}
	apply(&a, data)
	f.rows[id] = a
	return id, nil
}

func (f *fakeStore) Update(_ context.Context, id int64, data attendance.Data) (attendance.Attendance, error) {
	a, ok := f.rows[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrNotFound
	}
	apply(&a, data)
	f.rows[id] = a
	return a, nil
}

func apply(a *attendance.Attendance, data attendance.Data) {
	if v, ok := data.EmployeeID.Get(); ok {
		a.EmployeeID = v
	}
	if v, ok := data.Date.Get(); ok {
		a.Date = v
	}
	if data.ClockIn.IsSet() {
		a.ClockIn = data.ClockIn.Ptr()
	}
	if data.ClockOut.IsSet() {
		a.ClockOut = data.ClockOut.Ptr()
	}
	if data.BreakStart.IsSet() {
		a.BreakStart = data.BreakStart.Ptr()
	}
	if data.BreakEnd.IsSet() {
		a.BreakEnd = data.BreakEnd.Ptr()
	}
	if v, ok := data.TotalMinutes.Get(); ok {
		a.TotalMinutes = v
	}
	if v, ok := data.OvertimeMinutes.Get(); ok {
		a.OvertimeMinutes = v
	}
	if v, ok := data.Status.Get(); ok {
		a.Status = v
	}
	if data.ClockInLocation.IsSet() {
		a.ClockInLocation = data.ClockInLocation.Ptr()
	}
	if data.ApprovedBy.IsSet() {
		a.ApprovedBy = data.ApprovedBy.Ptr()
	}
	if data.ApprovedAt.IsSet() {
		a.ApprovedAt = data.ApprovedAt.Ptr()
	}
}

var now = time.Date(2026, 3, 9, 9, 5, 0, 0, time.UTC)

func newRouter(store *fakeStore) http.Handler {
	svc := attendance.NewService(store)
	svc.Now = func() time.Time { return now }
	h := NewHandler(svc, nil, nil, auth.StaticPermissions{}, 15)
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

func TestStoreDerivesWorkedMinutes(t *testing.T) {
	cases := []struct {
		name           string
		body           string
		total          int
		overtime       int
		totalFormatted string
	}{
		{"standard day", `{"employee_id":1,"date":"2026-03-02","clock_in":"09:00","clock_out":"18:00","break_start":"12:00","break_end":"13:00"}`, 480, 0, "8h 0m"},
		{"long day", `{"employee_id":1,"date":"2026-03-03","clock_in":"08:00","clock_out":"18:00"}`, 600, 120, "10h 0m"},
		{"no clock out", `{"employee_id":1,"date":"2026-03-04","clock_in":"08:00:30"}`, 0, 0, "0h 0m"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := send(newRouter(newFakeStore()), http.MethodPost, "/attendance", tc.body)
			if rec.Code != http.StatusCreated {
				t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
			}
			got := decodeResource(t, rec)
			if got.TotalMinutes != tc.total || got.OvertimeMinutes != tc.overtime {
				t.Fatalf("expected %d/%d, got %d/%d", tc.total, tc.overtime, got.TotalMinutes, got.OvertimeMinutes)
			}
			if got.TotalHoursFormatted != tc.totalFormatted {
				t.Fatalf("expected %q, got %q", tc.totalFormatted, got.TotalHoursFormatted)
			}
			if got.Status != attendance.StatusPresent {
				t.Fatalf("expected default present status, got %q", got.Status)
			}
		})
	}
}

func TestStoreValidatesTimes(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"bad format", `{"employee_id":1,"date":"2026-03-02","clock_in":"9am"}`, "clock_in"},
		{"out before in", `{"employee_id":1,"date":"2026-03-02","clock_in":"10:00","clock_out":"09:00"}`, "clock_out"},
		{"break inverted", `{"employee_id":1,"date":"2026-03-02","break_start":"13:00","break_end":"12:00"}`, "break_end"},
		{"bad location", `{"employee_id":1,"date":"2026-03-02","clock_in_location":{"latitude":120,"longitude":3}}`, "clock_in_location"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := send(newRouter(newFakeStore()), http.MethodPost, "/attendance", tc.body)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d", rec.Code)
			}
			var body struct {
				Errors map[string][]string `json:"errors"`
			}
			_ = json.Unmarshal(rec.Body.Bytes(), &body)
			if _, ok := body.Errors[tc.field]; !ok {
				t.Fatalf("expected error on %s, got %v", tc.field, body.Errors)
			}
		})
	}
}

func TestClockInOutAndApprove(t *testing.T) {
	store := newFakeStore()
	router := newRouter(store)

	rec := send(router, http.MethodPost, "/attendance/clock-in", `{"employee_id":7,"location":{"latitude":6.9271,"longitude":79.8612}}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	in := decodeResource(t, rec)
	if in.ClockIn == nil || *in.ClockIn != "09:05" || in.ClockInLocation == nil {
		t.Fatalf("unexpected clock in %+v", in)
	}

	if rec := send(router, http.MethodPost, "/attendance/clock-in", `{"employee_id":7}`); rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on second clock in, got %d", rec.Code)
	}

	now = now.Add(9 * time.Hour)
	defer func() { now = now.Add(-9 * time.Hour) }()
	rec = send(router, http.MethodPost, "/attendance/1/clock-out", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if out := decodeResource(t, rec); out.TotalMinutes != 540 || out.OvertimeMinutes != 60 {
		t.Fatalf("unexpected totals %d/%d", out.TotalMinutes, out.OvertimeMinutes)
	}
	if rec := send(router, http.MethodPost, "/attendance/1/clock-out", ""); rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on second clock out, got %d", rec.Code)
	}

	rec = send(router, http.MethodPost, "/attendance/1/approve", `{"approved_by":3}`)
	if rec.Code != http.StatusOK || !decodeResource(t, rec).IsApproved {
		t.Fatalf("unexpected approve response %d %s", rec.Code, rec.Body.String())
	}
	if rec := send(router, http.MethodPost, "/attendance/1/approve", `{"approved_by":3}`); rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on second approve, got %d", rec.Code)
	}
}

func TestMonthlySummaryPDF(t *testing.T) {
	router := newRouter(newFakeStore())
	req := httptest.NewRequest(http.MethodGet, "/attendance/employee/1/summary.pdf?year=2026&month=3", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("Content-Type") != "application/pdf" {
		t.Fatalf("unexpected content type %q", rec.Header().Get("Content-Type"))
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Fatal("expected a pdf document")
	}

	rec = send(router, http.MethodGet, "/attendance/employee/1/summary?month=13", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for month 13, got %d", rec.Code)
	}
}
