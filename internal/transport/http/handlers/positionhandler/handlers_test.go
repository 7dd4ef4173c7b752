package positionhandler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"hradmin/internal/domain/auth"
	"hradmin/internal/domain/department"
	"hradmin/internal/domain/position"
	"hradmin/internal/transport/http/middleware"
)

type fakeDepartments struct {
	department.StoreAPI
	rows map[int64]department.Department
}

func (f *fakeDepartments) FindByID(_ context.Context, id int64) (department.Department, error) {
	d, ok := f.rows[id]
	if !ok {
		return department.Department{}, department.ErrNotFound
	}
	return d, nil
}

type fakePositions struct {
	position.StoreAPI
	rows   map[int64]position.Position
	nextID int64
}

func (f *fakePositions) FindByID(_ context.Context, id int64) (position.Position, error) {
	p, ok := f.rows[id]
	if !ok {
		return position.Position{}, position.ErrNotFound
	}
	return p, nil
}

func (f *fakePositions) FindByCode(_ context.Context, code string) (position.Position, error) {
	for _, p := range f.rows {
		if strings.EqualFold(p.Code, code) {
			return p, nil
		}
	}
	return position.Position{}, position.ErrNotFound
}

func (f *fakePositions) ListByDepartment(_ context.Context, departmentID int64) ([]position.Position, error) {
	out := []position.Position{}
	for id := int64(1); id < f.nextID; id++ {
		if p, ok := f.rows[id]; ok && p.DepartmentID == departmentID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePositions) Create(_ context.Context, data position.Data) (int64, error) {
	id := f.nextID
	f.nextID++
	p := position.Position{ID: id}
	apply(&p, data)
	f.rows[id] = p
	return id, nil
}

func (f *fakePositions) Update(_ context.Context, id int64, data position.Data) (position.Position, error) {
	p, ok := f.rows[id]
	if !ok {
		return position.Position{}, position.ErrNotFound
	}
	apply(&p, data)
	f.rows[id] = p
	return p, nil
}

func apply(p *position.Position, data position.Data) {
	if v, ok := data.Title.Get(); ok {
		p.Title = v
	}
	if v, ok := data.Code.Get(); ok {
		p.Code = v
	}
	if v, ok := data.DepartmentID.Get(); ok {
		p.DepartmentID = v
	}
	if v, ok := data.Level.Get(); ok {
		p.Level = v
	}
	if data.MinSalary.IsSet() {
		p.MinSalary = data.MinSalary.Ptr()
	}
	if data.MaxSalary.IsSet() {
		p.MaxSalary = data.MaxSalary.Ptr()
	}
	if v, ok := data.Status.Get(); ok {
		p.Status = v
	}
}

func newRouter(store *fakePositions) http.Handler {
	departments := department.NewService(&fakeDepartments{rows: map[int64]department.Department{
		1: {ID: 1, Name: "Engineering", Code: "ENG", Status: department.StatusActive},
	}})
	h := NewHandler(position.NewService(store), departments, nil, auth.StaticPermissions{}, 15)
	r := chi.NewRouter()
	r.Use(middleware.Auth("", &auth.UserContext{UserID: 1, Role: auth.RoleHR}))
	h.RegisterRoutes(r)
	return r
}

func newStore() *fakePositions {
	return &fakePositions{rows: map[int64]position.Position{}, nextID: 1}
}

func send(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestStoreDefaultsAndSalaryRange(t *testing.T) {
	router := newRouter(newStore())
	rec := send(router, http.MethodPost, "/positions", `{"title":"Backend Engineer","code":"BE1","department_id":1,"level":"senior","min_salary":50000,"max_salary":80000}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Data Resource `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Data.Status != position.StatusActive {
		t.Fatalf("expected default active status, got %q", body.Data.Status)
	}
	if body.Data.SalaryRange != "50000.00 - 80000.00" {
		t.Fatalf("unexpected salary range %q", body.Data.SalaryRange)
	}
}

func TestStoreValidation(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		field string
		want  string
	}{
		{"missing department", `{"title":"QA","code":"QA1","level":"mid"}`, "department_id", "Department is required."},
		{"unknown department", `{"title":"QA","code":"QA1","level":"mid","department_id":9}`, "department_id", "Selected department does not exist."},
		{"bad level", `{"title":"QA","code":"QA1","level":"wizard","department_id":1}`, "level", "Selected level is invalid."},
		{"inverted salary", `{"title":"QA","code":"QA1","level":"mid","department_id":1,"min_salary":100,"max_salary":50}`, "max_salary", "Maximum salary must be greater than or equal to minimum salary."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := send(newRouter(newStore()), http.MethodPost, "/positions", tc.body)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d", rec.Code)
			}
			var body struct {
				Errors map[string][]string `json:"errors"`
			}
			_ = json.Unmarshal(rec.Body.Bytes(), &body)
			if got := body.Errors[tc.field]; len(got) == 0 || got[0] != tc.want {
				t.Fatalf("expected %q on %s, got %v", tc.want, tc.field, body.Errors)
			}
		})
	}
}

func TestPartialUpdateChecksStoredMinimum(t *testing.T) {
	store := newStore()
	router := newRouter(store)
	send(router, http.MethodPost, "/positions", `{"title":"QA","code":"QA1","level":"mid","department_id":1,"min_salary":40000,"max_salary":60000}`)

	rec := send(router, http.MethodPatch, "/positions/1", `{"max_salary":30000}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if max := store.rows[1].MaxSalary; max == nil || *max != 60000 {
		t.Fatalf("expected stored maximum untouched, got %v", max)
	}
}

func TestByDepartment(t *testing.T) {
	router := newRouter(newStore())
	send(router, http.MethodPost, "/positions", `{"title":"QA","code":"QA1","level":"mid","department_id":1}`)

	rec := send(router, http.MethodGet, "/positions/department/1", "")
	var body struct {
		Data []Resource `json:"data"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if rec.Code != http.StatusOK || len(body.Data) != 1 || body.Data[0].Code != "QA1" {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}
