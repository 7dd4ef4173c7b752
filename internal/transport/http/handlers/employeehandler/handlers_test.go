package employeehandler

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"hradmin/internal/domain/auth"
	"hradmin/internal/domain/employee"
	"hradmin/internal/transport/http/middleware"
)

type fakeStore struct {
	employee.StoreAPI
	rows   map[int64]employee.Employee
	nextID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: map[int64]employee.Employee{}, nextID: 1}
}

func (f *fakeStore) FindByID(_ context.Context, id int64) (employee.Employee, error) {
	e, ok := f.rows[id]
	if !ok {
		return employee.Employee{}, employee.ErrNotFound
	}
	return e, nil
}

func (f *fakeStore) findBy(match func(employee.Employee) bool) (employee.Employee, error) {
	for _, e := range f.rows {
		if match(e) {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrNotFound
}

func (f *fakeStore) FindByCode(_ context.Context, code string) (employee.Employee, error) {
	return f.findBy(func(e employee.Employee) bool { return strings.EqualFold(e.EmployeeCode, code) })
}

func (f *fakeStore) FindByEmail(_ context.Context, email string) (employee.Employee, error) {
	return f.findBy(func(e employee.Employee) bool { return strings.EqualFold(e.Email, email) })
}

func (f *fakeStore) List(context.Context) ([]employee.Employee, error) {
	out := []employee.Employee{}
	for id := int64(1); id < f.nextID; id++ {
		if e, ok := f.rows[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) ListByStatus(ctx context.Context, status string) ([]employee.Employee, error) {
	all, _ := f.List(ctx)
	out := []employee.Employee{}
	for _, e := range all {
		if e.Status == status {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) SearchByName(ctx context.Context, term string) ([]employee.Employee, error) {
	all, _ := f.List(ctx)
	out := []employee.Employee{}
	for _, e := range all {
		if strings.Contains(strings.ToLower(e.FullName()), strings.ToLower(term)) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) ManagerOf(_ context.Context, id int64) (*int64, error) {
	e, ok := f.rows[id]
	if !ok {
		return nil, employee.ErrNotFound
	}
	return e.ManagerID, nil
}

func (f *fakeStore) Create(_ context.Context, data employee.Data) (int64, error) {
	id := f.nextID
	f.nextID++
	e := employee.Employee{ID: id}
	apply(&e, data)
	f.rows[id] = e
	return id, nil
}

func (f *fakeStore) Update(_ context.Context, id int64, data employee.Data) (employee.Employee, error) {
	e, ok := f.rows[id]
	if !ok {
		return employee.Employee{}, employee.ErrNotFound
	}
	apply(&e, data)
	f.rows[id] = e
	return e, nil
}

func apply(e *employee.Employee, data employee.Data) {
	if v, ok := data.EmployeeCode.Get(); ok {
		e.EmployeeCode = v
	}
	if v, ok := data.FirstName.Get(); ok {
		e.FirstName = v
	}
	if v, ok := data.LastName.Get(); ok {
		e.LastName = v
	}
	if v, ok := data.Email.Get(); ok {
		e.Email = v
	}
	if v, ok := data.HireDate.Get(); ok {
		e.HireDate = v
	}
	if data.ManagerID.IsSet() {
		e.ManagerID = data.ManagerID.Ptr()
	}
	if data.Salary.IsSet() {
		e.Salary = data.Salary.Ptr()
	}
	if v, ok := data.Skills.Get(); ok {
		e.Skills = v
	}
	if v, ok := data.Status.Get(); ok {
		e.Status = v
	}
	if v, ok := data.EmploymentType.Get(); ok {
		e.EmploymentType = v
	}
}

var hrUser = &auth.UserContext{UserID: 1, Role: auth.RoleHR}

func newRouter(store *fakeStore, user *auth.UserContext) http.Handler {
	h := NewHandler(employee.NewService(store), nil, nil, nil, auth.StaticPermissions{}, 15)
	r := chi.NewRouter()
	r.Use(middleware.Auth("", user))
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

func seed(store *fakeStore, code, first, email string) {
	store.Create(context.Background(), employee.Data{})
	e := store.rows[store.nextID-1]
	e.EmployeeCode, e.FirstName, e.LastName, e.Email = code, first, "Doe", email
	e.Status = employee.StatusActive
	e.HireDate = time.Date(2022, 1, 10, 0, 0, 0, 0, time.UTC)
	salary := 4200.0
	e.Salary = &salary
	store.rows[e.ID] = e
}

type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func TestStoreNormalizesEmailAndDefaults(t *testing.T) {
	router := newRouter(newFakeStore(), hrUser)
	rec := send(router, http.MethodPost, "/employees", `{"employee_code":"EMP001","first_name":"Ada","last_name":"Lovelace","email":"Ada@Example.com","hire_date":"2023-04-01","skills":["go"," ","sql"]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Data Resource `json:"data"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Data.Email != "ada@example.com" {
		t.Fatalf("expected lowercased email, got %q", body.Data.Email)
	}
	if body.Data.Status != employee.StatusActive || body.Data.EmploymentType != employee.EmploymentFullTime {
		t.Fatalf("unexpected defaults %q %q", body.Data.Status, body.Data.EmploymentType)
	}
	if body.Data.FullName != "Ada Lovelace" || body.Data.HireDate != "2023-04-01" {
		t.Fatalf("unexpected resource %+v", body.Data)
	}
	if len(body.Data.Skills) != 2 {
		t.Fatalf("expected blank skills dropped, got %v", body.Data.Skills)
	}
}

func TestUpdateWithAnotherEmployeesEmailFails(t *testing.T) {
	store := newFakeStore()
	seed(store, "EMP001", "Ada", "ada@example.com")
	seed(store, "EMP002", "Grace", "grace@example.com")
	router := newRouter(store, hrUser)

	rec := send(router, http.MethodPut, "/employees/2", `{"email":"ADA@example.com"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var body errorBody
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if got := body.Errors["email"]; len(got) != 1 || got[0] != "This email address is already registered." {
		t.Fatalf("unexpected email errors %v", body.Errors)
	}
	if store.rows[2].Email != "grace@example.com" {
		t.Fatalf("expected record unchanged, got %q", store.rows[2].Email)
	}

	rec = send(router, http.MethodPut, "/employees/2", `{"email":"grace@example.com","first_name":"Grace"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected own email accepted, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestManagerCycleRejected(t *testing.T) {
	store := newFakeStore()
	seed(store, "EMP001", "Ada", "ada@example.com")
	seed(store, "EMP002", "Grace", "grace@example.com")
	router := newRouter(store, hrUser)

	if rec := send(router, http.MethodPatch, "/employees/2", `{"manager_id":1}`); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	for _, body := range []string{`{"manager_id":2}`, `{"manager_id":1}`} {
		rec := send(router, http.MethodPatch, "/employees/1", body)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%s: expected 422, got %d", body, rec.Code)
		}
	}
	if store.rows[1].ManagerID != nil {
		t.Fatalf("expected manager untouched, got %v", *store.rows[1].ManagerID)
	}
}

func TestSalaryHiddenWithoutCompensationPermission(t *testing.T) {
	store := newFakeStore()
	seed(store, "EMP001", "Ada", "ada@example.com")

	rec := send(newRouter(store, &auth.UserContext{UserID: 2, Role: auth.RoleViewer}), http.MethodGet, "/employees/1", "")
	if strings.Contains(rec.Body.String(), `"salary"`) {
		t.Fatalf("expected salary hidden, got %s", rec.Body.String())
	}
	rec = send(newRouter(store, hrUser), http.MethodGet, "/employees/1", "")
	if !strings.Contains(rec.Body.String(), `"salary":4200`) {
		t.Fatalf("expected salary visible, got %s", rec.Body.String())
	}
}

func TestSearchRequiresTwoCharacters(t *testing.T) {
	store := newFakeStore()
	seed(store, "EMP001", "Ada", "ada@example.com")
	router := newRouter(store, hrUser)

	if rec := send(router, http.MethodGet, "/employees/search?query=a", ""); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	rec := send(router, http.MethodGet, "/employees/search?query=ad", "")
	var body struct {
		Data []Resource `json:"data"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if len(body.Data) != 1 {
		t.Fatalf("expected one match, got %s", rec.Body.String())
	}
}

func TestExportWritesWorkbook(t *testing.T) {
	store := newFakeStore()
	seed(store, "EMP001", "Ada", "ada@example.com")
	router := newRouter(store, hrUser)

	req := httptest.NewRequest(http.MethodGet, "/employees/export.xlsx", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Disposition"), "attachment;") {
		t.Fatalf("expected attachment, got %q", rec.Header().Get("Content-Disposition"))
	}
	if _, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len())); err != nil {
		t.Fatalf("expected xlsx archive: %v", err)
	}
}
