package employeehandler

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"hradmin/internal/domain/auth"
	"hradmin/internal/domain/department"
	"hradmin/internal/domain/employee"
	"hradmin/internal/domain/position"
	domain "hradmin/internal/domain/shared"
	"hradmin/internal/requestctx"
	"hradmin/internal/transport/http/api"
	"hradmin/internal/transport/http/middleware"
	"hradmin/internal/transport/http/page"
	"hradmin/internal/transport/http/shared"
)

const (
	msgNotFound = "Employee not found."
	msgCreated  = "Employee created successfully."
	msgUpdated  = "Employee updated successfully."
	msgDeleted  = "Employee deleted successfully."

	msgSearchTooShort = "Search query must be at least 2 characters."
	minSearchLength   = 2
	defaultWindowDays = 30
)

type Handler struct {
	Service     *employee.Service
	Departments *department.Service
	Positions   *position.Service
	Pages       *page.Renderer
	Perms       middleware.PermissionStore
	PerPage     int
}

func NewHandler(service *employee.Service, departments *department.Service, positions *position.Service, pages *page.Renderer, perms middleware.PermissionStore, perPage int) *Handler {
	return &Handler{Service: service, Departments: departments, Positions: positions, Pages: pages, Perms: perms, PerPage: perPage}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		read := r.With(middleware.RequirePermission(auth.PermRead, h.Perms))
		write := r.With(middleware.RequirePermission(auth.PermWrite, h.Perms))

		read.Get("/", h.handleIndex)
		write.Get("/create", h.handleCreate)
		write.Post("/", h.handleStore)
		read.Get("/active", h.handleActive)
		read.Get("/inactive", h.handleInactive)
		read.Get("/search", h.handleSearch)
		read.Get("/statistics", h.handleStatistics)
		read.Get("/upcoming-birthdays", h.handleBirthdays)
		read.Get("/upcoming-anniversaries", h.handleAnniversaries)
		read.Get("/export.xlsx", h.handleExport)
		read.Get("/department/{departmentID}", h.handleByDepartment)
		read.Get("/position/{positionID}", h.handleByPosition)
		read.Get("/{id}", h.handleShow)
		read.Get("/{id}/subordinates", h.handleSubordinates)
		write.Get("/{id}/edit", h.handleEdit)
		write.Put("/{id}", h.handleUpdate)
		write.Patch("/{id}", h.handleUpdate)
		write.Delete("/{id}", h.handleDestroy)
	})
}

// resources picks the projection for the caller. Salary is only visible with
// the compensation permission.
func (h *Handler) resources(r *http.Request) func(employee.Employee) Resource {
	withSalary := middleware.Can(r.Context(), auth.PermCompensation)
	return func(e employee.Employee) Resource {
		return toResource(e, withSalary)
	}
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	filter := employee.Filter{
		DepartmentID:   shared.QueryID(r, "department_id"),
		PositionID:     shared.QueryID(r, "position_id"),
		Status:         shared.QueryString(r, "status"),
		EmploymentType: shared.QueryString(r, "employment_type"),
		Search:         shared.QueryString(r, "search"),
	}
	result, err := h.Service.Paginate(r.Context(), shared.ParsePage(r, h.PerPage), filter)
	if err != nil {
		h.Pages.Error(w, r, err, msgNotFound)
		return
	}

	if h.Pages.Wants(r) {
		props := h.formOptions(r)
		props["employees"] = api.PageEnvelope(result, h.resources(r))
		props["filters"] = shared.Filters(r, "department_id", "position_id", "status", "employment_type", "search")
		h.Pages.Render(w, r, "employees/index", props)
		return
	}
	api.Paginated(w, result, h.resources(r))
}

type option struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// formOptions lists the choices an employee form offers. Lookup failures
// leave a list empty and are logged.
func (h *Handler) formOptions(r *http.Request) page.Props {
	log := requestctx.Logger(r.Context())
	departments, positions, managers := []option{}, []option{}, []option{}
	if h.Departments != nil {
		items, err := h.Departments.Active(r.Context())
		if err != nil {
			log.Warn("load department options", zap.Error(err))
		}
		for _, d := range items {
			departments = append(departments, option{ID: d.ID, Label: d.Name})
		}
	}
	if h.Positions != nil {
		items, err := h.Positions.Active(r.Context())
		if err != nil {
			log.Warn("load position options", zap.Error(err))
		}
		for _, p := range items {
			positions = append(positions, option{ID: p.ID, Label: p.Title})
		}
	}
	items, err := h.Service.Active(r.Context())
	if err != nil {
		log.Warn("load manager options", zap.Error(err))
	}
	for _, e := range items {
		managers = append(managers, option{ID: e.ID, Label: e.FullName()})
	}
	return page.Props{
		"departments":      departments,
		"positions":        positions,
		"managers":         managers,
		"statuses":         employee.Statuses,
		"employment_types": employee.EmploymentTypes,
		"genders":          employee.Genders,
	}
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if !h.Pages.Wants(r) {
		api.Success(w, h.formOptions(r))
		return
	}
	h.Pages.Render(w, r, "employees/create", h.formOptions(r))
}

func (h *Handler) handleStore(w http.ResponseWriter, r *http.Request) {
	in, err := shared.DecodeInput(r)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	data, err := h.parse(r.Context(), in, 0)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}

	e, err := h.Service.Create(r.Context(), data)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Created(w, msgCreated, h.resources(r)(e))
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (employee.Employee, bool) {
	id, ok := shared.PathID(r, "id")
	if !ok {
		h.Pages.Error(w, r, employee.ErrNotFound, msgNotFound)
		return employee.Employee{}, false
	}
	e, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.Pages.Error(w, r, err, msgNotFound)
		return employee.Employee{}, false
	}
	return e, true
}

func (h *Handler) handleShow(w http.ResponseWriter, r *http.Request) {
	e, ok := h.load(w, r)
	if !ok {
		return
	}
	if h.Pages.Wants(r) {
		h.Pages.Render(w, r, "employees/view", page.Props{"employee": h.resources(r)(e)})
		return
	}
	api.Success(w, h.resources(r)(e))
}

func (h *Handler) handleEdit(w http.ResponseWriter, r *http.Request) {
	e, ok := h.load(w, r)
	if !ok {
		return
	}
	props := h.formOptions(r)
	props["employee"] = h.resources(r)(e)
	if !h.Pages.Wants(r) {
		api.Success(w, props)
		return
	}
	h.Pages.Render(w, r, "employees/edit", props)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	current, ok := h.load(w, r)
	if !ok {
		return
	}
	in, err := shared.DecodeInput(r)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	data, err := h.parse(r.Context(), in, current.ID)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}

	e, err := h.Service.Update(r.Context(), current.ID, data)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Updated(w, msgUpdated, h.resources(r)(e))
}

func (h *Handler) handleDestroy(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(r, "id")
	if !ok {
		api.Fail(w, http.StatusNotFound, msgNotFound)
		return
	}
	removed, err := h.Service.Delete(r.Context(), id)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	if !removed {
		api.Fail(w, http.StatusNotFound, msgNotFound)
		return
	}
	api.Message(w, http.StatusOK, msgDeleted)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, items []employee.Employee, err error) {
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Success(w, api.Collection(items, h.resources(r)))
}

func (h *Handler) handleActive(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.Active(r.Context())
	h.list(w, r, items, err)
}

func (h *Handler) handleInactive(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.Inactive(r.Context())
	h.list(w, r, items, err)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if len([]rune(query)) < minSearchLength {
		shared.WriteError(w, r, domain.NewValidationError("query", msgSearchTooShort), msgNotFound)
		return
	}
	items, err := h.Service.Search(r.Context(), query)
	h.list(w, r, items, err)
}

func (h *Handler) handleByDepartment(w http.ResponseWriter, r *http.Request) {
	departmentID, ok := shared.PathID(r, "departmentID")
	if !ok {
		api.Fail(w, http.StatusNotFound, "Department not found.")
		return
	}
	items, err := h.Service.ByDepartment(r.Context(), departmentID)
	h.list(w, r, items, err)
}

func (h *Handler) handleByPosition(w http.ResponseWriter, r *http.Request) {
	positionID, ok := shared.PathID(r, "positionID")
	if !ok {
		api.Fail(w, http.StatusNotFound, "Position not found.")
		return
	}
	items, err := h.Service.ByPosition(r.Context(), positionID)
	h.list(w, r, items, err)
}

func (h *Handler) handleSubordinates(w http.ResponseWriter, r *http.Request) {
	e, ok := h.load(w, r)
	if !ok {
		return
	}
	items, err := h.Service.Subordinates(r.Context(), e.ID)
	h.list(w, r, items, err)
}

func (h *Handler) handleBirthdays(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.UpcomingBirthdays(r.Context(), shared.QueryInt(r, "days", defaultWindowDays))
	h.list(w, r, items, err)
}

func (h *Handler) handleAnniversaries(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.UpcomingAnniversaries(r.Context(), shared.QueryInt(r, "days", defaultWindowDays))
	h.list(w, r, items, err)
}

func (h *Handler) handleStatistics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	total, err := h.Service.Count(ctx)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	byStatus, err := h.Service.CountByStatus(ctx)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	byDepartment, err := h.Service.CountByDepartment(ctx)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Success(w, statisticsResource{
		Total:        total,
		ByStatus:     byStatus,
		ByDepartment: api.Collection(byDepartment, toDepartmentCount),
	})
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List(r.Context())
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	filename := "employees-" + time.Now().Format("2006-01-02") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := employee.WriteWorkbook(w, items, middleware.Can(r.Context(), auth.PermCompensation)); err != nil {
		requestctx.Logger(r.Context()).Error("write employee workbook", zap.Error(err))
	}
}
