package performancehandler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"hradmin/internal/domain/auth"
	"hradmin/internal/domain/department"
	"hradmin/internal/domain/employee"
	"hradmin/internal/domain/performance"
	domain "hradmin/internal/domain/shared"
	"hradmin/internal/requestctx"
	"hradmin/internal/transport/http/api"
	"hradmin/internal/transport/http/middleware"
	"hradmin/internal/transport/http/page"
	"hradmin/internal/transport/http/shared"
)

const (
	msgNotFound  = "Performance review not found."
	msgCreated   = "Performance review created successfully."
	msgUpdated   = "Performance review updated successfully."
	msgDeleted   = "Performance review deleted successfully."
	msgCompleted = "Performance review completed successfully."

	msgEmployeeNotFound   = "Employee not found."
	msgDepartmentNotFound = "Department not found."

	defaultUpcomingDays = 30
)

type Handler struct {
	Service     *performance.Service
	Employees   *employee.Service
	Departments *department.Service
	Pages       *page.Renderer
	Perms       middleware.PermissionStore
	PerPage     int
}

func NewHandler(service *performance.Service, employees *employee.Service, departments *department.Service, pages *page.Renderer, perms middleware.PermissionStore, perPage int) *Handler {
	return &Handler{Service: service, Employees: employees, Departments: departments, Pages: pages, Perms: perms, PerPage: perPage}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/performance-reviews", func(r chi.Router) {
		read := r.With(middleware.RequirePermission(auth.PermRead, h.Perms))
		write := r.With(middleware.RequirePermission(auth.PermWrite, h.Perms))
		approve := r.With(middleware.RequirePermission(auth.PermApprove, h.Perms))

		read.Get("/", h.handleIndex)
		write.Get("/create", h.handleCreate)
		write.Post("/", h.handleStore)
		read.Get("/pending", h.handlePending)
		read.Get("/overdue", h.handleOverdue)
		read.Get("/due", h.handleDue)
		read.Get("/upcoming", h.handleUpcoming)
		read.Get("/statistics", h.handleStatistics)
		read.Get("/employee/{employeeID}/history", h.handleHistory)
		read.Get("/employee/{employeeID}/latest", h.handleLatest)
		read.Get("/employee/{employeeID}/average", h.handleEmployeeAverage)
		read.Get("/department/{departmentID}/average", h.handleDepartmentAverage)
		read.Get("/{id}", h.handleShow)
		write.Get("/{id}/edit", h.handleEdit)
		write.Put("/{id}", h.handleUpdate)
		write.Patch("/{id}", h.handleUpdate)
		write.Delete("/{id}", h.handleDestroy)
		approve.Post("/{id}/complete", h.handleComplete)
	})
}

func (h *Handler) employeeExists() shared.ExistsFunc {
	if h.Employees == nil {
		return nil
	}
	return h.Employees.Exists
}

func (h *Handler) today() time.Time {
	return domain.DateOnly(h.Service.Now())
}

func (h *Handler) resources() func(performance.Review) Resource {
	today := h.today()
	return func(rv performance.Review) Resource {
		return toResource(rv, today)
	}
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	filter := performance.Filter{
		EmployeeID:   shared.QueryID(r, "employee_id"),
		ReviewerID:   shared.QueryID(r, "reviewer_id"),
		Status:       shared.QueryString(r, "status"),
		ReviewType:   shared.QueryString(r, "review_type"),
		ReviewPeriod: shared.QueryString(r, "review_period"),
		Search:       shared.QueryString(r, "search"),
	}
	result, err := h.Service.Paginate(r.Context(), shared.ParsePage(r, h.PerPage), filter)
	if err != nil {
		h.Pages.Error(w, r, err, msgNotFound)
		return
	}

	if h.Pages.Wants(r) {
		props := h.formOptions(r)
		props["reviews"] = api.PageEnvelope(result, h.resources())
		props["filters"] = shared.Filters(r, "employee_id", "reviewer_id", "status", "review_type", "review_period", "search")
		h.Pages.Render(w, r, "performance-reviews/index", props)
		return
	}
	api.Paginated(w, result, h.resources())
}

type employeeOption struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
}

func (h *Handler) formOptions(r *http.Request) page.Props {
	employees := []employeeOption{}
	if h.Employees != nil {
		items, err := h.Employees.Active(r.Context())
		if err != nil {
			requestctx.Logger(r.Context()).Warn("load employee options", zap.Error(err))
		}
		for _, e := range items {
			employees = append(employees, employeeOption{ID: e.ID, FullName: e.FullName()})
		}
	}
	ratings := make([]ratingOption, 0, performance.MaxRating)
	for rating := performance.MinRating; rating <= performance.MaxRating; rating++ {
		ratings = append(ratings, ratingOption{Value: rating, Label: performance.RatingDescription(&rating)})
	}
	return page.Props{
		"employees":    employees,
		"statuses":     performance.Statuses,
		"review_types": performance.Types,
		"ratings":      ratings,
	}
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if !h.Pages.Wants(r) {
		api.Success(w, h.formOptions(r))
		return
	}
	h.Pages.Render(w, r, "performance-reviews/create", h.formOptions(r))
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

	rv, err := h.Service.Create(r.Context(), data)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Created(w, msgCreated, h.resources()(rv))
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (performance.Review, bool) {
	id, ok := shared.PathID(r, "id")
	if !ok {
		h.Pages.Error(w, r, performance.ErrNotFound, msgNotFound)
		return performance.Review{}, false
	}
	rv, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.Pages.Error(w, r, err, msgNotFound)
		return performance.Review{}, false
	}
	return rv, true
}

func (h *Handler) handleShow(w http.ResponseWriter, r *http.Request) {
	rv, ok := h.load(w, r)
	if !ok {
		return
	}
	if h.Pages.Wants(r) {
		h.Pages.Render(w, r, "performance-reviews/view", page.Props{"review": h.resources()(rv)})
		return
	}
	api.Success(w, h.resources()(rv))
}

func (h *Handler) handleEdit(w http.ResponseWriter, r *http.Request) {
	rv, ok := h.load(w, r)
	if !ok {
		return
	}
	props := h.formOptions(r)
	props["review"] = h.resources()(rv)
	if !h.Pages.Wants(r) {
		api.Success(w, props)
		return
	}
	h.Pages.Render(w, r, "performance-reviews/edit", props)
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

	rv, err := h.Service.Update(r.Context(), current.ID, data)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Updated(w, msgUpdated, h.resources()(rv))
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

func (h *Handler) handleComplete(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(r, "id")
	if !ok {
		api.Fail(w, http.StatusNotFound, msgNotFound)
		return
	}
	rv, err := h.Service.Complete(r.Context(), id)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Updated(w, msgCompleted, h.resources()(rv))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, items []performance.Review, err error) {
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Success(w, api.Collection(items, h.resources()))
}

func (h *Handler) handlePending(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.Pending(r.Context())
	h.list(w, r, items, err)
}

func (h *Handler) handleOverdue(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.Overdue(r.Context())
	h.list(w, r, items, err)
}

func (h *Handler) handleDue(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.Due(r.Context(), shared.QueryInt(r, "days", performance.DueSoonDays))
	h.list(w, r, items, err)
}

func (h *Handler) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.Upcoming(r.Context(), shared.QueryInt(r, "days", defaultUpcomingDays))
	h.list(w, r, items, err)
}

func (h *Handler) handleStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Statistics(r.Context(), shared.QueryInt(r, "year", h.today().Year()))
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Success(w, toStatistics(stats))
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := shared.PathID(r, "employeeID")
	if !ok {
		api.Fail(w, http.StatusNotFound, msgEmployeeNotFound)
		return
	}
	items, err := h.Service.History(r.Context(), employeeID)
	h.list(w, r, items, err)
}

func (h *Handler) handleLatest(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := shared.PathID(r, "employeeID")
	if !ok {
		api.Fail(w, http.StatusNotFound, msgEmployeeNotFound)
		return
	}
	rv, err := h.Service.Latest(r.Context(), employeeID)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Success(w, h.resources()(rv))
}

func (h *Handler) handleEmployeeAverage(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := shared.PathID(r, "employeeID")
	if !ok {
		api.Fail(w, http.StatusNotFound, msgEmployeeNotFound)
		return
	}
	if h.Employees != nil {
		if _, err := h.Employees.Get(r.Context(), employeeID); err != nil {
			shared.WriteError(w, r, err, msgEmployeeNotFound)
			return
		}
	}
	avg, err := h.Service.EmployeeAverage(r.Context(), employeeID)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Success(w, averageResource{EmployeeID: &employeeID, AverageRating: avg})
}

func (h *Handler) handleDepartmentAverage(w http.ResponseWriter, r *http.Request) {
	departmentID, ok := shared.PathID(r, "departmentID")
	if !ok {
		api.Fail(w, http.StatusNotFound, msgDepartmentNotFound)
		return
	}
	if h.Departments != nil {
		if _, err := h.Departments.Get(r.Context(), departmentID); err != nil {
			shared.WriteError(w, r, err, msgDepartmentNotFound)
			return
		}
	}
	avg, err := h.Service.DepartmentAverage(r.Context(), departmentID)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Success(w, averageResource{DepartmentID: &departmentID, AverageRating: avg})
}
