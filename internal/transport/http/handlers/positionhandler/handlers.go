package positionhandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hradmin/internal/domain/auth"
	"hradmin/internal/domain/department"
	"hradmin/internal/domain/position"
	"hradmin/internal/transport/http/api"
	"hradmin/internal/transport/http/middleware"
	"hradmin/internal/transport/http/page"
	"hradmin/internal/transport/http/shared"
)

const (
	msgNotFound = "Position not found."
	msgCreated  = "Position created successfully."
	msgUpdated  = "Position updated successfully."
	msgDeleted  = "Position deleted successfully."
)

type Handler struct {
	Service     *position.Service
	Departments *department.Service
	Pages       *page.Renderer
	Perms       middleware.PermissionStore
	PerPage     int
}

func NewHandler(service *position.Service, departments *department.Service, pages *page.Renderer, perms middleware.PermissionStore, perPage int) *Handler {
	return &Handler{Service: service, Departments: departments, Pages: pages, Perms: perms, PerPage: perPage}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/positions", func(r chi.Router) {
		read := r.With(middleware.RequirePermission(auth.PermRead, h.Perms))
		write := r.With(middleware.RequirePermission(auth.PermWrite, h.Perms))

		read.Get("/", h.handleIndex)
		write.Get("/create", h.handleCreate)
		write.Post("/", h.handleStore)
		read.Get("/active", h.handleActive)
		read.Get("/department/{departmentID}", h.handleByDepartment)
		read.Get("/{id}", h.handleShow)
		write.Get("/{id}/edit", h.handleEdit)
		write.Put("/{id}", h.handleUpdate)
		write.Patch("/{id}", h.handleUpdate)
		write.Delete("/{id}", h.handleDestroy)
		read.Get("/{id}/statistics", h.handleStatistics)
	})
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	filter := position.Filter{
		DepartmentID: shared.QueryID(r, "department_id"),
		Level:        shared.QueryString(r, "level"),
		Status:       shared.QueryString(r, "status"),
		Search:       shared.QueryString(r, "search"),
	}
	result, err := h.Service.Paginate(r.Context(), shared.ParsePage(r, h.PerPage), filter)
	if err != nil {
		h.Pages.Error(w, r, err, msgNotFound)
		return
	}

	if h.Pages.Wants(r) {
		props := h.formOptions(r)
		props["positions"] = api.PageEnvelope(result, toResource)
		props["filters"] = shared.Filters(r, "department_id", "level", "status", "search")
		h.Pages.Render(w, r, "positions/index", props)
		return
	}
	api.Paginated(w, result, toResource)
}

// formOptions lists the choices a position form offers. A failed department
// lookup leaves the list empty rather than failing the page.
func (h *Handler) formOptions(r *http.Request) page.Props {
	props := page.Props{"levels": position.Levels, "statuses": position.Statuses}
	departments := []departmentOption{}
	if h.Departments != nil {
		if active, err := h.Departments.Active(r.Context()); err == nil {
			for _, d := range active {
				departments = append(departments, departmentOption{ID: d.ID, Name: d.Name, Code: d.Code})
			}
		}
	}
	props["departments"] = departments
	return props
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if !h.Pages.Wants(r) {
		api.Success(w, h.formOptions(r))
		return
	}
	h.Pages.Render(w, r, "positions/create", h.formOptions(r))
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

	p, err := h.Service.Create(r.Context(), data)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Created(w, msgCreated, toResource(p))
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (position.Position, bool) {
	id, ok := shared.PathID(r, "id")
	if !ok {
		h.Pages.Error(w, r, position.ErrNotFound, msgNotFound)
		return position.Position{}, false
	}
	p, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.Pages.Error(w, r, err, msgNotFound)
		return position.Position{}, false
	}
	return p, true
}

func (h *Handler) handleShow(w http.ResponseWriter, r *http.Request) {
	p, ok := h.load(w, r)
	if !ok {
		return
	}
	if h.Pages.Wants(r) {
		h.Pages.Render(w, r, "positions/view", page.Props{"position": toResource(p)})
		return
	}
	api.Success(w, toResource(p))
}

func (h *Handler) handleEdit(w http.ResponseWriter, r *http.Request) {
	p, ok := h.load(w, r)
	if !ok {
		return
	}
	props := h.formOptions(r)
	props["position"] = toResource(p)
	if !h.Pages.Wants(r) {
		api.Success(w, props)
		return
	}
	h.Pages.Render(w, r, "positions/edit", props)
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

	p, err := h.Service.Update(r.Context(), current.ID, data)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Updated(w, msgUpdated, toResource(p))
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

func (h *Handler) handleActive(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.Active(r.Context())
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Success(w, api.Collection(items, toResource))
}

func (h *Handler) handleByDepartment(w http.ResponseWriter, r *http.Request) {
	departmentID, ok := shared.PathID(r, "departmentID")
	if !ok {
		api.Fail(w, http.StatusNotFound, "Department not found.")
		return
	}
	items, err := h.Service.ByDepartment(r.Context(), departmentID)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Success(w, api.Collection(items, toResource))
}

func (h *Handler) handleStatistics(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(r, "id")
	if !ok {
		api.Fail(w, http.StatusNotFound, msgNotFound)
		return
	}
	stats, err := h.Service.Statistics(r.Context(), id)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Success(w, toStatistics(stats))
}
