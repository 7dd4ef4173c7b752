package departmenthandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hradmin/internal/domain/auth"
	"hradmin/internal/domain/department"
	"hradmin/internal/transport/http/api"
	"hradmin/internal/transport/http/middleware"
	"hradmin/internal/transport/http/page"
	"hradmin/internal/transport/http/shared"
)

const (
	msgNotFound = "Department not found."
	msgCreated  = "Department created successfully."
	msgUpdated  = "Department updated successfully."
	msgDeleted  = "Department deleted successfully."
)

type Handler struct {
	Service   *department.Service
	Employees shared.ExistsFunc
	Pages     *page.Renderer
	Perms     middleware.PermissionStore
	PerPage   int
}

func NewHandler(service *department.Service, employees shared.ExistsFunc, pages *page.Renderer, perms middleware.PermissionStore, perPage int) *Handler {
	return &Handler{Service: service, Employees: employees, Pages: pages, Perms: perms, PerPage: perPage}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/departments", func(r chi.Router) {
		read := r.With(middleware.RequirePermission(auth.PermRead, h.Perms))
		write := r.With(middleware.RequirePermission(auth.PermWrite, h.Perms))

		read.Get("/", h.handleIndex)
		write.Get("/create", h.handleCreate)
		write.Post("/", h.handleStore)
		read.Get("/active", h.handleActive)
		read.Get("/{id}", h.handleShow)
		write.Get("/{id}/edit", h.handleEdit)
		write.Put("/{id}", h.handleUpdate)
		write.Patch("/{id}", h.handleUpdate)
		write.Delete("/{id}", h.handleDestroy)
		read.Get("/{id}/statistics", h.handleStatistics)
	})
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	filter := department.Filter{
		Status: shared.QueryString(r, "status"),
		Search: shared.QueryString(r, "search"),
	}
	result, err := h.Service.Paginate(r.Context(), shared.ParsePage(r, h.PerPage), filter)
	if err != nil {
		h.Pages.Error(w, r, err, msgNotFound)
		return
	}

	if h.Pages.Wants(r) {
		h.Pages.Render(w, r, "departments/index", page.Props{
			"departments": api.PageEnvelope(result, toResource),
			"filters":     shared.Filters(r, "status", "search"),
		})
		return
	}
	api.Paginated(w, result, toResource)
}

func (h *Handler) formOptions() page.Props {
	return page.Props{"statuses": department.Statuses}
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if !h.Pages.Wants(r) {
		api.Success(w, h.formOptions())
		return
	}
	h.Pages.Render(w, r, "departments/create", h.formOptions())
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

	d, err := h.Service.Create(r.Context(), data)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Created(w, msgCreated, toResource(d))
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (department.Department, bool) {
	id, ok := shared.PathID(r, "id")
	if !ok {
		h.Pages.Error(w, r, department.ErrNotFound, msgNotFound)
		return department.Department{}, false
	}
	d, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.Pages.Error(w, r, err, msgNotFound)
		return department.Department{}, false
	}
	return d, true
}

func (h *Handler) handleShow(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}
	if h.Pages.Wants(r) {
		h.Pages.Render(w, r, "departments/view", page.Props{"department": toResource(d)})
		return
	}
	api.Success(w, toResource(d))
}

func (h *Handler) handleEdit(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}
	props := h.formOptions()
	props["department"] = toResource(d)
	if !h.Pages.Wants(r) {
		api.Success(w, props)
		return
	}
	h.Pages.Render(w, r, "departments/edit", props)
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

	d, err := h.Service.Update(r.Context(), current.ID, data)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Updated(w, msgUpdated, toResource(d))
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
