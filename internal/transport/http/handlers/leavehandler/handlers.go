package leavehandler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"hradmin/internal/domain/auth"
	"hradmin/internal/domain/employee"
	"hradmin/internal/domain/leave"
	domain "hradmin/internal/domain/shared"
	"hradmin/internal/platform/storage"
	"hradmin/internal/requestctx"
	"hradmin/internal/transport/http/api"
	"hradmin/internal/transport/http/middleware"
	"hradmin/internal/transport/http/page"
	"hradmin/internal/transport/http/shared"
)

const (
	msgNotFound  = "Leave request not found."
	msgCreated   = "Leave request created successfully."
	msgUpdated   = "Leave request updated successfully."
	msgDeleted   = "Leave request deleted successfully."
	msgApproved  = "Leave request approved successfully."
	msgRejected  = "Leave request rejected successfully."
	msgCancelled = "Leave request cancelled successfully."
	msgUploaded  = "Attachment uploaded successfully."

	msgAttachmentNotFound = "Attachment not found."
	msgStorageUnavailable = "File storage is not available."
	msgFileRequired       = "A file is required."

	defaultUpcomingDays = 30
)

type Handler struct {
	Service   *leave.Service
	Employees *employee.Service
	Pages     *page.Renderer
	Perms     middleware.PermissionStore
	PerPage   int
	// MaxAttachmentBytes caps one uploaded document.
	MaxAttachmentBytes int64
}

func NewHandler(service *leave.Service, employees *employee.Service, pages *page.Renderer, perms middleware.PermissionStore, perPage int, maxAttachmentBytes int64) *Handler {
	return &Handler{
		Service:            service,
		Employees:          employees,
		Pages:              pages,
		Perms:              perms,
		PerPage:            perPage,
		MaxAttachmentBytes: maxAttachmentBytes,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leaves", func(r chi.Router) {
		read := r.With(middleware.RequirePermission(auth.PermRead, h.Perms))
		write := r.With(middleware.RequirePermission(auth.PermWrite, h.Perms))
		approve := r.With(middleware.RequirePermission(auth.PermApprove, h.Perms))

		read.Get("/", h.handleIndex)
		write.Get("/create", h.handleCreate)
		write.Post("/", h.handleStore)
		read.Get("/pending", h.handlePending)
		read.Get("/current", h.handleCurrent)
		read.Get("/upcoming", h.handleUpcoming)
		read.Get("/calendar", h.handleCalendar)
		read.Get("/statistics", h.handleStatistics)
		read.Get("/balance", h.handleBalance)
		read.Get("/{id}", h.handleShow)
		write.Get("/{id}/edit", h.handleEdit)
		write.Put("/{id}", h.handleUpdate)
		write.Patch("/{id}", h.handleUpdate)
		write.Delete("/{id}", h.handleDestroy)
		approve.Post("/{id}/approve", h.handleApprove)
		approve.Post("/{id}/reject", h.handleReject)
		write.Post("/{id}/cancel", h.handleCancel)
		write.Post("/{id}/attachments", h.handleUpload)
		read.Get("/{id}/attachments/{name}", h.handleDownload)
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

func (h *Handler) resources() func(leave.Leave) Resource {
	today := h.today()
	return func(l leave.Leave) Resource {
		return toResource(l, today)
	}
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	filter := leave.Filter{
		EmployeeID: shared.QueryID(r, "employee_id"),
		Status:     shared.QueryString(r, "status"),
		LeaveType:  shared.QueryString(r, "leave_type"),
		DateFrom:   shared.QueryDate(r, "date_from"),
		DateTo:     shared.QueryDate(r, "date_to"),
		Search:     shared.QueryString(r, "search"),
	}
	result, err := h.Service.Paginate(r.Context(), shared.ParsePage(r, h.PerPage), filter)
	if err != nil {
		h.Pages.Error(w, r, err, msgNotFound)
		return
	}

	if h.Pages.Wants(r) {
		props := h.formOptions(r)
		props["leaves"] = api.PageEnvelope(result, h.resources())
		props["filters"] = shared.Filters(r, "employee_id", "status", "leave_type", "date_from", "date_to", "search")
		h.Pages.Render(w, r, "leaves/index", props)
		return
	}
	api.Paginated(w, result, h.resources())
}

type option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type employeeOption struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
}

func (h *Handler) formOptions(r *http.Request) page.Props {
	types := make([]option, 0, len(leave.Types))
	for _, t := range leave.Types {
		types = append(types, option{Value: t, Label: leave.TypeLabel(t)})
	}
	statuses := make([]option, 0, len(leave.Statuses))
	for _, s := range leave.Statuses {
		statuses = append(statuses, option{Value: s, Label: leave.StatusLabel(s)})
	}
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
	return page.Props{
		"leave_types":      types,
		"statuses":         statuses,
		"half_day_periods": leave.HalfDayPeriods,
		"employees":        employees,
	}
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if !h.Pages.Wants(r) {
		api.Success(w, h.formOptions(r))
		return
	}
	h.Pages.Render(w, r, "leaves/create", h.formOptions(r))
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

	l, err := h.Service.Create(r.Context(), data)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Created(w, msgCreated, h.resources()(l))
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (leave.Leave, bool) {
	id, ok := shared.PathID(r, "id")
	if !ok {
		h.Pages.Error(w, r, leave.ErrNotFound, msgNotFound)
		return leave.Leave{}, false
	}
	l, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.Pages.Error(w, r, err, msgNotFound)
		return leave.Leave{}, false
	}
	return l, true
}

func (h *Handler) handleShow(w http.ResponseWriter, r *http.Request) {
	l, ok := h.load(w, r)
	if !ok {
		return
	}
	if h.Pages.Wants(r) {
		h.Pages.Render(w, r, "leaves/view", page.Props{"leave": h.resources()(l)})
		return
	}
	api.Success(w, h.resources()(l))
}

func (h *Handler) handleEdit(w http.ResponseWriter, r *http.Request) {
	l, ok := h.load(w, r)
	if !ok {
		return
	}
	props := h.formOptions(r)
	props["leave"] = h.resources()(l)
	if !h.Pages.Wants(r) {
		api.Success(w, props)
		return
	}
	h.Pages.Render(w, r, "leaves/edit", props)
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

	l, err := h.Service.Update(r.Context(), current.ID, data)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Updated(w, msgUpdated, h.resources()(l))
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

type decision struct {
	id         int64
	approverID int64
	notes      string
	reason     string
}

// readDecision reads the body shared by approve and reject.
func (h *Handler) readDecision(w http.ResponseWriter, r *http.Request) (decision, bool) {
	id, ok := shared.PathID(r, "id")
	if !ok {
		api.Fail(w, http.StatusNotFound, msgNotFound)
		return decision{}, false
	}
	in, err := shared.DecodeInput(r)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return decision{}, false
	}
	v := shared.NewValidator(r.Context(), in, messages)
	approver := v.ID("approved_by", false, h.employeeExists())
	notes := v.String("approval_notes", 1000, false)
	reason := v.String("rejection_reason", 1000, false)
	if err := v.Err(); err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return decision{}, false
	}
	return decision{id: id, approverID: approver.Or(0), notes: notes.Or(""), reason: reason.Or("")}, true
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	d, ok := h.readDecision(w, r)
	if !ok {
		return
	}
	l, err := h.Service.Approve(r.Context(), d.id, d.approverID, d.notes)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Updated(w, msgApproved, h.resources()(l))
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	d, ok := h.readDecision(w, r)
	if !ok {
		return
	}
	l, err := h.Service.Reject(r.Context(), d.id, d.approverID, d.reason)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Updated(w, msgRejected, h.resources()(l))
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(r, "id")
	if !ok {
		api.Fail(w, http.StatusNotFound, msgNotFound)
		return
	}
	l, err := h.Service.Cancel(r.Context(), id)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Updated(w, msgCancelled, h.resources()(l))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, items []leave.Leave, err error) {
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

func (h *Handler) handleCurrent(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.Current(r.Context())
	h.list(w, r, items, err)
}

func (h *Handler) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.Upcoming(r.Context(), shared.QueryInt(r, "days", defaultUpcomingDays))
	h.list(w, r, items, err)
}

func (h *Handler) handleCalendar(w http.ResponseWriter, r *http.Request) {
	today := h.today()
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	start := shared.QueryDateOr(r, "start", first)
	end := shared.QueryDateOr(r, "end", first.AddDate(0, 1, -1))
	items, err := h.Service.Calendar(r.Context(), start, end)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Success(w, api.Collection(items, toCalendarEntry))
}

func (h *Handler) handleStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Statistics(r.Context(), shared.QueryInt(r, "year", h.today().Year()))
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Success(w, toStatistics(stats))
}

func (h *Handler) handleBalance(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator(r.Context(), shared.Input{
		"employee_id": r.URL.Query().Get("employee_id"),
		"leave_type":  r.URL.Query().Get("leave_type"),
	}, messages)
	employeeID := v.ID("employee_id", true, h.employeeExists())
	leaveType := v.Enum("leave_type", leave.Types, true)
	if err := v.Err(); err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}

	id, _ := employeeID.Get()
	kind, _ := leaveType.Get()
	balance, err := h.Service.Balance(r.Context(), id, kind, shared.QueryInt(r, "year", h.today().Year()))
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Success(w, toBalance(balance))
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(r, "id")
	if !ok {
		api.Fail(w, http.StatusNotFound, msgNotFound)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxAttachmentBytes+(1<<20))
	if err := r.ParseMultipartForm(h.MaxAttachmentBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			shared.WriteError(w, r, err, msgNotFound)
			return
		}
		shared.WriteError(w, r, domain.NewValidationError("file", msgFileRequired), msgNotFound)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		shared.WriteError(w, r, domain.NewValidationError("file", msgFileRequired), msgNotFound)
		return
	}
	defer file.Close()
	if header.Size > h.MaxAttachmentBytes {
		shared.WriteError(w, r, domain.NewValidationError("file", "The file may not be greater than "+strconv.FormatInt(h.MaxAttachmentBytes/1024, 10)+" kilobytes."), msgNotFound)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	l, err := h.Service.AddAttachment(r.Context(), id, header.Filename, file, header.Size, contentType)
	if errors.Is(err, storage.ErrNotConfigured) {
		api.Fail(w, http.StatusServiceUnavailable, msgStorageUnavailable)
		return
	}
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Created(w, msgUploaded, h.resources()(l))
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(r, "id")
	if !ok {
		api.Fail(w, http.StatusNotFound, msgNotFound)
		return
	}
	name := chi.URLParam(r, "name")
	obj, err := h.Service.OpenAttachment(r.Context(), id, name)
	switch {
	case errors.Is(err, leave.ErrAttachmentNotFound):
		api.Fail(w, http.StatusNotFound, msgAttachmentNotFound)
		return
	case errors.Is(err, storage.ErrNotConfigured):
		api.Fail(w, http.StatusServiceUnavailable, msgStorageUnavailable)
		return
	case err != nil:
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	defer obj.Body.Close()

	w.Header().Set("Content-Type", obj.ContentType)
	if obj.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if _, err := io.Copy(w, obj.Body); err != nil {
		requestctx.Logger(r.Context()).Warn("stream attachment", zap.Error(err))
	}
}
