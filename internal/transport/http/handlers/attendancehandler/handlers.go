package attendancehandler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"hradmin/internal/domain/attendance"
	"hradmin/internal/domain/auth"
	"hradmin/internal/domain/employee"
	domain "hradmin/internal/domain/shared"
	"hradmin/internal/requestctx"
	"hradmin/internal/transport/http/api"
	"hradmin/internal/transport/http/middleware"
	"hradmin/internal/transport/http/page"
	"hradmin/internal/transport/http/shared"
)

const (
	msgNotFound   = "Attendance record not found."
	msgCreated    = "Attendance record created successfully."
	msgUpdated    = "Attendance record updated successfully."
	msgDeleted    = "Attendance record deleted successfully."
	msgClockedIn  = "Clocked in successfully."
	msgClockedOut = "Clocked out successfully."
	msgApproved   = "Attendance approved successfully."

	msgEmployeeNotFound = "Employee not found."
)

type Handler struct {
	Service   *attendance.Service
	Employees *employee.Service
	Pages     *page.Renderer
	Perms     middleware.PermissionStore
	PerPage   int
}

func NewHandler(service *attendance.Service, employees *employee.Service, pages *page.Renderer, perms middleware.PermissionStore, perPage int) *Handler {
	return &Handler{Service: service, Employees: employees, Pages: pages, Perms: perms, PerPage: perPage}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		read := r.With(middleware.RequirePermission(auth.PermRead, h.Perms))
		write := r.With(middleware.RequirePermission(auth.PermWrite, h.Perms))
		approve := r.With(middleware.RequirePermission(auth.PermApprove, h.Perms))

		read.Get("/", h.handleIndex)
		write.Get("/create", h.handleCreate)
		write.Post("/", h.handleStore)
		write.Post("/clock-in", h.handleClockIn)
		read.Get("/daily-summary", h.handleDailySummary)
		read.Get("/present", h.handlePresent)
		read.Get("/absent", h.handleAbsent)
		read.Get("/late", h.handleLate)
		read.Get("/employee/{employeeID}", h.handleByEmployee)
		read.Get("/employee/{employeeID}/summary", h.handleMonthlySummary)
		read.Get("/employee/{employeeID}/summary.pdf", h.handleMonthlySummaryPDF)
		read.Get("/employee/{employeeID}/rate", h.handleRate)
		read.Get("/{id}", h.handleShow)
		write.Get("/{id}/edit", h.handleEdit)
		write.Put("/{id}", h.handleUpdate)
		write.Patch("/{id}", h.handleUpdate)
		write.Delete("/{id}", h.handleDestroy)
		write.Post("/{id}/clock-out", h.handleClockOut)
		approve.Post("/{id}/approve", h.handleApprove)
	})
}

func (h *Handler) employeeExists() shared.ExistsFunc {
	if h.Employees == nil {
		return nil
	}
	return h.Employees.Exists
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	filter := attendance.Filter{
		EmployeeID: shared.QueryID(r, "employee_id"),
		Status:     shared.QueryString(r, "status"),
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
		h.Pages.Render(w, r, "attendance/index", page.Props{
			"attendance": api.PageEnvelope(result, toResource),
			"filters":    shared.Filters(r, "employee_id", "status", "date_from", "date_to", "search"),
			"statuses":   attendance.Statuses,
		})
		return
	}
	api.Paginated(w, result, toResource)
}

type employeeOption struct {
	ID           int64  `json:"id"`
	EmployeeCode string `json:"employee_code"`
	FullName     string `json:"full_name"`
}

func (h *Handler) formOptions(r *http.Request) page.Props {
	employees := []employeeOption{}
	if h.Employees != nil {
		items, err := h.Employees.Active(r.Context())
		if err != nil {
			requestctx.Logger(r.Context()).Warn("load employee options", zap.Error(err))
		}
		for _, e := range items {
			employees = append(employees, employeeOption{ID: e.ID, EmployeeCode: e.EmployeeCode, FullName: e.FullName()})
		}
	}
	return page.Props{"employees": employees, "statuses": attendance.Statuses}
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if !h.Pages.Wants(r) {
		api.Success(w, h.formOptions(r))
		return
	}
	h.Pages.Render(w, r, "attendance/create", h.formOptions(r))
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

	a, err := h.Service.Create(r.Context(), data)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Created(w, msgCreated, toResource(a))
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (attendance.Attendance, bool) {
	id, ok := shared.PathID(r, "id")
	if !ok {
		h.Pages.Error(w, r, attendance.ErrNotFound, msgNotFound)
		return attendance.Attendance{}, false
	}
	a, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.Pages.Error(w, r, err, msgNotFound)
		return attendance.Attendance{}, false
	}
	return a, true
}

func (h *Handler) handleShow(w http.ResponseWriter, r *http.Request) {
	a, ok := h.load(w, r)
	if !ok {
		return
	}
	if h.Pages.Wants(r) {
		h.Pages.Render(w, r, "attendance/view", page.Props{"attendance": toResource(a)})
		return
	}
	api.Success(w, toResource(a))
}

func (h *Handler) handleEdit(w http.ResponseWriter, r *http.Request) {
	a, ok := h.load(w, r)
	if !ok {
		return
	}
	props := h.formOptions(r)
	props["attendance"] = toResource(a)
	if !h.Pages.Wants(r) {
		api.Success(w, props)
		return
	}
	h.Pages.Render(w, r, "attendance/edit", props)
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

	a, err := h.Service.Update(r.Context(), current.ID, data)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Updated(w, msgUpdated, toResource(a))
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

func (h *Handler) handleClockIn(w http.ResponseWriter, r *http.Request) {
	in, err := shared.DecodeInput(r)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	v := shared.NewValidator(r.Context(), in, messages)
	employeeID := v.ID("employee_id", true, h.employeeExists())
	location := parseLocation(v, "location")
	if err := v.Err(); err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}

	id, _ := employeeID.Get()
	a, err := h.Service.ClockIn(r.Context(), id, h.Service.Now(), location.Ptr())
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Created(w, msgClockedIn, toResource(a))
}

func (h *Handler) handleClockOut(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(r, "id")
	if !ok {
		api.Fail(w, http.StatusNotFound, msgNotFound)
		return
	}
	in, err := shared.DecodeInput(r)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	v := shared.NewValidator(r.Context(), in, messages)
	location := parseLocation(v, "location")
	if err := v.Err(); err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}

	a, err := h.Service.ClockOut(r.Context(), id, h.Service.Now(), location.Ptr())
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Updated(w, msgClockedOut, toResource(a))
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(r, "id")
	if !ok {
		api.Fail(w, http.StatusNotFound, msgNotFound)
		return
	}
	in, err := shared.DecodeInput(r)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	v := shared.NewValidator(r.Context(), in, messages)
	approver := v.ID("approved_by", true, h.employeeExists())
	if err := v.Err(); err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}

	approverID, _ := approver.Get()
	a, err := h.Service.Approve(r.Context(), id, approverID)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Updated(w, msgApproved, toResource(a))
}

func (h *Handler) today() time.Time {
	return domain.DateOnly(h.Service.Now())
}

func (h *Handler) handleDailySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.DailySummary(r.Context(), shared.QueryDateOr(r, "date", h.today()))
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Success(w, toDailySummary(summary))
}

func (h *Handler) byDay(w http.ResponseWriter, r *http.Request, list func(context.Context, time.Time) ([]attendance.Attendance, error)) {
	items, err := list(r.Context(), shared.QueryDateOr(r, "date", h.today()))
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Success(w, api.Collection(items, toResource))
}

func (h *Handler) handlePresent(w http.ResponseWriter, r *http.Request) {
	h.byDay(w, r, h.Service.Present)
}

func (h *Handler) handleAbsent(w http.ResponseWriter, r *http.Request) {
	h.byDay(w, r, h.Service.Absent)
}

func (h *Handler) handleLate(w http.ResponseWriter, r *http.Request) {
	h.byDay(w, r, h.Service.Late)
}

func (h *Handler) handleByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := shared.PathID(r, "employeeID")
	if !ok {
		api.Fail(w, http.StatusNotFound, msgEmployeeNotFound)
		return
	}
	var (
		items []attendance.Attendance
		err   error
	)
	start, end := shared.QueryDate(r, "start"), shared.QueryDate(r, "end")
	if start != nil && end != nil {
		items, err = h.Service.ByEmployeeAndDateRange(r.Context(), employeeID, *start, *end)
	} else {
		items, err = h.Service.ByEmployee(r.Context(), employeeID)
	}
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Success(w, api.Collection(items, toResource))
}

// period reads year and month, defaulting to the current month.
func (h *Handler) period(r *http.Request) (int, time.Month, bool) {
	today := h.today()
	year := shared.QueryInt(r, "year", today.Year())
	month := shared.QueryInt(r, "month", int(today.Month()))
	if month < 1 || month > 12 || year < 1900 || year > 9999 {
		return 0, 0, false
	}
	return year, time.Month(month), true
}

func (h *Handler) monthly(w http.ResponseWriter, r *http.Request) (employee.Employee, attendance.MonthlySummary, []attendance.Attendance, bool) {
	employeeID, ok := shared.PathID(r, "employeeID")
	if !ok {
		api.Fail(w, http.StatusNotFound, msgEmployeeNotFound)
		return employee.Employee{}, attendance.MonthlySummary{}, nil, false
	}
	year, month, ok := h.period(r)
	if !ok {
		shared.WriteError(w, r, domain.NewValidationError("month", "The month must be between 1 and 12."), msgNotFound)
		return employee.Employee{}, attendance.MonthlySummary{}, nil, false
	}
	var emp employee.Employee
	if h.Employees != nil {
		found, err := h.Employees.Get(r.Context(), employeeID)
		if err != nil {
			shared.WriteError(w, r, err, msgEmployeeNotFound)
			return employee.Employee{}, attendance.MonthlySummary{}, nil, false
		}
		emp = found
	}
	summary, err := h.Service.MonthlySummary(r.Context(), employeeID, year, month)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return employee.Employee{}, attendance.MonthlySummary{}, nil, false
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	records, err := h.Service.ByEmployeeAndDateRange(r.Context(), employeeID, start, start.AddDate(0, 1, -1))
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return employee.Employee{}, attendance.MonthlySummary{}, nil, false
	}
	return emp, summary, records, true
}

func (h *Handler) handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	_, summary, records, ok := h.monthly(w, r)
	if !ok {
		return
	}
	api.Success(w, monthlyResource{
		Summary: toMonthlySummary(summary),
		Records: api.Collection(records, toResource),
	})
}

func (h *Handler) handleMonthlySummaryPDF(w http.ResponseWriter, r *http.Request) {
	emp, summary, records, ok := h.monthly(w, r)
	if !ok {
		return
	}
	name := emp.FullName()
	if name == "" {
		name = fmt.Sprintf("Employee #%d", summary.EmployeeID)
	}
	filename := fmt.Sprintf("attendance-%d-%04d-%02d.pdf", summary.EmployeeID, summary.Year, summary.Month)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := attendance.WriteSummaryPDF(w, name, summary, records); err != nil {
		requestctx.Logger(r.Context()).Error("write attendance summary pdf", zap.Error(err))
	}
}

func (h *Handler) handleRate(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := shared.PathID(r, "employeeID")
	if !ok {
		api.Fail(w, http.StatusNotFound, msgEmployeeNotFound)
		return
	}
	today := h.today()
	start := shared.QueryDateOr(r, "start", time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC))
	end := shared.QueryDateOr(r, "end", today)
	ctx := r.Context()

	rate, err := h.Service.AttendanceRate(ctx, employeeID, start, end)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	total, err := h.Service.TotalMinutes(ctx, employeeID, start, end)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	overtime, err := h.Service.OvertimeMinutes(ctx, employeeID, start, end)
	if err != nil {
		shared.WriteError(w, r, err, msgNotFound)
		return
	}
	api.Success(w, rateResource{
		EmployeeID:             employeeID,
		Start:                  shared.FormatDate(start),
		End:                    shared.FormatDate(end),
		AttendanceRate:         rate,
		TotalMinutes:           total,
		OvertimeMinutes:        overtime,
		TotalHoursFormatted:    attendance.FormatMinutes(int(total)),
		OvertimeHoursFormatted: attendance.FormatMinutes(int(overtime)),
	})
}
