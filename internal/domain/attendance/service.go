package attendance

import (
	"context"
	"errors"
	"time"

	"hradmin/internal/domain/shared"
)

type Service struct {
	Store StoreAPI
	Now   shared.Clock
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store, Now: shared.SystemClock}
}

func (s *Service) Get(ctx context.Context, id int64) (Attendance, error) {
	return s.Store.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Attendance, error) {
	return s.Store.List(ctx)
}

func (s *Service) Paginate(ctx context.Context, page shared.PageRequest, filter Filter) (shared.Page[Attendance], error) {
	return s.Store.Paginate(ctx, page, filter)
}

func (s *Service) ByEmployee(ctx context.Context, employeeID int64) ([]Attendance, error) {
	return s.Store.ListByEmployee(ctx, employeeID)
}

func (s *Service) ByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (Attendance, error) {
	return s.Store.FindByEmployeeAndDate(ctx, employeeID, date)
}

func (s *Service) ByEmployeeAndDateRange(ctx context.Context, employeeID int64, start, end time.Time) ([]Attendance, error) {
	return s.Store.ListByEmployeeAndDateRange(ctx, employeeID, start, end)
}

func (s *Service) ByDateRange(ctx context.Context, start, end time.Time) ([]Attendance, error) {
	return s.Store.ListByDateRange(ctx, start, end)
}

func (s *Service) ByStatus(ctx context.Context, status string) ([]Attendance, error) {
	return s.Store.ListByStatus(ctx, status)
}

func (s *Service) Present(ctx context.Context, date time.Time) ([]Attendance, error) {
	return s.Store.PresentEmployees(ctx, shared.DateOnly(date))
}

func (s *Service) Absent(ctx context.Context, date time.Time) ([]Attendance, error) {
	return s.Store.AbsentEmployees(ctx, shared.DateOnly(date))
}

func (s *Service) Late(ctx context.Context, date time.Time) ([]Attendance, error) {
	return s.Store.LateEmployees(ctx, shared.DateOnly(date))
}

func (s *Service) TotalMinutes(ctx context.Context, employeeID int64, start, end time.Time) (int64, error) {
	return s.Store.TotalMinutes(ctx, employeeID, start, end)
}

func (s *Service) OvertimeMinutes(ctx context.Context, employeeID int64, start, end time.Time) (int64, error) {
	return s.Store.OvertimeMinutes(ctx, employeeID, start, end)
}

// AttendanceRate is the share of Monday to Friday working days in the range
// that the employee attended, as a percentage.
func (s *Service) AttendanceRate(ctx context.Context, employeeID int64, start, end time.Time) (float64, error) {
	if end.Before(start) {
		start, end = end, start
	}
	attended, working, err := s.Store.AttendedDays(ctx, employeeID, start, end)
	if err != nil {
		return 0, err
	}
	return Rate(attended, working), nil
}

func (s *Service) DailySummary(ctx context.Context, date time.Time) (DailySummary, error) {
	return s.Store.DailySummary(ctx, date)
}

func (s *Service) MonthlySummary(ctx context.Context, employeeID int64, year int, month time.Month) (MonthlySummary, error) {
	return s.Store.MonthlySummary(ctx, employeeID, year, month)
}

func (s *Service) Create(ctx context.Context, data Data) (Attendance, error) {
	if _, ok := data.Status.Get(); !ok {
		data.Status = shared.Set(StatusPresent)
	}
	if err := checkSpans(data.ClockIn.Ptr(), data.ClockOut.Ptr(), data.BreakStart.Ptr(), data.BreakEnd.Ptr()); err != nil {
		return Attendance{}, err
	}
	total, overtime := CalculateMinutes(data.ClockIn.Ptr(), data.ClockOut.Ptr(), data.BreakStart.Ptr(), data.BreakEnd.Ptr())
	data.TotalMinutes = shared.Set(total)
	data.OvertimeMinutes = shared.Set(overtime)
	id, err := s.Store.Create(ctx, data)
	if err != nil {
		return Attendance{}, err
	}
	return s.Store.FindByID(ctx, id)
}

// Update recomputes worked time whenever one of the four time columns is part
// of the change, merging the rest from the stored record. The merged spans
// must stay ordered.
func (s *Service) Update(ctx context.Context, id int64, data Data) (Attendance, error) {
	data.TotalMinutes = shared.Field[int]{}
	data.OvertimeMinutes = shared.Field[int]{}
	if data.ClockIn.IsSet() || data.ClockOut.IsSet() || data.BreakStart.IsSet() || data.BreakEnd.IsSet() {
		current, err := s.Store.FindByID(ctx, id)
		if err != nil {
			return Attendance{}, err
		}
		in := merge(data.ClockIn, current.ClockIn)
		out := merge(data.ClockOut, current.ClockOut)
		breakStart := merge(data.BreakStart, current.BreakStart)
		breakEnd := merge(data.BreakEnd, current.BreakEnd)
		if err := checkSpans(in, out, breakStart, breakEnd); err != nil {
			return Attendance{}, err
		}
		total, overtime := CalculateMinutes(in, out, breakStart, breakEnd)
		data.TotalMinutes = shared.Set(total)
		data.OvertimeMinutes = shared.Set(overtime)
	}
	return s.Store.Update(ctx, id, data)
}

// checkSpans requires clock-out after clock-in and a break that does not end
// before it starts, for whichever pairs are complete.
func checkSpans(clockIn, clockOut, breakStart, breakEnd *TimeOfDay) error {
	if clockIn != nil && clockOut != nil && *clockOut <= *clockIn {
		return shared.NewValidationError("clock_out", "The clock out must be after clock in.")
	}
	if breakStart != nil && breakEnd != nil && *breakEnd < *breakStart {
		return shared.NewValidationError("break_end", "The break end must be after or equal to break start.")
	}
	return nil
}

func merge(f shared.Field[TimeOfDay], current *TimeOfDay) *TimeOfDay {
	if f.IsSet() {
		return f.Ptr()
	}
	return current
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.Store.Delete(ctx, id)
}

// ClockIn opens the employee's record for the day of at. An existing record
// without a clock-in, such as a pre-filled absence, is reused.
func (s *Service) ClockIn(ctx context.Context, employeeID int64, at time.Time, location *GeoPoint) (Attendance, error) {
	day := shared.DateOnly(at)
	data := Data{ClockIn: shared.Set(At(at)), Status: shared.Set(StatusPresent)}
	if location != nil {
		data.ClockInLocation = shared.Set(*location)
	}

	existing, err := s.Store.FindByEmployeeAndDate(ctx, employeeID, day)
	switch {
	case err == nil:
		if existing.ClockIn != nil {
			return Attendance{}, errAlreadyClockedIn
		}
		return s.Store.Update(ctx, existing.ID, data)
	case errors.Is(err, shared.ErrNotFound):
		data.EmployeeID = shared.Set(employeeID)
		data.Date = shared.Set(day)
		return s.Create(ctx, data)
	default:
		return Attendance{}, err
	}
}

func (s *Service) ClockOut(ctx context.Context, id int64, at time.Time, location *GeoPoint) (Attendance, error) {
	current, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return Attendance{}, err
	}
	if current.ClockIn == nil {
		return Attendance{}, errNotClockedIn
	}
	if current.ClockOut != nil {
		return Attendance{}, errAlreadyClockedOut
	}
	out := At(at)
	total, overtime := CalculateMinutes(current.ClockIn, &out, current.BreakStart, current.BreakEnd)
	data := Data{
		ClockOut:        shared.Set(out),
		TotalMinutes:    shared.Set(total),
		OvertimeMinutes: shared.Set(overtime),
	}
	if location != nil {
		data.ClockOutLocation = shared.Set(*location)
	}
	return s.Store.Update(ctx, id, data)
}

func (s *Service) Approve(ctx context.Context, id, approverID int64) (Attendance, error) {
	current, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return Attendance{}, err
	}
	if current.IsApproved() {
		return Attendance{}, errAlreadyApproved
	}
	return s.Store.Update(ctx, id, Data{
		ApprovedBy: shared.Set(approverID),
		ApprovedAt: shared.Set(s.Now()),
	})
}
