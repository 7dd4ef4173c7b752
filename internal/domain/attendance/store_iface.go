package attendance

import (
	"context"
	"time"

	"hradmin/internal/domain/shared"
)

type StoreAPI interface {
	FindByID(ctx context.Context, id int64) (Attendance, error)
	FindByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (Attendance, error)
	List(ctx context.Context) ([]Attendance, error)
	Paginate(ctx context.Context, page shared.PageRequest, filter Filter) (shared.Page[Attendance], error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]Attendance, error)
	ListByEmployeeAndDateRange(ctx context.Context, employeeID int64, start, end time.Time) ([]Attendance, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]Attendance, error)
	ListByStatus(ctx context.Context, status string) ([]Attendance, error)
	PresentEmployees(ctx context.Context, date time.Time) ([]Attendance, error)
	AbsentEmployees(ctx context.Context, date time.Time) ([]Attendance, error)
	LateEmployees(ctx context.Context, date time.Time) ([]Attendance, error)
	TotalMinutes(ctx context.Context, employeeID int64, start, end time.Time) (int64, error)
	OvertimeMinutes(ctx context.Context, employeeID int64, start, end time.Time) (int64, error)
	// AttendedDays returns attended days and Monday to Friday working days in the range.
	AttendedDays(ctx context.Context, employeeID int64, start, end time.Time) (attended, working int64, err error)
	DailySummary(ctx context.Context, date time.Time) (DailySummary, error)
	MonthlySummary(ctx context.Context, employeeID int64, year int, month time.Month) (MonthlySummary, error)
	Create(ctx context.Context, data Data) (int64, error)
	Update(ctx context.Context, id int64, data Data) (Attendance, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
