package leave

import (
	"context"
	"time"

	"hradmin/internal/domain/shared"
)

type StoreAPI interface {
	FindByID(ctx context.Context, id int64) (Leave, error)
	List(ctx context.Context) ([]Leave, error)
	Paginate(ctx context.Context, page shared.PageRequest, filter Filter) (shared.Page[Leave], error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]Leave, error)
	ListByStatus(ctx context.Context, status string) ([]Leave, error)
	ListByType(ctx context.Context, leaveType string) ([]Leave, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]Leave, error)
	ListByEmployeeAndDateRange(ctx context.Context, employeeID int64, start, end time.Time) ([]Leave, error)
	ListCurrent(ctx context.Context, today time.Time) ([]Leave, error)
	ListUpcoming(ctx context.Context, today time.Time, days int) ([]Leave, error)
	// HasConflict reports a pending or approved leave of the employee that
	// overlaps [start, end], ignoring excludeID.
	HasConflict(ctx context.Context, employeeID int64, start, end time.Time, excludeID int64) (bool, error)
	UsedDays(ctx context.Context, employeeID int64, leaveType string, year int) (float64, error)
	PendingDays(ctx context.Context, employeeID int64, leaveType string, year int) (float64, error)
	Calendar(ctx context.Context, start, end time.Time) ([]Leave, error)
	Statistics(ctx context.Context, year int) (Statistics, error)
	// SetStatus applies data only while the row is in one of the from states.
	SetStatus(ctx context.Context, id int64, from []string, data Data) (Leave, error)
	Create(ctx context.Context, data Data) (int64, error)
	Update(ctx context.Context, id int64, data Data) (Leave, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
