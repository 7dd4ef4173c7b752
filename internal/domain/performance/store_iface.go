package performance

import (
	"context"
	"time"

	"hradmin/internal/domain/shared"
)

type StoreAPI interface {
	FindByID(ctx context.Context, id int64) (Review, error)
	List(ctx context.Context) ([]Review, error)
	Paginate(ctx context.Context, page shared.PageRequest, filter Filter) (shared.Page[Review], error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]Review, error)
	ListByReviewer(ctx context.Context, reviewerID int64) ([]Review, error)
	ListByStatus(ctx context.Context, status string) ([]Review, error)
	ListByType(ctx context.Context, reviewType string) ([]Review, error)
	ListPending(ctx context.Context) ([]Review, error)
	ListOverdue(ctx context.Context, today time.Time) ([]Review, error)
	ListDue(ctx context.Context, today time.Time, days int) ([]Review, error)
	ListUpcoming(ctx context.Context, today time.Time, days int) ([]Review, error)
	ListByPeriod(ctx context.Context, period string) ([]Review, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]Review, error)
	ListByRatingRange(ctx context.Context, min, max int) ([]Review, error)
	Latest(ctx context.Context, employeeID int64) (Review, error)
	History(ctx context.Context, employeeID int64) ([]Review, error)
	AverageRatingByEmployee(ctx context.Context, employeeID int64) (*float64, error)
	AverageRatingByDepartment(ctx context.Context, departmentID int64) (*float64, error)
	Statistics(ctx context.Context, year int, today time.Time) (Statistics, error)
	Complete(ctx context.Context, id int64, at time.Time) (Review, error)
	Create(ctx context.Context, data Data) (int64, error)
	Update(ctx context.Context, id int64, data Data) (Review, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
