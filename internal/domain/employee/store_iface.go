package employee

import (
	"context"
	"time"

	"hradmin/internal/domain/shared"
)

type StoreAPI interface {
	FindByID(ctx context.Context, id int64) (Employee, error)
	FindByCode(ctx context.Context, code string) (Employee, error)
	FindByEmail(ctx context.Context, email string) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
	Paginate(ctx context.Context, page shared.PageRequest, filter Filter) (shared.Page[Employee], error)
	ListByDepartment(ctx context.Context, departmentID int64) ([]Employee, error)
	ListByPosition(ctx context.Context, positionID int64) ([]Employee, error)
	ListByManager(ctx context.Context, managerID int64) ([]Employee, error)
	ListByStatus(ctx context.Context, status string) ([]Employee, error)
	ListInactive(ctx context.Context) ([]Employee, error)
	SearchByName(ctx context.Context, term string) ([]Employee, error)
	ListHiredBetween(ctx context.Context, start, end time.Time) ([]Employee, error)
	ListUpcomingBirthdays(ctx context.Context, today time.Time, days int) ([]Employee, error)
	ListUpcomingAnniversaries(ctx context.Context, today time.Time, days int) ([]Employee, error)
	CountAll(ctx context.Context) (int64, error)
	CountByDepartment(ctx context.Context) ([]DepartmentCount, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	// ManagerOf returns the manager id of the employee, nil when unmanaged.
	ManagerOf(ctx context.Context, id int64) (*int64, error)
	Create(ctx context.Context, data Data) (int64, error)
	Update(ctx context.Context, id int64, data Data) (Employee, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
