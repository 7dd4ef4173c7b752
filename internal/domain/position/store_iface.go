package position

import (
	"context"

	"hradmin/internal/domain/shared"
)

type StoreAPI interface {
	FindByID(ctx context.Context, id int64) (Position, error)
	FindByTitle(ctx context.Context, title string) (Position, error)
	FindByCode(ctx context.Context, code string) (Position, error)
	List(ctx context.Context) ([]Position, error)
	Paginate(ctx context.Context, page shared.PageRequest, filter Filter) (shared.Page[Position], error)
	ListByStatus(ctx context.Context, status string) ([]Position, error)
	ListByDepartment(ctx context.Context, departmentID int64) ([]Position, error)
	ListByLevel(ctx context.Context, level string) ([]Position, error)
	ListBySalaryRange(ctx context.Context, min, max float64) ([]Position, error)
	SearchByTitle(ctx context.Context, term string) ([]Position, error)
	ListWithEmployeeCount(ctx context.Context) ([]Position, error)
	CountAll(ctx context.Context) (int64, error)
	EmployeeCount(ctx context.Context, id int64) (int64, error)
	Statistics(ctx context.Context, id int64) (Statistics, error)
	Create(ctx context.Context, data Data) (int64, error)
	Update(ctx context.Context, id int64, data Data) (Position, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
