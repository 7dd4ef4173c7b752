package department

import (
	"context"

	"hradmin/internal/domain/shared"
)

type StoreAPI interface {
	FindByID(ctx context.Context, id int64) (Department, error)
	FindByName(ctx context.Context, name string) (Department, error)
	FindByCode(ctx context.Context, code string) (Department, error)
	List(ctx context.Context) ([]Department, error)
	Paginate(ctx context.Context, page shared.PageRequest, filter Filter) (shared.Page[Department], error)
	ListByStatus(ctx context.Context, status string) ([]Department, error)
	ListByManager(ctx context.Context, managerID int64) ([]Department, error)
	ListWithEmployeeCount(ctx context.Context) ([]Department, error)
	SearchByName(ctx context.Context, term string) ([]Department, error)
	ListByBudgetRange(ctx context.Context, min, max float64) ([]Department, error)
	CountAll(ctx context.Context) (int64, error)
	EmployeeCount(ctx context.Context, id int64) (int64, error)
	Statistics(ctx context.Context, id int64) (Statistics, error)
	Create(ctx context.Context, data Data) (int64, error)
	Update(ctx context.Context, id int64, data Data) (Department, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
