package position

import (
	"context"
	"errors"
	"strings"

	"hradmin/internal/domain/shared"
)

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

func (s *Service) Get(ctx context.Context, id int64) (Position, error) {
	return s.Store.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Position, error) {
	return s.Store.List(ctx)
}

func (s *Service) Paginate(ctx context.Context, page shared.PageRequest, filter Filter) (shared.Page[Position], error) {
	return s.Store.Paginate(ctx, page, filter)
}

func (s *Service) Active(ctx context.Context) ([]Position, error) {
	return s.Store.ListByStatus(ctx, StatusActive)
}

func (s *Service) Inactive(ctx context.Context) ([]Position, error) {
	return s.Store.ListByStatus(ctx, StatusInactive)
}

func (s *Service) ByDepartment(ctx context.Context, departmentID int64) ([]Position, error) {
	return s.Store.ListByDepartment(ctx, departmentID)
}

func (s *Service) ByLevel(ctx context.Context, level string) ([]Position, error) {
	return s.Store.ListByLevel(ctx, level)
}

func (s *Service) BySalaryRange(ctx context.Context, min, max float64) ([]Position, error) {
	if max < min {
		min, max = max, min
	}
	return s.Store.ListBySalaryRange(ctx, min, max)
}

func (s *Service) SearchByTitle(ctx context.Context, term string) ([]Position, error) {
	return s.Store.SearchByTitle(ctx, strings.TrimSpace(term))
}

func (s *Service) WithEmployeeCount(ctx context.Context) ([]Position, error) {
	return s.Store.ListWithEmployeeCount(ctx)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.Store.CountAll(ctx)
}

func (s *Service) EmployeeCount(ctx context.Context, id int64) (int64, error) {
	return s.Store.EmployeeCount(ctx, id)
}

func (s *Service) Statistics(ctx context.Context, id int64) (Statistics, error) {
	return s.Store.Statistics(ctx, id)
}

func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := s.Store.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// CodeTaken reports whether another position already uses code.
func (s *Service) CodeTaken(ctx context.Context, code string, ignoreID int64) (bool, error) {
	p, err := s.Store.FindByCode(ctx, code)
	if errors.Is(err, shared.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return p.ID != ignoreID, nil
}

func (s *Service) Create(ctx context.Context, data Data) (Position, error) {
	if _, ok := data.Status.Get(); !ok {
		data.Status = shared.Set(StatusActive)
	}
	if _, ok := data.Level.Get(); !ok {
		data.Level = shared.Set(LevelEntry)
	}
	id, err := s.Store.Create(ctx, data)
	if err != nil {
		return Position{}, err
	}
	return s.Store.FindByID(ctx, id)
}

// Update rejects a partial change that would leave max_salary below the
// stored or provided min_salary.
func (s *Service) Update(ctx context.Context, id int64, data Data) (Position, error) {
	if data.MinSalary.IsSet() != data.MaxSalary.IsSet() {
		current, err := s.Store.FindByID(ctx, id)
		if err != nil {
			return Position{}, err
		}
		min, max := current.MinSalary, current.MaxSalary
		if data.MinSalary.IsSet() {
			min = data.MinSalary.Ptr()
		}
		if data.MaxSalary.IsSet() {
			max = data.MaxSalary.Ptr()
		}
		if min != nil && max != nil && *max < *min {
			return Position{}, shared.NewValidationError("max_salary", "Maximum salary must be greater than or equal to minimum salary.")
		}
	}
	return s.Store.Update(ctx, id, data)
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.Store.Delete(ctx, id)
}
