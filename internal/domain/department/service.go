package department

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

func (s *Service) Get(ctx context.Context, id int64) (Department, error) {
	return s.Store.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Department, error) {
	return s.Store.List(ctx)
}

func (s *Service) Paginate(ctx context.Context, page shared.PageRequest, filter Filter) (shared.Page[Department], error) {
	return s.Store.Paginate(ctx, page, filter)
}

func (s *Service) Active(ctx context.Context) ([]Department, error) {
	return s.Store.ListByStatus(ctx, StatusActive)
}

func (s *Service) Inactive(ctx context.Context) ([]Department, error) {
	return s.Store.ListByStatus(ctx, StatusInactive)
}

func (s *Service) ByManager(ctx context.Context, managerID int64) ([]Department, error) {
	return s.Store.ListByManager(ctx, managerID)
}

func (s *Service) WithEmployeeCount(ctx context.Context) ([]Department, error) {
	return s.Store.ListWithEmployeeCount(ctx)
}

func (s *Service) SearchByName(ctx context.Context, term string) ([]Department, error) {
	return s.Store.SearchByName(ctx, strings.TrimSpace(term))
}

func (s *Service) ByBudgetRange(ctx context.Context, min, max float64) ([]Department, error) {
	if max < min {
		min, max = max, min
	}
	return s.Store.ListByBudgetRange(ctx, min, max)
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

// Exists reports whether a department with the id is stored.
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := s.Store.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// NameTaken reports whether another department already uses name.
func (s *Service) NameTaken(ctx context.Context, name string, ignoreID int64) (bool, error) {
	d, err := s.Store.FindByName(ctx, name)
	return takenBy(d.ID, err, ignoreID)
}

// CodeTaken reports whether another department already uses code.
func (s *Service) CodeTaken(ctx context.Context, code string, ignoreID int64) (bool, error) {
	d, err := s.Store.FindByCode(ctx, code)
	return takenBy(d.ID, err, ignoreID)
}

func takenBy(ownerID int64, err error, ignoreID int64) (bool, error) {
	if errors.Is(err, shared.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return ownerID != ignoreID, nil
}

func (s *Service) Create(ctx context.Context, data Data) (Department, error) {
	if _, ok := data.Status.Get(); !ok {
		data.Status = shared.Set(StatusActive)
	}
	id, err := s.Store.Create(ctx, data)
	if err != nil {
		return Department{}, err
	}
	return s.Store.FindByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, data Data) (Department, error) {
	return s.Store.Update(ctx, id, data)
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.Store.Delete(ctx, id)
}
