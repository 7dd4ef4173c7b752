package employee

import (
	"context"
	"errors"
	"strings"
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

func (s *Service) today() time.Time {
	return shared.DateOnly(s.Now())
}

func (s *Service) Get(ctx context.Context, id int64) (Employee, error) {
	return s.Store.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Employee, error) {
	return s.Store.List(ctx)
}

func (s *Service) Paginate(ctx context.Context, page shared.PageRequest, filter Filter) (shared.Page[Employee], error) {
	return s.Store.Paginate(ctx, page, filter)
}

func (s *Service) Active(ctx context.Context) ([]Employee, error) {
	return s.Store.ListByStatus(ctx, StatusActive)
}

// Inactive lists everyone whose status is not active.
func (s *Service) Inactive(ctx context.Context) ([]Employee, error) {
	return s.Store.ListInactive(ctx)
}

func (s *Service) ByStatus(ctx context.Context, status string) ([]Employee, error) {
	return s.Store.ListByStatus(ctx, status)
}

func (s *Service) ByDepartment(ctx context.Context, departmentID int64) ([]Employee, error) {
	return s.Store.ListByDepartment(ctx, departmentID)
}

func (s *Service) ByPosition(ctx context.Context, positionID int64) ([]Employee, error) {
	return s.Store.ListByPosition(ctx, positionID)
}

func (s *Service) Subordinates(ctx context.Context, managerID int64) ([]Employee, error) {
	return s.Store.ListByManager(ctx, managerID)
}

func (s *Service) Search(ctx context.Context, term string) ([]Employee, error) {
	return s.Store.SearchByName(ctx, strings.TrimSpace(term))
}

func (s *Service) HiredBetween(ctx context.Context, start, end time.Time) ([]Employee, error) {
	if end.Before(start) {
		start, end = end, start
	}
	return s.Store.ListHiredBetween(ctx, start, end)
}

func (s *Service) UpcomingBirthdays(ctx context.Context, days int) ([]Employee, error) {
	return s.Store.ListUpcomingBirthdays(ctx, s.today(), days)
}

func (s *Service) UpcomingAnniversaries(ctx context.Context, days int) ([]Employee, error) {
	return s.Store.ListUpcomingAnniversaries(ctx, s.today(), days)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.Store.CountAll(ctx)
}

func (s *Service) CountByDepartment(ctx context.Context) ([]DepartmentCount, error) {
	return s.Store.CountByDepartment(ctx)
}

func (s *Service) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return s.Store.CountByStatus(ctx)
}

func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := s.Store.ManagerOf(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// EmailTaken reports whether another employee already uses email.
func (s *Service) EmailTaken(ctx context.Context, email string, ignoreID int64) (bool, error) {
	e, err := s.Store.FindByEmail(ctx, email)
	return takenBy(e.ID, err, ignoreID)
}

// CodeTaken reports whether another employee already uses the employee code.
func (s *Service) CodeTaken(ctx context.Context, code string, ignoreID int64) (bool, error) {
	e, err := s.Store.FindByCode(ctx, code)
	return takenBy(e.ID, err, ignoreID)
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

func (s *Service) Create(ctx context.Context, data Data) (Employee, error) {
	if _, ok := data.Status.Get(); !ok {
		data.Status = shared.Set(StatusActive)
	}
	if _, ok := data.EmploymentType.Get(); !ok {
		data.EmploymentType = shared.Set(EmploymentFullTime)
	}
	id, err := s.Store.Create(ctx, data)
	if err != nil {
		return Employee{}, err
	}
	return s.Store.FindByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, data Data) (Employee, error) {
	if managerID, ok := data.ManagerID.Get(); ok {
		if err := s.checkManager(ctx, id, managerID); err != nil {
			return Employee{}, err
		}
	}
	return s.Store.Update(ctx, id, data)
}

// checkManager walks the reporting chain upward from managerID and fails if
// it reaches subjectID.
func (s *Service) checkManager(ctx context.Context, subjectID, managerID int64) error {
	if managerID == subjectID {
		return shared.NewValidationError("manager_id", msgSelfManager)
	}
	seen := map[int64]bool{}
	current := managerID
	for !seen[current] {
		seen[current] = true
		next, err := s.Store.ManagerOf(ctx, current)
		if errors.Is(err, shared.ErrNotFound) {
			if current == managerID {
				return shared.NewValidationError("manager_id", msgManagerAbsent)
			}
			return nil
		}
		if err != nil {
			return err
		}
		if next == nil {
			return nil
		}
		if *next == subjectID {
			return shared.NewValidationError("manager_id", msgManagerCycle)
		}
		current = *next
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.Store.Delete(ctx, id)
}
