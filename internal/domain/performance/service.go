package performance

import (
	"context"
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

func (s *Service) Get(ctx context.Context, id int64) (Review, error) {
	return s.Store.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Review, error) {
	return s.Store.List(ctx)
}

func (s *Service) Paginate(ctx context.Context, page shared.PageRequest, filter Filter) (shared.Page[Review], error) {
	return s.Store.Paginate(ctx, page, filter)
}

func (s *Service) ByEmployee(ctx context.Context, employeeID int64) ([]Review, error) {
	return s.Store.ListByEmployee(ctx, employeeID)
}

func (s *Service) ByReviewer(ctx context.Context, reviewerID int64) ([]Review, error) {
	return s.Store.ListByReviewer(ctx, reviewerID)
}

func (s *Service) ByStatus(ctx context.Context, status string) ([]Review, error) {
	return s.Store.ListByStatus(ctx, status)
}

func (s *Service) ByType(ctx context.Context, reviewType string) ([]Review, error) {
	return s.Store.ListByType(ctx, reviewType)
}

func (s *Service) Pending(ctx context.Context) ([]Review, error) {
	return s.Store.ListPending(ctx)
}

func (s *Service) Completed(ctx context.Context) ([]Review, error) {
	return s.Store.ListByStatus(ctx, StatusCompleted)
}

func (s *Service) Overdue(ctx context.Context) ([]Review, error) {
	return s.Store.ListOverdue(ctx, s.today())
}

func (s *Service) Due(ctx context.Context, days int) ([]Review, error) {
	if days <= 0 {
		days = DueSoonDays
	}
	return s.Store.ListDue(ctx, s.today(), days)
}

func (s *Service) Upcoming(ctx context.Context, days int) ([]Review, error) {
	if days <= 0 {
		days = DueSoonDays
	}
	return s.Store.ListUpcoming(ctx, s.today(), days)
}

func (s *Service) ByPeriod(ctx context.Context, period string) ([]Review, error) {
	return s.Store.ListByPeriod(ctx, period)
}

func (s *Service) ByDateRange(ctx context.Context, start, end time.Time) ([]Review, error) {
	if end.Before(start) {
		start, end = end, start
	}
	return s.Store.ListByDateRange(ctx, start, end)
}

func (s *Service) ByRatingRange(ctx context.Context, min, max int) ([]Review, error) {
	if max < min {
		min, max = max, min
	}
	return s.Store.ListByRatingRange(ctx, min, max)
}

func (s *Service) Latest(ctx context.Context, employeeID int64) (Review, error) {
	return s.Store.Latest(ctx, employeeID)
}

func (s *Service) History(ctx context.Context, employeeID int64) ([]Review, error) {
	return s.Store.History(ctx, employeeID)
}

func (s *Service) EmployeeAverage(ctx context.Context, employeeID int64) (*float64, error) {
	return s.Store.AverageRatingByEmployee(ctx, employeeID)
}

func (s *Service) DepartmentAverage(ctx context.Context, departmentID int64) (*float64, error) {
	return s.Store.AverageRatingByDepartment(ctx, departmentID)
}

func (s *Service) Statistics(ctx context.Context, year int) (Statistics, error) {
	return s.Store.Statistics(ctx, year, s.today())
}

func (s *Service) Create(ctx context.Context, data Data) (Review, error) {
	employeeID, _ := data.EmployeeID.Get()
	reviewerID, _ := data.ReviewerID.Get()
	if employeeID != 0 && employeeID == reviewerID {
		return Review{}, shared.NewValidationError("reviewer_id", msgSelfReview)
	}
	status := data.Status.Or(StatusDraft)
	data.Status = shared.Set(status)
	if status == StatusCompleted && !data.CompletedAt.IsSet() {
		data.CompletedAt = shared.Set(s.Now())
	}
	id, err := s.Store.Create(ctx, data)
	if err != nil {
		return Review{}, err
	}
	return s.Store.FindByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, data Data) (Review, error) {
	if data.EmployeeID.IsSet() || data.ReviewerID.IsSet() || data.Status.IsSet() {
		current, err := s.Store.FindByID(ctx, id)
		if err != nil {
			return Review{}, err
		}
		if data.EmployeeID.Or(current.EmployeeID) == data.ReviewerID.Or(current.ReviewerID) {
			return Review{}, shared.NewValidationError("reviewer_id", msgSelfReview)
		}
		status := data.Status.Or(current.Status)
		switch {
		case status == StatusCompleted && current.CompletedAt == nil && !data.CompletedAt.IsSet():
			data.CompletedAt = shared.Set(s.Now())
		case status != StatusCompleted && current.CompletedAt != nil:
			data.CompletedAt = shared.Null[time.Time]()
		}
	}
	return s.Store.Update(ctx, id, data)
}

// Complete forces the review into completed and stamps completed_at.
func (s *Service) Complete(ctx context.Context, id int64) (Review, error) {
	current, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return Review{}, err
	}
	if current.IsCompleted() {
		return Review{}, errAlreadyCompleted
	}
	return s.Store.Complete(ctx, id, s.Now())
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.Store.Delete(ctx, id)
}
