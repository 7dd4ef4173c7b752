package leave

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"hradmin/internal/domain/shared"
)

type Service struct {
	Store StoreAPI
	Files AttachmentStore
	Now   shared.Clock
}

func NewService(store StoreAPI, files AttachmentStore) *Service {
	return &Service{Store: store, Files: files, Now: shared.SystemClock}
}

func (s *Service) today() time.Time {
	return shared.DateOnly(s.Now())
}

func (s *Service) Get(ctx context.Context, id int64) (Leave, error) {
	return s.Store.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Leave, error) {
	return s.Store.List(ctx)
}

func (s *Service) Paginate(ctx context.Context, page shared.PageRequest, filter Filter) (shared.Page[Leave], error) {
	return s.Store.Paginate(ctx, page, filter)
}

func (s *Service) ByEmployee(ctx context.Context, employeeID int64) ([]Leave, error) {
	return s.Store.ListByEmployee(ctx, employeeID)
}

func (s *Service) ByStatus(ctx context.Context, status string) ([]Leave, error) {
	return s.Store.ListByStatus(ctx, status)
}

func (s *Service) ByType(ctx context.Context, leaveType string) ([]Leave, error) {
	return s.Store.ListByType(ctx, leaveType)
}

func (s *Service) Pending(ctx context.Context) ([]Leave, error) {
	return s.Store.ListByStatus(ctx, StatusPending)
}

func (s *Service) Approved(ctx context.Context) ([]Leave, error) {
	return s.Store.ListByStatus(ctx, StatusApproved)
}

func (s *Service) ByDateRange(ctx context.Context, start, end time.Time) ([]Leave, error) {
	return s.Store.ListByDateRange(ctx, start, end)
}

func (s *Service) ByEmployeeAndDateRange(ctx context.Context, employeeID int64, start, end time.Time) ([]Leave, error) {
	return s.Store.ListByEmployeeAndDateRange(ctx, employeeID, start, end)
}

func (s *Service) Current(ctx context.Context) ([]Leave, error) {
	return s.Store.ListCurrent(ctx, s.today())
}

func (s *Service) Upcoming(ctx context.Context, days int) ([]Leave, error) {
	return s.Store.ListUpcoming(ctx, s.today(), days)
}

func (s *Service) Calendar(ctx context.Context, start, end time.Time) ([]Leave, error) {
	if end.Before(start) {
		start, end = end, start
	}
	return s.Store.Calendar(ctx, start, end)
}

func (s *Service) Statistics(ctx context.Context, year int) (Statistics, error) {
	return s.Store.Statistics(ctx, year)
}

func (s *Service) Balance(ctx context.Context, employeeID int64, leaveType string, year int) (Balance, error) {
	used, err := s.Store.UsedDays(ctx, employeeID, leaveType, year)
	if err != nil {
		return Balance{}, err
	}
	pending, err := s.Store.PendingDays(ctx, employeeID, leaveType, year)
	if err != nil {
		return Balance{}, err
	}
	return NewBalance(employeeID, leaveType, year, used, pending), nil
}

func (s *Service) Create(ctx context.Context, data Data) (Leave, error) {
	start, _ := data.StartDate.Get()
	end, _ := data.EndDate.Get()
	halfDay := data.IsHalfDay.Or(false)
	days, err := CalculateDays(start, end, halfDay)
	if err != nil {
		return Leave{}, shared.NewValidationError("end_date", "End date must be after or equal to start date.")
	}
	status := data.Status.Or(StatusPending)
	if slices.Contains(activeStatuses, status) {
		employeeID, _ := data.EmployeeID.Get()
		conflict, err := s.Store.HasConflict(ctx, employeeID, start, end, 0)
		if err != nil {
			return Leave{}, err
		}
		if conflict {
			return Leave{}, errOverlap
		}
	}

	data.Status = shared.Set(status)
	data.DaysRequested = shared.Set(days)
	if !halfDay {
		data.HalfDayPeriod = shared.Null[string]()
	}
	if !data.AppliedDate.IsSet() {
		data.AppliedDate = shared.Set(s.today())
	}
	id, err := s.Store.Create(ctx, data)
	if err != nil {
		return Leave{}, err
	}
	return s.Store.FindByID(ctx, id)
}

// Update recomputes days_requested and rechecks overlaps against the merged
// record. A status change must be one the approval workflow allows.
func (s *Service) Update(ctx context.Context, id int64, data Data) (Leave, error) {
	data.DaysRequested = shared.Field[float64]{}
	current, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return Leave{}, err
	}
	status := data.Status.Or(current.Status)
	if !CanTransition(current.Status, status) {
		return Leave{}, shared.Conflict(fmt.Sprintf("Leave status cannot change from %s to %s.", current.Status, status))
	}
	if status == StatusRejected && status != current.Status {
		reason := data.RejectionReason.Or("")
		if strings.TrimSpace(reason) == "" {
			return Leave{}, shared.NewValidationError("rejection_reason", "A rejection reason is required.")
		}
	}

	start := data.StartDate.Or(current.StartDate)
	end := data.EndDate.Or(current.EndDate)
	halfDay := data.IsHalfDay.Or(current.IsHalfDay)
	if data.StartDate.IsSet() || data.EndDate.IsSet() || data.IsHalfDay.IsSet() {
		days, err := CalculateDays(start, end, halfDay)
		if err != nil {
			return Leave{}, shared.NewValidationError("end_date", "End date must be after or equal to start date.")
		}
		data.DaysRequested = shared.Set(days)
		if !halfDay {
			data.HalfDayPeriod = shared.Null[string]()
		}
	}
	if slices.Contains(activeStatuses, status) {
		conflict, err := s.Store.HasConflict(ctx, data.EmployeeID.Or(current.EmployeeID), start, end, id)
		if err != nil {
			return Leave{}, err
		}
		if conflict {
			return Leave{}, errOverlap
		}
	}
	if status != current.Status {
		l, err := s.Store.SetStatus(ctx, id, []string{current.Status}, data)
		if errors.Is(err, errStatusChanged) {
			return Leave{}, errStatusRaced
		}
		return l, err
	}
	return s.Store.Update(ctx, id, data)
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.Store.Delete(ctx, id)
}

// Approve moves a pending request to approved. approverID may be zero when
// the approving user has no employee record.
func (s *Service) Approve(ctx context.Context, id, approverID int64, notes string) (Leave, error) {
	data := Data{
		Status:     shared.Set(StatusApproved),
		ApprovedAt: shared.Set(s.Now()),
	}
	if approverID > 0 {
		data.ApprovedBy = shared.Set(approverID)
	}
	if notes = strings.TrimSpace(notes); notes != "" {
		data.ApprovalNotes = shared.Set(notes)
	}
	return s.transition(ctx, id, []string{StatusPending}, data, errNotPendingApprove)
}

// Reject requires a pending request before it looks at the reason.
func (s *Service) Reject(ctx context.Context, id, approverID int64, reason string) (Leave, error) {
	current, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return Leave{}, err
	}
	if current.Status != StatusPending {
		return Leave{}, errNotPendingReject
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return Leave{}, shared.NewValidationError("rejection_reason", "A rejection reason is required.")
	}
	data := Data{
		Status:          shared.Set(StatusRejected),
		ApprovedAt:      shared.Set(s.Now()),
		RejectionReason: shared.Set(reason),
	}
	if approverID > 0 {
		data.ApprovedBy = shared.Set(approverID)
	}
	return s.transition(ctx, id, []string{StatusPending}, data, errNotPendingReject)
}

func (s *Service) Cancel(ctx context.Context, id int64) (Leave, error) {
	data := Data{Status: shared.Set(StatusCancelled)}
	return s.transition(ctx, id, activeStatuses, data, errNotCancellable)
}

func (s *Service) transition(ctx context.Context, id int64, from []string, data Data, invalid *shared.ConflictError) (Leave, error) {
	current, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return Leave{}, err
	}
	if !slices.Contains(from, current.Status) {
		return Leave{}, invalid
	}
	l, err := s.Store.SetStatus(ctx, id, from, data)
	if errors.Is(err, errStatusChanged) {
		return Leave{}, invalid
	}
	return l, err
}
