package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"hradmin/internal/domain/shared"
	"hradmin/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const detailSelect = `
    SELECT l.id, l.employee_id, l.leave_type, l.start_date, l.end_date, l.days_requested::float8, l.reason, l.status,
      l.approved_by, l.approved_at, l.approval_notes, l.rejection_reason, l.is_half_day, l.half_day_period,
      COALESCE(l.attachments, '[]'::jsonb), l.applied_date, l.created_at, l.updated_at,
      e.id, e.employee_code, e.first_name, e.last_name,
      ap.id, ap.employee_code, ap.first_name, ap.last_name
    FROM leaves l
    LEFT JOIN employees e ON e.id = l.employee_id
    LEFT JOIN employees ap ON ap.id = l.approved_by
  `

type refColumns struct {
	id                    *int64
	code, first, lastName *string
}

func (r refColumns) ref() *EmployeeRef {
	if r.id == nil {
		return nil
	}
	return &EmployeeRef{ID: *r.id, EmployeeCode: deref(r.code), FirstName: deref(r.first), LastName: deref(r.lastName)}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func scanDetail(row pgx.Row) (Leave, error) {
	var l Leave
	var emp, approver refColumns
	err := row.Scan(
		&l.ID, &l.EmployeeID, &l.LeaveType, &l.StartDate, &l.EndDate, &l.DaysRequested, &l.Reason, &l.Status,
		&l.ApprovedBy, &l.ApprovedAt, &l.ApprovalNotes, &l.RejectionReason, &l.IsHalfDay, &l.HalfDayPeriod,
		&l.Attachments, &l.AppliedDate, &l.CreatedAt, &l.UpdatedAt,
		&emp.id, &emp.code, &emp.first, &emp.lastName,
		&approver.id, &approver.code, &approver.first, &approver.lastName,
	)
	if err != nil {
		return Leave{}, err
	}
	if l.Attachments == nil {
		l.Attachments = []string{}
	}
	l.Employee = emp.ref()
	l.Approver = approver.ref()
	return l, nil
}

func (s *Store) list(ctx context.Context, tail string, args ...any) ([]Leave, error) {
	rows, err := s.DB.Query(ctx, detailSelect+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Leave{}
	for rows.Next() {
		l, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Store) FindByID(ctx context.Context, id int64) (Leave, error) {
	l, err := scanDetail(s.DB.QueryRow(ctx, detailSelect+" WHERE l.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Leave{}, ErrNotFound
	}
	return l, err
}

func (s *Store) List(ctx context.Context) ([]Leave, error) {
	return s.list(ctx, " ORDER BY l.start_date DESC, l.id DESC")
}

func (s *Store) Paginate(ctx context.Context, page shared.PageRequest, filter Filter) (shared.Page[Leave], error) {
	page = page.Normalize()
	var where querier.Where
	if filter.EmployeeID > 0 {
		where.Add("l.employee_id = $%d", filter.EmployeeID)
	}
	if filter.Status != "" {
		where.Add("l.status = $%d", filter.Status)
	}
	if filter.LeaveType != "" {
		where.Add("l.leave_type = $%d", filter.LeaveType)
	}
	if filter.DateFrom != nil {
		where.Add("l.end_date >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		where.Add("l.start_date <= $%d", *filter.DateTo)
	}
	if filter.Search != "" {
		where.Add("(e.first_name ILIKE $%d OR e.last_name ILIKE $%d OR l.reason ILIKE $%d)", "%"+filter.Search+"%")
	}

	var total int64
	countSQL := "SELECT COUNT(1) FROM leaves l LEFT JOIN employees e ON e.id = l.employee_id" + where.SQL()
	if err := s.DB.QueryRow(ctx, countSQL, where.Args()...).Scan(&total); err != nil {
		return shared.Page[Leave]{}, err
	}

	tail := where.SQL() + fmt.Sprintf(" ORDER BY l.created_at DESC, l.id DESC LIMIT $%d OFFSET $%d", where.Next(1), where.Next(2))
	items, err := s.list(ctx, tail, append(where.Args(), page.PerPage, page.Offset())...)
	if err != nil {
		return shared.Page[Leave]{}, err
	}
	return shared.NewPage(items, page, total), nil
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID int64) ([]Leave, error) {
	return s.list(ctx, " WHERE l.employee_id = $1 ORDER BY l.start_date DESC", employeeID)
}

func (s *Store) ListByStatus(ctx context.Context, status string) ([]Leave, error) {
	return s.list(ctx, " WHERE l.status = $1 ORDER BY l.start_date", status)
}

func (s *Store) ListByType(ctx context.Context, leaveType string) ([]Leave, error) {
	return s.list(ctx, " WHERE l.leave_type = $1 ORDER BY l.start_date DESC", leaveType)
}

// ListByDateRange returns leaves overlapping [start, end].
func (s *Store) ListByDateRange(ctx context.Context, start, end time.Time) ([]Leave, error) {
	return s.list(ctx, " WHERE l.start_date <= $2 AND l.end_date >= $1 ORDER BY l.start_date", start, end)
}

func (s *Store) ListByEmployeeAndDateRange(ctx context.Context, employeeID int64, start, end time.Time) ([]Leave, error) {
	return s.list(ctx, " WHERE l.employee_id = $1 AND l.start_date <= $3 AND l.end_date >= $2 ORDER BY l.start_date", employeeID, start, end)
}

func (s *Store) ListCurrent(ctx context.Context, today time.Time) ([]Leave, error) {
	return s.list(ctx, " WHERE l.status = 'approved' AND l.start_date <= $1 AND l.end_date >= $1 ORDER BY l.end_date", today)
}

func (s *Store) ListUpcoming(ctx context.Context, today time.Time, days int) ([]Leave, error) {
	return s.list(ctx, `
    WHERE l.status = 'approved' AND l.start_date > $1::date AND l.start_date <= $1::date + $2::int
    ORDER BY l.start_date
  `, today, days)
}

func (s *Store) HasConflict(ctx context.Context, employeeID int64, start, end time.Time, excludeID int64) (bool, error) {
	var exists bool
	err := s.DB.QueryRow(ctx, `
    SELECT EXISTS (
      SELECT 1 FROM leaves
      WHERE employee_id = $1 AND status = ANY($4) AND start_date <= $3 AND end_date >= $2 AND id <> $5
    )
  `, employeeID, start, end, activeStatuses, excludeID).Scan(&exists)
	return exists, err
}

func (s *Store) sumDays(ctx context.Context, employeeID int64, leaveType, status string, year int) (float64, error) {
	first, last := shared.YearBounds(year)
	var days float64
	err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(SUM(days_requested), 0)::float8 FROM leaves
    WHERE employee_id = $1 AND leave_type = $2 AND status = $3 AND start_date BETWEEN $4 AND $5
  `, employeeID, leaveType, status, first, last).Scan(&days)
	return days, err
}

func (s *Store) UsedDays(ctx context.Context, employeeID int64, leaveType string, year int) (float64, error) {
	return s.sumDays(ctx, employeeID, leaveType, StatusApproved, year)
}

func (s *Store) PendingDays(ctx context.Context, employeeID int64, leaveType string, year int) (float64, error) {
	return s.sumDays(ctx, employeeID, leaveType, StatusPending, year)
}

// Calendar returns approved and pending leaves overlapping the window.
func (s *Store) Calendar(ctx context.Context, start, end time.Time) ([]Leave, error) {
	return s.list(ctx, `
    WHERE l.status IN ('approved', 'pending') AND l.start_date <= $2 AND l.end_date >= $1
    ORDER BY l.start_date, e.last_name
  `, start, end)
}

func (s *Store) Statistics(ctx context.Context, year int) (Statistics, error) {
	first, last := shared.YearBounds(year)
	stats := Statistics{Year: year, ByType: []TypeStatistics{}}
	err := s.DB.QueryRow(ctx, `
    SELECT
      COUNT(1),
      COUNT(1) FILTER (WHERE status = 'pending'),
      COUNT(1) FILTER (WHERE status = 'approved'),
      COUNT(1) FILTER (WHERE status = 'rejected'),
      COUNT(1) FILTER (WHERE status = 'cancelled'),
      COALESCE(SUM(days_requested) FILTER (WHERE status = 'approved'), 0)::float8
    FROM leaves
    WHERE start_date BETWEEN $1 AND $2
  `, first, last).Scan(&stats.Total, &stats.Pending, &stats.Approved, &stats.Rejected, &stats.Cancelled, &stats.DaysTaken)
	if err != nil {
		return Statistics{}, err
	}

	rows, err := s.DB.Query(ctx, `
    SELECT leave_type, COUNT(1), COALESCE(SUM(days_requested) FILTER (WHERE status = 'approved'), 0)::float8
    FROM leaves
    WHERE start_date BETWEEN $1 AND $2
    GROUP BY leave_type
    ORDER BY leave_type
  `, first, last)
	if err != nil {
		return Statistics{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var t TypeStatistics
		if err := rows.Scan(&t.LeaveType, &t.Requests, &t.Days); err != nil {
			return Statistics{}, err
		}
		stats.ByType = append(stats.ByType, t)
	}
	return stats, rows.Err()
}

func (s *Store) SetStatus(ctx context.Context, id int64, from []string, data Data) (Leave, error) {
	sql, args := querier.Update("leaves", id, data.Columns())
	args = append(args, from)
	sql += fmt.Sprintf(" AND status = ANY($%d)", len(args))
	tag, err := s.DB.Exec(ctx, sql, args...)
	if err != nil {
		return Leave{}, shared.TranslateError(err, constraints)
	}
	if tag.RowsAffected() == 0 {
		if _, err := s.FindByID(ctx, id); err != nil {
			return Leave{}, err
		}
		return Leave{}, errStatusChanged
	}
	return s.FindByID(ctx, id)
}

func (s *Store) Create(ctx context.Context, data Data) (int64, error) {
	sql, args := querier.Insert("leaves", data.Columns())
	var id int64
	if err := s.DB.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, shared.TranslateError(err, constraints)
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, id int64, data Data) (Leave, error) {
	sql, args := querier.Update("leaves", id, data.Columns())
	tag, err := s.DB.Exec(ctx, sql, args...)
	if err != nil {
		return Leave{}, shared.TranslateError(err, constraints)
	}
	if tag.RowsAffected() == 0 {
		return Leave{}, ErrNotFound
	}
	return s.FindByID(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM leaves WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
