package attendance

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
    SELECT a.id, a.employee_id, a.date, a.clock_in, a.clock_out, a.break_start, a.break_end,
      a.total_minutes, a.overtime_minutes, a.status, a.notes, a.location,
      a.clock_in_location, a.clock_out_location, a.approved_by, a.approved_at, a.created_at, a.updated_at,
      e.id, e.employee_code, e.first_name, e.last_name,
      ap.id, ap.employee_code, ap.first_name, ap.last_name
    FROM attendance a
    LEFT JOIN employees e ON e.id = a.employee_id
    LEFT JOIN employees ap ON ap.id = a.approved_by
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

func scanDetail(row pgx.Row) (Attendance, error) {
	var a Attendance
	var emp, approver refColumns
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.Date, &a.ClockIn, &a.ClockOut, &a.BreakStart, &a.BreakEnd,
		&a.TotalMinutes, &a.OvertimeMinutes, &a.Status, &a.Notes, &a.Location,
		&a.ClockInLocation, &a.ClockOutLocation, &a.ApprovedBy, &a.ApprovedAt, &a.CreatedAt, &a.UpdatedAt,
		&emp.id, &emp.code, &emp.first, &emp.lastName,
		&approver.id, &approver.code, &approver.first, &approver.lastName,
	)
	if err != nil {
		return Attendance{}, err
	}
	a.Employee = emp.ref()
	a.Approver = approver.ref()
	return a, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (s *Store) list(ctx context.Context, tail string, args ...any) ([]Attendance, error) {
	rows, err := s.DB.Query(ctx, detailSelect+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Attendance{}
	for rows.Next() {
		a, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) findOne(ctx context.Context, where string, args ...any) (Attendance, error) {
	a, err := scanDetail(s.DB.QueryRow(ctx, detailSelect+where, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return Attendance{}, ErrNotFound
	}
	return a, err
}

func (s *Store) FindByID(ctx context.Context, id int64) (Attendance, error) {
	return s.findOne(ctx, " WHERE a.id = $1", id)
}

func (s *Store) FindByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (Attendance, error) {
	return s.findOne(ctx, " WHERE a.employee_id = $1 AND a.date = $2", employeeID, shared.DateOnly(date))
}

func (s *Store) List(ctx context.Context) ([]Attendance, error) {
	return s.list(ctx, " ORDER BY a.date DESC, a.id DESC")
}

func (s *Store) Paginate(ctx context.Context, page shared.PageRequest, filter Filter) (shared.Page[Attendance], error) {
	page = page.Normalize()
	var where querier.Where
	if filter.EmployeeID > 0 {
		where.Add("a.employee_id = $%d", filter.EmployeeID)
	}
	if filter.Status != "" {
		where.Add("a.status = $%d", filter.Status)
	}
	if filter.DateFrom != nil {
		where.Add("a.date >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		where.Add("a.date <= $%d", *filter.DateTo)
	}
	if filter.Search != "" {
		where.Add("(e.first_name ILIKE $%d OR e.last_name ILIKE $%d)", "%"+filter.Search+"%")
	}

	var total int64
	countSQL := "SELECT COUNT(1) FROM attendance a LEFT JOIN employees e ON e.id = a.employee_id" + where.SQL()
	if err := s.DB.QueryRow(ctx, countSQL, where.Args()...).Scan(&total); err != nil {
		return shared.Page[Attendance]{}, err
	}

	tail := where.SQL() + fmt.Sprintf(" ORDER BY a.date DESC, a.id DESC LIMIT $%d OFFSET $%d", where.Next(1), where.Next(2))
	items, err := s.list(ctx, tail, append(where.Args(), page.PerPage, page.Offset())...)
	if err != nil {
		return shared.Page[Attendance]{}, err
	}
	return shared.NewPage(items, page, total), nil
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID int64) ([]Attendance, error) {
	return s.list(ctx, " WHERE a.employee_id = $1 ORDER BY a.date DESC", employeeID)
}

func (s *Store) ListByEmployeeAndDateRange(ctx context.Context, employeeID int64, start, end time.Time) ([]Attendance, error) {
	return s.list(ctx, " WHERE a.employee_id = $1 AND a.date BETWEEN $2 AND $3 ORDER BY a.date", employeeID, start, end)
}

func (s *Store) ListByDateRange(ctx context.Context, start, end time.Time) ([]Attendance, error) {
	return s.list(ctx, " WHERE a.date BETWEEN $1 AND $2 ORDER BY a.date, e.last_name", start, end)
}

func (s *Store) ListByStatus(ctx context.Context, status string) ([]Attendance, error) {
	return s.list(ctx, " WHERE a.status = $1 ORDER BY a.date DESC", status)
}

func (s *Store) PresentEmployees(ctx context.Context, date time.Time) ([]Attendance, error) {
	return s.list(ctx, " WHERE a.date = $1 AND a.status IN ('present', 'late', 'remote') ORDER BY a.clock_in", date)
}

func (s *Store) AbsentEmployees(ctx context.Context, date time.Time) ([]Attendance, error) {
	return s.list(ctx, " WHERE a.date = $1 AND a.status = 'absent' ORDER BY e.last_name", date)
}

func (s *Store) LateEmployees(ctx context.Context, date time.Time) ([]Attendance, error) {
	return s.list(ctx, " WHERE a.date = $1 AND a.status = 'late' ORDER BY a.clock_in", date)
}

func (s *Store) TotalMinutes(ctx context.Context, employeeID int64, start, end time.Time) (int64, error) {
	var n int64
	err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(SUM(total_minutes), 0) FROM attendance
    WHERE employee_id = $1 AND date BETWEEN $2 AND $3
  `, employeeID, start, end).Scan(&n)
	return n, err
}

func (s *Store) OvertimeMinutes(ctx context.Context, employeeID int64, start, end time.Time) (int64, error) {
	var n int64
	err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(SUM(overtime_minutes), 0) FROM attendance
    WHERE employee_id = $1 AND date BETWEEN $2 AND $3
  `, employeeID, start, end).Scan(&n)
	return n, err
}

func (s *Store) AttendedDays(ctx context.Context, employeeID int64, start, end time.Time) (int64, int64, error) {
	var attended, working int64
	err := s.DB.QueryRow(ctx, `
    SELECT
      (SELECT COUNT(1) FROM attendance
        WHERE employee_id = $1 AND date BETWEEN $2 AND $3 AND status = ANY($4)),
      (SELECT COUNT(1) FROM generate_series($2::date, $3::date, interval '1 day') AS g(day)
        WHERE EXTRACT(ISODOW FROM g.day) < 6)
  `, employeeID, start, end, attendedStatuses).Scan(&attended, &working)
	return attended, working, err
}

func (s *Store) DailySummary(ctx context.Context, date time.Time) (DailySummary, error) {
	summary := DailySummary{Date: shared.DateOnly(date)}
	err := s.DB.QueryRow(ctx, `
    SELECT
      (SELECT COUNT(1) FROM employees WHERE status = 'active'),
      COUNT(1) FILTER (WHERE a.status = 'present'),
      COUNT(1) FILTER (WHERE a.status = 'absent'),
      COUNT(1) FILTER (WHERE a.status = 'late'),
      COUNT(1) FILTER (WHERE a.status = 'half_day'),
      COUNT(1) FILTER (WHERE a.status = 'remote'),
      COUNT(1)
    FROM attendance a
    WHERE a.date = $1
  `, summary.Date).Scan(&summary.TotalEmployees, &summary.Present, &summary.Absent, &summary.Late,
		&summary.HalfDay, &summary.Remote, &summary.NotRecorded)
	if err != nil {
		return DailySummary{}, err
	}
	summary.NotRecorded = max(0, summary.TotalEmployees-summary.NotRecorded)
	return summary, nil
}

func (s *Store) MonthlySummary(ctx context.Context, employeeID int64, year int, month time.Month) (MonthlySummary, error) {
	start, end := shared.MonthBounds(year, month)
	summary := MonthlySummary{EmployeeID: employeeID, Year: year, Month: int(month)}
	err := s.DB.QueryRow(ctx, `
    SELECT
      COUNT(1),
      COUNT(1) FILTER (WHERE status = 'present'),
      COUNT(1) FILTER (WHERE status = 'absent'),
      COUNT(1) FILTER (WHERE status = 'late'),
      COUNT(1) FILTER (WHERE status = 'half_day'),
      COUNT(1) FILTER (WHERE status = 'remote'),
      COALESCE(SUM(total_minutes), 0),
      COALESCE(SUM(overtime_minutes), 0)
    FROM attendance
    WHERE employee_id = $1 AND date BETWEEN $2 AND $3
  `, employeeID, start, end).Scan(&summary.DaysRecorded, &summary.PresentDays, &summary.AbsentDays, &summary.LateDays,
		&summary.HalfDays, &summary.RemoteDays, &summary.TotalMinutes, &summary.OvertimeMinutes)
	if err != nil {
		return MonthlySummary{}, err
	}
	attended, working, err := s.AttendedDays(ctx, employeeID, start, end)
	if err != nil {
		return MonthlySummary{}, err
	}
	summary.WorkingDays = working
	summary.AttendanceRate = Rate(attended, working)
	return summary, nil
}

func (s *Store) Create(ctx context.Context, data Data) (int64, error) {
	sql, args := querier.Insert("attendance", data.Columns())
	var id int64
	if err := s.DB.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, shared.TranslateError(err, constraints)
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, id int64, data Data) (Attendance, error) {
	sql, args := querier.Update("attendance", id, data.Columns())
	tag, err := s.DB.Exec(ctx, sql, args...)
	if err != nil {
		return Attendance{}, shared.TranslateError(err, constraints)
	}
	if tag.RowsAffected() == 0 {
		return Attendance{}, ErrNotFound
	}
	return s.FindByID(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM attendance WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
