package employee

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

const baseColumns = `e.id, e.employee_code, e.first_name, e.last_name, e.email, e.phone, e.date_of_birth, e.gender, e.address,
      e.department_id, e.position_id, e.manager_id, e.hire_date, e.termination_date, e.employment_type, e.status,
      e.salary, e.emergency_contact_name, e.emergency_contact_phone, COALESCE(e.skills, '[]'::jsonb), e.notes,
      e.created_at, e.updated_at`

const detailSelect = `
    SELECT ` + baseColumns + `,
      d.id, d.name, d.code,
      p.id, p.title, p.level,
      m.id, m.employee_code, m.first_name, m.last_name
    FROM employees e
    LEFT JOIN departments d ON d.id = e.department_id
    LEFT JOIN positions p ON p.id = e.position_id
    LEFT JOIN employees m ON m.id = e.manager_id
  `

// nextOccurrence renders the first anniversary of a date column on or after $1.
const nextOccurrence = `(%[1]s + make_interval(years => EXTRACT(YEAR FROM age($1::date - 1, %[1]s))::int + 1))::date`

func (e *Employee) scanTargets() []any {
	return []any{
		&e.ID, &e.EmployeeCode, &e.FirstName, &e.LastName, &e.Email, &e.Phone, &e.DateOfBirth, &e.Gender, &e.Address,
		&e.DepartmentID, &e.PositionID, &e.ManagerID, &e.HireDate, &e.TerminationDate, &e.EmploymentType, &e.Status,
		&e.Salary, &e.EmergencyContactName, &e.EmergencyContactPhone, &e.Skills, &e.Notes,
		&e.CreatedAt, &e.UpdatedAt,
	}
}

func scanDetail(row pgx.Row) (Employee, error) {
	var e Employee
	var dID, pID, mID *int64
	var dName, dCode, pTitle, pLevel, mCode, mFirst, mLast *string
	targets := append(e.scanTargets(), &dID, &dName, &dCode, &pID, &pTitle, &pLevel, &mID, &mCode, &mFirst, &mLast)
	if err := row.Scan(targets...); err != nil {
		return Employee{}, err
	}
	if dID != nil {
		e.Department = &DepartmentRef{ID: *dID, Name: deref(dName), Code: deref(dCode)}
	}
	if pID != nil {
		e.Position = &PositionRef{ID: *pID, Title: deref(pTitle), Level: deref(pLevel)}
	}
	if mID != nil {
		e.Manager = &ManagerRef{ID: *mID, EmployeeCode: deref(mCode), FirstName: deref(mFirst), LastName: deref(mLast)}
	}
	if e.Skills == nil {
		e.Skills = []string{}
	}
	return e, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (s *Store) findOne(ctx context.Context, where string, args ...any) (Employee, error) {
	e, err := scanDetail(s.DB.QueryRow(ctx, detailSelect+where, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return e, err
}

func (s *Store) list(ctx context.Context, tail string, args ...any) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, detailSelect+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Employee{}
	for rows.Next() {
		e, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) FindByID(ctx context.Context, id int64) (Employee, error) {
	return s.findOne(ctx, " WHERE e.id = $1", id)
}

func (s *Store) FindByCode(ctx context.Context, code string) (Employee, error) {
	return s.findOne(ctx, " WHERE e.employee_code = $1", code)
}

func (s *Store) FindByEmail(ctx context.Context, email string) (Employee, error) {
	return s.findOne(ctx, " WHERE lower(e.email) = lower($1)", email)
}

func (s *Store) List(ctx context.Context) ([]Employee, error) {
	return s.list(ctx, " ORDER BY e.last_name, e.first_name")
}

func (s *Store) Paginate(ctx context.Context, page shared.PageRequest, filter Filter) (shared.Page[Employee], error) {
	page = page.Normalize()
	var where querier.Where
	if filter.DepartmentID > 0 {
		where.Add("e.department_id = $%d", filter.DepartmentID)
	}
	if filter.PositionID > 0 {
		where.Add("e.position_id = $%d", filter.PositionID)
	}
	if filter.Status != "" {
		where.Add("e.status = $%d", filter.Status)
	}
	if filter.EmploymentType != "" {
		where.Add("e.employment_type = $%d", filter.EmploymentType)
	}
	if filter.Search != "" {
		where.Add("(e.first_name ILIKE $%d OR e.last_name ILIKE $%d OR e.email ILIKE $%d OR e.employee_code ILIKE $%d)", "%"+filter.Search+"%")
	}

	var total int64
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees e"+where.SQL(), where.Args()...).Scan(&total); err != nil {
		return shared.Page[Employee]{}, err
	}

	tail := where.SQL() + fmt.Sprintf(" ORDER BY e.created_at DESC, e.id DESC LIMIT $%d OFFSET $%d", where.Next(1), where.Next(2))
	items, err := s.list(ctx, tail, append(where.Args(), page.PerPage, page.Offset())...)
	if err != nil {
		return shared.Page[Employee]{}, err
	}
	return shared.NewPage(items, page, total), nil
}

func (s *Store) ListByDepartment(ctx context.Context, departmentID int64) ([]Employee, error) {
	return s.list(ctx, " WHERE e.department_id = $1 ORDER BY e.last_name, e.first_name", departmentID)
}

func (s *Store) ListByPosition(ctx context.Context, positionID int64) ([]Employee, error) {
	return s.list(ctx, " WHERE e.position_id = $1 ORDER BY e.last_name, e.first_name", positionID)
}

func (s *Store) ListByManager(ctx context.Context, managerID int64) ([]Employee, error) {
	return s.list(ctx, " WHERE e.manager_id = $1 ORDER BY e.last_name, e.first_name", managerID)
}

func (s *Store) ListByStatus(ctx context.Context, status string) ([]Employee, error) {
	return s.list(ctx, " WHERE e.status = $1 ORDER BY e.last_name, e.first_name", status)
}

func (s *Store) ListInactive(ctx context.Context) ([]Employee, error) {
	return s.list(ctx, " WHERE e.status <> 'active' ORDER BY e.last_name, e.first_name")
}

func (s *Store) SearchByName(ctx context.Context, term string) ([]Employee, error) {
	return s.list(ctx, `
    WHERE e.first_name ILIKE $1 OR e.last_name ILIKE $1 OR (e.first_name || ' ' || e.last_name) ILIKE $1
      OR e.email ILIKE $1 OR e.employee_code ILIKE $1
    ORDER BY e.last_name, e.first_name
  `, "%"+term+"%")
}

func (s *Store) ListHiredBetween(ctx context.Context, start, end time.Time) ([]Employee, error) {
	return s.list(ctx, " WHERE e.hire_date BETWEEN $1 AND $2 ORDER BY e.hire_date", start, end)
}

func (s *Store) ListUpcomingBirthdays(ctx context.Context, today time.Time, days int) ([]Employee, error) {
	next := fmt.Sprintf(nextOccurrence, "e.date_of_birth")
	return s.list(ctx, `
    WHERE e.status = 'active' AND e.date_of_birth IS NOT NULL
      AND `+next+` <= $1::date + $2::int
    ORDER BY `+next, today, days)
}

func (s *Store) ListUpcomingAnniversaries(ctx context.Context, today time.Time, days int) ([]Employee, error) {
	next := fmt.Sprintf(nextOccurrence, "e.hire_date")
	return s.list(ctx, `
    WHERE e.status = 'active' AND e.hire_date < $1::date
      AND `+next+` <= $1::date + $2::int
    ORDER BY `+next, today, days)
}

func (s *Store) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees").Scan(&n)
	return n, err
}

func (s *Store) CountByDepartment(ctx context.Context) ([]DepartmentCount, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.department_id, COALESCE(d.name, 'Unassigned'), COUNT(1)
    FROM employees e
    LEFT JOIN departments d ON d.id = e.department_id
    GROUP BY e.department_id, d.name
    ORDER BY 2
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []DepartmentCount{}
	for rows.Next() {
		var c DepartmentCount
		if err := rows.Scan(&c.DepartmentID, &c.DepartmentName, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) CountByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := s.DB.Query(ctx, "SELECT status, COUNT(1) FROM employees GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]int64{}
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[status] = n
	}
	return out, rows.Err()
}

func (s *Store) ManagerOf(ctx context.Context, id int64) (*int64, error) {
	var managerID *int64
	err := s.DB.QueryRow(ctx, "SELECT manager_id FROM employees WHERE id = $1", id).Scan(&managerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return managerID, err
}

func (s *Store) Create(ctx context.Context, data Data) (int64, error) {
	sql, args := querier.Insert("employees", data.Columns())
	var id int64
	if err := s.DB.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, shared.TranslateError(err, constraints)
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, id int64, data Data) (Employee, error) {
	sql, args := querier.Update("employees", id, data.Columns())
	tag, err := s.DB.Exec(ctx, sql, args...)
	if err != nil {
		return Employee{}, shared.TranslateError(err, constraints)
	}
	if tag.RowsAffected() == 0 {
		return Employee{}, ErrNotFound
	}
	return s.FindByID(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
