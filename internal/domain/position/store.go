package position

import (
	"context"
	"errors"
	"fmt"

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

const baseColumns = `p.id, p.title, p.code, p.description, p.department_id, p.level, p.min_salary, p.max_salary, p.requirements, p.responsibilities, p.status, p.created_at, p.updated_at`

const detailSelect = `
    SELECT ` + baseColumns + `,
      d.id, d.name, d.code,
      (SELECT COUNT(1) FROM employees e WHERE e.position_id = p.id)
    FROM positions p
    LEFT JOIN departments d ON d.id = p.department_id
  `

const plainSelect = `
    SELECT ` + baseColumns + `
    FROM positions p
  `

func scanPlain(row pgx.Row) (Position, error) {
	var p Position
	err := row.Scan(&p.ID, &p.Title, &p.Code, &p.Description, &p.DepartmentID, &p.Level, &p.MinSalary, &p.MaxSalary,
		&p.Requirements, &p.Responsibilities, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func scanDetail(row pgx.Row) (Position, error) {
	var p Position
	var dID *int64
	var dName, dCode *string
	var count int64
	err := row.Scan(
		&p.ID, &p.Title, &p.Code, &p.Description, &p.DepartmentID, &p.Level, &p.MinSalary, &p.MaxSalary,
		&p.Requirements, &p.Responsibilities, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		&dID, &dName, &dCode, &count,
	)
	if err != nil {
		return Position{}, err
	}
	if dID != nil {
		p.Department = &DepartmentRef{ID: *dID, Name: deref(dName), Code: deref(dCode)}
	}
	p.EmployeeCount = &count
	return p, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func collect(rows pgx.Rows, scan func(pgx.Row) (Position, error)) ([]Position, error) {
	defer rows.Close()
	out := []Position{}
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) findOne(ctx context.Context, scan func(pgx.Row) (Position, error), query string, args ...any) (Position, error) {
	p, err := scan(s.DB.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return Position{}, ErrNotFound
	}
	return p, err
}

func (s *Store) list(ctx context.Context, scan func(pgx.Row) (Position, error), query string, args ...any) ([]Position, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scan)
}

func (s *Store) FindByID(ctx context.Context, id int64) (Position, error) {
	return s.findOne(ctx, scanDetail, detailSelect+" WHERE p.id = $1", id)
}

func (s *Store) FindByTitle(ctx context.Context, title string) (Position, error) {
	return s.findOne(ctx, scanPlain, plainSelect+" WHERE lower(p.title) = lower($1) ORDER BY p.id LIMIT 1", title)
}

func (s *Store) FindByCode(ctx context.Context, code string) (Position, error) {
	return s.findOne(ctx, scanPlain, plainSelect+" WHERE lower(p.code) = lower($1)", code)
}

func (s *Store) List(ctx context.Context) ([]Position, error) {
	return s.list(ctx, scanPlain, plainSelect+" ORDER BY p.title")
}

func (s *Store) Paginate(ctx context.Context, page shared.PageRequest, filter Filter) (shared.Page[Position], error) {
	page = page.Normalize()
	var where querier.Where
	if filter.DepartmentID > 0 {
		where.Add("p.department_id = $%d", filter.DepartmentID)
	}
	if filter.Level != "" {
		where.Add("p.level = $%d", filter.Level)
	}
	if filter.Status != "" {
		where.Add("p.status = $%d", filter.Status)
	}
	if filter.Search != "" {
		where.Add("(p.title ILIKE $%d OR p.code ILIKE $%d OR p.description ILIKE $%d)", "%"+filter.Search+"%")
	}

	var total int64
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM positions p"+where.SQL(), where.Args()...).Scan(&total); err != nil {
		return shared.Page[Position]{}, err
	}

	query := detailSelect + where.SQL() + fmt.Sprintf(" ORDER BY p.created_at DESC, p.id DESC LIMIT $%d OFFSET $%d", where.Next(1), where.Next(2))
	items, err := s.list(ctx, scanDetail, query, append(where.Args(), page.PerPage, page.Offset())...)
	if err != nil {
		return shared.Page[Position]{}, err
	}
	return shared.NewPage(items, page, total), nil
}

func (s *Store) ListByStatus(ctx context.Context, status string) ([]Position, error) {
	return s.list(ctx, scanPlain, plainSelect+" WHERE p.status = $1 ORDER BY p.title", status)
}

func (s *Store) ListByDepartment(ctx context.Context, departmentID int64) ([]Position, error) {
	return s.list(ctx, scanPlain, plainSelect+" WHERE p.department_id = $1 ORDER BY p.title", departmentID)
}

func (s *Store) ListByLevel(ctx context.Context, level string) ([]Position, error) {
	return s.list(ctx, scanPlain, plainSelect+" WHERE p.level = $1 ORDER BY p.title", level)
}

// ListBySalaryRange returns positions whose band lies inside [min, max].
func (s *Store) ListBySalaryRange(ctx context.Context, min, max float64) ([]Position, error) {
	return s.list(ctx, scanPlain, plainSelect+" WHERE p.min_salary >= $1 AND p.max_salary <= $2 ORDER BY p.min_salary", min, max)
}

func (s *Store) SearchByTitle(ctx context.Context, term string) ([]Position, error) {
	return s.list(ctx, scanPlain, plainSelect+" WHERE p.title ILIKE $1 ORDER BY p.title", "%"+term+"%")
}

func (s *Store) ListWithEmployeeCount(ctx context.Context) ([]Position, error) {
	return s.list(ctx, scanDetail, detailSelect+" ORDER BY p.title")
}

func (s *Store) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM positions").Scan(&n)
	return n, err
}

func (s *Store) EmployeeCount(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE position_id = $1", id).Scan(&n)
	return n, err
}

func (s *Store) Statistics(ctx context.Context, id int64) (Statistics, error) {
	stats := Statistics{PositionID: id}
	err := s.DB.QueryRow(ctx, `
    SELECT
      (SELECT COUNT(1) FROM employees WHERE position_id = p.id),
      (SELECT COUNT(1) FROM employees WHERE position_id = p.id AND status = 'active'),
      (SELECT AVG(salary)::float8 FROM employees WHERE position_id = p.id AND salary IS NOT NULL),
      (SELECT MIN(salary)::float8 FROM employees WHERE position_id = p.id),
      (SELECT MAX(salary)::float8 FROM employees WHERE position_id = p.id),
      p.min_salary, p.max_salary
    FROM positions p
    WHERE p.id = $1
  `, id).Scan(&stats.EmployeeCount, &stats.ActiveEmployeeCount, &stats.AverageSalary, &stats.LowestSalary,
		&stats.HighestSalary, &stats.MinSalary, &stats.MaxSalary)
	if errors.Is(err, pgx.ErrNoRows) {
		return Statistics{}, ErrNotFound
	}
	return stats, err
}

func (s *Store) Create(ctx context.Context, data Data) (int64, error) {
	sql, args := querier.Insert("positions", data.Columns())
	var id int64
	if err := s.DB.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, shared.TranslateError(err, constraints)
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, id int64, data Data) (Position, error) {
	sql, args := querier.Update("positions", id, data.Columns())
	tag, err := s.DB.Exec(ctx, sql, args...)
	if err != nil {
		return Position{}, shared.TranslateError(err, constraints)
	}
	if tag.RowsAffected() == 0 {
		return Position{}, ErrNotFound
	}
	return s.FindByID(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM positions WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
