package department

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

const baseColumns = `d.id, d.name, d.code, d.description, d.manager_id, d.location, d.budget, d.status, d.created_at, d.updated_at`

const detailSelect = `
    SELECT ` + baseColumns + `,
      m.id, m.first_name, m.last_name, m.email,
      (SELECT COUNT(1) FROM employees e WHERE e.department_id = d.id)
    FROM departments d
    LEFT JOIN employees m ON m.id = d.manager_id
  `

const plainSelect = `
    SELECT ` + baseColumns + `
    FROM departments d
  `

func scanPlain(row pgx.Row) (Department, error) {
	var d Department
	err := row.Scan(&d.ID, &d.Name, &d.Code, &d.Description, &d.ManagerID, &d.Location, &d.Budget, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func scanDetail(row pgx.Row) (Department, error) {
	var d Department
	var mID *int64
	var mFirst, mLast, mEmail *string
	var count int64
	err := row.Scan(
		&d.ID, &d.Name, &d.Code, &d.Description, &d.ManagerID, &d.Location, &d.Budget, &d.Status, &d.CreatedAt, &d.UpdatedAt,
		&mID, &mFirst, &mLast, &mEmail, &count,
	)
	if err != nil {
		return Department{}, err
	}
	if mID != nil {
		d.Manager = &ManagerRef{ID: *mID, FirstName: deref(mFirst), LastName: deref(mLast), Email: deref(mEmail)}
	}
	d.EmployeeCount = &count
	return d, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func collect(rows pgx.Rows, scan func(pgx.Row) (Department, error)) ([]Department, error) {
	defer rows.Close()
	out := []Department{}
	for rows.Next() {
		d, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) FindByID(ctx context.Context, id int64) (Department, error) {
	d, err := scanDetail(s.DB.QueryRow(ctx, detailSelect+" WHERE d.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Department{}, ErrNotFound
	}
	return d, err
}

func (s *Store) FindByName(ctx context.Context, name string) (Department, error) {
	d, err := scanPlain(s.DB.QueryRow(ctx, plainSelect+" WHERE lower(d.name) = lower($1)", name))
	if errors.Is(err, pgx.ErrNoRows) {
		return Department{}, ErrNotFound
	}
	return d, err
}

func (s *Store) FindByCode(ctx context.Context, code string) (Department, error) {
	d, err := scanPlain(s.DB.QueryRow(ctx, plainSelect+" WHERE lower(d.code) = lower($1)", code))
	if errors.Is(err, pgx.ErrNoRows) {
		return Department{}, ErrNotFound
	}
	return d, err
}

func (s *Store) List(ctx context.Context) ([]Department, error) {
	rows, err := s.DB.Query(ctx, plainSelect+" ORDER BY d.name")
	if err != nil {
		return nil, err
	}
	return collect(rows, scanPlain)
}

func (s *Store) Paginate(ctx context.Context, page shared.PageRequest, filter Filter) (shared.Page[Department], error) {
	page = page.Normalize()
	var where querier.Where
	if filter.Status != "" {
		where.Add("d.status = $%d", filter.Status)
	}
	if filter.Search != "" {
		where.Add("(d.name ILIKE $%d OR d.code ILIKE $%d OR d.description ILIKE $%d)", "%"+filter.Search+"%")
	}

	var total int64
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM departments d"+where.SQL(), where.Args()...).Scan(&total); err != nil {
		return shared.Page[Department]{}, err
	}

	query := detailSelect + where.SQL() + fmt.Sprintf(" ORDER BY d.created_at DESC, d.id DESC LIMIT $%d OFFSET $%d", where.Next(1), where.Next(2))
	args := append(where.Args(), page.PerPage, page.Offset())
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return shared.Page[Department]{}, err
	}
	items, err := collect(rows, scanDetail)
	if err != nil {
		return shared.Page[Department]{}, err
	}
	return shared.NewPage(items, page, total), nil
}

func (s *Store) ListByStatus(ctx context.Context, status string) ([]Department, error) {
	rows, err := s.DB.Query(ctx, plainSelect+" WHERE d.status = $1 ORDER BY d.name", status)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanPlain)
}

func (s *Store) ListByManager(ctx context.Context, managerID int64) ([]Department, error) {
	rows, err := s.DB.Query(ctx, plainSelect+" WHERE d.manager_id = $1 ORDER BY d.name", managerID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanPlain)
}

func (s *Store) ListWithEmployeeCount(ctx context.Context) ([]Department, error) {
	rows, err := s.DB.Query(ctx, detailSelect+" ORDER BY d.name")
	if err != nil {
		return nil, err
	}
	return collect(rows, scanDetail)
}

func (s *Store) SearchByName(ctx context.Context, term string) ([]Department, error) {
	rows, err := s.DB.Query(ctx, plainSelect+" WHERE d.name ILIKE $1 ORDER BY d.name", "%"+term+"%")
	if err != nil {
		return nil, err
	}
	return collect(rows, scanPlain)
}

func (s *Store) ListByBudgetRange(ctx context.Context, min, max float64) ([]Department, error) {
	rows, err := s.DB.Query(ctx, plainSelect+" WHERE d.budget BETWEEN $1 AND $2 ORDER BY d.budget", min, max)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanPlain)
}

func (s *Store) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM departments").Scan(&n)
	return n, err
}

func (s *Store) EmployeeCount(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE department_id = $1", id).Scan(&n)
	return n, err
}

func (s *Store) Statistics(ctx context.Context, id int64) (Statistics, error) {
	stats := Statistics{DepartmentID: id}
	err := s.DB.QueryRow(ctx, `
    SELECT
      (SELECT COUNT(1) FROM employees WHERE department_id = d.id),
      (SELECT COUNT(1) FROM employees WHERE department_id = d.id AND status = 'active'),
      (SELECT COUNT(1) FROM positions WHERE department_id = d.id),
      (SELECT COALESCE(SUM(salary), 0)::float8 FROM employees WHERE department_id = d.id AND status = 'active'),
      d.budget,
      (SELECT AVG(r.overall_rating)::float8
         FROM performance_reviews r
         JOIN employees e ON e.id = r.employee_id
        WHERE e.department_id = d.id AND r.status = 'completed' AND r.overall_rating IS NOT NULL)
    FROM departments d
    WHERE d.id = $1
  `, id).Scan(&stats.EmployeeCount, &stats.ActiveEmployeeCount, &stats.PositionCount, &stats.TotalSalary, &stats.Budget, &stats.AverageRating)
	if errors.Is(err, pgx.ErrNoRows) {
		return Statistics{}, ErrNotFound
	}
	if err != nil {
		return Statistics{}, err
	}
	stats.BudgetUtilization = BudgetUtilization(stats.TotalSalary, stats.Budget)
	return stats, nil
}

func (s *Store) Create(ctx context.Context, data Data) (int64, error) {
	sql, args := querier.Insert("departments", data.Columns())
	var id int64
	if err := s.DB.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, shared.TranslateError(err, constraints)
	}
	return id, nil
}

// Update applies the provided fields and returns the reloaded department.
func (s *Store) Update(ctx context.Context, id int64, data Data) (Department, error) {
	sql, args := querier.Update("departments", id, data.Columns())
	tag, err := s.DB.Exec(ctx, sql, args...)
	if err != nil {
		return Department{}, shared.TranslateError(err, constraints)
	}
	if tag.RowsAffected() == 0 {
		return Department{}, ErrNotFound
	}
	return s.FindByID(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM departments WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
