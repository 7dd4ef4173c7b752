package performance

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
    SELECT r.id, r.employee_id, r.reviewer_id, r.review_period, r.review_date, r.review_type, r.overall_rating,
      COALESCE(r.goals_achievements, '[]'::jsonb), COALESCE(r.strengths, '[]'::jsonb),
      COALESCE(r.areas_for_improvement, '[]'::jsonb), COALESCE(r.development_plan, '[]'::jsonb),
      r.reviewer_comments, r.employee_comments, r.status, r.due_date, r.completed_at, r.created_at, r.updated_at,
      e.id, e.employee_code, e.first_name, e.last_name,
      rv.id, rv.employee_code, rv.first_name, rv.last_name
    FROM performance_reviews r
    LEFT JOIN employees e ON e.id = r.employee_id
    LEFT JOIN employees rv ON rv.id = r.reviewer_id
  `

const openOnly = "r.status <> 'completed'"

type refColumns struct {
	id                    *int64
	code, first, lastName *string
}

func (c refColumns) ref() *EmployeeRef {
	if c.id == nil {
		return nil
	}
	return &EmployeeRef{ID: *c.id, EmployeeCode: deref(c.code), FirstName: deref(c.first), LastName: deref(c.lastName)}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func scanDetail(row pgx.Row) (Review, error) {
	var r Review
	var emp, reviewer refColumns
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.ReviewerID, &r.ReviewPeriod, &r.ReviewDate, &r.ReviewType, &r.OverallRating,
		&r.GoalsAchievements, &r.Strengths, &r.AreasForImprovement, &r.DevelopmentPlan,
		&r.ReviewerComments, &r.EmployeeComments, &r.Status, &r.DueDate, &r.CompletedAt, &r.CreatedAt, &r.UpdatedAt,
		&emp.id, &emp.code, &emp.first, &emp.lastName,
		&reviewer.id, &reviewer.code, &reviewer.first, &reviewer.lastName,
	)
	if err != nil {
		return Review{}, err
	}
	r.GoalsAchievements = nonNil(r.GoalsAchievements)
	r.Strengths = nonNil(r.Strengths)
	r.AreasForImprovement = nonNil(r.AreasForImprovement)
	r.DevelopmentPlan = nonNil(r.DevelopmentPlan)
	r.Employee = emp.ref()
	r.Reviewer = reviewer.ref()
	return r, nil
}

func (s *Store) list(ctx context.Context, tail string, args ...any) ([]Review, error) {
	rows, err := s.DB.Query(ctx, detailSelect+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Review{}
	for rows.Next() {
		r, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) findOne(ctx context.Context, tail string, args ...any) (Review, error) {
	r, err := scanDetail(s.DB.QueryRow(ctx, detailSelect+tail, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return Review{}, ErrNotFound
	}
	return r, err
}

func (s *Store) FindByID(ctx context.Context, id int64) (Review, error) {
	return s.findOne(ctx, " WHERE r.id = $1", id)
}

func (s *Store) List(ctx context.Context) ([]Review, error) {
	return s.list(ctx, " ORDER BY r.review_date DESC, r.id DESC")
}

func (s *Store) Paginate(ctx context.Context, page shared.PageRequest, filter Filter) (shared.Page[Review], error) {
	page = page.Normalize()
	var where querier.Where
	if filter.EmployeeID > 0 {
		where.Add("r.employee_id = $%d", filter.EmployeeID)
	}
	if filter.ReviewerID > 0 {
		where.Add("r.reviewer_id = $%d", filter.ReviewerID)
	}
	if filter.Status != "" {
		where.Add("r.status = $%d", filter.Status)
	}
	if filter.ReviewType != "" {
		where.Add("r.review_type = $%d", filter.ReviewType)
	}
	if filter.ReviewPeriod != "" {
		where.Add("r.review_period = $%d", filter.ReviewPeriod)
	}
	if filter.Search != "" {
		where.Add("(e.first_name ILIKE $%d OR e.last_name ILIKE $%d OR r.review_period ILIKE $%d)", "%"+filter.Search+"%")
	}

	var total int64
	countSQL := "SELECT COUNT(1) FROM performance_reviews r LEFT JOIN employees e ON e.id = r.employee_id" + where.SQL()
	if err := s.DB.QueryRow(ctx, countSQL, where.Args()...).Scan(&total); err != nil {
		return shared.Page[Review]{}, err
	}

	tail := where.SQL() + fmt.Sprintf(" ORDER BY r.created_at DESC, r.id DESC LIMIT $%d OFFSET $%d", where.Next(1), where.Next(2))
	items, err := s.list(ctx, tail, append(where.Args(), page.PerPage, page.Offset())...)
	if err != nil {
		return shared.Page[Review]{}, err
	}
	return shared.NewPage(items, page, total), nil
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID int64) ([]Review, error) {
	return s.list(ctx, " WHERE r.employee_id = $1 ORDER BY r.review_date DESC", employeeID)
}

func (s *Store) ListByReviewer(ctx context.Context, reviewerID int64) ([]Review, error) {
	return s.list(ctx, " WHERE r.reviewer_id = $1 ORDER BY r.review_date DESC", reviewerID)
}

func (s *Store) ListByStatus(ctx context.Context, status string) ([]Review, error) {
	return s.list(ctx, " WHERE r.status = $1 ORDER BY r.review_date DESC", status)
}

func (s *Store) ListByType(ctx context.Context, reviewType string) ([]Review, error) {
	return s.list(ctx, " WHERE r.review_type = $1 ORDER BY r.review_date DESC", reviewType)
}

func (s *Store) ListPending(ctx context.Context) ([]Review, error) {
	return s.list(ctx, " WHERE r.status = ANY($1) ORDER BY r.due_date NULLS LAST, r.review_date", pendingStatuses)
}

func (s *Store) ListOverdue(ctx context.Context, today time.Time) ([]Review, error) {
	return s.list(ctx, " WHERE "+openOnly+" AND r.due_date < $1 ORDER BY r.due_date", today)
}

func (s *Store) ListDue(ctx context.Context, today time.Time, days int) ([]Review, error) {
	return s.list(ctx, " WHERE "+openOnly+" AND r.due_date BETWEEN $1::date AND $1::date + $2::int ORDER BY r.due_date", today, days)
}

func (s *Store) ListUpcoming(ctx context.Context, today time.Time, days int) ([]Review, error) {
	return s.list(ctx, " WHERE "+openOnly+" AND r.review_date BETWEEN $1::date AND $1::date + $2::int ORDER BY r.review_date", today, days)
}

func (s *Store) ListByPeriod(ctx context.Context, period string) ([]Review, error) {
	return s.list(ctx, " WHERE r.review_period = $1 ORDER BY r.review_date DESC", period)
}

func (s *Store) ListByDateRange(ctx context.Context, start, end time.Time) ([]Review, error) {
	return s.list(ctx, " WHERE r.review_date BETWEEN $1 AND $2 ORDER BY r.review_date", start, end)
}

func (s *Store) ListByRatingRange(ctx context.Context, min, max int) ([]Review, error) {
	return s.list(ctx, " WHERE r.overall_rating BETWEEN $1 AND $2 ORDER BY r.overall_rating DESC, r.review_date DESC", min, max)
}

func (s *Store) Latest(ctx context.Context, employeeID int64) (Review, error) {
	return s.findOne(ctx, " WHERE r.employee_id = $1 ORDER BY r.review_date DESC, r.id DESC LIMIT 1", employeeID)
}

// History lists completed reviews of the employee, newest first.
func (s *Store) History(ctx context.Context, employeeID int64) ([]Review, error) {
	return s.list(ctx, " WHERE r.employee_id = $1 AND r.status = 'completed' ORDER BY r.review_date DESC", employeeID)
}

func (s *Store) AverageRatingByEmployee(ctx context.Context, employeeID int64) (*float64, error) {
	var avg *float64
	err := s.DB.QueryRow(ctx, `
    SELECT ROUND(AVG(overall_rating)::numeric, 2)::float8
    FROM performance_reviews
    WHERE employee_id = $1 AND status = 'completed' AND overall_rating IS NOT NULL
  `, employeeID).Scan(&avg)
	return avg, err
}

func (s *Store) AverageRatingByDepartment(ctx context.Context, departmentID int64) (*float64, error) {
	var avg *float64
	err := s.DB.QueryRow(ctx, `
    SELECT ROUND(AVG(r.overall_rating)::numeric, 2)::float8
    FROM performance_reviews r
    JOIN employees e ON e.id = r.employee_id
    WHERE e.department_id = $1 AND r.status = 'completed' AND r.overall_rating IS NOT NULL
  `, departmentID).Scan(&avg)
	return avg, err
}

func (s *Store) Statistics(ctx context.Context, year int, today time.Time) (Statistics, error) {
	first, last := shared.YearBounds(year)
	stats := Statistics{Year: year, RatingCounts: map[int]int64{}, ByType: map[string]int64{}}
	err := s.DB.QueryRow(ctx, `
    SELECT
      COUNT(1),
      COUNT(1) FILTER (WHERE status = 'completed'),
      COUNT(1) FILTER (WHERE status <> 'completed'),
      COUNT(1) FILTER (WHERE status <> 'completed' AND due_date < $3),
      ROUND(AVG(overall_rating) FILTER (WHERE status = 'completed')::numeric, 2)::float8
    FROM performance_reviews
    WHERE review_date BETWEEN $1 AND $2
  `, first, last, today).Scan(&stats.Total, &stats.Completed, &stats.Pending, &stats.Overdue, &stats.AverageRating)
	if err != nil {
		return Statistics{}, err
	}

	rows, err := s.DB.Query(ctx, `
    SELECT review_type, overall_rating, COUNT(1)
    FROM performance_reviews
    WHERE review_date BETWEEN $1 AND $2
    GROUP BY review_type, overall_rating
  `, first, last)
	if err != nil {
		return Statistics{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var reviewType string
		var rating *int
		var n int64
		if err := rows.Scan(&reviewType, &rating, &n); err != nil {
			return Statistics{}, err
		}
		stats.ByType[reviewType] += n
		if rating != nil {
			stats.RatingCounts[*rating] += n
		}
	}
	return stats, rows.Err()
}

func (s *Store) Complete(ctx context.Context, id int64, at time.Time) (Review, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE performance_reviews
    SET status = 'completed', completed_at = $2, updated_at = now()
    WHERE id = $1
  `, id, at)
	if err != nil {
		return Review{}, err
	}
	if tag.RowsAffected() == 0 {
		return Review{}, ErrNotFound
	}
	return s.FindByID(ctx, id)
}

func (s *Store) Create(ctx context.Context, data Data) (int64, error) {
	sql, args := querier.Insert("performance_reviews", data.Columns())
	var id int64
	if err := s.DB.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, shared.TranslateError(err, constraints)
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, id int64, data Data) (Review, error) {
	sql, args := querier.Update("performance_reviews", id, data.Columns())
	tag, err := s.DB.Exec(ctx, sql, args...)
	if err != nil {
		return Review{}, shared.TranslateError(err, constraints)
	}
	if tag.RowsAffected() == 0 {
		return Review{}, ErrNotFound
	}
	return s.FindByID(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM performance_reviews WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
