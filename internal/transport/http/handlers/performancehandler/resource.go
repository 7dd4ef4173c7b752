package performancehandler

import (
	"strconv"
	"time"

	"hradmin/internal/domain/performance"
	"hradmin/internal/transport/http/shared"
)

type employeeRef struct {
	ID           int64  `json:"id"`
	EmployeeCode string `json:"employee_code"`
	FullName     string `json:"full_name"`
}

func toEmployeeRef(e *performance.EmployeeRef) *employeeRef {
	if e == nil {
		return nil
	}
	name := e.FirstName
	if e.LastName != "" {
		name += " " + e.LastName
	}
	return &employeeRef{ID: e.ID, EmployeeCode: e.EmployeeCode, FullName: name}
}

func list(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

type Resource struct {
	ID                  int64        `json:"id"`
	EmployeeID          int64        `json:"employee_id"`
	ReviewerID          int64        `json:"reviewer_id"`
	ReviewPeriod        string       `json:"review_period"`
	ReviewDate          string       `json:"review_date"`
	ReviewType          string       `json:"review_type"`
	OverallRating       *int         `json:"overall_rating"`
	RatingDescription   string       `json:"rating_description"`
	GoalsAchievements   []string     `json:"goals_achievements"`
	Strengths           []string     `json:"strengths"`
	AreasForImprovement []string     `json:"areas_for_improvement"`
	DevelopmentPlan     []string     `json:"development_plan"`
	ReviewerComments    *string      `json:"reviewer_comments"`
	EmployeeComments    *string      `json:"employee_comments"`
	Status              string       `json:"status"`
	DueDate             *string      `json:"due_date"`
	CompletedAt         *string      `json:"completed_at"`
	IsCompleted         bool         `json:"is_completed"`
	IsOverdue           bool         `json:"is_overdue"`
	IsDueSoon           bool         `json:"is_due_soon"`
	CreatedAt           string       `json:"created_at"`
	UpdatedAt           string       `json:"updated_at"`
	Employee            *employeeRef `json:"employee,omitempty"`
	Reviewer            *employeeRef `json:"reviewer,omitempty"`
}

func toResource(r performance.Review, today time.Time) Resource {
	return Resource{
		ID:                  r.ID,
		EmployeeID:          r.EmployeeID,
		ReviewerID:          r.ReviewerID,
		ReviewPeriod:        r.ReviewPeriod,
		ReviewDate:          shared.FormatDate(r.ReviewDate),
		ReviewType:          r.ReviewType,
		OverallRating:       r.OverallRating,
		RatingDescription:   performance.RatingDescription(r.OverallRating),
		GoalsAchievements:   list(r.GoalsAchievements),
		Strengths:           list(r.Strengths),
		AreasForImprovement: list(r.AreasForImprovement),
		DevelopmentPlan:     list(r.DevelopmentPlan),
		ReviewerComments:    r.ReviewerComments,
		EmployeeComments:    r.EmployeeComments,
		Status:              r.Status,
		DueDate:             shared.FormatDatePtr(r.DueDate),
		CompletedAt:         shared.FormatTimestampPtr(r.CompletedAt),
		IsCompleted:         r.IsCompleted(),
		IsOverdue:           r.IsOverdue(today),
		IsDueSoon:           r.IsDueSoon(today, performance.DueSoonDays),
		CreatedAt:           shared.FormatTimestamp(r.CreatedAt),
		UpdatedAt:           shared.FormatTimestamp(r.UpdatedAt),
		Employee:            toEmployeeRef(r.Employee),
		Reviewer:            toEmployeeRef(r.Reviewer),
	}
}

type ratingOption struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

type averageResource struct {
	EmployeeID    *int64   `json:"employee_id,omitempty"`
	DepartmentID  *int64   `json:"department_id,omitempty"`
	AverageRating *float64 `json:"average_rating"`
}

type statisticsResource struct {
	Year          int              `json:"year"`
	Total         int64            `json:"total"`
	Completed     int64            `json:"completed"`
	Pending       int64            `json:"pending"`
	Overdue       int64            `json:"overdue"`
	AverageRating *float64         `json:"average_rating"`
	RatingCounts  map[string]int64 `json:"rating_counts"`
	ByType        map[string]int64 `json:"by_type"`
}

func toStatistics(s performance.Statistics) statisticsResource {
	ratings := make(map[string]int64, performance.MaxRating)
	for rating := performance.MinRating; rating <= performance.MaxRating; rating++ {
		ratings[strconv.Itoa(rating)] = s.RatingCounts[rating]
	}
	byType := make(map[string]int64, len(performance.Types))
	for _, t := range performance.Types {
		byType[t] = s.ByType[t]
	}
	return statisticsResource{
		Year:          s.Year,
		Total:         s.Total,
		Completed:     s.Completed,
		Pending:       s.Pending,
		Overdue:       s.Overdue,
		AverageRating: s.AverageRating,
		RatingCounts:  ratings,
		ByType:        byType,
	}
}
