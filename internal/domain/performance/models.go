package performance

import (
	"time"

	"hradmin/internal/domain/shared"
)

type EmployeeRef struct {
	ID           int64
	EmployeeCode string
	FirstName    string
	LastName     string
}

type Review struct {
	ID                  int64
	EmployeeID          int64
	ReviewerID          int64
	ReviewPeriod        string
	ReviewDate          time.Time
	ReviewType          string
	OverallRating       *int
	GoalsAchievements   []string
	Strengths           []string
	AreasForImprovement []string
	DevelopmentPlan     []string
	ReviewerComments    *string
	EmployeeComments    *string
	Status              string
	DueDate             *time.Time
	CompletedAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Employee *EmployeeRef
	Reviewer *EmployeeRef
}

func (r Review) IsCompleted() bool {
	return r.Status == StatusCompleted
}

// IsOverdue reports an open review whose due date has passed.
func (r Review) IsOverdue(today time.Time) bool {
	return r.DueDate != nil && !r.IsCompleted() && r.DueDate.Before(shared.DateOnly(today))
}

// IsDueSoon reports an open review due within the next days, today included.
func (r Review) IsDueSoon(today time.Time, days int) bool {
	if r.DueDate == nil || r.IsCompleted() {
		return false
	}
	today = shared.DateOnly(today)
	return !r.DueDate.Before(today) && !r.DueDate.After(today.AddDate(0, 0, days))
}

func RatingDescription(rating *int) string {
	if rating == nil {
		return "Not Rated"
	}
	switch *rating {
	case 1:
		return "Needs Improvement"
	case 2:
		return "Below Expectations"
	case 3:
		return "Meets Expectations"
	case 4:
		return "Exceeds Expectations"
	case 5:
		return "Outstanding"
	}
	return "Not Rated"
}

type Filter struct {
	EmployeeID   int64
	ReviewerID   int64
	Status       string
	ReviewType   string
	ReviewPeriod string
	Search       string
}

type Statistics struct {
	Year          int
	Total         int64
	Completed     int64
	Pending       int64
	Overdue       int64
	AverageRating *float64
	// RatingCounts is keyed by rating 1 to 5.
	RatingCounts map[int]int64
	ByType       map[string]int64
}
