package performancehandler

import (
	"context"

	"hradmin/internal/domain/performance"
	"hradmin/internal/transport/http/shared"
)

var messages = shared.Messages{
	"employee_id.required":    "Employee is required.",
	"employee_id.exists":      "Selected employee does not exist.",
	"reviewer_id.required":    "Reviewer is required.",
	"reviewer_id.exists":      "Selected reviewer does not exist.",
	"review_period.required":  "Review period is required.",
	"review_date.required":    "Review date is required.",
	"review_type.required":    "Review type is required.",
	"review_type.in":          "Selected review type is invalid.",
	"overall_rating.between":  "Overall rating must be between 1 and 5.",
	"status.in":               "Selected status is invalid.",
	"due_date.after_or_equal": "Due date must be on or after the review date.",
}

// parse validates a store request, or an update of id when id is positive.
func (h *Handler) parse(ctx context.Context, in shared.Input, id int64) (performance.Data, error) {
	v := shared.ValidatorFor(ctx, in, messages, id)
	data := performance.Data{
		EmployeeID:          v.ID("employee_id", true, h.employeeExists()),
		ReviewerID:          v.ID("reviewer_id", true, h.employeeExists()),
		ReviewPeriod:        v.String("review_period", 50, true),
		ReviewDate:          v.Date("review_date", true),
		ReviewType:          v.Enum("review_type", performance.Types, true),
		OverallRating:       v.Int("overall_rating", performance.MinRating, performance.MaxRating, false),
		GoalsAchievements:   v.StringList("goals_achievements", 1000),
		Strengths:           v.StringList("strengths", 1000),
		AreasForImprovement: v.StringList("areas_for_improvement", 1000),
		DevelopmentPlan:     v.StringList("development_plan", 1000),
		ReviewerComments:    v.String("reviewer_comments", 2000, false),
		EmployeeComments:    v.String("employee_comments", 2000, false),
		Status:              v.Enum("status", performance.Statuses, false),
		DueDate:             v.Date("due_date", false),
	}
	v.NotNull("status", "goals_achievements", "strengths", "areas_for_improvement", "development_plan")
	v.NotBefore("due_date", data.DueDate, data.ReviewDate, "review_date")
	return data, v.Err()
}
