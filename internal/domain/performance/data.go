package performance

import (
	"encoding/json"
	"time"

	"hradmin/internal/domain/shared"
	"hradmin/internal/platform/querier"
)

type Data struct {
	EmployeeID          shared.Field[int64]
	ReviewerID          shared.Field[int64]
	ReviewPeriod        shared.Field[string]
	ReviewDate          shared.Field[time.Time]
	ReviewType          shared.Field[string]
	OverallRating       shared.Field[int]
	GoalsAchievements   shared.Field[[]string]
	Strengths           shared.Field[[]string]
	AreasForImprovement shared.Field[[]string]
	DevelopmentPlan     shared.Field[[]string]
	ReviewerComments    shared.Field[string]
	EmployeeComments    shared.Field[string]
	Status              shared.Field[string]
	DueDate             shared.Field[time.Time]
	CompletedAt         shared.Field[time.Time]
}

func (d Data) Columns() []querier.Column {
	var cols []querier.Column
	cols = shared.Put(cols, "employee_id", d.EmployeeID)
	cols = shared.Put(cols, "reviewer_id", d.ReviewerID)
	cols = shared.Put(cols, "review_period", d.ReviewPeriod)
	cols = shared.Put(cols, "review_date", d.ReviewDate)
	cols = shared.Put(cols, "review_type", d.ReviewType)
	cols = shared.Put(cols, "overall_rating", d.OverallRating)
	cols = shared.PutWith(cols, "goals_achievements", d.GoalsAchievements, jsonList)
	cols = shared.PutWith(cols, "strengths", d.Strengths, jsonList)
	cols = shared.PutWith(cols, "areas_for_improvement", d.AreasForImprovement, jsonList)
	cols = shared.PutWith(cols, "development_plan", d.DevelopmentPlan, jsonList)
	cols = shared.Put(cols, "reviewer_comments", d.ReviewerComments)
	cols = shared.Put(cols, "employee_comments", d.EmployeeComments)
	cols = shared.Put(cols, "status", d.Status)
	cols = shared.Put(cols, "due_date", d.DueDate)
	cols = shared.Put(cols, "completed_at", d.CompletedAt)
	return cols
}

func jsonList(v []string) any {
	if v == nil {
		v = []string{}
	}
	b, _ := json.Marshal(v)
	return b
}
