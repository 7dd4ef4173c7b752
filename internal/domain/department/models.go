package department

import "time"

// ManagerRef is the summary of the employee managing a department.
type ManagerRef struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
}

type Department struct {
	ID          int64
	Name        string
	Code        string
	Description *string
	ManagerID   *int64
	Location    *string
	Budget      *float64
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Loaded relations; nil when the query did not fetch them.
	Manager       *ManagerRef
	EmployeeCount *int64
}

func (d Department) IsActive() bool {
	return d.Status == StatusActive
}

type Filter struct {
	Status string
	Search string
}

type Statistics struct {
	DepartmentID        int64
	EmployeeCount       int64
	ActiveEmployeeCount int64
	PositionCount       int64
	TotalSalary         float64
	Budget              *float64
	BudgetUtilization   *float64
	AverageRating       *float64
}

// BudgetUtilization returns salary spend as a percentage of budget, rounded to
// two decimals. Nil when there is no positive budget.
func BudgetUtilization(totalSalary float64, budget *float64) *float64 {
	if budget == nil || *budget <= 0 {
		return nil
	}
	pct := float64(int64(totalSalary/(*budget)*10000+0.5)) / 100
	return &pct
}
