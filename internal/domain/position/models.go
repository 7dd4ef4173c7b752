package position

import (
	"strconv"
	"time"
)

type DepartmentRef struct {
	ID   int64
	Name string
	Code string
}

type Position struct {
	ID               int64
	Title            string
	Code             string
	Description      *string
	DepartmentID     int64
	Level            string
	MinSalary        *float64
	MaxSalary        *float64
	Requirements     *string
	Responsibilities *string
	Status           string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Department    *DepartmentRef
	EmployeeCount *int64
}

func (p Position) IsActive() bool {
	return p.Status == StatusActive
}

// SalaryRange renders "min - max" when both bounds are known.
func SalaryRange(min, max *float64) string {
	if min == nil || max == nil || *min == 0 || *max == 0 {
		return "Not specified"
	}
	return formatAmount(*min) + " - " + formatAmount(*max)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

type Filter struct {
	DepartmentID int64
	Level        string
	Status       string
	Search       string
}

type Statistics struct {
	PositionID          int64
	EmployeeCount       int64
	ActiveEmployeeCount int64
	AverageSalary       *float64
	LowestSalary        *float64
	HighestSalary       *float64
	MinSalary           *float64
	MaxSalary           *float64
}
