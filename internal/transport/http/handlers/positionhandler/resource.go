package positionhandler

import (
	"hradmin/internal/domain/position"
	"hradmin/internal/transport/http/shared"
)

type departmentOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type Resource struct {
	ID               int64             `json:"id"`
	Title            string            `json:"title"`
	Code             string            `json:"code"`
	Description      *string           `json:"description"`
	DepartmentID     int64             `json:"department_id"`
	Level            string            `json:"level"`
	MinSalary        *float64          `json:"min_salary"`
	MaxSalary        *float64          `json:"max_salary"`
	SalaryRange      string            `json:"salary_range"`
	Requirements     *string           `json:"requirements"`
	Responsibilities *string           `json:"responsibilities"`
	Status           string            `json:"status"`
	EmployeeCount    *int64            `json:"employee_count,omitempty"`
	CreatedAt        string            `json:"created_at"`
	UpdatedAt        string            `json:"updated_at"`
	Department       *departmentOption `json:"department,omitempty"`
}

func toResource(p position.Position) Resource {
	res := Resource{
		ID:               p.ID,
		Title:            p.Title,
		Code:             p.Code,
		Description:      p.Description,
		DepartmentID:     p.DepartmentID,
		Level:            p.Level,
		MinSalary:        p.MinSalary,
		MaxSalary:        p.MaxSalary,
		SalaryRange:      position.SalaryRange(p.MinSalary, p.MaxSalary),
		Requirements:     p.Requirements,
		Responsibilities: p.Responsibilities,
		Status:           p.Status,
		EmployeeCount:    p.EmployeeCount,
		CreatedAt:        shared.FormatTimestamp(p.CreatedAt),
		UpdatedAt:        shared.FormatTimestamp(p.UpdatedAt),
	}
	if p.Department != nil {
		res.Department = &departmentOption{ID: p.Department.ID, Name: p.Department.Name, Code: p.Department.Code}
	}
	return res
}

type statisticsResource struct {
	PositionID          int64    `json:"position_id"`
	EmployeeCount       int64    `json:"employee_count"`
	ActiveEmployeeCount int64    `json:"active_employee_count"`
	AverageSalary       *float64 `json:"average_salary"`
	LowestSalary        *float64 `json:"lowest_salary"`
	HighestSalary       *float64 `json:"highest_salary"`
	SalaryRange         string   `json:"salary_range"`
}

func toStatistics(s position.Statistics) statisticsResource {
	return statisticsResource{
		PositionID:          s.PositionID,
		EmployeeCount:       s.EmployeeCount,
		ActiveEmployeeCount: s.ActiveEmployeeCount,
		AverageSalary:       s.AverageSalary,
		LowestSalary:        s.LowestSalary,
		HighestSalary:       s.HighestSalary,
		SalaryRange:         position.SalaryRange(s.MinSalary, s.MaxSalary),
	}
}
