package departmenthandler

import (
	"hradmin/internal/domain/department"
	"hradmin/internal/transport/http/shared"
)

type managerResource struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type Resource struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	Code          string           `json:"code"`
	Description   *string          `json:"description"`
	ManagerID     *int64           `json:"manager_id"`
	Budget        *float64         `json:"budget"`
	Location      *string          `json:"location"`
	Status        string           `json:"status"`
	EmployeeCount *int64           `json:"employee_count,omitempty"`
	CreatedAt     string           `json:"created_at"`
	UpdatedAt     string           `json:"updated_at"`
	Manager       *managerResource `json:"manager,omitempty"`
}

func toResource(d department.Department) Resource {
	res := Resource{
		ID:            d.ID,
		Name:          d.Name,
		Code:          d.Code,
		Description:   d.Description,
		ManagerID:     d.ManagerID,
		Budget:        d.Budget,
		Location:      d.Location,
		Status:        d.Status,
		EmployeeCount: d.EmployeeCount,
		CreatedAt:     shared.FormatTimestamp(d.CreatedAt),
		UpdatedAt:     shared.FormatTimestamp(d.UpdatedAt),
	}
	if d.Manager != nil {
		res.Manager = &managerResource{ID: d.Manager.ID, FirstName: d.Manager.FirstName, LastName: d.Manager.LastName, Email: d.Manager.Email}
	}
	return res
}

type statisticsResource struct {
	DepartmentID        int64    `json:"department_id"`
	EmployeeCount       int64    `json:"employee_count"`
	ActiveEmployeeCount int64    `json:"active_employee_count"`
	PositionCount       int64    `json:"position_count"`
	TotalSalary         float64  `json:"total_salary"`
	Budget              *float64 `json:"budget"`
	BudgetUtilization   *float64 `json:"budget_utilization"`
	AverageRating       *float64 `json:"average_rating"`
}

func toStatistics(s department.Statistics) statisticsResource {
	return statisticsResource{
		DepartmentID:        s.DepartmentID,
		EmployeeCount:       s.EmployeeCount,
		ActiveEmployeeCount: s.ActiveEmployeeCount,
		PositionCount:       s.PositionCount,
		TotalSalary:         s.TotalSalary,
		Budget:              s.Budget,
		BudgetUtilization:   s.BudgetUtilization,
		AverageRating:       s.AverageRating,
	}
}
