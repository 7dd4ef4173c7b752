package employeehandler

import (
	"hradmin/internal/domain/employee"
	"hradmin/internal/transport/http/shared"
)

type departmentRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type positionRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Level string `json:"level"`
}

type managerRef struct {
	ID           int64  `json:"id"`
	EmployeeCode string `json:"employee_code"`
	FullName     string `json:"full_name"`
}

type Resource struct {
	ID                    int64          `json:"id"`
	EmployeeCode          string         `json:"employee_code"`
	FirstName             string         `json:"first_name"`
	LastName              string         `json:"last_name"`
	FullName              string         `json:"full_name"`
	Email                 string         `json:"email"`
	Phone                 *string        `json:"phone"`
	DateOfBirth           *string        `json:"date_of_birth"`
	Gender                *string        `json:"gender"`
	Address               *string        `json:"address"`
	DepartmentID          *int64         `json:"department_id"`
	PositionID            *int64         `json:"position_id"`
	ManagerID             *int64         `json:"manager_id"`
	HireDate              string         `json:"hire_date"`
	TerminationDate       *string        `json:"termination_date"`
	EmploymentType        string         `json:"employment_type"`
	Status                string         `json:"status"`
	Salary                *float64       `json:"salary,omitempty"`
	EmergencyContactName  *string        `json:"emergency_contact_name"`
	EmergencyContactPhone *string        `json:"emergency_contact_phone"`
	Skills                []string       `json:"skills"`
	Notes                 *string        `json:"notes"`
	CreatedAt             string         `json:"created_at"`
	UpdatedAt             string         `json:"updated_at"`
	Department            *departmentRef `json:"department,omitempty"`
	Position              *positionRef   `json:"position,omitempty"`
	Manager               *managerRef    `json:"manager,omitempty"`
}

func toResource(e employee.Employee, withSalary bool) Resource {
	skills := e.Skills
	if skills == nil {
		skills = []string{}
	}
	res := Resource{
		ID:                    e.ID,
		EmployeeCode:          e.EmployeeCode,
		FirstName:             e.FirstName,
		LastName:              e.LastName,
		FullName:              e.FullName(),
		Email:                 e.Email,
		Phone:                 e.Phone,
		DateOfBirth:           shared.FormatDatePtr(e.DateOfBirth),
		Gender:                e.Gender,
		Address:               e.Address,
		DepartmentID:          e.DepartmentID,
		PositionID:            e.PositionID,
		ManagerID:             e.ManagerID,
		HireDate:              shared.FormatDate(e.HireDate),
		TerminationDate:       shared.FormatDatePtr(e.TerminationDate),
		EmploymentType:        e.EmploymentType,
		Status:                e.Status,
		EmergencyContactName:  e.EmergencyContactName,
		EmergencyContactPhone: e.EmergencyContactPhone,
		Skills:                skills,
		Notes:                 e.Notes,
		CreatedAt:             shared.FormatTimestamp(e.CreatedAt),
		UpdatedAt:             shared.FormatTimestamp(e.UpdatedAt),
	}
	if withSalary {
		res.Salary = e.Salary
	}
	if e.Department != nil {
		res.Department = &departmentRef{ID: e.Department.ID, Name: e.Department.Name, Code: e.Department.Code}
	}
	if e.Position != nil {
		res.Position = &positionRef{ID: e.Position.ID, Title: e.Position.Title, Level: e.Position.Level}
	}
	if e.Manager != nil {
		res.Manager = &managerRef{ID: e.Manager.ID, EmployeeCode: e.Manager.EmployeeCode, FullName: e.Manager.FullName()}
	}
	return res
}

type departmentCount struct {
	DepartmentID   *int64 `json:"department_id"`
	DepartmentName string `json:"department_name"`
	Count          int64  `json:"count"`
}

func toDepartmentCount(c employee.DepartmentCount) departmentCount {
	return departmentCount{DepartmentID: c.DepartmentID, DepartmentName: c.DepartmentName, Count: c.Count}
}

type statisticsResource struct {
	Total        int64             `json:"total"`
	ByStatus     map[string]int64  `json:"by_status"`
	ByDepartment []departmentCount `json:"by_department"`
}
