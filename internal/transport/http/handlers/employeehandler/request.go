package employeehandler

import (
	"context"

	"hradmin/internal/domain/employee"
	"hradmin/internal/transport/http/shared"
)

var messages = shared.Messages{
	"employee_code.required":          "Employee ID is required.",
	"employee_code.unique":            "This employee ID already exists.",
	"first_name.required":             "First name is required.",
	"last_name.required":              "Last name is required.",
	"email.required":                  "Email address is required.",
	"email.email":                     "Please provide a valid email address.",
	"email.unique":                    "This email address is already registered.",
	"department_id.exists":            "Selected department does not exist.",
	"position_id.exists":              "Selected position does not exist.",
	"manager_id.exists":               "Selected manager does not exist.",
	"hire_date.required":              "Hire date is required.",
	"hire_date.date":                  "Hire date must be a valid date.",
	"termination_date.after_or_equal": "Termination date must be on or after the hire date.",
	"gender.in":                       "Selected gender is invalid.",
	"employment_type.in":              "Selected employment type is invalid.",
	"status.in":                       "Selected status is invalid.",
	"salary.min":                      "Salary must be a positive number.",
}

// parse validates a store request, or an update of id when id is positive.
func (h *Handler) parse(ctx context.Context, in shared.Input, id int64) (employee.Data, error) {
	v := shared.ValidatorFor(ctx, in, messages, id)
	var departmentExists, positionExists shared.ExistsFunc
	if h.Departments != nil {
		departmentExists = h.Departments.Exists
	}
	if h.Positions != nil {
		positionExists = h.Positions.Exists
	}
	data := employee.Data{
		EmployeeCode:          v.String("employee_code", 20, true),
		FirstName:             v.String("first_name", 100, true),
		LastName:              v.String("last_name", 100, true),
		Email:                 v.Email("email", 255, true),
		Phone:                 v.String("phone", 20, false),
		DateOfBirth:           v.Date("date_of_birth", false),
		Gender:                v.Enum("gender", employee.Genders, false),
		Address:               v.String("address", 500, false),
		DepartmentID:          v.ID("department_id", false, departmentExists),
		PositionID:            v.ID("position_id", false, positionExists),
		ManagerID:             v.ID("manager_id", false, h.Service.Exists),
		HireDate:              v.Date("hire_date", true),
		TerminationDate:       v.Date("termination_date", false),
		EmploymentType:        v.Enum("employment_type", employee.EmploymentTypes, false),
		Status:                v.Enum("status", employee.Statuses, false),
		Salary:                v.Number("salary", 0, false),
		EmergencyContactName:  v.String("emergency_contact_name", 100, false),
		EmergencyContactPhone: v.String("emergency_contact_phone", 20, false),
		Skills:                v.StringList("skills", 100),
		Notes:                 v.String("notes", 1000, false),
	}
	v.NotNull("employment_type", "status", "skills")
	v.NotBefore("termination_date", data.TerminationDate, data.HireDate, "hire_date")
	v.Unique("employee_code", data.EmployeeCode, id, h.Service.CodeTaken)
	v.Unique("email", data.Email, id, h.Service.EmailTaken)
	return data, v.Err()
}
