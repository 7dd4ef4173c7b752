package employee

import (
	"fmt"

	"hradmin/internal/domain/shared"
)

var ErrNotFound = fmt.Errorf("employee %w", shared.ErrNotFound)

const (
	msgSelfManager   = "An employee cannot be their own manager."
	msgManagerCycle  = "The selected manager reports to this employee."
	msgManagerAbsent = "Selected manager does not exist."
)

var constraints = map[string]shared.Constraint{
	"employees_employee_code_key":     {Field: "employee_code", Message: "This employee ID already exists."},
	"employees_email_key":             {Field: "email", Message: "This email address is already registered."},
	"employees_department_id_fkey":    {Field: "department_id", Message: "Selected department does not exist."},
	"employees_position_id_fkey":      {Field: "position_id", Message: "Selected position does not exist."},
	"employees_manager_id_fkey":       {Field: "manager_id", Message: msgManagerAbsent},
	"employees_manager_self_check":    {Field: "manager_id", Message: msgSelfManager},
	"employees_gender_check":          {Field: "gender", Message: "Selected gender is invalid."},
	"employees_employment_type_check": {Field: "employment_type", Message: "Selected employment type is invalid."},
	"employees_status_check":          {Field: "status", Message: "Selected status is invalid."},
	"employees_salary_check":          {Field: "salary", Message: "Salary must be a positive number."},
}
