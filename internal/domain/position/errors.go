package position

import (
	"fmt"

	"hradmin/internal/domain/shared"
)

var ErrNotFound = fmt.Errorf("position %w", shared.ErrNotFound)

var constraints = map[string]shared.Constraint{
	"positions_code_key":           {Field: "code", Message: "This position code already exists."},
	"positions_department_id_fkey": {Field: "department_id", Message: "Selected department does not exist."},
	"positions_level_check":        {Field: "level", Message: "Selected level is invalid."},
	"positions_salary_check":       {Field: "min_salary", Message: "Minimum salary must be a positive number."},
	"positions_salary_range_check": {Field: "max_salary", Message: "Maximum salary must be greater than or equal to minimum salary."},
	"positions_status_check":       {Field: "status", Message: "Status must be either active or inactive."},
}
