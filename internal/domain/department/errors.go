package department

import (
	"fmt"

	"hradmin/internal/domain/shared"
)

var ErrNotFound = fmt.Errorf("department %w", shared.ErrNotFound)

var constraints = map[string]shared.Constraint{
	"departments_name_key":        {Field: "name", Message: "This department name already exists."},
	"departments_code_key":        {Field: "code", Message: "This department code already exists."},
	"departments_manager_id_fkey": {Field: "manager_id", Message: "Selected manager does not exist."},
	"departments_budget_check":    {Field: "budget", Message: "Budget must be a positive number."},
	"departments_status_check":    {Field: "status", Message: "Status must be either active or inactive."},
}
