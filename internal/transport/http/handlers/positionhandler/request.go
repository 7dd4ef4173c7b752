package positionhandler

import (
	"context"

	"hradmin/internal/domain/position"
	"hradmin/internal/transport/http/shared"
)

var messages = shared.Messages{
	"title.required":         "Position title is required.",
	"code.required":          "Position code is required.",
	"code.unique":            "This position code already exists.",
	"department_id.required": "Department is required.",
	"department_id.exists":   "Selected department does not exist.",
	"level.required":         "Position level is required.",
	"level.in":               "Selected level is invalid.",
	"min_salary.min":         "Minimum salary must be a positive number.",
	"max_salary.min":         "Maximum salary must be a positive number.",
	"max_salary.gte":         "Maximum salary must be greater than or equal to minimum salary.",
	"status.in":              "Status must be either active or inactive.",
}

// parse validates a store request, or an update of id when id is positive.
func (h *Handler) parse(ctx context.Context, in shared.Input, id int64) (position.Data, error) {
	v := shared.ValidatorFor(ctx, in, messages, id)
	var departmentExists shared.ExistsFunc
	if h.Departments != nil {
		departmentExists = h.Departments.Exists
	}
	data := position.Data{
		Title:            v.String("title", 100, true),
		Code:             v.String("code", 10, true),
		Description:      v.String("description", 1000, false),
		DepartmentID:     v.ID("department_id", true, departmentExists),
		Level:            v.Enum("level", position.Levels, true),
		MinSalary:        v.Number("min_salary", 0, false),
		MaxSalary:        v.Number("max_salary", 0, false),
		Requirements:     v.String("requirements", 0, false),
		Responsibilities: v.String("responsibilities", 0, false),
		Status:           v.Enum("status", position.Statuses, false),
	}
	v.NotNull("status")
	v.AtLeast("max_salary", data.MaxSalary, data.MinSalary, "min_salary")
	v.Unique("code", data.Code, id, h.Service.CodeTaken)
	return data, v.Err()
}
