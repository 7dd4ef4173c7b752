package departmenthandler

import (
	"context"

	"hradmin/internal/domain/department"
	"hradmin/internal/transport/http/shared"
)

var messages = shared.Messages{
	"name.required":     "Department name is required.",
	"name.unique":       "This department name already exists.",
	"code.required":     "Department code is required.",
	"code.unique":       "This department code already exists.",
	"manager_id.exists": "Selected manager does not exist.",
	"budget.min":        "Budget must be a positive number.",
	"status.required":   "Department status is required.",
	"status.in":         "Status must be either active or inactive.",
}

// parse validates a store request, or an update of id when id is positive.
func (h *Handler) parse(ctx context.Context, in shared.Input, id int64) (department.Data, error) {
	v := shared.ValidatorFor(ctx, in, messages, id)
	data := department.Data{
		Name:        v.String("name", 100, true),
		Code:        v.String("code", 10, true),
		Description: v.String("description", 500, false),
		ManagerID:   v.ID("manager_id", false, h.Employees),
		Location:    v.String("location", 255, false),
		Budget:      v.Number("budget", 0, false),
		Status:      v.Enum("status", department.Statuses, false),
	}
	v.NotNull("status")
	v.Unique("name", data.Name, id, h.Service.NameTaken)
	v.Unique("code", data.Code, id, h.Service.CodeTaken)
	return data, v.Err()
}
