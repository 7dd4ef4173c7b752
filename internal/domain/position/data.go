package position

import (
	"hradmin/internal/domain/shared"
	"hradmin/internal/platform/querier"
)

type Data struct {
	Title            shared.Field[string]
	Code             shared.Field[string]
	Description      shared.Field[string]
	DepartmentID     shared.Field[int64]
	Level            shared.Field[string]
	MinSalary        shared.Field[float64]
	MaxSalary        shared.Field[float64]
	Requirements     shared.Field[string]
	Responsibilities shared.Field[string]
	Status           shared.Field[string]
}

func (d Data) Columns() []querier.Column {
	var cols []querier.Column
	cols = shared.Put(cols, "title", d.Title)
	cols = shared.Put(cols, "code", d.Code)
	cols = shared.Put(cols, "description", d.Description)
	cols = shared.Put(cols, "department_id", d.DepartmentID)
	cols = shared.Put(cols, "level", d.Level)
	cols = shared.Put(cols, "min_salary", d.MinSalary)
	cols = shared.Put(cols, "max_salary", d.MaxSalary)
	cols = shared.Put(cols, "requirements", d.Requirements)
	cols = shared.Put(cols, "responsibilities", d.Responsibilities)
	cols = shared.Put(cols, "status", d.Status)
	return cols
}
