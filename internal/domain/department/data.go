package department

import (
	"hradmin/internal/domain/shared"
	"hradmin/internal/platform/querier"
)

// Data is the writable surface of a department.
type Data struct {
	Name        shared.Field[string]
	Code        shared.Field[string]
	Description shared.Field[string]
	ManagerID   shared.Field[int64]
	Location    shared.Field[string]
	Budget      shared.Field[float64]
	Status      shared.Field[string]
}

func (d Data) Columns() []querier.Column {
	var cols []querier.Column
	cols = shared.Put(cols, "name", d.Name)
	cols = shared.Put(cols, "code", d.Code)
	cols = shared.Put(cols, "description", d.Description)
	cols = shared.Put(cols, "manager_id", d.ManagerID)
	cols = shared.Put(cols, "location", d.Location)
	cols = shared.Put(cols, "budget", d.Budget)
	cols = shared.Put(cols, "status", d.Status)
	return cols
}
