package employee

import (
	"encoding/json"
	"time"

	"hradmin/internal/domain/shared"
	"hradmin/internal/platform/querier"
)

type Data struct {
	EmployeeCode          shared.Field[string]
	FirstName             shared.Field[string]
	LastName              shared.Field[string]
	Email                 shared.Field[string]
	Phone                 shared.Field[string]
	DateOfBirth           shared.Field[time.Time]
	Gender                shared.Field[string]
	Address               shared.Field[string]
	DepartmentID          shared.Field[int64]
	PositionID            shared.Field[int64]
	ManagerID             shared.Field[int64]
	HireDate              shared.Field[time.Time]
	TerminationDate       shared.Field[time.Time]
	EmploymentType        shared.Field[string]
	Status                shared.Field[string]
	Salary                shared.Field[float64]
	EmergencyContactName  shared.Field[string]
	EmergencyContactPhone shared.Field[string]
	Skills                shared.Field[[]string]
	Notes                 shared.Field[string]
}

func (d Data) Columns() []querier.Column {
	var cols []querier.Column
	cols = shared.Put(cols, "employee_code", d.EmployeeCode)
	cols = shared.Put(cols, "first_name", d.FirstName)
	cols = shared.Put(cols, "last_name", d.LastName)
	cols = shared.Put(cols, "email", d.Email)
	cols = shared.Put(cols, "phone", d.Phone)
	cols = shared.Put(cols, "date_of_birth", d.DateOfBirth)
	cols = shared.Put(cols, "gender", d.Gender)
	cols = shared.Put(cols, "address", d.Address)
	cols = shared.Put(cols, "department_id", d.DepartmentID)
	cols = shared.Put(cols, "position_id", d.PositionID)
	cols = shared.Put(cols, "manager_id", d.ManagerID)
	cols = shared.Put(cols, "hire_date", d.HireDate)
	cols = shared.Put(cols, "termination_date", d.TerminationDate)
	cols = shared.Put(cols, "employment_type", d.EmploymentType)
	cols = shared.Put(cols, "status", d.Status)
	cols = shared.Put(cols, "salary", d.Salary)
	cols = shared.Put(cols, "emergency_contact_name", d.EmergencyContactName)
	cols = shared.Put(cols, "emergency_contact_phone", d.EmergencyContactPhone)
	cols = shared.PutWith(cols, "skills", d.Skills, jsonList)
	cols = shared.Put(cols, "notes", d.Notes)
	return cols
}

func jsonList(v []string) any {
	if v == nil {
		v = []string{}
	}
	b, _ := json.Marshal(v)
	return b
}
