package attendance

import (
	"encoding/json"
	"time"

	"hradmin/internal/domain/shared"
	"hradmin/internal/platform/querier"
)

// Data is the writable attendance payload. TotalMinutes and OvertimeMinutes
// are filled by the service, never by callers.
type Data struct {
	EmployeeID       shared.Field[int64]
	Date             shared.Field[time.Time]
	ClockIn          shared.Field[TimeOfDay]
	ClockOut         shared.Field[TimeOfDay]
	BreakStart       shared.Field[TimeOfDay]
	BreakEnd         shared.Field[TimeOfDay]
	TotalMinutes     shared.Field[int]
	OvertimeMinutes  shared.Field[int]
	Status           shared.Field[string]
	Notes            shared.Field[string]
	Location         shared.Field[string]
	ClockInLocation  shared.Field[GeoPoint]
	ClockOutLocation shared.Field[GeoPoint]
	ApprovedBy       shared.Field[int64]
	ApprovedAt       shared.Field[time.Time]
}

func (d Data) Columns() []querier.Column {
	var cols []querier.Column
	cols = shared.Put(cols, "employee_id", d.EmployeeID)
	cols = shared.Put(cols, "date", d.Date)
	cols = shared.Put(cols, "clock_in", d.ClockIn)
	cols = shared.Put(cols, "clock_out", d.ClockOut)
	cols = shared.Put(cols, "break_start", d.BreakStart)
	cols = shared.Put(cols, "break_end", d.BreakEnd)
	cols = shared.Put(cols, "total_minutes", d.TotalMinutes)
	cols = shared.Put(cols, "overtime_minutes", d.OvertimeMinutes)
	cols = shared.Put(cols, "status", d.Status)
	cols = shared.Put(cols, "notes", d.Notes)
	cols = shared.Put(cols, "location", d.Location)
	cols = shared.PutWith(cols, "clock_in_location", d.ClockInLocation, jsonPoint)
	cols = shared.PutWith(cols, "clock_out_location", d.ClockOutLocation, jsonPoint)
	cols = shared.Put(cols, "approved_by", d.ApprovedBy)
	cols = shared.Put(cols, "approved_at", d.ApprovedAt)
	return cols
}

func jsonPoint(p GeoPoint) any {
	b, _ := json.Marshal(p)
	return b
}
