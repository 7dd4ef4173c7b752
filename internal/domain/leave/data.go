package leave

import (
	"encoding/json"
	"time"

	"hradmin/internal/domain/shared"
	"hradmin/internal/platform/querier"
)

// Data is the writable leave payload. DaysRequested is derived by the service.
type Data struct {
	EmployeeID      shared.Field[int64]
	LeaveType       shared.Field[string]
	StartDate       shared.Field[time.Time]
	EndDate         shared.Field[time.Time]
	DaysRequested   shared.Field[float64]
	Reason          shared.Field[string]
	Status          shared.Field[string]
	ApprovedBy      shared.Field[int64]
	ApprovedAt      shared.Field[time.Time]
	ApprovalNotes   shared.Field[string]
	RejectionReason shared.Field[string]
	IsHalfDay       shared.Field[bool]
	HalfDayPeriod   shared.Field[string]
	Attachments     shared.Field[[]string]
	AppliedDate     shared.Field[time.Time]
}

func (d Data) Columns() []querier.Column {
	var cols []querier.Column
	cols = shared.Put(cols, "employee_id", d.EmployeeID)
	cols = shared.Put(cols, "leave_type", d.LeaveType)
	cols = shared.Put(cols, "start_date", d.StartDate)
	cols = shared.Put(cols, "end_date", d.EndDate)
	cols = shared.Put(cols, "days_requested", d.DaysRequested)
	cols = shared.Put(cols, "reason", d.Reason)
	cols = shared.Put(cols, "status", d.Status)
	cols = shared.Put(cols, "approved_by", d.ApprovedBy)
	cols = shared.Put(cols, "approved_at", d.ApprovedAt)
	cols = shared.Put(cols, "approval_notes", d.ApprovalNotes)
	cols = shared.Put(cols, "rejection_reason", d.RejectionReason)
	cols = shared.Put(cols, "is_half_day", d.IsHalfDay)
	cols = shared.Put(cols, "half_day_period", d.HalfDayPeriod)
	cols = shared.PutWith(cols, "attachments", d.Attachments, jsonList)
	cols = shared.Put(cols, "applied_date", d.AppliedDate)
	return cols
}

func jsonList(v []string) any {
	if v == nil {
		v = []string{}
	}
	b, _ := json.Marshal(v)
	return b
}
