package attendance

import (
	"fmt"

	"hradmin/internal/domain/shared"
)

var ErrNotFound = fmt.Errorf("attendance record %w", shared.ErrNotFound)

var (
	errAlreadyClockedIn  = shared.Conflict("Employee has already clocked in today.")
	errNotClockedIn      = shared.Conflict("Employee has not clocked in.")
	errAlreadyClockedOut = shared.Conflict("Employee has already clocked out.")
	errAlreadyApproved   = shared.Conflict("Attendance record is already approved.")
)

var constraints = map[string]shared.Constraint{
	"attendance_employee_id_date_key": {Field: "date", Message: "Attendance for this employee on this date already exists."},
	"attendance_employee_id_fkey":     {Field: "employee_id", Message: "Selected employee does not exist."},
	"attendance_approved_by_fkey":     {Field: "approved_by", Message: "Selected approver does not exist."},
	"attendance_status_check":         {Field: "status", Message: "Selected status is invalid."},
	"attendance_minutes_check":        {Field: "clock_out", Message: "Worked time cannot be negative."},
}
